/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package ui is the presentation layer: a login form that hands off to a
// form-and-table dashboard. Every user action calls the store synchronously
// and re-renders the full result set. The Fyne widgets live behind the fyne
// build tag; the validation and sorting logic in this file is plain Go so it
// stays testable headless.
package ui

import (
	"errors"
	"strconv"
	"strings"

	"golibrarian/internal/domain"
)

// User-facing validation failures. The dashboard maps each to a modal dialog;
// none of them reach the store.
var (
	ErrMissingRequired = errors.New("Title and Author are required")
	ErrInvalidNumber   = errors.New("Year, Copies, Available must be numbers")
	ErrNoSelection     = errors.New("Choose a book first")
)

// FormFields carries the raw text of the book form.
type FormFields struct {
	Title     string
	Author    string
	Category  string
	Year      string
	Copies    string
	Available string
}

// ParsePayload validates and coerces the form fields into a Payload:
// title/author required after trim, year optional integer, copies forced
// non-negative and available clamped into [0, copies]. Malformed numeric
// input aborts with ErrInvalidNumber.
func ParsePayload(f FormFields) (domain.Payload, error) {
	title := strings.TrimSpace(f.Title)
	author := strings.TrimSpace(f.Author)
	if title == "" || author == "" {
		return domain.Payload{}, ErrMissingRequired
	}

	p := domain.Payload{
		Title:    title,
		Author:   author,
		Category: strings.TrimSpace(f.Category),
	}

	if year := strings.TrimSpace(f.Year); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			return domain.Payload{}, ErrInvalidNumber
		}
		p.Year = &y
	}

	copiesText := strings.TrimSpace(f.Copies)
	if copiesText == "" {
		copiesText = "0"
	}
	copies, err := strconv.Atoi(copiesText)
	if err != nil {
		return domain.Payload{}, ErrInvalidNumber
	}
	if copies < 0 {
		copies = 0
	}
	p.Copies = copies

	availText := strings.TrimSpace(f.Available)
	if availText == "" {
		availText = "0"
	}
	avail, err := strconv.Atoi(availText)
	if err != nil {
		return domain.Payload{}, ErrInvalidNumber
	}
	if avail < 0 {
		avail = 0
	}
	if avail > copies {
		avail = copies
	}
	p.Available = avail

	return p, nil
}

// FieldsFromBook fills the form from a selected row.
func FieldsFromBook(b domain.Book) FormFields {
	year := ""
	if b.Year != nil {
		year = strconv.Itoa(*b.Year)
	}
	return FormFields{
		Title:     b.Title,
		Author:    b.Author,
		Category:  b.Category,
		Year:      year,
		Copies:    strconv.Itoa(b.Copies),
		Available: strconv.Itoa(b.Available),
	}
}

// ClearedFields returns the form reset state: everything blank except
// Available, which defaults to "1" for the common single-copy add.
func ClearedFields() FormFields {
	return FormFields{Available: "1"}
}
