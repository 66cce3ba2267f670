/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"errors"
	"testing"

	"golibrarian/internal/domain"
)

func TestParsePayloadValid(t *testing.T) {
	p, err := ParsePayload(FormFields{
		Title:     "  Dune ",
		Author:    "Herbert",
		Category:  "SciFi",
		Year:      "1965",
		Copies:    "2",
		Available: "2",
	})
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}
	if p.Title != "Dune" || p.Author != "Herbert" || p.Category != "SciFi" {
		t.Errorf("text fields: %+v", p)
	}
	if p.Year == nil || *p.Year != 1965 {
		t.Errorf("year: %v", p.Year)
	}
	if p.Copies != 2 || p.Available != 2 {
		t.Errorf("counts: %+v", p)
	}
}

func TestParsePayloadValidation(t *testing.T) {
	cases := []struct {
		name    string
		f       FormFields
		wantErr error
	}{
		{"missing title", FormFields{Author: "Herbert"}, ErrMissingRequired},
		{"blank title", FormFields{Title: "   ", Author: "Herbert"}, ErrMissingRequired},
		{"missing author", FormFields{Title: "Dune"}, ErrMissingRequired},
		{"bad year", FormFields{Title: "Dune", Author: "H", Year: "MCMLXV"}, ErrInvalidNumber},
		{"bad copies", FormFields{Title: "Dune", Author: "H", Copies: "two"}, ErrInvalidNumber},
		{"bad available", FormFields{Title: "Dune", Author: "H", Available: "all"}, ErrInvalidNumber},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParsePayload(tc.f); !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestParsePayloadCoercions(t *testing.T) {
	// Empty numerics default to zero; available is clamped into [0, copies].
	p, err := ParsePayload(FormFields{Title: "Dune", Author: "Herbert"})
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}
	if p.Year != nil {
		t.Errorf("empty year should stay nil")
	}
	if p.Copies != 0 || p.Available != 0 {
		t.Errorf("empty numerics should default to 0: %+v", p)
	}

	p, err = ParsePayload(FormFields{Title: "Dune", Author: "Herbert", Copies: "-3", Available: "-1"})
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}
	if p.Copies != 0 || p.Available != 0 {
		t.Errorf("negatives should clamp to 0: %+v", p)
	}

	p, err = ParsePayload(FormFields{Title: "Dune", Author: "Herbert", Copies: "2", Available: "5"})
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}
	if p.Available != 2 {
		t.Errorf("available should clamp to copies: %d", p.Available)
	}
	if p.Available < 0 || p.Available > p.Copies {
		t.Errorf("invariant violated: %+v", p)
	}
}

func TestFieldsFromBookRoundTrip(t *testing.T) {
	year := 1965
	b := domain.Book{ID: 7, Title: "Dune", Author: "Herbert", Category: "SciFi", Year: &year, Copies: 2, Available: 1}
	f := FieldsFromBook(b)
	if f.Title != "Dune" || f.Year != "1965" || f.Copies != "2" || f.Available != "1" {
		t.Fatalf("fields: %+v", f)
	}

	p, err := ParsePayload(f)
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}
	if p.Title != b.Title || *p.Year != year || p.Copies != b.Copies || p.Available != b.Available {
		t.Fatalf("round trip mismatch: %+v", p)
	}
}

func TestClearedFields(t *testing.T) {
	f := ClearedFields()
	if f.Title != "" || f.Author != "" || f.Year != "" || f.Copies != "" {
		t.Fatalf("cleared fields not blank: %+v", f)
	}
	if f.Available != "1" {
		t.Fatalf("Available should reset to 1, got %q", f.Available)
	}
}
