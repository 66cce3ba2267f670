/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders the currently filtered catalog rows to on-demand
// artifacts: a CSV file next to the database, and a tabular PDF.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golibrarian/internal/domain"
)

// csvHeader is the fixed column set of the export artifact.
var csvHeader = []string{"ID", "Title", "Author", "Category", "Year", "Copies", "Available", "Created"}

// ErrNoRows is reported when an export is requested on an empty result set.
var ErrNoRows = fmt.Errorf("no rows to export")

// CSVPathFor derives the export path from the database path: same base name,
// .csv extension.
func CSVPathFor(dbPath string) string {
	return strings.TrimSuffix(dbPath, filepath.Ext(dbPath)) + ".csv"
}

// WriteCSV writes the given rows to path with the fixed header. An empty row
// set returns ErrNoRows and writes nothing.
func WriteCSV(path string, books []domain.Book) error {
	if len(books) == 0 {
		return ErrNoRows
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, b := range books {
		if err := w.Write(csvRecord(b)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

func csvRecord(b domain.Book) []string {
	year := ""
	if b.Year != nil {
		year = strconv.Itoa(*b.Year)
	}
	return []string{
		strconv.FormatInt(b.ID, 10),
		b.Title,
		b.Author,
		b.Category,
		year,
		strconv.Itoa(b.Copies),
		strconv.Itoa(b.Available),
		b.CreatedAt,
	}
}
