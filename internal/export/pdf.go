/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"golibrarian/internal/domain"
)

// Column widths in mm for an A4 landscape page (277mm printable width).
var pdfWidths = []float64{14, 75, 55, 35, 16, 18, 24, 40}

// PDFPathFor derives the PDF export path from the database path.
func PDFPathFor(dbPath string) string {
	return strings.TrimSuffix(dbPath, filepath.Ext(dbPath)) + ".pdf"
}

// WriteCatalogPDF renders the given rows as a paginated table. Built-in
// Helvetica keeps the file free of font embedding concerns. An empty row set
// returns ErrNoRows and writes nothing.
func WriteCatalogPDF(path string, books []domain.Book) error {
	if len(books) == 0 {
		return ErrNoRows
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Library Catalog", false)
	pdf.SetAutoPageBreak(true, 12)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Library Catalog", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		for i, h := range csvHeader {
			pdf.CellFormat(pdfWidths[i], 7, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	})
	pdf.AddPage()

	for _, b := range books {
		year := ""
		if b.Year != nil {
			year = strconv.Itoa(*b.Year)
		}
		cells := []string{
			strconv.FormatInt(b.ID, 10),
			b.Title,
			b.Author,
			b.Category,
			year,
			strconv.Itoa(b.Copies),
			strconv.Itoa(b.Available),
			b.CreatedAt,
		}
		for i, c := range cells {
			pdf.CellFormat(pdfWidths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
