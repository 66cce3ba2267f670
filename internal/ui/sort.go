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
	"sort"
	"strconv"
	"strings"

	"golibrarian/internal/domain"
)

// Column identifies a table column for rendering and sorting.
type Column int

const (
	ColID Column = iota
	ColTitle
	ColAuthor
	ColCategory
	ColYear
	ColCopies
	ColAvailable
	ColCreated
)

// ColumnHeaders are the table headings, in display order.
var ColumnHeaders = []string{"ID", "Title", "Author", "Category", "Year", "Copies", "Available", "Created"}

// CellText renders the column value of a row for display, sorting and
// selection echo. Missing year/category render empty.
func CellText(b domain.Book, col Column) string {
	switch col {
	case ColID:
		return strconv.FormatInt(b.ID, 10)
	case ColTitle:
		return b.Title
	case ColAuthor:
		return b.Author
	case ColCategory:
		return b.Category
	case ColYear:
		if b.Year == nil {
			return ""
		}
		return strconv.Itoa(*b.Year)
	case ColCopies:
		return strconv.Itoa(b.Copies)
	case ColAvailable:
		return strconv.Itoa(b.Available)
	case ColCreated:
		return b.CreatedAt
	default:
		return ""
	}
}

// SortRows reorders the currently displayed rows in place by one column.
// When every cell in the column parses as an integer the sort is numeric,
// otherwise it falls back to case-insensitive lexical order. It never touches
// storage.
func SortRows(rows []domain.Book, col Column, desc bool) {
	numeric := true
	keys := make([]string, len(rows))
	nums := make([]int64, len(rows))
	for i, b := range rows {
		keys[i] = CellText(b, col)
		if numeric {
			n, err := strconv.ParseInt(keys[i], 10, 64)
			if err != nil {
				numeric = false
			} else {
				nums[i] = n
			}
		}
	}

	index := make([]int, len(rows))
	for i := range index {
		index[i] = i
	}
	less := func(a, b int) bool {
		if numeric {
			return nums[a] < nums[b]
		}
		return strings.ToLower(keys[a]) < strings.ToLower(keys[b])
	}
	sort.SliceStable(index, func(i, j int) bool {
		if desc {
			return less(index[j], index[i])
		}
		return less(index[i], index[j])
	})

	out := make([]domain.Book, len(rows))
	for i, idx := range index {
		out[i] = rows[idx]
	}
	copy(rows, out)
}
