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

import "golibrarian/internal/domain"

// Theme names understood by the dashboard.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// appState is the explicit UI state threaded through the render helpers, so
// the dashboard has no ambient window-level fields: the current theme, the
// rows on display, the table sort and the selected row.
type appState struct {
	theme      string
	search     string
	rows       []domain.Book
	selectedID int64 // 0 = no selection
	sortCol    Column
	sortDesc   bool
	sorted     bool
}

func newAppState(theme string) *appState {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	return &appState{theme: theme}
}

// toggleTheme flips light/dark and returns the new theme name.
func (s *appState) toggleTheme() string {
	if s.theme == ThemeLight {
		s.theme = ThemeDark
	} else {
		s.theme = ThemeLight
	}
	return s.theme
}

// setRows replaces the displayed rows after a re-query and drops any stale
// sort marker; the store already delivers newest-first order.
func (s *appState) setRows(rows []domain.Book) {
	s.rows = rows
	s.sorted = false
	if s.selectedID != 0 && s.selectedBook() == nil {
		s.selectedID = 0
	}
}

// sortBy applies a column sort to the displayed rows, toggling the direction
// on repeated invocation of the same column.
func (s *appState) sortBy(col Column) {
	if s.sorted && s.sortCol == col {
		s.sortDesc = !s.sortDesc
	} else {
		s.sortCol = col
		s.sortDesc = false
		s.sorted = true
	}
	SortRows(s.rows, s.sortCol, s.sortDesc)
}

// selectedBook returns the currently selected row, or nil.
func (s *appState) selectedBook() *domain.Book {
	if s.selectedID == 0 {
		return nil
	}
	for i := range s.rows {
		if s.rows[i].ID == s.selectedID {
			return &s.rows[i]
		}
	}
	return nil
}

// clearSelection drops the selected row marker.
func (s *appState) clearSelection() { s.selectedID = 0 }
