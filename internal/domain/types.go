/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package domain defines the core data model for the library catalog.
package domain

// Book is a catalog row as stored in the books table.
type Book struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category,omitempty"`
	Year     *int   `json:"year,omitempty"`
	Copies   int    `json:"copies"`
	// Available counts copies currently on the shelf. The payload layer clamps
	// it into [0, Copies]; the storage layer does not re-check.
	Available int `json:"available"`
	// CreatedAt is the insert timestamp as the store renders it
	// ("2006-01-02 15:04:05", UTC). Kept as text since it is display-only.
	CreatedAt string `json:"created_at,omitempty"`
}

// Payload is the validated field set submitted for add/update. Category and
// Year are optional; a nil Year maps to NULL.
type Payload struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Category  string `json:"category,omitempty"`
	Year      *int   `json:"year,omitempty"`
	Copies    int    `json:"copies"`
	Available int    `json:"available"`
}

// Summary aggregates the catalog: row count, shelf copies, total copies and
// the number of titles with nothing left on the shelf.
type Summary struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Copies    int `json:"copies"`
	Issued    int `json:"issued"`
}

// User is a credential-store row. Users are seeded once and never mutated by
// the application.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
