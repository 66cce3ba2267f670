/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package importer reads book payloads from a JSON document and validates
// them against an embedded JSON Schema before they reach the store.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"golibrarian/internal/domain"
)

// booksSchema constrains import documents to an array of payload objects.
// The available<=copies invariant is numeric-only here; the cross-field clamp
// happens in Normalize, mirroring the form validation policy.
const booksSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Book import",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "author"],
    "additionalProperties": false,
    "properties": {
      "title":     {"type": "string", "minLength": 1},
      "author":    {"type": "string", "minLength": 1},
      "category":  {"type": "string"},
      "year":      {"type": "integer"},
      "copies":    {"type": "integer", "minimum": 0},
      "available": {"type": "integer", "minimum": 0}
    }
  }
}`

// ValidationError carries the per-item schema violations of a rejected
// document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("import document invalid: %s", strings.Join(e.Problems, "; "))
}

// Parse validates the JSON document and decodes it into payloads. Invalid
// documents are rejected as a whole with a *ValidationError listing every
// violation; nothing is partially imported.
func Parse(data []byte) ([]domain.Payload, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(booksSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate import document: %w", err)
	}
	if !result.Valid() {
		ve := &ValidationError{}
		for _, e := range result.Errors() {
			ve.Problems = append(ve.Problems, e.String())
		}
		return nil, ve
	}

	var payloads []domain.Payload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("decode import document: %w", err)
	}
	for i := range payloads {
		Normalize(&payloads[i])
	}
	return payloads, nil
}

// ParseFile reads and parses an import document from disk.
func ParseFile(path string) ([]domain.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return Parse(data)
}

// Normalize applies the same coercions the book form applies: trimmed text,
// non-negative copies and available clamped into [0, copies].
func Normalize(p *domain.Payload) {
	p.Title = strings.TrimSpace(p.Title)
	p.Author = strings.TrimSpace(p.Author)
	p.Category = strings.TrimSpace(p.Category)
	if p.Copies < 0 {
		p.Copies = 0
	}
	if p.Available < 0 {
		p.Available = 0
	}
	if p.Available > p.Copies {
		p.Available = p.Copies
	}
}
