// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of NLPIPE.
//
//  NLPIPE is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  NLPIPE is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with NLPIPE.  If not, see <https://www.gnu.org/licenses/>.

// Package translation provides a dictionary based translation
// aware of multi-word named entities.
package translation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// EntitySpan is a half-open range [Start, End) of tokens
// recognized as a single named entity.
type EntitySpan struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

func (span EntitySpan) isValid(numTokens int) bool {
	return span.Start >= 0 && span.End > span.Start && span.End <= numTokens
}

// ----

// Table is an immutable mapping from source words (or whole
// entity texts) to their target language forms.
type Table struct {
	entries map[string]string
}

// Lookup returns the target form of src
func (t *Table) Lookup(src string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.entries[src]
	return v, ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the table data
func (t *Table) Entries() map[string]string {
	ans := make(map[string]string, t.Len())
	if t != nil {
		for k, v := range t.entries {
			ans[k] = v
		}
	}
	return ans
}

// NewTable creates a table from a copy of the provided map
func NewTable(entries map[string]string) *Table {
	ans := &Table{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		ans.entries[k] = v
	}
	return ans
}

// ----

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// translateUnit translates a single lookup unit (a word or a whole
// entity) found at the position pos of the token sequence. Capitalized
// sources outside the initial position keep the capital letter even if
// the table stores the target form in lower case.
func translateUnit(src string, pos int, table *Table) string {
	v, ok := table.Lookup(src)
	if !ok {
		return src
	}
	if pos > 0 && startsUpper(src) {
		return capitalizeFirst(v)
	}
	return v
}

func spanStartingAt(spans []EntitySpan, pos, numTokens int) (EntitySpan, bool) {
	for _, span := range spans {
		if span.Start == pos && span.isValid(numTokens) {
			return span, true
		}
	}
	return EntitySpan{}, false
}

// Translate translates tokens left to right. If an entity span starts
// at the current position, the whole entity text is looked up first
// and emitted as a single unit; if the table does not know it, the
// entity's tokens are translated one by one. Unknown words are passed
// through unchanged. Spans outside the token range are ignored.
func Translate(tokens []string, spans []EntitySpan, table *Table) string {
	ans := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		span, ok := spanStartingAt(spans, i, len(tokens))
		if !ok {
			ans = append(ans, translateUnit(tokens[i], i, table))
			i++
			continue
		}
		entText := span.Text
		if entText == "" {
			entText = strings.Join(tokens[span.Start:span.End], " ")
		}
		if _, found := table.Lookup(entText); found {
			ans = append(ans, translateUnit(entText, i, table))

		} else {
			for j := span.Start; j < span.End; j++ {
				ans = append(ans, translateUnit(tokens[j], j, table))
			}
		}
		i = span.End
	}
	return strings.Join(ans, " ")
}

// WordByWord replaces each token found in the table
// without any entity or capitalization handling.
func WordByWord(tokens []string, table *Table) string {
	ans := make([]string, len(tokens))
	for i, tok := range tokens {
		if v, ok := table.Lookup(tok); ok {
			ans[i] = v

		} else {
			ans[i] = tok
		}
	}
	return strings.Join(ans, " ")
}
