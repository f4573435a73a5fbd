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

package semantic

import (
	"strings"
)

// WordSynonyms is a word of a text along with its synonyms
type WordSynonyms struct {
	Word     string   `json:"word"`
	Synonyms []string `json:"synonyms"`
}

// SynonymTable maps lower-case words to their synonyms.
// It is read-only once created.
type SynonymTable struct {
	entries map[string][]string
}

// Lookup returns synonyms of a word. The word is matched
// case-insensitively.
func (st *SynonymTable) Lookup(word string) ([]string, bool) {
	if st == nil {
		return nil, false
	}
	v, ok := st.entries[strings.ToLower(word)]
	return v, ok
}

func (st *SynonymTable) Len() int {
	if st == nil {
		return 0
	}
	return len(st.entries)
}

// FindSynonyms returns synonyms of the words in the order
// of their first occurrence. Each word is reported only once
// and words without synonyms are skipped.
func (st *SynonymTable) FindSynonyms(words []string) []WordSynonyms {
	ans := []WordSynonyms{}
	seen := make(map[string]bool)
	for _, w := range words {
		key := strings.ToLower(w)
		if seen[key] {
			continue
		}
		seen[key] = true
		if syn, ok := st.Lookup(w); ok && len(syn) > 0 {
			ans = append(ans, WordSynonyms{Word: w, Synonyms: syn})
		}
	}
	return ans
}

// NewSynonymTable creates a table from a word -> synonyms mapping.
// Keys are lower-cased, on a collision the synonym lists are merged.
func NewSynonymTable(entries map[string][]string) *SynonymTable {
	tab := make(map[string][]string, len(entries))
	for k, v := range entries {
		key := strings.ToLower(k)
		tab[key] = append(tab[key], v...)
	}
	return &SynonymTable{entries: tab}
}
