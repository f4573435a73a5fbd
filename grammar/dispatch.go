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

package grammar

import (
	"fmt"

	"github.com/czcorpus/cnc-gokit/collections"
)

// DispatchEntry binds a sentence class (key) to a grammar.
// A sentence belongs to the class if it contains any of
// the trigger words (exact, case-sensitive match).
type DispatchEntry struct {
	Key      string
	Grammar  *Grammar
	Triggers []string
}

// Dispatch is an explicit table of grammars selected by lexical
// triggers. The selection happens before parsing so the parser
// itself does not know anything about sentence classes.
type Dispatch struct {
	entries []DispatchEntry
	byKey   map[string]int
	dfltKey string
}

// Select returns the class key and grammar for the provided tokens.
// Entries are tested in their definition order; if no trigger is found
// the default grammar is returned.
func (d *Dispatch) Select(tokens []string) (string, *Grammar) {
	for _, entry := range d.entries {
		for _, trg := range entry.Triggers {
			if collections.SliceContains(tokens, trg) {
				return entry.Key, entry.Grammar
			}
		}
	}
	return d.dfltKey, d.entries[d.byKey[d.dfltKey]].Grammar
}

// Grammar returns a grammar registered under the key
func (d *Dispatch) Grammar(key string) (*Grammar, bool) {
	idx, ok := d.byKey[key]
	if !ok {
		return nil, false
	}
	return d.entries[idx].Grammar, true
}

// Entries returns registered entries in their definition order
func (d *Dispatch) Entries() []DispatchEntry {
	ans := make([]DispatchEntry, len(d.entries))
	copy(ans, d.entries)
	return ans
}

func (d *Dispatch) DefaultKey() string {
	return d.dfltKey
}

// NewDispatch creates a dispatch table. The dfltKey must refer
// to one of the entries.
func NewDispatch(entries []DispatchEntry, dfltKey string) (*Dispatch, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no grammars to dispatch")
	}
	d := &Dispatch{
		entries: make([]DispatchEntry, 0, len(entries)),
		byKey:   make(map[string]int),
		dfltKey: dfltKey,
	}
	for _, entry := range entries {
		if entry.Key == "" {
			return nil, fmt.Errorf("grammar dispatch entry without a key")
		}
		if entry.Grammar == nil {
			return nil, fmt.Errorf("missing grammar for dispatch key %s", entry.Key)
		}
		if _, ok := d.byKey[entry.Key]; ok {
			return nil, fmt.Errorf("duplicate grammar dispatch key %s", entry.Key)
		}
		triggers := make([]string, len(entry.Triggers))
		copy(triggers, entry.Triggers)
		d.byKey[entry.Key] = len(d.entries)
		d.entries = append(
			d.entries,
			DispatchEntry{Key: entry.Key, Grammar: entry.Grammar, Triggers: triggers},
		)
	}
	if _, ok := d.byKey[dfltKey]; !ok {
		return nil, fmt.Errorf("default grammar %s not defined", dfltKey)
	}
	return d, nil
}
