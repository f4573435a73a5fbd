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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynonymLookup(t *testing.T) {
	tab := NewSynonymTable(map[string][]string{
		"Startup": {"venture"},
		"startup": {"new company"},
	})
	assert.Equal(t, 1, tab.Len())
	syn, ok := tab.Lookup("STARTUP")
	assert.True(t, ok)
	assert.ElementsMatch(t, []string{"venture", "new company"}, syn)
	_, ok = tab.Lookup("company")
	assert.False(t, ok)
}

func TestFindSynonyms(t *testing.T) {
	tab := NewSynonymTable(map[string][]string{
		"buying":  {"purchasing", "acquiring"},
		"startup": {"venture"},
	})
	ans := tab.FindSynonyms([]string{"Apple", "is", "buying", "a", "startup", "Buying"})
	assert.Equal(
		t,
		[]WordSynonyms{
			{Word: "buying", Synonyms: []string{"purchasing", "acquiring"}},
			{Word: "startup", Synonyms: []string{"venture"}},
		},
		ans,
	)
	assert.Equal(t, []WordSynonyms{}, tab.FindSynonyms([]string{"cat"}))
}

func TestFindSynonymsNilTable(t *testing.T) {
	var tab *SynonymTable
	assert.Empty(t, tab.FindSynonyms([]string{"startup"}))
	assert.Equal(t, 0, tab.Len())
}
