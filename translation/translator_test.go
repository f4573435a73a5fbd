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

package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var engSpa = NewTable(map[string]string{
	"Apple":      "Apple",
	"is":         "está",
	"looking":    "buscando",
	"at":         "en",
	"buying":     "comprar",
	"a":          "una",
	"startup":    "startup",
	"in":         "en",
	"Silicon":    "Silicon",
	"Valley":     "Valle",
	"for":        "por",
	"$1 billion": "mil millones de dólares",
	"UK":         "Reino Unido",
	".":          ".",
	"The":        "El",
	"the":        "el",
	"cat":        "gato",
	"mouse":      "ratón",
	"chased":     "persiguió",
	"was":        "estaba",
	"hungry":     "hambriento",
	"It":         "Él",
})

func TestTranslateEntityCollapses(t *testing.T) {
	table := NewTable(map[string]string{"UK": "Reino Unido", "startup": "startup"})
	assert.Equal(
		t,
		"Reino Unido startup",
		Translate([]string{"UK", "startup"}, []EntitySpan{{0, 1, "GPE", "UK"}}, table),
	)
}

func TestTranslateInitialKeepsStoredCase(t *testing.T) {
	table := NewTable(map[string]string{"The": "el", "cat": "gato"})
	assert.Equal(t, "el gato", Translate([]string{"The", "cat"}, nil, table))
}

func TestTranslateForcesCapitalLetter(t *testing.T) {
	table := NewTable(map[string]string{"the": "el", "Cat": "gato", "Éclair": "éclair"})
	assert.Equal(t, "el Gato", Translate([]string{"the", "Cat"}, nil, table))
	assert.Equal(t, "el Éclair", Translate([]string{"the", "Éclair"}, nil, table))
}

func TestTranslateUnknownPassThrough(t *testing.T) {
	table := NewTable(map[string]string{"cat": "gato"})
	assert.Equal(t, "the gato Purrs", Translate([]string{"the", "cat", "Purrs"}, nil, table))
	assert.Equal(t, "", Translate(nil, nil, table))
}

func TestTranslateSentence(t *testing.T) {
	tokens := []string{
		"Apple", "is", "looking", "at", "buying", "a", "UK", "startup", "in",
		"Silicon", "Valley", "for", "$", "1", "billion", ".",
	}
	spans := []EntitySpan{
		{0, 1, "ORG", "Apple"},
		{6, 7, "GPE", "UK"},
		{9, 11, "GPE", "Silicon Valley"},
		{12, 15, "MONEY", "$1 billion"},
	}
	assert.Equal(
		t,
		"Apple está buscando en comprar una Reino Unido startup en Silicon Valle "+
			"por mil millones de dólares .",
		Translate(tokens, spans, engSpa),
	)
}

func TestTranslateCatSentence(t *testing.T) {
	tokens := []string{"The", "cat", "chased", "the", "mouse", ".", "It", "was", "hungry", "."}
	assert.Equal(
		t,
		"El gato persiguió el ratón . Él estaba hambriento .",
		Translate(tokens, nil, engSpa),
	)
}

func TestTranslateEntityWithoutText(t *testing.T) {
	table := NewTable(map[string]string{"New York": "Nueva York", "in": "en"})
	assert.Equal(
		t,
		"en Nueva York",
		Translate([]string{"in", "New", "York"}, []EntitySpan{{Start: 1, End: 3, Label: "GPE"}}, table),
	)
}

func TestTranslateIgnoresInvalidSpans(t *testing.T) {
	table := NewTable(map[string]string{"UK": "Reino Unido", "startup": "empresa"})
	spans := []EntitySpan{{0, 5, "GPE", "UK startup"}, {1, 1, "X", ""}}
	assert.Equal(t, "Reino Unido empresa", Translate([]string{"UK", "startup"}, spans, table))
}

func TestWordByWord(t *testing.T) {
	tokens := []string{"The", "cat", "chased", "the", "mouse", ".", "It", "was", "hungry", "."}
	assert.Equal(
		t,
		"El gato persiguió el ratón . Él estaba hambriento .",
		WordByWord(tokens, engSpa),
	)
	table := NewTable(map[string]string{"the": "el", "Cat": "gato"})
	assert.Equal(t, "el gato", WordByWord([]string{"the", "Cat"}, table))
}

func TestTableIsImmutable(t *testing.T) {
	src := map[string]string{"cat": "gato"}
	table := NewTable(src)
	src["cat"] = "perro"
	v, ok := table.Lookup("cat")
	assert.True(t, ok)
	assert.Equal(t, "gato", v)
	cp := table.Entries()
	cp["cat"] = "perro"
	v, _ = table.Lookup("cat")
	assert.Equal(t, "gato", v)
}
