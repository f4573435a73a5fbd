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

package lexical

import (
	"testing"

	"nlpipe/merror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catDocJSON = `{
	"text": "The cat chased the mouse. It was hungry.",
	"sentences": [
		{"text": "The cat chased the mouse.", "tokens": [
			{"text": "The", "pos": "DT"}, {"text": "cat", "pos": "NN"},
			{"text": "chased", "pos": "VBD"}, {"text": "the", "pos": "DT"},
			{"text": "mouse", "pos": "NN"}, {"text": ".", "pos": "."}
		]},
		{"text": "It was hungry.", "tokens": [
			{"text": "It", "pos": "PRP"}, {"text": "was", "pos": "VBD"},
			{"text": "hungry", "pos": "JJ"}, {"text": ".", "pos": "."}
		]}
	]
}`

func TestDecodeDocument(t *testing.T) {
	doc, err := DecodeDocument([]byte(catDocJSON))
	require.NoError(t, err)
	assert.Len(t, doc.Sentences, 2)
	assert.Equal(t, 10, doc.NumTokens())
	assert.Equal(
		t,
		[]string{"The", "cat", "chased", "the", "mouse", ".", "It", "was", "hungry", "."},
		doc.Words(),
	)
	assert.Equal(t, []string{"It", "was", "hungry", "."}, doc.Sentences[1].Words())
}

func TestDecodeDocumentInvalidJSON(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"sentences": [`))
	var inputErr merror.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestValidate(t *testing.T) {
	doc := Document{}
	assert.Error(t, doc.Validate())

	doc.Sentences = []Sentence{{Text: "x"}}
	assert.Error(t, doc.Validate())

	doc.Sentences = []Sentence{{Text: "x", Tokens: []Token{{Text: ""}}}}
	assert.Error(t, doc.Validate())

	doc.Sentences = []Sentence{{Text: "UK startup", Tokens: []Token{{Text: "UK"}, {Text: "startup"}}}}
	doc.Entities = []Entity{{Start: 0, End: 1, Label: "GPE", Text: "UK"}}
	assert.NoError(t, doc.Validate())

	doc.Entities = []Entity{{Start: 1, End: 3, Label: "GPE", Text: "x"}}
	var inputErr merror.InputError
	assert.ErrorAs(t, doc.Validate(), &inputErr)
}

func TestFullText(t *testing.T) {
	doc := Document{Sentences: []Sentence{{Text: "A b."}, {Text: "C d."}}}
	assert.Equal(t, "A b. C d.", doc.FullText())
	doc.Text = "orig"
	assert.Equal(t, "orig", doc.FullText())
}

func TestIsPunctuation(t *testing.T) {
	assert.True(t, IsPunctuation("."))
	assert.True(t, IsPunctuation("$"))
	assert.True(t, IsPunctuation("..."))
	assert.False(t, IsPunctuation("cat"))
	assert.False(t, IsPunctuation("U.K."))
	assert.False(t, IsPunctuation(""))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "chase", Stem("chased"))
	assert.Equal(t, "cat", Stem("cats"))
}

func TestAnalyzeSentence(t *testing.T) {
	doc, err := DecodeDocument([]byte(catDocJSON))
	require.NoError(t, err)
	ans := Analyze(doc)
	require.Len(t, ans, 2)
	first := ans[0]
	assert.Equal(t, "The cat chased the mouse.", first.Text)
	assert.Equal(t, []string{"The", "cat", "chased", "the", "mouse"}, first.Content)
	assert.Equal(t, []string{"The", "the"}, first.StopWords)
	assert.Len(t, first.Stems, 6)
	assert.Equal(t, "chase", first.Stems[2])
	assert.Equal(t, TaggedWord{Word: "chased", Tag: "VBD"}, first.Tagged[2])
	assert.Nil(t, first.Lemmas)
	assert.Equal(t, []string{"It", "was", "hungry"}, ans[1].Content)
}

func TestAnalyzeSentenceLemmas(t *testing.T) {
	s := Sentence{Tokens: []Token{{Text: "cats", POS: "NNS", Lemma: "cat"}, {Text: "!", POS: "."}}}
	ans := AnalyzeSentence(s)
	assert.Equal(t, []string{"cat", ""}, ans.Lemmas)
}

func TestAnalyzeSentenceDependencies(t *testing.T) {
	s := Sentence{Tokens: []Token{
		{Text: "Apple", POS: "NNP", Dep: "nsubj", Head: 1, Morph: "Number=Sing"},
		{Text: "buys", POS: "VBZ", Dep: "ROOT", Head: 1, Morph: "Tense=Pres"},
		{Text: ".", POS: "."},
	}}
	ans := AnalyzeSentence(s)
	assert.Equal(
		t,
		[]Dependency{
			{Word: "Apple", Relation: "nsubj", Head: "buys", HeadTag: "VBZ"},
			{Word: "buys", Relation: "ROOT", Head: "buys", HeadTag: "VBZ"},
		},
		ans.Dependencies,
	)
	assert.Equal(t, []string{"Number=Sing", "Tense=Pres", ""}, ans.Morphology)

	plain := AnalyzeSentence(Sentence{Tokens: []Token{{Text: "cat", POS: "NN"}}})
	assert.Nil(t, plain.Dependencies)
	assert.Nil(t, plain.Morphology)
}

func TestValidateDependencyHead(t *testing.T) {
	doc := Document{Sentences: []Sentence{{
		Text:   "It was",
		Tokens: []Token{{Text: "It", Dep: "nsubj", Head: 2}, {Text: "was", Dep: "ROOT", Head: 1}},
	}}}
	var inputErr merror.InputError
	assert.ErrorAs(t, doc.Validate(), &inputErr)

	doc.Sentences[0].Tokens[0].Head = 1
	assert.NoError(t, doc.Validate())
}
