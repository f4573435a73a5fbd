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

package pipeline

import (
	"bytes"
	"strings"
	"testing"

	"nlpipe/lexical"
	"nlpipe/pragmatic"
	"nlpipe/resources"
	"nlpipe/semantic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T, mode pragmatic.ResolverMode) *Analyzer {
	conf := &resources.Conf{ResolverMode: mode}
	require.NoError(t, conf.ValidateAndDefaults("resources"))
	bundle, err := resources.Load(conf)
	require.NoError(t, err)
	a, err := NewAnalyzer(bundle)
	require.NoError(t, err)
	return a
}

func loadSample(t *testing.T, name string) *lexical.Document {
	doc, err := resources.SampleDocument(name)
	require.NoError(t, err)
	return doc
}

func TestAnalyzeCatText(t *testing.T) {
	a := newTestAnalyzer(t, pragmatic.ModeSequential)
	report := a.Analyze(loadSample(t, "cat"))

	assert.NotEmpty(t, report.ID)
	require.Len(t, report.Lexical, 2)
	assert.Equal(t, []string{"The", "cat", "chased", "the", "mouse"}, report.Lexical[0].Content)

	require.Len(t, report.Syntactic, 2)
	assert.Equal(t, "transitive", report.Syntactic[0].Grammar)
	require.Len(t, report.Syntactic[0].Trees, 1)
	assert.Equal(
		t,
		"(S (NP (Det The) (N cat)) (VP (V chased) (NP (Det the) (N mouse))))",
		report.Syntactic[0].Trees[0].String(),
	)
	assert.Equal(t, "copula", report.Syntactic[1].Grammar)
	require.Len(t, report.Syntactic[1].Trees, 1)
	assert.Equal(t, "(S (NP It) (VP (V was) (Adj hungry)))", report.Syntactic[1].Trees[0].String())
	assert.Equal(t, 2, report.NumTrees())

	assert.Equal(t, "chased(cat, mouse)", report.Semantic.Text)
	require.Len(t, report.Semantic.Sentences, 2)
	assert.Equal(t, "chased(cat, mouse)", report.Semantic.Sentences[0].Text)
	assert.Equal(t, "was(It)", report.Semantic.Sentences[1].Text)

	assert.Equal(
		t,
		"Fluffy the pet cat chased Jerry the cartoon mouse. The cat was hungry.",
		report.Pragmatic.ResolvedText,
	)
	assert.True(t, report.Pragmatic.Context.IsEmpty())

	assert.Equal(t, "El gato persiguió el ratón . Él estaba hambriento .", report.Translation.WordByWord)
	assert.Equal(t, "El gato persiguió el ratón . Él estaba hambriento .", report.Translation.Translated)

	for _, stage := range Stages {
		assert.Contains(t, report.StageTimes, stage)
	}
}

func TestAnalyzeAppleText(t *testing.T) {
	a := newTestAnalyzer(t, pragmatic.ModeSequential)
	report := a.Analyze(loadSample(t, "apple"))

	require.Len(t, report.Syntactic, 1)
	assert.True(t, report.Syntactic[0].NoParse())
	assert.NotContains(t, report.Syntactic[0].Tokens, "$")

	assert.Equal(t, "is(Apple, UK)", report.Semantic.Text)
	require.Len(t, report.Semantic.Synonyms, 3)
	assert.Equal(t, "looking", report.Semantic.Synonyms[0].Word)
	assert.Equal(t, "buying", report.Semantic.Synonyms[1].Word)
	assert.Equal(
		t,
		semantic.WordSynonyms{
			Word:     "startup",
			Synonyms: []string{"new company", "emerging business", "venture", "new enterprise"},
		},
		report.Semantic.Synonyms[2],
	)
	require.Len(t, report.Lexical[0].Dependencies, 16)
	assert.Equal(
		t,
		lexical.Dependency{Word: "startup", Relation: "dobj", Head: "buying", HeadTag: "VBG"},
		report.Lexical[0].Dependencies[7],
	)

	ctx := report.Pragmatic.Context
	assert.Equal(t, []string{"Apple"}, ctx.Organizations)
	assert.Equal(t, []string{"UK", "Silicon Valley"}, ctx.Locations)
	assert.Equal(t, []string{"$1 billion"}, ctx.Money)
	assert.Equal(t, pragmatic.TopicAcquisition, ctx.Topic)

	assert.Equal(
		t,
		"Apple está buscando en comprar una Reino Unido startup en Silicon Valle "+
			"por mil millones de dólares .",
		report.Translation.Translated,
	)
}

func TestAnalyzeEntityWithoutText(t *testing.T) {
	a := newTestAnalyzer(t, pragmatic.ModeSequential)
	doc := loadSample(t, "apple")
	doc.Entities[2].Text = ""
	report := a.Analyze(doc)
	assert.Equal(t, "Silicon Valley", report.Pragmatic.Entities[2].Text)
}

func TestLongestMatchResolverMode(t *testing.T) {
	a := newTestAnalyzer(t, pragmatic.ModeLongestMatch)
	report := a.Analyze(loadSample(t, "cat"))
	assert.Equal(t, pragmatic.ModeLongestMatch, report.Pragmatic.ResolverMode)
	assert.Equal(
		t,
		"Fluffy the pet cat chased Jerry the cartoon mouse. The cat was hungry.",
		report.Pragmatic.ResolvedText,
	)
	assert.Equal(t, "The cat is here", a.Resolve("It is here"))
}

func TestNewAnalyzerInvalidMode(t *testing.T) {
	_, err := NewAnalyzer(&resources.Bundle{ResolverMode: "random"})
	assert.Error(t, err)
}

func TestWriteTextStageOrder(t *testing.T) {
	a := newTestAnalyzer(t, pragmatic.ModeSequential)
	report := a.Analyze(loadSample(t, "cat"))
	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf))
	out := buf.String()

	prev := -1
	for _, label := range []string{
		"1. LEXICAL ANALYSIS",
		"2. SYNTACTIC ANALYSIS",
		"3. SEMANTIC ANALYSIS",
		"4. PRAGMATIC ANALYSIS",
		"5. MACHINE TRANSLATION",
	} {
		idx := strings.Index(out, label)
		require.GreaterOrEqual(t, idx, 0, label)
		assert.Greater(t, idx, prev)
		prev = idx
	}
	assert.Contains(t, out, "Semantic Representation: chased(cat, mouse)")
	assert.Contains(t, out, "    (Det The)\n")
	assert.NotContains(t, out, NoParseMessage)
}

func TestWriteTextNoParse(t *testing.T) {
	a := newTestAnalyzer(t, pragmatic.ModeSequential)
	report := a.Analyze(loadSample(t, "apple"))
	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, NoParseMessage)
	assert.Contains(t, out, "Topic: "+pragmatic.TopicAcquisition)
	assert.Contains(t, out, "  - Money: $1 billion\n")
	assert.Contains(
		t, out, "Synonyms for 'startup': new company, emerging business, venture, new enterprise\n")
	assert.Contains(t, out, "Dependency Parse:\n")
	assert.Contains(t, out, "Morphology: ['NounType=Prop|Number=Sing'")
	assert.NotContains(t, out, NoSynonymsMessage)
}

func TestSemanticStageWithoutSynonyms(t *testing.T) {
	a, err := NewAnalyzer(&resources.Bundle{
		ResolverMode: pragmatic.ModeSequential,
		TagSet:       semantic.PennTagSet,
	})
	require.NoError(t, err)
	doc := loadSample(t, "cat")
	ans := a.semanticStage(doc)
	assert.Equal(t, []semantic.WordSynonyms{}, ans.Synonyms)
}
