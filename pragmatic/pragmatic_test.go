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

package pragmatic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRules = []Rule{
	{Pattern: "The cat", Replacement: "Fluffy the pet cat"},
	{Pattern: "the mouse", Replacement: "Jerry the cartoon mouse"},
	{Pattern: "It", Replacement: "The cat"},
}

func TestResolveSample(t *testing.T) {
	// the last rule reintroduces "The cat" which must not be
	// replaced again as the first rule has been already applied
	assert.Equal(
		t,
		"Fluffy the pet cat chased Jerry the cartoon mouse. The cat was hungry.",
		Resolve("The cat chased the mouse. It was hungry.", sampleRules),
	)
}

func TestResolveOrderMatters(t *testing.T) {
	rules := []Rule{
		{Pattern: "It", Replacement: "The cat"},
		{Pattern: "The cat", Replacement: "Fluffy"},
	}
	text := "It was hungry. The cat slept."
	assert.Equal(t, "Fluffy was hungry. Fluffy slept.", Resolve(text, rules))
	assert.Equal(t, "The cat was hungry. Fluffy slept.", ResolveLongestMatch(text, rules))
}

func TestResolveSubstringLimitation(t *testing.T) {
	rules := []Rule{{Pattern: "It", Replacement: "The cat"}}
	assert.Equal(t, "The catem one", Resolve("Item one", rules))
}

func TestResolveSkipsEmptyPattern(t *testing.T) {
	rules := []Rule{{Pattern: "", Replacement: "x"}}
	assert.Equal(t, "abc", Resolve("abc", rules))
	assert.Equal(t, "abc", ResolveLongestMatch("abc", rules))
}

func TestResolveLongestMatch(t *testing.T) {
	assert.Equal(
		t,
		"Fluffy the pet cat chased Jerry the cartoon mouse. The cat was hungry.",
		ResolveLongestMatch("The cat chased the mouse. It was hungry.", sampleRules),
	)
	rules := []Rule{
		{Pattern: "the", Replacement: "a"},
		{Pattern: "the mouse", Replacement: "Jerry"},
	}
	assert.Equal(t, "a mouse", Resolve("the mouse", rules))
	assert.Equal(t, "Jerry and a cat", ResolveLongestMatch("the mouse and the cat", rules))
}

func TestResolverFor(t *testing.T) {
	fn, err := ResolverFor(ModeLongestMatch)
	require.NoError(t, err)
	assert.Equal(t, "b", fn("a", []Rule{{Pattern: "a", Replacement: "b"}}))
	fn, err = ResolverFor("")
	require.NoError(t, err)
	assert.NotNil(t, fn)
	_, err = ResolverFor("simultaneous")
	assert.Error(t, err)
}

func TestAnalyzeContextAcquisition(t *testing.T) {
	ctx := AnalyzeContext(
		"Apple is looking at buying a UK startup in Silicon Valley for $1 billion.",
		[]Entity{
			{Text: "Apple", Label: "ORG"},
			{Text: "UK", Label: "GPE"},
			{Text: "Silicon Valley", Label: "LOC"},
			{Text: "$1 billion", Label: "MONEY"},
		},
	)
	assert.Equal(t, []string{"Apple"}, ctx.Organizations)
	assert.Equal(t, []string{"UK", "Silicon Valley"}, ctx.Locations)
	assert.Equal(t, []string{"$1 billion"}, ctx.Money)
	assert.Empty(t, ctx.Dates)
	assert.Equal(t, TopicAcquisition, ctx.Topic)
}

func TestAnalyzeContextTransaction(t *testing.T) {
	ctx := AnalyzeContext("The Merger was announced yesterday", []Entity{{Text: "yesterday", Label: "DATE"}})
	assert.Equal(t, TopicTransaction, ctx.Topic)
	assert.Equal(t, []string{"yesterday"}, ctx.Dates)
}

func TestAnalyzeContextEmpty(t *testing.T) {
	ctx := AnalyzeContext("The cat chased the mouse.", nil)
	assert.True(t, ctx.IsEmpty())
}
