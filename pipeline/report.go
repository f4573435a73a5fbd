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
	"fmt"
	"io"
	"strings"
	"time"

	"nlpipe/chart"
	"nlpipe/lexical"
	"nlpipe/pragmatic"
	"nlpipe/semantic"
)

const (
	NoParseMessage    = "No parse tree found with the defined grammar."
	NoSynonymsMessage = "No synonyms found in the dictionary."

	StageLexical     = "lexical"
	StageSyntactic   = "syntactic"
	StageSemantic    = "semantic"
	StagePragmatic   = "pragmatic"
	StageTranslation = "translation"
)

// Stages lists all the pipeline stages in their processing order
var Stages = []string{
	StageLexical, StageSyntactic, StageSemantic, StagePragmatic, StageTranslation,
}

// SentenceParse is a result of the syntactic analysis
// of a single sentence
type SentenceParse struct {
	Sentence string        `json:"sentence"`
	Grammar  string        `json:"grammar"`
	Tokens   []string      `json:"tokens"`
	Trees    []*chart.Tree `json:"trees"`
}

func (sp SentenceParse) NoParse() bool {
	return len(sp.Trees) == 0
}

type SentenceFrame struct {
	Sentence string         `json:"sentence"`
	Frame    semantic.Frame `json:"frame"`
	Text     string         `json:"text"`
}

type SemanticResult struct {

	// Frame is extracted from the token sequence of the whole text
	Frame semantic.Frame `json:"frame"`

	// Text is the textual form of Frame
	Text string `json:"text"`

	TagSet    string          `json:"tagSet"`
	Sentences []SentenceFrame `json:"sentences"`

	// Synonyms of the text words found in the synonym dictionary
	Synonyms []semantic.WordSynonyms `json:"synonyms"`
}

type PragmaticResult struct {
	ResolverMode pragmatic.ResolverMode `json:"resolverMode"`
	ResolvedText string                 `json:"resolvedText"`
	Entities     []pragmatic.Entity     `json:"entities,omitempty"`
	Context      pragmatic.Context      `json:"context"`
}

type TranslationResult struct {
	WordByWord string `json:"wordByWord"`
	Translated string `json:"translated"`
}

// Report contains results of all the pipeline stages
// for a single document.
type Report struct {
	ID          string                     `json:"id"`
	Created     time.Time                  `json:"created"`
	Text        string                     `json:"text"`
	Lexical     []lexical.SentenceAnalysis `json:"lexical"`
	Syntactic   []SentenceParse            `json:"syntactic"`
	Semantic    SemanticResult             `json:"semantic"`
	Pragmatic   PragmaticResult            `json:"pragmatic"`
	Translation TranslationResult          `json:"translation"`

	// StageTimes contains processing time (in milliseconds)
	// for each stage
	StageTimes map[string]float64 `json:"stageTimes"`
}

// NumTrees returns the total number of parse trees
// found in all the sentences
func (r *Report) NumTrees() int {
	var ans int
	for _, s := range r.Syntactic {
		ans += len(s.Trees)
	}
	return ans
}

func quotedList(items []string) string {
	ans := make([]string, len(items))
	for i, item := range items {
		ans[i] = fmt.Sprintf("'%s'", item)
	}
	return "[" + strings.Join(ans, ", ") + "]"
}

func taggedList(items []lexical.TaggedWord) string {
	ans := make([]string, len(items))
	for i, item := range items {
		ans[i] = fmt.Sprintf("('%s', '%s')", item.Word, item.Tag)
	}
	return "[" + strings.Join(ans, ", ") + "]"
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// WriteText writes a human readable form of the report.
// The five stages are always printed in the processing order.
func (r *Report) WriteText(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("Original Text: %s\n", r.Text)

	ew.printf("\n1. LEXICAL ANALYSIS\n")
	sents := make([]string, len(r.Lexical))
	for i, s := range r.Lexical {
		sents[i] = s.Text
	}
	ew.printf("Sentence Segmentation: %s\n", quotedList(sents))
	for i, s := range r.Lexical {
		ew.printf("\nSentence %d: '%s'\n", i+1, s.Text)
		ew.printf("Word Tokens: %s\n", quotedList(s.Tokens))
		ew.printf("Stems: %s\n", quotedList(s.Stems))
		if len(s.Lemmas) > 0 {
			ew.printf("Lemmas: %s\n", quotedList(s.Lemmas))
		}
		if len(s.Morphology) > 0 {
			ew.printf("Morphology: %s\n", quotedList(s.Morphology))
		}
		ew.printf("POS Tags: %s\n", taggedList(s.Tagged))
		ew.printf("Stop Words: %s\n", quotedList(s.StopWords))
	}

	ew.printf("\n2. SYNTACTIC ANALYSIS\n")
	for i, sp := range r.Syntactic {
		ew.printf("\nSentence %d (grammar: %s)\n", i+1, sp.Grammar)
		if i < len(r.Lexical) && len(r.Lexical[i].Dependencies) > 0 {
			ew.printf("Dependency Parse:\n")
			for _, dep := range r.Lexical[i].Dependencies {
				ew.printf("  %-12s --> %-10s --> %-10s (Head POS: %s)\n",
					dep.Word, dep.Relation, dep.Head, dep.HeadTag)
			}
		}
		if sp.NoParse() {
			ew.printf("%s\n", NoParseMessage)
			continue
		}
		for _, tree := range sp.Trees {
			ew.printf("Parse Tree:\n%s", tree.Pretty())
		}
	}

	ew.printf("\n3. SEMANTIC ANALYSIS\n")
	ew.printf("Semantic Representation: %s\n", r.Semantic.Text)
	for i, sf := range r.Semantic.Sentences {
		ew.printf("  sentence %d: %s\n", i+1, sf.Text)
	}
	if len(r.Semantic.Synonyms) == 0 {
		ew.printf("%s\n", NoSynonymsMessage)
	}
	for _, ws := range r.Semantic.Synonyms {
		ew.printf("Synonyms for '%s': %s\n", ws.Word, strings.Join(ws.Synonyms, ", "))
	}

	ew.printf("\n4. PRAGMATIC ANALYSIS\n")
	ew.printf("Contextual meaning: %s\n", r.Pragmatic.ResolvedText)
	if len(r.Pragmatic.Entities) > 0 {
		ew.printf("Named Entities:\n")
		for _, ent := range r.Pragmatic.Entities {
			ew.printf("  %-20s --> %s\n", ent.Text, ent.Label)
		}
	}
	ctx := r.Pragmatic.Context
	if !ctx.IsEmpty() {
		ew.printf("Context Analysis:\n")
		for _, item := range []struct {
			label  string
			values []string
		}{
			{"Organizations", ctx.Organizations},
			{"Locations", ctx.Locations},
			{"Money", ctx.Money},
			{"Dates", ctx.Dates},
		} {
			if len(item.values) > 0 {
				ew.printf("  - %s: %s\n", item.label, strings.Join(item.values, ", "))
			}
		}
		if ctx.Topic != "" {
			ew.printf("  Topic: %s\n", ctx.Topic)
		}
	}

	ew.printf("\n5. MACHINE TRANSLATION\n")
	ew.printf("Word-by-word translation: %s\n", r.Translation.WordByWord)
	ew.printf("Improved translation: %s\n", r.Translation.Translated)
	return ew.err
}
