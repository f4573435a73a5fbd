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

// Package pipeline runs all the analysis stages on an annotated
// document and collects their results into a Report.
package pipeline

import (
	"strings"
	"time"

	"nlpipe/chart"
	"nlpipe/lexical"
	"nlpipe/pragmatic"
	"nlpipe/resources"
	"nlpipe/semantic"
	"nlpipe/translation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Analyzer is safe for concurrent use as all the
// resources it uses are read-only.
type Analyzer struct {
	res     *resources.Bundle
	resolve func(string, []pragmatic.Rule) string
}

func toMillis(dur time.Duration) float64 {
	return float64(dur.Microseconds()) / 1000
}

func semanticTokens(tokens []lexical.Token) []semantic.Token {
	ans := make([]semantic.Token, len(tokens))
	for i, t := range tokens {
		ans[i] = semantic.Token{Text: t.Text, POS: t.POS}
	}
	return ans
}

func entityText(ent lexical.Entity, words []string) string {
	if ent.Text != "" {
		return ent.Text
	}
	return strings.Join(words[ent.Start:ent.End], " ")
}

// Parse runs the syntactic analysis of a single sentence. The grammar
// is selected by the dispatch table, punctuation is removed before
// parsing.
func (a *Analyzer) Parse(analysis lexical.SentenceAnalysis) SentenceParse {
	key, g := a.res.Dispatch.Select(analysis.Content)
	return SentenceParse{
		Sentence: analysis.Text,
		Grammar:  key,
		Tokens:   analysis.Content,
		Trees:    chart.ParseN(g, analysis.Content, a.res.MaxTrees),
	}
}

func contentWords(doc *lexical.Document) []string {
	var ans []string
	for _, w := range doc.Words() {
		if !lexical.IsPunctuation(w) && !lexical.IsStopWord(w) {
			ans = append(ans, w)
		}
	}
	return ans
}

func (a *Analyzer) semanticStage(doc *lexical.Document) SemanticResult {
	tagSet := a.res.TagSet
	frame := tagSet.ExtractFrame(semanticTokens(doc.Tokens()))
	ans := SemanticResult{
		Frame:     frame,
		Text:      frame.String(),
		TagSet:    tagSet.Name,
		Sentences: make([]SentenceFrame, len(doc.Sentences)),
		Synonyms:  a.res.Synonyms.FindSynonyms(contentWords(doc)),
	}
	for i, s := range doc.Sentences {
		sf := tagSet.ExtractFrame(semanticTokens(s.Tokens))
		ans.Sentences[i] = SentenceFrame{Sentence: s.Text, Frame: sf, Text: sf.String()}
	}
	return ans
}

func (a *Analyzer) pragmaticStage(doc *lexical.Document) PragmaticResult {
	text := doc.FullText()
	words := doc.Words()
	entities := make([]pragmatic.Entity, len(doc.Entities))
	for i, ent := range doc.Entities {
		entities[i] = pragmatic.Entity{Text: entityText(ent, words), Label: ent.Label}
	}
	return PragmaticResult{
		ResolverMode: a.res.ResolverMode,
		ResolvedText: a.resolve(text, a.res.ContextRules),
		Entities:     entities,
		Context:      pragmatic.AnalyzeContext(text, entities),
	}
}

func (a *Analyzer) translationStage(doc *lexical.Document) TranslationResult {
	words := doc.Words()
	spans := make([]translation.EntitySpan, len(doc.Entities))
	for i, ent := range doc.Entities {
		spans[i] = translation.EntitySpan{
			Start: ent.Start,
			End:   ent.End,
			Label: ent.Label,
			Text:  ent.Text,
		}
	}
	return TranslationResult{
		WordByWord: translation.WordByWord(words, a.res.Table),
		Translated: translation.Translate(words, spans, a.res.Table),
	}
}

// Analyze runs all the stages in order. The document is expected
// to be valid (see lexical.Document.Validate).
func (a *Analyzer) Analyze(doc *lexical.Document) *Report {
	ans := &Report{
		ID:         uuid.New().String(),
		Created:    time.Now(),
		Text:       doc.FullText(),
		StageTimes: make(map[string]float64, len(Stages)),
	}
	t0 := time.Now()
	ans.Lexical = lexical.Analyze(doc)
	ans.StageTimes[StageLexical] = toMillis(time.Since(t0))

	t0 = time.Now()
	ans.Syntactic = make([]SentenceParse, len(ans.Lexical))
	for i, sa := range ans.Lexical {
		ans.Syntactic[i] = a.Parse(sa)
	}
	ans.StageTimes[StageSyntactic] = toMillis(time.Since(t0))

	t0 = time.Now()
	ans.Semantic = a.semanticStage(doc)
	ans.StageTimes[StageSemantic] = toMillis(time.Since(t0))

	t0 = time.Now()
	ans.Pragmatic = a.pragmaticStage(doc)
	ans.StageTimes[StagePragmatic] = toMillis(time.Since(t0))

	t0 = time.Now()
	ans.Translation = a.translationStage(doc)
	ans.StageTimes[StageTranslation] = toMillis(time.Since(t0))

	log.Debug().
		Str("analysisId", ans.ID).
		Int("sentences", len(doc.Sentences)).
		Int("trees", ans.NumTrees()).
		Msg("document analyzed")
	return ans
}

// Resources returns the resource bundle used by the analyzer
func (a *Analyzer) Resources() *resources.Bundle {
	return a.res
}

// Resolve applies context rules using the configured resolver mode
func (a *Analyzer) Resolve(text string) string {
	return a.resolve(text, a.res.ContextRules)
}

func NewAnalyzer(res *resources.Bundle) (*Analyzer, error) {
	resolve, err := pragmatic.ResolverFor(res.ResolverMode)
	if err != nil {
		return nil, err
	}
	return &Analyzer{res: res, resolve: resolve}, nil
}
