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

package handlers

import (
	"fmt"
	"time"

	"nlpipe/chart"
	"nlpipe/grammar"
	"nlpipe/merror"
	"nlpipe/monitoring"
	"nlpipe/pragmatic"
	"nlpipe/resources"
	"nlpipe/semantic"
	"nlpipe/translation"

	"github.com/czcorpus/cnc-gokit/unireq"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

// ---- parse

const (
	// maxInlineGrammarTokens limits the input size for client
	// provided grammars which may be arbitrarily ambiguous
	maxInlineGrammarTokens = 40
	maxInlineGrammarRules  = 200
)

type parseArgs struct {
	Tokens []string `json:"tokens"`

	// Grammar is a key of a configured grammar. If empty,
	// the grammar is selected by the dispatch table.
	Grammar string `json:"grammar"`

	// Rules may contain an inline grammar in the CFG notation.
	// It takes precedence over Grammar.
	Rules string `json:"rules"`
	Start string `json:"start"`
}

type parseResponse struct {
	Grammar  string        `json:"grammar"`
	Trees    []*chart.Tree `json:"trees"`
	NumTrees int           `json:"numTrees"`
	Message  string        `json:"message,omitempty"`
}

func (a *Actions) selectGrammar(args parseArgs) (string, *grammar.Grammar, error) {
	if args.Rules != "" {
		if len(args.Tokens) > maxInlineGrammarTokens {
			return "", nil, merror.InputError{
				Msg: fmt.Sprintf("too many tokens for an inline grammar (max. %d)", maxInlineGrammarTokens),
			}
		}
		g, err := grammar.ParseCFGWithStart(args.Rules, args.Start)
		if err != nil {
			return "", nil, merror.InputError{Msg: fmt.Sprintf("invalid inline grammar: %s", err)}
		}
		if g.NumRules() > maxInlineGrammarRules {
			return "", nil, merror.InputError{
				Msg: fmt.Sprintf("too many rules in an inline grammar (max. %d)", maxInlineGrammarRules),
			}
		}
		return "", g, nil
	}
	dispatch := a.analyzer.Resources().Dispatch
	if args.Grammar != "" {
		g, ok := dispatch.Grammar(args.Grammar)
		if !ok {
			return "", nil, merror.InputError{Msg: fmt.Sprintf("unknown grammar `%s`", args.Grammar)}
		}
		return args.Grammar, g, nil
	}
	key, g := dispatch.Select(args.Tokens)
	return key, g, nil
}

// treeLimit is the maximum number of trees a single parse request
// may produce. Unlike the pipeline, the API never enumerates all
// the trees.
func (a *Actions) treeLimit() int {
	if limit := a.analyzer.Resources().MaxTrees; limit > 0 {
		return limit
	}
	return resources.DfltMaxTreesPerSentence
}

// Parse returns parse trees of a token sequence. The number
// of trees can be lowered by the `maxTrees` URL argument
// (1 up to the configured limit).
func (a *Actions) Parse(ctx *gin.Context) {
	rec := monitoring.AnalysisLog{Action: ActionParse, Begin: time.Now(), NumSentences: 1}
	defer func() { a.logRequest(rec) }()

	limit := a.treeLimit()
	maxTrees, ok := unireq.GetURLIntArgOrFail(ctx, "maxTrees", limit)
	if !ok {
		return
	}
	if maxTrees <= 0 || maxTrees > limit {
		rec.Err = merror.InputError{Msg: fmt.Sprintf("maxTrees must be between 1 and %d", limit)}
		a.respondError(ctx, rec.Err)
		return
	}
	var args parseArgs
	if err := decodeArgs(ctx, &args); err != nil {
		rec.Err = err
		a.respondError(ctx, err)
		return
	}
	key, g, err := a.selectGrammar(args)
	if err != nil {
		rec.Err = err
		a.respondError(ctx, err)
		return
	}
	trees, err := runProtected(func() ([]*chart.Tree, error) {
		return chart.ParseN(g, args.Tokens, maxTrees), nil
	})
	if err != nil {
		rec.Err = err
		a.respondError(ctx, err)
		return
	}
	ans := parseResponse{Grammar: key, Trees: trees, NumTrees: len(trees)}
	if len(trees) == 0 {
		ans.Trees = []*chart.Tree{}
		ans.Message = "no parse tree found with the grammar"
	}
	rec.NumTrees = len(trees)
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// ---- frame

type frameArgs struct {
	Tokens []semantic.Token `json:"tokens"`
	TagSet string           `json:"tagSet"`
}

type frameResponse struct {
	Frame  semantic.Frame `json:"frame"`
	Text   string         `json:"text"`
	TagSet string         `json:"tagSet"`
}

func (a *Actions) Frame(ctx *gin.Context) {
	rec := monitoring.AnalysisLog{Action: ActionFrame, Begin: time.Now()}
	defer func() { a.logRequest(rec) }()

	var args frameArgs
	if err := decodeArgs(ctx, &args); err != nil {
		rec.Err = err
		a.respondError(ctx, err)
		return
	}
	tagSet := a.analyzer.Resources().TagSet
	if args.TagSet != "" {
		var ok bool
		tagSet, ok = semantic.TagSetByName(args.TagSet)
		if !ok {
			rec.Err = merror.InputError{Msg: fmt.Sprintf("unknown tag set `%s`", args.TagSet)}
			a.respondError(ctx, rec.Err)
			return
		}
	}
	frame := tagSet.ExtractFrame(args.Tokens)
	uniresp.WriteJSONResponse(
		ctx.Writer,
		frameResponse{Frame: frame, Text: frame.String(), TagSet: tagSet.Name},
	)
}

// ---- resolve

type resolveArgs struct {
	Text string                 `json:"text"`
	Mode pragmatic.ResolverMode `json:"mode"`

	// Rules replace the configured context rules if non-empty
	Rules    []pragmatic.Rule   `json:"rules"`
	Entities []pragmatic.Entity `json:"entities"`
}

type resolveResponse struct {
	ResolvedText string                 `json:"resolvedText"`
	Mode         pragmatic.ResolverMode `json:"mode"`
	Context      *pragmatic.Context     `json:"context,omitempty"`
}

func (a *Actions) Resolve(ctx *gin.Context) {
	rec := monitoring.AnalysisLog{Action: ActionResolve, Begin: time.Now()}
	defer func() { a.logRequest(rec) }()

	var args resolveArgs
	if err := decodeArgs(ctx, &args); err != nil {
		rec.Err = err
		a.respondError(ctx, err)
		return
	}
	res := a.analyzer.Resources()
	mode := args.Mode
	if mode == "" {
		mode = res.ResolverMode
	}
	resolve, err := pragmatic.ResolverFor(mode)
	if err != nil {
		rec.Err = merror.InputError{Msg: err.Error()}
		a.respondError(ctx, rec.Err)
		return
	}
	rules := res.ContextRules
	if len(args.Rules) > 0 {
		rules = args.Rules
	}
	ans := resolveResponse{ResolvedText: resolve(args.Text, rules), Mode: mode}
	if len(args.Entities) > 0 {
		c := pragmatic.AnalyzeContext(args.Text, args.Entities)
		ans.Context = &c
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// ---- translate

type translateArgs struct {
	Tokens   []string                 `json:"tokens"`
	Entities []translation.EntitySpan `json:"entities"`
}

type translateResponse struct {
	Translated string `json:"translated"`
	WordByWord string `json:"wordByWord"`
}

func (a *Actions) Translate(ctx *gin.Context) {
	rec := monitoring.AnalysisLog{Action: ActionTranslate, Begin: time.Now()}
	defer func() { a.logRequest(rec) }()

	var args translateArgs
	if err := decodeArgs(ctx, &args); err != nil {
		rec.Err = err
		a.respondError(ctx, err)
		return
	}
	table := a.analyzer.Resources().Table
	uniresp.WriteJSONResponse(
		ctx.Writer,
		translateResponse{
			Translated: translation.Translate(args.Tokens, args.Entities, table),
			WordByWord: translation.WordByWord(args.Tokens, table),
		},
	)
}
