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
	"net/http"
	"time"

	"nlpipe/lexical"
	"nlpipe/monitoring"
	"nlpipe/pipeline"
	"nlpipe/rdb"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

const (
	cacheStatusHeader = "X-Cache-Status"
)

type grammarInfo struct {
	Key       string   `json:"key"`
	Start     string   `json:"start"`
	Triggers  []string `json:"triggers"`
	IsDefault bool     `json:"isDefault"`
	Rules     []string `json:"rules"`
	Undefined []string `json:"undefined,omitempty"`
}

// Grammars lists all the grammars available for parsing
// in the order they are tested by the dispatch.
func (a *Actions) Grammars(ctx *gin.Context) {
	dispatch := a.analyzer.Resources().Dispatch
	entries := dispatch.Entries()
	ans := make([]grammarInfo, len(entries))
	for i, entry := range entries {
		item := grammarInfo{
			Key:       entry.Key,
			Start:     entry.Grammar.Start().Name,
			Triggers:  entry.Triggers,
			IsDefault: entry.Key == dispatch.DefaultKey(),
			Rules:     make([]string, entry.Grammar.NumRules()),
		}
		for j, rule := range entry.Grammar.Rules() {
			item.Rules[j] = rule.String()
		}
		for _, sym := range entry.Grammar.Undefined() {
			item.Undefined = append(item.Undefined, sym.Name)
		}
		ans[i] = item
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// Analyze runs the whole pipeline on an annotated document
// passed as the request body. Results are cached (if Redis
// is configured) using the request body as the key.
func (a *Actions) Analyze(ctx *gin.Context) {
	rec := monitoring.AnalysisLog{Action: ActionAnalyze, Begin: time.Now()}
	defer func() { a.logRequest(rec) }()

	body, err := readBody(ctx)
	if err != nil {
		rec.Err = err
		a.respondError(ctx, err)
		return
	}
	doc, err := lexical.DecodeDocument(body)
	if err != nil {
		rec.Err = err
		a.respondError(ctx, err)
		return
	}
	rec.NumSentences = len(doc.Sentences)
	var report *pipeline.Report
	ans, cached, err := a.radapter.CacheResult(
		ctx.Request.Context(),
		rdb.ResultTypeAnalysis,
		a.analyzer.Resources().Fingerprint,
		body,
		func() (any, error) {
			var err error
			report, err = runProtected(func() (*pipeline.Report, error) {
				return a.analyzer.Analyze(doc), nil
			})
			return report, err
		},
	)
	if err != nil {
		rec.Err = err
		a.respondError(ctx, err)
		return
	}
	rec.Cached = cached
	if report != nil {
		rec.ID = report.ID
		rec.NumTrees = report.NumTrees()
		rec.StageTimes = report.StageTimes
	}
	if cached {
		ctx.Header(cacheStatusHeader, "hit")

	} else {
		ctx.Header(cacheStatusHeader, "miss")
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// AnalyzeText is like Analyze but it produces a plain text
// report with the stages written in their processing order.
// Results are not cached.
func (a *Actions) AnalyzeText(ctx *gin.Context) {
	rec := monitoring.AnalysisLog{Action: ActionAnalyze, Begin: time.Now()}
	defer func() { a.logRequest(rec) }()

	body, err := readBody(ctx)
	if err != nil {
		rec.Err = err
		a.respondError(ctx, err)
		return
	}
	doc, err := lexical.DecodeDocument(body)
	if err != nil {
		rec.Err = err
		a.respondError(ctx, err)
		return
	}
	rec.NumSentences = len(doc.Sentences)
	report, err := runProtected(func() (*pipeline.Report, error) {
		return a.analyzer.Analyze(doc), nil
	})
	if err != nil {
		rec.Err = err
		a.respondError(ctx, err)
		return
	}
	rec.ID = report.ID
	rec.NumTrees = report.NumTrees()
	rec.StageTimes = report.StageTimes
	ctx.Header("Content-Type", "text/plain; charset=utf-8")
	ctx.Status(http.StatusOK)
	if err := report.WriteText(ctx.Writer); err != nil {
		rec.Err = err
	}
}
