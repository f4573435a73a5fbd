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

// Package handlers provides HTTP actions exposing the analysis
// pipeline and its individual stages.
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nlpipe/merror"
	"nlpipe/monitoring"
	"nlpipe/pipeline"
	"nlpipe/rdb"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	ActionAnalyze   = "analyze"
	ActionParse     = "parse"
	ActionFrame     = "frame"
	ActionResolve   = "resolve"
	ActionTranslate = "translate"

	maxRequestBodySize = 1 << 20
)

type Actions struct {
	analyzer *pipeline.Analyzer
	radapter *rdb.Adapter
	logger   *monitoring.AnalysisLogger
}

// runProtected converts a possible panic in fn into
// a merror.RecoveredError
func runProtected[T any](fn func() (T, error)) (ans T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = merror.RecoveredError{Msg: merror.PanicValueToErr(r).Error()}
		}
	}()
	return fn()
}

func readBody(ctx *gin.Context) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxRequestBodySize+1))
	if err != nil {
		return nil, merror.InputError{Msg: fmt.Sprintf("failed to read request body: %s", err)}
	}
	if len(data) > maxRequestBodySize {
		return nil, merror.InputError{Msg: "request body too large"}
	}
	return data, nil
}

// decodeArgs reads JSON encoded request arguments. Any problem
// is reported as merror.InputError.
func decodeArgs(ctx *gin.Context, args any) error {
	data, err := readBody(ctx)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, args); err != nil {
		return merror.InputError{Msg: fmt.Sprintf("failed to decode request: %s", err)}
	}
	return nil
}

func (a *Actions) respondError(ctx *gin.Context, err error) {
	status := merror.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("failed to process request")
	}
	uniresp.RespondWithErrorJSON(ctx, err, status)
}

func (a *Actions) logRequest(rec monitoring.AnalysisLog) {
	if a.logger == nil {
		return
	}
	rec.End = time.Now()
	a.logger.Log(rec)
}

func NewActions(
	analyzer *pipeline.Analyzer,
	radapter *rdb.Adapter,
	logger *monitoring.AnalysisLogger,
) *Actions {
	return &Actions{
		analyzer: analyzer,
		radapter: radapter,
		logger:   logger,
	}
}
