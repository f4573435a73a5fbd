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
	"errors"
	"fmt"
	"net/http"
	"time"

	"nlpipe/monitoring"

	"github.com/czcorpus/cnc-gokit/datetime"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

type timeSpan string

func (ts timeSpan) Validate() error {
	if ts != spanTypeRecent && ts != spanTypeTotal {
		return fmt.Errorf("unknown time span `%s`", ts)
	}
	return nil
}

const (
	spanTypeRecent timeSpan = "recent"
	spanTypeTotal  timeSpan = "total"
)

type Actions struct {
	logger   *monitoring.AnalysisLogger
	location *time.Location
}

// spanArg reads the `span` URL argument. On invalid value, an error
// response is written and false is returned.
func spanArg(ctx *gin.Context) (timeSpan, bool) {
	span := timeSpan(ctx.DefaultQuery("span", string(spanTypeRecent)))
	if err := span.Validate(); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return span, false
	}
	return span, true
}

// ServiceLoad shows load aggregated over all the actions
func (a *Actions) ServiceLoad(ctx *gin.Context) {
	span, ok := spanArg(ctx)
	if !ok {
		return
	}
	if span == spanTypeTotal {
		uniresp.WriteJSONResponse(ctx.Writer, a.logger.TotalLoad())
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, a.logger.RecentLoad())
}

// ActionLoad shows load of a single action (analyze, parse, ...)
func (a *Actions) ActionLoad(ctx *gin.Context) {
	span, ok := spanArg(ctx)
	if !ok {
		return
	}
	getLoad := a.logger.RecentActionLoad
	if span == spanTypeTotal {
		getLoad = a.logger.TotalActionLoad
	}
	ans, err := getLoad(ctx.Param("action"))
	if errors.Is(err, monitoring.ErrActionNotFound) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusNotFound)
		return

	} else if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// RecentRecords lists the most recent analyses. An optional `ago`
// argument (e.g. `30m`, `2h`) limits the age of the records.
func (a *Actions) RecentRecords(ctx *gin.Context) {
	var since time.Time
	if ago := ctx.Query("ago"); ago != "" {
		dur, err := datetime.ParseDuration(ago)
		if err != nil {
			uniresp.RespondWithErrorJSON(ctx, err, http.StatusUnprocessableEntity)
			return
		}
		since = time.Now().In(a.location).Add(-dur)
	}
	uniresp.WriteJSONResponse(ctx.Writer, a.logger.RecentRecords(since))
}

func NewActions(
	logger *monitoring.AnalysisLogger,
	location *time.Location,
) *Actions {
	return &Actions{logger: logger, location: location}
}
