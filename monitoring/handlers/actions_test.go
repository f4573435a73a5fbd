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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nlpipe/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() (*gin.Engine, *monitoring.AnalysisLogger) {
	gin.SetMode(gin.TestMode)
	logger := monitoring.NewAnalysisLogger(nil, 10)
	actions := NewActions(logger, time.UTC)
	engine := gin.New()
	engine.GET("/monitoring/load", actions.ServiceLoad)
	engine.GET("/monitoring/load/:action", actions.ActionLoad)
	engine.GET("/monitoring/recent", actions.RecentRecords)
	return engine, logger
}

func doGet(engine *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestServiceLoad(t *testing.T) {
	engine, logger := newTestEngine()
	now := time.Now()
	logger.Log(monitoring.AnalysisLog{Action: "analyze", Begin: now.Add(-time.Second), End: now})

	w := doGet(engine, "/monitoring/load?span=total")
	require.Equal(t, http.StatusOK, w.Code)
	var ans map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	assert.Equal(t, 1.0, ans["numRequests"])

	w = doGet(engine, "/monitoring/load?span=weekly")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActionLoad(t *testing.T) {
	engine, logger := newTestEngine()
	now := time.Now()
	logger.Log(monitoring.AnalysisLog{Action: "parse", Begin: now.Add(-time.Second), End: now})

	w := doGet(engine, "/monitoring/load/parse")
	assert.Equal(t, http.StatusOK, w.Code)
	w = doGet(engine, "/monitoring/load/translate?span=total")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecentRecords(t *testing.T) {
	engine, logger := newTestEngine()
	now := time.Now()
	logger.Log(monitoring.AnalysisLog{Action: "parse", Begin: now.Add(-2 * time.Hour), End: now.Add(-2 * time.Hour)})
	logger.Log(monitoring.AnalysisLog{Action: "frame", Begin: now.Add(-time.Second), End: now})

	w := doGet(engine, "/monitoring/recent")
	require.Equal(t, http.StatusOK, w.Code)
	var ans []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	assert.Len(t, ans, 2)

	w = doGet(engine, "/monitoring/recent?ago=1h")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	require.Len(t, ans, 1)
	assert.Equal(t, "frame", ans[0]["action"])
}
