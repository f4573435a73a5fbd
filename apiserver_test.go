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

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nlpipe/cnf"
	"nlpipe/general"
	"nlpipe/monitoring"
	"nlpipe/pipeline"
	"nlpipe/resources"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, conf *cnf.Conf) *apiServer {
	gin.SetMode(gin.TestMode)
	require.NoError(t, cnf.ValidateAndDefaults(conf))
	bundle, err := resources.Load(conf.Resources)
	require.NoError(t, err)
	analyzer, err := pipeline.NewAnalyzer(bundle)
	require.NoError(t, err)
	metrics := monitoring.NewPrometheusWriter()
	logger := monitoring.NewAnalysisLogger(metrics, conf.NumRecentAnalyses)
	return newAPIServer(
		conf, general.VersionInfo{Version: "1.0.0"}, nil, analyzer, logger, metrics)
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestServerInfo(t *testing.T) {
	api := newTestServer(t, cnf.DefaultConfig())
	w := serve(api.Engine(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"NLPIPE"`)
	assert.Contains(t, w.Body.String(), `"transitive"`)
	assert.Contains(t, w.Body.String(), `"cacheUsed":false`)
}

func TestCORSAllowedOrigin(t *testing.T) {
	conf := cnf.DefaultConfig()
	conf.CorsAllowedOrigins = []string{"https://example.org"}
	engine := newTestServer(t, conf).Engine()

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "https://example.org")
	w := serve(engine, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://example.org", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "https://elsewhere.org")
	w = serve(engine, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMonitoringAuth(t *testing.T) {
	conf := cnf.DefaultConfig()
	conf.AuthTokens = []string{"secret"}
	engine := newTestServer(t, conf).Engine()

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/monitoring/load", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/monitoring/load", nil)
	req.Header.Set("X-Api-Key", "secret")
	w = serve(engine, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMonitoringWithoutTokens(t *testing.T) {
	engine := newTestServer(t, cnf.DefaultConfig()).Engine()
	w := serve(engine, httptest.NewRequest(http.MethodGet, "/monitoring/load", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestUpdatesMetrics(t *testing.T) {
	engine := newTestServer(t, cnf.DefaultConfig()).Engine()
	req := httptest.NewRequest(
		http.MethodPost,
		"/translate",
		bytes.NewReader([]byte(`{"tokens": ["The", "cat"]}`)),
	)
	w := serve(engine, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"translated":"El gato"`)

	w = serve(engine, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `action="translate"`))
}

func TestUnknownRoute(t *testing.T) {
	engine := newTestServer(t, cnf.DefaultConfig()).Engine()
	w := serve(engine, httptest.NewRequest(http.MethodGet, "/nothing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCleanVersionInfo(t *testing.T) {
	assert.Equal(t, "1.2.3", cleanVersionInfo("'v1.2.3'"))
}

func TestWriteReportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeReport(&buf, &pipeline.Report{}, "xml"))
}

func TestAPIDocs(t *testing.T) {
	conf := cnf.DefaultConfig()
	conf.PublicURL = "https://nlp.example.org/api/"
	api := newTestServer(t, conf)
	assert.Equal(t, "https://nlp.example.org/api/openapi", api.openAPIURL())

	engine := api.Engine()
	w := serve(engine, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")

	w = serve(engine, httptest.NewRequest(http.MethodGet, "/openapi", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/parse"`)
}
