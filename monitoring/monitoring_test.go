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

package monitoring

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkRecord(action string, begin time.Time, dur time.Duration, err error) AnalysisLog {
	return AnalysisLog{
		Action:       action,
		NumSentences: 2,
		NumTrees:     2,
		StageTimes:   map[string]float64{"lexical": 0.5, "syntactic": 1.5},
		Begin:        begin,
		End:          begin.Add(dur),
		Err:          err,
	}
}

func TestLoggerAggregation(t *testing.T) {
	logger := NewAnalysisLogger(nil, 10)
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	logger.Log(mkRecord("analyze", t0, time.Second, nil))
	logger.Log(mkRecord("analyze", t0.Add(3*time.Second), time.Second, errors.New("failed")))
	logger.Log(mkRecord("parse", t0.Add(5*time.Second), 2*time.Second, nil))

	total := logger.TotalLoad()
	assert.Equal(t, 3, total.NumRequests)
	assert.Equal(t, 1, total.NumErrors)
	assert.InDelta(t, 4.0, total.TotalTimeSecs, 0.0001)
	assert.Equal(t, 7*time.Second, total.TotalSpan())
	assert.InDelta(t, 4.0/7.0, total.AvgLoad(), 0.0001)

	analyze, err := logger.TotalActionLoad("analyze")
	require.NoError(t, err)
	assert.Equal(t, 2, analyze.NumRequests)
	_, err = logger.TotalActionLoad("translate")
	assert.ErrorIs(t, err, ErrActionNotFound)

	recent, err := logger.RecentActionLoad("parse")
	require.NoError(t, err)
	assert.Equal(t, 1, recent.NumRequests)
	_, err = logger.RecentActionLoad("frame")
	assert.ErrorIs(t, err, ErrActionNotFound)
	assert.Equal(t, 3, logger.RecentLoad().NumRequests)
}

func TestRecentRecordsLimit(t *testing.T) {
	logger := NewAnalysisLogger(nil, 2)
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		logger.Log(mkRecord("analyze", t0.Add(time.Duration(i)*time.Minute), time.Second, nil))
	}
	recs := logger.RecentRecords(time.Time{})
	require.Len(t, recs, 2)
	assert.Equal(t, t0.Add(3*time.Minute), recs[0].Begin)
	assert.Equal(t, t0.Add(4*time.Minute), recs[1].Begin)

	recs = logger.RecentRecords(t0.Add(4 * time.Minute))
	assert.Len(t, recs, 1)
	assert.Equal(t, 5, logger.TotalLoad().NumRequests)
}

func TestCleanOldRecords(t *testing.T) {
	now := time.Now()
	load := ActionsLoad{
		"analyze": {NumRequests: 1, LastUpdate: now.Add(-time.Minute)},
		"parse":   {NumRequests: 1, LastUpdate: now.Add(-StaleLoadTTL - time.Hour)},
	}
	load.cleanOldRecords(now)
	assert.Len(t, load, 1)
	assert.Contains(t, load, "analyze")
}

func TestServiceLoadJSON(t *testing.T) {
	data, err := json.Marshal(ServiceLoad{})
	require.NoError(t, err)
	assert.JSONEq(
		t,
		`{"numRequests": 0, "numErrors": 0, "numCached": 0, "totalTimeSecs": 0, "avgLoad": 0}`,
		string(data),
	)
}

func TestAnalysisLogJSON(t *testing.T) {
	rec := mkRecord("analyze", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), time.Second, errors.New("boom"))
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "analyze", decoded["action"])
	assert.Equal(t, "boom", decoded["error"])
}

func TestPrometheusWriter(t *testing.T) {
	pw := NewPrometheusWriter()
	logger := NewAnalysisLogger(pw, 10)
	t0 := time.Now()
	logger.Log(mkRecord("analyze", t0, time.Millisecond, nil))
	rec := mkRecord("analyze", t0, time.Millisecond, nil)
	rec.Cached = true
	logger.Log(rec)
	logger.Log(mkRecord("parse", t0, time.Millisecond, errors.New("x")))

	assert.Equal(t, 2.0, testutil.ToFloat64(pw.requests.WithLabelValues("analyze", statusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(pw.requests.WithLabelValues("parse", statusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(pw.cacheHits))
	assert.Equal(t, 2, testutil.CollectAndCount(pw.stageDuration))
}
