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
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "nlpipe"
	statusOK         = "ok"
	statusError      = "error"
)

// PrometheusWriter exports analysis records as Prometheus
// metrics. It uses its own registry so more instances can
// coexist (e.g. in tests).
type PrometheusWriter struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	cacheHits     prometheus.Counter
	duration      *prometheus.HistogramVec
	stageDuration *prometheus.HistogramVec
	parseTrees    prometheus.Histogram
}

func (pw *PrometheusWriter) Registry() *prometheus.Registry {
	return pw.registry
}

func (pw *PrometheusWriter) Write(rec AnalysisLog) {
	status := statusOK
	if rec.Err != nil {
		status = statusError
	}
	pw.requests.WithLabelValues(rec.Action, status).Inc()
	if rec.Cached {
		pw.cacheHits.Inc()
	}
	pw.duration.WithLabelValues(rec.Action).Observe(rec.TimeSpent().Seconds())
	for stage, ms := range rec.StageTimes {
		pw.stageDuration.WithLabelValues(stage).Observe(ms / 1000)
	}
	if rec.NumSentences > 0 && rec.Err == nil {
		pw.parseTrees.Observe(float64(rec.NumTrees))
	}
}

func NewPrometheusWriter() *PrometheusWriter {
	ans := &PrometheusWriter{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "requests_total",
				Help:      "Number of processed API requests",
			},
			[]string{"action", "status"},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "cache_hits_total",
				Help:      "Number of results served from the cache",
			},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "request_duration_seconds",
				Help:      "Request processing time",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "stage_duration_seconds",
				Help:      "Processing time of individual pipeline stages",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"stage"},
		),
		parseTrees: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "parse_trees",
				Help:      "Number of parse trees found per document",
				Buckets:   []float64{0, 1, 2, 5, 10, 50},
			},
		),
	}
	ans.registry.MustRegister(
		ans.requests,
		ans.cacheHits,
		ans.duration,
		ans.stageDuration,
		ans.parseTrees,
	)
	return ans
}
