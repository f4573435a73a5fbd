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
	"context"
	"errors"
	"sync"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"
)

const (
	StaleLoadTTL             = time.Hour * 24
	tickerIntervalSecs int64 = 60
	dfltRecentLogSize        = 100
)

var (
	ErrActionNotFound = errors.New("action not found")
)

// StatusWriter exports analysis records to an external
// monitoring system.
type StatusWriter interface {
	Write(rec AnalysisLog)
}

type nullStatusWriter struct{}

func (nsw nullStatusWriter) Write(rec AnalysisLog) {}

// AnalysisLogger collects information about processed requests.
// It keeps aggregated load per action and a limited list
// of the most recent records.
type AnalysisLogger struct {
	loadData     ActionsLoad
	dataLock     sync.RWMutex
	recentLog    *collections.CircularList[AnalysisLog]
	numTicks     int64
	statusWriter StatusWriter
}

func (w *AnalysisLogger) Log(rec AnalysisLog) {
	w.dataLock.Lock()
	defer w.dataLock.Unlock()
	w.loadData[rec.Action] = w.loadData[rec.Action].update(rec)
	w.recentLog.Append(rec)
	w.statusWriter.Write(rec)
}

func (w *AnalysisLogger) TotalLoad() ServiceLoad {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	return w.loadData.SumLoad()
}

func (w *AnalysisLogger) RecentLoad() ServiceLoad {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	var ans ServiceLoad
	w.recentLog.ForEach(func(i int, item AnalysisLog) bool {
		ans = ans.update(item)
		return true
	})
	return ans
}

// RecentRecords returns the most recent records not older
// than the `since` time (a zero value means no limit).
func (w *AnalysisLogger) RecentRecords(since time.Time) []AnalysisLog {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans := make([]AnalysisLog, 0, w.recentLog.Len())
	w.recentLog.ForEach(func(i int, item AnalysisLog) bool {
		if since.IsZero() || !item.End.Before(since) {
			ans = append(ans, item)
		}
		return true
	})
	return ans
}

func (w *AnalysisLogger) TotalActionLoad(action string) (ServiceLoad, error) {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans, ok := w.loadData[action]
	if !ok {
		return ans, ErrActionNotFound
	}
	return ans, nil
}

func (w *AnalysisLogger) RecentActionLoad(action string) (ServiceLoad, error) {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	var ans ServiceLoad
	var found bool
	w.recentLog.ForEach(func(i int, item AnalysisLog) bool {
		if item.Action == action {
			ans = ans.update(item)
			found = true
		}
		return true
	})
	if found {
		return ans, nil
	}
	return ans, ErrActionNotFound
}

func (w *AnalysisLogger) Start(ctx context.Context) {
	ticksPerCleanup := int64(StaleLoadTTL.Seconds()) / tickerIntervalSecs
	log.Info().Msg("starting analysis logger")
	go func() {
		ticker := time.NewTicker(time.Duration(tickerIntervalSecs) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("requesting analysis logger stop")
				return
			case <-ticker.C:
				if w.numTicks%ticksPerCleanup == 0 {
					w.dataLock.Lock()
					w.loadData.cleanOldRecords(time.Now())
					w.dataLock.Unlock()
					w.numTicks = 0

				} else {
					w.numTicks++
				}
			}
		}
	}()
}

func (w *AnalysisLogger) Stop(ctx context.Context) error {
	log.Info().Msg("shutting down analysis logger")
	return nil
}

// NewAnalysisLogger creates a logger keeping recentLogSize
// most recent records. The statusWriter can be nil.
func NewAnalysisLogger(statusWriter StatusWriter, recentLogSize int) *AnalysisLogger {
	if statusWriter == nil {
		statusWriter = nullStatusWriter{}
	}
	if recentLogSize <= 0 {
		recentLogSize = dfltRecentLogSize
	}
	return &AnalysisLogger{
		loadData:     make(ActionsLoad),
		recentLog:    collections.NewCircularList[AnalysisLog](recentLogSize),
		statusWriter: statusWriter,
	}
}
