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
	"time"

	"github.com/bytedance/sonic"
)

// AnalysisLog describes a single processed request
type AnalysisLog struct {
	ID           string
	Action       string
	NumSentences int
	NumTrees     int
	Cached       bool
	StageTimes   map[string]float64
	Begin        time.Time
	End          time.Time
	Err          error
}

func (al AnalysisLog) TimeSpent() time.Duration {
	return al.End.Sub(al.Begin)
}

func (al AnalysisLog) MarshalJSON() ([]byte, error) {
	var errStr string
	if al.Err != nil {
		errStr = al.Err.Error()
	}
	return sonic.Marshal(
		struct {
			ID           string             `json:"id,omitempty"`
			Action       string             `json:"action"`
			NumSentences int                `json:"numSentences"`
			NumTrees     int                `json:"numTrees"`
			Cached       bool               `json:"cached"`
			StageTimes   map[string]float64 `json:"stageTimes,omitempty"`
			Begin        time.Time          `json:"begin"`
			End          time.Time          `json:"end"`
			Error        string             `json:"error,omitempty"`
		}{
			ID:           al.ID,
			Action:       al.Action,
			NumSentences: al.NumSentences,
			NumTrees:     al.NumTrees,
			Cached:       al.Cached,
			StageTimes:   al.StageTimes,
			Begin:        al.Begin,
			End:          al.End,
			Error:        errStr,
		},
	)
}

// ---

type ServiceLoad struct {
	NumRequests   int
	NumErrors     int
	NumCached     int
	TotalTimeSecs float64
	FirstUpdate   time.Time
	LastUpdate    time.Time
}

// TotalSpan returns time span covered by the load info
func (sl ServiceLoad) TotalSpan() time.Duration {
	return sl.LastUpdate.Sub(sl.FirstUpdate)
}

// AvgLoad returns a ratio of time spent by processing
// requests to the total time span.
func (sl ServiceLoad) AvgLoad() float64 {
	span := sl.TotalSpan().Seconds()
	if sl.TotalTimeSecs == 0 || span <= 0 {
		return 0
	}
	return sl.TotalTimeSecs / span
}

func (sl ServiceLoad) update(rec AnalysisLog) ServiceLoad {
	if sl.FirstUpdate.IsZero() || rec.Begin.Before(sl.FirstUpdate) {
		sl.FirstUpdate = rec.Begin
	}
	if rec.End.After(sl.LastUpdate) {
		sl.LastUpdate = rec.End
	}
	sl.NumRequests++
	if rec.Err != nil {
		sl.NumErrors++
	}
	if rec.Cached {
		sl.NumCached++
	}
	sl.TotalTimeSecs += rec.TimeSpent().Seconds()
	return sl
}

func (sl ServiceLoad) MarshalJSON() ([]byte, error) {
	var t0, t1 *time.Time
	if !sl.FirstUpdate.IsZero() {
		t0 = &sl.FirstUpdate
	}
	if !sl.LastUpdate.IsZero() {
		t1 = &sl.LastUpdate
	}
	return sonic.Marshal(
		struct {
			NumRequests   int        `json:"numRequests"`
			NumErrors     int        `json:"numErrors"`
			NumCached     int        `json:"numCached"`
			TotalTimeSecs float64    `json:"totalTimeSecs"`
			FirstUpdate   *time.Time `json:"firstUpdate,omitempty"`
			LastUpdate    *time.Time `json:"lastUpdate,omitempty"`
			AvgLoad       float64    `json:"avgLoad"`
		}{
			NumRequests:   sl.NumRequests,
			NumErrors:     sl.NumErrors,
			NumCached:     sl.NumCached,
			TotalTimeSecs: sl.TotalTimeSecs,
			FirstUpdate:   t0,
			LastUpdate:    t1,
			AvgLoad:       sl.AvgLoad(),
		},
	)
}

// ---

// ActionsLoad contains load info per API action
type ActionsLoad map[string]ServiceLoad

func (al ActionsLoad) SumLoad() ServiceLoad {
	var ans ServiceLoad
	for _, v := range al {
		if ans.FirstUpdate.IsZero() || v.FirstUpdate.Before(ans.FirstUpdate) {
			ans.FirstUpdate = v.FirstUpdate
		}
		if v.LastUpdate.After(ans.LastUpdate) {
			ans.LastUpdate = v.LastUpdate
		}
		ans.NumRequests += v.NumRequests
		ans.NumErrors += v.NumErrors
		ans.NumCached += v.NumCached
		ans.TotalTimeSecs += v.TotalTimeSecs
	}
	return ans
}

func (al ActionsLoad) cleanOldRecords(now time.Time) {
	for k, v := range al {
		if now.Sub(v.LastUpdate) > StaleLoadTTL {
			delete(al, k)
		}
	}
}
