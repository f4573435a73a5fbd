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

package rdb

import (
	"encoding/json"
	"time"
)

const (
	ResultTypeAnalysis ResultType = "analysis"
)

type ResultType string

func (rt ResultType) String() string {
	return string(rt)
}

// ----------------

// CachedResult is a stored result of an expensive operation.
// Value holds JSON encoded data of the result type.
type CachedResult struct {
	Key        string          `json:"key"`
	ResultType ResultType      `json:"resultType"`
	Value      json.RawMessage `json:"value"`
	Created    time.Time       `json:"created"`
}

func (cr *CachedResult) Age() time.Duration {
	return time.Since(cr.Created)
}
