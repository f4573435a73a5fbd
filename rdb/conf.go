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
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	dfltPort       = 6379
	dfltKeyPrefix  = "nlpipe"
	dfltTTLSecs    = 3600
	dfltTimeoutSec = 5
)

// Conf configures the Redis result cache
type Conf struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	DB       int    `json:"db"`
	Password string `json:"password"`

	// KeyPrefix is prepended to all the cache keys
	KeyPrefix string `json:"keyPrefix"`

	// TTLSecs specifies how long a cached result lives.
	TTLSecs int `json:"ttlSecs"`

	ConnectTimeoutSecs int `json:"connectTimeoutSecs"`
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return nil
	}
	if conf.Host == "" {
		return fmt.Errorf("missing `%s.host`", confContext)
	}
	if conf.Port == 0 {
		conf.Port = dfltPort
		log.Warn().
			Int("value", conf.Port).
			Msgf("`%s.port` not set, using default", confContext)
	}
	if conf.KeyPrefix == "" {
		conf.KeyPrefix = dfltKeyPrefix
		log.Warn().
			Str("value", conf.KeyPrefix).
			Msgf("`%s.keyPrefix` not set, using default", confContext)
	}
	if conf.TTLSecs == 0 {
		conf.TTLSecs = dfltTTLSecs
		log.Warn().
			Int("value", conf.TTLSecs).
			Msgf("`%s.ttlSecs` not set, using default", confContext)

	} else if conf.TTLSecs < 0 {
		return fmt.Errorf("invalid `%s.ttlSecs` value %d", confContext, conf.TTLSecs)
	}
	if conf.ConnectTimeoutSecs <= 0 {
		conf.ConnectTimeoutSecs = dfltTimeoutSec
	}
	return nil
}
