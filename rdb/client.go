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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Adapter wraps a Redis client used as a result cache.
// A nil *Adapter is valid and represents a disabled cache.
type Adapter struct {
	ctx       context.Context
	c         *redis.Client
	keyPrefix string
	ttl       time.Duration
	timeout   time.Duration
}

// TestConnection pings the server repeatedly until it responds
// or the configured timeout elapses.
func (a *Adapter) TestConnection() error {
	if a == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(a.ctx, a.timeout)
	defer cancel()
	tick := time.NewTicker(500 * time.Millisecond)
	defer tick.Stop()
	for {
		err := a.c.Ping(ctx).Err()
		if err == nil {
			log.Info().Str("address", a.c.Options().Addr).Msg("connected to Redis")
			return nil
		}
		log.Warn().Err(err).Msg("Redis not ready, retrying")
		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to connect to Redis: %w", err)
		case <-tick.C:
		}
	}
}

// Get returns raw data stored under the key. The second return
// value is false if there is no such key.
func (a *Adapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := a.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil

	} else if err != nil {
		return nil, false, fmt.Errorf("failed to get cached value %s: %w", key, err)
	}
	return data, true, nil
}

func (a *Adapter) Set(ctx context.Context, key string, data []byte) error {
	if err := a.c.Set(ctx, key, data, a.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cached value %s: %w", key, err)
	}
	return nil
}

func (a *Adapter) Close() error {
	if a == nil {
		return nil
	}
	return a.c.Close()
}

// NewAdapter creates a cache adapter. For a nil conf, the
// function returns nil (i.e. a disabled cache).
func NewAdapter(conf *Conf) *Adapter {
	if conf == nil {
		return nil
	}
	return &Adapter{
		c: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
			Password: conf.Password,
			DB:       conf.DB,
		}),
		ctx:       context.Background(),
		keyPrefix: conf.KeyPrefix,
		ttl:       time.Duration(conf.TTLSecs) * time.Second,
		timeout:   time.Duration(conf.ConnectTimeoutSecs) * time.Second,
	}
}
