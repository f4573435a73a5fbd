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
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"nlpipe/merror"

	"github.com/rs/zerolog/log"
)

// CacheKey derives a cache key from the result type, a variant
// of the producing configuration (e.g. a fingerprint of loaded
// resources) and a request payload. Equal inputs always produce
// equal keys.
func CacheKey(prefix string, rt ResultType, variant string, payload []byte) string {
	h := sha1.New()
	h.Write([]byte(variant))
	h.Write([]byte{0})
	h.Write(payload)
	return fmt.Sprintf("%s:%s:%s", prefix, rt, hex.EncodeToString(h.Sum(nil)))
}

// CacheResult returns a cached result for the payload if available.
// Otherwise it calls fn, stores its (JSON encoded) result and returns
// it. The second returned value tells whether the result came from
// the cache. Cache failures are only logged and never prevent fn from
// being called. For a nil adapter, fn is always called.
func (a *Adapter) CacheResult(
	ctx context.Context,
	rt ResultType,
	variant string,
	payload []byte,
	fn func() (any, error),
) (json.RawMessage, bool, error) {
	if a == nil {
		return encodeResult(fn)
	}
	key := CacheKey(a.keyPrefix, rt, variant, payload)
	data, found, err := a.Get(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read cache, bypassing")

	} else if found {
		var cached CachedResult
		if err := json.Unmarshal(data, &cached); err != nil {
			log.Error().Err(err).Str("key", key).Msg("invalid cache entry, bypassing")

		} else {
			log.Debug().Str("key", key).Dur("age", cached.Age()).Msg("cache hit")
			return cached.Value, true, nil
		}
	}
	value, _, err := encodeResult(fn)
	if err != nil {
		return nil, false, err
	}
	entry, err := json.Marshal(CachedResult{
		Key:        key,
		ResultType: rt,
		Value:      value,
		Created:    time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to encode cache entry")
		return value, false, nil
	}
	if err := a.Set(ctx, key, entry); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to write cache")
	}
	return value, false, nil
}

func encodeResult(fn func() (any, error)) (json.RawMessage, bool, error) {
	v, err := fn()
	if err != nil {
		return nil, false, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false, merror.InternalError{Msg: fmt.Sprintf("failed to encode result: %s", err)}
	}
	return data, false, nil
}
