// Copyright 2025 The Decoding-Us Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package dbpool opens the engine's pgxpool.Pool: a stopper-scoped
// goroutine closes the pool when its context is cancelled, a ping
// retry loop waits out a database that is still starting, and every
// step is logged through logrus.
package dbpool

import (
	"context"
	"time"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/config"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/stopper"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Options tunes Open's retry behavior.
type Options struct {
	// WaitForStartup retries a failed ping instead of failing
	// immediately, accommodating a database that is still coming up.
	WaitForStartup bool
	RetryInterval  time.Duration
}

// Open opens a pgxpool.Pool against cfg.ConnectString, sized by
// cfg.PoolMaxConns, and arranges for ctx to close it on stop.
func Open(ctx *stopper.Context, cfg *config.Config, opts Options) (*pgxpool.Pool, error) {
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 10 * time.Second
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectString)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse connect string")
	}
	poolCfg.MaxConns = cfg.PoolMaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not create pool")
	}

	ctx.Go(func() error {
		<-ctx.Stopping()
		pool.Close()
		return nil
	})

	for {
		pingErr := pool.Ping(ctx)
		if pingErr == nil {
			break
		}
		if !opts.WaitForStartup {
			return nil, errors.Wrap(pingErr, "could not ping the database")
		}
		log.WithError(pingErr).Info("waiting for database to become ready")
		select {
		case <-ctx.Done():
			return nil, context.Cause(ctx)
		case <-time.After(opts.RetryInterval):
		}
	}

	log.WithField("maxConns", cfg.PoolMaxConns).Info("opened profile engine database pool")
	return pool, nil
}
