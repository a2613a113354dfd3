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

package wiring

import (
	"github.com/JamesKane/decodingus-navigator-sub005/internal/config"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/dbpool"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/interval"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/migrate"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/query"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/reconcile"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/repo"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/stopper"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Engine bundles the engine's public service layer behind one struct
// a host process can hold onto. Pool is exposed so a caller can run
// health checks or its own migrations alongside the engine's.
type Engine struct {
	Pool      *pgxpool.Pool
	Reconcile *reconcile.Service
	Query     *query.Service
}

// ProvidePool opens the engine's connection pool, applying Schema
// first when cfg.MigrateOnStart is set.
func ProvidePool(ctx *stopper.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := dbpool.Open(ctx, cfg, dbpool.Options{WaitForStartup: true})
	if err != nil {
		return nil, err
	}
	if cfg.MigrateOnStart {
		if err := migrate.Apply(ctx, pool); err != nil {
			return nil, err
		}
	}
	return pool, nil
}

// ProvideTransactor wraps pool in the engine's production
// store.Transactor.
func ProvideTransactor(pool *pgxpool.Pool) store.Transactor {
	return store.New(pool)
}

// ProvideRepositories constructs the Postgres-backed repo.Repositories.
func ProvideRepositories() repo.Repositories {
	return postgres.Repositories()
}

// ProvideIntervalService constructs the callable-region index service.
func ProvideIntervalService(tx store.Transactor, repos repo.Repositories) *interval.Service {
	return interval.New(tx, repos.Regions)
}

// ProvideReconcileService constructs the reconciliation core.
func ProvideReconcileService(tx store.Transactor, repos repo.Repositories, cfg *config.Config, intervals *interval.Service) *reconcile.Service {
	return reconcile.New(tx, repos, nil, intervals, cfg.ConflictThreshold, cfg.DefaultReferenceBuild)
}

// ProvideQueryService constructs the read-only query layer.
func ProvideQueryService(tx store.Transactor, repos repo.Repositories, intervals *interval.Service) *query.Service {
	return query.New(tx, repos, intervals)
}
