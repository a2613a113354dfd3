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

package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// Querier is implemented by *pgxpool.Pool, *pgxpool.Conn, and pgx.Tx:
// the set of connection-like values a repository can be handed.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Querier = (*pgxpool.Pool)(nil)
	_ Querier = (*pgxpool.Conn)(nil)
	_ Querier = (pgx.Tx)(nil)
)

type txKey struct{}

// Transactor is the persistence core's scoped-acquisition contract:
// every public service operation runs inside one of ReadOnly or
// ReadWrite. PostgresTransactor is the production implementation;
// package memstore supplies a test-only one over an in-memory backing
// store.
type Transactor interface {
	ReadOnly(ctx context.Context, block func(ctx context.Context) error) error
	ReadWrite(ctx context.Context, block func(ctx context.Context) error) error
}

// PostgresTransactor opens scoped transactions against a pgxpool.Pool.
// Repositories never open a transaction themselves; they only read the
// ambient one out of the context via FromContext.
type PostgresTransactor struct {
	pool *pgxpool.Pool
}

// New constructs a PostgresTransactor over an open pool.
func New(pool *pgxpool.Pool) *PostgresTransactor {
	return &PostgresTransactor{pool: pool}
}

var _ Transactor = (*PostgresTransactor)(nil)

// ReadOnly runs block inside a read-only transaction with
// read-committed snapshot isolation. Nested calls (an ambient
// transaction already present in ctx) reuse the outer transaction
// instead of opening a new one; a logical operation holds exactly one
// transaction.
func (t *PostgresTransactor) ReadOnly(ctx context.Context, block func(ctx context.Context) error) error {
	return t.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, block)
}

// ReadWrite runs block inside a read-write transaction, committing on
// a nil return and rolling back otherwise.
func (t *PostgresTransactor) ReadWrite(ctx context.Context, block func(ctx context.Context) error) error {
	return t.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadWrite}, block)
}

func (t *PostgresTransactor) run(ctx context.Context, opts pgx.TxOptions, block func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return block(ctx)
	}

	tx, err := t.pool.BeginTx(ctx, opts)
	if err != nil {
		return DatabaseError("transaction", err)
	}

	scoped := context.WithValue(ctx, txKey{}, tx)

	if err := block(scoped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return DatabaseError("transaction", rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return DatabaseError("transaction", err)
	}
	return nil
}

// FromContext returns the ambient transaction bound by ReadOnly or
// ReadWrite. It panics if called outside of either scope: repositories
// require an active transaction, and calling one without is a
// programming error.
func FromContext(ctx context.Context) pgx.Tx {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		panic("store: no active transaction in context; call inside Transactor.ReadOnly/ReadWrite")
	}
	return tx
}
