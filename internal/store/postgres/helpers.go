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

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reports whether err is a Postgres unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// notFoundOrErr converts a pgx.ErrNoRows scan result into the (nil,
// false, nil) shape repo finders use, and wraps any other error as a
// *store.Error.
func notFoundOrErr[T any](out *T, err error, entity string) (*T, bool, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, store.DatabaseError(entity, err)
	}
	return out, true, nil
}

// nullTime returns nil for a zero time.Time so it is stored as SQL
// NULL rather than the zero instant.
func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// rowExists distinguishes a vanished row from a stale version after an
// optimistic UPDATE matched nothing. sql must select a single column
// by id.
func rowExists(ctx context.Context, sql string, id int64) (bool, error) {
	tx := store.FromContext(ctx)
	var found int64
	err := tx.QueryRow(ctx, sql, id).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
