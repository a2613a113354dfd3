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

// Package migrate applies the engine's schema at pool-open time:
// idempotent CREATE TABLE IF NOT EXISTS DDL guarded by a single
// stored version integer, with no up/down migration chain and no
// external tooling.
package migrate

import (
	"context"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/store/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Apply executes postgres.Schema against pool and verifies the stored
// schema version. It is safe to call on every process start: every
// statement in Schema is a CREATE TABLE/INDEX IF NOT EXISTS, so a
// schema already at the current definition is a no-op. A database
// created by a different SchemaVersion fails the open.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgres.Schema); err != nil {
		return errors.Wrap(err, "could not apply profile engine schema")
	}

	var stored int32
	if err := pool.QueryRow(ctx, `
INSERT INTO y_schema_meta (version) VALUES ($1)
ON CONFLICT (singleton) DO UPDATE SET version = y_schema_meta.version
RETURNING version`, postgres.SchemaVersion).Scan(&stored); err != nil {
		return errors.Wrap(err, "could not read stored schema version")
	}
	if stored != postgres.SchemaVersion {
		return errors.Errorf("schema version mismatch: database has %d, this build expects %d", stored, postgres.SchemaVersion)
	}

	log.WithField("schemaVersion", stored).Info("applied profile engine schema")
	return nil
}
