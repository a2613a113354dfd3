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

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/repo"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store"
	"github.com/jackc/pgx/v5"
)

// SourceRepo is the Postgres-backed repo.Sources implementation.
type SourceRepo struct{}

var _ repo.Sources = (*SourceRepo)(nil)

const sourceColumns = `id, version, sync_state, at_uri, created_at, updated_at,
	profile_id, type, vendor, test_name, reference_build, method_tier, base_weight`

const insertSourceSQL = `
INSERT INTO y_profile_source (profile_id, type, vendor, test_name, reference_build, method_tier, base_weight)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING ` + sourceColumns

const updateSourceSQL = `
UPDATE y_profile_source SET version = version + 1, updated_at = now(),
	vendor = $3, test_name = $4, reference_build = $5, method_tier = $6, base_weight = $7,
	sync_state = $8, at_uri = $9
WHERE id = $1 AND version = $2
RETURNING ` + sourceColumns

const selectSourceByIDSQL = `SELECT ` + sourceColumns + ` FROM y_profile_source WHERE id = $1`
const selectSourcesByProfileSQL = `SELECT ` + sourceColumns + ` FROM y_profile_source WHERE profile_id = $1 ORDER BY id`
const deleteSourceSQL = `DELETE FROM y_profile_source WHERE id = $1`

func scanSource(row pgx.Row) (*model.YProfileSource, error) {
	var s model.YProfileSource
	err := row.Scan(&s.ID, &s.Version, &s.SyncState, &s.AtURI, &s.CreatedAt, &s.UpdatedAt,
		&s.ProfileID, &s.Type, &s.Vendor, &s.TestName, &s.ReferenceBuild, &s.MethodTier, &s.BaseWeight)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Insert implements repo.Sources.
func (r *SourceRepo) Insert(ctx context.Context, s *model.YProfileSource) (*model.YProfileSource, error) {
	tx := store.FromContext(ctx)
	row := tx.QueryRow(ctx, insertSourceSQL, s.ProfileID, s.Type, s.Vendor, s.TestName, s.ReferenceBuild, s.MethodTier, s.BaseWeight)
	out, err := scanSource(row)
	if err != nil {
		return nil, store.DatabaseError("YProfileSource", err)
	}
	return out, nil
}

// Update implements repo.Sources.
func (r *SourceRepo) Update(ctx context.Context, s *model.YProfileSource) (*model.YProfileSource, error) {
	tx := store.FromContext(ctx)
	row := tx.QueryRow(ctx, updateSourceSQL, s.ID, s.Version, s.Vendor, s.TestName, s.ReferenceBuild, s.MethodTier, s.BaseWeight, s.SyncState, s.AtURI)
	out, err := scanSource(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			if exists, checkErr := rowExists(ctx, `SELECT id FROM y_profile_source WHERE id = $1`, s.ID); checkErr == nil && !exists {
				return nil, store.NotFound("YProfileSource", "no such source")
			}
			return nil, store.VersionConflict("YProfileSource")
		}
		return nil, store.DatabaseError("YProfileSource", err)
	}
	return out, nil
}

// FindByID implements repo.Sources.
func (r *SourceRepo) FindByID(ctx context.Context, id int64) (*model.YProfileSource, bool, error) {
	tx := store.FromContext(ctx)
	out, err := scanSource(tx.QueryRow(ctx, selectSourceByIDSQL, id))
	return notFoundOrErr(out, err, "YProfileSource")
}

// FindByProfileID implements repo.Sources.
func (r *SourceRepo) FindByProfileID(ctx context.Context, profileID int64) ([]*model.YProfileSource, error) {
	tx := store.FromContext(ctx)
	rows, err := tx.Query(ctx, selectSourcesByProfileSQL, profileID)
	if err != nil {
		return nil, store.DatabaseError("YProfileSource", err)
	}
	defer rows.Close()
	var out []*model.YProfileSource
	for rows.Next() {
		s, err := scanSource(rows)
		if err != nil {
			return nil, store.DatabaseError("YProfileSource", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete implements repo.Sources; the ON DELETE CASCADE foreign keys
// in Schema handle source calls and regions.
func (r *SourceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := store.FromContext(ctx)
	tag, err := tx.Exec(ctx, deleteSourceSQL, id)
	if err != nil {
		return false, store.DatabaseError("YProfileSource", err)
	}
	return tag.RowsAffected() > 0, nil
}
