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

// ProfileRepo is the Postgres-backed repo.Profiles implementation.
type ProfileRepo struct{}

var _ repo.Profiles = (*ProfileRepo)(nil)

const profileColumns = `id, version, sync_state, at_uri, created_at, updated_at,
	biosample_id, consensus_haplogroup, total_variants, confirmed_count,
	novel_count, conflict_count, no_coverage_count, str_marker_count,
	str_confirmed_count, source_count, primary_source_type,
	callable_region_pct, mean_coverage, last_reconciled_at`

const insertProfileSQL = `
INSERT INTO y_profile (biosample_id, consensus_haplogroup, total_variants,
	confirmed_count, novel_count, conflict_count, no_coverage_count,
	str_marker_count, str_confirmed_count, source_count, primary_source_type,
	callable_region_pct, mean_coverage, last_reconciled_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
RETURNING ` + profileColumns

const updateProfileSQL = `
UPDATE y_profile SET version = version + 1, updated_at = now(),
	consensus_haplogroup = $3, total_variants = $4, confirmed_count = $5,
	novel_count = $6, conflict_count = $7, no_coverage_count = $8,
	str_marker_count = $9, str_confirmed_count = $10, source_count = $11,
	primary_source_type = $12, callable_region_pct = $13, mean_coverage = $14,
	last_reconciled_at = $15, sync_state = $16, at_uri = $17
WHERE id = $1 AND version = $2
RETURNING ` + profileColumns

const selectProfileByIDSQL = `SELECT ` + profileColumns + ` FROM y_profile WHERE id = $1`
const selectProfileByBiosampleSQL = `SELECT ` + profileColumns + ` FROM y_profile WHERE biosample_id = $1`
const selectAllProfilesSQL = `SELECT ` + profileColumns + ` FROM y_profile ORDER BY id`
const deleteProfileSQL = `DELETE FROM y_profile WHERE id = $1`

func scanProfile(row pgx.Row) (*model.YProfile, error) {
	var p model.YProfile
	err := row.Scan(&p.ID, &p.Version, &p.SyncState, &p.AtURI, &p.CreatedAt, &p.UpdatedAt,
		&p.BiosampleID, &p.ConsensusHaplogroup, &p.TotalVariants, &p.ConfirmedCount,
		&p.NovelCount, &p.ConflictCount, &p.NoCoverageCount, &p.STRMarkerCount,
		&p.STRConfirmedCount, &p.SourceCount, &p.PrimarySourceType,
		&p.CallableRegionPct, &p.MeanCoverage, &p.LastReconciledAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert implements repo.Profiles.
func (r *ProfileRepo) Insert(ctx context.Context, p *model.YProfile) (*model.YProfile, error) {
	tx := store.FromContext(ctx)
	row := tx.QueryRow(ctx, insertProfileSQL, p.BiosampleID, p.ConsensusHaplogroup, p.TotalVariants,
		p.ConfirmedCount, p.NovelCount, p.ConflictCount, p.NoCoverageCount, p.STRMarkerCount,
		p.STRConfirmedCount, p.SourceCount, p.PrimarySourceType, p.CallableRegionPct,
		p.MeanCoverage, nullTime(p.LastReconciledAt))
	out, err := scanProfile(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.DuplicateKey("YProfile", "biosample already has a profile")
		}
		return nil, store.DatabaseError("YProfile", err)
	}
	return out, nil
}

// Update implements repo.Profiles.
func (r *ProfileRepo) Update(ctx context.Context, p *model.YProfile) (*model.YProfile, error) {
	tx := store.FromContext(ctx)
	row := tx.QueryRow(ctx, updateProfileSQL, p.ID, p.Version, p.ConsensusHaplogroup, p.TotalVariants,
		p.ConfirmedCount, p.NovelCount, p.ConflictCount, p.NoCoverageCount, p.STRMarkerCount,
		p.STRConfirmedCount, p.SourceCount, p.PrimarySourceType, p.CallableRegionPct,
		p.MeanCoverage, nullTime(p.LastReconciledAt), p.SyncState, p.AtURI)
	out, err := scanProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			if exists, checkErr := rowExists(ctx, `SELECT id FROM y_profile WHERE id = $1`, p.ID); checkErr == nil && !exists {
				return nil, store.NotFound("YProfile", "no such profile")
			}
			return nil, store.VersionConflict("YProfile")
		}
		return nil, store.DatabaseError("YProfile", err)
	}
	return out, nil
}

// FindByID implements repo.Profiles.
func (r *ProfileRepo) FindByID(ctx context.Context, id int64) (*model.YProfile, bool, error) {
	tx := store.FromContext(ctx)
	out, err := scanProfile(tx.QueryRow(ctx, selectProfileByIDSQL, id))
	return notFoundOrErr(out, err, "YProfile")
}

// FindByBiosampleID implements repo.Profiles.
func (r *ProfileRepo) FindByBiosampleID(ctx context.Context, biosampleID int64) (*model.YProfile, bool, error) {
	tx := store.FromContext(ctx)
	out, err := scanProfile(tx.QueryRow(ctx, selectProfileByBiosampleSQL, biosampleID))
	return notFoundOrErr(out, err, "YProfile")
}

// FindAll implements repo.Profiles.
func (r *ProfileRepo) FindAll(ctx context.Context) ([]*model.YProfile, error) {
	tx := store.FromContext(ctx)
	rows, err := tx.Query(ctx, selectAllProfilesSQL)
	if err != nil {
		return nil, store.DatabaseError("YProfile", err)
	}
	defer rows.Close()
	var out []*model.YProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, store.DatabaseError("YProfile", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete implements repo.Profiles; the ON DELETE CASCADE foreign keys
// in Schema handle sources, variants, and regions.
func (r *ProfileRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := store.FromContext(ctx)
	tag, err := tx.Exec(ctx, deleteProfileSQL, id)
	if err != nil {
		return false, store.DatabaseError("YProfile", err)
	}
	return tag.RowsAffected() > 0, nil
}
