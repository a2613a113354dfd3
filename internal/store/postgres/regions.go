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

// RegionRepo is the Postgres-backed repo.Regions implementation.
type RegionRepo struct{}

var _ repo.Regions = (*RegionRepo)(nil)

const regionColumns = `id, version, sync_state, at_uri, created_at, updated_at,
	profile_id, source_id, contig, start, "end", state, mean_coverage, mean_mapping_quality`

const insertRegionSQL = `
INSERT INTO y_profile_region (profile_id, source_id, contig, start, "end", state, mean_coverage, mean_mapping_quality)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING ` + regionColumns

const selectRegionsBySourceSQL = `SELECT ` + regionColumns + ` FROM y_profile_region WHERE source_id = $1 ORDER BY contig, start`
const selectRegionsByProfileSQL = `SELECT ` + regionColumns + ` FROM y_profile_region WHERE profile_id = $1 ORDER BY contig, start`
const deleteRegionSQL = `DELETE FROM y_profile_region WHERE id = $1`

func scanRegion(row pgx.Row) (*model.YProfileRegion, error) {
	var rgn model.YProfileRegion
	err := row.Scan(&rgn.ID, &rgn.Version, &rgn.SyncState, &rgn.AtURI, &rgn.CreatedAt, &rgn.UpdatedAt,
		&rgn.ProfileID, &rgn.SourceID, &rgn.Contig, &rgn.Start, &rgn.End, &rgn.State,
		&rgn.MeanCoverage, &rgn.MeanMappingQuality)
	if err != nil {
		return nil, err
	}
	return &rgn, nil
}

// Insert implements repo.Regions.
func (r *RegionRepo) Insert(ctx context.Context, rgn *model.YProfileRegion) (*model.YProfileRegion, error) {
	tx := store.FromContext(ctx)
	row := tx.QueryRow(ctx, insertRegionSQL, rgn.ProfileID, rgn.SourceID, rgn.Contig, rgn.Start,
		rgn.End, rgn.State, rgn.MeanCoverage, rgn.MeanMappingQuality)
	out, err := scanRegion(row)
	if err != nil {
		return nil, store.DatabaseError("YProfileRegion", err)
	}
	return out, nil
}

// FindBySourceID implements repo.Regions.
func (r *RegionRepo) FindBySourceID(ctx context.Context, sourceID int64) ([]*model.YProfileRegion, error) {
	tx := store.FromContext(ctx)
	rows, err := tx.Query(ctx, selectRegionsBySourceSQL, sourceID)
	if err != nil {
		return nil, store.DatabaseError("YProfileRegion", err)
	}
	defer rows.Close()
	var out []*model.YProfileRegion
	for rows.Next() {
		rgn, err := scanRegion(rows)
		if err != nil {
			return nil, store.DatabaseError("YProfileRegion", err)
		}
		out = append(out, rgn)
	}
	return out, rows.Err()
}

// FindByProfileID implements repo.Regions.
func (r *RegionRepo) FindByProfileID(ctx context.Context, profileID int64) ([]*model.YProfileRegion, error) {
	tx := store.FromContext(ctx)
	rows, err := tx.Query(ctx, selectRegionsByProfileSQL, profileID)
	if err != nil {
		return nil, store.DatabaseError("YProfileRegion", err)
	}
	defer rows.Close()
	var out []*model.YProfileRegion
	for rows.Next() {
		rgn, err := scanRegion(rows)
		if err != nil {
			return nil, store.DatabaseError("YProfileRegion", err)
		}
		out = append(out, rgn)
	}
	return out, rows.Err()
}

// Delete implements repo.Regions.
func (r *RegionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := store.FromContext(ctx)
	tag, err := tx.Exec(ctx, deleteRegionSQL, id)
	if err != nil {
		return false, store.DatabaseError("YProfileRegion", err)
	}
	return tag.RowsAffected() > 0, nil
}
