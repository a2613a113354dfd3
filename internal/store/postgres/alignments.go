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

// AlignmentRepo is the Postgres-backed repo.Alignments implementation.
type AlignmentRepo struct{}

var _ repo.Alignments = (*AlignmentRepo)(nil)

const alignmentColumns = `id, version, sync_state, at_uri, created_at, updated_at,
	source_call_id, reference_build, position, ref_allele, alt_allele, called_allele,
	read_depth, mapping_quality`

const upsertAlignmentSQL = `
INSERT INTO y_source_call_alignment (source_call_id, reference_build, position, ref_allele,
	alt_allele, called_allele, read_depth, mapping_quality)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (source_call_id, reference_build) DO UPDATE SET
	version = y_source_call_alignment.version + 1,
	updated_at = now(),
	position = EXCLUDED.position,
	ref_allele = EXCLUDED.ref_allele,
	alt_allele = EXCLUDED.alt_allele,
	called_allele = EXCLUDED.called_allele,
	read_depth = EXCLUDED.read_depth,
	mapping_quality = EXCLUDED.mapping_quality
RETURNING ` + alignmentColumns

const selectAlignmentsBySourceCallSQL = `SELECT ` + alignmentColumns + ` FROM y_source_call_alignment WHERE source_call_id = $1`
const selectAlignmentBySourceCallAndBuildSQL = `SELECT ` + alignmentColumns + ` FROM y_source_call_alignment WHERE source_call_id = $1 AND reference_build = $2`
const deleteAlignmentSQL = `DELETE FROM y_source_call_alignment WHERE id = $1`

func scanAlignment(row pgx.Row) (*model.YSourceCallAlignment, error) {
	var a model.YSourceCallAlignment
	err := row.Scan(&a.ID, &a.Version, &a.SyncState, &a.AtURI, &a.CreatedAt, &a.UpdatedAt,
		&a.SourceCallID, &a.ReferenceBuild, &a.Position, &a.RefAllele, &a.AltAllele,
		&a.CalledAllele, &a.ReadDepth, &a.MappingQuality)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Upsert implements repo.Alignments.
func (r *AlignmentRepo) Upsert(ctx context.Context, a *model.YSourceCallAlignment) (*model.YSourceCallAlignment, error) {
	tx := store.FromContext(ctx)
	row := tx.QueryRow(ctx, upsertAlignmentSQL, a.SourceCallID, a.ReferenceBuild, a.Position,
		a.RefAllele, a.AltAllele, a.CalledAllele, a.ReadDepth, a.MappingQuality)
	out, err := scanAlignment(row)
	if err != nil {
		return nil, store.DatabaseError("YSourceCallAlignment", err)
	}
	return out, nil
}

// FindBySourceCallID implements repo.Alignments.
func (r *AlignmentRepo) FindBySourceCallID(ctx context.Context, sourceCallID int64) ([]*model.YSourceCallAlignment, error) {
	tx := store.FromContext(ctx)
	rows, err := tx.Query(ctx, selectAlignmentsBySourceCallSQL, sourceCallID)
	if err != nil {
		return nil, store.DatabaseError("YSourceCallAlignment", err)
	}
	defer rows.Close()
	var out []*model.YSourceCallAlignment
	for rows.Next() {
		a, err := scanAlignment(rows)
		if err != nil {
			return nil, store.DatabaseError("YSourceCallAlignment", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// FindBySourceCallAndBuild implements repo.Alignments.
func (r *AlignmentRepo) FindBySourceCallAndBuild(ctx context.Context, sourceCallID int64, build string) (*model.YSourceCallAlignment, bool, error) {
	tx := store.FromContext(ctx)
	out, err := scanAlignment(tx.QueryRow(ctx, selectAlignmentBySourceCallAndBuildSQL, sourceCallID, build))
	return notFoundOrErr(out, err, "YSourceCallAlignment")
}

// FindByPositionRange implements repo.Alignments.
func (r *AlignmentRepo) FindByPositionRange(ctx context.Context, build string, contig string, start, end int64) ([]*model.YSourceCallAlignment, error) {
	tx := store.FromContext(ctx)
	const sql = `SELECT ` + alignmentColumns + ` FROM y_source_call_alignment
		WHERE reference_build = $1 AND position >= $2 AND position < $3 ORDER BY position`
	rows, err := tx.Query(ctx, sql, build, start, end)
	if err != nil {
		return nil, store.DatabaseError("YSourceCallAlignment", err)
	}
	defer rows.Close()
	var out []*model.YSourceCallAlignment
	for rows.Next() {
		a, err := scanAlignment(rows)
		if err != nil {
			return nil, store.DatabaseError("YSourceCallAlignment", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete implements repo.Alignments.
func (r *AlignmentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := store.FromContext(ctx)
	tag, err := tx.Exec(ctx, deleteAlignmentSQL, id)
	if err != nil {
		return false, store.DatabaseError("YSourceCallAlignment", err)
	}
	return tag.RowsAffected() > 0, nil
}
