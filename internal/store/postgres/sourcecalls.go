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

// SourceCallRepo is the Postgres-backed repo.SourceCalls
// implementation.
type SourceCallRepo struct{}

var _ repo.SourceCalls = (*SourceCallRepo)(nil)

const sourceCallColumns = `id, version, sync_state, at_uri, created_at, updated_at,
	variant_id, source_id, called_allele, call_state, called_repeat_count,
	read_depth, mapping_quality, vaf, callable_state, concordance_weight`

const insertSourceCallSQL = `
INSERT INTO y_variant_source_call (variant_id, source_id, called_allele, call_state,
	called_repeat_count, read_depth, mapping_quality, vaf, callable_state, concordance_weight)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING ` + sourceCallColumns

const updateSourceCallSQL = `
UPDATE y_variant_source_call SET version = version + 1, updated_at = now(),
	called_allele = $3, call_state = $4, called_repeat_count = $5, read_depth = $6,
	mapping_quality = $7, vaf = $8, callable_state = $9, concordance_weight = $10,
	sync_state = $11, at_uri = $12
WHERE id = $1 AND version = $2
RETURNING ` + sourceCallColumns

const selectSourceCallByIDSQL = `SELECT ` + sourceCallColumns + ` FROM y_variant_source_call WHERE id = $1`
const selectSourceCallByVariantSourceSQL = `SELECT ` + sourceCallColumns + ` FROM y_variant_source_call WHERE variant_id = $1 AND source_id = $2`
const selectSourceCallsByVariantSQL = `SELECT ` + sourceCallColumns + ` FROM y_variant_source_call WHERE variant_id = $1`
const sumWeightsSQL = `SELECT COALESCE(SUM(concordance_weight), 0) FROM y_variant_source_call WHERE variant_id = $1 AND called_allele = $2`
const deleteSourceCallSQL = `DELETE FROM y_variant_source_call WHERE id = $1`

func scanSourceCall(row pgx.Row) (*model.YVariantSourceCall, error) {
	var c model.YVariantSourceCall
	err := row.Scan(&c.ID, &c.Version, &c.SyncState, &c.AtURI, &c.CreatedAt, &c.UpdatedAt,
		&c.VariantID, &c.SourceID, &c.CalledAllele, &c.CallState, &c.CalledRepeatCount,
		&c.ReadDepth, &c.MappingQuality, &c.VAF, &c.CallableState, &c.ConcordanceWeight)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Insert implements repo.SourceCalls.
func (r *SourceCallRepo) Insert(ctx context.Context, c *model.YVariantSourceCall) (*model.YVariantSourceCall, error) {
	tx := store.FromContext(ctx)
	row := tx.QueryRow(ctx, insertSourceCallSQL, c.VariantID, c.SourceID, c.CalledAllele, c.CallState,
		c.CalledRepeatCount, c.ReadDepth, c.MappingQuality, c.VAF, c.CallableState, c.ConcordanceWeight)
	out, err := scanSourceCall(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.DuplicateKey("YVariantSourceCall", "variant/source pair already has a call")
		}
		return nil, store.DatabaseError("YVariantSourceCall", err)
	}
	return out, nil
}

// Update implements repo.SourceCalls.
func (r *SourceCallRepo) Update(ctx context.Context, c *model.YVariantSourceCall) (*model.YVariantSourceCall, error) {
	tx := store.FromContext(ctx)
	row := tx.QueryRow(ctx, updateSourceCallSQL, c.ID, c.Version, c.CalledAllele, c.CallState,
		c.CalledRepeatCount, c.ReadDepth, c.MappingQuality, c.VAF, c.CallableState, c.ConcordanceWeight,
		c.SyncState, c.AtURI)
	out, err := scanSourceCall(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			if exists, checkErr := rowExists(ctx, `SELECT id FROM y_variant_source_call WHERE id = $1`, c.ID); checkErr == nil && !exists {
				return nil, store.NotFound("YVariantSourceCall", "no such source call")
			}
			return nil, store.VersionConflict("YVariantSourceCall")
		}
		return nil, store.DatabaseError("YVariantSourceCall", err)
	}
	return out, nil
}

// FindByID implements repo.SourceCalls.
func (r *SourceCallRepo) FindByID(ctx context.Context, id int64) (*model.YVariantSourceCall, bool, error) {
	tx := store.FromContext(ctx)
	out, err := scanSourceCall(tx.QueryRow(ctx, selectSourceCallByIDSQL, id))
	return notFoundOrErr(out, err, "YVariantSourceCall")
}

// FindByVariantAndSource implements repo.SourceCalls.
func (r *SourceCallRepo) FindByVariantAndSource(ctx context.Context, variantID, sourceID int64) (*model.YVariantSourceCall, bool, error) {
	tx := store.FromContext(ctx)
	out, err := scanSourceCall(tx.QueryRow(ctx, selectSourceCallByVariantSourceSQL, variantID, sourceID))
	return notFoundOrErr(out, err, "YVariantSourceCall")
}

// FindByVariantID implements repo.SourceCalls.
func (r *SourceCallRepo) FindByVariantID(ctx context.Context, variantID int64) ([]*model.YVariantSourceCall, error) {
	tx := store.FromContext(ctx)
	rows, err := tx.Query(ctx, selectSourceCallsByVariantSQL, variantID)
	if err != nil {
		return nil, store.DatabaseError("YVariantSourceCall", err)
	}
	defer rows.Close()
	var out []*model.YVariantSourceCall
	for rows.Next() {
		c, err := scanSourceCall(rows)
		if err != nil {
			return nil, store.DatabaseError("YVariantSourceCall", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SumWeightsForAllele implements repo.SourceCalls.
func (r *SourceCallRepo) SumWeightsForAllele(ctx context.Context, variantID int64, allele string) (float64, error) {
	tx := store.FromContext(ctx)
	var sum float64
	if err := tx.QueryRow(ctx, sumWeightsSQL, variantID, allele).Scan(&sum); err != nil {
		return 0, store.DatabaseError("YVariantSourceCall", err)
	}
	return sum, nil
}

// Delete implements repo.SourceCalls; the ON DELETE CASCADE foreign
// key in Schema handles alignments.
func (r *SourceCallRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := store.FromContext(ctx)
	tag, err := tx.Exec(ctx, deleteSourceCallSQL, id)
	if err != nil {
		return false, store.DatabaseError("YVariantSourceCall", err)
	}
	return tag.RowsAffected() > 0, nil
}
