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

// VariantRepo is the Postgres-backed repo.Variants implementation.
type VariantRepo struct{}

var _ repo.Variants = (*VariantRepo)(nil)

const variantColumns = `id, version, sync_state, at_uri, created_at, updated_at,
	profile_id, position, end_pos, ref_allele, alt_allele, type, variant_name,
	marker_name, is_in_tree, consensus_allele, consensus_state, status,
	confidence_score, concordant_count, discordant_count, source_count`

const insertVariantSQL = `
INSERT INTO y_profile_variant (profile_id, position, end_pos, ref_allele, alt_allele,
	type, variant_name, marker_name, is_in_tree, consensus_allele, consensus_state,
	status, confidence_score, concordant_count, discordant_count, source_count)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
RETURNING ` + variantColumns

const updateVariantSQL = `
UPDATE y_profile_variant SET version = version + 1, updated_at = now(),
	end_pos = $3, variant_name = $4, marker_name = $5, is_in_tree = $6,
	consensus_allele = $7, consensus_state = $8, status = $9, confidence_score = $10,
	concordant_count = $11, discordant_count = $12, source_count = $13,
	sync_state = $14, at_uri = $15
WHERE id = $1 AND version = $2
RETURNING ` + variantColumns

const selectVariantByIDSQL = `SELECT ` + variantColumns + ` FROM y_profile_variant WHERE id = $1`
const selectVariantByIdentitySQL = `SELECT ` + variantColumns + ` FROM y_profile_variant WHERE profile_id = $1 AND position = $2 AND ref_allele = $3 AND alt_allele = $4`
const selectVariantsByProfileSQL = `SELECT ` + variantColumns + ` FROM y_profile_variant WHERE profile_id = $1 ORDER BY position`
const selectVariantsByStatusSQL = `SELECT ` + variantColumns + ` FROM y_profile_variant WHERE profile_id = $1 AND status = $2 ORDER BY position`
const selectVariantsByRangeSQL = `SELECT ` + variantColumns + ` FROM y_profile_variant WHERE profile_id = $1 AND position >= $2 AND position < $3 ORDER BY position`
const selectVariantsByHaplogroupPrefixSQL = `SELECT ` + variantColumns + ` FROM y_profile_variant WHERE profile_id = $1 AND marker_name LIKE $2 || '%' ORDER BY marker_name`
const deleteVariantSQL = `DELETE FROM y_profile_variant WHERE id = $1`

func scanVariant(row pgx.Row) (*model.YProfileVariant, error) {
	var v model.YProfileVariant
	err := row.Scan(&v.ID, &v.Version, &v.SyncState, &v.AtURI, &v.CreatedAt, &v.UpdatedAt,
		&v.ProfileID, &v.Position, &v.EndPos, &v.RefAllele, &v.AltAllele, &v.Type,
		&v.VariantName, &v.MarkerName, &v.IsInTree, &v.ConsensusAllele, &v.ConsensusState,
		&v.Status, &v.ConfidenceScore, &v.ConcordantCount, &v.DiscordantCount, &v.SourceCount)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Insert implements repo.Variants.
func (r *VariantRepo) Insert(ctx context.Context, v *model.YProfileVariant) (*model.YProfileVariant, error) {
	tx := store.FromContext(ctx)
	row := tx.QueryRow(ctx, insertVariantSQL, v.ProfileID, v.Position, v.EndPos, v.RefAllele, v.AltAllele,
		v.Type, v.VariantName, v.MarkerName, v.IsInTree, v.ConsensusAllele, v.ConsensusState,
		v.Status, v.ConfidenceScore, v.ConcordantCount, v.DiscordantCount, v.SourceCount)
	out, err := scanVariant(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.DuplicateKey("YProfileVariant", "position/ref/alt already exists for profile")
		}
		return nil, store.DatabaseError("YProfileVariant", err)
	}
	return out, nil
}

// Update implements repo.Variants.
func (r *VariantRepo) Update(ctx context.Context, v *model.YProfileVariant) (*model.YProfileVariant, error) {
	tx := store.FromContext(ctx)
	row := tx.QueryRow(ctx, updateVariantSQL, v.ID, v.Version, v.EndPos, v.VariantName, v.MarkerName,
		v.IsInTree, v.ConsensusAllele, v.ConsensusState, v.Status, v.ConfidenceScore,
		v.ConcordantCount, v.DiscordantCount, v.SourceCount, v.SyncState, v.AtURI)
	out, err := scanVariant(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			if exists, checkErr := rowExists(ctx, `SELECT id FROM y_profile_variant WHERE id = $1`, v.ID); checkErr == nil && !exists {
				return nil, store.NotFound("YProfileVariant", "no such variant")
			}
			return nil, store.VersionConflict("YProfileVariant")
		}
		return nil, store.DatabaseError("YProfileVariant", err)
	}
	return out, nil
}

// FindByID implements repo.Variants.
func (r *VariantRepo) FindByID(ctx context.Context, id int64) (*model.YProfileVariant, bool, error) {
	tx := store.FromContext(ctx)
	out, err := scanVariant(tx.QueryRow(ctx, selectVariantByIDSQL, id))
	return notFoundOrErr(out, err, "YProfileVariant")
}

// FindByIdentity implements repo.Variants.
func (r *VariantRepo) FindByIdentity(ctx context.Context, profileID, position int64, ref, alt string) (*model.YProfileVariant, bool, error) {
	tx := store.FromContext(ctx)
	out, err := scanVariant(tx.QueryRow(ctx, selectVariantByIdentitySQL, profileID, position, ref, alt))
	return notFoundOrErr(out, err, "YProfileVariant")
}

func (r *VariantRepo) queryList(ctx context.Context, sql string, args ...any) ([]*model.YProfileVariant, error) {
	tx := store.FromContext(ctx)
	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, store.DatabaseError("YProfileVariant", err)
	}
	defer rows.Close()
	var out []*model.YProfileVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, store.DatabaseError("YProfileVariant", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// FindByProfileID implements repo.Variants.
func (r *VariantRepo) FindByProfileID(ctx context.Context, profileID int64) ([]*model.YProfileVariant, error) {
	return r.queryList(ctx, selectVariantsByProfileSQL, profileID)
}

// FindByStatus implements repo.Variants.
func (r *VariantRepo) FindByStatus(ctx context.Context, profileID int64, status model.VariantStatus) ([]*model.YProfileVariant, error) {
	return r.queryList(ctx, selectVariantsByStatusSQL, profileID, status)
}

// FindByPositionRange implements repo.Variants.
func (r *VariantRepo) FindByPositionRange(ctx context.Context, profileID, start, end int64) ([]*model.YProfileVariant, error) {
	return r.queryList(ctx, selectVariantsByRangeSQL, profileID, start, end)
}

// FindByHaplogroupPrefix implements repo.Variants. The LIKE-based
// prefix match here is a coarser approximation of ident.Haplogroup's
// delimiter-aware HasPrefix; query.FilterByBranch tightens the
// candidate set when exact branch semantics matter.
func (r *VariantRepo) FindByHaplogroupPrefix(ctx context.Context, profileID int64, branch string) ([]*model.YProfileVariant, error) {
	return r.queryList(ctx, selectVariantsByHaplogroupPrefixSQL, profileID, branch)
}

// Delete implements repo.Variants; the ON DELETE CASCADE foreign keys
// in Schema handle source calls and audits.
func (r *VariantRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := store.FromContext(ctx)
	tag, err := tx.Exec(ctx, deleteVariantSQL, id)
	if err != nil {
		return false, store.DatabaseError("YProfileVariant", err)
	}
	return tag.RowsAffected() > 0, nil
}
