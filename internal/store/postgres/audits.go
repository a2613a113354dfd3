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

// AuditRepo is the Postgres-backed repo.Audits implementation.
type AuditRepo struct{}

var _ repo.Audits = (*AuditRepo)(nil)

const auditColumns = `id, version, sync_state, at_uri, created_at, updated_at,
	variant_id, timestamp, action, prior_consensus_allele, prior_consensus_state,
	prior_status, new_consensus_allele, new_consensus_state, new_status, reason, user_id`

const insertAuditSQL = `
INSERT INTO y_variant_audit (variant_id, timestamp, action, prior_consensus_allele,
	prior_consensus_state, prior_status, new_consensus_allele, new_consensus_state,
	new_status, reason, user_id)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
RETURNING ` + auditColumns

const selectAuditsByVariantSQL = `SELECT ` + auditColumns + ` FROM y_variant_audit WHERE variant_id = $1 ORDER BY timestamp DESC`

func scanAudit(row pgx.Row) (*model.YVariantAudit, error) {
	var a model.YVariantAudit
	err := row.Scan(&a.ID, &a.Version, &a.SyncState, &a.AtURI, &a.CreatedAt, &a.UpdatedAt,
		&a.VariantID, &a.Timestamp, &a.Action, &a.PriorConsensusAllele, &a.PriorConsensusState,
		&a.PriorStatus, &a.NewConsensusAllele, &a.NewConsensusState, &a.NewStatus, &a.Reason, &a.UserID)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Insert implements repo.Audits.
func (r *AuditRepo) Insert(ctx context.Context, a *model.YVariantAudit) (*model.YVariantAudit, error) {
	tx := store.FromContext(ctx)
	row := tx.QueryRow(ctx, insertAuditSQL, a.VariantID, a.Timestamp, a.Action, a.PriorConsensusAllele,
		a.PriorConsensusState, a.PriorStatus, a.NewConsensusAllele, a.NewConsensusState,
		a.NewStatus, a.Reason, a.UserID)
	out, err := scanAudit(row)
	if err != nil {
		return nil, store.DatabaseError("YVariantAudit", err)
	}
	return out, nil
}

// FindByVariantID implements repo.Audits.
func (r *AuditRepo) FindByVariantID(ctx context.Context, variantID int64) ([]*model.YVariantAudit, error) {
	tx := store.FromContext(ctx)
	rows, err := tx.Query(ctx, selectAuditsByVariantSQL, variantID)
	if err != nil {
		return nil, store.DatabaseError("YVariantAudit", err)
	}
	defer rows.Close()
	var out []*model.YVariantAudit
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, store.DatabaseError("YVariantAudit", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
