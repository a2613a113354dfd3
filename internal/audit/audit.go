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

// Package audit builds and retrieves the YVariantAudit trail: every
// manual override, revert, or consensus-changing reconciliation
// appends exactly one row capturing the prior and new consensus
// triple.
package audit

import (
	"context"
	"time"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/repo"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store"
)

// Triple is the (consensusAllele, consensusState, status) snapshot an
// audit row captures on both sides of a change.
type Triple struct {
	Allele string
	State  model.CallState
	Status model.VariantStatus
}

// TripleOf extracts the current consensus triple from a variant.
func TripleOf(v *model.YProfileVariant) Triple {
	return Triple{Allele: v.ConsensusAllele, State: v.ConsensusState, Status: v.Status}
}

// Record inserts one audit row documenting a transition from prior to
// next for variantID. reason must be non-empty; the caller (package
// reconcile) validates that before calling.
func Record(ctx context.Context, audits repo.Audits, variantID int64, action model.AuditAction, prior, next Triple, reason, userID string) (*model.YVariantAudit, error) {
	if reason == "" {
		return nil, store.ValidationFailure("YVariantAudit", "reason", "must not be empty")
	}
	row := &model.YVariantAudit{
		VariantID: variantID,
		Timestamp: time.Now().UTC(),
		Action:    action,

		PriorConsensusAllele: prior.Allele,
		PriorConsensusState:  prior.State,
		PriorStatus:          prior.Status,

		NewConsensusAllele: next.Allele,
		NewConsensusState:  next.State,
		NewStatus:          next.Status,

		Reason: reason,
		UserID: userID,
	}
	return audits.Insert(ctx, row)
}

// History returns a variant's audit trail newest-first.
func History(ctx context.Context, audits repo.Audits, variantID int64) ([]*model.YVariantAudit, error) {
	return audits.FindByVariantID(ctx, variantID)
}
