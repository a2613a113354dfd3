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

package memstore

import (
	"context"
	"sort"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/repo"
)

// AuditRepo is the in-memory repo.Audits implementation.
type AuditRepo struct{ s *Store }

// Audits returns the repo.Audits view over the store.
func (s *Store) Audits() repo.Audits { return &AuditRepo{s: s} }

var _ repo.Audits = (*AuditRepo)(nil)

// Insert implements repo.Audits.
func (r *AuditRepo) Insert(_ context.Context, a *model.YVariantAudit) (*model.YVariantAudit, error) {
	cp := *a
	id := r.s.allocID()
	stampInsert(&cp.RecordMeta, id)
	r.s.audits[id] = &cp
	out := cp
	return &out, nil
}

// FindByVariantID implements repo.Audits, newest-first.
func (r *AuditRepo) FindByVariantID(_ context.Context, variantID int64) ([]*model.YVariantAudit, error) {
	var out []*model.YVariantAudit
	for _, a := range r.s.audits {
		if a.VariantID == variantID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
