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
	"fmt"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/repo"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store"
)

// SourceCallRepo is the in-memory repo.SourceCalls implementation.
type SourceCallRepo struct{ s *Store }

// SourceCalls returns the repo.SourceCalls view over the store.
func (s *Store) SourceCalls() repo.SourceCalls { return &SourceCallRepo{s: s} }

var _ repo.SourceCalls = (*SourceCallRepo)(nil)

// Insert implements repo.SourceCalls.
func (r *SourceCallRepo) Insert(_ context.Context, c *model.YVariantSourceCall) (*model.YVariantSourceCall, error) {
	key := [2]int64{c.VariantID, c.SourceID}
	if _, exists := r.s.sourceCallIndex[key]; exists {
		return nil, store.DuplicateKey("YVariantSourceCall", fmt.Sprintf("variant %d source %d already has a call", c.VariantID, c.SourceID))
	}
	cp := *c
	id := r.s.allocID()
	stampInsert(&cp.RecordMeta, id)
	r.s.sourceCalls[id] = &cp
	r.s.sourceCallIndex[key] = id
	out := cp
	return &out, nil
}

// Update implements repo.SourceCalls.
func (r *SourceCallRepo) Update(_ context.Context, c *model.YVariantSourceCall) (*model.YVariantSourceCall, error) {
	cur, ok := r.s.sourceCalls[c.ID]
	if !ok {
		return nil, store.NotFound("YVariantSourceCall", "no such source call")
	}
	if cur.Version != c.Version {
		return nil, store.VersionConflict("YVariantSourceCall")
	}
	cp := *c
	stampUpdate(&cp.RecordMeta)
	r.s.sourceCalls[c.ID] = &cp
	out := cp
	return &out, nil
}

// FindByID implements repo.SourceCalls.
func (r *SourceCallRepo) FindByID(_ context.Context, id int64) (*model.YVariantSourceCall, bool, error) {
	c, ok := r.s.sourceCalls[id]
	if !ok {
		return nil, false, nil
	}
	out := *c
	return &out, true, nil
}

// FindByVariantAndSource implements repo.SourceCalls.
func (r *SourceCallRepo) FindByVariantAndSource(_ context.Context, variantID, sourceID int64) (*model.YVariantSourceCall, bool, error) {
	id, ok := r.s.sourceCallIndex[[2]int64{variantID, sourceID}]
	if !ok {
		return nil, false, nil
	}
	out := *r.s.sourceCalls[id]
	return &out, true, nil
}

// FindByVariantID implements repo.SourceCalls.
func (r *SourceCallRepo) FindByVariantID(_ context.Context, variantID int64) ([]*model.YVariantSourceCall, error) {
	var out []*model.YVariantSourceCall
	for _, c := range r.s.sourceCalls {
		if c.VariantID == variantID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// SumWeightsForAllele implements repo.SourceCalls.
func (r *SourceCallRepo) SumWeightsForAllele(_ context.Context, variantID int64, allele string) (float64, error) {
	var sum float64
	for _, c := range r.s.sourceCalls {
		if c.VariantID == variantID && c.CalledAllele == allele {
			sum += c.ConcordanceWeight
		}
	}
	return sum, nil
}

// Delete implements repo.SourceCalls. It cascades to alignments.
func (r *SourceCallRepo) Delete(_ context.Context, id int64) (bool, error) {
	c, ok := r.s.sourceCalls[id]
	if !ok {
		return false, nil
	}
	for aid, a := range r.s.alignments {
		if a.SourceCallID == id {
			delete(r.s.alignments, aid)
			delete(r.s.alignmentIndex, alignmentKey{sourceCallID: id, build: a.ReferenceBuild})
		}
	}
	delete(r.s.sourceCalls, id)
	delete(r.s.sourceCallIndex, [2]int64{c.VariantID, c.SourceID})
	return true, nil
}
