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

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/repo"
)

// AlignmentRepo is the in-memory repo.Alignments implementation.
type AlignmentRepo struct{ s *Store }

// Alignments returns the repo.Alignments view over the store.
func (s *Store) Alignments() repo.Alignments { return &AlignmentRepo{s: s} }

var _ repo.Alignments = (*AlignmentRepo)(nil)

// Upsert implements repo.Alignments: idempotent on
// (sourceCallID, referenceBuild).
func (r *AlignmentRepo) Upsert(_ context.Context, a *model.YSourceCallAlignment) (*model.YSourceCallAlignment, error) {
	key := alignmentKey{sourceCallID: a.SourceCallID, build: a.ReferenceBuild}
	cp := *a
	if id, exists := r.s.alignmentIndex[key]; exists {
		cp.ID = id
		cp.Version = r.s.alignments[id].Version
		stampUpdate(&cp.RecordMeta)
		r.s.alignments[id] = &cp
	} else {
		id := r.s.allocID()
		stampInsert(&cp.RecordMeta, id)
		r.s.alignments[id] = &cp
		r.s.alignmentIndex[key] = id
	}
	out := cp
	return &out, nil
}

// FindBySourceCallID implements repo.Alignments.
func (r *AlignmentRepo) FindBySourceCallID(_ context.Context, sourceCallID int64) ([]*model.YSourceCallAlignment, error) {
	var out []*model.YSourceCallAlignment
	for _, a := range r.s.alignments {
		if a.SourceCallID == sourceCallID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

// FindBySourceCallAndBuild implements repo.Alignments.
func (r *AlignmentRepo) FindBySourceCallAndBuild(_ context.Context, sourceCallID int64, build string) (*model.YSourceCallAlignment, bool, error) {
	id, ok := r.s.alignmentIndex[alignmentKey{sourceCallID: sourceCallID, build: build}]
	if !ok {
		return nil, false, nil
	}
	out := *r.s.alignments[id]
	return &out, true, nil
}

// FindByPositionRange implements repo.Alignments: all alignments
// overlapping the half-open interval [start, end) in the given build
// and contig.
//
// Alignments do not carry a contig field of their own; coordinates are
// qualified by reference build only, so contig filtering is a no-op
// placeholder for a future multi-contig target. Only single-position
// alignments are modeled, so "overlap" reduces to membership in the
// range.
func (r *AlignmentRepo) FindByPositionRange(_ context.Context, build, _ string, start, end int64) ([]*model.YSourceCallAlignment, error) {
	var out []*model.YSourceCallAlignment
	for _, a := range r.s.alignments {
		if a.ReferenceBuild == build && a.Position >= start && a.Position < end {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Delete implements repo.Alignments.
func (r *AlignmentRepo) Delete(_ context.Context, id int64) (bool, error) {
	a, ok := r.s.alignments[id]
	if !ok {
		return false, nil
	}
	delete(r.s.alignments, id)
	delete(r.s.alignmentIndex, alignmentKey{sourceCallID: a.SourceCallID, build: a.ReferenceBuild})
	return true, nil
}
