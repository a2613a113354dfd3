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
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store"
)

// SourceRepo is the in-memory repo.Sources implementation.
type SourceRepo struct{ s *Store }

// Sources returns the repo.Sources view over the store.
func (s *Store) Sources() repo.Sources { return &SourceRepo{s: s} }

var _ repo.Sources = (*SourceRepo)(nil)

// Insert implements repo.Sources.
func (r *SourceRepo) Insert(_ context.Context, src *model.YProfileSource) (*model.YProfileSource, error) {
	cp := *src
	id := r.s.allocID()
	stampInsert(&cp.RecordMeta, id)
	r.s.sources[id] = &cp
	out := cp
	return &out, nil
}

// Update implements repo.Sources.
func (r *SourceRepo) Update(_ context.Context, src *model.YProfileSource) (*model.YProfileSource, error) {
	cur, ok := r.s.sources[src.ID]
	if !ok {
		return nil, store.NotFound("YProfileSource", "no such source")
	}
	if cur.Version != src.Version {
		return nil, store.VersionConflict("YProfileSource")
	}
	cp := *src
	stampUpdate(&cp.RecordMeta)
	r.s.sources[src.ID] = &cp
	out := cp
	return &out, nil
}

// FindByID implements repo.Sources.
func (r *SourceRepo) FindByID(_ context.Context, id int64) (*model.YProfileSource, bool, error) {
	src, ok := r.s.sources[id]
	if !ok {
		return nil, false, nil
	}
	out := *src
	return &out, true, nil
}

// FindByProfileID implements repo.Sources.
func (r *SourceRepo) FindByProfileID(_ context.Context, profileID int64) ([]*model.YProfileSource, error) {
	var out []*model.YProfileSource
	for _, src := range r.s.sources {
		if src.ProfileID == profileID {
			cp := *src
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete implements repo.Sources. It cascades to source calls and
// regions.
func (r *SourceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.s.sources[id]; !ok {
		return false, nil
	}
	callRepo := &SourceCallRepo{s: r.s}
	for cid, c := range r.s.sourceCalls {
		if c.SourceID == id {
			_, _ = callRepo.Delete(ctx, cid)
		}
	}
	for rid, region := range r.s.regions {
		if region.SourceID == id {
			delete(r.s.regions, rid)
		}
	}
	delete(r.s.sources, id)
	return true, nil
}
