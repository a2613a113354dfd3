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

// RegionRepo is the in-memory repo.Regions implementation.
type RegionRepo struct{ s *Store }

// Regions returns the repo.Regions view over the store.
func (s *Store) Regions() repo.Regions { return &RegionRepo{s: s} }

var _ repo.Regions = (*RegionRepo)(nil)

// Insert implements repo.Regions.
func (r *RegionRepo) Insert(_ context.Context, region *model.YProfileRegion) (*model.YProfileRegion, error) {
	cp := *region
	id := r.s.allocID()
	stampInsert(&cp.RecordMeta, id)
	r.s.regions[id] = &cp
	out := cp
	return &out, nil
}

// FindBySourceID implements repo.Regions.
func (r *RegionRepo) FindBySourceID(_ context.Context, sourceID int64) ([]*model.YProfileRegion, error) {
	var out []*model.YProfileRegion
	for _, region := range r.s.regions {
		if region.SourceID == sourceID {
			cp := *region
			out = append(out, &cp)
		}
	}
	return out, nil
}

// FindByProfileID implements repo.Regions.
func (r *RegionRepo) FindByProfileID(_ context.Context, profileID int64) ([]*model.YProfileRegion, error) {
	var out []*model.YProfileRegion
	for _, region := range r.s.regions {
		if region.ProfileID == profileID {
			cp := *region
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Delete implements repo.Regions.
func (r *RegionRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.s.regions[id]; !ok {
		return false, nil
	}
	delete(r.s.regions, id)
	return true, nil
}
