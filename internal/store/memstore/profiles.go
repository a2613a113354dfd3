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

// ProfileRepo is the in-memory repo.Profiles implementation.
type ProfileRepo struct{ s *Store }

// Profiles returns the repo.Profiles view over the store.
func (s *Store) Profiles() repo.Profiles { return &ProfileRepo{s: s} }

var _ repo.Profiles = (*ProfileRepo)(nil)

// Insert implements repo.Profiles.
func (r *ProfileRepo) Insert(_ context.Context, p *model.YProfile) (*model.YProfile, error) {
	if _, exists := r.s.profileByBiosample[p.BiosampleID]; exists {
		return nil, store.DuplicateKey("YProfile", fmt.Sprintf("biosample %d already has a profile", p.BiosampleID))
	}
	cp := *p
	id := r.s.allocID()
	stampInsert(&cp.RecordMeta, id)
	r.s.profiles[id] = &cp
	r.s.profileByBiosample[p.BiosampleID] = id
	out := cp
	return &out, nil
}

// Update implements repo.Profiles.
func (r *ProfileRepo) Update(_ context.Context, p *model.YProfile) (*model.YProfile, error) {
	cur, ok := r.s.profiles[p.ID]
	if !ok {
		return nil, store.NotFound("YProfile", "no such profile")
	}
	if cur.Version != p.Version {
		return nil, store.VersionConflict("YProfile")
	}
	cp := *p
	stampUpdate(&cp.RecordMeta)
	r.s.profiles[p.ID] = &cp
	out := cp
	return &out, nil
}

// FindByID implements repo.Profiles.
func (r *ProfileRepo) FindByID(_ context.Context, id int64) (*model.YProfile, bool, error) {
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, false, nil
	}
	out := *p
	return &out, true, nil
}

// FindByBiosampleID implements repo.Profiles.
func (r *ProfileRepo) FindByBiosampleID(_ context.Context, biosampleID int64) (*model.YProfile, bool, error) {
	id, ok := r.s.profileByBiosample[biosampleID]
	if !ok {
		return nil, false, nil
	}
	out := *r.s.profiles[id]
	return &out, true, nil
}

// FindAll implements repo.Profiles.
func (r *ProfileRepo) FindAll(_ context.Context) ([]*model.YProfile, error) {
	out := make([]*model.YProfile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// Delete implements repo.Profiles. It cascades to sources, variants,
// and regions.
func (r *ProfileRepo) Delete(ctx context.Context, id int64) (bool, error) {
	p, ok := r.s.profiles[id]
	if !ok {
		return false, nil
	}
	for sid, src := range r.s.sources {
		if src.ProfileID == id {
			_, _ = (&SourceRepo{s: r.s}).Delete(ctx, sid)
		}
	}
	for vid, v := range r.s.variants {
		if v.ProfileID == id {
			_, _ = (&VariantRepo{s: r.s}).Delete(ctx, vid)
		}
	}
	delete(r.s.profiles, id)
	delete(r.s.profileByBiosample, p.BiosampleID)
	return true, nil
}
