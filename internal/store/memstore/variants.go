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
	"sort"
	"strings"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/ident"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/repo"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store"
)

// VariantRepo is the in-memory repo.Variants implementation.
type VariantRepo struct{ s *Store }

// Variants returns the repo.Variants view over the store.
func (s *Store) Variants() repo.Variants { return &VariantRepo{s: s} }

var _ repo.Variants = (*VariantRepo)(nil)

func keyOf(v *model.YProfileVariant) variantKey {
	return variantKey{profileID: v.ProfileID, position: v.Position, ref: v.RefAllele, alt: v.AltAllele}
}

// Insert implements repo.Variants.
func (r *VariantRepo) Insert(_ context.Context, v *model.YProfileVariant) (*model.YProfileVariant, error) {
	k := keyOf(v)
	if _, exists := r.s.variantIndex[k]; exists {
		return nil, store.DuplicateKey("YProfileVariant", fmt.Sprintf("position %d %s>%s already exists for profile %d", v.Position, v.RefAllele, v.AltAllele, v.ProfileID))
	}
	cp := *v
	id := r.s.allocID()
	stampInsert(&cp.RecordMeta, id)
	r.s.variants[id] = &cp
	r.s.variantIndex[k] = id
	out := cp
	return &out, nil
}

// Update implements repo.Variants.
func (r *VariantRepo) Update(_ context.Context, v *model.YProfileVariant) (*model.YProfileVariant, error) {
	cur, ok := r.s.variants[v.ID]
	if !ok {
		return nil, store.NotFound("YProfileVariant", "no such variant")
	}
	if cur.Version != v.Version {
		return nil, store.VersionConflict("YProfileVariant")
	}
	cp := *v
	stampUpdate(&cp.RecordMeta)
	r.s.variants[v.ID] = &cp
	out := cp
	return &out, nil
}

// FindByID implements repo.Variants.
func (r *VariantRepo) FindByID(_ context.Context, id int64) (*model.YProfileVariant, bool, error) {
	v, ok := r.s.variants[id]
	if !ok {
		return nil, false, nil
	}
	out := *v
	return &out, true, nil
}

// FindByIdentity implements repo.Variants.
func (r *VariantRepo) FindByIdentity(_ context.Context, profileID, position int64, ref, alt string) (*model.YProfileVariant, bool, error) {
	id, ok := r.s.variantIndex[variantKey{profileID: profileID, position: position, ref: ref, alt: alt}]
	if !ok {
		return nil, false, nil
	}
	out := *r.s.variants[id]
	return &out, true, nil
}

// FindByProfileID implements repo.Variants.
func (r *VariantRepo) FindByProfileID(_ context.Context, profileID int64) ([]*model.YProfileVariant, error) {
	var out []*model.YProfileVariant
	for _, v := range r.s.variants {
		if v.ProfileID == profileID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// FindByStatus implements repo.Variants.
func (r *VariantRepo) FindByStatus(_ context.Context, profileID int64, status model.VariantStatus) ([]*model.YProfileVariant, error) {
	var out []*model.YProfileVariant
	for _, v := range r.s.variants {
		if v.ProfileID == profileID && v.Status == status {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// FindByPositionRange implements repo.Variants. The range is
// half-open: [start, end).
func (r *VariantRepo) FindByPositionRange(_ context.Context, profileID, start, end int64) ([]*model.YProfileVariant, error) {
	var out []*model.YProfileVariant
	for _, v := range r.s.variants {
		if v.ProfileID == profileID && v.Position >= start && v.Position < end {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// FindByHaplogroupPrefix implements repo.Variants, matching variants
// whose marker name lies on the given tree branch.
func (r *VariantRepo) FindByHaplogroupPrefix(_ context.Context, profileID int64, branch string) ([]*model.YProfileVariant, error) {
	var out []*model.YProfileVariant
	for _, v := range r.s.variants {
		if v.ProfileID != profileID || v.MarkerName == nil {
			continue
		}
		if ident.NewHaplogroup(*v.MarkerName).HasPrefix(branch) {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(derefOr(out[i].MarkerName), derefOr(out[j].MarkerName)) < 0
	})
	return out, nil
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Delete implements repo.Variants. It cascades to source calls and
// audits.
func (r *VariantRepo) Delete(ctx context.Context, id int64) (bool, error) {
	v, ok := r.s.variants[id]
	if !ok {
		return false, nil
	}
	callRepo := &SourceCallRepo{s: r.s}
	for cid, c := range r.s.sourceCalls {
		if c.VariantID == id {
			_, _ = callRepo.Delete(ctx, cid)
		}
	}
	for aid, a := range r.s.audits {
		if a.VariantID == id {
			delete(r.s.audits, aid)
		}
	}
	delete(r.s.variants, id)
	delete(r.s.variantIndex, keyOf(v))
	return true, nil
}
