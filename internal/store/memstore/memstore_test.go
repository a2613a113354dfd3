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
	"testing"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store"
)

func TestUpdateRejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	s := New()
	profiles := s.Profiles()

	p, err := profiles.Insert(ctx, &model.YProfile{BiosampleID: 1})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	stale := *p
	if _, err := profiles.Update(ctx, p); err != nil {
		t.Fatalf("first Update: %v", err)
	}

	_, err = profiles.Update(ctx, &stale)
	if !store.Is(err, store.KindVersionConflict) {
		t.Fatalf("Update with stale version: err = %v, want VersionConflict", err)
	}
}

func TestDuplicateBiosampleProfileRejected(t *testing.T) {
	ctx := context.Background()
	s := New()
	profiles := s.Profiles()

	if _, err := profiles.Insert(ctx, &model.YProfile{BiosampleID: 5}); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	_, err := profiles.Insert(ctx, &model.YProfile{BiosampleID: 5})
	if !store.Is(err, store.KindDuplicateKey) {
		t.Fatalf("second Insert: err = %v, want DuplicateKey", err)
	}
}

func TestDeleteProfileCascadesToSourcesVariantsAndSourceCalls(t *testing.T) {
	ctx := context.Background()
	s := New()
	repos := s.Repositories()

	profile, err := repos.Profiles.Insert(ctx, &model.YProfile{BiosampleID: 1})
	if err != nil {
		t.Fatalf("Insert profile: %v", err)
	}
	src, err := repos.Sources.Insert(ctx, &model.YProfileSource{ProfileID: profile.ID, Type: model.SourceWGSShortRead, BaseWeight: 0.85, MethodTier: 4})
	if err != nil {
		t.Fatalf("Insert source: %v", err)
	}
	variant, err := repos.Variants.Insert(ctx, &model.YProfileVariant{ProfileID: profile.ID, Position: 1, RefAllele: "G", AltAllele: "A", Type: model.VariantSNP})
	if err != nil {
		t.Fatalf("Insert variant: %v", err)
	}
	call, err := repos.SourceCalls.Insert(ctx, &model.YVariantSourceCall{VariantID: variant.ID, SourceID: src.ID, CalledAllele: "A", CallState: model.CallDerived})
	if err != nil {
		t.Fatalf("Insert source call: %v", err)
	}
	if _, err := repos.Regions.Insert(ctx, &model.YProfileRegion{ProfileID: profile.ID, SourceID: src.ID, Contig: "chrY", Start: 1, End: 10, State: model.Callable}); err != nil {
		t.Fatalf("Insert region: %v", err)
	}

	ok, err := repos.Profiles.Delete(ctx, profile.ID)
	if err != nil || !ok {
		t.Fatalf("Delete profile: ok=%v err=%v", ok, err)
	}

	if _, found, _ := repos.Sources.FindByID(ctx, src.ID); found {
		t.Error("source survived profile deletion")
	}
	if _, found, _ := repos.Variants.FindByID(ctx, variant.ID); found {
		t.Error("variant survived profile deletion")
	}
	if _, found, _ := repos.SourceCalls.FindByID(ctx, call.ID); found {
		t.Error("source call survived profile deletion")
	}
	regions, err := repos.Regions.FindBySourceID(ctx, src.ID)
	if err != nil {
		t.Fatalf("FindBySourceID: %v", err)
	}
	if len(regions) != 0 {
		t.Error("region survived source deletion cascaded from profile deletion")
	}
}

func TestSumWeightsForAllele(t *testing.T) {
	ctx := context.Background()
	s := New()
	calls := s.SourceCalls()

	for i, c := range []*model.YVariantSourceCall{
		{VariantID: 1, SourceID: 1, CalledAllele: "A", CallState: model.CallDerived, ConcordanceWeight: 0.85},
		{VariantID: 1, SourceID: 2, CalledAllele: "A", CallState: model.CallDerived, ConcordanceWeight: 0.90},
		{VariantID: 1, SourceID: 3, CalledAllele: "G", CallState: model.CallAncestral, ConcordanceWeight: 0.40},
		{VariantID: 2, SourceID: 1, CalledAllele: "A", CallState: model.CallDerived, ConcordanceWeight: 0.55},
	} {
		if _, err := calls.Insert(ctx, c); err != nil {
			t.Fatalf("Insert call %d: %v", i, err)
		}
	}

	sum, err := calls.SumWeightsForAllele(ctx, 1, "A")
	if err != nil {
		t.Fatalf("SumWeightsForAllele: %v", err)
	}
	if want := 1.75; sum != want {
		t.Errorf("SumWeightsForAllele(1, A) = %v, want %v", sum, want)
	}
	sum, err = calls.SumWeightsForAllele(ctx, 1, "T")
	if err != nil {
		t.Fatalf("SumWeightsForAllele: %v", err)
	}
	if sum != 0 {
		t.Errorf("SumWeightsForAllele(1, T) = %v, want 0", sum)
	}
}

func TestVariantFindByStatusAndPositionRange(t *testing.T) {
	ctx := context.Background()
	s := New()
	variants := s.Variants()

	for _, v := range []*model.YProfileVariant{
		{ProfileID: 1, Position: 100, RefAllele: "G", AltAllele: "A", Type: model.VariantSNP, Status: model.StatusConfirmed},
		{ProfileID: 1, Position: 200, RefAllele: "C", AltAllele: "T", Type: model.VariantSNP, Status: model.StatusConflict},
		{ProfileID: 1, Position: 300, RefAllele: "A", AltAllele: "G", Type: model.VariantSNP, Status: model.StatusConfirmed},
		{ProfileID: 2, Position: 100, RefAllele: "G", AltAllele: "A", Type: model.VariantSNP, Status: model.StatusConfirmed},
	} {
		if _, err := variants.Insert(ctx, v); err != nil {
			t.Fatalf("Insert variant at %d: %v", v.Position, err)
		}
	}

	confirmed, err := variants.FindByStatus(ctx, 1, model.StatusConfirmed)
	if err != nil {
		t.Fatalf("FindByStatus: %v", err)
	}
	if len(confirmed) != 2 || confirmed[0].Position != 100 || confirmed[1].Position != 300 {
		t.Errorf("FindByStatus(CONFIRMED) = %d rows, want positions [100, 300]", len(confirmed))
	}

	// [100, 300) excludes the variant at 300.
	ranged, err := variants.FindByPositionRange(ctx, 1, 100, 300)
	if err != nil {
		t.Fatalf("FindByPositionRange: %v", err)
	}
	if len(ranged) != 2 || ranged[0].Position != 100 || ranged[1].Position != 200 {
		t.Errorf("FindByPositionRange(100, 300) = %d rows, want positions [100, 200]", len(ranged))
	}
}

func TestAlignmentFindByPositionRange(t *testing.T) {
	ctx := context.Background()
	s := New()
	alignments := s.Alignments()

	for i, a := range []*model.YSourceCallAlignment{
		{SourceCallID: 1, ReferenceBuild: "GRCh38", Position: 2887824, RefAllele: "G", AltAllele: "A", CalledAllele: "A"},
		{SourceCallID: 1, ReferenceBuild: "GRCh37", Position: 2793009, RefAllele: "G", AltAllele: "A", CalledAllele: "A"},
		{SourceCallID: 2, ReferenceBuild: "GRCh38", Position: 2912345, RefAllele: "C", AltAllele: "T", CalledAllele: "T"},
	} {
		if _, err := alignments.Upsert(ctx, a); err != nil {
			t.Fatalf("Upsert alignment %d: %v", i, err)
		}
	}

	got, err := alignments.FindByPositionRange(ctx, "GRCh38", "chrY", 2880000, 2900000)
	if err != nil {
		t.Fatalf("FindByPositionRange: %v", err)
	}
	if len(got) != 1 || got[0].Position != 2887824 {
		t.Fatalf("FindByPositionRange(GRCh38, [2880000, 2900000)) = %d rows, want the one at 2887824", len(got))
	}
}
