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

package reconcile

import (
	"context"
	"testing"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store/memstore"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s := memstore.New()
	tx := memstore.NewTransactor(s)
	return New(tx, s.Repositories(), nil, nil, 0.75, "GRCh38")
}

func mustAddSource(t *testing.T, svc *Service, typ model.SourceType) *model.YProfileSource {
	t.Helper()
	src, err := svc.AddSource(context.Background(), 1, typ, "", "", "GRCh38")
	if err != nil {
		t.Fatalf("AddSource(%v): %v", typ, err)
	}
	return src
}

// A single source call reconciles, end to end through the service, to
// a consensus that equals the call itself.
func TestReconcileRoundTripSingleSource(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	profile, err := svc.GetOrCreateProfile(ctx, 42)
	if err != nil {
		t.Fatalf("GetOrCreateProfile: %v", err)
	}
	src := mustAddSource(t, svc, model.SourceWGSShortRead)

	variant, _, err := svc.AddVariantCall(ctx, VariantCallInput{
		ProfileID:   profile.ID,
		SourceID:    src.ID,
		Position:    2787994,
		Ref:         "G",
		Alt:         "A",
		Called:      "A",
		State:       model.CallDerived,
		VariantType: model.VariantSNP,
		IsInTree:    true,
	})
	if err != nil {
		t.Fatalf("AddVariantCall: %v", err)
	}

	reconciled, err := svc.ReconcileVariant(ctx, variant.ID, nil)
	if err != nil {
		t.Fatalf("ReconcileVariant: %v", err)
	}
	if reconciled.ConsensusAllele != "A" {
		t.Errorf("ConsensusAllele = %q, want A (the single call's own allele)", reconciled.ConsensusAllele)
	}
	if reconciled.Status != model.StatusConfirmed {
		t.Errorf("Status = %v, want CONFIRMED", reconciled.Status)
	}
}

func TestOverrideAndRevertVariant(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	profile, err := svc.GetOrCreateProfile(ctx, 1)
	if err != nil {
		t.Fatalf("GetOrCreateProfile: %v", err)
	}
	shortRead := mustAddSource(t, svc, model.SourceWGSShortRead)
	longRead := mustAddSource(t, svc, model.SourceWGSLongRead)

	variant, _, err := svc.AddVariantCall(ctx, VariantCallInput{
		ProfileID: profile.ID, SourceID: shortRead.ID,
		Position: 2787994, Ref: "G", Alt: "A", Called: "A",
		State: model.CallDerived, VariantType: model.VariantSNP, IsInTree: true,
	})
	if err != nil {
		t.Fatalf("AddVariantCall (short read): %v", err)
	}
	if _, _, err := svc.AddVariantCall(ctx, VariantCallInput{
		ProfileID: profile.ID, SourceID: longRead.ID,
		Position: 2787994, Ref: "G", Alt: "A", Called: "A",
		State: model.CallDerived, VariantType: model.VariantSNP, IsInTree: true,
	}); err != nil {
		t.Fatalf("AddVariantCall (long read): %v", err)
	}
	if _, err := svc.ReconcileVariant(ctx, variant.ID, nil); err != nil {
		t.Fatalf("ReconcileVariant: %v", err)
	}

	overridden, err := svc.OverrideVariant(ctx, variant.ID, "G", model.CallAncestral, model.StatusConfirmed, "IGV inspection", "curator@x")
	if err != nil {
		t.Fatalf("OverrideVariant: %v", err)
	}
	if overridden.ConsensusAllele != "G" || overridden.ConsensusState != model.CallAncestral || overridden.ConfidenceScore != 1.0 {
		t.Fatalf("override result = %+v, want (G, ANCESTRAL, confidence 1.0)", overridden)
	}

	reverted, err := svc.RevertOverride(ctx, variant.ID, "mistake", boolPtr(true))
	if err != nil {
		t.Fatalf("RevertOverride: %v", err)
	}
	if reverted.ConsensusAllele != "A" || reverted.ConsensusState != model.CallDerived || reverted.Status != model.StatusConfirmed {
		t.Fatalf("revert result = %+v, want consensus restored to (A, DERIVED, CONFIRMED)", reverted)
	}

	history, err := svc.repos.Audits.FindByVariantID(ctx, variant.ID)
	if err != nil {
		t.Fatalf("FindByVariantID: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("audit history length = %d, want 3", len(history))
	}
	// FindByVariantID orders newest first: REVERT, then OVERRIDE, then the
	// RECONCILE row appended when the first ReconcileVariant changed the
	// stored consensus.
	if history[0].Action != model.AuditRevert || history[1].Action != model.AuditOverride || history[2].Action != model.AuditReconcile {
		t.Fatalf("audit actions = [%v, %v, %v], want [REVERT, OVERRIDE, RECONCILE]", history[0].Action, history[1].Action, history[2].Action)
	}
}

// Alignments in multiple reference builds must not inflate SourceCount
// or ConcordantCount.
func TestMultiBuildAlignmentDoesNotDoubleCount(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	profile, err := svc.GetOrCreateProfile(ctx, 7)
	if err != nil {
		t.Fatalf("GetOrCreateProfile: %v", err)
	}
	src := mustAddSource(t, svc, model.SourceWGSShortRead)

	_, call, err := svc.AddVariantCall(ctx, VariantCallInput{
		ProfileID: profile.ID, SourceID: src.ID,
		Position: 2887824, Ref: "G", Alt: "A", Called: "A",
		State: model.CallDerived, VariantType: model.VariantSNP, IsInTree: true,
		ReferenceBuild: "GRCh38",
	})
	if err != nil {
		t.Fatalf("AddVariantCall: %v", err)
	}

	if _, err := svc.AddAlignmentToSourceCall(ctx, call.ID, "GRCh37", 2793009, "G", "A", "A", nil, nil); err != nil {
		t.Fatalf("AddAlignmentToSourceCall (GRCh37): %v", err)
	}
	if _, err := svc.AddAlignmentToSourceCall(ctx, call.ID, "hs1", 2912345, "C", "T", "T", nil, nil); err != nil {
		t.Fatalf("AddAlignmentToSourceCall (hs1): %v", err)
	}

	variant, err := svc.ReconcileVariant(ctx, call.VariantID, nil)
	if err != nil {
		t.Fatalf("ReconcileVariant: %v", err)
	}
	if variant.SourceCount != 1 {
		t.Errorf("SourceCount = %d, want 1", variant.SourceCount)
	}
	if variant.ConcordantCount != 1 {
		t.Errorf("ConcordantCount = %d, want 1", variant.ConcordantCount)
	}

	alignments, err := svc.GetAlignments(ctx, call.ID)
	if err != nil {
		t.Fatalf("GetAlignments: %v", err)
	}
	if len(alignments) != 3 {
		t.Fatalf("len(alignments) = %d, want 3 (GRCh38 default-build + GRCh37 + hs1)", len(alignments))
	}
}

func TestReconcileProfileRecomputesAggregatesAndTimestamp(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	profile, err := svc.GetOrCreateProfile(ctx, 3)
	if err != nil {
		t.Fatalf("GetOrCreateProfile: %v", err)
	}
	src := mustAddSource(t, svc, model.SourceWGSLongRead)

	for i, pos := range []int64{100, 200, 300} {
		isInTree := i == 0
		if _, _, err := svc.AddVariantCall(ctx, VariantCallInput{
			ProfileID: profile.ID, SourceID: src.ID,
			Position: pos, Ref: "G", Alt: "A", Called: "A",
			State: model.CallDerived, VariantType: model.VariantSNP, IsInTree: isInTree,
		}); err != nil {
			t.Fatalf("AddVariantCall(%d): %v", pos, err)
		}
	}

	updated, result, err := svc.ReconcileProfile(ctx, profile.ID)
	if err != nil {
		t.Fatalf("ReconcileProfile: %v", err)
	}
	if result.Reconciled != 3 || result.Failed != 0 {
		t.Fatalf("BatchResult = %+v, want 3 reconciled, 0 failed", result)
	}
	if updated.TotalVariants != 3 {
		t.Errorf("TotalVariants = %d, want 3", updated.TotalVariants)
	}
	if updated.ConfirmedCount+updated.NovelCount+updated.ConflictCount+updated.NoCoverageCount != updated.TotalVariants {
		t.Errorf("status counts do not partition TotalVariants: %+v", updated)
	}
	if updated.LastReconciledAt.IsZero() {
		t.Error("LastReconciledAt was not set")
	}
}

func boolPtr(b bool) *bool { return &b }
