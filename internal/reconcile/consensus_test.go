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
	"math"
	"testing"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
)

func call(sourceID int64, allele string, state model.CallState, weight float64) *model.YVariantSourceCall {
	return &model.YVariantSourceCall{SourceID: sourceID, CalledAllele: allele, CallState: state, ConcordanceWeight: weight}
}

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestDeriveConcordantDuplexWGS(t *testing.T) {
	calls := []*model.YVariantSourceCall{
		call(1, "A", model.CallDerived, 0.85),
		call(2, "A", model.CallDerived, 0.90),
	}
	sources := map[int64]sourceWeight{
		1: {SourceID: 1, BaseWeight: 0.85},
		2: {SourceID: 2, BaseWeight: 0.90},
	}
	got := Derive(calls, sources, true, 0.75)

	if got.Allele != "A" {
		t.Errorf("Allele = %q, want A", got.Allele)
	}
	if got.State != model.CallDerived {
		t.Errorf("State = %v, want DERIVED", got.State)
	}
	if got.Status != model.StatusConfirmed {
		t.Errorf("Status = %v, want CONFIRMED", got.Status)
	}
	if got.ConcordantCount != 2 || got.DiscordantCount != 0 {
		t.Errorf("concordant/discordant = %d/%d, want 2/0", got.ConcordantCount, got.DiscordantCount)
	}
	if !approxEqual(got.ConfidenceScore, 1.0) {
		t.Errorf("ConfidenceScore = %v, want 1.0", got.ConfidenceScore)
	}
	if got.SourceCount != 2 {
		t.Errorf("SourceCount = %d, want 2", got.SourceCount)
	}
}

// Two WGS sources outweigh one capillary-electrophoresis source for a SNP.
func TestDeriveTwoWGSOutweighOneCEForSNP(t *testing.T) {
	calls := []*model.YVariantSourceCall{
		call(1, "A", model.CallDerived, 0.85),
		call(2, "A", model.CallDerived, 0.90),
		call(3, "G", model.CallAncestral, 0.40),
	}
	sources := map[int64]sourceWeight{
		1: {SourceID: 1, BaseWeight: 0.85},
		2: {SourceID: 2, BaseWeight: 0.90},
		3: {SourceID: 3, BaseWeight: 0.40},
	}
	got := Derive(calls, sources, true, 0.75)

	if got.Allele != "A" {
		t.Fatalf("Allele = %q, want A", got.Allele)
	}
	if got.ConcordantCount != 2 || got.DiscordantCount != 1 {
		t.Errorf("concordant/discordant = %d/%d, want 2/1", got.ConcordantCount, got.DiscordantCount)
	}
	want := 1.75 / 2.15
	if !approxEqual(got.ConfidenceScore, want) {
		t.Errorf("ConfidenceScore = %v, want %v", got.ConfidenceScore, want)
	}
	if got.Status != model.StatusConfirmed {
		t.Errorf("Status = %v, want CONFIRMED", got.Status)
	}
}

// Capillary electrophoresis outweighs WGS for an STR.
func TestDeriveCEOutweighsWGSForSTR(t *testing.T) {
	calls := []*model.YVariantSourceCall{
		call(1, "(GATA)13", model.CallDerived, 1.00),
		call(2, "(GATA)14", model.CallDerived, 0.70),
	}
	sources := map[int64]sourceWeight{
		1: {SourceID: 1, BaseWeight: 1.00},
		2: {SourceID: 2, BaseWeight: 0.70},
	}
	got := Derive(calls, sources, true, 0.75)
	if got.Allele != "(GATA)13" {
		t.Fatalf("Allele = %q, want (GATA)13", got.Allele)
	}
}

func TestDeriveConflictBelowConfidenceThreshold(t *testing.T) {
	calls := []*model.YVariantSourceCall{
		call(1, "A", model.CallDerived, 0.85),
		call(2, "G", model.CallAncestral, 0.55),
	}
	sources := map[int64]sourceWeight{
		1: {SourceID: 1, BaseWeight: 0.85},
		2: {SourceID: 2, BaseWeight: 0.55},
	}
	got := Derive(calls, sources, true, 0.75)

	if got.Allele != "A" {
		t.Fatalf("Allele = %q, want A", got.Allele)
	}
	want := 0.85 / 1.40
	if !approxEqual(got.ConfidenceScore, want) {
		t.Errorf("ConfidenceScore = %v, want %v", got.ConfidenceScore, want)
	}
	if got.Status != model.StatusConflict {
		t.Errorf("Status = %v, want CONFLICT", got.Status)
	}
}

func TestDeriveAllNoCallIsNoCoverage(t *testing.T) {
	calls := []*model.YVariantSourceCall{
		call(1, "", model.CallNoCall, 0),
		call(2, "", model.CallNoCall, 0),
	}
	got := Derive(calls, map[int64]sourceWeight{}, false, 0.75)
	if got.Status != model.StatusNoCoverage {
		t.Fatalf("Status = %v, want NO_COVERAGE", got.Status)
	}
}

func TestDeriveNovelWhenNotInTreeAndNotConflicted(t *testing.T) {
	calls := []*model.YVariantSourceCall{call(1, "A", model.CallDerived, 0.85)}
	sources := map[int64]sourceWeight{1: {SourceID: 1, BaseWeight: 0.85}}
	got := Derive(calls, sources, false, 0.75)
	if got.Status != model.StatusNovel {
		t.Fatalf("Status = %v, want NOVEL", got.Status)
	}
}

func TestDeriveTieBreaksOnSourceBaseWeight(t *testing.T) {
	// Equal summed weight for both alleles; allele "A" comes from the
	// higher base-weight source and should win.
	calls := []*model.YVariantSourceCall{
		call(1, "A", model.CallDerived, 0.90),
		call(2, "G", model.CallAncestral, 0.90),
	}
	sources := map[int64]sourceWeight{
		1: {SourceID: 1, BaseWeight: 0.90},
		2: {SourceID: 2, BaseWeight: 0.55},
	}
	got := Derive(calls, sources, true, 0.75)
	if got.Allele != "A" {
		t.Fatalf("Allele = %q, want A (higher source base weight should break the tie)", got.Allele)
	}
}
