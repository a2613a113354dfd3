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

package query

import (
	"context"
	"testing"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/audit"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/interval"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store/memstore"
)

func strPtr(s string) *string { return &s }

func TestGetVariantsByHaplogroupFiltersByBranch(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	tx := memstore.NewTransactor(s)
	repos := s.Repositories()
	intervals := interval.New(tx, repos.Regions)
	svc := New(tx, repos, intervals)

	profile, err := repos.Profiles.Insert(ctx, &model.YProfile{BiosampleID: 1})
	if err != nil {
		t.Fatalf("Insert profile: %v", err)
	}

	markers := []string{"R-M269.L23", "R-M269.L23.L150", "Q-M242"}
	for i, m := range markers {
		if _, err := repos.Variants.Insert(ctx, &model.YProfileVariant{
			ProfileID: profile.ID, Position: int64(i + 1), RefAllele: "G", AltAllele: "A",
			Type: model.VariantSNP, MarkerName: strPtr(m),
		}); err != nil {
			t.Fatalf("Insert variant %d: %v", i, err)
		}
	}

	got, err := svc.GetVariantsByHaplogroup(ctx, profile.ID, "R-M269")
	if err != nil {
		t.Fatalf("GetVariantsByHaplogroup: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2 (only the R-M269 branch)", len(got))
	}
	for _, v := range got {
		if *v.MarkerName == "Q-M242" {
			t.Fatalf("Q-M242 should not match branch R-M269")
		}
	}
}

func TestFilterByBranchSkipsVariantsWithoutMarker(t *testing.T) {
	variants := []*model.YProfileVariant{
		{MarkerName: strPtr("R-M269.L23")},
		{MarkerName: nil},
		{MarkerName: strPtr("Q-M242")},
	}
	got := FilterByBranch(variants, "R-M269")
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
}

func TestQueryCallableStateDelegatesToIntervals(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	tx := memstore.NewTransactor(s)
	repos := s.Repositories()
	intervals := interval.New(tx, repos.Regions)
	svc := New(tx, repos, intervals)

	if _, err := intervals.ImportCallableIntervals(ctx, 1, 1, []interval.IntervalInput{
		{Contig: "chrY", Start: 1_000_000, End: 5_000_000, State: model.Callable},
		{Contig: "chrY", Start: 5_000_001, End: 6_000_000, State: model.LowCoverage},
		{Contig: "chrY", Start: 6_000_001, End: 10_000_000, State: model.Callable},
	}); err != nil {
		t.Fatalf("ImportCallableIntervals: %v", err)
	}

	cases := []struct {
		pos  int64
		want model.CallableState
	}{
		{3_000_000, model.Callable},
		{5_500_000, model.LowCoverage},
		{7_000_000, model.Callable},
		{500, model.NoCoverage},
	}
	for _, c := range cases {
		got, err := svc.QueryCallableState(ctx, 1, c.pos)
		if err != nil {
			t.Fatalf("QueryCallableState(%d): %v", c.pos, err)
		}
		if got != c.want {
			t.Errorf("QueryCallableState(%d) = %v, want %v", c.pos, got, c.want)
		}
	}
}

func TestGetAuditHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	tx := memstore.NewTransactor(s)
	repos := s.Repositories()
	svc := New(tx, repos, interval.New(tx, repos.Regions))

	first := audit.Triple{Allele: "A", State: model.CallDerived, Status: model.StatusConfirmed}
	second := audit.Triple{Allele: "G", State: model.CallAncestral, Status: model.StatusManual}
	if _, err := audit.Record(ctx, repos.Audits, 9, model.AuditOverride, first, second, "IGV inspection", "curator@x"); err != nil {
		t.Fatalf("Record (override): %v", err)
	}
	if _, err := audit.Record(ctx, repos.Audits, 9, model.AuditRevert, second, first, "mistake", ""); err != nil {
		t.Fatalf("Record (revert): %v", err)
	}

	history, err := svc.GetAuditHistory(ctx, 9)
	if err != nil {
		t.Fatalf("GetAuditHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	if history[0].Action != model.AuditRevert || history[1].Action != model.AuditOverride {
		t.Fatalf("actions = [%v, %v], want newest-first [REVERT, OVERRIDE]", history[0].Action, history[1].Action)
	}
}
