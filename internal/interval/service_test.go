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

package interval

import (
	"context"
	"testing"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store/memstore"
)

func newTestService() (*Service, *memstore.Store) {
	store := memstore.New()
	tx := memstore.NewTransactor(store)
	return New(tx, store.Regions()), store
}

func TestImportCallableIntervalsAndQuery(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	const profileID, sourceID = int64(1), int64(1)
	n, err := svc.ImportCallableIntervals(ctx, profileID, sourceID, []IntervalInput{
		{Contig: "chrY", Start: 1, End: 100, State: model.Callable},
		{Contig: "chrY", Start: 101, End: 200, State: model.LowCoverage},
	})
	if err != nil {
		t.Fatalf("ImportCallableIntervals: %v", err)
	}
	if n != 2 {
		t.Fatalf("inserted = %d, want 2", n)
	}

	state, err := svc.QueryCallableState(ctx, profileID, 50)
	if err != nil {
		t.Fatalf("QueryCallableState: %v", err)
	}
	if state != model.Callable {
		t.Fatalf("state at 50 = %v, want CALLABLE", state)
	}

	state, err = svc.QueryCallableState(ctx, profileID, 150)
	if err != nil {
		t.Fatalf("QueryCallableState: %v", err)
	}
	if state != model.LowCoverage {
		t.Fatalf("state at 150 = %v, want LOW_COVERAGE", state)
	}

	state, err = svc.QueryCallableState(ctx, profileID, 9999)
	if err != nil {
		t.Fatalf("QueryCallableState: %v", err)
	}
	if state != model.NoCoverage {
		t.Fatalf("state outside any region = %v, want NO_COVERAGE", state)
	}
}

func TestQueryCallableStatesBatch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	const profileID, sourceID = int64(1), int64(1)
	if _, err := svc.ImportCallableIntervals(ctx, profileID, sourceID, []IntervalInput{
		{Contig: "chrY", Start: 1, End: 100, State: model.Callable},
	}); err != nil {
		t.Fatalf("ImportCallableIntervals: %v", err)
	}

	states, err := svc.QueryCallableStates(ctx, profileID, []int64{1, 50, 999, 100})
	if err != nil {
		t.Fatalf("QueryCallableStates: %v", err)
	}
	want := []model.CallableState{model.Callable, model.Callable, model.NoCoverage, model.Callable}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("states[%d] = %v, want %v", i, states[i], want[i])
		}
	}
}

func TestCacheInvalidatedOnNewImport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	const profileID, sourceID = int64(1), int64(1)

	if _, err := svc.ImportCallableIntervals(ctx, profileID, sourceID, []IntervalInput{
		{Contig: "chrY", Start: 1, End: 100, State: model.Callable},
	}); err != nil {
		t.Fatalf("ImportCallableIntervals: %v", err)
	}
	if state, err := svc.QueryCallableState(ctx, profileID, 500); err != nil || state != model.NoCoverage {
		t.Fatalf("initial state at 500 = %v, %v; want NO_COVERAGE, nil", state, err)
	}

	if _, err := svc.ImportCallableIntervals(ctx, profileID, sourceID, []IntervalInput{
		{Contig: "chrY", Start: 101, End: 600, State: model.PoorMappingQuality},
	}); err != nil {
		t.Fatalf("ImportCallableIntervals: %v", err)
	}

	state, err := svc.QueryCallableState(ctx, profileID, 500)
	if err != nil {
		t.Fatalf("QueryCallableState: %v", err)
	}
	if state != model.PoorMappingQuality {
		t.Fatalf("state at 500 after second import = %v, want POOR_MAPPING_QUALITY (cache should have been invalidated)", state)
	}
}

func TestGetCallableSummary(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	const profileID, sourceID = int64(1), int64(7)

	if _, err := svc.ImportCallableIntervals(ctx, profileID, sourceID, []IntervalInput{
		{Contig: "chrY", Start: 1, End: 100, State: model.Callable},
		{Contig: "chrY", Start: 101, End: 150, State: model.NoCoverage},
	}); err != nil {
		t.Fatalf("ImportCallableIntervals: %v", err)
	}

	summary, err := svc.GetCallableSummary(ctx, sourceID)
	if err != nil {
		t.Fatalf("GetCallableSummary: %v", err)
	}
	if summary.RegionCount != 2 {
		t.Fatalf("RegionCount = %d, want 2", summary.RegionCount)
	}
	if summary.CallableBases != 100 {
		t.Fatalf("CallableBases = %d, want 100", summary.CallableBases)
	}
	if summary.TotalBases != 150 {
		t.Fatalf("TotalBases = %d, want 150", summary.TotalBases)
	}
}

func TestImportCallableIntervalsRejectsInvertedRange(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	_, err := svc.ImportCallableIntervals(ctx, 1, 1, []IntervalInput{
		{Contig: "chrY", Start: 100, End: 50, State: model.Callable},
	})
	if err == nil {
		t.Fatal("expected an error for an interval whose End precedes Start")
	}
}
