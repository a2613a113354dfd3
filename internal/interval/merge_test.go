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
	"testing"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
)

func region(contig string, start, end int64, state model.CallableState) *model.YProfileRegion {
	return &model.YProfileRegion{Contig: contig, Start: start, End: end, State: state}
}

func TestBuildMergesNonOverlapping(t *testing.T) {
	idx := Build([]*model.YProfileRegion{
		region("chrY", 1, 100, model.Callable),
		region("chrY", 101, 200, model.Callable),
	})
	if got := idx.Lookup("chrY", 50); got != model.Callable {
		t.Fatalf("Lookup(50) = %v, want CALLABLE", got)
	}
	if got := idx.Lookup("chrY", 150); got != model.Callable {
		t.Fatalf("Lookup(150) = %v, want CALLABLE", got)
	}
	// Adjacent same-state intervals coalesce into one.
	if got := len(idx.byContig["chrY"]); got != 1 {
		t.Fatalf("merged interval count = %d, want 1 (adjacent CALLABLE regions should coalesce)", got)
	}
}

func TestBuildOverlapAppliesPrecedence(t *testing.T) {
	idx := Build([]*model.YProfileRegion{
		region("chrY", 1, 100, model.LowCoverage),
		region("chrY", 50, 150, model.Callable),
	})
	// The overlapping sub-interval [50,100] should resolve to CALLABLE,
	// the better precedence state, even though LOW_COVERAGE was added
	// first.
	if got := idx.Lookup("chrY", 75); got != model.Callable {
		t.Fatalf("Lookup(75) = %v, want CALLABLE (precedence should prefer it over LOW_COVERAGE)", got)
	}
	if got := idx.Lookup("chrY", 10); got != model.LowCoverage {
		t.Fatalf("Lookup(10) = %v, want LOW_COVERAGE", got)
	}
	if got := idx.Lookup("chrY", 120); got != model.Callable {
		t.Fatalf("Lookup(120) = %v, want CALLABLE", got)
	}
}

func TestLookupOutsideAnyIntervalIsNoCoverage(t *testing.T) {
	idx := Build([]*model.YProfileRegion{region("chrY", 100, 200, model.Callable)})
	if got := idx.Lookup("chrY", 50); got != model.NoCoverage {
		t.Fatalf("Lookup(50) = %v, want NO_COVERAGE", got)
	}
	if got := idx.Lookup("chrY", 250); got != model.NoCoverage {
		t.Fatalf("Lookup(250) = %v, want NO_COVERAGE", got)
	}
	if got := idx.Lookup("chrX", 150); got != model.NoCoverage {
		t.Fatalf("Lookup on unknown contig = %v, want NO_COVERAGE", got)
	}
}

func TestBatchLookupMatchesPointLookup(t *testing.T) {
	idx := Build([]*model.YProfileRegion{
		region("chrY", 1, 50, model.Callable),
		region("chrY", 51, 100, model.LowCoverage),
		region("chrY", 200, 300, model.RefN),
	})
	positions := []int64{300, 1, 75, 150, 50, 51}
	got := idx.BatchLookup("chrY", positions)
	for i, pos := range positions {
		want := idx.Lookup("chrY", pos)
		if got[i] != want {
			t.Errorf("BatchLookup position %d (%d) = %v, want %v", i, pos, got[i], want)
		}
	}
}

func TestContigsSortedAndPresent(t *testing.T) {
	idx := Build([]*model.YProfileRegion{
		region("chrY", 1, 10, model.Callable),
		region("chrX", 1, 10, model.Callable),
	})
	got := idx.Contigs()
	if len(got) != 2 || got[0] != "chrX" || got[1] != "chrY" {
		t.Fatalf("Contigs() = %v, want [chrX chrY]", got)
	}
}
