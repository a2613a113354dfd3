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

// Package interval maintains the callable-region index: it merges
// per-source YProfileRegion intervals into a non-overlapping sequence
// per contig, answers point lookups by binary search and batch lookups
// by a sorted sweep, and caches the merged index per profile via
// package notify, invalidating on every region write.
package interval

import (
	"sort"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/msort"
)

// precedence ranks CallableState from best (0) to worst. When multiple
// sources cover the same base, the best state wins: a base one test
// could call confidently is callable for the profile even if another
// test had no coverage there.
var precedence = map[model.CallableState]int{
	model.Callable:           0,
	model.LowCoverage:        1,
	model.PoorMappingQuality: 2,
	model.NoCoverage:         3,
	model.RefN:               4,
}

func better(a, b model.CallableState) model.CallableState {
	if precedence[a] <= precedence[b] {
		return a
	}
	return b
}

// Interval is one non-overlapping, closed [Start, End] merged interval
// in the index.
type Interval struct {
	Start, End int64
	State      model.CallableState
}

// Index is the merged, per-contig interval sequence for one profile.
// Each contig's slice is sorted by Start and non-overlapping.
type Index struct {
	byContig map[string][]Interval
}

// Build merges every region across every source of a profile into a
// non-overlapping sequence per contig, applying the precedence rule on
// overlap.
func Build(regions []*model.YProfileRegion) *Index {
	byContig := map[string][]*model.YProfileRegion{}
	for _, r := range regions {
		byContig[r.Contig] = append(byContig[r.Contig], r)
	}

	idx := &Index{byContig: map[string][]Interval{}}
	for contig, rs := range byContig {
		idx.byContig[contig] = mergeContig(rs)
	}
	return idx
}

// mergeContig performs a boundary sweep over one contig's regions:
// collect every start/end+1 boundary, and for each resulting
// sub-interval determine the best-precedence state among the regions
// covering it, coalescing adjacent sub-intervals that share a state.
func mergeContig(regions []*model.YProfileRegion) []Interval {
	if len(regions) == 0 {
		return nil
	}

	boundarySet := map[int64]bool{}
	for _, r := range regions {
		boundarySet[r.Start] = true
		boundarySet[r.End+1] = true
	}
	boundaries := make([]int64, 0, len(boundarySet))
	for b := range boundarySet {
		boundaries = append(boundaries, b)
	}
	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i] < boundaries[j] })

	var merged []Interval
	for i := 0; i < len(boundaries)-1; i++ {
		lo, hi := boundaries[i], boundaries[i+1]-1
		if lo > hi {
			continue
		}

		var best model.CallableState
		found := false
		for _, r := range regions {
			if r.Start <= lo && hi <= r.End {
				if !found {
					best = r.State
					found = true
				} else {
					best = better(best, r.State)
				}
			}
		}
		if !found {
			continue
		}

		if n := len(merged); n > 0 && merged[n-1].State == best && merged[n-1].End+1 == lo {
			merged[n-1].End = hi
		} else {
			merged = append(merged, Interval{Start: lo, End: hi, State: best})
		}
	}
	return merged
}

// Contigs reports every contig with at least one interval.
func (idx *Index) Contigs() []string {
	out := make([]string, 0, len(idx.byContig))
	for c := range idx.byContig {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Lookup answers a point query in O(log n): binary search for the
// rightmost interval whose Start <= position, on the given contig.
// Positions outside every interval return NO_COVERAGE.
func (idx *Index) Lookup(contig string, position int64) model.CallableState {
	intervals := idx.byContig[contig]
	if len(intervals) == 0 {
		return model.NoCoverage
	}
	i := sort.Search(len(intervals), func(i int) bool { return intervals[i].Start > position }) - 1
	if i < 0 || position > intervals[i].End {
		return model.NoCoverage
	}
	return intervals[i].State
}

// BatchLookup answers many point queries in one sweep: sort the
// positions once, advance a single cursor over the interval list, and
// map each result back to input order. The result maps each input
// position to its state, in the order given.
func (idx *Index) BatchLookup(contig string, positions []int64) []model.CallableState {
	intervals := idx.byContig[contig]
	sorted := msort.SortInt64s(positions)

	stateAt := make(map[int64]model.CallableState, len(sorted))
	cursor := 0
	for _, pos := range sorted {
		for cursor < len(intervals) && intervals[cursor].End < pos {
			cursor++
		}
		if cursor < len(intervals) && intervals[cursor].Start <= pos && pos <= intervals[cursor].End {
			stateAt[pos] = intervals[cursor].State
		} else {
			stateAt[pos] = model.NoCoverage
		}
	}

	out := make([]model.CallableState, len(positions))
	for i, pos := range positions {
		out[i] = stateAt[pos]
	}
	return out
}
