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

// Package msort contains utility functions for sorting batches of
// genomic positions ahead of the callable-state sweep.
package msort

import "sort"

// SortInt64s returns a sorted copy of positions. The callable interval
// index's batch query sorts its inputs once so a single cursor sweep
// over the interval list answers every position, instead of one binary
// search per query.
func SortInt64s(positions []int64) []int64 {
	out := make([]int64, len(positions))
	copy(out, positions)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
