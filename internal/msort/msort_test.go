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

package msort

import (
	"sort"
	"testing"
)

func TestSortInt64s(t *testing.T) {
	in := []int64{5, 1, 4, 2, 3}
	out := SortInt64s(in)
	if !sort.SliceIsSorted(out, func(i, j int) bool { return out[i] < out[j] }) {
		t.Fatalf("SortInt64s(%v) = %v, not sorted", in, out)
	}
	if in[0] != 5 {
		t.Fatal("SortInt64s must not mutate its input")
	}
}

func TestSortInt64sEmpty(t *testing.T) {
	if out := SortInt64s(nil); len(out) != 0 {
		t.Fatalf("SortInt64s(nil) = %v, want empty", out)
	}
}
