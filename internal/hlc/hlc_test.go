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

package hlc

import "testing"

func TestNextAdvancesWithWallClock(t *testing.T) {
	a := New(100, 5)
	b := a.Next(200)
	if b.Nanos() != 200 || b.Logical() != 0 {
		t.Fatalf("Next(200) = %v, want 200.0", b)
	}
}

func TestNextIncrementsLogicalOnStalledClock(t *testing.T) {
	a := New(100, 5)
	b := a.Next(100)
	if b.Nanos() != 100 || b.Logical() != 6 {
		t.Fatalf("Next(100) = %v, want 100.6", b)
	}
	if Compare(a, b) >= 0 {
		t.Fatal("Next must return a strictly greater Time")
	}
}

func TestCompareOrdersByNanosThenLogical(t *testing.T) {
	cases := []struct {
		a, b Time
		want int
	}{
		{New(1, 0), New(2, 0), -1},
		{New(2, 0), New(1, 9), 1},
		{New(1, 1), New(1, 2), -1},
		{New(1, 1), New(1, 1), 0},
	}
	for _, c := range cases {
		if got := Compare(c.a, c.b); got != c.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestZeroIsZero(t *testing.T) {
	if !Zero().IsZero() {
		t.Fatal("Zero().IsZero() = false")
	}
	if New(1, 0).IsZero() {
		t.Fatal("New(1, 0).IsZero() = true")
	}
}
