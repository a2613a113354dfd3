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

// Package hlc implements a small hybrid logical clock, used to stamp
// profile versions for the callable-interval cache (see package
// interval).
package hlc

import "fmt"

// Time is a (wall, logical) pair: wall is nanoseconds since the Unix
// epoch, logical disambiguates multiple events within the same
// nanosecond.
type Time struct {
	nanos   int64
	logical int32
}

// Zero is the minimum Time value.
func Zero() Time { return Time{} }

// New constructs a Time from its components.
func New(nanos int64, logical int32) Time {
	return Time{nanos: nanos, logical: logical}
}

// Nanos returns the wall-clock component.
func (t Time) Nanos() int64 { return t.nanos }

// Logical returns the logical component.
func (t Time) Logical() int32 { return t.logical }

// IsZero reports whether t is the zero value.
func (t Time) IsZero() bool { return t.nanos == 0 && t.logical == 0 }

// Next returns a Time strictly greater than both t and wallNanos: if
// wallNanos has advanced past t's wall component, the logical counter
// resets to zero, otherwise it increments.
func (t Time) Next(wallNanos int64) Time {
	if wallNanos > t.nanos {
		return Time{nanos: wallNanos, logical: 0}
	}
	return Time{nanos: t.nanos, logical: t.logical + 1}
}

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater
// than b.
func Compare(a, b Time) int {
	switch {
	case a.nanos < b.nanos:
		return -1
	case a.nanos > b.nanos:
		return 1
	case a.logical < b.logical:
		return -1
	case a.logical > b.logical:
		return 1
	default:
		return 0
	}
}

// String renders the canonical "nanos.logical" form used in logs.
func (t Time) String() string {
	return fmt.Sprintf("%d.%d", t.nanos, t.logical)
}
