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

// Package ident defines canonical identifier types used across the
// engine for contigs, biosample accessions, and haplogroup branch
// paths. Wrapping these in a comparable value type, rather than
// passing bare strings through the repository layer, keeps whitespace
// normalization in one place; comparison is case-sensitive.
package ident

import (
	"sort"
	"strings"
)

// An Ident is a canonicalized identifier: surrounding whitespace is
// trimmed and the value is compared case-sensitively once canonical.
// Construct with New; the zero value is the empty identifier.
type Ident struct {
	raw string
}

// New canonicalizes s into an Ident.
func New(s string) Ident {
	return Ident{raw: strings.TrimSpace(s)}
}

// Raw returns the canonical string form.
func (i Ident) Raw() string { return i.raw }

// IsEmpty reports whether the identifier has no content.
func (i Ident) IsEmpty() bool { return i.raw == "" }

// String implements fmt.Stringer.
func (i Ident) String() string { return i.raw }

// Equal reports whether two identifiers are the same after
// canonicalization.
func (i Ident) Equal(o Ident) bool { return i.raw == o.raw }

// Contig identifies a reference sequence (e.g. "chrY", "NC_000024.10").
type Contig = Ident

// Haplogroup is a hierarchical, dot/hyphen-delimited lineage path (e.g.
// "R-M269.L23"). Branch queries use lexicographic prefix matching
// against the canonical raw form.
type Haplogroup struct {
	Ident
}

// NewHaplogroup canonicalizes a haplogroup path.
func NewHaplogroup(s string) Haplogroup {
	return Haplogroup{Ident: New(s)}
}

// HasPrefix reports whether this haplogroup lies on or below the given
// branch prefix. A branch "R-M269" matches itself and any haplogroup
// whose raw path starts with "R-M269" immediately followed by a
// delimiter ('.', '-') or the end of string, so that "R-M2691" is not
// mistakenly treated as a descendant of "R-M269".
func (h Haplogroup) HasPrefix(branch string) bool {
	b := strings.TrimSpace(branch)
	if b == "" {
		return true
	}
	raw := h.raw
	if raw == b {
		return true
	}
	if !strings.HasPrefix(raw, b) {
		return false
	}
	next := raw[len(b)]
	return next == '.' || next == '-'
}

// SortHaplogroups sorts a slice of haplogroup strings lexicographically
// by canonical raw form, which is the ordering the by-prefix branch
// finder relies on.
func SortHaplogroups(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Slice(out, func(i, j int) bool { return New(out[i]).raw < New(out[j]).raw })
	return out
}
