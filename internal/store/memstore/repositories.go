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

package memstore

import "github.com/JamesKane/decodingus-navigator-sub005/internal/repo"

// Repositories bundles every in-memory repository view for s into the
// shared repo.Repositories struct the reconciliation and query
// services are constructed from.
func (s *Store) Repositories() repo.Repositories {
	return repo.Repositories{
		Profiles:    s.Profiles(),
		Sources:     s.Sources(),
		Variants:    s.Variants(),
		SourceCalls: s.SourceCalls(),
		Alignments:  s.Alignments(),
		Regions:     s.Regions(),
		Audits:      s.Audits(),
	}
}
