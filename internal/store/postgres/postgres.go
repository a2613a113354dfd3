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

package postgres

import "github.com/JamesKane/decodingus-navigator-sub005/internal/repo"

// Repositories bundles one instance of each Postgres-backed repository
// into the shared repo.Repositories struct the reconciliation and
// query services are constructed from. Every repository here is
// stateless; all of them read the ambient transaction off the context
// via store.FromContext, supplied by a store.Transactor scope.
func Repositories() repo.Repositories {
	return repo.Repositories{
		Profiles:    &ProfileRepo{},
		Sources:     &SourceRepo{},
		Variants:    &VariantRepo{},
		SourceCalls: &SourceCallRepo{},
		Alignments:  &AlignmentRepo{},
		Regions:     &RegionRepo{},
		Audits:      &AuditRepo{},
	}
}
