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

package reconcile

import "github.com/JamesKane/decodingus-navigator-sub005/internal/model"

// applyAggregates recomputes p's counters from its reconciled variants
// and sources: TotalVariants equals the variant count, and the four
// status counts partition it. Called under ReconcileProfile's single
// transaction.
func applyAggregates(p *model.YProfile, variants []*model.YProfileVariant, sources []*model.YProfileSource) {
	p.TotalVariants = len(variants)
	p.ConfirmedCount = 0
	p.NovelCount = 0
	p.ConflictCount = 0
	p.NoCoverageCount = 0
	p.STRMarkerCount = 0
	p.STRConfirmedCount = 0

	for _, v := range variants {
		switch v.Status {
		case model.StatusConfirmed:
			p.ConfirmedCount++
		case model.StatusNovel:
			p.NovelCount++
		case model.StatusConflict:
			p.ConflictCount++
		case model.StatusNoCoverage:
			p.NoCoverageCount++
		}
		if v.Type == model.VariantSTR {
			p.STRMarkerCount++
			if v.Status == model.StatusConfirmed {
				p.STRConfirmedCount++
			}
		}
	}

	p.SourceCount = len(sources)
	p.PrimarySourceType = primarySourceType(sources)
}

// primarySourceType picks the contributing source with the highest
// base weight, the most evidentially authoritative source for the
// profile as a whole. Ties keep the first source encountered (source
// order is stable: repositories return sources ordered by id).
func primarySourceType(sources []*model.YProfileSource) model.SourceType {
	var best *model.YProfileSource
	for _, src := range sources {
		if best == nil || src.BaseWeight > best.BaseWeight {
			best = src
		}
	}
	if best == nil {
		return ""
	}
	return best.Type
}
