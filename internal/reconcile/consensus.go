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

// Package reconcile is the engine's core algorithmic layer: per-call
// effective weights, weighted consensus derivation, profile aggregate
// recompute, batch import, and manual override/revert mediated through
// an audit log.
package reconcile

import (
	"sort"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
)

// sourceWeight is the subset of a YProfileSource consensus derivation
// needs to tie-break on base weight.
type sourceWeight struct {
	SourceID   int64
	BaseWeight float64
}

// Consensus is the result of deriving a variant's consensus from its
// source calls.
type Consensus struct {
	Allele          string
	State           model.CallState
	Status          model.VariantStatus
	ConfidenceScore float64
	ConcordantCount int
	DiscordantCount int
	SourceCount     int
}

// Derive computes the weighted consensus for one variant. calls is
// every YVariantSourceCall for the variant; sourcesByID maps each
// call's SourceID to the base weight needed for tie-breaking. isInTree
// distinguishes CONFIRMED from NOVEL for unconflicted variants.
// conflictThreshold is the confidence floor below which discordant
// evidence flags the variant CONFLICT (operator-tunable via
// config.Config.ConflictThreshold).
func Derive(calls []*model.YVariantSourceCall, sourcesByID map[int64]sourceWeight, isInTree bool, conflictThreshold float64) Consensus {
	evidence := make([]*model.YVariantSourceCall, 0, len(calls))
	for _, c := range calls {
		if c.CallState != model.CallNoCall {
			evidence = append(evidence, c)
		}
	}

	if len(evidence) == 0 {
		return Consensus{Status: model.StatusNoCoverage}
	}

	weightByAllele := map[string]float64{}
	for _, c := range evidence {
		weightByAllele[c.CalledAllele] += c.ConcordanceWeight
	}

	alleles := make([]string, 0, len(weightByAllele))
	for a := range weightByAllele {
		alleles = append(alleles, a)
	}
	sort.Strings(alleles)

	winner := pickWinner(alleles, weightByAllele, evidence, sourcesByID)

	state := winningState(evidence, winner)

	concordant, discordant := 0, 0
	for _, c := range evidence {
		if c.CalledAllele == winner {
			concordant++
		} else {
			discordant++
		}
	}

	total := 0.0
	for _, w := range weightByAllele {
		total += w
	}
	confidence := 0.0
	if total > 0 {
		confidence = weightByAllele[winner] / total
	}

	sources := map[int64]bool{}
	for _, c := range evidence {
		sources[c.SourceID] = true
	}

	status := deriveStatus(discordant, confidence, isInTree, conflictThreshold)

	return Consensus{
		Allele:          winner,
		State:           state,
		Status:          status,
		ConfidenceScore: confidence,
		ConcordantCount: concordant,
		DiscordantCount: discordant,
		SourceCount:     len(sources),
	}
}

// pickWinner takes the allele with the greatest summed weight,
// breaking ties three ways in order: higher source base weight, then
// DERIVED over ANCESTRAL, then lexicographically smaller allele.
// alleles is pre-sorted lexicographically so the final tie-break falls
// out of iteration order.
func pickWinner(alleles []string, weightByAllele map[string]float64, evidence []*model.YVariantSourceCall, sourcesByID map[int64]sourceWeight) string {
	var winner string
	var winnerWeight, winnerBaseWeight float64
	winnerHasDerived := false
	first := true

	for _, a := range alleles {
		w := weightByAllele[a]
		baseWeight, hasDerived := bestEvidenceFor(a, evidence, sourcesByID)

		switch {
		case first:
			winner, winnerWeight, winnerBaseWeight, winnerHasDerived = a, w, baseWeight, hasDerived
			first = false
		case w > winnerWeight:
			winner, winnerWeight, winnerBaseWeight, winnerHasDerived = a, w, baseWeight, hasDerived
		case w == winnerWeight:
			if baseWeight > winnerBaseWeight {
				winner, winnerWeight, winnerBaseWeight, winnerHasDerived = a, w, baseWeight, hasDerived
			} else if baseWeight == winnerBaseWeight && hasDerived && !winnerHasDerived {
				winner, winnerWeight, winnerBaseWeight, winnerHasDerived = a, w, baseWeight, hasDerived
			}
			// else: leave winner as-is; alleles is sorted, so the
			// existing winner is already the lexicographically
			// smaller candidate.
		}
	}
	return winner
}

// bestEvidenceFor returns the highest source base weight among calls
// for allele a, and whether any such call is in state DERIVED.
func bestEvidenceFor(a string, evidence []*model.YVariantSourceCall, sourcesByID map[int64]sourceWeight) (float64, bool) {
	var best float64
	hasDerived := false
	for _, c := range evidence {
		if c.CalledAllele != a {
			continue
		}
		if sw, ok := sourcesByID[c.SourceID]; ok && sw.BaseWeight > best {
			best = sw.BaseWeight
		}
		if c.CallState == model.CallDerived {
			hasDerived = true
		}
	}
	return best, hasDerived
}

// winningState is the call state of the winning evidence set, with
// DERIVED winning a mixed set.
func winningState(evidence []*model.YVariantSourceCall, winner string) model.CallState {
	sawAncestral := false
	for _, c := range evidence {
		if c.CalledAllele != winner {
			continue
		}
		if c.CallState == model.CallDerived {
			return model.CallDerived
		}
		if c.CallState == model.CallAncestral {
			sawAncestral = true
		}
	}
	if sawAncestral {
		return model.CallAncestral
	}
	return model.CallNoCall
}

// deriveStatus classifies a variant with at least one non-NO_CALL
// piece of evidence.
func deriveStatus(discordant int, confidence float64, isInTree bool, conflictThreshold float64) model.VariantStatus {
	switch {
	case discordant > 0 && confidence < conflictThreshold:
		return model.StatusConflict
	case isInTree:
		return model.StatusConfirmed
	default:
		return model.StatusNovel
	}
}
