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

package model

import "math"

// snpWeights and strWeights hold the base concordance weight per
// source type for SNP and STR contexts. Capillary electrophoresis
// outranks every sequencing technology for STRs; it is the gold
// standard for repeat calling. CHIP has no STR weight because chip
// arrays do not call repeat counts.
var snpWeights = map[SourceType]float64{
	SourceWGSLongRead:              0.90,
	SourceWGSShortRead:             0.85,
	SourceTargetedNGS:              0.80,
	SourceChip:                     0.55,
	SourceCapillaryElectrophoresis: 0.40,
}

var strWeights = map[SourceType]float64{
	SourceWGSLongRead:              0.90,
	SourceWGSShortRead:             0.70,
	SourceTargetedNGS:              0.65,
	SourceCapillaryElectrophoresis: 1.00,
}

// BaseWeight returns the base concordance weight for a source type in
// the given variant context. ok is false if the combination is
// undefined (e.g. CHIP in an STR context).
func BaseWeight(t SourceType, variantType VariantType) (weight float64, ok bool) {
	table := snpWeights
	if variantType.IsSTR() {
		table = strWeights
	}
	w, found := table[t]
	return w, found
}

// MethodTier derives the integer 1-5 method tier from a SNP-context
// base weight. The tier is always derived, never stored
// independently, so the two can never drift apart.
func MethodTier(snpBaseWeight float64) int {
	tier := int(math.Round(snpBaseWeight * 5))
	if tier < 1 {
		tier = 1
	}
	if tier > 5 {
		tier = 5
	}
	return tier
}

// CallableFactor discounts evidence from poorly sequenced positions:
// full weight when callable or unannotated, half weight for low
// coverage or poor mapping quality, and no weight at all where the
// source had no coverage or the reference is N.
func CallableFactor(state CallableState) float64 {
	switch state {
	case Callable, "":
		return 1.0
	case LowCoverage, PoorMappingQuality:
		return 0.5
	case NoCoverage, RefN:
		return 0.0
	default:
		return 1.0
	}
}

// QualityFactor discounts evidence by read depth and mapping quality.
// Both metrics absent defaults to 1.0. When depth is present but
// mapping quality is not supplied alongside a depth >= 10, the >= 40
// mapping-quality requirement is treated as unmet and the call falls
// through to the next depth bucket, same as a depth of 5-9.
func QualityFactor(readDepth, mappingQuality *int) float64 {
	if readDepth == nil && mappingQuality == nil {
		return 1.0
	}
	depth := 0
	if readDepth != nil {
		depth = *readDepth
	}
	mq := 0
	if mappingQuality != nil {
		mq = *mappingQuality
	}
	switch {
	case depth >= 10 && mappingQuality != nil && mq >= 40:
		return 1.0
	case depth >= 5:
		return 0.75
	case depth >= 1:
		return 0.5
	default:
		return 0.5
	}
}

// EffectiveWeight is the weight one source call contributes to
// consensus: baseWeight * callableFactor * qualityFactor.
func EffectiveWeight(baseWeight float64, callable CallableState, readDepth, mappingQuality *int) float64 {
	return baseWeight * CallableFactor(callable) * QualityFactor(readDepth, mappingQuality)
}
