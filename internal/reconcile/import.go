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

import (
	"context"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/metrics"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

// VariantCallInput is one piece of evidence to fold into a variant via
// AddVariantCall or ImportVariantCalls. Optional fields are
// nil/zero-valued when absent.
type VariantCallInput struct {
	ProfileID int64
	SourceID  int64

	Position int64
	EndPos   *int64
	Ref      string
	Alt      string

	Called string
	State  model.CallState

	VariantType VariantType
	VariantName *string
	MarkerName  *string
	IsInTree    bool

	RepeatCount    *int
	ReadDepth      *int
	MappingQuality *int
	// VAF is the call's variant allele frequency, the per-call quality
	// score distinct from readDepth and mappingQuality.
	VAF *float64

	CallableState  model.CallableState
	ReferenceBuild string
}

// VariantType is an alias so callers can write reconcile.VariantType
// without importing package model directly for this one field.
type VariantType = model.VariantType

func (in VariantCallInput) validate() error {
	if in.Ref == "" || in.Alt == "" {
		return store.ValidationFailure("YProfileVariant", "ref/alt", "must not be empty")
	}
	if !in.VariantType.IsSTR() && in.VariantType != model.VariantSNP && in.VariantType != model.VariantIndel &&
		in.VariantType != model.VariantMNV && in.VariantType != model.VariantCNV {
		return store.ValidationFailure("YProfileVariant", "variantType", "unknown variant type")
	}
	if !in.State.Valid() {
		return store.ValidationFailure("YVariantSourceCall", "state", "unknown call state")
	}
	return nil
}

// ImportResult reports the outcome of a batch import.
type ImportResult struct {
	Imported int
	Replaced int
	Skipped  int
	Errored  []ImportError
}

// ImportError names one input record's index and the reason it could
// not be imported.
type ImportError struct {
	Index  int
	Reason string
}

// ImportVariantCalls runs the whole batch in one transaction; any
// unrecoverable error rolls back the entire import. A record that
// fails its own validation is reported per-record without aborting the
// rest. A record whose (variant, source) call already holds the
// identical allele and state is counted as skipped rather than
// replaced.
func (s *Service) ImportVariantCalls(ctx context.Context, profileID, sourceID int64, calls []VariantCallInput) (*ImportResult, error) {
	timer := prometheus.NewTimer(metrics.OperationDurations.WithLabelValues("importVariantCalls"))
	defer timer.ObserveDuration()

	result := &ImportResult{}
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		for i, in := range calls {
			in.ProfileID = profileID
			in.SourceID = sourceID

			_, existingCall, findErr := s.findExistingCall(ctx, in)
			if findErr != nil {
				return findErr
			}
			if existingCall != nil && isDuplicateCall(existingCall, in) {
				result.Skipped++
				continue
			}

			_, _, err := s.upsertCall(ctx, in)
			if err != nil {
				if se, ok := err.(*store.Error); ok && se.Kind == store.KindValidationFailure {
					result.Errored = append(result.Errored, ImportError{Index: i, Reason: se.Error()})
					continue
				}
				return err
			}

			if existingCall != nil {
				result.Replaced++
			} else {
				result.Imported++
			}
		}
		return nil
	})
	metrics.SourceCallsImported.Add(float64(result.Imported + result.Replaced))
	if err != nil {
		metrics.OperationErrors.WithLabelValues("importVariantCalls", errorKind(err)).Inc()
	}
	return result, err
}

// isDuplicateCall reports whether in would be a no-op replacement of
// existing: identical called allele and call state, the only two
// fields the batch import's duplicate-detection needs to honor, since
// quality metrics alone changing is still new evidence worth
// reimporting.
func isDuplicateCall(existing *model.YVariantSourceCall, in VariantCallInput) bool {
	return existing.CalledAllele == in.Called && existing.CallState == in.State
}

// findExistingCall looks up the (variant, source) call this input
// would overwrite, if the variant already exists, to classify the
// record as imported vs. replaced. A not-yet-existing variant implies
// no existing call.
func (s *Service) findExistingCall(ctx context.Context, in VariantCallInput) (*model.YProfileVariant, *model.YVariantSourceCall, error) {
	variant, found, err := s.repos.Variants.FindByIdentity(ctx, in.ProfileID, in.Position, in.Ref, in.Alt)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, nil, nil
	}
	call, found, err := s.repos.SourceCalls.FindByVariantAndSource(ctx, variant.ID, in.SourceID)
	if err != nil {
		return variant, nil, err
	}
	if !found {
		return variant, nil, nil
	}
	return variant, call, nil
}
