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
	"errors"
	"math"
	"time"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/audit"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/interval"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/metrics"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/repo"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Service is the reconciliation core: it orchestrates
// repo.Repositories under a store.Transactor scope. A Service holds no
// state of its own beyond its collaborators; every operation opens its
// own scoped transaction.
type Service struct {
	repos             repo.Repositories
	tx                store.Transactor
	log               *log.Logger
	intervals         *interval.Service
	conflictThreshold float64
	defaultBuild      string
}

// New constructs a Service over repos, scoped through tx. A nil logger
// falls back to logrus's standard logger. intervals may be nil, in
// which case ReconcileProfile leaves CallableRegionPct and
// MeanCoverage at their stored values instead of recomputing them from
// regions. A zero or negative conflictThreshold falls back to 0.75.
// defaultBuild is assumed when a caller omits the reference build on a
// new source or variant call; empty means no alignment is recorded for
// a call that names no build.
func New(tx store.Transactor, repos repo.Repositories, logger *log.Logger, intervals *interval.Service, conflictThreshold float64, defaultBuild string) *Service {
	if logger == nil {
		logger = log.StandardLogger()
	}
	if conflictThreshold <= 0 {
		conflictThreshold = 0.75
	}
	return &Service{repos: repos, tx: tx, log: logger, intervals: intervals, conflictThreshold: conflictThreshold, defaultBuild: defaultBuild}
}

// GetOrCreateProfile returns the biosample's profile, creating an
// empty one on first use.
func (s *Service) GetOrCreateProfile(ctx context.Context, biosampleID int64) (*model.YProfile, error) {
	var out *model.YProfile
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		existing, found, err := s.repos.Profiles.FindByBiosampleID(ctx, biosampleID)
		if err != nil {
			return err
		}
		if found {
			out = existing
			return nil
		}
		created, err := s.repos.Profiles.Insert(ctx, &model.YProfile{BiosampleID: biosampleID})
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	return out, err
}

// GetProfile returns the profile with the given id.
func (s *Service) GetProfile(ctx context.Context, id int64) (*model.YProfile, bool, error) {
	var out *model.YProfile
	var found bool
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		p, ok, err := s.repos.Profiles.FindByID(ctx, id)
		out, found = p, ok
		return err
	})
	return out, found, err
}

// GetProfileByBiosample returns the profile anchored to a biosample.
func (s *Service) GetProfileByBiosample(ctx context.Context, biosampleID int64) (*model.YProfile, bool, error) {
	var out *model.YProfile
	var found bool
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		p, ok, err := s.repos.Profiles.FindByBiosampleID(ctx, biosampleID)
		out, found = p, ok
		return err
	})
	return out, found, err
}

// AddSource registers one contributing test for a profile. The base
// weight and method tier are assigned at creation time from the source
// type's SNP-context weight; the tier is always derived from the
// weight, never stored independently.
func (s *Service) AddSource(ctx context.Context, profileID int64, sourceType model.SourceType, vendor, testName, referenceBuild string) (*model.YProfileSource, error) {
	if !sourceType.Valid() {
		return nil, store.ValidationFailure("YProfileSource", "type", "unknown source type")
	}
	snpWeight, ok := model.BaseWeight(sourceType, model.VariantSNP)
	if !ok {
		return nil, store.ValidationFailure("YProfileSource", "type", "no SNP base weight defined")
	}

	if referenceBuild == "" {
		referenceBuild = s.defaultBuild
	}

	var out *model.YProfileSource
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		created, err := s.repos.Sources.Insert(ctx, &model.YProfileSource{
			ProfileID:      profileID,
			Type:           sourceType,
			Vendor:         vendor,
			TestName:       testName,
			ReferenceBuild: referenceBuild,
			MethodTier:     model.MethodTier(snpWeight),
			BaseWeight:     snpWeight,
		})
		out = created
		return err
	})
	return out, err
}

// RemoveSource deletes one source; cascading deletes of its source
// calls and regions are enforced by the store layer.
func (s *Service) RemoveSource(ctx context.Context, sourceID int64) (bool, error) {
	var removed bool
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		ok, err := s.repos.Sources.Delete(ctx, sourceID)
		removed = ok
		return err
	})
	return removed, err
}

// GetSourcesForProfile lists a profile's contributing tests.
func (s *Service) GetSourcesForProfile(ctx context.Context, profileID int64) ([]*model.YProfileSource, error) {
	var out []*model.YProfileSource
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		found, err := s.repos.Sources.FindByProfileID(ctx, profileID)
		out = found
		return err
	})
	return out, err
}

// GetVariants lists a profile's variants ordered by position.
func (s *Service) GetVariants(ctx context.Context, profileID int64) ([]*model.YProfileVariant, error) {
	var out []*model.YProfileVariant
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		found, err := s.repos.Variants.FindByProfileID(ctx, profileID)
		out = found
		return err
	})
	return out, err
}

// GetVariantCalls lists the evidence records behind one variant.
func (s *Service) GetVariantCalls(ctx context.Context, variantID int64) ([]*model.YVariantSourceCall, error) {
	var out []*model.YVariantSourceCall
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		found, err := s.repos.SourceCalls.FindByVariantID(ctx, variantID)
		out = found
		return err
	})
	return out, err
}

// GetAlignments lists every per-build representation of one source
// call.
func (s *Service) GetAlignments(ctx context.Context, sourceCallID int64) ([]*model.YSourceCallAlignment, error) {
	var out []*model.YSourceCallAlignment
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		found, err := s.repos.Alignments.FindBySourceCallID(ctx, sourceCallID)
		out = found
		return err
	})
	return out, err
}

// GetAlignmentForBuild returns one source call's coordinates in one
// reference build.
func (s *Service) GetAlignmentForBuild(ctx context.Context, sourceCallID int64, build string) (*model.YSourceCallAlignment, bool, error) {
	var out *model.YSourceCallAlignment
	var found bool
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		a, ok, err := s.repos.Alignments.FindBySourceCallAndBuild(ctx, sourceCallID, build)
		out, found = a, ok
		return err
	})
	return out, found, err
}

// AddAlignmentToSourceCall records one source call's coordinates in an
// additional reference build: one YSourceCallAlignment per
// (source call, reference build), idempotent on that pair. Extra
// alignments never count as extra evidence.
func (s *Service) AddAlignmentToSourceCall(ctx context.Context, sourceCallID int64, build string, position int64, ref, alt, called string, readDepth, mappingQuality *int) (*model.YSourceCallAlignment, error) {
	if build == "" {
		return nil, store.ValidationFailure("YSourceCallAlignment", "referenceBuild", "must not be empty")
	}
	var out *model.YSourceCallAlignment
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		a, err := s.repos.Alignments.Upsert(ctx, &model.YSourceCallAlignment{
			SourceCallID:   sourceCallID,
			ReferenceBuild: build,
			Position:       position,
			RefAllele:      ref,
			AltAllele:      alt,
			CalledAllele:   called,
			ReadDepth:      readDepth,
			MappingQuality: mappingQuality,
		})
		out = a
		return err
	})
	return out, err
}

// AddVariantCall finds or creates the variant keyed by (profileID,
// position, ref, alt), records the source call with its effective
// concordance weight, and leaves reconciliation of the variant's
// consensus to a subsequent ReconcileVariant/ReconcileProfile call.
func (s *Service) AddVariantCall(ctx context.Context, in VariantCallInput) (*model.YProfileVariant, *model.YVariantSourceCall, error) {
	var variant *model.YProfileVariant
	var call *model.YVariantSourceCall
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		v, c, err := s.upsertCall(ctx, in)
		variant, call = v, c
		return err
	})
	return variant, call, err
}

// upsertCall is the transaction-scoped body shared by AddVariantCall
// and the batch importer.
func (s *Service) upsertCall(ctx context.Context, in VariantCallInput) (*model.YProfileVariant, *model.YVariantSourceCall, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}

	source, found, err := s.repos.Sources.FindByID(ctx, in.SourceID)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, nil, store.NotFound("YProfileSource", "no such source")
	}

	variant, found, err := s.repos.Variants.FindByIdentity(ctx, in.ProfileID, in.Position, in.Ref, in.Alt)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		variant, err = s.repos.Variants.Insert(ctx, &model.YProfileVariant{
			ProfileID:   in.ProfileID,
			Position:    in.Position,
			EndPos:      in.EndPos,
			RefAllele:   in.Ref,
			AltAllele:   in.Alt,
			Type:        in.VariantType,
			VariantName: in.VariantName,
			MarkerName:  in.MarkerName,
			IsInTree:    in.IsInTree,
			Status:      model.StatusNoCoverage,
		})
		if err != nil {
			return nil, nil, err
		}
	}

	baseWeight, ok := model.BaseWeight(source.Type, variant.Type)
	if !ok {
		return nil, nil, store.ValidationFailure("YVariantSourceCall", "variantType", "source type has no base weight for this variant type")
	}
	effective := model.EffectiveWeight(baseWeight, in.CallableState, in.ReadDepth, in.MappingQuality)

	existingCall, found, err := s.repos.SourceCalls.FindByVariantAndSource(ctx, variant.ID, in.SourceID)
	if err != nil {
		return nil, nil, err
	}

	call := &model.YVariantSourceCall{
		VariantID:         variant.ID,
		SourceID:          in.SourceID,
		CalledAllele:      in.Called,
		CallState:         in.State,
		CalledRepeatCount: in.RepeatCount,
		ReadDepth:         in.ReadDepth,
		MappingQuality:    in.MappingQuality,
		VAF:               in.VAF,
		CallableState:     in.CallableState,
		ConcordanceWeight: effective,
	}

	if found {
		call.RecordMeta = existingCall.RecordMeta
		call, err = s.repos.SourceCalls.Update(ctx, call)
	} else {
		call, err = s.repos.SourceCalls.Insert(ctx, call)
	}
	if err != nil {
		return nil, nil, err
	}

	build := in.ReferenceBuild
	if build == "" {
		build = s.defaultBuild
	}
	if build != "" {
		if _, err := s.repos.Alignments.Upsert(ctx, &model.YSourceCallAlignment{
			SourceCallID:   call.ID,
			ReferenceBuild: build,
			Position:       in.Position,
			RefAllele:      in.Ref,
			AltAllele:      in.Alt,
			CalledAllele:   in.Called,
			ReadDepth:      in.ReadDepth,
			MappingQuality: in.MappingQuality,
		}); err != nil {
			return nil, nil, err
		}
	}

	return variant, call, nil
}

// ReconcileVariant recomputes consensus from the variant's current
// source calls, and if the stored consensus triple changes, appends a
// RECONCILE audit row so the audit log is a complete history.
func (s *Service) ReconcileVariant(ctx context.Context, variantID int64, isInTree *bool) (*model.YProfileVariant, error) {
	var out *model.YProfileVariant
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		v, err := s.reconcileVariantLocked(ctx, variantID, isInTree)
		out = v
		return err
	})
	return out, err
}

func (s *Service) reconcileVariantLocked(ctx context.Context, variantID int64, isInTree *bool) (*model.YProfileVariant, error) {
	variant, found, err := s.repos.Variants.FindByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, store.NotFound("YProfileVariant", "no such variant")
	}
	if isInTree != nil {
		variant.IsInTree = *isInTree
	}

	calls, err := s.repos.SourceCalls.FindByVariantID(ctx, variantID)
	if err != nil {
		return nil, err
	}

	sourcesByID, err := s.loadSourceWeights(ctx, calls)
	if err != nil {
		return nil, err
	}

	before := audit.TripleOf(variant)
	consensus := Derive(calls, sourcesByID, variant.IsInTree, s.conflictThreshold)

	if consensus.Allele != "" {
		// The stored rows must still sum to the weight the consensus
		// was derived from; a divergence means another writer changed
		// the calls mid-reconciliation.
		var expected float64
		for _, c := range calls {
			if c.CalledAllele == consensus.Allele {
				expected += c.ConcordanceWeight
			}
		}
		stored, err := s.repos.SourceCalls.SumWeightsForAllele(ctx, variantID, consensus.Allele)
		if err != nil {
			return nil, err
		}
		if math.Abs(stored-expected) > 1e-9 {
			return nil, store.InvariantViolation("YProfileVariant", "stored call weights diverged during reconciliation")
		}
	}

	variant.ConsensusAllele = consensus.Allele
	variant.ConsensusState = consensus.State
	variant.Status = consensus.Status
	variant.ConfidenceScore = consensus.ConfidenceScore
	variant.ConcordantCount = consensus.ConcordantCount
	variant.DiscordantCount = consensus.DiscordantCount
	variant.SourceCount = consensus.SourceCount

	updated, err := s.repos.Variants.Update(ctx, variant)
	if err != nil {
		return nil, err
	}

	after := audit.TripleOf(updated)
	if after != before {
		if _, err := audit.Record(ctx, s.repos.Audits, updated.ID, model.AuditReconcile, before, after, "automated reconciliation", ""); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// loadSourceWeights fetches the distinct sources referenced by calls
// and builds the tie-break table Derive needs.
func (s *Service) loadSourceWeights(ctx context.Context, calls []*model.YVariantSourceCall) (map[int64]sourceWeight, error) {
	out := map[int64]sourceWeight{}
	for _, c := range calls {
		if _, ok := out[c.SourceID]; ok {
			continue
		}
		src, found, err := s.repos.Sources.FindByID(ctx, c.SourceID)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		out[c.SourceID] = sourceWeight{SourceID: src.ID, BaseWeight: src.BaseWeight}
	}
	return out, nil
}

// ReconcileProfile reconciles every variant, recomputes profile
// aggregates, and sets LastReconciledAt, all in one transaction.
func (s *Service) ReconcileProfile(ctx context.Context, profileID int64) (*model.YProfile, *BatchResult, error) {
	timer := prometheus.NewTimer(metrics.OperationDurations.WithLabelValues("reconcileProfile"))
	defer timer.ObserveDuration()

	var profile *model.YProfile
	result := &BatchResult{}
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		p, found, err := s.repos.Profiles.FindByID(ctx, profileID)
		if err != nil {
			return err
		}
		if !found {
			return store.NotFound("YProfile", "no such profile")
		}

		variants, err := s.repos.Variants.FindByProfileID(ctx, profileID)
		if err != nil {
			return err
		}

		for _, v := range variants {
			if _, err := s.reconcileOneWithRetry(ctx, v.ID, result); err != nil {
				return err
			}
		}

		reconciled, err := s.repos.Variants.FindByProfileID(ctx, profileID)
		if err != nil {
			return err
		}
		sources, err := s.repos.Sources.FindByProfileID(ctx, profileID)
		if err != nil {
			return err
		}

		applyAggregates(p, reconciled, sources)
		if s.intervals != nil {
			pct, coverage, err := s.intervals.ProfileStats(ctx, profileID, nil)
			if err != nil {
				return err
			}
			p.CallableRegionPct = pct
			p.MeanCoverage = coverage
		}
		p.LastReconciledAt = time.Now().UTC()

		updated, err := s.repos.Profiles.Update(ctx, p)
		if err != nil {
			return err
		}
		profile = updated
		return nil
	})
	metrics.VariantsReconciled.WithLabelValues("reconciled").Add(float64(result.Reconciled))
	metrics.VariantsReconciled.WithLabelValues("skipped").Add(float64(result.Skipped))
	metrics.VariantsReconciled.WithLabelValues("failed").Add(float64(result.Failed))
	if err != nil {
		metrics.OperationErrors.WithLabelValues("reconcileProfile", errorKind(err)).Inc()
	}
	return profile, result, err
}

// errorKind extracts the store.Kind label for metrics.OperationErrors,
// falling back to "unknown" for errors that never went through
// package store's typed constructors.
func errorKind(err error) string {
	var se *store.Error
	if errors.As(err, &se) {
		return se.Kind.String()
	}
	return "unknown"
}

// reconcileOneWithRetry retries a transient VersionConflict on a
// single variant exactly once, then skips the variant; any other error
// aborts the whole batch.
func (s *Service) reconcileOneWithRetry(ctx context.Context, variantID int64, result *BatchResult) (*model.YProfileVariant, error) {
	v, err := s.reconcileVariantLocked(ctx, variantID, nil)
	if err == nil {
		result.Reconciled++
		return v, nil
	}
	if store.Is(err, store.KindVersionConflict) {
		v, err = s.reconcileVariantLocked(ctx, variantID, nil)
		if err == nil {
			result.Reconciled++
			return v, nil
		}
		if store.Is(err, store.KindVersionConflict) {
			s.log.WithField("variant_id", variantID).Warn("skipping variant after repeated version conflict")
			result.Skipped++
			return nil, nil
		}
	}
	result.Failed++
	return nil, err
}

// BatchResult reports the outcome of a batch reconciliation pass.
type BatchResult struct {
	Reconciled int
	Skipped    int
	Failed     int
}

// OverrideVariant sets the consensus triple directly, pins confidence
// to 1.0, and appends an OVERRIDE audit row.
func (s *Service) OverrideVariant(ctx context.Context, variantID int64, allele string, state model.CallState, status model.VariantStatus, reason, userID string) (*model.YProfileVariant, error) {
	if reason == "" {
		return nil, store.ValidationFailure("YVariantAudit", "reason", "must not be empty")
	}
	var out *model.YProfileVariant
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		variant, found, err := s.repos.Variants.FindByID(ctx, variantID)
		if err != nil {
			return err
		}
		if !found {
			return store.NotFound("YProfileVariant", "no such variant")
		}

		before := audit.TripleOf(variant)
		variant.ConsensusAllele = allele
		variant.ConsensusState = state
		variant.Status = status
		variant.ConfidenceScore = 1.0

		updated, err := s.repos.Variants.Update(ctx, variant)
		if err != nil {
			return err
		}
		after := audit.TripleOf(updated)

		if _, err := audit.Record(ctx, s.repos.Audits, updated.ID, model.AuditOverride, before, after, reason, userID); err != nil {
			return err
		}
		out = updated
		return nil
	})
	return out, err
}

// RevertOverride recomputes consensus from the live source calls,
// rather than restoring an earlier explicit override, and appends a
// REVERT audit row.
func (s *Service) RevertOverride(ctx context.Context, variantID int64, reason string, isInTree *bool) (*model.YProfileVariant, error) {
	if reason == "" {
		return nil, store.ValidationFailure("YVariantAudit", "reason", "must not be empty")
	}
	var out *model.YProfileVariant
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		variant, found, err := s.repos.Variants.FindByID(ctx, variantID)
		if err != nil {
			return err
		}
		if !found {
			return store.NotFound("YProfileVariant", "no such variant")
		}
		if isInTree != nil {
			variant.IsInTree = *isInTree
		}

		before := audit.TripleOf(variant)

		calls, err := s.repos.SourceCalls.FindByVariantID(ctx, variantID)
		if err != nil {
			return err
		}
		sourcesByID, err := s.loadSourceWeights(ctx, calls)
		if err != nil {
			return err
		}
		consensus := Derive(calls, sourcesByID, variant.IsInTree, s.conflictThreshold)

		variant.ConsensusAllele = consensus.Allele
		variant.ConsensusState = consensus.State
		variant.Status = consensus.Status
		variant.ConfidenceScore = consensus.ConfidenceScore
		variant.ConcordantCount = consensus.ConcordantCount
		variant.DiscordantCount = consensus.DiscordantCount
		variant.SourceCount = consensus.SourceCount

		updated, err := s.repos.Variants.Update(ctx, variant)
		if err != nil {
			return err
		}
		after := audit.TripleOf(updated)

		// Reverts carry no user id; only overrides name a curator.
		if _, err := audit.Record(ctx, s.repos.Audits, updated.ID, model.AuditRevert, before, after, reason, ""); err != nil {
			return err
		}
		out = updated
		return nil
	})
	return out, err
}
