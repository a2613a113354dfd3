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

// Package query is the engine's read-oriented surface: profile
// retrieval, variant enumeration by haplogroup branch, audit history,
// and callable-state queries, composed from the shared repositories
// and package interval's index rather than duplicating either.
package query

import (
	"context"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/audit"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/ident"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/interval"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/repo"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store"
)

// Service answers read-only queries over reconciled state.
type Service struct {
	repos     repo.Repositories
	tx        store.Transactor
	intervals *interval.Service
}

// New constructs a Service.
func New(tx store.Transactor, repos repo.Repositories, intervals *interval.Service) *Service {
	return &Service{repos: repos, tx: tx, intervals: intervals}
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

// GetVariantsByHaplogroup enumerates a profile's variants on or below
// a haplogroup branch. The memstore repository applies package ident's
// delimiter-aware prefix matcher directly; the Postgres repository
// approximates it with a LIKE prefix scan (see
// store/postgres/variants.go), which FilterByBranch can tighten.
func (s *Service) GetVariantsByHaplogroup(ctx context.Context, profileID int64, branch string) ([]*model.YProfileVariant, error) {
	var out []*model.YProfileVariant
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		found, err := s.repos.Variants.FindByHaplogroupPrefix(ctx, profileID, branch)
		out = found
		return err
	})
	return out, err
}

// FilterByBranch re-checks each variant's marker name against branch
// with ident.Haplogroup.HasPrefix, for callers that want the exact
// delimiter-aware semantics regardless of which repository served
// GetVariantsByHaplogroup's initial (possibly coarser) candidate set.
func FilterByBranch(variants []*model.YProfileVariant, branch string) []*model.YProfileVariant {
	out := make([]*model.YProfileVariant, 0, len(variants))
	for _, v := range variants {
		if v.MarkerName == nil {
			continue
		}
		if ident.NewHaplogroup(*v.MarkerName).HasPrefix(branch) {
			out = append(out, v)
		}
	}
	return out
}

// GetAuditHistory returns a variant's audit trail newest-first.
func (s *Service) GetAuditHistory(ctx context.Context, variantID int64) ([]*model.YVariantAudit, error) {
	var out []*model.YVariantAudit
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		rows, err := audit.History(ctx, s.repos.Audits, variantID)
		out = rows
		return err
	})
	return out, err
}

// QueryCallableState reports the merged callable state at a position.
func (s *Service) QueryCallableState(ctx context.Context, profileID, position int64) (model.CallableState, error) {
	return s.intervals.QueryCallableState(ctx, profileID, position)
}

// QueryCallableStates is the batch form of QueryCallableState.
func (s *Service) QueryCallableStates(ctx context.Context, profileID int64, positions []int64) ([]model.CallableState, error) {
	return s.intervals.QueryCallableStates(ctx, profileID, positions)
}

// GetCallableSummary reports one source's callable-region statistics.
func (s *Service) GetCallableSummary(ctx context.Context, sourceID int64) (*interval.Summary, error) {
	return s.intervals.GetCallableSummary(ctx, sourceID)
}
