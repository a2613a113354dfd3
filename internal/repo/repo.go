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

// Package repo defines the entity repository contracts: primitive
// CRUD plus entity-specific finders, implemented by package
// store/postgres for production and package store/memstore for tests.
// Every method assumes an ambient transaction is already active (see
// package store's Transactor) and returns *store.Error on failure,
// except that the Postgres list finders return an error raised while
// iterating result rows as the driver reports it.
package repo

import (
	"context"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
)

// Profiles is the repository contract for YProfile.
type Profiles interface {
	Insert(ctx context.Context, p *model.YProfile) (*model.YProfile, error)
	Update(ctx context.Context, p *model.YProfile) (*model.YProfile, error)
	FindByID(ctx context.Context, id int64) (*model.YProfile, bool, error)
	FindByBiosampleID(ctx context.Context, biosampleID int64) (*model.YProfile, bool, error)
	FindAll(ctx context.Context) ([]*model.YProfile, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Sources is the repository contract for YProfileSource.
type Sources interface {
	Insert(ctx context.Context, s *model.YProfileSource) (*model.YProfileSource, error)
	Update(ctx context.Context, s *model.YProfileSource) (*model.YProfileSource, error)
	FindByID(ctx context.Context, id int64) (*model.YProfileSource, bool, error)
	FindByProfileID(ctx context.Context, profileID int64) ([]*model.YProfileSource, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Variants is the repository contract for YProfileVariant.
type Variants interface {
	Insert(ctx context.Context, v *model.YProfileVariant) (*model.YProfileVariant, error)
	Update(ctx context.Context, v *model.YProfileVariant) (*model.YProfileVariant, error)
	FindByID(ctx context.Context, id int64) (*model.YProfileVariant, bool, error)
	// FindByIdentity finds the variant uniquely identified by
	// (profile, position, ref, alt).
	FindByIdentity(ctx context.Context, profileID, position int64, ref, alt string) (*model.YProfileVariant, bool, error)
	FindByProfileID(ctx context.Context, profileID int64) ([]*model.YProfileVariant, error)
	FindByStatus(ctx context.Context, profileID int64, status model.VariantStatus) ([]*model.YProfileVariant, error)
	FindByPositionRange(ctx context.Context, profileID, start, end int64) ([]*model.YProfileVariant, error)
	// FindByHaplogroupPrefix returns variants whose marker name lies on
	// a tree branch, ordered lexicographically.
	FindByHaplogroupPrefix(ctx context.Context, profileID int64, branch string) ([]*model.YProfileVariant, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// SourceCalls is the repository contract for YVariantSourceCall.
type SourceCalls interface {
	Insert(ctx context.Context, c *model.YVariantSourceCall) (*model.YVariantSourceCall, error)
	Update(ctx context.Context, c *model.YVariantSourceCall) (*model.YVariantSourceCall, error)
	FindByID(ctx context.Context, id int64) (*model.YVariantSourceCall, bool, error)
	FindByVariantAndSource(ctx context.Context, variantID, sourceID int64) (*model.YVariantSourceCall, bool, error)
	FindByVariantID(ctx context.Context, variantID int64) ([]*model.YVariantSourceCall, error)
	// SumWeightsForAllele returns the sum of ConcordanceWeight over all
	// source calls for the variant whose CalledAllele equals allele.
	SumWeightsForAllele(ctx context.Context, variantID int64, allele string) (float64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Alignments is the repository contract for YSourceCallAlignment.
type Alignments interface {
	// Upsert is idempotent on (sourceCallID, build): creates or
	// replaces.
	Upsert(ctx context.Context, a *model.YSourceCallAlignment) (*model.YSourceCallAlignment, error)
	FindBySourceCallID(ctx context.Context, sourceCallID int64) ([]*model.YSourceCallAlignment, error)
	FindBySourceCallAndBuild(ctx context.Context, sourceCallID int64, build string) (*model.YSourceCallAlignment, bool, error)
	FindByPositionRange(ctx context.Context, build, contig string, start, end int64) ([]*model.YSourceCallAlignment, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Regions is the repository contract for YProfileRegion.
type Regions interface {
	Insert(ctx context.Context, r *model.YProfileRegion) (*model.YProfileRegion, error)
	FindBySourceID(ctx context.Context, sourceID int64) ([]*model.YProfileRegion, error)
	FindByProfileID(ctx context.Context, profileID int64) ([]*model.YProfileRegion, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Audits is the repository contract for YVariantAudit.
type Audits interface {
	Insert(ctx context.Context, a *model.YVariantAudit) (*model.YVariantAudit, error)
	// FindByVariantID returns audit rows newest-first.
	FindByVariantID(ctx context.Context, variantID int64) ([]*model.YVariantAudit, error)
}

// Repositories bundles one instance of each repository contract, the
// unit reconcile.Service and query.Service are constructed from.
type Repositories struct {
	Profiles    Profiles
	Sources     Sources
	Variants    Variants
	SourceCalls SourceCalls
	Alignments  Alignments
	Regions     Regions
	Audits      Audits
}
