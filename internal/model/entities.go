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

// Package model defines the entities and enums of the Y-chromosome
// variant profile engine's data model: YProfile and the evidence
// branches hanging off it, plus the weight tables that score that
// evidence. These are plain structs; the repository layer (package
// repo) and its implementations own all persistence concerns.
package model

import "time"

// RecordMeta is embedded in every persisted entity and carries the
// optimistic-concurrency version, sync bookkeeping, and the record's
// URI in the external personal-data store it mirrors to. Every
// repository Update call increments Version and checks it against the
// stored row.
type RecordMeta struct {
	ID        int64
	Version   int64
	SyncState string
	AtURI     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Biosample is the external donor-level anchor this engine references
// by ID; the biosample record itself is owned by a collaborator
// system.
type Biosample struct {
	ID        int64
	Accession string
	DonorID   string
	Sex       string
}

// YProfile is the root of one biosample's reconciled Y-chromosome
// state.
type YProfile struct {
	RecordMeta

	BiosampleID int64

	ConsensusHaplogroup string

	TotalVariants     int
	ConfirmedCount    int
	NovelCount        int
	ConflictCount     int
	NoCoverageCount   int
	STRMarkerCount    int
	STRConfirmedCount int

	SourceCount       int
	PrimarySourceType SourceType
	CallableRegionPct float64
	MeanCoverage      float64
	LastReconciledAt  time.Time
}

// YProfileSource is one contributing test for a profile.
type YProfileSource struct {
	RecordMeta

	ProfileID int64

	Type           SourceType
	Vendor         string
	TestName       string
	ReferenceBuild string
	MethodTier     int
	BaseWeight     float64
}

// YProfileVariant is one (profile, genomic identity) reconciled
// variant.
type YProfileVariant struct {
	RecordMeta

	ProfileID int64

	Position int64 // 1-based
	EndPos   *int64

	RefAllele string
	AltAllele string

	Type VariantType

	VariantName *string
	MarkerName  *string
	IsInTree    bool

	ConsensusAllele string
	ConsensusState  CallState
	Status          VariantStatus

	ConfidenceScore float64
	ConcordantCount int
	DiscordantCount int
	SourceCount     int
}

// YVariantSourceCall is one (variant, source) evidence record.
type YVariantSourceCall struct {
	RecordMeta

	VariantID int64
	SourceID  int64

	CalledAllele      string
	CallState         CallState
	CalledRepeatCount *int

	ReadDepth      *int
	MappingQuality *int
	VAF            *float64

	CallableState     CallableState
	ConcordanceWeight float64
}

// YSourceCallAlignment is the coordinates of one source call in one
// reference build.
type YSourceCallAlignment struct {
	RecordMeta

	SourceCallID int64

	ReferenceBuild string
	Position       int64
	RefAllele      string
	AltAllele      string
	CalledAllele   string
	ReadDepth      *int
	MappingQuality *int
}

// YProfileRegion is one callable interval for one source.
type YProfileRegion struct {
	RecordMeta

	ProfileID int64
	SourceID  int64

	Contig string
	Start  int64 // inclusive
	End    int64 // inclusive

	State              CallableState
	MeanCoverage       float64
	MeanMappingQuality float64
}

// YVariantAudit is one curator/system action on a variant.
type YVariantAudit struct {
	RecordMeta

	VariantID int64
	Timestamp time.Time
	Action    AuditAction

	PriorConsensusAllele string
	PriorConsensusState  CallState
	PriorStatus          VariantStatus

	NewConsensusAllele string
	NewConsensusState  CallState
	NewStatus          VariantStatus

	Reason string
	UserID string
}
