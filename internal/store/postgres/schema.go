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

// Package postgres is the production repository implementation,
// issuing hand-written SQL through the ambient transaction supplied by
// package store's Transactor. Each file holds one entity's statement
// templates as package-level constants.
package postgres

// SchemaVersion identifies the current shape of Schema. It is written
// into y_schema_meta on first open and checked on every subsequent
// open; a mismatch means the process and the database disagree about
// the schema and must not proceed.
const SchemaVersion = 1

// Schema is the full DDL for the engine's persisted state: one table
// per entity, foreign keys with ON DELETE CASCADE down the profile
// tree, and the secondary indexes the finders rely on. Every statement
// is idempotent; package migrate applies it at pool-open time.
const Schema = `
CREATE TABLE IF NOT EXISTS y_schema_meta (
	singleton  BOOLEAN PRIMARY KEY DEFAULT true CHECK (singleton),
	version    INT NOT NULL
);

CREATE TABLE IF NOT EXISTS y_profile (
	id                    BIGSERIAL PRIMARY KEY,
	version               BIGINT NOT NULL DEFAULT 1,
	sync_state            TEXT NOT NULL DEFAULT '',
	at_uri                TEXT NOT NULL DEFAULT '',
	created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	biosample_id          BIGINT NOT NULL,
	consensus_haplogroup  TEXT NOT NULL DEFAULT '',
	total_variants        INT NOT NULL DEFAULT 0,
	confirmed_count       INT NOT NULL DEFAULT 0,
	novel_count           INT NOT NULL DEFAULT 0,
	conflict_count        INT NOT NULL DEFAULT 0,
	no_coverage_count     INT NOT NULL DEFAULT 0,
	str_marker_count      INT NOT NULL DEFAULT 0,
	str_confirmed_count   INT NOT NULL DEFAULT 0,
	source_count          INT NOT NULL DEFAULT 0,
	primary_source_type   TEXT NOT NULL DEFAULT '',
	callable_region_pct   DOUBLE PRECISION NOT NULL DEFAULT 0,
	mean_coverage         DOUBLE PRECISION NOT NULL DEFAULT 0,
	last_reconciled_at    TIMESTAMPTZ,
	UNIQUE (biosample_id)
);

CREATE TABLE IF NOT EXISTS y_profile_source (
	id               BIGSERIAL PRIMARY KEY,
	version          BIGINT NOT NULL DEFAULT 1,
	sync_state       TEXT NOT NULL DEFAULT '',
	at_uri           TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	profile_id       BIGINT NOT NULL REFERENCES y_profile(id) ON DELETE CASCADE,
	type             TEXT NOT NULL,
	vendor           TEXT NOT NULL DEFAULT '',
	test_name        TEXT NOT NULL DEFAULT '',
	reference_build  TEXT NOT NULL DEFAULT '',
	method_tier      INT NOT NULL,
	base_weight      DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS y_profile_variant (
	id                BIGSERIAL PRIMARY KEY,
	version           BIGINT NOT NULL DEFAULT 1,
	sync_state        TEXT NOT NULL DEFAULT '',
	at_uri            TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	profile_id        BIGINT NOT NULL REFERENCES y_profile(id) ON DELETE CASCADE,
	position          BIGINT NOT NULL,
	end_pos           BIGINT,
	ref_allele        TEXT NOT NULL,
	alt_allele        TEXT NOT NULL,
	type              TEXT NOT NULL,
	variant_name      TEXT,
	marker_name       TEXT,
	is_in_tree        BOOLEAN NOT NULL DEFAULT false,
	consensus_allele  TEXT NOT NULL DEFAULT '',
	consensus_state   TEXT NOT NULL DEFAULT 'NO_CALL',
	status            TEXT NOT NULL DEFAULT 'NO_COVERAGE',
	confidence_score  DOUBLE PRECISION NOT NULL DEFAULT 0,
	concordant_count  INT NOT NULL DEFAULT 0,
	discordant_count  INT NOT NULL DEFAULT 0,
	source_count      INT NOT NULL DEFAULT 0,
	UNIQUE (profile_id, position, ref_allele, alt_allele)
);
CREATE INDEX IF NOT EXISTS y_profile_variant_profile_position_idx
	ON y_profile_variant (profile_id, position);

CREATE TABLE IF NOT EXISTS y_variant_source_call (
	id                  BIGSERIAL PRIMARY KEY,
	version             BIGINT NOT NULL DEFAULT 1,
	sync_state          TEXT NOT NULL DEFAULT '',
	at_uri              TEXT NOT NULL DEFAULT '',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	variant_id          BIGINT NOT NULL REFERENCES y_profile_variant(id) ON DELETE CASCADE,
	source_id           BIGINT NOT NULL REFERENCES y_profile_source(id) ON DELETE CASCADE,
	called_allele       TEXT NOT NULL,
	call_state          TEXT NOT NULL,
	called_repeat_count INT,
	read_depth          INT,
	mapping_quality     INT,
	vaf                 DOUBLE PRECISION,
	callable_state      TEXT NOT NULL DEFAULT 'CALLABLE',
	concordance_weight  DOUBLE PRECISION NOT NULL DEFAULT 0,
	UNIQUE (variant_id, source_id)
);

CREATE TABLE IF NOT EXISTS y_source_call_alignment (
	id               BIGSERIAL PRIMARY KEY,
	version          BIGINT NOT NULL DEFAULT 1,
	sync_state       TEXT NOT NULL DEFAULT '',
	at_uri           TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	source_call_id   BIGINT NOT NULL REFERENCES y_variant_source_call(id) ON DELETE CASCADE,
	reference_build  TEXT NOT NULL,
	position         BIGINT NOT NULL,
	ref_allele       TEXT NOT NULL,
	alt_allele       TEXT NOT NULL,
	called_allele    TEXT NOT NULL,
	read_depth       INT,
	mapping_quality  INT,
	UNIQUE (source_call_id, reference_build)
);

CREATE TABLE IF NOT EXISTS y_profile_region (
	id                     BIGSERIAL PRIMARY KEY,
	version                BIGINT NOT NULL DEFAULT 1,
	sync_state             TEXT NOT NULL DEFAULT '',
	at_uri                 TEXT NOT NULL DEFAULT '',
	created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
	profile_id             BIGINT NOT NULL REFERENCES y_profile(id) ON DELETE CASCADE,
	source_id              BIGINT NOT NULL REFERENCES y_profile_source(id) ON DELETE CASCADE,
	contig                 TEXT NOT NULL,
	start                  BIGINT NOT NULL,
	"end"                  BIGINT NOT NULL,
	state                  TEXT NOT NULL,
	mean_coverage          DOUBLE PRECISION NOT NULL DEFAULT 0,
	mean_mapping_quality   DOUBLE PRECISION NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS y_profile_region_profile_contig_start_idx
	ON y_profile_region (profile_id, contig, start);

CREATE TABLE IF NOT EXISTS y_variant_audit (
	id                      BIGSERIAL PRIMARY KEY,
	version                 BIGINT NOT NULL DEFAULT 1,
	sync_state              TEXT NOT NULL DEFAULT '',
	at_uri                  TEXT NOT NULL DEFAULT '',
	created_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
	variant_id              BIGINT NOT NULL REFERENCES y_profile_variant(id) ON DELETE CASCADE,
	timestamp               TIMESTAMPTZ NOT NULL DEFAULT now(),
	action                  TEXT NOT NULL,
	prior_consensus_allele  TEXT NOT NULL DEFAULT '',
	prior_consensus_state   TEXT NOT NULL DEFAULT '',
	prior_status            TEXT NOT NULL DEFAULT '',
	new_consensus_allele    TEXT NOT NULL DEFAULT '',
	new_consensus_state     TEXT NOT NULL DEFAULT '',
	new_status              TEXT NOT NULL DEFAULT '',
	reason                  TEXT NOT NULL,
	user_id                 TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS y_variant_audit_variant_ts_idx
	ON y_variant_audit (variant_id, timestamp DESC);
`
