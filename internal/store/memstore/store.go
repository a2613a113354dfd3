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

// Package memstore is an in-memory implementation of the package repo
// contracts, used by tests in place of a live Postgres instance. It
// enforces the same optimistic version-check, unique-key, and
// cascading-delete semantics as store/postgres so reconcile and query
// package tests exercise real failure behavior.
package memstore

import (
	"sync"
	"time"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
)

// Store is the shared backing state for all repositories returned by
// New. The repositories take no lock of their own; concurrent callers
// serialize access through a Transactor (see transactor.go), which
// holds the store's mutex for the duration of each scope.
type Store struct {
	mu sync.RWMutex

	nextID int64

	profiles           map[int64]*model.YProfile
	profileByBiosample map[int64]int64

	sources map[int64]*model.YProfileSource

	variants     map[int64]*model.YProfileVariant
	variantIndex map[variantKey]int64

	sourceCalls     map[int64]*model.YVariantSourceCall
	sourceCallIndex map[[2]int64]int64

	alignments     map[int64]*model.YSourceCallAlignment
	alignmentIndex map[alignmentKey]int64

	regions map[int64]*model.YProfileRegion

	audits map[int64]*model.YVariantAudit
}

type variantKey struct {
	profileID int64
	position  int64
	ref, alt  string
}

type alignmentKey struct {
	sourceCallID int64
	build        string
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		profiles:           make(map[int64]*model.YProfile),
		profileByBiosample: make(map[int64]int64),
		sources:            make(map[int64]*model.YProfileSource),
		variants:           make(map[int64]*model.YProfileVariant),
		variantIndex:       make(map[variantKey]int64),
		sourceCalls:        make(map[int64]*model.YVariantSourceCall),
		sourceCallIndex:    make(map[[2]int64]int64),
		alignments:         make(map[int64]*model.YSourceCallAlignment),
		alignmentIndex:     make(map[alignmentKey]int64),
		regions:            make(map[int64]*model.YProfileRegion),
		audits:             make(map[int64]*model.YVariantAudit),
	}
}

func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

func stampInsert(meta *model.RecordMeta, id int64) {
	meta.ID = id
	meta.Version = 1
	now := time.Now()
	meta.CreatedAt = now
	meta.UpdatedAt = now
}

func stampUpdate(meta *model.RecordMeta) {
	meta.Version++
	meta.UpdatedAt = time.Now()
}
