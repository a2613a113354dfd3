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

package memstore

import (
	"context"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/store"
)

type scopeKey struct{}

// Transactor implements store.Transactor over an in-memory Store. A
// single store-wide RWMutex stands in for Postgres's row-level locks:
// ReadWrite takes the write lock for the duration of block, ReadOnly
// takes the read lock. Nested calls reuse the outer scope rather than
// re-locking, mirroring PostgresTransactor's reentrancy.
type Transactor struct {
	store *Store
}

// NewTransactor wraps a Store in a Transactor.
func NewTransactor(s *Store) *Transactor {
	return &Transactor{store: s}
}

var _ store.Transactor = (*Transactor)(nil)

// ReadWrite implements store.Transactor.
func (t *Transactor) ReadWrite(ctx context.Context, block func(ctx context.Context) error) error {
	if scoped(ctx) {
		return block(ctx)
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return block(context.WithValue(ctx, scopeKey{}, true))
}

// ReadOnly implements store.Transactor.
func (t *Transactor) ReadOnly(ctx context.Context, block func(ctx context.Context) error) error {
	if scoped(ctx) {
		return block(ctx)
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return block(context.WithValue(ctx, scopeKey{}, true))
}

func scoped(ctx context.Context) bool {
	v, _ := ctx.Value(scopeKey{}).(bool)
	return v
}
