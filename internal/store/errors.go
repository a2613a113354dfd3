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

// Package store implements the persistence core: a Transactor
// offering scoped read-only/read-write transaction acquisition, the
// engine's typed failure kinds, and the Querier abstraction
// repositories are written against.
package store

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind discriminates the engine's typed failures.
type Kind int

// The failure kinds.
const (
	KindUnknown Kind = iota
	KindNotFound
	KindDuplicateKey
	KindVersionConflict
	KindInvariantViolation
	KindValidationFailure
	KindDatabaseError
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindDuplicateKey:
		return "DuplicateKey"
	case KindVersionConflict:
		return "VersionConflict"
	case KindInvariantViolation:
		return "InvariantViolation"
	case KindValidationFailure:
		return "ValidationFailure"
	case KindDatabaseError:
		return "DatabaseError"
	default:
		return "Unknown"
	}
}

// Error is the typed failure returned by every public operation that
// can fail. Messages identify the failing entity by biosample
// accession or variant coordinate where the caller can supply one,
// never by internal row id alone.
type Error struct {
	Kind    Kind
	Entity  string
	Field   string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s): %s", e.Kind, e.Entity, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Message)
}

// Unwrap exposes the underlying cause, if any, so errors.Is/As compose
// with github.com/pkg/errors-wrapped driver errors.
func (e *Error) Unwrap() error { return e.cause }

// NotFound builds a KindNotFound error.
func NotFound(entity, message string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Message: message}
}

// DuplicateKey builds a KindDuplicateKey error.
func DuplicateKey(entity, message string) *Error {
	return &Error{Kind: KindDuplicateKey, Entity: entity, Message: message}
}

// VersionConflict builds a KindVersionConflict error.
func VersionConflict(entity string) *Error {
	return &Error{Kind: KindVersionConflict, Entity: entity, Message: "stored version does not match"}
}

// InvariantViolation builds a KindInvariantViolation error naming the
// violated invariant.
func InvariantViolation(entity, invariant string) *Error {
	return &Error{Kind: KindInvariantViolation, Entity: entity, Message: invariant}
}

// ValidationFailure builds a KindValidationFailure error for a single
// field.
func ValidationFailure(entity, field, reason string) *Error {
	return &Error{Kind: KindValidationFailure, Entity: entity, Field: field, Message: reason}
}

// DatabaseError wraps an underlying driver error with a stack trace
// via github.com/pkg/errors.
func DatabaseError(entity string, cause error) *Error {
	return &Error{Kind: KindDatabaseError, Entity: entity, Message: cause.Error(), cause: errors.WithStack(cause)}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
