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

package store

import (
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestIsMatchesKindThroughWrapping(t *testing.T) {
	err := VersionConflict("YProfile")
	wrapped := errors.Wrap(err, "while reconciling")
	if !Is(wrapped, KindVersionConflict) {
		t.Fatal("Is should match a wrapped *Error")
	}
	if Is(wrapped, KindNotFound) {
		t.Fatal("Is matched the wrong kind")
	}
	if Is(io.EOF, KindDatabaseError) {
		t.Fatal("Is matched a foreign error")
	}
}

func TestValidationFailureNamesField(t *testing.T) {
	err := ValidationFailure("YVariantAudit", "reason", "must not be empty")
	msg := err.Error()
	for _, want := range []string{"ValidationFailure", "YVariantAudit", "reason"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestDatabaseErrorUnwrapsToCause(t *testing.T) {
	err := DatabaseError("YProfile", io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatal("DatabaseError should unwrap to its cause")
	}
}

func TestKindStrings(t *testing.T) {
	cases := map[Kind]string{
		KindNotFound:           "NotFound",
		KindDuplicateKey:       "DuplicateKey",
		KindVersionConflict:    "VersionConflict",
		KindInvariantViolation: "InvariantViolation",
		KindValidationFailure:  "ValidationFailure",
		KindDatabaseError:      "DatabaseError",
		KindUnknown:            "Unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}
