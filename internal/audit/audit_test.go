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

package audit

import (
	"context"
	"testing"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store/memstore"
)

func TestRecordRejectsEmptyReason(t *testing.T) {
	s := memstore.New()
	_, err := Record(context.Background(), s.Audits(), 1, model.AuditOverride, Triple{}, Triple{}, "", "")
	if err == nil {
		t.Fatal("expected an error for an empty reason")
	}
}

func TestRecordAndHistory(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	audits := s.Audits()

	prior := Triple{Allele: "A", State: model.CallDerived, Status: model.StatusConfirmed}
	next := Triple{Allele: "G", State: model.CallAncestral, Status: model.StatusConfirmed}

	row, err := Record(ctx, audits, 42, model.AuditOverride, prior, next, "IGV inspection", "curator@x")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if row.Timestamp.IsZero() {
		t.Error("Timestamp was not stamped")
	}
	if row.NewConsensusAllele != "G" || row.PriorConsensusAllele != "A" {
		t.Errorf("audit row = %+v, want prior A -> new G", row)
	}

	history, err := History(ctx, audits, 42)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("len(history) = %d, want 1", len(history))
	}
}

func TestTripleOf(t *testing.T) {
	v := &model.YProfileVariant{ConsensusAllele: "A", ConsensusState: model.CallDerived, Status: model.StatusNovel}
	got := TripleOf(v)
	want := Triple{Allele: "A", State: model.CallDerived, Status: model.StatusNovel}
	if got != want {
		t.Fatalf("TripleOf = %+v, want %+v", got, want)
	}
}
