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

package dbpool

import (
	"context"
	"testing"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/config"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/stopper"
)

func TestOpenRejectsUnparseableConnectString(t *testing.T) {
	ctx := stopper.New(context.Background())
	cfg := &config.Config{ConnectString: "://not-a-valid-dsn", PoolMaxConns: 4}

	_, err := Open(ctx, cfg, Options{})
	if err == nil {
		t.Fatal("expected an error for an unparseable connect string")
	}
}
