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

//go:build wireinject

// Package wiring assembles the engine's concrete collaborators
// (pool, repositories, services) behind a single entry point: a
// wire.NewSet of small Provide functions feeding one injector, with
// the generated call graph checked in as wire_gen.go.
package wiring

import (
	"github.com/JamesKane/decodingus-navigator-sub005/internal/config"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/stopper"
	"github.com/google/wire"
)

// Set is used by Wire.
var Set = wire.NewSet(
	ProvidePool,
	ProvideTransactor,
	ProvideRepositories,
	ProvideIntervalService,
	ProvideReconcileService,
	ProvideQueryService,
	wire.Struct(new(Engine), "*"),
)

// NewEngine constructs the fully wired Engine from a stopper.Context
// and Config.
func NewEngine(ctx *stopper.Context, cfg *config.Config) (*Engine, error) {
	wire.Build(Set)
	return nil, nil
}
