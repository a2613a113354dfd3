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

// Package metrics defines the engine's Prometheus instrumentation:
// package-level promauto vectors, one histogram/counter pair per
// operation family.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LatencyBuckets is the shared histogram bucket set for operation
// durations across the engine.
var LatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// OperationLabels names the label the engine's per-operation vectors
// share: which public operation (reconcileVariant, overrideVariant,
// importVariantCalls, queryCallableState, ...) was invoked.
var OperationLabels = []string{"operation"}

var (
	OperationDurations = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "profile_engine_operation_duration_seconds",
		Help:    "the length of time a public engine operation took to complete",
		Buckets: LatencyBuckets,
	}, OperationLabels)

	OperationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "profile_engine_operation_errors_total",
		Help: "the number of times a public engine operation returned an error, by failure kind",
	}, []string{"operation", "kind"})

	VariantsReconciled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "profile_engine_variants_reconciled_total",
		Help: "the number of variants whose consensus was recomputed",
	}, []string{"result"})

	SourceCallsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "profile_engine_source_calls_imported_total",
		Help: "the number of source calls imported via importVariantCalls",
	})

	CallableQueryDurations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "profile_engine_callable_query_duration_seconds",
		Help:    "the length of time a callable-state query took, point or batch",
		Buckets: LatencyBuckets,
	})
)
