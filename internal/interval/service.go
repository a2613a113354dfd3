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

package interval

import (
	"context"
	"sync"
	"time"

	"github.com/JamesKane/decodingus-navigator-sub005/internal/hlc"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/metrics"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/model"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/notify"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/repo"
	"github.com/JamesKane/decodingus-navigator-sub005/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

// cacheEntry pairs a built Index with the hlc stamp of the profile
// version it was built from.
type cacheEntry struct {
	version hlc.Time
	index   *Index
}

// Service is the callable-region index over repo.Regions. It caches one merged Index per profile, invalidated whenever
// ImportCallableIntervals writes new regions for that profile.
type Service struct {
	regions repo.Regions
	tx      store.Transactor

	mu      sync.Mutex
	cache   map[int64]*notify.Var[cacheEntry]
	clock   hlc.Time
	clockMu sync.Mutex
}

// New constructs a Service over regions, scoped through tx.
func New(tx store.Transactor, regions repo.Regions) *Service {
	return &Service{
		regions: regions,
		tx:      tx,
		cache:   map[int64]*notify.Var[cacheEntry]{},
	}
}

func (s *Service) nextStamp() hlc.Time {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()
	s.clock = s.clock.Next(time.Now().UnixNano())
	return s.clock
}

func (s *Service) cacheVar(profileID int64) *notify.Var[cacheEntry] {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache[profileID]
	if !ok {
		v = notify.New(cacheEntry{})
		s.cache[profileID] = v
	}
	return v
}

// invalidate bumps the profile's version stamp past what's cached,
// forcing the next index() call to rebuild.
func (s *Service) invalidate(profileID int64) {
	v := s.cacheVar(profileID)
	entry, _ := v.Get()
	entry.version = s.nextStamp()
	entry.index = nil
	v.Set(entry)
}

// index returns the current merged Index for profileID, rebuilding it
// from repo.Regions if nothing is cached or the cache was invalidated
// since the last build.
func (s *Service) index(ctx context.Context, profileID int64) (*Index, error) {
	v := s.cacheVar(profileID)
	entry, _ := v.Get()
	if entry.index != nil {
		return entry.index, nil
	}

	regions, err := s.regions.FindByProfileID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	built := Build(regions)

	entry.index = built
	v.Set(entry)
	return built, nil
}

// IntervalInput is one callable interval to import.
type IntervalInput struct {
	Contig             string
	Start, End         int64
	State              model.CallableState
	MeanCoverage       float64
	MeanMappingQuality float64
}

// ImportCallableIntervals persists each interval as a YProfileRegion
// for sourceID and invalidates the profile's cached index.
func (s *Service) ImportCallableIntervals(ctx context.Context, profileID, sourceID int64, intervals []IntervalInput) (int, error) {
	inserted := 0
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		for _, in := range intervals {
			if in.End < in.Start {
				return store.ValidationFailure("YProfileRegion", "end", "must not precede start")
			}
			if _, err := s.regions.Insert(ctx, &model.YProfileRegion{
				ProfileID:          profileID,
				SourceID:           sourceID,
				Contig:             in.Contig,
				Start:              in.Start,
				End:                in.End,
				State:              in.State,
				MeanCoverage:       in.MeanCoverage,
				MeanMappingQuality: in.MeanMappingQuality,
			}); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	s.invalidate(profileID)
	return inserted, err
}

// QueryCallableState reports the merged callable state at one
// position. A profile's regions normally share the one Y contig, so
// this looks across every contig with data and returns the first hit,
// falling back to NO_COVERAGE.
func (s *Service) QueryCallableState(ctx context.Context, profileID int64, position int64) (model.CallableState, error) {
	timer := prometheus.NewTimer(metrics.CallableQueryDurations)
	defer timer.ObserveDuration()

	var state model.CallableState
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		idx, err := s.index(ctx, profileID)
		if err != nil {
			return err
		}
		state = model.NoCoverage
		for _, contig := range idx.Contigs() {
			if st := idx.Lookup(contig, position); st != model.NoCoverage {
				state = st
				return nil
			}
		}
		return nil
	})
	return state, err
}

// QueryCallableStates is the batch form of QueryCallableState.
func (s *Service) QueryCallableStates(ctx context.Context, profileID int64, positions []int64) ([]model.CallableState, error) {
	timer := prometheus.NewTimer(metrics.CallableQueryDurations)
	defer timer.ObserveDuration()

	var states []model.CallableState
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		idx, err := s.index(ctx, profileID)
		if err != nil {
			return err
		}
		states = make([]model.CallableState, len(positions))
		for i := range states {
			states[i] = model.NoCoverage
		}
		for _, contig := range idx.Contigs() {
			hits := idx.BatchLookup(contig, positions)
			for i, st := range hits {
				if st != model.NoCoverage {
					states[i] = st
				}
			}
		}
		return nil
	})
	return states, err
}

// ProfileStats reports the profile-level callable-region percentage
// (callableBases / referenceSize) and extent-weighted mean coverage.
// referenceSize defaults to the sum of every per-source interval's
// extent when the caller supplies none.
func (s *Service) ProfileStats(ctx context.Context, profileID int64, referenceSize *int64) (callableRegionPct, meanCoverage float64, err error) {
	err = s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		idx, ierr := s.index(ctx, profileID)
		if ierr != nil {
			return ierr
		}
		var callableBases int64
		for _, contig := range idx.Contigs() {
			for _, iv := range idx.byContig[contig] {
				if iv.State == model.Callable {
					callableBases += iv.End - iv.Start + 1
				}
			}
		}

		regions, rerr := s.regions.FindByProfileID(ctx, profileID)
		if rerr != nil {
			return rerr
		}
		var extentSum int64
		var coverageWeighted, coverageBases float64
		for _, r := range regions {
			bases := r.End - r.Start + 1
			extentSum += bases
			coverageWeighted += r.MeanCoverage * float64(bases)
			coverageBases += float64(bases)
		}

		size := extentSum
		if referenceSize != nil {
			size = *referenceSize
		}
		if size > 0 {
			callableRegionPct = float64(callableBases) / float64(size)
		}
		if coverageBases > 0 {
			meanCoverage = coverageWeighted / coverageBases
		}
		return nil
	})
	return callableRegionPct, meanCoverage, err
}

// Summary holds one source's own, unmerged region statistics.
type Summary struct {
	RegionCount   int
	CountByState  map[model.CallableState]int
	CallableBases int64
	TotalBases    int64
}

// GetCallableSummary reports region count, counts per state, total
// callable bases, and total bases covered by any interval for one
// source's own intervals. Merge only applies at the profile-level
// query surface.
func (s *Service) GetCallableSummary(ctx context.Context, sourceID int64) (*Summary, error) {
	timer := prometheus.NewTimer(metrics.CallableQueryDurations)
	defer timer.ObserveDuration()

	var out *Summary
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		regions, err := s.regions.FindBySourceID(ctx, sourceID)
		if err != nil {
			return err
		}
		summary := &Summary{CountByState: map[model.CallableState]int{}}
		for _, r := range regions {
			summary.RegionCount++
			bases := r.End - r.Start + 1
			summary.CountByState[r.State]++
			summary.TotalBases += bases
			if r.State == model.Callable {
				summary.CallableBases += bases
			}
		}
		out = summary
		return nil
	})
	return out, err
}
