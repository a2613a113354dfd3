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

package stopper

import (
	"context"
	"testing"
	"time"
)

func TestStopClosesStopping(t *testing.T) {
	c := New(context.Background())
	select {
	case <-c.Stopping():
		t.Fatal("Stopping closed before Stop")
	default:
	}
	c.Stop()
	select {
	case <-c.Stopping():
	case <-time.After(time.Second):
		t.Fatal("Stopping not closed after Stop")
	}
	// Stop is idempotent.
	c.Stop()
}

func TestParentCancellationStops(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	c := New(parent)
	cancel()
	select {
	case <-c.Stopping():
	case <-time.After(time.Second):
		t.Fatal("Stopping not closed after parent cancellation")
	}
}

func TestWaitCollectsGoroutineErrors(t *testing.T) {
	c := New(context.Background())
	c.Go(func() error { return nil })
	if err := c.Wait(); err != nil {
		t.Fatalf("Wait = %v, want nil", err)
	}

	c.Go(func() error { return context.Canceled })
	if err := c.Wait(); err == nil {
		t.Fatal("Wait = nil, want the goroutine's error")
	}
}
