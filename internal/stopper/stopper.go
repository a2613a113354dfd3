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

// Package stopper provides scoped goroutine lifecycle management: a
// Context wraps a context.Context with the ability to spawn
// supervised goroutines and to learn, distinctly, when a graceful stop
// has been requested versus when the context has been fully torn
// down.
package stopper

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// A Context supervises goroutines spawned with Go. Stopping() closes
// when a graceful shutdown is requested; Done() is the parent
// context's and closes when the parent is cancelled; Wait blocks until
// every spawned goroutine has returned.
type Context struct {
	context.Context

	mu       sync.Mutex
	wg       sync.WaitGroup
	stopping chan struct{}
	stopOnce sync.Once
	errs     []error
}

// New wraps a context.Context in a stopper.Context.
func New(parent context.Context) *Context {
	c := &Context{Context: parent, stopping: make(chan struct{})}
	go func() {
		<-c.Context.Done()
		c.Stop()
	}()
	return c
}

// Go runs fn in a supervised goroutine. Any error it returns is
// recorded and retrievable via Wait.
func (c *Context) Go(fn func() error) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := fn(); err != nil {
			c.mu.Lock()
			c.errs = append(c.errs, err)
			c.mu.Unlock()
		}
	}()
}

// Stop requests a graceful shutdown; it is safe to call more than
// once.
func (c *Context) Stop() {
	c.stopOnce.Do(func() { close(c.stopping) })
}

// Stopping returns a channel that closes once Stop has been called or
// the parent context is done.
func (c *Context) Stopping() <-chan struct{} {
	return c.stopping
}

// Wait blocks until every goroutine spawned with Go has returned and
// reports the combined error, if any.
func (c *Context) Wait() error {
	c.wg.Wait()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.errs) == 0 {
		return nil
	}
	combined := c.errs[0]
	for _, e := range c.errs[1:] {
		combined = errors.Wrap(combined, e.Error())
	}
	return combined
}
