/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Ajaxtable Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package events is a small register-by-name, emit-by-name notification bus
// used by table controllers to expose their lifecycle to hosts.
package events

import (
	"sync"

	"github.com/google/ajaxtable/core/records"
)

// Name identifies a notification.
type Name string

const (
	Loading   Name = "loading"
	Loaded    Name = "loaded"
	BeforeRow Name = "before_row"
	AfterRow  Name = "after_row"
	Finished  Name = "finished"
	Error     Name = "error"
)

// Event is the payload passed to listeners. Record is set for row events,
// Err and Detail for error events.
type Event struct {
	Name   Name
	Table  string
	Record *records.Record
	Err    error
	Detail string
}

// Listener receives emitted events. Listeners run synchronously on the
// emitting goroutine.
type Listener func(Event)

// Bus dispatches events to the listeners registered for their name.
type Bus struct {
	mu        sync.RWMutex
	listeners map[Name][]Listener
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[Name][]Listener)}
}

// On registers l for events called name.
func (b *Bus) On(name Name, l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[name] = append(b.listeners[name], l)
}

// Emit calls every listener registered for e.Name, in registration order.
func (b *Bus) Emit(e Event) {
	b.mu.RLock()
	ls := b.listeners[e.Name]
	b.mu.RUnlock()

	for _, l := range ls {
		l(e)
	}
}

// Len returns the number of listeners registered for name.
func (b *Bus) Len(name Name) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name])
}
