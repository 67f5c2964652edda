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

// Package table drives the load lifecycle of one remote JSON table: it builds
// the data request from the current state, fetches and decodes the response,
// and turns it into a view model.
package table

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/ajaxtable/core/columns"
	"github.com/google/ajaxtable/core/events"
	"github.com/google/ajaxtable/core/format"
	"github.com/google/ajaxtable/core/pagination"
	"github.com/google/ajaxtable/core/query"
	"github.com/google/ajaxtable/core/source"
	"github.com/google/ajaxtable/core/views"
	"github.com/google/ajaxtable/logger"
)

// ErrSuperseded is returned by Load when a newer load was started before
// this one completed. The result of the superseded load is discarded.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Status is the lifecycle state of a Controller.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusRendered
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusRendered:
		return "rendered"
	case StatusErrored:
		return "errored"
	default:
		return "idle"
	}
}

// Controller owns the column model and the interaction state of one table.
// It is safe for concurrent use; concurrent loads resolve to the most
// recently started one.
type Controller struct {
	opts      Options
	cols      *columns.Set
	hooks     map[string]columns.Hooks
	formatter *format.Formatter
	doer      source.Doer
	client    *source.Client
	bus       *events.Bus
	logger    *slog.Logger
	initial   *query.State

	mu     sync.Mutex
	state  *query.State
	status Status
	seq    uint64
	cancel context.CancelFunc
	last   *views.TableViewModel
}

// New creates a controller. Construction never fails: a header that cannot
// be parsed leaves the table without columns and a missing URL surfaces as a
// transport error on the first load.
func New(opts Options, options ...Option) *Controller {
	c := &Controller{bus: events.NewBus()}
	for _, o := range options {
		o(c)
	}
	if c.logger == nil {
		c.logger = logger.Default()
	}
	if c.formatter == nil {
		c.formatter = format.Default()
	}

	descs := opts.Columns
	if strings.TrimSpace(opts.Header) != "" {
		h, err := columns.ParseHeader(strings.NewReader(opts.Header))
		if err != nil {
			c.logger.Warn("failed to parse table header", "table", opts.Name, "error", err)
		} else {
			descs = h.Columns
			if opts.Request.URL == "" {
				opts.Request.URL = h.URL
			}
			if opts.Key == "" {
				opts.Key = h.Key
			}
		}
	}

	c.opts = opts.withDefaults()
	c.logger = c.logger.With("table", c.opts.Name)
	c.cols = columns.NewSet(descs, c.hooks)
	c.client = source.NewClient(c.opts.Request, c.doer)

	if c.initial != nil {
		c.state = c.initial.Clone()
	} else {
		c.state = query.NewState()
		c.state.Table = c.opts.Name
		c.state.SetSort(c.opts.Sort)
		c.state.Filter = c.opts.Filter
		c.state.Search = c.opts.Search
	}
	return c
}

// Options returns the effective options, with defaults applied.
func (c *Controller) Options() Options {
	return c.opts
}

// Columns returns the column model.
func (c *Controller) Columns() *columns.Set {
	return c.cols
}

// On registers a listener for the named notification.
func (c *Controller) On(name events.Name, l events.Listener) {
	c.bus.On(name, l)
}

// Status returns the current lifecycle state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// State returns a copy of the interaction state.
func (c *Controller) State() *query.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Last returns the view model of the latest completed load, or nil.
func (c *Controller) Last() *views.TableViewModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Sort applies a click on the header of field. Clicking the current sort
// field flips the direction, another sortable field sorts ascending. It
// reports false, changing nothing, for fields that are not sortable.
func (c *Controller) Sort(field string) bool {
	if !c.cols.Sortable(field) {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ToggleSort(field)
	return true
}

// GoToPage moves to page n, clamped to at least 1.
func (c *Controller) GoToPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SetPage(n)
}

// Search sets the search text and goes back to the first page.
func (c *Controller) Search(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SetSearch(q)
}

// Filter sets the filter and goes back to the first page.
func (c *Controller) Filter(f string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SetFilter(f)
}

// ToggleColumn flips the visibility of column.
func (c *Controller) ToggleColumn(column string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ToggleColumn(column)
}

// RequestURL returns the data source URL for the current state.
func (c *Controller) RequestURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requestURL(c.state)
}

func (c *Controller) requestURL(state *query.State) string {
	return query.RequestURL(c.opts.Request.URL, state.RequestParams(c.opts.PageSize, c.opts.Pagination))
}

// Load fetches the data for the current state and returns the view model.
// On a failed fetch or a malformed response the returned model holds a
// single error row and the error is returned as well; the controller stays
// usable. A load that is overtaken by a newer one returns ErrSuperseded.
func (c *Controller) Load(ctx context.Context) (*views.TableViewModel, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	c.cancel = cancel
	c.status = StatusLoading
	state := c.state.Clone()
	c.mu.Unlock()

	c.bus.Emit(events.Event{Name: events.Loading, Table: c.opts.Name})

	reqURL := c.requestURL(state)
	c.logger.Debug("loading table data", "url", reqURL)

	resp, err := c.fetch(ctx, reqURL)
	if c.superseded(seq) {
		return nil, ErrSuperseded
	}
	if err != nil {
		vm := c.errorViewModel(state, err)
		if !c.commit(seq, StatusErrored, vm) {
			return nil, ErrSuperseded
		}
		c.logger.Warn("failed to load table data", "url", reqURL, "error", err)
		c.bus.Emit(events.Event{Name: events.Error, Table: c.opts.Name, Err: err, Detail: vm.Error.Detail})
		return vm, fmt.Errorf("failed to load table %q: %w", c.opts.Name, err)
	}

	c.bus.Emit(events.Event{Name: events.Loaded, Table: c.opts.Name})
	if !resp.DataFound {
		c.logger.Warn("data path not found in response, rendering no rows", "key", c.opts.Key)
	}

	vm := c.render(state, resp)
	if !c.commit(seq, StatusRendered, vm) {
		return nil, ErrSuperseded
	}
	c.bus.Emit(events.Event{Name: events.Finished, Table: c.opts.Name})
	return vm, nil
}

func (c *Controller) fetch(ctx context.Context, reqURL string) (*source.Response, error) {
	body, err := c.client.Fetch(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	return source.Decode(body, c.opts.Key, c.opts.Meta)
}

func (c *Controller) superseded(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return seq != c.seq
}

func (c *Controller) commit(seq uint64, status Status, vm *views.TableViewModel) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return false
	}
	c.status = status
	c.last = vm
	c.cancel = nil
	return true
}

func (c *Controller) baseViewModel(state *query.State) *views.TableViewModel {
	return &views.TableViewModel{
		Title:        c.opts.Title,
		Table:        c.opts.Name,
		CurrentURL:   state.ToSafeURL(),
		Headers:      views.BuildHeaders(c.cols, state),
		ColumnCount:  c.cols.Len(),
		ShowSettings: c.opts.ShowSettingsButton,
		Settings:     views.BuildSettings(c.cols, state),
	}
}

func (c *Controller) render(state *query.State, resp *source.Response) *views.TableViewModel {
	vm := c.baseViewModel(state)

	var meta *pagination.Meta
	if c.opts.Pagination {
		meta = resp.Pagination
	}

	r := views.NewRowRenderer(c.opts.Name, c.cols, c.formatter, state, meta, c.bus)
	vm.Rows = make([]views.Row, 0, len(resp.Records))
	for i, rec := range resp.Records {
		vm.Rows = append(vm.Rows, r.RenderRow(i+1, rec))
	}

	if c.opts.ShowFooter {
		footer := r.RenderFooter()
		vm.Footer = &footer
	}

	if meta != nil {
		vm.Pagination = views.BuildPageLinks(c.opts.Planner.Plan(*meta), state)
		if c.opts.PaginationInfo {
			vm.PaginationInfo = pagination.Info(*meta)
		}
	}
	return vm
}

func (c *Controller) errorViewModel(state *query.State, err error) *views.TableViewModel {
	vm := c.baseViewModel(state)
	vm.Error = &views.ErrorRow{Message: "Failed to load data", Detail: errorDetail(err)}
	return vm
}

func errorDetail(err error) string {
	var te *source.TransportError
	if errors.As(err, &te) {
		return te.Detail()
	}
	return err.Error()
}
