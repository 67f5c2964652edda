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

package table

import (
	"log/slog"

	"github.com/google/ajaxtable/core/columns"
	"github.com/google/ajaxtable/core/format"
	"github.com/google/ajaxtable/core/pagination"
	"github.com/google/ajaxtable/core/query"
	"github.com/google/ajaxtable/core/source"
)

const (
	DefaultKey      = "data"
	DefaultMeta     = "meta"
	DefaultPageSize = 20
)

// Options configures one table instance.
type Options struct {
	Name  string
	Title string

	// Request holds the data source URL, authentication, headers and
	// timeout. An empty URL falls back to the data-url of the header markup.
	Request source.RequestConfig

	Key  string // dotted path of the record array, default "data"; falls back to data-key
	Meta string // dotted path of the metadata object, default "meta"

	// Initial state.
	Search string
	Filter string
	Sort   string // field, or -field for descending

	ShowFooter         bool
	ShowSettingsButton bool
	Pagination         bool
	PaginationInfo     bool
	PageSize           int // per_page sent upstream, default 20
	Window             int // sliding window size, default pagination.DefaultWindow

	// Planner replaces the sliding window when set.
	Planner pagination.Planner

	// Header is the <thead> markup describing the columns. Columns is used
	// when Header is empty.
	Header  string
	Columns []columns.Descriptor
}

func (o Options) withDefaults() Options {
	if o.Key == "" {
		o.Key = DefaultKey
	}
	if o.Meta == "" {
		o.Meta = DefaultMeta
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.Window <= 0 {
		o.Window = pagination.DefaultWindow
	}
	if o.Planner == nil {
		o.Planner = pagination.SlidingWindow{Window: o.Window}
	}
	if o.Title == "" {
		o.Title = o.Name
	}
	return o
}

// Option customizes a Controller.
type Option func(*Controller)

// WithColumnHooks sets the per-column extract and format overrides, keyed
// by column name.
func WithColumnHooks(hooks map[string]columns.Hooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithHTTPClient sets the client used to reach the data source.
func WithHTTPClient(d source.Doer) Option {
	return func(c *Controller) {
		c.doer = d
	}
}

// WithFormatter sets the locale bound value formatter.
func WithFormatter(f *format.Formatter) Option {
	return func(c *Controller) {
		c.formatter = f
	}
}

// WithState replaces the initial state derived from Options. Used by the
// server, which carries the state in the page URL.
func WithState(s *query.State) Option {
	return func(c *Controller) {
		c.initial = s
	}
}
