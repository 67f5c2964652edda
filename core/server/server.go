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

// Package server serves configured tables as HTML pages.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/ajaxtable/core/columns"
	"github.com/google/ajaxtable/core/config"
	"github.com/google/ajaxtable/core/format"
	"github.com/google/ajaxtable/core/query"
	"github.com/google/ajaxtable/core/rendering"
	"github.com/google/ajaxtable/core/source"
	"github.com/google/ajaxtable/core/table"
	"github.com/google/ajaxtable/core/views"
)

const (
	TablePath   = "/table"
	HealthPath  = "/healthz"
	LandingPath = "/"
)

// Server represents the application server with all its dependencies
type Server struct {
	cfg       *config.Config
	renderer  *rendering.TableRenderer
	formatter *format.Formatter
	logger    *slog.Logger
	doer      source.Doer
	hooks     map[string]map[string]columns.Hooks // table -> column -> hooks
	mux       *http.ServeMux
}

// NewServer creates a new server for the tables of cfg.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	renderer, err := rendering.NewTableRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		renderer:  renderer,
		formatter: cfg.Formatter(),
		logger:    logger.With("component", "server"),
		hooks:     make(map[string]map[string]columns.Hooks),
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc(TablePath, s.handleTable)
	s.mux.HandleFunc(HealthPath, s.handleHealth)
	s.mux.HandleFunc(LandingPath, s.handleLanding)
	return s, nil
}

// SetHTTPClient sets the client used to reach the data sources.
func (s *Server) SetHTTPClient(d source.Doer) {
	s.doer = d
}

// SetColumnHooks sets the column hooks of the table called name.
func (s *Server) SetColumnHooks(name string, hooks map[string]columns.Hooks) {
	s.hooks[name] = hooks
}

// Handle registers an extra handler, e.g. the demo API.
func (s *Server) Handle(pattern string, h http.Handler) {
	s.mux.Handle(pattern, h)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// TimingCollector collects timing measurements for various operations
type TimingCollector struct {
	start time.Time
	attrs []any
}

// NewTimingCollector creates a new timing collector
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{start: time.Now()}
}

// Record records the duration of operation.
func (tc *TimingCollector) Record(operation string, duration time.Duration) {
	tc.attrs = append(tc.attrs, operation, duration.Round(time.Microsecond))
}

// LogAttrs returns the recorded durations plus the total, as slog key/value
// pairs.
func (tc *TimingCollector) LogAttrs() []any {
	return append(tc.attrs, "total", time.Since(tc.start).Round(time.Microsecond))
}

// TableHandlerResult represents the result of handling a table request
type TableHandlerResult struct {
	Error      error
	StatusCode int
	Message    string
}

// NewController creates the controller of the configured table called name,
// with state as its initial state. Options not carried by the URL (sort,
// filter and search) fall back to the configured ones.
func (s *Server) NewController(name string, params url.Values, state *query.State) (*table.Controller, error) {
	tc, err := s.cfg.Table(name)
	if err != nil {
		return nil, err
	}
	opts := tc.Options()

	if !params.Has("sort") {
		state.SortField, state.SortDir = query.ParseSort(opts.Sort)
	}
	if !params.Has("filter") {
		state.Filter = opts.Filter
	}
	if !params.Has("q") {
		state.Search = opts.Search
	}

	options := []table.Option{
		table.WithState(state),
		table.WithFormatter(s.formatter),
		table.WithLogger(s.logger),
		table.WithColumnHooks(s.hooks[name]),
	}
	if s.doer != nil {
		options = append(options, table.WithHTTPClient(s.doer))
	}
	return table.New(opts, options...), nil
}

// HandleTableRequest loads the table named in requestURL and writes the
// rendered page. A failed load still renders the page, with an error row.
// Returns an error result if the request is invalid, nil on success
func (s *Server) HandleTableRequest(ctx context.Context, w io.Writer, requestURL *url.URL, setHeader func(key, value string)) *TableHandlerResult {
	timing := NewTimingCollector()

	state := query.FromURL(requestURL)
	if state.Table == "" {
		return &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: "Table parameter is required"}
	}

	c, err := s.NewController(state.Table, requestURL.Query(), state)
	if errors.Is(err, config.ErrUnknownTable) {
		return &TableHandlerResult{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("Table '%s' not found", state.Table), Error: err}
	}
	if err != nil {
		return &TableHandlerResult{StatusCode: http.StatusInternalServerError, Message: "Failed to create table", Error: err}
	}

	loadStart := time.Now()
	vm, err := c.Load(ctx)
	timing.Record("load", time.Since(loadStart))
	if vm == nil {
		return &TableHandlerResult{StatusCode: http.StatusServiceUnavailable, Message: "Table load was interrupted", Error: err}
	}

	renderStart := time.Now()
	setHeader("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, vm); err != nil {
		// The page may be partially written; only log.
		s.logger.Error("template rendering error", "table", state.Table, "error", err)
		return nil
	}
	timing.Record("render", time.Since(renderStart))

	s.logger.Debug("table request served", append([]any{"table", state.Table, "failed", err != nil}, timing.LogAttrs()...)...)
	return nil
}

// HandleLandingRequest writes the page listing the configured tables.
func (s *Server) HandleLandingRequest(w io.Writer, setHeader func(key, value string)) error {
	infos := make([]views.TableInfo, 0, len(s.cfg.Tables))
	for _, t := range s.cfg.Tables {
		infos = append(infos, views.TableInfo{Name: t.Name, Title: t.Title})
	}
	vm := views.BuildLandingViewModel("Tables", TablePath, infos)

	setHeader("Content-Type", "text/html; charset=utf-8")
	return s.renderer.RenderLanding(w, vm)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	result := s.HandleTableRequest(r.Context(), w, r.URL, w.Header().Set)
	if result == nil {
		return
	}
	if result.Error != nil {
		s.logger.Warn("table request failed", "url", r.URL.String(), "status", result.StatusCode, "error", result.Error)
	}
	http.Error(w, result.Message, result.StatusCode)
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != LandingPath {
		http.NotFound(w, r)
		return
	}
	if err := s.HandleLandingRequest(w, w.Header().Set); err != nil {
		s.logger.Error("template rendering error", "page", "landing", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}
