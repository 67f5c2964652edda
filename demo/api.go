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

// Package demo serves sample datasets through a paginated, sortable JSON API
// so that ajaxtable can be tried without a real backend.
package demo

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/google/ajaxtable/core/pagination"
	"github.com/google/ajaxtable/core/query"
	"github.com/google/ajaxtable/core/records"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 500
)

// Response is the body returned by the API.
type Response struct {
	Data []Record     `json:"data"`
	Meta ResponseMeta `json:"meta"`
}

// ResponseMeta carries the pagination metadata.
type ResponseMeta struct {
	Pagination pagination.Meta `json:"pagination"`
}

// API serves datasets under <prefix><name>.
type API struct {
	prefix   string
	datasets map[string][]Record
	logger   *slog.Logger
}

// NewAPI creates an API serving datasets under prefix, e.g. "/api/".
func NewAPI(prefix string, datasets map[string][]Record, logger *slog.Logger) *API {
	return &API{prefix: prefix, datasets: datasets, logger: logger}
}

// Names returns the served dataset names, sorted.
func (a *API) Names() []string {
	names := make([]string, 0, len(a.datasets))
	for name := range a.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ServeHTTP handles GET <prefix><dataset>?sort=&filter=&q=&per_page=&page=.
// filter has the form field:value and matches exactly; q matches any string
// field case-insensitively.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, a.prefix)
	data, ok := a.datasets[name]
	if !ok {
		http.Error(w, fmt.Sprintf("dataset '%s' not found", name), http.StatusNotFound)
		return
	}

	params := r.URL.Query()
	perPage, err := intParam(params.Get("per_page"), DefaultPerPage)
	if err != nil || perPage < 1 || perPage > MaxPerPage {
		http.Error(w, "invalid per_page", http.StatusBadRequest)
		return
	}
	page, err := intParam(params.Get("page"), 1)
	if err != nil || page < 1 {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}

	rows := Query(data, params.Get("filter"), params.Get("q"), params.Get("sort"))
	resp := Paginate(rows, page, perPage)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		a.logger.Warn("failed to write demo response", "dataset", name, "error", err)
	}
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// Query filters, searches and sorts rows. The input is not modified.
func Query(rows []Record, filter, search, sortParam string) []Record {
	field, value, hasFilter := strings.Cut(filter, ":")
	search = strings.ToLower(search)

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		if hasFilter && records.Stringify(row[field]) != value {
			continue
		}
		if search != "" && !matches(row, search) {
			continue
		}
		out = append(out, row)
	}

	sortField, dir := query.ParseSort(sortParam)
	if sortField != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c := Compare(out[i][sortField], out[j][sortField])
			if dir == query.SortDesc {
				return c > 0
			}
			return c < 0
		})
	}
	return out
}

func matches(row Record, search string) bool {
	for _, v := range row {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), search) {
			return true
		}
	}
	return false
}

// Paginate cuts one page out of rows. Pages past the end are empty.
func Paginate(rows []Record, page, perPage int) Response {
	total := len(rows)
	totalPages := max((total+perPage-1)/perPage, 1)

	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)
	data := rows[start:end]

	return Response{
		Data: data,
		Meta: ResponseMeta{Pagination: pagination.Meta{
			CurrentPage: page,
			TotalPages:  totalPages,
			PerPage:     perPage,
			Count:       len(data),
			Total:       total,
		}},
	}
}
