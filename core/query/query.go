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

package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/safehtml"
)

// SortDir is the direction of the active sort.
type SortDir int

const (
	SortNone SortDir = iota
	SortAsc
	SortDesc
)

// String returns "asc", "desc" or the empty string.
func (d SortDir) String() string {
	switch d {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return ""
	}
}

// ParseSort splits a sort parameter into field and direction. A leading '-'
// means descending.
func ParseSort(s string) (string, SortDir) {
	if s == "" || s == "-" {
		return "", SortNone
	}
	if strings.HasPrefix(s, "-") {
		return s[1:], SortDesc
	}
	return s, SortAsc
}

// Param is one query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. Unlike url.Values it keeps
// insertion order when encoded.
type Params []Param

// Add appends a parameter.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// AddNonEmpty appends a parameter unless value is empty.
func (p Params) AddNonEmpty(key, value string) Params {
	if value == "" {
		return p
	}
	return p.Add(key, value)
}

// Get returns the first value for key.
func (p Params) Get(key string) string {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value
		}
	}
	return ""
}

// Encode returns the parameters in "k=v&k=v" form, in order.
func (p Params) Encode() string {
	var sb strings.Builder
	for i, kv := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(kv.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(kv.Value))
	}
	return sb.String()
}

// State is the interaction state of one table: sort, filter, search, page
// and the columns whose visibility the user has flipped. Everything except
// Toggled is forwarded to the data source.
type State struct {
	// Base path of the page that renders the table (e.g., "/table")
	Path string

	Table     string   // Name of the configured table
	SortField string   // Field sorted on, empty for none
	SortDir   SortDir  // Direction of SortField
	Filter    string   // Opaque filter passed to the data source
	Search    string   // Search text passed to the data source as "q"
	Page      int      // Current page, 1-based

	// Toggled lists the columns whose initial visibility is flipped: a
	// visible column listed here is hidden and an initially invisible one is
	// shown. Carried in the "hidden" URL parameter.
	Toggled []string
}

// NewState returns the default state: page 1, no sort, nothing hidden.
func NewState() *State {
	return &State{Page: 1, Toggled: []string{}}
}

// FromURL parses a table page URL into a State.
func FromURL(u *url.URL) *State {
	s := NewState()
	s.Path = u.Path

	q := u.Query()
	s.Table = q.Get("table")
	s.SortField, s.SortDir = ParseSort(q.Get("sort"))
	s.Filter = q.Get("filter")
	s.Search = q.Get("q")

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		s.Page = page
	}

	if hidden := q.Get("hidden"); hidden != "" {
		s.Toggled = strings.Split(hidden, ",")
	}
	return s
}

// Clone creates a deep copy of the State.
func (s *State) Clone() *State {
	clone := *s
	clone.Toggled = make([]string, len(s.Toggled))
	copy(clone.Toggled, s.Toggled)
	return &clone
}

// SortParam returns the sort in its wire form ("name" or "-name").
func (s *State) SortParam() string {
	switch {
	case s.SortField == "":
		return ""
	case s.SortDir == SortDesc:
		return "-" + s.SortField
	default:
		return s.SortField
	}
}

// SetSort sets the sort from its wire form and goes back to the first page.
func (s *State) SetSort(param string) {
	s.SortField, s.SortDir = ParseSort(param)
	s.Page = 1
}

// ToggleSort applies a click on a column header: the current sort field
// flips direction, any other field becomes the ascending sort. The page goes
// back to 1.
func (s *State) ToggleSort(field string) {
	if field == "" {
		return
	}
	if s.SortField == field && s.SortDir == SortAsc {
		s.SortDir = SortDesc
	} else {
		s.SortField = field
		s.SortDir = SortAsc
	}
	s.Page = 1
}

// SetPage moves to page n, clamped to at least 1.
func (s *State) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.Page = n
}

// SetSearch sets the search text and goes back to the first page.
func (s *State) SetSearch(q string) {
	s.Search = q
	s.Page = 1
}

// SetFilter sets the filter and goes back to the first page.
func (s *State) SetFilter(f string) {
	s.Filter = f
	s.Page = 1
}

// IsToggled reports whether the user has flipped the visibility of column.
func (s *State) IsToggled(column string) bool {
	for _, col := range s.Toggled {
		if col == column {
			return true
		}
	}
	return false
}

// ToggleColumn flips the visibility of column.
func (s *State) ToggleColumn(column string) {
	kept := make([]string, 0, len(s.Toggled))
	found := false
	for _, col := range s.Toggled {
		if col == column {
			found = true
		} else {
			kept = append(kept, col)
		}
	}
	if !found {
		kept = append(kept, column)
	}
	s.Toggled = kept
}

// RequestParams returns the parameters sent to the data source, in order:
// sort, filter, q, per_page, page. Empty optional values are omitted and
// paging parameters are only sent when paginate is set.
func (s *State) RequestParams(perPage int, paginate bool) Params {
	var p Params
	p = p.AddNonEmpty("sort", s.SortParam())
	p = p.AddNonEmpty("filter", s.Filter)
	p = p.AddNonEmpty("q", s.Search)
	if paginate {
		p = p.Add("per_page", strconv.Itoa(perPage))
		p = p.Add("page", strconv.Itoa(max(s.Page, 1)))
	}
	return p
}

// RequestURL appends params to base, keeping any query already on base.
func RequestURL(base string, params Params) string {
	if len(params) == 0 {
		return base
	}
	enc := params.Encode()
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + enc
	}
	if u.RawQuery != "" {
		u.RawQuery += "&" + enc
	} else {
		u.RawQuery = enc
	}
	return u.String()
}

// Params returns the parameters of the table page URL for this state.
func (s *State) Params() Params {
	var p Params
	p = p.AddNonEmpty("table", s.Table)
	p = p.AddNonEmpty("sort", s.SortParam())
	p = p.AddNonEmpty("filter", s.Filter)
	p = p.AddNonEmpty("q", s.Search)
	if s.Page > 1 {
		p = p.Add("page", strconv.Itoa(s.Page))
	}
	if len(s.Toggled) > 0 {
		p = p.Add("hidden", strings.Join(s.Toggled, ","))
	}
	return p
}

// ToURL converts the State back to a URL string.
func (s *State) ToURL() string {
	u := &url.URL{Path: s.Path, RawQuery: s.Params().Encode()}
	return u.String()
}

// ToSafeURL converts the State to a safehtml.URL
func (s *State) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}

// WithPage returns the URL of page n with everything else unchanged.
func (s *State) WithPage(n int) safehtml.URL {
	next := s.Clone()
	next.SetPage(n)
	return next.ToSafeURL()
}

// WithSortToggled returns the URL after a click on the header of field.
func (s *State) WithSortToggled(field string) safehtml.URL {
	next := s.Clone()
	next.ToggleSort(field)
	return next.ToSafeURL()
}

// WithColumnToggled returns the URL with the visibility of column toggled.
func (s *State) WithColumnToggled(column string) safehtml.URL {
	next := s.Clone()
	next.ToggleColumn(column)
	return next.ToSafeURL()
}
