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

package columns

import (
	"github.com/google/ajaxtable/core/aggregates"
	"github.com/google/ajaxtable/core/format"
	"github.com/google/ajaxtable/core/records"
)

// RowNumberColumn is the reserved column name of the row-number
// pseudo-column. Its values come from pagination arithmetic, never from the
// row data.
const RowNumberColumn = "_row_number"

// Align is the horizontal alignment of a column's cells.
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// ParseAlign maps "left", "right" and "center"; anything else is AlignNone.
func ParseAlign(s string) Align {
	switch s {
	case "left":
		return AlignLeft
	case "right":
		return AlignRight
	case "center":
		return AlignCenter
	default:
		return AlignNone
	}
}

// String returns the alignment keyword.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return ""
	}
}

// Class returns the CSS class of aligned cells, e.g. "align-right".
func (a Align) Class() string {
	if a == AlignNone {
		return ""
	}
	return "align-" + a.String()
}

// Descriptor is the raw header metadata of one column, as written in the
// table markup or the configuration file.
type Descriptor struct {
	Name     string
	Label    string
	Align    string
	Format   string
	Summary  string
	Sortable bool
	Visible  bool
}

// Spec is the parsed, immutable definition of a column.
type Spec struct {
	Name     string
	Label    string
	Align    Align
	Format   format.Spec
	Sortable bool
	Summary  aggregates.Kind
	Visible  bool
}

// IsRowNumber reports whether the column is the row-number pseudo-column.
func (s Spec) IsRowNumber() bool {
	return s.Name == RowNumberColumn
}

// ExtractFunc computes the raw value of a column from a record.
type ExtractFunc func(col Spec, rec records.Record) any

// FormatFunc turns a raw value into the displayed text of a cell.
type FormatFunc func(col Spec, value any) string

// Hooks are the host supplied overrides of one column. Nil members keep the
// built-in behaviour.
type Hooks struct {
	Extract ExtractFunc
	Format  FormatFunc
}

// Set is the ordered column list of a table. Order is markup order and
// drives cell emission.
type Set struct {
	specs []Spec
	hooks []Hooks
	index map[string]int
}

// NewSet parses descriptors into specs and attaches hooks by column name.
// Unknown summary kinds and alignments are ignored.
func NewSet(descs []Descriptor, hooks map[string]Hooks) *Set {
	s := &Set{
		specs: make([]Spec, 0, len(descs)),
		hooks: make([]Hooks, 0, len(descs)),
		index: make(map[string]int, len(descs)),
	}
	for i, d := range descs {
		spec := Spec{
			Name:     d.Name,
			Label:    d.Label,
			Align:    ParseAlign(d.Align),
			Format:   format.Parse(d.Format),
			Sortable: d.Sortable && d.Name != "" && d.Name != RowNumberColumn,
			Summary:  aggregates.ParseKind(d.Summary),
			Visible:  d.Visible,
		}
		s.specs = append(s.specs, spec)
		s.hooks = append(s.hooks, hooks[d.Name])
		if _, dup := s.index[d.Name]; d.Name != "" && !dup {
			s.index[d.Name] = i
		}
	}
	return s
}

// Len returns the number of columns.
func (s *Set) Len() int {
	return len(s.specs)
}

// At returns the i-th column.
func (s *Set) At(i int) Spec {
	return s.specs[i]
}

// Hooks returns the hooks of the i-th column.
func (s *Set) Hooks(i int) Hooks {
	return s.hooks[i]
}

// Specs returns a copy of all columns in order.
func (s *Set) Specs() []Spec {
	out := make([]Spec, len(s.specs))
	copy(out, s.specs)
	return out
}

// Index returns the position of the first column called name.
func (s *Set) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Sortable reports whether name is a sortable column.
func (s *Set) Sortable(name string) bool {
	i, ok := s.index[name]
	return ok && s.specs[i].Sortable
}

// SummaryKinds returns the summary kind of every column, in order.
func (s *Set) SummaryKinds() []aggregates.Kind {
	kinds := make([]aggregates.Kind, len(s.specs))
	for i, spec := range s.specs {
		kinds[i] = spec.Summary
	}
	return kinds
}

// HasSummaries reports whether any column has a summary.
func (s *Set) HasSummaries() bool {
	for _, spec := range s.specs {
		if spec.Summary != aggregates.KindNone {
			return true
		}
	}
	return false
}
