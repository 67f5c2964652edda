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

// Package aggregates provides the running footer summaries of a table.
// A SummaryState is zeroed at the start of every load, fed once per rendered
// row, and read once when the footer is built.
package aggregates

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/ajaxtable/core/records"
)

// Kind is the summary function of a column.
type Kind int

const (
	KindNone Kind = iota
	KindSum
	KindCount
	KindAvg
)

// ParseKind maps a summary name to a Kind. Unknown names yield KindNone.
func ParseKind(s string) Kind {
	switch s {
	case "sum":
		return KindSum
	case "count":
		return KindCount
	case "avg":
		return KindAvg
	default:
		return KindNone
	}
}

// String returns the summary name.
func (k Kind) String() string {
	switch k {
	case KindSum:
		return "sum"
	case KindCount:
		return "count"
	case KindAvg:
		return "avg"
	default:
		return ""
	}
}

// SummaryState stores the running state of one column summary.
type SummaryState struct {
	Kind  Kind
	Sum   float64 // Sum of values, NaN once a non-numeric value was seen
	Count int     // Number of rows processed in the current pass
}

// NewSummaryState creates an empty state for kind.
func NewSummaryState(kind Kind) *SummaryState {
	return &SummaryState{Kind: kind}
}

// Accumulate adds a raw cell value. Values are coerced like JavaScript's
// parseFloat, so a non-numeric value turns Sum into NaN.
func (s *SummaryState) Accumulate(raw any) {
	s.Add(ParseFloat(raw))
}

// Add adds a single numeric value.
func (s *SummaryState) Add(value float64) {
	s.Sum += value
	s.Count++
}

// Avg returns Sum/Count. It is NaN when no rows were processed.
func (s *SummaryState) Avg() float64 {
	if s.Count == 0 {
		return math.NaN()
	}
	return s.Sum / float64(s.Count)
}

// Finalize returns the summary value. ok is false for an unknown kind,
// which callers render as an empty cell.
func (s *SummaryState) Finalize() (value float64, ok bool) {
	switch s.Kind {
	case KindSum:
		return s.Sum, true
	case KindCount:
		return float64(s.Count), true
	case KindAvg:
		return s.Avg(), true
	default:
		return 0, false
	}
}

// Reset zeroes the state.
func (s *SummaryState) Reset() {
	s.Sum = 0
	s.Count = 0
}

// Summaries holds the states of all summarised columns of a table, keyed by
// column position.
type Summaries struct {
	states map[int]*SummaryState
}

// NewSummaries creates states for every column whose kind is not KindNone.
func NewSummaries(kinds []Kind) *Summaries {
	s := &Summaries{states: make(map[int]*SummaryState)}
	for i, k := range kinds {
		if k != KindNone {
			s.states[i] = NewSummaryState(k)
		}
	}
	return s
}

// Get returns the state of column i, or nil if the column has no summary.
func (s *Summaries) Get(i int) *SummaryState {
	return s.states[i]
}

// Accumulate feeds raw into column i. Columns without summary are ignored.
func (s *Summaries) Accumulate(i int, raw any) {
	if st, ok := s.states[i]; ok {
		st.Accumulate(raw)
	}
}

// Reset zeroes every state.
func (s *Summaries) Reset() {
	for _, st := range s.states {
		st.Reset()
	}
}

var floatPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseFloat converts v with JavaScript parseFloat semantics: the longest
// numeric prefix of its string form is used, NaN when there is none.
func ParseFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case nil, bool:
		return math.NaN()
	}

	s := strings.TrimLeft(records.Stringify(v), " \t\n\r\f\v")
	m := floatPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}
	switch m {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
