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

package views

import (
	"math"
	"strconv"

	"github.com/google/ajaxtable/core/aggregates"
	"github.com/google/ajaxtable/core/columns"
	"github.com/google/ajaxtable/core/events"
	"github.com/google/ajaxtable/core/format"
	"github.com/google/ajaxtable/core/pagination"
	"github.com/google/ajaxtable/core/query"
	"github.com/google/ajaxtable/core/records"
)

// RowRenderer turns records into rows for one render pass and keeps the
// summary state of that pass.
type RowRenderer struct {
	table     string
	cols      *columns.Set
	formatter *format.Formatter
	state     *query.State
	meta      *pagination.Meta
	bus       *events.Bus
	summaries *aggregates.Summaries
	hidden    []bool
}

// NewRowRenderer creates a renderer for one pass. meta is nil when row
// numbers should restart at 1; bus may be nil.
func NewRowRenderer(table string, cols *columns.Set, formatter *format.Formatter, state *query.State, meta *pagination.Meta, bus *events.Bus) *RowRenderer {
	if formatter == nil {
		formatter = format.Default()
	}
	if state == nil {
		state = query.NewState()
	}
	hidden := make([]bool, cols.Len())
	for i := range hidden {
		hidden[i] = ColumnHidden(cols.At(i), state)
	}
	return &RowRenderer{
		table:     table,
		cols:      cols,
		formatter: formatter,
		state:     state,
		meta:      meta,
		bus:       bus,
		summaries: aggregates.NewSummaries(cols.SummaryKinds()),
		hidden:    hidden,
	}
}

// Summaries returns the summary state accumulated so far.
func (r *RowRenderer) Summaries() *aggregates.Summaries {
	return r.summaries
}

// RenderRow renders the index-th record of the page (1-based). It emits
// before_row and after_row around the record.
func (r *RowRenderer) RenderRow(index int, rec records.Record) Row {
	r.emit(events.BeforeRow, &rec)

	row := Row{Cells: make([]Cell, 0, r.cols.Len())}
	for i := 0; i < r.cols.Len(); i++ {
		col := r.cols.At(i)
		cell := Cell{Class: cellClass(col, r.hidden[i]), Hidden: r.hidden[i]}
		if col.IsRowNumber() {
			cell.Text = strconv.Itoa(pagination.RowNumber(r.meta, index))
		} else {
			cell.Text = r.renderValue(i, col, rec)
		}
		row.Cells = append(row.Cells, cell)
	}

	r.emit(events.AfterRow, &rec)
	return row
}

func (r *RowRenderer) renderValue(i int, col columns.Spec, rec records.Record) string {
	hooks := r.cols.Hooks(i)

	var value any
	if hooks.Extract != nil {
		value = hooks.Extract(col, rec)
	} else {
		value = rec.Field(col.Name)
	}

	r.summaries.Accumulate(i, value)

	if hooks.Format != nil {
		return hooks.Format(col, value)
	}
	return r.formatter.Format(col.Format, value)
}

// RenderFooter renders the summary row: the finalized summary of every
// summarised column, formatted like its cells, and empty cells elsewhere.
func (r *RowRenderer) RenderFooter() Row {
	row := Row{Cells: make([]Cell, 0, r.cols.Len())}
	for i := 0; i < r.cols.Len(); i++ {
		col := r.cols.At(i)
		cell := Cell{Class: cellClass(col, r.hidden[i]), Hidden: r.hidden[i]}
		if st := r.summaries.Get(i); st != nil {
			if v, ok := st.Finalize(); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
				cell.Text = r.formatter.Format(col.Format, v)
			}
		}
		row.Cells = append(row.Cells, cell)
	}
	return row
}

func (r *RowRenderer) emit(name events.Name, rec *records.Record) {
	if r.bus == nil {
		return
	}
	r.bus.Emit(events.Event{Name: name, Table: r.table, Record: rec})
}
