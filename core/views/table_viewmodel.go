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
	"github.com/google/safehtml"

	"github.com/google/ajaxtable/core/columns"
	"github.com/google/ajaxtable/core/pagination"
	"github.com/google/ajaxtable/core/query"
)

// HiddenClass is the CSS class of hidden header, body and footer cells.
const HiddenClass = "ajaxtable-hidden"

// TableViewModel contains one rendered table formatted for template consumption
type TableViewModel struct {
	Title      string
	Table      string       // Name of the configured table
	CurrentURL safehtml.URL // URL of the current state, used by the reload link

	Headers []HeaderCell
	Rows    []Row
	Footer  *Row      // nil unless the footer is enabled
	Error   *ErrorRow // set when the load failed; Rows is empty then

	// ColumnCount is the number of columns, used as the colspan of the
	// error row.
	ColumnCount int

	Pagination     []PageLink // empty when pagination is disabled or unavailable
	PaginationInfo string     // empty unless pagination info is enabled

	ShowSettings bool
	Settings     []ColumnToggle
}

// HeaderCell is one <th> of the table.
type HeaderCell struct {
	Name     string
	Label    string
	Class    string       // alignment and hidden classes
	Sortable bool
	SortURL  safehtml.URL // URL after a click on the header
	SortDir  string       // "asc", "desc" or empty when not the sort field
	Hidden   bool
}

// Cell is one <td> of a body or footer row.
type Cell struct {
	Text   string
	Class  string
	Hidden bool
}

// Row is one <tr> of the table body or footer.
type Row struct {
	Cells []Cell
}

// ErrorRow is the single full-width row shown when loading failed.
type ErrorRow struct {
	Message string
	Detail  string
}

// PageLink is one entry of the pagination control.
type PageLink struct {
	Label    string
	URL      safehtml.URL
	Active   bool
	Disabled bool
	Ellipsis bool
}

// Clickable reports whether the template renders the entry as a link.
func (l PageLink) Clickable() bool {
	return !l.Active && !l.Disabled && !l.Ellipsis
}

// ColumnToggle is one entry of the settings list.
type ColumnToggle struct {
	Label     string
	Visible   bool
	ToggleURL safehtml.URL // URL with the visibility of the column flipped
}

// ColumnHidden reports whether col is hidden in state. The hidden parameter
// flips the initial visibility of the columns it names.
func ColumnHidden(col columns.Spec, state *query.State) bool {
	toggled := col.Name != "" && state.IsToggled(col.Name)
	return col.Visible == toggled
}

func cellClass(col columns.Spec, hidden bool) string {
	class := col.Align.Class()
	if col.IsRowNumber() && class == "" {
		class = columns.AlignRight.Class()
	}
	if hidden {
		if class != "" {
			class += " "
		}
		class += HiddenClass
	}
	return class
}

// BuildHeaders creates the header cells for cols in state.
func BuildHeaders(cols *columns.Set, state *query.State) []HeaderCell {
	headers := make([]HeaderCell, 0, cols.Len())
	for _, col := range cols.Specs() {
		hidden := ColumnHidden(col, state)
		h := HeaderCell{
			Name:     col.Name,
			Label:    col.Label,
			Class:    cellClass(col, hidden),
			Sortable: col.Sortable,
			Hidden:   hidden,
		}
		if col.Sortable {
			h.SortURL = state.WithSortToggled(col.Name)
			if state.SortField == col.Name {
				h.SortDir = state.SortDir.String()
			}
		}
		headers = append(headers, h)
	}
	return headers
}

// BuildSettings creates the column visibility toggles. Columns without a
// name or a label cannot be toggled and are left out.
func BuildSettings(cols *columns.Set, state *query.State) []ColumnToggle {
	var toggles []ColumnToggle
	for _, col := range cols.Specs() {
		if col.Name == "" || col.Label == "" {
			continue
		}
		toggles = append(toggles, ColumnToggle{
			Label:     col.Label,
			Visible:   !ColumnHidden(col, state),
			ToggleURL: state.WithColumnToggled(col.Name),
		})
	}
	return toggles
}

// BuildPageLinks attaches URLs to a pagination plan. Page URLs keep the sort,
// filter, search and hidden columns of state.
func BuildPageLinks(plan []pagination.Link, state *query.State) []PageLink {
	links := make([]PageLink, 0, len(plan))
	for _, l := range plan {
		link := PageLink{
			Label:    l.Label(),
			Active:   l.Active,
			Disabled: l.Disabled,
			Ellipsis: l.Kind == pagination.LinkEllipsis,
		}
		if l.Clickable() {
			link.URL = state.WithPage(l.Page)
		}
		links = append(links, link)
	}
	return links
}
