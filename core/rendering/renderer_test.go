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

package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/safehtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/ajaxtable/core/views"
)

func newRenderer(t *testing.T) *TableRenderer {
	t.Helper()
	r, err := NewTableRenderer()
	require.NoError(t, err)
	return r
}

func TestRender_Table(t *testing.T) {
	vm := &views.TableViewModel{
		Title:      "Orders",
		Table:      "orders",
		CurrentURL: safehtml.URLSanitized("/table?table=orders"),
		Headers: []views.HeaderCell{
			{Label: "#", Class: "align-right"},
			{Name: "customer", Label: "Customer", Sortable: true, SortDir: "asc", SortURL: safehtml.URLSanitized("/table?table=orders&sort=-customer")},
			{Name: "note", Label: "Note", Class: views.HiddenClass, Hidden: true},
		},
		Rows: []views.Row{{Cells: []views.Cell{
			{Text: "1", Class: "align-right"},
			{Text: "Ann & <Co>"},
			{Text: "x", Class: views.HiddenClass, Hidden: true},
		}}},
		Footer:         &views.Row{Cells: []views.Cell{{}, {Text: "30.50"}, {}}},
		ColumnCount:    3,
		PaginationInfo: "Showing 1 to 1 of 1 entries",
		Pagination: []views.PageLink{
			{Label: "«", Disabled: true},
			{Label: "1", Active: true},
			{Label: "2", URL: safehtml.URLSanitized("/table?table=orders&page=2")},
		},
		ShowSettings: true,
		Settings: []views.ColumnToggle{
			{Label: "Note", Visible: false, ToggleURL: safehtml.URLSanitized("/table?table=orders&hidden=note")},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).Render(&buf, vm))
	out := buf.String()

	assert.Contains(t, out, "<title>Orders</title>")
	assert.Contains(t, out, "Ann &amp; &lt;Co&gt;")
	assert.NotContains(t, out, "<Co>")
	assert.Contains(t, out, `href="/table?table=orders&amp;sort=-customer"`)
	assert.Contains(t, out, `class="sort-asc"`)
	assert.Contains(t, out, `<th class="ajaxtable-hidden">Note</th>`)
	assert.Contains(t, out, "<tfoot>")
	assert.Contains(t, out, "30.50")
	assert.Contains(t, out, "Showing 1 to 1 of 1 entries")
	assert.Contains(t, out, `href="/table?table=orders&amp;page=2"`)
	assert.Contains(t, out, `<li class="active"><span>1</span></li>`)
	assert.Contains(t, out, `href="/table?table=orders&amp;hidden=note"`)
	assert.NotContains(t, out, "ajaxtable-error")
}

func TestRender_ErrorRow(t *testing.T) {
	vm := &views.TableViewModel{
		Title:       "Orders",
		Headers:     []views.HeaderCell{{Label: "A"}, {Label: "B"}},
		ColumnCount: 2,
		Footer:      &views.Row{Cells: []views.Cell{{Text: "0.00"}, {}}},
		Error:       &views.ErrorRow{Message: "Failed to load data", Detail: "<b>boom</b>"},
	}

	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).Render(&buf, vm))
	out := buf.String()

	assert.Contains(t, out, `<tr class="ajaxtable-error">`)
	assert.Contains(t, out, "&lt;b&gt;boom&lt;/b&gt;")
	assert.NotContains(t, out, "<tfoot>")
	assert.NotContains(t, out, "ul class=\"pagination\"")
}

func TestRenderLanding(t *testing.T) {
	vm := views.BuildLandingViewModel("Tables", "/table", []views.TableInfo{{Name: "orders", Title: "Orders"}})

	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).RenderLanding(&buf, vm))
	assert.Contains(t, buf.String(), `<a href="/table?table=orders">Orders</a>`)

	buf.Reset()
	require.NoError(t, newRenderer(t).RenderLanding(&buf, views.LandingViewModel{Title: "Empty"}))
	assert.True(t, strings.Contains(buf.String(), "No tables configured."))
}
