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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/ajaxtable/core/columns"
)

const sampleConfig = `
listen: ":9000"
locale: de
tables:
  - name: orders
    title: Orders
    url: http://localhost:9000/api/orders?region=eu
    timeout: 5s
    headers:
      X-Api-Key: secret
    pagination: true
    pagination_info: true
    show_footer: true
    page_size: 10
    sort: -amount
    header: |
      <thead><tr>
        <th data-col="_row_number">#</th>
        <th data-col="amount" data-format="money" data-summary="sum">Amount</th>
      </tr></thead>
  - name: customers
    url: http://localhost:9000/api/customers
    columns:
      - name: name
        label: Name
        sort: true
      - name: email
        label: Email
        hidden: true
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "de", cfg.Locale)
	assert.Equal(t, []string{"orders", "customers"}, cfg.Names())

	orders, err := cfg.Table("orders")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/api/orders?region=eu", orders.URL)
	assert.Equal(t, 5*time.Second, orders.Timeout)
	assert.Equal(t, map[string]string{"X-Api-Key": "secret"}, orders.Headers)

	opts := orders.Options()
	assert.Equal(t, "orders", opts.Name)
	assert.Equal(t, "Orders", opts.Title)
	assert.Equal(t, orders.URL, opts.Request.URL)
	assert.True(t, opts.Pagination)
	assert.True(t, opts.PaginationInfo)
	assert.True(t, opts.ShowFooter)
	assert.Equal(t, 10, opts.PageSize)
	assert.Equal(t, "-amount", opts.Sort)
	assert.Contains(t, opts.Header, `data-col="amount"`)

	customers, err := cfg.Table("customers")
	require.NoError(t, err)
	assert.Equal(t, []columns.Descriptor{
		{Name: "name", Label: "Name", Sortable: true, Visible: true},
		{Name: "email", Label: "Email", Visible: false},
	}, customers.Options().Columns)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("tables: []"))
	require.NoError(t, err)
	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.Equal(t, "en", cfg.Locale)

	cfg, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Tables)

	assert.Equal(t, Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key":  "tables:\n  - name: a\n    colour: red\n",
		"missing name": "tables:\n  - url: http://x\n",
		"duplicate":    "tables:\n  - name: a\n  - name: a\n",
		"invalid yaml": "tables: [",
		"bad duration": "tables:\n  - name: a\n    timeout: soon\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestTable_Unknown(t *testing.T) {
	cfg := Default()
	_, err := cfg.Table("nope")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ajaxtable.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Tables, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatter(t *testing.T) {
	cfg, err := Parse([]byte("locale: de"))
	require.NoError(t, err)
	assert.Equal(t, "1.234,50", cfg.Formatter().Number(1234.5))
}
