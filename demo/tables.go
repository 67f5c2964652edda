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

package demo

import (
	"strings"

	"github.com/google/ajaxtable/core/config"
)

const ordersHeader = `<table data-key="data">
  <thead>
    <tr>
      <th data-col="_row_number">#</th>
      <th data-col="id" data-sort="true">Order</th>
      <th data-col="customer" data-sort="true">Customer</th>
      <th data-col="region" data-sort="true">Region</th>
      <th data-col="status">Status</th>
      <th data-col="created" data-format="datetime" data-sort="true">Created</th>
      <th data-col="created" data-format="time">At</th>
      <th data-col="duration" data-format="hours" data-summary="count">Handling</th>
      <th data-col="shipping.carrier">Carrier</th>
      <th data-col="quantity" data-align="right" data-summary="avg" data-sort="true">Qty</th>
      <th data-col="amount" data-align="right" data-format="money" data-summary="sum" data-sort="true">Amount</th>
      <th data-col="category" visible="false">Category</th>
    </tr>
  </thead>
</table>`

// Config returns a configuration declaring the demo datasets served at
// baseURL, e.g. "http://127.0.0.1:8097/api/".
func Config(baseURL string, listen string) *config.Config {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	cfg := config.Default()
	cfg.Listen = listen
	cfg.Tables = []config.TableConfig{
		{
			Name:               "orders",
			Title:              "Orders",
			Header:             ordersHeader,
			ShowFooter:         true,
			ShowSettingsButton: true,
			Pagination:         true,
			PaginationInfo:     true,
			PageSize:           10,
			Sort:               "-amount",
		},
		{
			Name:               "regions",
			Title:              "Regions",
			ShowFooter:         true,
			ShowSettingsButton: true,
			Columns: []config.ColumnConfig{
				{Name: "region", Label: "Region", Sort: true},
				{Name: "name", Label: "Name", Sort: true},
				{Name: "continent", Label: "Continent", Sort: true},
				{Name: "capital", Label: "Capital"},
				{Name: "population", Label: "Population", Align: "right", Format: "{value} people", Summary: "sum", Sort: true},
			},
		},
	}
	cfg.Tables[0].URL = baseURL + "orders"
	cfg.Tables[1].URL = baseURL + "regions"
	return cfg
}
