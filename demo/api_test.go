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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/ajaxtable/core/table"
	"github.com/google/ajaxtable/logger"
)

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle("/api/", NewAPI("/api/", Datasets(), logger.Discard()))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, Response) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body Response
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp.StatusCode, body
}

func TestAPI_Paging(t *testing.T) {
	srv := newTestAPI(t)

	status, body := get(t, srv.URL+"/api/orders?per_page=10&page=3")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body.Data, 10)
	assert.Equal(t, float64(1020), body.Data[0]["id"])
	assert.Equal(t, 3, body.Meta.Pagination.CurrentPage)
	assert.Equal(t, 10, body.Meta.Pagination.TotalPages)
	assert.Equal(t, NumOrders, body.Meta.Pagination.Total)

	_, body = get(t, srv.URL+"/api/orders?per_page=10&page=10")
	assert.Len(t, body.Data, 5)
	assert.Equal(t, 5, body.Meta.Pagination.Count)

	_, body = get(t, srv.URL+"/api/orders")
	assert.Len(t, body.Data, DefaultPerPage)
}

func TestAPI_Errors(t *testing.T) {
	srv := newTestAPI(t)

	tests := map[string]int{
		"/api/nope":                 http.StatusNotFound,
		"/api/orders?page=0":        http.StatusBadRequest,
		"/api/orders?per_page=x":    http.StatusBadRequest,
		"/api/orders?per_page=9999": http.StatusBadRequest,
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			status, _ := get(t, srv.URL+path)
			assert.Equal(t, want, status)
		})
	}
}

func TestQuery(t *testing.T) {
	rows := []Record{
		{"name": "b", "amount": "10.5", "n": 3},
		{"name": "a", "amount": "9", "n": 1},
		{"name": "c", "amount": "100", "n": 2},
	}

	names := func(rs []Record) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r["name"].(string))
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "c"}, names(Query(rows, "", "", "name")))
	assert.Equal(t, []string{"c", "b", "a"}, names(Query(rows, "", "", "-amount")), "numeric strings sort numerically")
	assert.Equal(t, []string{"a", "c", "b"}, names(Query(rows, "", "", "n")))
	assert.Equal(t, []string{"b"}, names(Query(rows, "amount:10.5", "", "")))
	assert.Equal(t, []string{"b"}, names(Query(rows, "n:3", "", "")))
	assert.Equal(t, []string{"c"}, names(Query(rows, "", "C", "")))
	assert.Equal(t, []string{"b", "a", "c"}, names(rows), "input is not reordered")
}

func TestPaginate_Empty(t *testing.T) {
	resp := Paginate(nil, 1, 10)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 1, resp.Meta.Pagination.TotalPages)
	assert.Equal(t, 0, resp.Meta.Pagination.Total)
}

func TestConfig_RendersThroughController(t *testing.T) {
	srv := newTestAPI(t)
	cfg := Config(srv.URL+"/api", "127.0.0.1:0")

	orders, err := cfg.Table("orders")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/api/orders", orders.URL)

	c := table.New(orders.Options(), table.WithHTTPClient(srv.Client()), table.WithLogger(logger.Discard()))
	vm, err := c.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, vm.Rows, 10)
	require.NotNil(t, vm.Footer)
	assert.Equal(t, "Showing 1 to 10 of 95 entries", vm.PaginationInfo)
	assert.Equal(t, "1", vm.Rows[0].Cells[0].Text)
	assert.True(t, vm.Rows[0].Cells[11].Hidden)

	regions, err := cfg.Table("regions")
	require.NoError(t, err)
	c = table.New(regions.Options(), table.WithHTTPClient(srv.Client()), table.WithLogger(logger.Discard()))
	vm, err = c.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, vm.Rows, len(Regions()))
}

func TestCompare(t *testing.T) {
	tests := map[string]struct {
		a, b any
		want int
	}{
		"numbers":          {a: 2, b: 10.5, want: -1},
		"numeric strings":  {a: "100", b: "9", want: 1},
		"mixed numeric":    {a: "3", b: 3, want: 0},
		"strings":          {a: "Ann", b: "Bob", want: -1},
		"bools":            {a: true, b: false, want: 1},
		"missing last":     {a: nil, b: "x", want: 1},
		"missing first":    {a: 0, b: nil, want: -1},
		"both missing":     {a: nil, b: nil, want: 0},
		"non-numeric text": {a: "10 kg", b: "9 kg", want: -1},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, Compare(test.a, test.b))
		})
	}
}
