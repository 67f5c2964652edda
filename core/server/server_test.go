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

package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/ajaxtable/core/columns"
	"github.com/google/ajaxtable/core/config"
	"github.com/google/ajaxtable/core/records"
	"github.com/google/ajaxtable/logger"
)

const ordersBody = `{
	"data": [{"customer": "Ann", "amt": "1234.5"}, {"customer": "Bob", "amt": "20"}],
	"meta": {"pagination": {"current_page": 2, "total_pages": 3, "per_page": 2, "count": 2, "total": 6}}
}`

type upstream struct {
	srv  *httptest.Server
	urls chan string
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{urls: make(chan string, 16)}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.urls <- r.URL.String()
		if r.URL.Path == "/broken" {
			http.Error(w, "backend down", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(ordersBody))
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func newTestServer(t *testing.T, up *upstream) *Server {
	t.Helper()
	cfg, err := config.Parse([]byte(`
locale: de
tables:
  - name: orders
    title: Orders
    url: ` + up.srv.URL + `/orders
    pagination: true
    pagination_info: true
    show_footer: true
    page_size: 2
    sort: customer
    header: |
      <thead><tr>
        <th data-col="_row_number">#</th>
        <th data-col="customer" data-sort="true">Customer</th>
        <th data-col="amt" data-format="money" data-summary="sum" data-align="right">Amount</th>
      </tr></thead>
  - name: broken
    url: ` + up.srv.URL + `/broken
    columns:
      - name: a
        label: A
`))
	require.NoError(t, err)

	s, err := NewServer(cfg, logger.Discard())
	require.NoError(t, err)
	s.SetHTTPClient(up.srv.Client())
	return s
}

func get(t *testing.T, h http.Handler, target string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestServer_Table(t *testing.T) {
	up := newUpstream(t)
	s := newTestServer(t, up)

	code, body := get(t, s, "/table?table=orders&page=2&q=a")
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, "/orders?sort=customer&q=a&per_page=2&page=2", <-up.urls)
	assert.Contains(t, body, "<title>Orders</title>")
	assert.Contains(t, body, "1.234,50", "locale grouping")
	assert.Contains(t, body, "1.254,50", "footer sum")
	assert.Contains(t, body, ">3</td>", "row numbers continue across pages")
	assert.Contains(t, body, "Showing 3 to 4 of 6 entries")
	assert.Contains(t, body, `href="/table?table=orders&amp;sort=customer&amp;q=a&amp;page=3"`)
	assert.Contains(t, body, `href="/table?table=orders&amp;sort=-customer&amp;q=a"`)
}

func TestServer_TableSortFromURL(t *testing.T) {
	up := newUpstream(t)
	s := newTestServer(t, up)

	code, _ := get(t, s, "/table?table=orders&sort=-amt&filter=open")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/orders?sort=-amt&filter=open&per_page=2&page=1", <-up.urls)
}

func TestServer_TableErrors(t *testing.T) {
	up := newUpstream(t)
	s := newTestServer(t, up)

	code, _ := get(t, s, "/table")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = get(t, s, "/table?table=nope")
	assert.Equal(t, http.StatusNotFound, code)

	code, body := get(t, s, "/table?table=broken")
	assert.Equal(t, http.StatusOK, code, "load failures render an error row")
	assert.Contains(t, body, "ajaxtable-error")
	assert.Contains(t, body, "backend down")
}

func TestServer_ColumnHooks(t *testing.T) {
	up := newUpstream(t)
	s := newTestServer(t, up)
	s.SetColumnHooks("orders", map[string]columns.Hooks{
		"customer": {Format: func(col columns.Spec, value any) string {
			return strings.ToUpper(records.Stringify(value))
		}},
	})

	_, body := get(t, s, "/table?table=orders")
	assert.Contains(t, body, "ANN")
}

func TestServer_LandingAndHealth(t *testing.T) {
	s := newTestServer(t, newUpstream(t))

	code, body := get(t, s, "/")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `<a href="/table?table=orders">Orders</a>`)
	assert.Contains(t, body, `<a href="/table?table=broken">broken</a>`)

	code, _ = get(t, s, "/missing")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok\n", body)
}

func TestServer_Handle(t *testing.T) {
	s := newTestServer(t, newUpstream(t))
	s.Handle("/api/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "api")
	}))

	_, body := get(t, s, "/api/orders")
	assert.Equal(t, "api", body)
}
