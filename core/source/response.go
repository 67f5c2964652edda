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

package source

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/google/ajaxtable/core/pagination"
	"github.com/google/ajaxtable/core/records"
)

// ErrMalformedResponse is returned when a response body is not JSON or its
// data path does not hold an array.
var ErrMalformedResponse = errors.New("malformed response")

// Response is a decoded data response.
type Response struct {
	Records []records.Record

	// Pagination is nil when the response carries no pagination metadata.
	Pagination *pagination.Meta

	// DataFound is false when the data path was absent. That case yields
	// zero records rather than an error.
	DataFound bool
}

// Decode extracts the records under dataKey and the pagination metadata
// under metaKey+".pagination". Both keys are dotted gjson paths.
func Decode(body []byte, dataKey, metaKey string) (*Response, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformedResponse)
	}
	doc := gjson.ParseBytes(body)
	out := &Response{}

	data := doc.Get(dataKey)
	switch {
	case !data.Exists():
	case data.IsArray():
		out.DataFound = true
		for _, item := range data.Array() {
			out.Records = append(out.Records, records.New(item))
		}
	default:
		return nil, fmt.Errorf("%w: %q is not an array", ErrMalformedResponse, dataKey)
	}

	pagPath := "pagination"
	if metaKey != "" {
		pagPath = metaKey + ".pagination"
	}
	pag := doc.Get(pagPath)
	if pag.IsObject() {
		meta := pagination.Meta{
			CurrentPage: int(pag.Get("current_page").Int()),
			TotalPages:  int(pag.Get("total_pages").Int()),
			PerPage:     int(pag.Get("per_page").Int()),
			Count:       int(pag.Get("count").Int()),
			Total:       int(pag.Get("total").Int()),
		}.Normalize()
		out.Pagination = &meta
	}
	return out, nil
}
