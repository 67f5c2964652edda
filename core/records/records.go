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

// Package records wraps the JSON objects returned by a remote data source.
package records

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Record is a single row object from a data response.
type Record struct {
	raw gjson.Result
}

// New wraps an already parsed gjson value.
func New(raw gjson.Result) Record {
	return Record{raw: raw}
}

// Parse parses a JSON object into a Record.
func Parse(js string) Record {
	return Record{raw: gjson.Parse(js)}
}

// FromMap builds a Record from a Go map. It is mostly useful to hosts that
// synthesize rows and to tests.
func FromMap(m map[string]any) (Record, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode record: %w", err)
	}
	return Record{raw: gjson.ParseBytes(b)}, nil
}

// Field returns the value stored under name. Dotted names walk into nested
// objects. Missing fields and empty names yield nil.
func (r Record) Field(name string) any {
	if name == "" {
		return nil
	}
	res := r.raw.Get(name)
	if !res.Exists() {
		return nil
	}
	return res.Value()
}

// Has reports whether the field exists in the record.
func (r Record) Has(name string) bool {
	return name != "" && r.raw.Get(name).Exists()
}

// Value returns the whole record as decoded Go values.
func (r Record) Value() any {
	return r.raw.Value()
}

// Raw returns the original JSON text of the record.
func (r Record) Raw() string {
	return r.raw.Raw
}

// Stringify converts a raw JSON value into its display string form.
// Numbers use the shortest representation, nil becomes the empty string,
// objects and arrays are re-encoded as JSON.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}
