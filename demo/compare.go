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
	"math"
	"strconv"
	"strings"

	"github.com/google/ajaxtable/core/records"
)

// Compare orders two field values for sorting. Returns -1 if a < b, 0 if
// equal, 1 if a > b. Missing values sort after everything else, numbers
// (including numeric strings) compare numerically, booleans false first,
// and anything else by its string form.
func Compare(a, b any) int {
	if a == nil || b == nil {
		return compareMissing(a == nil, b == nil)
	}

	fa, okA := numeric(a)
	fb, okB := numeric(b)
	if okA && okB {
		return compareFloat64s(fa, fb)
	}

	ba, okA := a.(bool)
	bb, okB := b.(bool)
	if okA && okB {
		return compareBools(ba, bb)
	}

	return strings.Compare(records.Stringify(a), records.Stringify(b))
}

func numeric(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// compareBools compares two bool values (false < true)
func compareBools(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

// compareFloat64s compares two float64 values with NaN handling.
// NaN values are considered greater than all other values (sort to end).
func compareFloat64s(a, b float64) int {
	aNaN := math.IsNaN(a)
	bNaN := math.IsNaN(b)

	if aNaN && bNaN {
		return 0
	}
	if aNaN {
		return 1
	}
	if bNaN {
		return -1
	}

	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// compareMissing orders values where at least one side is missing.
func compareMissing(aMissing, bMissing bool) int {
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return 1
	default:
		return -1
	}
}
