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

package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		in   string
		want Spec
	}{
		"empty":           {in: "", want: Spec{}},
		"money":           {in: "money", want: Spec{Kind: KindMoney}},
		"number with arg": {in: "number:4", want: Spec{Kind: KindNumber, Args: "4"}},
		"hours":           {in: "hours", want: Spec{Kind: KindHours}},
		"timestamp":       {in: "timestamp", want: Spec{Kind: KindTimestamp}},
		"template":        {in: "{value} kg", want: Spec{Kind: KindTemplate, Template: "{value} kg"}},
		"template cut":    {in: "Total:{value}", want: Spec{Kind: KindTemplate, Template: "Total", Args: "{value}"}},
		"args only":       {in: ":x", want: Spec{}},
		"case sensitive":  {in: "Money", want: Spec{Kind: KindTemplate, Template: "Money"}},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, Parse(test.in))
		})
	}
}

func TestSpec_String(t *testing.T) {
	for _, s := range []string{"", "money", "number:4", "{value} kg", "time"} {
		assert.Equal(t, s, Parse(s).String())
	}
}

func TestApply_Number(t *testing.T) {
	tests := map[string]struct {
		raw  any
		want string
	}{
		"float":       {raw: 1234.5, want: "1,234.50"},
		"string":      {raw: "10.5", want: "10.50"},
		"grouped str": {raw: "$1,234,567.891", want: "1,234,567.89"},
		"negative":    {raw: -42.0, want: "-42.00"},
		"int":         {raw: 30, want: "30.00"},
		"garbage":     {raw: "abc", want: "0.00"},
		"nil":         {raw: nil, want: "0.00"},
		"nan":         {raw: math.NaN(), want: ""},
		"infinity":    {raw: math.Inf(1), want: ""},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, Parse("number").Apply(test.raw))
			assert.Equal(t, test.want, Parse("money").Apply(test.raw))
		})
	}
}

func TestApply_Hours(t *testing.T) {
	spec := Parse("hours")

	assert.Equal(t, "", spec.Apply("00:00"))
	assert.Equal(t, "", spec.Apply("00:00:00"))
	assert.Equal(t, "7:05", spec.Apply("7:05"))
	assert.Equal(t, "12", spec.Apply("12"))

	for in, want := range map[string]string{
		"1:02:03":   "1:02",
		"10:59:59":  "10:59",
		"123:00:01": "123:00",
		"0:00:30":   "0:00",
	} {
		assert.Equal(t, want, spec.Apply(in), in)
	}
}

func TestApply_Time(t *testing.T) {
	spec := Parse("time")

	assert.Equal(t, "14:30", spec.Apply("14:30"))
	assert.Equal(t, "09:05", spec.Apply("9:05:59"))
	assert.Equal(t, "14:07", spec.Apply("2024-03-05 14:07:00"))
	assert.Equal(t, "14:07", spec.Apply("2024-03-05T14:07:00Z"))
	assert.Equal(t, "not a time", spec.Apply("not a time"))
	assert.Equal(t, "", spec.Apply(nil))
}

func TestApply_Template(t *testing.T) {
	tests := map[string]struct {
		tpl  string
		raw  any
		want string
	}{
		"suffix":         {tpl: "{value} kg", raw: 12.0, want: "12 kg"},
		"first only":     {tpl: "{value}/{value}", raw: "a", want: "a/{value}"},
		"no placeholder": {tpl: "fixed", raw: "a", want: "fixed"},
		"markup":         {tpl: "<b>{value}</b>", raw: "x", want: "<b>x</b>"},
		"nil value":      {tpl: "[{value}]", raw: nil, want: "[]"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, Parse(test.tpl).Apply(test.raw))
		})
	}

	assert.Equal(t, "raw", Spec{Kind: KindTemplate}.Apply("raw"))
}

func TestApply_PassThrough(t *testing.T) {
	for _, f := range []string{"", "date", "datetime", "timestamp"} {
		spec := Parse(f)
		assert.Equal(t, "2024-01-02", spec.Apply("2024-01-02"), f)
		assert.Equal(t, "20", spec.Apply(20.0), f)
		assert.Equal(t, "", spec.Apply(nil), f)
	}
}

func TestFormatter_Locale(t *testing.T) {
	de := NewFormatter(language.German)
	assert.Equal(t, "1.234,50", de.Number(1234.5))
	assert.Equal(t, "1.234", de.Integer(1234))

	assert.Same(t, Default(), NewFormatterForLocale(""))
	assert.Same(t, Default(), NewFormatterForLocale("!!"))
	assert.Equal(t, "1,234", NewFormatterForLocale("en-US").Integer(1234))
}
