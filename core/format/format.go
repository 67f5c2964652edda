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

// Package format turns raw cell values into display strings according to a
// column's format specification.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/google/ajaxtable/core/records"
)

// Kind identifies the active tag of a Spec.
type Kind int

const (
	KindNone Kind = iota
	KindMoney
	KindNumber
	KindDate
	KindTime
	KindHours
	KindDateTime
	KindTimestamp
	KindTemplate
)

var kindNames = map[string]Kind{
	"money":     KindMoney,
	"number":    KindNumber,
	"date":      KindDate,
	"time":      KindTime,
	"hours":     KindHours,
	"datetime":  KindDateTime,
	"timestamp": KindTimestamp,
}

// String returns the keyword used for the kind in format strings.
func (k Kind) String() string {
	switch k {
	case KindMoney:
		return "money"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindHours:
		return "hours"
	case KindDateTime:
		return "datetime"
	case KindTimestamp:
		return "timestamp"
	case KindTemplate:
		return "template"
	default:
		return "none"
	}
}

// Spec is a parsed column format. Format strings have the form
// "<kind>:<args>"; only <kind> is interpreted. A kind that is not a known
// keyword is a template and its text is the kind itself.
type Spec struct {
	Kind     Kind
	Template string
	Args     string
}

// Parse parses a format string. The empty string yields the zero Spec.
func Parse(s string) Spec {
	kind, args, _ := strings.Cut(s, ":")
	if kind == "" {
		return Spec{}
	}
	if k, ok := kindNames[kind]; ok {
		return Spec{Kind: k, Args: args}
	}
	return Spec{Kind: KindTemplate, Template: kind, Args: args}
}

// IsZero reports whether no format is set.
func (s Spec) IsZero() bool {
	return s.Kind == KindNone
}

// String returns the format string the Spec was parsed from.
func (s Spec) String() string {
	var head string
	switch s.Kind {
	case KindNone:
		return ""
	case KindTemplate:
		head = s.Template
	default:
		head = s.Kind.String()
	}
	if s.Args != "" {
		return head + ":" + s.Args
	}
	return head
}

// Apply formats raw with the default (English) formatter.
func (s Spec) Apply(raw any) string {
	return defaultFormatter.Format(s, raw)
}

// Formatter applies format specs using locale specific number grouping.
// It is safe for concurrent use.
type Formatter struct {
	printer *message.Printer
	loc     *time.Location
}

var defaultFormatter = NewFormatter(language.English)

// Default returns the English formatter.
func Default() *Formatter {
	return defaultFormatter
}

// NewFormatter returns a formatter for the given locale.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{
		printer: message.NewPrinter(tag),
		loc:     time.Local,
	}
}

// NewFormatterForLocale parses a BCP 47 tag such as "en" or "de-CH".
// Unparsable tags fall back to English.
func NewFormatterForLocale(locale string) *Formatter {
	if locale == "" {
		return defaultFormatter
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return defaultFormatter
	}
	return NewFormatter(tag)
}

// Format renders raw according to s.
func (f *Formatter) Format(s Spec, raw any) string {
	switch s.Kind {
	case KindMoney, KindNumber:
		return f.Number(unformat(raw))
	case KindTime:
		return f.clock(raw)
	case KindHours:
		return hours(records.Stringify(raw))
	case KindDate, KindDateTime, KindTimestamp:
		return records.Stringify(raw)
	case KindTemplate:
		if s.Template == "" {
			return records.Stringify(raw)
		}
		return strings.Replace(s.Template, "{value}", records.Stringify(raw), 1)
	default:
		return records.Stringify(raw)
	}
}

// Number renders v with two decimals and grouping separators.
// Non-finite values render empty.
func (f *Formatter) Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return f.printer.Sprintf("%.2f", v)
}

// Integer renders n with grouping separators.
func (f *Formatter) Integer(n int) string {
	return f.printer.Sprintf("%d", n)
}

var clockLayouts = []string{"15:04:05", "15:04"}

func (f *Formatter) clock(raw any) string {
	s := strings.TrimSpace(records.Stringify(raw))
	if s == "" {
		return ""
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	t, err := dateparse.ParseIn(s, f.loc)
	if err != nil {
		return records.Stringify(raw)
	}
	return t.Format("15:04")
}

func hours(s string) string {
	if s == "00:00" || s == "00:00:00" {
		return ""
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return s
	}
	return parts[0] + ":" + parts[1]
}

// unformat extracts a number from raw the way accounting displays expect:
// strings keep only digits, sign and decimal point; anything unparsable is 0.
func unformat(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case nil:
		return 0
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			return r
		}
		return -1
	}, records.Stringify(raw))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
