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

// Package columns defines the column model of a table and parses it from
// the table's header markup.
package columns

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Header is the metadata read from a table's markup.
type Header struct {
	URL     string // data-url of the <table> element
	Key     string // data-key of the <table> element
	Columns []Descriptor
}

// ParseHeader reads the <th> cells of the first <thead> in r. When the markup
// has no <thead>, every <th> is used. Attributes:
//
//	data-col      column name (or "_row_number")
//	data-align    left, right or center
//	data-format   format string, see package format
//	data-sort     sortable when it parses as true
//	data-summary  sum, count or avg
//	visible       "false" hides the column initially
//
// The label is the text content of the cell.
func ParseHeader(r io.Reader) (*Header, error) {
	z := html.NewTokenizer(r)
	h := &Header{}

	var (
		theadCols []Descriptor
		looseCols []Descriptor
		inThead   bool
		theadDone bool
		cur       *Descriptor
		label     strings.Builder
	)

	// A <th> may be closed implicitly by the next cell, row or section.
	commit := func() {
		if cur == nil {
			return
		}
		cur.Label = strings.Join(strings.Fields(label.String()), " ")
		theadCols, looseCols = appendColumn(theadCols, looseCols, *cur, inThead)
		cur = nil
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to parse header markup: %w", err)
			}
			commit()
			if len(theadCols) > 0 {
				h.Columns = theadCols
			} else {
				h.Columns = looseCols
			}
			return h, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "th", "td", "tr", "thead", "tbody", "tfoot", "table":
				commit()
			}
			switch tok.Data {
			case "table":
				if h.URL == "" {
					h.URL = attr(tok, "data-url")
				}
				if h.Key == "" {
					h.Key = attr(tok, "data-key")
				}
			case "thead":
				inThead = !theadDone
			case "th":
				cur = descriptorFromTag(tok)
				label.Reset()
				if tt == html.SelfClosingTagToken {
					cur.Label = ""
					theadCols, looseCols = appendColumn(theadCols, looseCols, *cur, inThead)
					cur = nil
				}
			}

		case html.TextToken:
			if cur != nil {
				label.Write(z.Text())
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "th", "tr", "table":
				commit()
			case "thead":
				commit()
				if inThead {
					theadDone = true
				}
				inThead = false
			}
		}
	}
}

func appendColumn(thead, loose []Descriptor, d Descriptor, inThead bool) ([]Descriptor, []Descriptor) {
	if inThead {
		return append(thead, d), loose
	}
	return thead, append(loose, d)
}

func descriptorFromTag(tok html.Token) *Descriptor {
	sortable, _ := strconv.ParseBool(attr(tok, "data-sort"))
	return &Descriptor{
		Name:     attr(tok, "data-col"),
		Align:    attr(tok, "data-align"),
		Format:   attr(tok, "data-format"),
		Summary:  attr(tok, "data-summary"),
		Sortable: sortable,
		Visible:  attr(tok, "visible") != "false",
	}
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
