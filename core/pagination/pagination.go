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

// Package pagination plans the page links shown under a table.
package pagination

import (
	"fmt"
	"strconv"
)

// DefaultWindow is the number of pages on each side of the current page
// that the sliding window is sized for.
const DefaultWindow = 6

// Meta is the pagination metadata returned by the data source.
type Meta struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	PerPage     int `json:"per_page"`
	Count       int `json:"count"`
	Total       int `json:"total"`
}

// Normalize clamps the metadata into its invariants:
// 1 <= CurrentPage <= TotalPages, PerPage > 0, Count and Total >= 0.
func (m Meta) Normalize() Meta {
	if m.TotalPages < 1 {
		m.TotalPages = 1
	}
	if m.CurrentPage < 1 {
		m.CurrentPage = 1
	}
	if m.CurrentPage > m.TotalPages {
		m.CurrentPage = m.TotalPages
	}
	if m.PerPage < 1 {
		m.PerPage = 1
	}
	if m.Count < 0 {
		m.Count = 0
	}
	if m.Total < 0 {
		m.Total = 0
	}
	return m
}

// RowNumber returns the absolute number of the index-th row (1-based) of the
// current page. Without metadata the plain index is returned.
func RowNumber(meta *Meta, index int) int {
	if meta == nil {
		return index
	}
	return (meta.CurrentPage-1)*meta.PerPage + index
}

// LinkKind distinguishes the entries of a plan.
type LinkKind int

const (
	LinkPage LinkKind = iota
	LinkEllipsis
	LinkPrevious
	LinkNext
)

// Link is one entry of the pagination control.
type Link struct {
	Kind     LinkKind
	Page     int  // Target page; zero for ellipses
	Active   bool // The current page, rendered without a link
	Disabled bool // Previous/next at the boundaries, and ellipses
}

// Label returns the text shown for the link.
func (l Link) Label() string {
	switch l.Kind {
	case LinkPrevious:
		return "«"
	case LinkNext:
		return "»"
	case LinkEllipsis:
		return "…"
	default:
		return strconv.Itoa(l.Page)
	}
}

// Clickable reports whether the link should be rendered as an anchor.
func (l Link) Clickable() bool {
	return !l.Active && !l.Disabled
}

// Planner computes the links to display for the given metadata.
type Planner interface {
	Plan(meta Meta) []Link
}

// PlannerFunc adapts a function to the Planner interface.
type PlannerFunc func(meta Meta) []Link

// Plan calls f(meta).
func (f PlannerFunc) Plan(meta Meta) []Link {
	return f(meta)
}

// SlidingWindow is the default planner.
type SlidingWindow struct {
	Window int
}

// Plan implements Planner.
func (p SlidingWindow) Plan(meta Meta) []Link {
	return Plan(meta, p.Window)
}

// Plan returns the links for meta. Below 2*window+1 pages every page is
// listed; above, only the pages around the current one plus the first and
// last two pages are, with an ellipsis wherever pages are skipped. Previous
// and next controls always bracket the result.
func Plan(meta Meta, window int) []Link {
	if window < 1 {
		window = DefaultWindow
	}
	meta = meta.Normalize()
	cur, total := meta.CurrentPage, meta.TotalPages

	var ranges [][2]int
	switch {
	case total < 2*window+1:
		ranges = [][2]int{{1, total}}
	case cur <= window:
		ranges = [][2]int{{1, window + 2}, {total - 1, total}}
	case cur >= total-window:
		ranges = [][2]int{{1, 2}, {total - (window + 2), total}}
	default:
		adjacent := window / 2
		ranges = [][2]int{{1, 2}, {cur - adjacent, cur + adjacent}, {total - 1, total}}
	}

	links := make([]Link, 0, 2*window+7)
	links = append(links, Link{Kind: LinkPrevious, Page: max(cur-1, 1), Disabled: cur == 1})
	links = appendPages(links, visiblePages(ranges, total), cur)
	links = append(links, Link{Kind: LinkNext, Page: min(cur+1, total), Disabled: cur == total})
	return links
}

// visiblePages merges ranges into the ascending list of distinct pages
// within 1..total. Small windows make the ranges overlap.
func visiblePages(ranges [][2]int, total int) []int {
	shown := make([]bool, total+1)
	for _, r := range ranges {
		for p := max(r[0], 1); p <= min(r[1], total); p++ {
			shown[p] = true
		}
	}
	pages := make([]int, 0, total)
	for p := 1; p <= total; p++ {
		if shown[p] {
			pages = append(pages, p)
		}
	}
	return pages
}

func appendPages(links []Link, pages []int, cur int) []Link {
	for i, p := range pages {
		if i > 0 && p > pages[i-1]+1 {
			links = append(links, Link{Kind: LinkEllipsis, Disabled: true})
		}
		links = append(links, Link{Kind: LinkPage, Page: p, Active: p == cur})
	}
	return links
}

// Info returns the summary line shown next to the pagination control,
// e.g. "Showing 21 to 30 of 95 entries".
func Info(meta Meta) string {
	meta = meta.Normalize()
	if meta.Total == 0 || meta.Count == 0 {
		return "No entries"
	}
	first := (meta.CurrentPage-1)*meta.PerPage + 1
	last := first + meta.Count - 1
	return fmt.Sprintf("Showing %d to %d of %d entries", first, last, meta.Total)
}
