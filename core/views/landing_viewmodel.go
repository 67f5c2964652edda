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

package views

import (
	"github.com/google/safehtml"

	"github.com/google/ajaxtable/core/query"
)

// LandingViewModel lists the configured tables.
type LandingViewModel struct {
	Title  string
	Tables []TableLink
}

// TableLink points at the page of one table.
type TableLink struct {
	Name  string
	Title string
	URL   safehtml.URL
}

// TableInfo describes a table for the landing page.
type TableInfo struct {
	Name  string
	Title string
}

// BuildLandingViewModel creates the landing page model. tablePath is the
// path of the table page, e.g. "/table".
func BuildLandingViewModel(title, tablePath string, tables []TableInfo) LandingViewModel {
	vm := LandingViewModel{Title: title}
	for _, t := range tables {
		state := query.NewState()
		state.Path = tablePath
		state.Table = t.Name

		display := t.Title
		if display == "" {
			display = t.Name
		}
		vm.Tables = append(vm.Tables, TableLink{Name: t.Name, Title: display, URL: state.ToSafeURL()})
	}
	return vm
}
