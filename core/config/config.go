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

// Package config loads the YAML file that declares the tables served by
// ajaxtable.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/google/ajaxtable/core/columns"
	"github.com/google/ajaxtable/core/format"
	"github.com/google/ajaxtable/core/source"
	"github.com/google/ajaxtable/core/table"
)

const DefaultListen = "127.0.0.1:8097"

// ErrUnknownTable is returned when a table name is not configured.
var ErrUnknownTable = errors.New("unknown table")

// Config is the content of the configuration file.
type Config struct {
	// Listen is the address of the HTTP server.
	Listen string `yaml:"listen"`
	// Locale selects number grouping, e.g. "en" or "de".
	Locale string        `yaml:"locale"`
	Tables []TableConfig `yaml:"tables"`
}

// TableConfig declares one table.
type TableConfig struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title,omitempty"`

	source.RequestConfig `yaml:",inline"`

	Key    string `yaml:"key,omitempty"`
	Meta   string `yaml:"meta,omitempty"`
	Search string `yaml:"search,omitempty"`
	Filter string `yaml:"filter,omitempty"`
	Sort   string `yaml:"sort,omitempty"`

	ShowFooter         bool `yaml:"show_footer,omitempty"`
	ShowSettingsButton bool `yaml:"show_settings_button,omitempty"`
	Pagination         bool `yaml:"pagination,omitempty"`
	PaginationInfo     bool `yaml:"pagination_info,omitempty"`
	PageSize           int  `yaml:"page_size,omitempty"`
	Window             int  `yaml:"window,omitempty"`

	// Header is <thead> markup; Columns is used when it is empty.
	Header  string         `yaml:"header,omitempty"`
	Columns []ColumnConfig `yaml:"columns,omitempty"`
}

// ColumnConfig declares a column without header markup.
type ColumnConfig struct {
	Name    string `yaml:"name"`
	Label   string `yaml:"label,omitempty"`
	Align   string `yaml:"align,omitempty"`
	Format  string `yaml:"format,omitempty"`
	Sort    bool   `yaml:"sort,omitempty"`
	Summary string `yaml:"summary,omitempty"`
	Hidden  bool   `yaml:"hidden,omitempty"`
}

// Default returns an empty configuration with defaults applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse parses configuration data. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Tables))
	for i, t := range c.Tables {
		if t.Name == "" {
			return fmt.Errorf("table #%d has no name", i+1)
		}
		if seen[t.Name] {
			return fmt.Errorf("table %q is declared twice", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}

// Table returns the table called name.
func (c *Config) Table(name string) (*TableConfig, error) {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
}

// Names returns the configured table names in file order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Tables))
	for _, t := range c.Tables {
		names = append(names, t.Name)
	}
	return names
}

// Formatter returns the value formatter for the configured locale.
func (c *Config) Formatter() *format.Formatter {
	return format.NewFormatterForLocale(c.Locale)
}

// Options converts the table declaration into controller options.
func (t TableConfig) Options() table.Options {
	opts := table.Options{
		Name:               t.Name,
		Title:              t.Title,
		Request:            t.RequestConfig.Copy(),
		Key:                t.Key,
		Meta:               t.Meta,
		Search:             t.Search,
		Filter:             t.Filter,
		Sort:               t.Sort,
		ShowFooter:         t.ShowFooter,
		ShowSettingsButton: t.ShowSettingsButton,
		Pagination:         t.Pagination,
		PaginationInfo:     t.PaginationInfo,
		PageSize:           t.PageSize,
		Window:             t.Window,
		Header:             t.Header,
	}
	for _, col := range t.Columns {
		opts.Columns = append(opts.Columns, columns.Descriptor{
			Name:     col.Name,
			Label:    col.Label,
			Align:    col.Align,
			Format:   col.Format,
			Summary:  col.Summary,
			Sortable: col.Sort,
			Visible:  !col.Hidden,
		})
	}
	return opts
}
