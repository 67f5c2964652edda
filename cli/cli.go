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

// Package cli parses the command line and runs the ajaxtable commands.
package cli

import (
	"github.com/jessevdk/go-flags"
)

// Option defines command line options.
type Option struct {
	LogLevel string `long:"log-level" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`

	Serve  ServeOption  `command:"serve" description:"serve the configured tables over HTTP"`
	Render RenderOption `command:"render" description:"render tables to static HTML files"`
}

// ServeOption are the options of the serve command.
type ServeOption struct {
	Config string `short:"c" long:"config" description:"configuration file"`
	Listen string `short:"l" long:"listen" description:"listen address, overrides the configuration"`
	Demo   bool   `long:"demo" description:"serve the demo API under /api/ and, without -c, its tables"`
}

// RenderOption are the options of the render command.
type RenderOption struct {
	Config string   `short:"c" long:"config" description:"configuration file" required:"true"`
	Tables []string `short:"t" long:"table" description:"table to render, may be repeated; all tables when omitted"`
	Output string   `short:"o" long:"output" description:"output directory" default:"."`
	Sort   string   `long:"sort" description:"sort field, -field for descending"`
	Page   int      `long:"page" description:"page to render" default:"1"`
	Query  string   `long:"q" description:"search text"`
	Filter string   `long:"filter" description:"filter passed to the data source"`
	Jobs   int      `short:"j" long:"jobs" description:"tables rendered concurrently" default:"4"`
}

// Parse returns the parsed options and the name of the selected command.
func Parse(args []string) (*Option, string, error) {
	opt := &Option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = "ajaxtable"

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, "", err
	}
	return opt, parser.Active.Name, nil
}

// IsHelp reports whether err is the result of printing the help message.
func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}
