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

package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sourcegraph/conc/pool"

	"github.com/google/ajaxtable/core/config"
	"github.com/google/ajaxtable/core/query"
	"github.com/google/ajaxtable/core/rendering"
	"github.com/google/ajaxtable/core/server"
	"github.com/google/ajaxtable/core/source"
	"github.com/google/ajaxtable/core/table"
)

// Render writes <output>/<table>.html for every selected table. Tables are
// loaded concurrently; a table whose load fails is still written, with its
// error row, and the failure is reported in the returned error.
func Render(ctx context.Context, opt RenderOption, log *slog.Logger) error {
	cfg, err := config.Load(opt.Config)
	if err != nil {
		return err
	}
	return RenderTables(ctx, cfg, opt, nil, log)
}

// RenderTables is Render with an already loaded configuration. A nil doer
// uses http.DefaultClient.
func RenderTables(ctx context.Context, cfg *config.Config, opt RenderOption, doer source.Doer, log *slog.Logger) error {
	names := opt.Tables
	if len(names) == 0 {
		names = cfg.Names()
	}
	for _, name := range names {
		if _, err := cfg.Table(name); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(opt.Output, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	renderer, err := rendering.NewTableRenderer()
	if err != nil {
		return err
	}
	formatter := cfg.Formatter()

	p := pool.New().WithContext(ctx).WithMaxGoroutines(max(opt.Jobs, 1))
	for _, name := range names {
		p.Go(func(ctx context.Context) error {
			tc, _ := cfg.Table(name)

			state := query.NewState()
			state.Path = server.TablePath
			state.Table = name
			state.SetSort(tc.Sort)
			state.Filter = tc.Filter
			state.Search = tc.Search
			if opt.Sort != "" {
				state.SetSort(opt.Sort)
			}
			if opt.Filter != "" {
				state.SetFilter(opt.Filter)
			}
			if opt.Query != "" {
				state.SetSearch(opt.Query)
			}
			state.SetPage(opt.Page)

			options := []table.Option{table.WithState(state), table.WithFormatter(formatter), table.WithLogger(log)}
			if doer != nil {
				options = append(options, table.WithHTTPClient(doer))
			}
			c := table.New(tc.Options(), options...)

			vm, loadErr := c.Load(ctx)
			if vm == nil {
				return loadErr
			}

			var buf bytes.Buffer
			if err := renderer.Render(&buf, vm); err != nil {
				return fmt.Errorf("failed to render table %q: %w", name, err)
			}
			path := filepath.Join(opt.Output, name+".html")
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			log.Info("table rendered", "table", name, "file", path, "rows", len(vm.Rows), "failed", loadErr != nil)
			return loadErr
		})
	}
	return p.Wait()
}
