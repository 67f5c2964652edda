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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/ajaxtable/core/config"
	"github.com/google/ajaxtable/core/server"
	"github.com/google/ajaxtable/demo"
)

const demoPrefix = "/api/"

// LoadServeConfig returns the configuration of the serve command. Without a
// configuration file, --demo serves the demo tables.
func LoadServeConfig(opt ServeOption) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case opt.Config != "":
		if cfg, err = config.Load(opt.Config); err != nil {
			return nil, err
		}
	case opt.Demo:
		cfg = config.Default()
	default:
		return nil, errors.New("serve needs a configuration file (-c) or --demo")
	}

	if opt.Listen != "" {
		cfg.Listen = opt.Listen
	}
	if opt.Config == "" && opt.Demo {
		cfg = demo.Config(demoBaseURL(cfg.Listen), cfg.Listen)
	}
	return cfg, nil
}

// demoBaseURL returns the URL of the demo API when served on listen.
func demoBaseURL(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return "http://" + listen + demoPrefix
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + demoPrefix
}

// Serve runs the HTTP server until ctx is cancelled.
func Serve(ctx context.Context, opt ServeOption, log *slog.Logger) error {
	cfg, err := LoadServeConfig(opt)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(cfg, log)
	if err != nil {
		return err
	}
	if opt.Demo {
		srv.Handle(demoPrefix, demo.NewAPI(demoPrefix, demo.Datasets(), log))
	}

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Listen, "tables", cfg.Names(), "demo", opt.Demo)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Info("server stopped")
	return nil
}
