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

// Package source fetches table data from a remote JSON endpoint.
package source

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// UserAgent is sent with every data request.
var UserAgent = "ajaxtable/1.0"

// RequestConfig is the configuration of the data request of one table.
// Supported configuration file formats: YAML.
type RequestConfig struct {
	// URL is the base URL of the data source. Query parameters already
	// present are preserved.
	URL string `yaml:"url"`

	// Username and Password enable basic authentication.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// BearerTokenFile is the path of a file holding a bearer token. It takes
	// priority over basic authentication.
	BearerTokenFile string `yaml:"bearer_token_file,omitempty"`

	// Headers are extra request header fields. "Host" overrides the request
	// host.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Timeout limits a single fetch. Zero means no limit beyond the context.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// Copy makes a full copy of the RequestConfig.
func (r RequestConfig) Copy() RequestConfig {
	if r.Headers == nil {
		return r
	}
	headers := make(map[string]string, len(r.Headers))
	for k, v := range r.Headers {
		headers[k] = v
	}
	r.Headers = headers
	return r
}

// NewRequest builds a GET request for url using the authentication and
// headers of cfg. cfg.URL is ignored; callers pass the fully built URL.
func NewRequest(ctx context.Context, cfg RequestConfig, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	if err := setAuthentication(req, cfg); err != nil {
		return nil, err
	}

	for k, v := range cfg.Headers {
		switch strings.ToLower(k) {
		case "host":
			req.Host = v
		default:
			req.Header.Set(k, v)
		}
	}
	return req, nil
}

func setAuthentication(req *http.Request, cfg RequestConfig) error {
	switch {
	case cfg.BearerTokenFile != "":
		return setBearerTokenAuth(req, cfg.BearerTokenFile)
	case cfg.Username != "" || cfg.Password != "":
		req.SetBasicAuth(cfg.Username, cfg.Password)
	}
	return nil
}

func setBearerTokenAuth(req *http.Request, tokenFile string) error {
	b, err := os.ReadFile(tokenFile)
	if err != nil {
		return fmt.Errorf("bearer token file: %w", err)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return fmt.Errorf("bearer token file %q is empty", tokenFile)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
