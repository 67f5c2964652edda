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

package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxBodySize caps the amount of response data read from the source.
const maxBodySize = 32 << 20

// TransportError reports a failed fetch: the request could not be built or
// sent, or the source answered with a non-2xx status.
type TransportError struct {
	URL        string
	StatusCode int    // zero when no response was received
	Body       string // raw response text, if any
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("'%s' returned HTTP status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request to '%s' failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Detail is the text shown to the user in the error row: the response body
// when there is one, the error message otherwise.
func (e *TransportError) Detail() string {
	if e.Body != "" {
		return e.Body
	}
	return e.Error()
}

// Doer is the part of *http.Client used by Client.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client fetches raw response bodies.
type Client struct {
	cfg  RequestConfig
	http Doer
}

// NewClient returns a Client sending requests with cfg through doer. A nil
// doer uses http.DefaultClient.
func NewClient(cfg RequestConfig, doer Doer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{cfg: cfg.Copy(), http: doer}
}

// Config returns the request configuration of the client.
func (c *Client) Config() RequestConfig {
	return c.cfg.Copy()
}

// Fetch GETs url and returns the response body. Every failure is a
// *TransportError; context cancellation is reachable through errors.Is.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, &TransportError{Err: fmt.Errorf("no data source URL configured")}
	}
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req, err := NewRequest(ctx, c.cfg, url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer closeBody(resp)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
	return body, nil
}

func closeBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}
