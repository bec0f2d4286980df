// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package api provides a typed HTTP client for the help-desk backend
// REST API. Feature wrappers (chat, ticket, metrics) build on the
// request helpers here rather than constructing requests themselves,
// so authentication and error extraction live in one place.
//
// The client mirrors the backend's wire format using its own request
// and response types; the backend itself is an external service and is
// never imported.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pcte/helpdesk/lib/httpx"
)

// TokenSource supplies the bearer token for outgoing requests. The
// session store implements this; an empty token means signed out and
// no Authorization header is attached.
type TokenSource interface {
	Token() string
}

// Client is a typed HTTP client for the help-desk backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
}

// New creates a Client for the backend at baseURL. The timeout applies
// to whole requests; there are no per-call deadlines beyond it.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
	}
}

// NewForTesting creates a Client with a custom transport. This is used
// by tests that redirect requests to an httptest.Server.
func NewForTesting(baseURL string, transport http.RoundTripper, tokens TokenSource) *Client {
	return &Client{
		httpClient: &http.Client{Transport: transport},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
	}
}

// BaseURL returns the backend base address this client was configured
// with.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// Get makes a GET request to the backend. The caller owns the response
// body.
func (client *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	client.setHeaders(request)
	return client.httpClient.Do(request)
}

// Post makes a POST request to the backend with a JSON body.
func (client *Client) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	return client.send(ctx, http.MethodPost, path, body)
}

// Put makes a PUT request to the backend with a JSON body.
func (client *Client) Put(ctx context.Context, path string, body any) (*http.Response, error) {
	return client.send(ctx, http.MethodPut, path, body)
}

// Delete makes a DELETE request to the backend.
func (client *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodDelete, client.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	client.setHeaders(request)
	return client.httpClient.Do(request)
}

func (client *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	client.setHeaders(request)
	return client.httpClient.Do(request)
}

func (client *Client) setHeaders(request *http.Request) {
	request.Header.Set("Content-Type", "application/json")
	if client.tokens != nil {
		if token := client.tokens.Token(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// StatusError converts a non-2xx response into an error carrying the
// status code and the backend's detail message. The response body is
// consumed.
func StatusError(response *http.Response) error {
	return fmt.Errorf("HTTP %d: %s", response.StatusCode, httpx.ErrorDetail(response.Body))
}
