// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pcte/helpdesk/lib/httpx"
)

// LoginResponse is the wire format for POST /api/auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	SessionID   string `json:"session_id"`
}

// Login authenticates with the backend and returns the issued token,
// role, and chat session ID.
func (client *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	request := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{
		Username: username,
		Password: password,
	}

	response, err := client.Post(ctx, "/api/auth/login", request)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("login: %w", StatusError(response))
	}

	var result LoginResponse
	if err := httpx.DecodeBody(response.Body, &result); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if result.AccessToken == "" {
		return nil, fmt.Errorf("login: empty access_token in response")
	}
	return &result, nil
}

// RegisterRequest is the JSON body for POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Register creates a new backend account. The backend assigns the
// Trainee role when none is given.
func (client *Client) Register(ctx context.Context, request RegisterRequest) error {
	response, err := client.Post(ctx, "/api/auth/register", request)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusCreated {
		return fmt.Errorf("register: %w", StatusError(response))
	}
	return nil
}
