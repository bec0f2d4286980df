// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewForTesting(server.URL, http.DefaultTransport, staticToken("tok-1"))
	response, err := client.Post(context.Background(), "/api/chat", map[string]string{"message": "hi"})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	response.Body.Close()

	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}

func TestSignedOutOmitsAuthorization(t *testing.T) {
	var gotAuth string
	sawAuth := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewForTesting(server.URL, http.DefaultTransport, staticToken(""))
	response, err := client.Get(context.Background(), "/api/metrics/summary")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	response.Body.Close()

	if sawAuth {
		t.Errorf("Authorization header sent while signed out: %q", gotAuth)
	}
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"access_token":"tok-xyz","role":"Help Desk Analyst","session_id":"sess-42"}`))
	}))
	defer server.Close()

	client := NewForTesting(server.URL, http.DefaultTransport, nil)
	result, err := client.Login(context.Background(), "analyst1", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.AccessToken != "tok-xyz" || result.Role != "Help Desk Analyst" || result.SessionID != "sess-42" {
		t.Errorf("Login = %+v", result)
	}
}

func TestLoginRejectedSurfacesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	}))
	defer server.Close()

	client := NewForTesting(server.URL, http.DefaultTransport, nil)
	_, err := client.Login(context.Background(), "analyst1", "wrong")
	if err == nil {
		t.Fatal("Login with bad credentials = nil error")
	}
	want := "login: HTTP 401: Incorrect username or password"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err, want)
	}
}

func TestLoginEmptyTokenFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"role":"Trainee"}`))
	}))
	defer server.Close()

	client := NewForTesting(server.URL, http.DefaultTransport, nil)
	if _, err := client.Login(context.Background(), "u", "p"); err == nil {
		t.Fatal("Login with empty access_token = nil error")
	}
}

func TestRegister(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/register" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewForTesting(server.URL, http.DefaultTransport, nil)
	err := client.Register(context.Background(), RegisterRequest{Username: "new", Password: "pw", Role: "Trainee"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
}
