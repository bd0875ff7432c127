/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gobookpress/internal/config"
)

const testSecret = "test-secret"

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newMux(nil, testSecret))
	t.Cleanup(srv.Close)
	return srv
}

func testToken(t *testing.T) string {
	t.Helper()
	tok, err := signToken(testSecret, "test", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestTokenSignVerifyRoundTrip(t *testing.T) {
	tok, err := signToken(testSecret, "alice", time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	sub, err := verifyToken(testSecret, tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "alice" {
		t.Fatalf("subject = %q", sub)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	tok, err := signToken(testSecret, "bob", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := verifyToken(testSecret, tok); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	tok, err := signToken("other-secret", "bob", time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := verifyToken(testSecret, tok); err == nil {
		t.Fatalf("expected error for forged token")
	}
}

func TestAuthTokenEndpointIssuesToken(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Post(srv.URL+"/api/auth/token", "application/json", strings.NewReader(`{"subject":"cli"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	sub, err := verifyToken(testSecret, out.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if sub != "cli" {
		t.Fatalf("subject = %q", sub)
	}
}

func TestExtractEndpointRequiresAuth(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Post(srv.URL+"/api/extract", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestClientExtractRoundTrip(t *testing.T) {
	srv := testServer(t)
	c := NewClient(srv.URL, testToken(t))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	text := "# First\nOne paragraph.\n\n# Second\nAnother."
	book, err := c.Extract(ctx, "Remote Book", text)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if book.Title != "Remote Book" {
		t.Fatalf("title = %q", book.Title)
	}
	if len(book.Chapters) != 2 {
		t.Fatalf("chapters = %d, want 2", len(book.Chapters))
	}
	if book.Chapters[0].Title != "First" || book.Chapters[1].Title != "Second" {
		t.Fatalf("chapter titles = %q, %q", book.Chapters[0].Title, book.Chapters[1].Title)
	}
}

func TestClientNormalizesBaseURL(t *testing.T) {
	c := NewClient("http://example.test/", "")
	if c.BaseURL != "http://example.test" {
		t.Fatalf("BaseURL = %q", c.BaseURL)
	}
}

func TestNewClientFromConfigAppliesSettings(t *testing.T) {
	bc := config.BackendConfig{BaseURL: "https://backend.test/", TimeoutMs: 250, TLSInsecure: true}
	c := NewClientFromConfig(bc, "tok")
	if c.BaseURL != "https://backend.test" {
		t.Fatalf("BaseURL = %q", c.BaseURL)
	}
	if c.Token != "tok" {
		t.Fatalf("Token = %q", c.Token)
	}
	if c.client.Timeout != 250*time.Millisecond {
		t.Fatalf("timeout = %v", c.client.Timeout)
	}
	tr, ok := c.client.Transport.(*http.Transport)
	if !ok || tr.TLSClientConfig == nil || !tr.TLSClientConfig.InsecureSkipVerify {
		t.Fatalf("expected insecure TLS transport, got %#v", c.client.Transport)
	}
}

func TestNewClientFromConfigExtractRoundTrip(t *testing.T) {
	srv := testServer(t)
	bc := config.BackendConfig{BaseURL: srv.URL, TimeoutMs: 3000}
	c := NewClientFromConfig(bc, testToken(t))
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	book, err := c.Extract(ctx, "Config Wired", "# Only\n\nBody text.")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if book.Title != "Config Wired" || len(book.Chapters) != 1 {
		t.Fatalf("unexpected book: %+v", book)
	}
}

func TestClientSurfacesServerErrors(t *testing.T) {
	srv := testServer(t)
	// Invalid token means 401 from withAuth
	c := NewClient(srv.URL, "not-a-token")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := c.Extract(ctx, "x", "y"); err == nil {
		t.Fatalf("expected error from unauthorized request")
	}
}
