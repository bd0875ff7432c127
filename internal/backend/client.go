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
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gobookpress/internal/config"
	"gobookpress/internal/domain"
)

// Client is a minimal HTTP client for the thin backend API.
// It covers the sync and extraction operations used by the CLI under a feature flag.
type Client struct {
	BaseURL string
	Token   string // bearer token
	client  *http.Client
}

// NewClient creates a new backend client. baseURL may include a trailing slash; it will be normalized.
func NewClient(baseURL string, token string) *Client {
	b := strings.TrimRight(baseURL, "/")
	return &Client{
		BaseURL: b,
		Token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientFromConfig builds a client from the app configuration plus the
// keyring-loaded token, applying the configured timeout and TLS policy.
func NewClientFromConfig(bc config.BackendConfig, token string) *Client {
	c := NewClient(bc.BaseURL, token)
	c.SetTimeout(bc.Timeout())
	if bc.TLSInsecure {
		c.client.Transport = &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}}
	}
	return c
}

// SetTimeout overrides the default request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.client.Timeout = d
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, dest any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return err
	}
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server %s %s: %s", method, u.Path, resp.Status)
	}
	if dest == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(dest)
}

// Project is a minimal projection for listing.
type Project struct {
	ID        int64     `json:"id"`
	StableID  string    `json:"stable_id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
}

// ListProjects returns available projects (read-only).
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var list []Project
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// BookEnvelope matches the server response for the latest book snapshot of a project.
type BookEnvelope struct {
	ProjectID int64              `json:"project_id"`
	Version   int64              `json:"version"`
	CreatedAt string             `json:"created_at"`
	Book      domain.BookContent `json:"book"`
}

// GetBook fetches the latest book snapshot for a project.
func (c *Client) GetBook(ctx context.Context, projectID int64) (*BookEnvelope, error) {
	var env BookEnvelope
	path := fmt.Sprintf("/api/projects/%d/book", projectID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// PushBook uploads a book snapshot for a project, returning the new version.
func (c *Client) PushBook(ctx context.Context, projectID int64, book domain.BookContent) (int64, error) {
	var out struct {
		Version int64 `json:"version"`
	}
	path := fmt.Sprintf("/api/projects/%d/book", projectID)
	if err := c.doJSON(ctx, http.MethodPost, path, book, &out); err != nil {
		return 0, err
	}
	return out.Version, nil
}

// Extract sends a raw manuscript to the hosted extraction endpoint and
// receives structured chapters back.
func (c *Client) Extract(ctx context.Context, title, text string) (domain.BookContent, error) {
	req := map[string]string{"title": title, "text": text}
	var book domain.BookContent
	if err := c.doJSON(ctx, http.MethodPost, "/api/extract", req, &book); err != nil {
		return domain.BookContent{}, err
	}
	return book, nil
}
