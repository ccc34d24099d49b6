// client.go
//
// Offline-first local data and sync worker for the FieldScope inspection app
// Copyright (c) 2026 FieldScope Software
//
// This file is part of inspection-worker.
// inspection-worker is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// inspection-worker is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with inspection-worker.
// If not, see <https://www.gnu.org/licenses/>.

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/fieldscope/inspection-worker/internal/config"
	"github.com/fieldscope/inspection-worker/internal/models"
	"gorm.io/gorm"
)

// ErrNoSession is returned when no login session is cached locally. The
// network is not touched in that case.
var ErrNoSession = errors.New("Please login again")

// ErrUnauthorized is returned when the origin rejects the bearer token.
// The cached session has already been cleared by the time callers see it.
var ErrUnauthorized = errors.New("unauthorized")

// Client is the authenticated HTTP client the sync routines use to reach
// the origin API. The bearer credential is read from the stored session
// on every call.
type Client struct {
	baseURL string
	db      *gorm.DB
	http    *http.Client
}

// New builds a Client against cfg.OriginURL + cfg.APIBasePath.
func New(cfg *config.Config, db *gorm.DB) *Client {
	return &Client{
		baseURL: cfg.OriginURL + cfg.APIBasePath,
		db:      db,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// Get issues an authenticated GET.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put issues an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	var user models.User
	if err := c.db.First(&user, "type = ?", models.UserRecordKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+user.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("HTTP error: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Stale credential; drop the session so the UI falls back to
		// the login route.
		if err := c.db.Where("type = ?", models.UserRecordKey).Delete(&models.User{}).Error; err != nil {
			log.Printf("Failed to clear session after 401: %v", err)
		}
		return nil, ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &errBody); err == nil && errBody.Message != "" {
			return nil, errors.New(errBody.Message)
		}
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	return json.RawMessage(raw), nil
}
