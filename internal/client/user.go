// Package client contains the HTTP clients for cross-service enrichment
// calls. Every call is a single attempt with a hard timeout; callers are
// expected to absorb failures rather than propagate them.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// UserClient looks up users in the user service.
type UserClient struct {
	baseURL string
	http    *http.Client
}

// NewUserClient creates a client for the user service. The timeout bounds
// the whole call including connection setup and body read.
func NewUserClient(baseURL string, timeout time.Duration) *UserClient {
	return &UserClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// UserName fetches the display name of a user by id.
func (c *UserClient) UserName(ctx context.Context, id int64) (string, error) {
	url := fmt.Sprintf("%s/user/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build user request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call user service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("user service returned status %d", resp.StatusCode)
	}

	var body struct {
		User struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode user response: %w", err)
	}
	return body.User.Name, nil
}
