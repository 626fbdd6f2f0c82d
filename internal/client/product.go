package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ProductClient looks up product aggregates in the product service.
type ProductClient struct {
	baseURL string
	http    *http.Client
}

// NewProductClient creates a client for the product service.
func NewProductClient(baseURL string, timeout time.Duration) *ProductClient {
	return &ProductClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// CountByUser fetches the number of products owned by a user.
func (c *ProductClient) CountByUser(ctx context.Context, userID int64) (int64, error) {
	url := fmt.Sprintf("%s/products/count?user_id=%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build count request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call product service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("product service returned status %d", resp.StatusCode)
	}

	var body struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode count response: %w", err)
	}
	return body.Count, nil
}
