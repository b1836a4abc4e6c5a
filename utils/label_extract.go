package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"vinopack/models"
)

// LabelExtractClient talks to the external pallet-label extraction service.
// When no URL is configured the endpoint stays disabled.
type LabelExtractClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewLabelExtractClient(baseURL string) *LabelExtractClient {
	return &LabelExtractClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *LabelExtractClient) Configured() bool {
	return c != nil && c.BaseURL != ""
}

// Extract posts a label photo and returns the suggested pallet fields.
func (c *LabelExtractClient) Extract(ctx context.Context, image []byte, contentType string) (*models.LabelGuess, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("label extraction service not configured")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(image))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("label extraction request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("label extraction service returned status %d", resp.StatusCode)
	}

	var guess models.LabelGuess
	if err := json.NewDecoder(resp.Body).Decode(&guess); err != nil {
		return nil, fmt.Errorf("invalid label extraction response: %v", err)
	}
	return &guess, nil
}
