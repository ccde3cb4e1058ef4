// Package amfi downloads the raw NAV feed text published by AMFI.
package amfi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client defines the interface for fetching the raw NAV feed.
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	DownloadNavFeed(ctx context.Context, feedURL, authToken string) (string, error)
}

// FeedClient fetches the NAV feed text dump over HTTP.
type FeedClient struct {
	httpClient *http.Client
}

// NewFeedClient creates a new feed client with default HTTP settings.
func NewFeedClient() *FeedClient {
	return &FeedClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// DownloadNavFeed fetches the raw feed text from feedURL. authToken, when
// non-empty, is sent as a bearer token; the public AMFI endpoint needs none.
func (c *FeedClient) DownloadNavFeed(ctx context.Context, feedURL, authToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create feed request: %w", err)
	}

	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch nav feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nav feed returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read nav feed body: %w", err)
	}

	return string(data), nil
}
