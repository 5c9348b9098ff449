// Package fplapi is the source adapter for the public fantasy football API.
// It owns the HTTP transport, the raw payload shapes, and the schema checks
// that gate every payload before mapping. All failures come back as typed
// *FetchError or *ValidationError values, never as panics.
package fplapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/config"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Client fetches snapshots from the fantasy football API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a new API client.
func NewClient(cfg *config.FPLConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  userAgent,
	}
}

// GetBootstrap fetches the season snapshot: events, phases, teams, elements.
func (c *Client) GetBootstrap(ctx context.Context) (*RawBootstrap, error) {
	endpoint := "bootstrap-static/"

	var payload RawBootstrap
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if err := validateBootstrap(endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetFixtures fetches the fixtures of one event.
func (c *Client) GetFixtures(ctx context.Context, eventID int) ([]RawFixture, error) {
	endpoint := fmt.Sprintf("fixtures/?event=%d", eventID)

	var payload []RawFixture
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if err := validateFixtures(endpoint, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetAllFixtures fetches the full season fixture list.
func (c *Client) GetAllFixtures(ctx context.Context) ([]RawFixture, error) {
	endpoint := "fixtures/"

	var payload []RawFixture
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if err := validateFixtures(endpoint, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetLive fetches live element stats for one event.
func (c *Client) GetLive(ctx context.Context, eventID int) (*RawLive, error) {
	endpoint := fmt.Sprintf("event/%d/live/", eventID)

	var payload RawLive
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if err := validateLive(endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetLeagueStandings fetches one page of a classic league standing.
func (c *Client) GetLeagueStandings(ctx context.Context, leagueID, page int) (*RawStandings, error) {
	endpoint := fmt.Sprintf("leagues-classic/%d/standings/?page_standings=%d", leagueID, page)

	var payload RawStandings
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if err := validateStandings(endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Err: fmt.Errorf("failed to make request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ValidationError{Endpoint: endpoint, Reason: "malformed JSON payload: " + err.Error()}
	}
	return nil
}
