package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"redeem-base/internal/models"
)

// CardRegistryClient reads card records from the external UniVoucher API
type CardRegistryClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCardRegistryClient creates a card registry client. timeoutSeconds bounds
// every request; the registry is an external dependency and must not hang a
// redemption indefinitely.
func NewCardRegistryClient(baseURL string, timeoutSeconds int) *CardRegistryClient {
	if baseURL == "" {
		baseURL = "https://api.univoucher.com/v1"
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 15
	}
	return &CardRegistryClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

// FetchCard looks up a single card by id. A 404 from the registry maps to
// models.ErrCardNotFound; any other non-success status is an upstream error.
func (c *CardRegistryClient) FetchCard(ctx context.Context, cardID string) (*models.Card, error) {
	endpoint := fmt.Sprintf("%s/cards/single?id=%s", c.baseURL, url.QueryEscape(cardID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("card registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.ErrCardNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("card registry returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read card registry response: %w", err)
	}

	var card models.Card
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, fmt.Errorf("failed to parse card registry response: %w", err)
	}

	return &card, nil
}
