// Package ratefeed fetches the day's PEN-per-USD reference rate from an
// external quote service.
package ratefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	portssvc "github.com/andeantrade/treasury_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Client calls the quote endpoint and caches the result for the rest of the
// day. Callers tolerate failures; conversions fall back to their applied rate
// and the aggregation falls back to the configured rate.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu     sync.Mutex
	cached domain.RatePair
}

var _ portssvc.RateProvider = (*Client)(nil)

// NewClient builds a rate feed client for the given quote endpoint.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// quoteResponse matches the published buy/sell quote document.
type quoteResponse struct {
	Buy  decimal.Decimal `json:"compra"`
	Sell decimal.Decimal `json:"venta"`
	Date string          `json:"fecha"`
}

// TodayRate returns the day's buy/sell pair, hitting the feed at most once per
// day per process.
func (c *Client) TodayRate(ctx context.Context) (domain.RatePair, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	c.mu.Lock()
	if c.cached.Date.Equal(today) && !c.cached.Sell.IsZero() {
		pair := c.cached
		c.mu.Unlock()
		return pair, nil
	}
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return domain.RatePair{}, fmt.Errorf("failed to build rate feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RatePair{}, fmt.Errorf("rate feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.RatePair{}, fmt.Errorf("rate feed returned status %s", resp.Status)
	}

	var quote quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return domain.RatePair{}, fmt.Errorf("failed to decode rate feed response: %w", err)
	}
	if quote.Buy.LessThanOrEqual(decimal.Zero) || quote.Sell.LessThanOrEqual(decimal.Zero) {
		return domain.RatePair{}, fmt.Errorf("rate feed returned non-positive quote")
	}

	pair := domain.RatePair{Buy: quote.Buy, Sell: quote.Sell, Date: today}

	c.mu.Lock()
	c.cached = pair
	c.mu.Unlock()

	return pair, nil
}
