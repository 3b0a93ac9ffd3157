// Package rates resolves ARS/USD exchange rates from the public
// @fawazahmed0 currency CDN.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/financeflow/backend/internal/core/ports/services"
	"github.com/financeflow/backend/internal/middleware"
	"github.com/shopspring/decimal"
)

const defaultTimeout = 10 * time.Second

// Client fetches the USD-based rate table for a date. A dated snapshot that
// does not exist yet (today, weekends) falls back to the "latest" snapshot;
// any remaining failure degrades to a zero rate so callers can carry the
// unconvertible marker instead of failing the request.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ portssvc.RateLookupSvc = (*Client)(nil)

// NewClient creates a rate lookup client against the given CDN base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type ratesPayload struct {
	USD map[string]float64 `json:"usd"`
}

// GetRate returns how many ARS one USD buys on the given ISO date
// (YYYY-MM-DD), or zero when no snapshot can be fetched.
func (c *Client) GetRate(ctx context.Context, date string) decimal.Decimal {
	logger := middleware.GetLoggerFromCtx(ctx)

	rate, err := c.fetch(ctx, fmt.Sprintf("%s@%s/v1/currencies/usd.json", c.baseURL, date))
	if err == nil {
		return rate
	}
	logger.Warn("Dated rate snapshot unavailable, falling back to latest",
		slog.String("date", date), slog.String("error", err.Error()))

	rate, err = c.fetch(ctx, fmt.Sprintf("%s@latest/v1/currencies/usd.json", c.baseURL))
	if err == nil {
		return rate
	}
	logger.Error("Rate lookup failed, degrading to zero rate",
		slog.String("date", date), slog.String("error", err.Error()))
	return decimal.Zero
}

func (c *Client) fetch(ctx context.Context, url string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate endpoint returned status %d", resp.StatusCode)
	}

	var payload ratesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rate payload: %w", err)
	}

	ars, ok := payload.USD["ars"]
	if !ok || ars <= 0 {
		return decimal.Zero, fmt.Errorf("rate payload missing ars entry")
	}
	return decimal.NewFromFloat(ars), nil
}
