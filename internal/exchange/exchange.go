// Package exchange fetches currency exchange rates from a
// frankfurter.app compatible API.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://api.frankfurter.app"

// DefaultTTL is how long a fetched rate is reused.
const DefaultTTL = time.Hour

// ErrUnavailable wraps every failure to get a rate out of the service.
// Callers treat it as an outage of an external dependency, not as bad
// input.
var ErrUnavailable = errors.New("exchange rate service unavailable")

// Default is the client used by the API. It is set up by Setup.
var Default *Client

// Setup initializes the default client. The base URL is read from
// EXCHANGE_API_URL when set.
func Setup() {
	Default = New(&http.Client{Timeout: 10 * time.Second}, DefaultTTL)
}

// Rate returns an exchange rate from the default client. Without a
// configured client every rate counts as unavailable.
func Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if Default == nil {
		return decimal.Decimal{}, fmt.Errorf("%w: no client configured", ErrUnavailable)
	}

	return Default.Rate(ctx, from, to)
}

// Client fetches exchange rates and caches them in memory.
//
// Rates move slowly compared to how often expenses are entered, a short
// lived cache keeps API usage friendly without serving stale rates for
// long.
type Client struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	ttl        time.Duration

	mu    sync.RWMutex
	rates map[string]cachedRate
}

type cachedRate struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

// New creates a Client. The base URL is read from EXCHANGE_API_URL when
// set.
func New(httpClient *http.Client, ttl time.Duration) *Client {
	baseURL := defaultBaseURL
	if url, ok := os.LookupEnv("EXCHANGE_API_URL"); ok && url != "" {
		baseURL = strings.TrimSuffix(url, "/")
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		ttl:        ttl,
		rates:      make(map[string]cachedRate),
	}
}

// Rate returns the exchange rate from one currency into another.
// Multiplying an amount in the from currency by the rate yields the
// amount in the to currency.
func (c *Client) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	if from == to {
		return decimal.NewFromInt(1), nil
	}

	key := from + "/" + to

	c.mu.RLock()
	cached, ok := c.rates[key]
	c.mu.RUnlock()

	if ok && time.Since(cached.fetchedAt) < c.ttl {
		return cached.rate, nil
	}

	rate, err := c.fetch(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	c.mu.Lock()
	c.rates[key] = cachedRate{rate: rate, fetchedAt: time.Now()}
	c.mu.Unlock()

	return rate, nil
}

type ratesResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (c *Client) fetch(ctx context.Context, from, to string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/latest?base=%s&symbols=%s", c.baseURL, from, to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: unexpected status %d for %s/%s", ErrUnavailable, resp.StatusCode, from, to)
	}

	var rates ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	rate, ok := rates.Rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s/%s in response", ErrUnavailable, from, to)
	}

	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: invalid rate %s for %s/%s", ErrUnavailable, rate, from, to)
	}

	return rate, nil
}
