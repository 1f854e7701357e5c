package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const (
	frankfurterURL = "https://api.frankfurter.app/latest"
	rateCacheTTL   = 24 * time.Hour
)

// symbolToCode maps currency symbols stored on user profiles to ISO codes
// the rate API understands.
var symbolToCode = map[string]string{
	"₹":   "INR",
	"$":   "USD",
	"€":   "EUR",
	"£":   "GBP",
	"¥":   "JPY",
	"A$":  "AUD",
	"C$":  "CAD",
	"CHF": "CHF",
	"元":   "CNY",
	"₩":   "KRW",
}

// CurrencyCode resolves a currency symbol to its ISO code. Values that are
// not known symbols are assumed to already be codes.
func CurrencyCode(currency string) string {
	if code, ok := symbolToCode[currency]; ok {
		return code
	}
	return currency
}

// ExchangeRateService fetches currency exchange rates from the Frankfurter
// API, caching each pair in Redis for a day. Any failure falls back to a
// rate of 1.0 so a flaky rate provider never breaks expense recording.
type ExchangeRateService struct {
	cache  *RedisCache
	client *http.Client
}

// NewExchangeRateService creates an ExchangeRateService. The cache may be
// nil, in which case every lookup goes to the API.
func NewExchangeRateService(cache *RedisCache) *ExchangeRateService {
	return &ExchangeRateService{
		cache:  cache,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// GetExchangeRate returns the rate converting from one currency to another.
func (s *ExchangeRateService) GetExchangeRate(ctx context.Context, from, to string) decimal.Decimal {
	fromCode := CurrencyCode(from)
	toCode := CurrencyCode(to)
	if fromCode == toCode {
		return decimal.NewFromInt(1)
	}

	fetch := func() (string, error) {
		rate, err := s.fetchRate(ctx, fromCode, toCode)
		if err != nil {
			return "", err
		}
		return rate.String(), nil
	}

	var rateStr string
	var err error
	if s.cache != nil {
		key := fmt.Sprintf("xr_%s_%s", fromCode, toCode)
		rateStr, err = GetOrSet(s.cache, ctx, key, rateCacheTTL, fetch)
	} else {
		rateStr, err = fetch()
	}
	if err != nil {
		slog.Warn("Exchange rate lookup failed, falling back to 1.0",
			"from", fromCode, "to", toCode, "error", err)
		return decimal.NewFromInt(1)
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		slog.Warn("Invalid cached exchange rate, falling back to 1.0",
			"from", fromCode, "to", toCode, "value", rateStr)
		return decimal.NewFromInt(1)
	}
	return rate
}

func (s *ExchangeRateService) fetchRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s?from=%s&to=%s", frankfurterURL, fromCode, toCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read rate response: %w", err)
	}
	return parseRateResponse(body, toCode)
}

// parseRateResponse extracts one rate from a Frankfurter response body. Rates
// are decoded as json.Number and fed straight into decimal so the value never
// passes through a float64.
func parseRateResponse(body []byte, toCode string) (decimal.Decimal, error) {
	var payload struct {
		Rates map[string]json.Number `json:"rates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rate response: %w", err)
	}

	raw, ok := payload.Rates[toCode]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate for %s missing in response", toCode)
	}
	rate, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate value %q for %s", raw.String(), toCode)
	}
	return rate, nil
}
