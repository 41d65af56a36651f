package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"market-scout/models"
	"market-scout/observability"

	"github.com/shopspring/decimal"
)

// ErrPriceUnavailable is returned when the quote response carries no price
// field, which Alpha Vantage uses for unknown symbols and exhausted quotas
var ErrPriceUnavailable = errors.New("price unavailable")

// AlphaVantageService handles communication with Alpha Vantage API
type AlphaVantageService struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewAlphaVantageService creates a new AlphaVantageService instance
func NewAlphaVantageService(apiKey string) *AlphaVantageService {
	return &AlphaVantageService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://www.alphavantage.co/query",
	}
}

// QuoteResponse represents a quote from Alpha Vantage
type QuoteResponse struct {
	GlobalQuote struct {
		Symbol        string `json:"01. symbol"`
		Open          string `json:"02. open"`
		High          string `json:"03. high"`
		Low           string `json:"04. low"`
		Price         string `json:"05. price"`
		Volume        string `json:"06. volume"`
		LatestDay     string `json:"07. latest trading day"`
		PrevClose     string `json:"08. previous close"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
}

// GetQuote returns the latest quote for a symbol
func (s *AlphaVantageService) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(BreakerAlphaVantage, "quote")
	timer := metrics.NewTimer()

	var quote *models.Quote
	err := WithRetry(ctx, "alphavantage_quote", DefaultRetryConfig, func() error {
		params := url.Values{}
		params.Set("function", "GLOBAL_QUOTE")
		params.Set("symbol", symbol)
		params.Set("apikey", s.apiKey)

		req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"?"+params.Encode(), nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to fetch quote: %w", err)
		}
		defer resp.Body.Close()

		var quoteResp QuoteResponse
		if err := json.NewDecoder(resp.Body).Decode(&quoteResp); err != nil {
			return fmt.Errorf("failed to decode quote: %w", err)
		}

		if quoteResp.GlobalQuote.Price == "" {
			// Unknown symbol, not a transient fault; don't burn retries on it
			return Permanent(fmt.Errorf("%w for %s", ErrPriceUnavailable, symbol))
		}

		price, err := decimal.NewFromString(quoteResp.GlobalQuote.Price)
		if err != nil {
			return fmt.Errorf("failed to parse price %q: %w", quoteResp.GlobalQuote.Price, err)
		}

		quote = &models.Quote{
			Symbol:    symbol,
			Price:     price,
			Timestamp: time.Now(),
		}
		return nil
	})

	timer.ObserveExternalAPI(BreakerAlphaVantage, "quote")
	if err != nil {
		if errors.Is(err, ErrPriceUnavailable) {
			metrics.RecordExternalAPIError(BreakerAlphaVantage, "quote", "not_found")
		} else {
			metrics.RecordExternalAPIError(BreakerAlphaVantage, "quote", categorizeAPIError(err))
		}
		return nil, err
	}

	return quote, nil
}

// QuotePrice resolves a ticker to a human-readable price string. It never
// fails: errors are folded into user-facing sentinel strings, matching the
// contract of the local tool the model can call.
func (s *AlphaVantageService) QuotePrice(ctx context.Context, symbol string) string {
	quote, err := s.GetQuote(ctx, symbol)
	if err != nil {
		if errors.Is(err, ErrPriceUnavailable) {
			return fmt.Sprintf("Could not retrieve price for %s", symbol)
		}
		return fmt.Sprintf("Error: %v", err)
	}
	return quote.Price.String()
}
