package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewAlphaVantageService(t *testing.T) {
	service := NewAlphaVantageService("test-api-key")
	if service == nil {
		t.Fatal("NewAlphaVantageService should not return nil")
	}
	if service.apiKey != "test-api-key" {
		t.Errorf("apiKey = %v, want 'test-api-key'", service.apiKey)
	}
	if service.httpClient == nil {
		t.Error("httpClient should not be nil")
	}
	if service.baseURL != "https://www.alphavantage.co/query" {
		t.Errorf("baseURL = %v, want 'https://www.alphavantage.co/query'", service.baseURL)
	}
}

func TestQuoteResponse_Deserialization(t *testing.T) {
	jsonResponse := `{
		"Global Quote": {
			"01. symbol": "AAPL",
			"02. open": "185.50",
			"03. high": "188.00",
			"04. low": "184.00",
			"05. price": "187.50",
			"06. volume": "50000000",
			"07. latest trading day": "2024-01-15",
			"08. previous close": "185.00",
			"09. change": "2.50",
			"10. change percent": "1.35%"
		}
	}`

	var resp QuoteResponse
	if err := json.Unmarshal([]byte(jsonResponse), &resp); err != nil {
		t.Fatalf("Failed to unmarshal QuoteResponse: %v", err)
	}

	if resp.GlobalQuote.Symbol != "AAPL" {
		t.Errorf("Symbol = %v, want 'AAPL'", resp.GlobalQuote.Symbol)
	}
	if resp.GlobalQuote.Price != "187.50" {
		t.Errorf("Price = %v, want '187.50'", resp.GlobalQuote.Price)
	}
}

func TestGetQuote_WithMockServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("function") != "GLOBAL_QUOTE" {
			t.Errorf("function = %s, want GLOBAL_QUOTE", query.Get("function"))
		}
		if query.Get("symbol") != "AAPL" {
			t.Errorf("symbol = %s, want AAPL", query.Get("symbol"))
		}
		if query.Get("apikey") != "test-key" {
			t.Error("missing or wrong API key")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Global Quote": {"01. symbol": "AAPL", "05. price": "187.50"}}`))
	}))
	defer server.Close()

	service := NewAlphaVantageService("test-key")
	service.baseURL = server.URL

	quote, err := service.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}

	if quote.Symbol != "AAPL" {
		t.Errorf("Symbol = %s, want AAPL", quote.Symbol)
	}
	if quote.Price.String() != "187.5" {
		t.Errorf("Price = %s, want 187.5", quote.Price.String())
	}
}

func TestGetQuote_MissingPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Global Quote": {}}`))
	}))
	defer server.Close()

	service := NewAlphaVantageService("test-key")
	service.baseURL = server.URL

	_, err := service.GetQuote(context.Background(), "NOPE")
	if !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("err = %v, want ErrPriceUnavailable", err)
	}
}

func TestQuotePrice_Sentinels(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		contains string
	}{
		{
			name: "price present",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"Global Quote": {"05. price": "242.10"}}`))
			},
			contains: "242.1",
		},
		{
			name: "price missing",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"Global Quote": {}}`))
			},
			contains: "Could not retrieve price for TSLA",
		},
		{
			name: "broken payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{{{`))
			},
			contains: "Error:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			service := NewAlphaVantageService("test-key")
			service.baseURL = server.URL
			service.httpClient = server.Client()

			got := service.QuotePrice(context.Background(), "TSLA")
			if !strings.Contains(got, tt.contains) {
				t.Errorf("QuotePrice = %q, want it to contain %q", got, tt.contains)
			}
		})
	}
}
