package models

import "encoding/json"

// TickerRef is one ticker entry from an article extraction. The upstream
// model returns it in one of three shapes: a bare string, an object keyed by
// "ticker", or an object keyed by "symbol" (the object forms may carry an
// analysis). Normalization happens once here, at ingestion; callers only see
// Symbol and Analysis.
type TickerRef struct {
	symbol   string
	analysis string
}

// NewTickerRef builds a TickerRef directly (used by tests and fixtures)
func NewTickerRef(symbol, analysis string) TickerRef {
	return TickerRef{symbol: symbol, analysis: analysis}
}

// Symbol returns the normalized ticker symbol, or "" for unusable shapes
func (t TickerRef) Symbol() string {
	return t.symbol
}

// Analysis returns the model's analysis for this ticker, if any
func (t TickerRef) Analysis() string {
	return t.analysis
}

// UnmarshalJSON accepts the three upstream shapes. Any other shape decodes to
// a zero TickerRef rather than an error, so one odd entry cannot sink the
// whole extraction record.
func (t *TickerRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.symbol = s
		t.analysis = ""
		return nil
	}

	var obj struct {
		Ticker   string `json:"ticker"`
		Symbol   string `json:"symbol"`
		Analysis string `json:"analysis"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		*t = TickerRef{}
		return nil
	}

	switch {
	case obj.Ticker != "":
		t.symbol = obj.Ticker
	case obj.Symbol != "":
		t.symbol = obj.Symbol
	default:
		t.symbol = ""
	}
	t.analysis = obj.Analysis
	return nil
}

// MarshalJSON writes the canonical object form
func (t TickerRef) MarshalJSON() ([]byte, error) {
	if t.analysis == "" {
		return json.Marshal(t.symbol)
	}
	return json.Marshal(struct {
		Ticker   string `json:"ticker"`
		Analysis string `json:"analysis"`
	}{Ticker: t.symbol, Analysis: t.analysis})
}

// ArticleInsight is the structured extraction result for one article URL
type ArticleInsight struct {
	URL        string      `json:"url"`
	Insights   []string    `json:"insights"`
	KeyPlayers []string    `json:"key_players"`
	Tickers    []TickerRef `json:"tickers"`
}

// EmptyInsight returns the fallback record used when extraction fails.
// Extraction failures for one article must not abort the batch.
func EmptyInsight(url string) ArticleInsight {
	return ArticleInsight{
		URL:        url,
		Insights:   []string{},
		KeyPlayers: []string{},
		Tickers:    []TickerRef{},
	}
}

// ParseInsight decodes the raw extraction text for the given URL
func ParseInsight(url, raw string) (ArticleInsight, error) {
	var rec ArticleInsight
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return EmptyInsight(url), err
	}
	rec.URL = url
	if rec.Insights == nil {
		rec.Insights = []string{}
	}
	if rec.KeyPlayers == nil {
		rec.KeyPlayers = []string{}
	}
	if rec.Tickers == nil {
		rec.Tickers = []TickerRef{}
	}
	return rec, nil
}
