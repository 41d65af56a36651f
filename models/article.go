package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NewsArticle represents a single article reference returned by news discovery
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// ParseArticles decodes the raw discovery text into article references.
// The text comes from an LLM that is asked for bare JSON but may not comply,
// so this is a strict decode at an untrusted boundary: any deviation is an
// error for the caller to handle, never a partial result.
func ParseArticles(raw string) ([]NewsArticle, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty discovery response")
	}

	var articles []NewsArticle
	if err := json.Unmarshal([]byte(trimmed), &articles); err != nil {
		return nil, fmt.Errorf("failed to parse discovery response as JSON: %w", err)
	}

	return articles, nil
}
