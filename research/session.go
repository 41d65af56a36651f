// Package research orchestrates a single investment-research session: news
// discovery, per-article insight extraction, and aggregation of the players
// and tickers seen across articles.
package research

import (
	"context"

	"market-scout/models"
	"market-scout/observability"

	"github.com/google/uuid"
)

// InsightExtractor extracts a structured insight record for one article URL.
// Implementations never fail; extraction problems come back as empty records.
type InsightExtractor interface {
	ExtractInsights(ctx context.Context, url string) models.ArticleInsight
}

// Session holds the state accumulated over one research run. It is an
// explicit value handed to each operation; nothing in this package keeps
// shared state between runs.
type Session struct {
	ID    string
	Query string

	Insights []models.ArticleInsight

	// Deduplicated, in first-seen order
	KeyPlayers []string
	Tickers    []string

	playerSeen map[string]struct{}
	tickerSeen map[string]struct{}
}

// NewSession creates an empty session for the given query
func NewSession(query string) *Session {
	s := &Session{
		ID:    uuid.NewString(),
		Query: query,
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.Insights = nil
	s.KeyPlayers = nil
	s.Tickers = nil
	s.playerSeen = make(map[string]struct{})
	s.tickerSeen = make(map[string]struct{})
}

// Add folds one extraction record into the session aggregates. Player names
// deduplicate by exact string match (case-sensitive). Ticker entries are
// normalized to their symbol; entries with no usable symbol are ignored.
func (s *Session) Add(rec models.ArticleInsight) {
	s.Insights = append(s.Insights, rec)

	for _, player := range rec.KeyPlayers {
		if _, seen := s.playerSeen[player]; seen {
			continue
		}
		s.playerSeen[player] = struct{}{}
		s.KeyPlayers = append(s.KeyPlayers, player)
	}

	for _, ref := range rec.Tickers {
		symbol := ref.Symbol()
		if symbol == "" {
			continue
		}
		if _, seen := s.tickerSeen[symbol]; seen {
			continue
		}
		s.tickerSeen[symbol] = struct{}{}
		s.Tickers = append(s.Tickers, symbol)
	}
}

// TickerAnalyses collects the per-ticker analyses carried by object-form
// ticker entries, last writer wins
func (s *Session) TickerAnalyses() map[string]string {
	analyses := make(map[string]string)
	for _, rec := range s.Insights {
		for _, ref := range rec.Tickers {
			if ref.Symbol() != "" && ref.Analysis() != "" {
				analyses[ref.Symbol()] = ref.Analysis()
			}
		}
	}
	return analyses
}

// FlatInsights returns up to limit insight strings flattened across articles,
// in article order. A limit <= 0 means all of them.
func (s *Session) FlatInsights(limit int) []string {
	var out []string
	for _, rec := range s.Insights {
		for _, point := range rec.Insights {
			out = append(out, point)
			if limit > 0 && len(out) == limit {
				return out
			}
		}
	}
	return out
}

// Pipeline runs sequential per-article extraction and aggregation
type Pipeline struct {
	extractor InsightExtractor

	// OnArticle, when set, is called before each article is analyzed
	OnArticle func(index int, url string)
}

// NewPipeline creates a pipeline over the given extractor
func NewPipeline(extractor InsightExtractor) *Pipeline {
	return &Pipeline{extractor: extractor}
}

// Process extracts insights for every usable article URL, in discovery order,
// and folds the results into the session. It returns false when no article
// carries a URL; in that case the session's previous aggregates are left
// untouched — the reset happens only once at least one URL is known to exist.
func (p *Pipeline) Process(ctx context.Context, sess *Session, articles []models.NewsArticle) bool {
	metrics := observability.GetMetrics()
	timer := metrics.NewTimer()

	var urls []string
	for _, article := range articles {
		if article.URL != "" {
			urls = append(urls, article.URL)
		}
	}

	if len(urls) == 0 {
		observability.WithSession(sess.ID).Warn("no URLs found in discovery results")
		timer.ObserveResearch("no_urls")
		return false
	}

	sess.reset()

	log := observability.WithSession(sess.ID)
	for i, url := range urls {
		if p.OnArticle != nil {
			p.OnArticle(i+1, url)
		}

		rec := p.extractor.ExtractInsights(ctx, url)
		if len(rec.Insights) == 0 && len(rec.KeyPlayers) == 0 && len(rec.Tickers) == 0 {
			metrics.RecordArticleAnalyzed("empty")
		} else {
			metrics.RecordArticleAnalyzed("ok")
		}

		sess.Add(rec)
		log.Info("article analyzed",
			"url", url,
			"insights", len(rec.Insights),
			"players", len(rec.KeyPlayers),
			"tickers", len(rec.Tickers))
	}

	timer.ObserveResearch("success")
	return true
}
