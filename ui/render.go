package ui

import (
	"fmt"

	"market-scout/models"
	"market-scout/research"
)

// RenderArticles lists the discovered articles with truncated descriptions
func (c *Console) RenderArticles(articles []models.NewsArticle) {
	c.Header("NEWS ARTICLES FOUND")
	n := 0
	for _, article := range articles {
		if article.URL == "" {
			continue
		}
		n++
		c.green.Fprintf(c.out, "%d. ", n)
		c.white.Fprintln(c.out, article.Title)
		c.cyan.Fprintf(c.out, "   %s\n", article.URL)
		if article.Description != "" {
			c.yellow.Fprintf(c.out, "   %s...\n", truncate(article.Description, 100))
		}
		fmt.Fprintln(c.out)
	}
}

// RenderInsights prints the per-article insight records followed by the
// session-wide player and ticker summary.
func (c *Console) RenderInsights(sess *research.Session) {
	c.Header("KEY INSIGHTS SUMMARY")

	for i, rec := range sess.Insights {
		c.cyan.Fprintf(c.out, "\nArticle %d: ", i+1)
		c.white.Fprintln(c.out, rec.URL)
		c.yellow.Fprintln(c.out, "Key Insights:")
		for _, point := range rec.Insights {
			c.bullet(point)
		}

		if len(rec.KeyPlayers) > 0 {
			c.yellow.Fprintln(c.out, "\nKey Players:")
			for _, player := range rec.KeyPlayers {
				c.bullet(player)
			}
		}

		if len(rec.Tickers) > 0 {
			c.yellow.Fprintln(c.out, "\nRelated Tickers:")
			for _, ref := range rec.Tickers {
				if ref.Symbol() != "" {
					c.bullet(ref.Symbol())
				}
			}
		}
	}

	c.Header("OVERALL SUMMARY")
	c.yellow.Fprintln(c.out, "\nAll Key Players Identified:")
	for _, player := range sess.KeyPlayers {
		c.bullet(player)
	}
	c.yellow.Fprintln(c.out, "\nAll Stock Tickers Identified:")
	for _, symbol := range sess.Tickers {
		c.bullet(symbol)
	}
	c.rule(60)
}

// truncate cuts s to at most n runes, never splitting a multibyte character
func truncate(s string, n int) string {
	if runes := []rune(s); len(runes) > n {
		return string(runes[:n])
	}
	return s
}

func (c *Console) bullet(text string) {
	c.green.Fprint(c.out, "• ")
	c.white.Fprintln(c.out, text)
}

// RenderQuoteLine prints one ticker's quote info plus its analysis when the
// session carried one.
func (c *Console) RenderQuoteLine(symbol, info string, analyses map[string]string) {
	c.green.Fprintf(c.out, "[%s] ", symbol)
	c.white.Fprintln(c.out, info)
	if analysis, ok := analyses[symbol]; ok {
		c.yellow.Fprint(c.out, "Analysis: ")
		c.white.Fprintln(c.out, analysis)
	}
}
