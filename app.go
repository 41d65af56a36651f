package main

import (
	"context"
	"strings"

	"market-scout/config"
	"market-scout/media"
	"market-scout/models"
	"market-scout/observability"
	"market-scout/research"
	"market-scout/services"
	"market-scout/ui"
)

// App wires the console UI to the research pipeline and external services
type App struct {
	cfg      *config.Config
	console  *ui.Console
	openai   *services.OpenAIService
	quotes   *services.AlphaVantageService
	voice    *services.ElevenLabsService
	composer *media.Composer

	// quoteFn resolves a ticker symbol to its price sentinel string
	quoteFn services.QuoteFunc
}

// NewApp assembles the application from its services. The Alpha Vantage and
// ElevenLabs services may be nil when their keys are missing; the affected
// features degrade instead of failing at startup.
func NewApp(cfg *config.Config, console *ui.Console, openai *services.OpenAIService,
	quotes *services.AlphaVantageService, voice *services.ElevenLabsService,
	composer *media.Composer) *App {

	app := &App{
		cfg:      cfg,
		console:  console,
		openai:   openai,
		quotes:   quotes,
		voice:    voice,
		composer: composer,
	}
	app.quoteFn = func(ctx context.Context, symbol string) string {
		if app.quotes == nil {
			return "Could not retrieve price for " + symbol
		}
		return app.quotes.QuotePrice(ctx, symbol)
	}
	return app
}

// Run drives the main menu loop until the user exits or ctx is cancelled
func (a *App) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			a.goodbye()
			return
		default:
		}

		a.console.ClearScreen()
		a.console.Welcome()

		choice := a.console.Menu()
		if a.console.EOF() {
			a.goodbye()
			return
		}

		switch choice {
		case "1":
			a.doResearch(ctx)
		case "2":
			a.lookupTicker(ctx)
		case "3":
			a.console.ClearScreen()
			a.console.Notice("Feature coming soon: View saved research")
		case "4":
			a.highlightMode(ctx)
		case "5":
			a.goodbye()
			return
		default:
			a.console.Error("Invalid choice. Please try again.")
		}
	}
}

func (a *App) goodbye() {
	a.console.ClearScreen()
	a.console.Notice("Thank you for using the Investment Research Assistant!")
}

// discoverAndAnalyze runs the shared front half of research and highlight
// mode: news discovery, article rendering, and per-article extraction. It
// returns the session and whether any articles were analyzed.
func (a *App) discoverAndAnalyze(ctx context.Context, query string) (*research.Session, bool) {
	sess := research.NewSession(query)
	log := observability.WithSession(sess.ID)

	a.console.Info("\nSearching for news about: %s", query)

	var raw string
	var err error
	a.console.Working("Searching", func() {
		raw, err = a.openai.FindArticles(ctx, query)
	})
	if err != nil {
		log.Error("news discovery failed", "error", err)
		a.console.Error("Error: Could not retrieve news stories.")
		return nil, false
	}

	articles, err := models.ParseArticles(raw)
	if err != nil {
		log.Error("discovery response was not valid JSON", "error", err)
		a.console.Error("Error: Could not parse the JSON response.")
		return nil, false
	}

	a.console.RenderArticles(articles)

	pipeline := research.NewPipeline(a.openai)
	pipeline.OnArticle = func(index int, url string) {
		a.console.Info("\nAnalyzing article %d: %s", index, url)
	}

	a.console.Header("ANALYZING ARTICLES")
	if !pipeline.Process(ctx, sess, articles) {
		a.console.Error("No URLs found in the news data.")
		return nil, false
	}
	return sess, true
}

func (a *App) doResearch(ctx context.Context) {
	a.console.ClearScreen()
	a.console.Header("INVESTMENT RESEARCH")

	query := a.console.Prompt("\nEnter your investment-related question: ")
	if query == "" {
		a.console.Error("No query entered. Returning to main menu.")
		return
	}

	sess, ok := a.discoverAndAnalyze(ctx, query)
	if !ok {
		return
	}

	a.console.RenderInsights(sess)

	if a.console.Confirm("\nWould you like to see current stock prices for these tickers? (y/n): ") {
		a.showQuotes(ctx, sess)
	}
}

// showQuotes resolves and prints a quote line for every session ticker
func (a *App) showQuotes(ctx context.Context, sess *research.Session) {
	a.console.Header("CURRENT STOCK PRICES")

	if len(sess.Tickers) == 0 {
		a.console.Error("No stock tickers identified to look up prices.")
		return
	}

	analyses := sess.TickerAnalyses()
	for _, symbol := range sess.Tickers {
		info := a.resolveQuote(ctx, symbol)
		a.console.RenderQuoteLine(symbol, info, analyses)
	}
	a.console.Pause()
}

// resolveQuote asks the model for a narrated quote, backed by the price
// lookup tool. Failures come back as readable sentinel text, never an error
// surfaced to the menu loop.
func (a *App) resolveQuote(ctx context.Context, symbol string) string {
	a.console.Info("\nFetching stock information for: %s", symbol)

	var info string
	var err error
	a.console.Working("Retrieving data", func() {
		info, err = a.openai.ResolveTickerQuote(ctx, symbol, a.quoteFn)
	})
	if err != nil {
		observability.WithTicker(symbol).Error("quote resolution failed", "error", err)
		return "Could not retrieve price for " + symbol
	}
	return info
}

func (a *App) lookupTicker(ctx context.Context) {
	a.console.ClearScreen()
	a.console.Header("STOCK TICKER LOOKUP")

	ticker := a.console.Prompt("\nEnter stock ticker symbol (e.g., AAPL): ")
	if ticker == "" {
		a.console.Error("No ticker entered. Returning to main menu.")
		return
	}
	ticker = normalizeTicker(ticker)

	info := a.resolveQuote(ctx, ticker)

	a.console.Header("STOCK INFORMATION")
	a.console.RenderQuoteLine(ticker, info, nil)
	a.console.Pause()
}

func (a *App) highlightMode(ctx context.Context) {
	a.console.ClearScreen()
	a.console.Header("BRAIN ROT MODE")

	query := a.console.Prompt("\nEnter your investment-related question: ")
	if query == "" {
		a.console.Error("No query entered. Returning to main menu.")
		return
	}

	sess, ok := a.discoverAndAnalyze(ctx, query)
	if !ok {
		return
	}

	a.console.Info("\nGenerating brain rot explanation...")

	var narration string
	var err error
	a.console.Working("Generating", func() {
		narration, err = a.openai.GenerateHighlight(ctx, research.HighlightPrompt(sess))
	})
	if err != nil {
		observability.WithSession(sess.ID).Error("highlight generation failed", "error", err)
		a.console.Error("Error: Could not generate the explanation.")
		return
	}

	a.console.Header("BRAIN ROT EXPLANATION")
	a.console.Text("%s", narration)

	if a.console.Confirm("\nWould you like to create a brain rot video? (y/n): ") {
		a.createHighlightVideo(ctx, narration)
	}
	a.console.Pause()
}

// createHighlightVideo narrates the text and muxes it over the background
// video with the overlay image.
func (a *App) createHighlightVideo(ctx context.Context, narration string) {
	if a.voice == nil {
		a.console.Error("Error: ELEVEN_LABS_API_KEY not found. Cannot generate speech.")
		return
	}

	a.console.Info("\nConverting text to speech...")

	voices, err := a.voice.Voices(ctx)
	if err != nil {
		observability.WithError(err).Warn("voice catalog unavailable, using default voice")
	}
	voiceID := a.console.ChooseVoice(voices, a.cfg.ElevenLabs.DefaultVoiceID)

	var audioPath string
	a.console.Working("Converting", func() {
		audioPath, err = a.voice.Synthesize(ctx, narration, voiceID, a.cfg.Media.AudioOutput)
	})
	if err != nil {
		observability.WithError(err).Error("speech synthesis failed")
		a.console.Error("Failed to convert text to speech.")
		return
	}

	videoPath, found := a.composer.LocateBackgroundVideo()
	if found {
		a.console.Success("Found Subway Surfers video: %s", videoPath)
	} else {
		a.console.Notice("Note: Could not find a Subway Surfers video.")
		a.console.Notice("Please place a Subway Surfers video named '%s' in the same directory.", videoPath)
	}

	a.console.Info("\nCreating brain rot video...")

	a.console.Working("Creating video", func() {
		err = a.composer.Compose(ctx, audioPath, videoPath, a.cfg.Media.VideoOutput)
	})
	if err != nil {
		observability.WithError(err).Error("video composition failed")
		a.console.Error("Failed to create brain rot video.")
		return
	}

	a.console.Success("\nBrain rot video created successfully: %s", a.cfg.Media.VideoOutput)
	a.console.Notice("You can find it in the current directory.")
}

// normalizeTicker uppercases and strips whitespace from user ticker input
func normalizeTicker(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
