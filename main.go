package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"market-scout/config"
	"market-scout/media"
	"market-scout/observability"
	"market-scout/services"
	"market-scout/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		observability.Info("no .env file found, using environment variables")
	}

	observability.InitLogger(false)

	cfg, err := config.Load()
	if err != nil {
		observability.Fatal("configuration error", "error", err)
	}

	openaiService, err := services.NewOpenAIService(cfg)
	if err != nil {
		observability.Fatal("failed to initialize OpenAI service", "error", err)
	}

	// Optional services degrade gracefully when their keys are missing
	var quoteService *services.AlphaVantageService
	if cfg.HasAlphaVantage() {
		quoteService = services.NewAlphaVantageService(cfg.AlphaVantage.APIKey)
	} else {
		observability.Warn("ALPHA_VANTAGE_API_KEY not set, stock price lookups will be unavailable")
	}

	var voiceService *services.ElevenLabsService
	if cfg.HasElevenLabs() {
		voiceService = services.NewElevenLabsService(cfg.ElevenLabs.APIKey, cfg.ElevenLabs.ModelID)
	} else {
		observability.Warn("ELEVEN_LABS_API_KEY not set, voice narration will be unavailable")
	}

	composer := media.NewComposer(cfg.Media, media.Detect())

	console := ui.NewStdConsole()

	// The menu loop blocks on stdin reads, so an interrupt can't wait for the
	// next loop iteration
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		console.Notice("\nProgram terminated by user. Goodbye!")
		os.Exit(0)
	}()

	app := NewApp(cfg, console, openaiService, quoteService, voiceService, composer)
	app.Run(context.Background())
}
