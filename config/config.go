package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// OpenAI configuration
	OpenAI OpenAIConfig

	// External service configurations
	AlphaVantage AlphaVantageConfig
	ElevenLabs   ElevenLabsConfig

	// Media asset configuration
	Media MediaConfig
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// AlphaVantageConfig holds Alpha Vantage API configuration
type AlphaVantageConfig struct {
	APIKey string
}

// ElevenLabsConfig holds ElevenLabs text-to-speech configuration
type ElevenLabsConfig struct {
	APIKey         string
	ModelID        string
	DefaultVoiceID string
}

// MediaConfig holds the conventional filenames for media assembly
type MediaConfig struct {
	BackgroundCandidates []string
	OverlayImage         string
	AudioOutput          string
	VideoOutput          string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAI: OpenAIConfig{
			APIKey:    os.Getenv("OPENAI_API_KEY"),
			Model:     getEnvString("OPENAI_MODEL", "gpt-4o"),
			MaxTokens: getEnvInt("OPENAI_MAX_TOKENS", 4096),
		},
		AlphaVantage: AlphaVantageConfig{
			APIKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
		},
		ElevenLabs: ElevenLabsConfig{
			APIKey:  os.Getenv("ELEVEN_LABS_API_KEY"),
			ModelID: getEnvString("ELEVEN_LABS_MODEL_ID", "eleven_multilingual_v2"),
			// Rachel, the stock ElevenLabs voice
			DefaultVoiceID: getEnvString("ELEVEN_LABS_DEFAULT_VOICE", "21m00Tcm4TlvDq8ikWAM"),
		},
		Media: MediaConfig{
			BackgroundCandidates: []string{"subway_surfers.mp4", "subway_surfers.mp4.mp4"},
			OverlayImage:         "peter.png",
			AudioOutput:          "speech.mp3",
			VideoOutput:          "brain_rot_result.mp4",
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.OpenAI.MaxTokens <= 0 {
		return fmt.Errorf("OPENAI_MAX_TOKENS must be positive, got %d", c.OpenAI.MaxTokens)
	}
	return nil
}

// HasAlphaVantage returns true if Alpha Vantage configuration is available
func (c *Config) HasAlphaVantage() bool {
	return c.AlphaVantage.APIKey != ""
}

// HasElevenLabs returns true if ElevenLabs configuration is available
func (c *Config) HasElevenLabs() bool {
	return c.ElevenLabs.APIKey != ""
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return &Config{
		OpenAI: OpenAIConfig{
			APIKey:    "",
			Model:     "gpt-4o",
			MaxTokens: 4096,
		},
		AlphaVantage: AlphaVantageConfig{
			APIKey: "",
		},
		ElevenLabs: ElevenLabsConfig{
			APIKey:         "",
			ModelID:        "eleven_multilingual_v2",
			DefaultVoiceID: "21m00Tcm4TlvDq8ikWAM",
		},
		Media: MediaConfig{
			BackgroundCandidates: []string{"subway_surfers.mp4", "subway_surfers.mp4.mp4"},
			OverlayImage:         "peter.png",
			AudioOutput:          "speech.mp3",
			VideoOutput:          "brain_rot_result.mp4",
		},
	}
}
