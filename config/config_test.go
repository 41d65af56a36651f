package config

import (
	"testing"
)

func TestLoad_MissingOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load should fail without OPENAI_API_KEY")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("OPENAI_MAX_TOKENS", "")
	t.Setenv("ALPHA_VANTAGE_API_KEY", "")
	t.Setenv("ELEVEN_LABS_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("Model = %v, want 'gpt-4o'", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %v, want 4096", cfg.OpenAI.MaxTokens)
	}
	if cfg.ElevenLabs.ModelID != "eleven_multilingual_v2" {
		t.Errorf("ModelID = %v, want 'eleven_multilingual_v2'", cfg.ElevenLabs.ModelID)
	}
	if cfg.ElevenLabs.DefaultVoiceID != "21m00Tcm4TlvDq8ikWAM" {
		t.Errorf("DefaultVoiceID = %v, want Rachel", cfg.ElevenLabs.DefaultVoiceID)
	}
	if len(cfg.Media.BackgroundCandidates) != 2 {
		t.Errorf("BackgroundCandidates = %v, want 2 entries", cfg.Media.BackgroundCandidates)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_MAX_TOKENS", "2048")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("Model = %v, want 'gpt-4o-mini'", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.MaxTokens != 2048 {
		t.Errorf("MaxTokens = %v, want 2048", cfg.OpenAI.MaxTokens)
	}
}

func TestLoad_InvalidMaxTokensFallsBack(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_MAX_TOKENS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OpenAI.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %v, want default 4096", cfg.OpenAI.MaxTokens)
	}
}

func TestHasAlphaVantage(t *testing.T) {
	cfg := &Config{}
	if cfg.HasAlphaVantage() {
		t.Error("HasAlphaVantage should be false without key")
	}

	cfg.AlphaVantage.APIKey = "key"
	if !cfg.HasAlphaVantage() {
		t.Error("HasAlphaVantage should be true with key")
	}
}

func TestHasElevenLabs(t *testing.T) {
	cfg := &Config{}
	if cfg.HasElevenLabs() {
		t.Error("HasElevenLabs should be false without key")
	}

	cfg.ElevenLabs.APIKey = "key"
	if !cfg.HasElevenLabs() {
		t.Error("HasElevenLabs should be true with key")
	}
}
