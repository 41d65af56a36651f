package ui

import (
	"strconv"

	"market-scout/services"
)

// ChooseVoice lists the catalog and reads the user's pick. Empty input,
// non-numeric input, and out-of-range choices all fall back to the default
// voice; an empty catalog skips the menu entirely.
func (c *Console) ChooseVoice(voices []services.Voice, defaultVoiceID string) string {
	if len(voices) == 0 {
		c.Notice("Using default voice (Rachel) as no voices could be retrieved.")
		return defaultVoiceID
	}

	c.Header("AVAILABLE VOICES")
	for i, voice := range voices {
		c.white.Fprintf(c.out, "%d. ", i+1)
		c.green.Fprintf(c.out, "%s ", voice.Name)
		c.cyan.Fprintf(c.out, "(%s)\n", voice.VoiceID)
	}
	c.rule(60)

	answer := c.Prompt("Select a voice (1-" + strconv.Itoa(len(voices)) + ") or press Enter for default: ")
	if answer == "" {
		c.Success("Using default voice (Rachel).")
		return defaultVoiceID
	}

	choice, err := strconv.Atoi(answer)
	if err != nil {
		c.Notice("Invalid input. Using default voice (Rachel).")
		return defaultVoiceID
	}
	if choice < 1 || choice > len(voices) {
		c.Notice("Invalid choice. Using default voice (Rachel).")
		return defaultVoiceID
	}

	selected := voices[choice-1]
	c.Success("Selected voice: %s", selected.Name)
	return selected.VoiceID
}
