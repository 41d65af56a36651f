package models

import "testing"

func TestParseArticles(t *testing.T) {
	raw := `[
		{"title": "EV sales surge", "description": "Electric vehicle sales hit a record.", "url": "https://example.com/ev-sales"},
		{"title": "Battery breakthrough", "url": "https://example.com/battery"},
		{"title": "No link here"}
	]`

	articles, err := ParseArticles(raw)
	if err != nil {
		t.Fatalf("ParseArticles failed: %v", err)
	}

	if len(articles) != 3 {
		t.Fatalf("len(articles) = %d, want 3", len(articles))
	}
	if articles[0].Title != "EV sales surge" {
		t.Errorf("Title = %q, want 'EV sales surge'", articles[0].Title)
	}
	if articles[0].URL != "https://example.com/ev-sales" {
		t.Errorf("URL = %q", articles[0].URL)
	}
	if articles[1].Description != "" {
		t.Errorf("Description = %q, want empty", articles[1].Description)
	}
	if articles[2].URL != "" {
		t.Errorf("URL = %q, want empty", articles[2].URL)
	}
}

func TestParseArticles_LeadingWhitespace(t *testing.T) {
	raw := "\n  [{\"title\": \"t\", \"url\": \"https://example.com\"}]\n"

	articles, err := ParseArticles(raw)
	if err != nil {
		t.Fatalf("ParseArticles failed: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("len(articles) = %d, want 1", len(articles))
	}
}

func TestParseArticles_Malformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"markdown fenced", "```json\n[{\"title\": \"t\"}]\n```"},
		{"prose", "Here are the top 3 stories I found."},
		{"object not array", `{"title": "t", "url": "u"}`},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseArticles(tc.raw); err == nil {
				t.Errorf("ParseArticles(%q) should fail", tc.raw)
			}
		})
	}
}
