package config

import "testing"

func TestHasNotion(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		faqDB  string
		want   bool
	}{
		{"both set", "key", "db", true},
		{"missing key", "", "db", false},
		{"missing database", "key", "", false},
		{"neither", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{NotionAPIKey: tt.apiKey, NotionFAQDatabaseID: tt.faqDB}
			if got := c.HasNotion(); got != tt.want {
				t.Errorf("HasNotion() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasGemini(t *testing.T) {
	if (Config{}).HasGemini() {
		t.Error("HasGemini() should be false without an API key")
	}
	if !(Config{GeminiAPIKey: "key"}).HasGemini() {
		t.Error("HasGemini() should be true with an API key")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("REDCAT_TEST_KEY", "value")
	if got := getEnv("REDCAT_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("getEnv = %q, want %q", got, "value")
	}
	if got := getEnv("REDCAT_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("getEnv = %q, want %q", got, "fallback")
	}
}
