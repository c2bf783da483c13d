package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("expected default config to validate, got: %v", err)
	}
}

func TestApplyEnvReadsCredentials(t *testing.T) {
	cfg := ApplyEnv(DefaultConfig(), envMap(map[string]string{
		EnvOpenAIAPIKey:  " sk-test ",
		EnvWeatherAPIKey: "weather",
		EnvNewsAPIKey:    "news",
		EnvOpenAIModel:   "gpt-4o-mini",
	}))

	if cfg.OpenAIAPIKey != "sk-test" {
		t.Fatalf("expected trimmed OpenAI key, got %q", cfg.OpenAIAPIKey)
	}
	if cfg.WeatherAPIKey != "weather" || cfg.NewsAPIKey != "news" {
		t.Fatalf("unexpected keys: weather=%q news=%q", cfg.WeatherAPIKey, cfg.NewsAPIKey)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Fatalf("expected model from env, got %q", cfg.Model)
	}
	if cfg.OpenAIBaseURL != "" {
		t.Fatalf("expected base URL to stay empty, got %q", cfg.OpenAIBaseURL)
	}
}

func TestMissingCredentials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WeatherAPIKey = "set"

	got := cfg.MissingCredentials()
	want := []string{EnvOpenAIAPIKey, EnvNewsAPIKey}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	cfg.OpenAIAPIKey = "a"
	cfg.NewsAPIKey = "b"
	if missing := cfg.MissingCredentials(); len(missing) != 0 {
		t.Fatalf("expected no missing credentials, got %v", missing)
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := Normalize(Config{
		CompletionMode: " CHAT ",
		NewsBaseURL:    "http://localhost:9000/",
		NewsCountry:    "GB",
		HTTPTimeout:    -time.Second,
	})

	if cfg.Model != DefaultModel {
		t.Fatalf("expected default model, got %q", cfg.Model)
	}
	if cfg.CompletionMode != ModeChat {
		t.Fatalf("expected chat mode, got %q", cfg.CompletionMode)
	}
	if cfg.MaxTokens != DefaultMaxTokens || cfg.NewsLimit != DefaultNewsLimit {
		t.Fatalf("expected default limits, got max_tokens=%d news_limit=%d", cfg.MaxTokens, cfg.NewsLimit)
	}
	if cfg.NewsBaseURL != "http://localhost:9000" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.NewsBaseURL)
	}
	if cfg.NewsCountry != "gb" {
		t.Fatalf("expected lowercase country, got %q", cfg.NewsCountry)
	}
	if cfg.HTTPTimeout != 0 {
		t.Fatalf("expected negative timeout clamped to 0, got %v", cfg.HTTPTimeout)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"mode", func(c *Config) { c.CompletionMode = "stream" }, "CompletionMode"},
		{"tokens", func(c *Config) { c.MaxTokens = 0 }, "MaxTokens"},
		{"country", func(c *Config) { c.NewsCountry = "usa" }, "NewsCountry"},
		{"url", func(c *Config) { c.WeatherBaseURL = "not a url" }, "WeatherBaseURL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Fatalf("expected error to mention %s, got: %v", tt.field, err)
			}
		})
	}
}

func TestLoadFileOverlaysValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.yaml")
	content := `model: gpt-4o-mini
completion_mode: chat
max_tokens: 256
news_limit: 5
http_timeout: 5s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path, DefaultConfig())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Model != "gpt-4o-mini" || cfg.CompletionMode != ModeChat {
		t.Fatalf("unexpected model/mode: %q %q", cfg.Model, cfg.CompletionMode)
	}
	if cfg.MaxTokens != 256 || cfg.NewsLimit != 5 {
		t.Fatalf("unexpected limits: %d %d", cfg.MaxTokens, cfg.NewsLimit)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.NewsCountry != DefaultNewsCountry {
		t.Fatalf("expected untouched country, got %q", cfg.NewsCountry)
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.yaml")
	if err := os.WriteFile(path, []byte("modle: typo\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadFile(path, DefaultConfig()); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestLoadFileEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path, DefaultConfig())
	if err != nil {
		t.Fatalf("expected empty file to be accepted, got: %v", err)
	}
	if cfg.Model != DefaultModel {
		t.Fatalf("expected defaults preserved, got %q", cfg.Model)
	}
}
