package main

import (
	"flag"
	"fmt"
	"strings"

	configpkg "github.com/minhyannv/realtime-chat-go/pkg/config"
)

// parseCLIConfig layers defaults, the optional YAML file, the environment
// and explicitly set flags, in that order.
func parseCLIConfig(args []string, getenv func(string) string) (configpkg.Config, error) {
	defaults := configpkg.DefaultConfig()

	fs := flag.NewFlagSet("realtime-chat", flag.ContinueOnError)
	configPath := fs.String("config", "", "Optional YAML config file")
	model := fs.String("model", defaults.Model, "Completion model (overrides OPENAI_MODEL)")
	mode := fs.String("mode", defaults.CompletionMode, "Completion API: completions or chat")
	maxTokens := fs.Int("max_tokens", defaults.MaxTokens, "Token budget for each reply")
	newsCountry := fs.String("news_country", defaults.NewsCountry, "Two-letter country code for headlines")
	newsLimit := fs.Int("news_limit", defaults.NewsLimit, "Number of headlines added to the prompt")
	timeout := fs.Duration("timeout", defaults.HTTPTimeout, "Per-request HTTP timeout (0 disables)")
	verbose := fs.Bool("verbose", defaults.Verbose, "Verbose debug logging to stderr")
	if err := fs.Parse(args); err != nil {
		return configpkg.Config{}, err
	}
	if fs.NArg() > 0 {
		return configpkg.Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := defaults
	if path := strings.TrimSpace(*configPath); path != "" {
		loaded, err := configpkg.LoadFile(path, cfg)
		if err != nil {
			return configpkg.Config{}, err
		}
		cfg = loaded
	}
	cfg = configpkg.ApplyEnv(cfg, getenv)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.Model = *model
		case "mode":
			cfg.CompletionMode = *mode
		case "max_tokens":
			cfg.MaxTokens = *maxTokens
		case "news_country":
			cfg.NewsCountry = *newsCountry
		case "news_limit":
			cfg.NewsLimit = *newsLimit
		case "timeout":
			cfg.HTTPTimeout = *timeout
		case "verbose":
			cfg.Verbose = *verbose
		}
	})

	cfg = configpkg.Normalize(cfg)
	if err := configpkg.Validate(cfg); err != nil {
		return configpkg.Config{}, err
	}
	return cfg, nil
}
