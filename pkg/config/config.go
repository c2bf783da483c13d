package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Environment variables read at startup.
const (
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvOpenAIModel   = "OPENAI_MODEL"
	EnvWeatherAPIKey = "OPENWEATHER_API_KEY"
	EnvNewsAPIKey    = "NEWS_API_KEY"
)

// Completion modes.
const (
	ModeCompletions = "completions"
	ModeChat        = "chat"
)

const (
	DefaultModel            = "gpt-3.5-turbo-instruct"
	DefaultMaxTokens        = 100
	DefaultWeatherBaseURL   = "https://api.openweathermap.org"
	DefaultGeocodeBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultGeocodeUserAgent = "realtime-chat-go/1.0"
	DefaultNewsBaseURL      = "https://newsapi.org"
	DefaultNewsCountry      = "us"
	DefaultNewsLimit        = 3
	DefaultHTTPTimeout      = 30 * time.Second
)

// Config holds all runtime configuration for the chatbot.
type Config struct {
	OpenAIAPIKey   string `yaml:"-"`
	OpenAIBaseURL  string `yaml:"openai_base_url" validate:"omitempty,url"`
	Model          string `yaml:"model" validate:"required"`
	CompletionMode string `yaml:"completion_mode" validate:"oneof=completions chat"`
	MaxTokens      int    `yaml:"max_tokens" validate:"min=1"`

	WeatherAPIKey    string `yaml:"-"`
	WeatherBaseURL   string `yaml:"weather_base_url" validate:"required,url"`
	GeocodeBaseURL   string `yaml:"geocode_base_url" validate:"required,url"`
	GeocodeUserAgent string `yaml:"geocode_user_agent" validate:"required"`

	NewsAPIKey  string `yaml:"-"`
	NewsBaseURL string `yaml:"news_base_url" validate:"required,url"`
	NewsCountry string `yaml:"news_country" validate:"required,len=2"`
	NewsLimit   int    `yaml:"news_limit" validate:"min=1,max=100"`

	HTTPTimeout time.Duration `yaml:"http_timeout" validate:"gte=0"`
	Verbose     bool          `yaml:"verbose"`
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		Model:            DefaultModel,
		CompletionMode:   ModeCompletions,
		MaxTokens:        DefaultMaxTokens,
		WeatherBaseURL:   DefaultWeatherBaseURL,
		GeocodeBaseURL:   DefaultGeocodeBaseURL,
		GeocodeUserAgent: DefaultGeocodeUserAgent,
		NewsBaseURL:      DefaultNewsBaseURL,
		NewsCountry:      DefaultNewsCountry,
		NewsLimit:        DefaultNewsLimit,
		HTTPTimeout:      DefaultHTTPTimeout,
	}
}

// ApplyEnv overlays credentials and OpenAI settings from the environment.
// Empty values leave the existing field untouched, except for API keys,
// which always come from the environment.
func ApplyEnv(cfg Config, getenv func(string) string) Config {
	cfg.OpenAIAPIKey = strings.TrimSpace(getenv(EnvOpenAIAPIKey))
	cfg.WeatherAPIKey = strings.TrimSpace(getenv(EnvWeatherAPIKey))
	cfg.NewsAPIKey = strings.TrimSpace(getenv(EnvNewsAPIKey))
	if v := strings.TrimSpace(getenv(EnvOpenAIBaseURL)); v != "" {
		cfg.OpenAIBaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvOpenAIModel)); v != "" {
		cfg.Model = v
	}
	return cfg
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	defaults := DefaultConfig()

	cfg.OpenAIAPIKey = strings.TrimSpace(cfg.OpenAIAPIKey)
	cfg.OpenAIBaseURL = strings.TrimSpace(cfg.OpenAIBaseURL)
	cfg.WeatherAPIKey = strings.TrimSpace(cfg.WeatherAPIKey)
	cfg.NewsAPIKey = strings.TrimSpace(cfg.NewsAPIKey)
	cfg.Model = orDefault(cfg.Model, defaults.Model)
	cfg.CompletionMode = strings.ToLower(orDefault(cfg.CompletionMode, defaults.CompletionMode))
	cfg.WeatherBaseURL = strings.TrimRight(orDefault(cfg.WeatherBaseURL, defaults.WeatherBaseURL), "/")
	cfg.GeocodeBaseURL = strings.TrimRight(orDefault(cfg.GeocodeBaseURL, defaults.GeocodeBaseURL), "/")
	cfg.GeocodeUserAgent = orDefault(cfg.GeocodeUserAgent, defaults.GeocodeUserAgent)
	cfg.NewsBaseURL = strings.TrimRight(orDefault(cfg.NewsBaseURL, defaults.NewsBaseURL), "/")
	cfg.NewsCountry = strings.ToLower(orDefault(cfg.NewsCountry, defaults.NewsCountry))

	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaults.MaxTokens
	}
	if cfg.NewsLimit <= 0 {
		cfg.NewsLimit = defaults.NewsLimit
	}
	if cfg.HTTPTimeout < 0 {
		cfg.HTTPTimeout = 0
	}
	return cfg
}

// Validate checks field constraints. Missing API keys are not an error;
// see MissingCredentials.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// MissingCredentials lists the environment variables whose API key is empty.
func (c Config) MissingCredentials() []string {
	var missing []string
	if c.OpenAIAPIKey == "" {
		missing = append(missing, EnvOpenAIAPIKey)
	}
	if c.WeatherAPIKey == "" {
		missing = append(missing, EnvWeatherAPIKey)
	}
	if c.NewsAPIKey == "" {
		missing = append(missing, EnvNewsAPIKey)
	}
	return missing
}

func orDefault(value, def string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	return value
}
