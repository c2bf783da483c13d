// Package realtime fetches the live data (weather, news) spliced into chat prompts.
package realtime

import (
	"context"
	"net/http"
	"strings"

	configpkg "github.com/minhyannv/realtime-chat-go/pkg/config"
	loggerpkg "github.com/minhyannv/realtime-chat-go/pkg/logger"
)

// Source names.
const (
	NameWeather = "weather"
	NameNews    = "news"
)

// Source is one kind of real-time data. Fetch never fails: errors are
// logged and replaced with a fixed human-readable sentence.
type Source interface {
	Name() string
	Keyword() string
	Question() string
	Fetch(ctx context.Context, answer string) string
}

// Registry holds sources in match order.
type Registry struct {
	sources []Source
	byName  map[string]Source
	logger  loggerpkg.Logger
	verbose bool
}

// NewRegistry builds a registry from sources; earlier sources win ties.
func NewRegistry(logger loggerpkg.Logger, verbose bool, sources ...Source) *Registry {
	if logger == nil {
		logger = loggerpkg.NopLogger{}
	}
	r := &Registry{
		byName:  make(map[string]Source),
		logger:  logger,
		verbose: verbose,
	}
	for _, s := range sources {
		r.register(s)
	}
	return r
}

// New builds the default weather and news registry from cfg.
func New(cfg configpkg.Config, logger loggerpkg.Logger) *Registry {
	if logger == nil {
		logger = loggerpkg.NopLogger{}
	}
	client := &http.Client{Timeout: cfg.HTTPTimeout}

	weather := &WeatherSource{
		Geocoder: &NominatimGeocoder{
			BaseURL:   cfg.GeocodeBaseURL,
			UserAgent: cfg.GeocodeUserAgent,
			HTTP:      client,
		},
		BaseURL: cfg.WeatherBaseURL,
		APIKey:  cfg.WeatherAPIKey,
		HTTP:    client,
		Logger:  loggerpkg.Named(logger, NameWeather),
	}
	news := &NewsSource{
		BaseURL: cfg.NewsBaseURL,
		APIKey:  cfg.NewsAPIKey,
		Country: cfg.NewsCountry,
		Limit:   cfg.NewsLimit,
		HTTP:    client,
		Logger:  loggerpkg.Named(logger, NameNews),
	}
	return NewRegistry(logger, cfg.Verbose, weather, news)
}

func (r *Registry) register(s Source) {
	if s == nil {
		return
	}
	if _, dup := r.byName[s.Name()]; dup {
		loggerpkg.Warn(r.logger, "duplicate real-time source ignored", map[string]any{"name": s.Name()})
		return
	}
	r.byName[s.Name()] = s
	r.sources = append(r.sources, s)
	loggerpkg.Debugf(r.verbose, r.logger, "[verbose] registered source: %s", s.Name())
}

// Match returns the first source whose keyword occurs in input, ignoring case.
func (r *Registry) Match(input string) (Source, bool) {
	lowered := strings.ToLower(input)
	for _, s := range r.sources {
		if strings.Contains(lowered, strings.ToLower(s.Keyword())) {
			return s, true
		}
	}
	return nil, false
}

// Lookup returns the source registered under name.
func (r *Registry) Lookup(name string) (Source, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Names lists registered sources in match order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		out = append(out, s.Name())
	}
	return out
}
