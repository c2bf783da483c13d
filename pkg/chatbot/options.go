package chatbot

import (
	"github.com/minhyannv/realtime-chat-go/pkg/completion"
	loggerpkg "github.com/minhyannv/realtime-chat-go/pkg/logger"
	"github.com/minhyannv/realtime-chat-go/pkg/realtime"
)

// Option configures optional runtime dependencies for Bot.
type Option func(*botDeps)

type botDeps struct {
	logger    loggerpkg.Logger
	completer completion.Completer
	sources   *realtime.Registry
	newTurnID func() string
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *botDeps) {
		d.logger = l
	}
}

// WithCompleter replaces the OpenAI completer.
func WithCompleter(c completion.Completer) Option {
	return func(d *botDeps) {
		d.completer = c
	}
}

// WithSources replaces the default weather/news registry.
func WithSources(r *realtime.Registry) Option {
	return func(d *botDeps) {
		d.sources = r
	}
}

// WithTurnIDs overrides how per-turn log identifiers are generated.
func WithTurnIDs(fn func() string) Option {
	return func(d *botDeps) {
		d.newTurnID = fn
	}
}
