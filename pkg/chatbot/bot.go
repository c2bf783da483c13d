// Package chatbot runs the keyword-dispatch chat loop: classify the input,
// gather real-time data, ask the completion service, print the reply.
package chatbot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minhyannv/realtime-chat-go/pkg/completion"
	configpkg "github.com/minhyannv/realtime-chat-go/pkg/config"
	loggerpkg "github.com/minhyannv/realtime-chat-go/pkg/logger"
	"github.com/minhyannv/realtime-chat-go/pkg/prompt"
	"github.com/minhyannv/realtime-chat-go/pkg/realtime"
)

// Welcome is printed once when the loop starts.
const Welcome = "Welcome to the AI Chatbot! You can ask about the weather or latest news."

// Farewell is printed after the reply to an exit keyword.
const Farewell = "Goodbye!"

const (
	userInput = "You: "
	replyTag  = "AI: "
)

// Intent is the branch selected for one input line.
type Intent string

const (
	IntentWeather Intent = realtime.NameWeather
	IntentNews    Intent = realtime.NameNews
	IntentPlain   Intent = "plain"
)

var exitWords = map[string]struct{}{
	"exit": {},
	"quit": {},
	"bye":  {},
}

// IsExit reports whether input, lowercased, is exactly an exit keyword.
// Surrounding whitespace is significant: " bye " is not an exit.
func IsExit(input string) bool {
	_, ok := exitWords[strings.ToLower(input)]
	return ok
}

// Bot holds the chat loop dependencies.
type Bot struct {
	config    configpkg.Config
	completer completion.Completer
	sources   *realtime.Registry
	logger    loggerpkg.Logger
	verbose   bool
	newTurnID func() string
}

// New initializes a Bot from cfg. Dependencies not supplied through opts
// are built from cfg.
func New(cfg configpkg.Config, opts ...Option) (*Bot, error) {
	cfg = configpkg.Normalize(cfg)
	deps := botDeps{logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	if deps.logger == nil {
		deps.logger = loggerpkg.NopLogger{}
	}

	if deps.completer == nil {
		c, err := completion.New(cfg, loggerpkg.Named(deps.logger, "completion"))
		if err != nil {
			return nil, fmt.Errorf("init completion: %w", err)
		}
		deps.completer = c
	}
	if deps.sources == nil {
		deps.sources = realtime.New(cfg, deps.logger)
	}
	if deps.newTurnID == nil {
		deps.newTurnID = uuid.NewString
	}

	loggerpkg.Debug(cfg.Verbose, deps.logger, "chatbot init", map[string]any{
		"model":      cfg.Model,
		"mode":       cfg.CompletionMode,
		"max_tokens": cfg.MaxTokens,
		"sources":    deps.sources.Names(),
	})

	return &Bot{
		config:    cfg,
		completer: deps.completer,
		sources:   deps.sources,
		logger:    deps.logger,
		verbose:   cfg.Verbose,
		newTurnID: deps.newTurnID,
	}, nil
}

// Classify returns the intent for input; the first matching source wins.
func (b *Bot) Classify(input string) Intent {
	if src, ok := b.sources.Match(input); ok {
		return Intent(src.Name())
	}
	return IntentPlain
}

// source returns the real-time source behind intent, if any.
func (b *Bot) source(intent Intent) (realtime.Source, bool) {
	if intent == IntentPlain {
		return nil, false
	}
	return b.sources.Lookup(string(intent))
}

// Reply builds the prompt, asks the completion service for a reply and
// trims surrounding whitespace from it.
func (b *Bot) Reply(ctx context.Context, userMessage, realTimeData string) (string, error) {
	reply, err := b.completer.Complete(ctx, prompt.Build(userMessage, realTimeData), b.config.MaxTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// Run reads operator lines from in and writes prompts and replies to out
// until an exit keyword, end of input, or ctx cancellation. Every line,
// blank ones included, gets a reply.
func (b *Bot) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if in == nil {
		return errors.New("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}
	if ctx == nil {
		ctx = context.Background()
	}

	scanner := bufio.NewScanner(in)
	_, _ = fmt.Fprintln(out, Welcome)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, _ = fmt.Fprint(out, userInput)
		if !scanner.Scan() {
			break
		}

		// The raw line is the user message; it is not trimmed.
		input := scanner.Text()

		turnID := b.newTurnID()
		realTimeData := ""
		intent := b.Classify(input)
		if src, ok := b.source(intent); ok {
			_, _ = fmt.Fprint(out, src.Question())
			if !scanner.Scan() {
				break
			}
			realTimeData = src.Fetch(ctx, scanner.Text())
		}
		loggerpkg.Debug(b.verbose, b.logger, "turn", map[string]any{
			"turn_id":        turnID,
			"intent":         intent,
			"realtime_bytes": len(realTimeData),
		})

		reply, err := b.Reply(ctx, input, realTimeData)
		if err != nil {
			loggerpkg.Error(b.logger, "completion failed", map[string]any{
				"turn_id": turnID,
				"error":   err.Error(),
			})
			_, _ = fmt.Fprintf(out, "Error: %v\n", err)
		} else {
			_, _ = fmt.Fprintln(out, replyTag+reply)
		}

		if IsExit(input) {
			_, _ = fmt.Fprintln(out, Farewell)
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
