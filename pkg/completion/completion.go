// Package completion talks to the text-generation service that writes the bot's replies.
package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	configpkg "github.com/minhyannv/realtime-chat-go/pkg/config"
	loggerpkg "github.com/minhyannv/realtime-chat-go/pkg/logger"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	// ErrEmptyCompletion is returned when the service answers without choices.
	ErrEmptyCompletion = errors.New("empty completion choices")
	// ErrMissingAPIKey is returned by Complete when no API key is configured.
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")
)

// Completer generates text for a prompt within a token budget.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// OpenAI is a Completer backed by the OpenAI API. It sends either a legacy
// text completion or a single-message chat completion depending on mode.
type OpenAI struct {
	client  openai.Client
	model   string
	mode    string
	hasKey  bool
	logger  loggerpkg.Logger
	verbose bool
}

// New builds an OpenAI completer from cfg. Extra request options are
// applied after the ones derived from cfg.
func New(cfg configpkg.Config, logger loggerpkg.Logger, extra ...option.RequestOption) (*OpenAI, error) {
	cfg = configpkg.Normalize(cfg)
	if logger == nil {
		logger = loggerpkg.NopLogger{}
	}
	switch cfg.CompletionMode {
	case configpkg.ModeCompletions, configpkg.ModeChat:
	default:
		return nil, fmt.Errorf("unsupported completion mode %q", cfg.CompletionMode)
	}

	return &OpenAI{
		client:  newOpenAIClient(cfg, extra...),
		model:   cfg.Model,
		mode:    cfg.CompletionMode,
		hasKey:  cfg.OpenAIAPIKey != "",
		logger:  logger,
		verbose: cfg.Verbose,
	}, nil
}

func newOpenAIClient(cfg configpkg.Config, extra ...option.RequestOption) openai.Client {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	if cfg.OpenAIAPIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.OpenAIAPIKey))
	}
	if cfg.HTTPTimeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
	}
	opts = append(opts, extra...)
	return openai.NewClient(opts...)
}

// Complete sends prompt and returns the text of the first choice as
// generated; callers trim it for display.
func (c *OpenAI) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !c.hasKey {
		return "", ErrMissingAPIKey
	}
	if maxTokens <= 0 {
		maxTokens = configpkg.DefaultMaxTokens
	}
	loggerpkg.Debug(c.verbose, c.logger, "completion request", map[string]any{
		"mode":         c.mode,
		"model":        c.model,
		"max_tokens":   maxTokens,
		"prompt_bytes": len(prompt),
	})

	var (
		text string
		err  error
	)
	if c.mode == configpkg.ModeChat {
		text, err = c.chat(ctx, prompt, maxTokens)
	} else {
		text, err = c.text(ctx, prompt, maxTokens)
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *OpenAI) text(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.Completions.New(ctx, openai.CompletionNewParams{
		Model:     openai.CompletionNewParamsModel(c.model),
		Prompt:    openai.CompletionNewParamsPromptUnion{OfString: openai.String(prompt)},
		MaxTokens: openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Text, nil
}

func (c *OpenAI) chat(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.model),
		Messages:  []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		MaxTokens: openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
