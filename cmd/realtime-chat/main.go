// Package main runs the real-time chatbot on stdin/stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/minhyannv/realtime-chat-go/pkg/chatbot"
	configpkg "github.com/minhyannv/realtime-chat-go/pkg/config"
	loggerpkg "github.com/minhyannv/realtime-chat-go/pkg/logger"
)

const missingKeysWarning = "Warning: One or more API keys are missing. Please check your .env file."

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		// Restore default signal handling once cancelled so a second
		// Ctrl-C ends a loop still blocked on stdin.
		<-ctx.Done()
		stop()
	}()

	_ = godotenv.Load()
	if err := run(ctx, os.Args[1:], os.Getenv, os.Stdin, os.Stdout, os.Stderr); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run builds the bot from args and the environment and chats over in/out.
// Cancellation of ctx ends the session without an error.
func run(ctx context.Context, args []string, getenv func(string) string, in io.Reader, out, errOut io.Writer) error {
	cfg, err := parseCLIConfig(args, getenv)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	appLogger := loggerpkg.NewWriterLogger(errOut)
	warnMissingCredentials(cfg, out, appLogger)

	bot, err := chatbot.New(cfg, chatbot.WithLogger(appLogger))
	if err != nil {
		return err
	}
	err = bot.Run(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		loggerpkg.Info(appLogger, "interrupted", nil)
		return nil
	}
	return err
}

// warnMissingCredentials prints the console warning when any key is empty.
// Execution continues either way.
func warnMissingCredentials(cfg configpkg.Config, out io.Writer, l loggerpkg.Logger) {
	missing := cfg.MissingCredentials()
	if len(missing) == 0 {
		return
	}
	_, _ = fmt.Fprintln(out, missingKeysWarning)
	loggerpkg.Debug(cfg.Verbose, l, "missing credentials", map[string]any{"env": missing})
}
