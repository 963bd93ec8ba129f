// Package main provides an interactive CLI chat with tool calling.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/minhyannv/tool-chat-go/pkg/agent"
	configpkg "github.com/minhyannv/tool-chat-go/pkg/config"
	loggerpkg "github.com/minhyannv/tool-chat-go/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand(os.Args).Run(ctx, os.Args); err != nil {
		loggerpkg.Error(loggerpkg.New(os.Stderr, false), "tool-chat-go failed", err)
		stop()
		os.Exit(1)
	}
}

// newCommand builds the root command. The config file named in args is read
// up front so its keys can back the flags.
func newCommand(args []string) *cli.Command {
	fileData, fileErr := configpkg.LoadFile(configPath(args))

	return &cli.Command{
		Name:  "tool-chat-go",
		Usage: "chat with a hosted model that can call local tools",
		Flags: cliFlags(fileData),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if fileErr != nil {
				return fileErr
			}
			return run(ctx, cmd)
		},
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := configFromCommand(cmd)
	appLogger := loggerpkg.New(os.Stderr, cfg.Verbose)

	app, err := agent.New(cfg,
		agent.WithLogger(appLogger),
		agent.WithToolNotice(os.Stdout),
	)
	if err != nil {
		return err
	}

	return runREPL(ctx, app, replOptions{
		TypingDelay: cfg.TypingDelay,
		Verbose:     cfg.Verbose,
		Logger:      appLogger,
	}, os.Stdin, os.Stdout)
}
