// Package main is the entry point for the asana CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"asana/internal/backend/asana"
	"asana/internal/cli"
	"asana/internal/commands"
	"asana/internal/config"
	"asana/internal/duedate"
	"asana/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config, log *zap.Logger) (service.Service, error) {
		client, err := asana.New(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	parser := commands.NewParser(commands.DefaultRegistry, duedate.New(nil))
	dispatcher := cli.NewDispatcher(parser, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
