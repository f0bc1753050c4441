package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"asana/internal/commands"
	"asana/internal/config"
	"asana/internal/exitcode"
	"asana/internal/logging"
	"asana/internal/service"
)

// installHint follows every configuration error.
const installHint = "See https://github.com/tmac721/asana-client for installation instructions."

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config, log *zap.Logger) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	parser  *commands.Parser
	factory ServiceFactory

	// ConfigPath overrides the config file location; empty uses config.DefaultPath.
	ConfigPath string
}

// NewDispatcher creates a new dispatcher with the given parser and service factory.
func NewDispatcher(parser *commands.Parser, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		parser:  parser,
		factory: factory,
	}
}

// Run loads the configuration, parses args and runs the resulting command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	cfg, err := config.Load(d.ConfigPath)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n%s\n", err, installHint)
		return exitcode.ConfigError
	}

	log := logging.New(cfg.Debug, errOut)
	defer log.Sync()

	cmd, err := d.parser.Parse(args)
	if err != nil {
		code := report(errOut, err)
		var unrecognized *commands.UnrecognizedError
		if errors.As(err, &unrecognized) {
			d.printUsage(errOut)
		}
		return code
	}
	log.Debug("parsed command", zap.String("kind", string(cmd.Kind())), zap.String("config", cfg.Path))

	svc, err := d.factory(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if err := cmd.Run(ctx, svc, out); err != nil {
		log.Debug("command failed", zap.Error(err))
		return report(errOut, err)
	}
	return exitcode.Success
}

func (d *Dispatcher) printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	for _, line := range d.parser.Usage() {
		fmt.Fprintf(w, "  asana %s\n", line)
	}
}

// report prints a one-line diagnostic for err and returns its exit code.
func report(errOut io.Writer, err error) int {
	var (
		unrecognized *commands.UnrecognizedError
		notFound     *service.NotFoundError
		partial      *commands.PartialError
		remote       *service.RemoteError
		transport    *service.TransportError
		decode       *service.DecodeError
	)

	switch {
	case errors.Is(err, commands.ErrNothingToDo):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.As(err, &unrecognized), errors.As(err, &notFound):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.BackendError
	case errors.As(err, &partial):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	case errors.As(err, &remote), errors.As(err, &transport), errors.As(err, &decode):
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
}
