// Package commands turns free-form argument strings into commands and runs them.
package commands

import (
	"context"
	"io"

	"asana/internal/service"
)

// Kind identifies a command shape.
type Kind string

const (
	KindFinish            Kind = "finish"
	KindListWorkspace     Kind = "list-workspace"
	KindListProject       Kind = "list-project"
	KindCreateInWorkspace Kind = "create-in-workspace"
	KindCreateInProject   Kind = "create-in-project"
)

// Command is a parsed, ready to run command.
type Command interface {
	// Kind returns the shape the command was parsed from.
	Kind() Kind

	// Run executes the command against svc and writes user output to out.
	// Errors are returned, not printed.
	Run(ctx context.Context, svc service.Service, out io.Writer) error
}
