package commands

import (
	"context"
	"io"

	"asana/internal/output"
	"asana/internal/service"
)

// FinishCmd marks a task completed by ID. It does no name resolution.
type FinishCmd struct {
	TaskID string
}

func (c *FinishCmd) Kind() Kind { return KindFinish }

func (c *FinishCmd) Run(ctx context.Context, svc service.Service, out io.Writer) error {
	if err := svc.CompleteTask(ctx, c.TaskID); err != nil {
		return err
	}
	output.TaskCompleted(out)
	return nil
}
