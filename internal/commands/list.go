package commands

import (
	"context"
	"io"

	"asana/internal/output"
	"asana/internal/resolver"
	"asana/internal/service"
)

// ListCmd prints the caller's tasks in a workspace, or all tasks of a
// project when Project is set.
type ListCmd struct {
	Workspace string
	Project   string
}

func (c *ListCmd) Kind() Kind {
	if c.Project != "" {
		return KindListProject
	}
	return KindListWorkspace
}

func (c *ListCmd) Run(ctx context.Context, svc service.Service, out io.Writer) error {
	ws, err := resolver.Workspace(ctx, svc, c.Workspace)
	if err != nil {
		return err
	}

	var tasks []service.Task
	if c.Project == "" {
		tasks, err = svc.WorkspaceTasks(ctx, ws)
	} else {
		var project service.Project
		project, err = resolver.Project(ctx, svc, ws, c.Project)
		if err != nil {
			return err
		}
		tasks, err = svc.ProjectTasks(ctx, project)
	}
	if err != nil {
		return err
	}

	// An empty list prints nothing.
	for _, task := range tasks {
		output.FormatTask(out, task)
	}
	return nil
}
