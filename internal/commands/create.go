package commands

import (
	"context"
	"fmt"
	"io"

	"asana/internal/output"
	"asana/internal/resolver"
	"asana/internal/service"
)

// PartialError reports a task that was created but not attached to its project.
// The task is not rolled back.
type PartialError struct {
	Task    service.Task
	Project service.Project
	Err     error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("task %s created but could not be added to project %s: %v", e.Task.ID, e.Project.Name, e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }

// CreateCmd creates a task in a workspace, optionally inside a project.
type CreateCmd struct {
	Workspace string
	Project   string // empty for no project
	Name      string
	Assignee  string // user name fragment, empty assigns the caller
	DueOn     string
}

func (c *CreateCmd) Kind() Kind {
	if c.Project != "" {
		return KindCreateInProject
	}
	return KindCreateInWorkspace
}

// Run resolves every name before the first write, so a lookup failure never
// leaves a half-created task behind.
func (c *CreateCmd) Run(ctx context.Context, svc service.Service, out io.Writer) error {
	ws, err := resolver.Workspace(ctx, svc, c.Workspace)
	if err != nil {
		return err
	}

	var assignee *service.User
	if c.Assignee != "" {
		u, err := resolver.User(ctx, svc, ws, c.Assignee)
		if err != nil {
			return err
		}
		assignee = &u
	}

	var project *service.Project
	if c.Project != "" {
		p, err := resolver.Project(ctx, svc, ws, c.Project)
		if err != nil {
			return err
		}
		project = &p
	}

	task, err := svc.CreateTask(ctx, service.NewTask{
		Workspace: ws,
		Name:      c.Name,
		Assignee:  assignee,
		DueOn:     c.DueOn,
	})
	if err != nil {
		return err
	}

	scope := ws.Name
	if project != nil {
		if err := svc.AddProject(ctx, task.ID, *project); err != nil {
			return &PartialError{Task: task, Project: *project, Err: err}
		}
		scope = ws.Name + "/" + project.Name
	}

	output.TaskCreated(out, scope)
	return nil
}
