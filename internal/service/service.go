// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All Asana API calls go through this interface.
// Commands never build request paths directly.
type Service interface {
	// Workspaces returns all workspaces visible to the caller, in API order.
	Workspaces(ctx context.Context) ([]Workspace, error)

	// Projects returns the projects of a workspace, in API order.
	Projects(ctx context.Context, ws Workspace) ([]Project, error)

	// Users returns the members of a workspace, in API order.
	Users(ctx context.Context, ws Workspace) ([]User, error)

	// WorkspaceTasks returns the caller's tasks in a workspace.
	WorkspaceTasks(ctx context.Context, ws Workspace) ([]Task, error)

	// ProjectTasks returns all tasks of a project.
	ProjectTasks(ctx context.Context, p Project) ([]Task, error)

	// CreateTask creates a task and returns it with its new ID.
	CreateTask(ctx context.Context, t NewTask) (Task, error)

	// CompleteTask marks a task as completed.
	CompleteTask(ctx context.Context, taskID string) error

	// AddProject attaches an existing task to a project.
	AddProject(ctx context.Context, taskID string, p Project) error
}
