// Package service defines the backend-agnostic interface for task operations.
package service

// Workspace is a top-level container of projects, users and tasks.
type Workspace struct {
	ID   string
	Name string
}

// Project is a named grouping of tasks within one workspace.
type Project struct {
	ID        string
	Name      string
	Workspace Workspace
}

// Task represents a single task item.
type Task struct {
	ID        string
	Name      string
	Workspace Workspace
	Project   *Project // nil for tasks listed outside a project
}

// User is a member of a workspace.
type User struct {
	ID   string
	Name string
}

// NewTask holds the fields of a task to be created.
type NewTask struct {
	Workspace Workspace
	Name      string
	Assignee  *User  // nil assigns the task to the caller
	DueOn     string // YYYY-MM-DD, empty for no due date
}
