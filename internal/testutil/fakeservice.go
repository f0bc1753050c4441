// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"asana/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// Every method call is appended to Calls.
type FakeService struct {
	mu         sync.Mutex
	workspaces []service.Workspace
	projects   map[string][]service.Project // workspace ID -> projects
	users      map[string][]service.User    // workspace ID -> users
	tasks      map[string][]service.Task    // workspace ID -> tasks assigned to me
	projTasks  map[string][]service.Task    // project ID -> tasks
	nextID     int

	// Calls records method invocations, e.g. "Workspaces" or "CompleteTask 123".
	Calls []string

	// Created records tasks passed to CreateTask.
	Created []service.NewTask

	// Completed records task IDs passed to CompleteTask.
	Completed []string

	// Attached maps task ID -> project ID for AddProject calls.
	Attached map[string]string

	// Error injection for testing
	WorkspacesErr     error
	ProjectsErr       error
	UsersErr          error
	WorkspaceTasksErr error
	ProjectTasksErr   error
	CreateTaskErr     error
	CompleteTaskErr   error
	AddProjectErr     error
}

// NewFakeService creates an empty FakeService. Created tasks get IDs from 1000.
func NewFakeService() *FakeService {
	return &FakeService{
		projects:  make(map[string][]service.Project),
		users:     make(map[string][]service.User),
		tasks:     make(map[string][]service.Task),
		projTasks: make(map[string][]service.Task),
		Attached:  make(map[string]string),
		nextID:    1000,
	}
}

// AddWorkspace adds a workspace and returns it.
func (f *FakeService) AddWorkspace(id, name string) service.Workspace {
	f.mu.Lock()
	defer f.mu.Unlock()
	ws := service.Workspace{ID: id, Name: name}
	f.workspaces = append(f.workspaces, ws)
	return ws
}

// AddProjectTo adds a project to a workspace and returns it.
func (f *FakeService) AddProjectTo(ws service.Workspace, id, name string) service.Project {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := service.Project{ID: id, Name: name, Workspace: ws}
	f.projects[ws.ID] = append(f.projects[ws.ID], p)
	return p
}

// AddUser adds a member to a workspace.
func (f *FakeService) AddUser(ws service.Workspace, id, name string) service.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := service.User{ID: id, Name: name}
	f.users[ws.ID] = append(f.users[ws.ID], u)
	return u
}

// AddTask adds a task assigned to the caller in ws.
func (f *FakeService) AddTask(ws service.Workspace, id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[ws.ID] = append(f.tasks[ws.ID], service.Task{ID: id, Name: name, Workspace: ws})
}

// AddProjectTask adds a task to a project.
func (f *FakeService) AddProjectTask(p service.Project, id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	project := p
	f.projTasks[p.ID] = append(f.projTasks[p.ID], service.Task{ID: id, Name: name, Workspace: p.Workspace, Project: &project})
}

func (f *FakeService) record(format string, args ...any) {
	f.Calls = append(f.Calls, fmt.Sprintf(format, args...))
}

// Workspaces implements service.Service.
func (f *FakeService) Workspaces(ctx context.Context) ([]service.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Workspaces")
	if f.WorkspacesErr != nil {
		return nil, f.WorkspacesErr
	}
	result := make([]service.Workspace, len(f.workspaces))
	copy(result, f.workspaces)
	return result, nil
}

// Projects implements service.Service.
func (f *FakeService) Projects(ctx context.Context, ws service.Workspace) ([]service.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Projects %s", ws.ID)
	if f.ProjectsErr != nil {
		return nil, f.ProjectsErr
	}
	return append([]service.Project(nil), f.projects[ws.ID]...), nil
}

// Users implements service.Service.
func (f *FakeService) Users(ctx context.Context, ws service.Workspace) ([]service.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Users %s", ws.ID)
	if f.UsersErr != nil {
		return nil, f.UsersErr
	}
	return append([]service.User(nil), f.users[ws.ID]...), nil
}

// WorkspaceTasks implements service.Service.
func (f *FakeService) WorkspaceTasks(ctx context.Context, ws service.Workspace) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("WorkspaceTasks %s", ws.ID)
	if f.WorkspaceTasksErr != nil {
		return nil, f.WorkspaceTasksErr
	}
	return append([]service.Task(nil), f.tasks[ws.ID]...), nil
}

// ProjectTasks implements service.Service.
func (f *FakeService) ProjectTasks(ctx context.Context, p service.Project) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ProjectTasks %s", p.ID)
	if f.ProjectTasksErr != nil {
		return nil, f.ProjectTasksErr
	}
	return append([]service.Task(nil), f.projTasks[p.ID]...), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, t service.NewTask) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateTask %s", t.Workspace.ID)
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.Created = append(f.Created, t)
	id := strconv.Itoa(f.nextID)
	f.nextID++
	task := service.Task{ID: id, Name: t.Name, Workspace: t.Workspace}
	f.tasks[t.Workspace.ID] = append(f.tasks[t.Workspace.ID], task)
	return task, nil
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CompleteTask %s", taskID)
	if f.CompleteTaskErr != nil {
		return f.CompleteTaskErr
	}
	f.Completed = append(f.Completed, taskID)
	return nil
}

// AddProject implements service.Service.
func (f *FakeService) AddProject(ctx context.Context, taskID string, p service.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AddProject %s %s", taskID, p.ID)
	if f.AddProjectErr != nil {
		return f.AddProjectErr
	}
	f.Attached[taskID] = p.ID
	return nil
}
