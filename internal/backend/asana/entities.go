package asana

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"asana/internal/service"
)

var _ service.Service = (*Client)(nil)

// entity is the compact record the API returns for every resource type.
// Current API versions send "gid" (string); older ones sent a numeric "id".
type entity struct {
	GID  string      `json:"gid"`
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

func (e entity) key() string {
	if e.GID != "" {
		return e.GID
	}
	return e.ID.String()
}

// decodeData unmarshals the "data" member of a response envelope into v.
func decodeData(raw json.RawMessage, v any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return &service.DecodeError{Err: err}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &service.DecodeError{Err: errors.New("response has no data")}
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return &service.DecodeError{Err: err}
	}
	return nil
}

func (c *Client) list(ctx context.Context, path string) ([]entity, error) {
	raw, err := c.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	var items []entity
	if err := decodeData(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Workspaces returns all workspaces in API order.
func (c *Client) Workspaces(ctx context.Context) ([]service.Workspace, error) {
	items, err := c.list(ctx, "workspaces")
	if err != nil {
		return nil, err
	}
	result := make([]service.Workspace, 0, len(items))
	for _, it := range items {
		result = append(result, service.Workspace{ID: it.key(), Name: it.Name})
	}
	return result, nil
}

// Projects returns the projects of ws in API order.
func (c *Client) Projects(ctx context.Context, ws service.Workspace) ([]service.Project, error) {
	q := url.Values{"workspace": {ws.ID}}
	items, err := c.list(ctx, "projects?"+q.Encode())
	if err != nil {
		return nil, err
	}
	result := make([]service.Project, 0, len(items))
	for _, it := range items {
		result = append(result, service.Project{ID: it.key(), Name: it.Name, Workspace: ws})
	}
	return result, nil
}

// Users returns the members of ws in API order.
func (c *Client) Users(ctx context.Context, ws service.Workspace) ([]service.User, error) {
	items, err := c.list(ctx, "workspaces/"+url.PathEscape(ws.ID)+"/users")
	if err != nil {
		return nil, err
	}
	result := make([]service.User, 0, len(items))
	for _, it := range items {
		result = append(result, service.User{ID: it.key(), Name: it.Name})
	}
	return result, nil
}

// WorkspaceTasks returns the tasks in ws assigned to the caller.
func (c *Client) WorkspaceTasks(ctx context.Context, ws service.Workspace) ([]service.Task, error) {
	q := url.Values{"workspace": {ws.ID}, "assignee": {"me"}}
	items, err := c.list(ctx, "tasks?"+q.Encode())
	if err != nil {
		return nil, err
	}
	result := make([]service.Task, 0, len(items))
	for _, it := range items {
		result = append(result, service.Task{ID: it.key(), Name: it.Name, Workspace: ws})
	}
	return result, nil
}

// ProjectTasks returns all tasks of p.
func (c *Client) ProjectTasks(ctx context.Context, p service.Project) ([]service.Task, error) {
	q := url.Values{"workspace": {p.Workspace.ID}, "project": {p.ID}}
	items, err := c.list(ctx, "tasks?"+q.Encode())
	if err != nil {
		return nil, err
	}
	result := make([]service.Task, 0, len(items))
	for i := range items {
		project := p
		result = append(result, service.Task{ID: items[i].key(), Name: items[i].Name, Workspace: p.Workspace, Project: &project})
	}
	return result, nil
}

// CreateTask creates a task and returns it with the ID assigned by the API.
func (c *Client) CreateTask(ctx context.Context, t service.NewTask) (service.Task, error) {
	form := url.Values{
		"workspace": {t.Workspace.ID},
		"name":      {t.Name},
		"assignee":  {"me"},
	}
	if t.Assignee != nil {
		form.Set("assignee", t.Assignee.ID)
	}
	if t.DueOn != "" {
		form.Set("due_on", t.DueOn)
	}

	raw, err := c.Post(ctx, "tasks", form)
	if err != nil {
		return service.Task{}, err
	}
	var created entity
	if err := decodeData(raw, &created); err != nil {
		return service.Task{}, err
	}
	if created.key() == "" {
		return service.Task{}, &service.DecodeError{Err: fmt.Errorf("created task has no id")}
	}

	name := created.Name
	if name == "" {
		name = t.Name
	}
	return service.Task{ID: created.key(), Name: name, Workspace: t.Workspace}, nil
}

// CompleteTask marks a task as completed.
func (c *Client) CompleteTask(ctx context.Context, taskID string) error {
	_, err := c.Put(ctx, "tasks/"+url.PathEscape(taskID), url.Values{"completed": {"true"}})
	return err
}

// AddProject attaches a task to a project.
func (c *Client) AddProject(ctx context.Context, taskID string, p service.Project) error {
	_, err := c.Post(ctx, "tasks/"+url.PathEscape(taskID)+"/addProject", url.Values{"project": {p.ID}})
	return err
}
