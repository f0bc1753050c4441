// Package resolver maps user-typed name fragments to remote entities.
//
// Every lookup fetches the candidate list once; nothing is memoized, so a
// command costs one round trip per resolved name.
package resolver

import (
	"context"
	"strings"

	"asana/internal/service"
)

// First returns the first item whose name contains fragment, ignoring case.
// Items are scanned in the order given. An empty fragment matches nothing.
func First[T any](items []T, name func(T) string, fragment string) (T, bool) {
	var zero T
	q := strings.ToLower(strings.TrimSpace(fragment))
	if q == "" {
		return zero, false
	}
	for _, it := range items {
		if strings.Contains(strings.ToLower(name(it)), q) {
			return it, true
		}
	}
	return zero, false
}

// Workspace resolves a workspace name fragment.
func Workspace(ctx context.Context, svc service.Service, fragment string) (service.Workspace, error) {
	spaces, err := svc.Workspaces(ctx)
	if err != nil {
		return service.Workspace{}, err
	}
	ws, ok := First(spaces, func(w service.Workspace) string { return w.Name }, fragment)
	if !ok {
		return service.Workspace{}, &service.NotFoundError{Kind: service.KindWorkspace, Query: fragment}
	}
	return ws, nil
}

// Project resolves a project name fragment within ws.
func Project(ctx context.Context, svc service.Service, ws service.Workspace, fragment string) (service.Project, error) {
	projects, err := svc.Projects(ctx, ws)
	if err != nil {
		return service.Project{}, err
	}
	p, ok := First(projects, func(p service.Project) string { return p.Name }, fragment)
	if !ok {
		return service.Project{}, &service.NotFoundError{Kind: service.KindProject, Query: fragment}
	}
	return p, nil
}

// User resolves a user name fragment within ws.
func User(ctx context.Context, svc service.Service, ws service.Workspace, fragment string) (service.User, error) {
	users, err := svc.Users(ctx, ws)
	if err != nil {
		return service.User{}, err
	}
	u, ok := First(users, func(u service.User) string { return u.Name }, fragment)
	if !ok {
		return service.User{}, &service.NotFoundError{Kind: service.KindUser, Query: fragment}
	}
	return u, nil
}
