package commands_test

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"asana/internal/commands"
	"asana/internal/service"
	"asana/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService) (stdout string, err error) {
	t.Helper()
	var out bytes.Buffer
	err = cmd.Run(context.Background(), svc, &out)
	return out.String(), err
}

// engineering returns a fake with an Engineering workspace holding a Web project.
func engineering() (*testutil.FakeService, service.Workspace, service.Project) {
	svc := testutil.NewFakeService()
	svc.AddWorkspace("1", "Personal")
	ws := svc.AddWorkspace("2", "Engineering")
	p := svc.AddProjectTo(ws, "20", "Website")
	svc.AddUser(ws, "200", "Alice Smith")
	return svc, ws, p
}

func TestFinishCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, err := runCommand(t, &commands.FinishCmd{TaskID: "123"}, svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "Task completed!\n" {
		t.Errorf("expected completion message, got %q", stdout)
	}
	if !reflect.DeepEqual(svc.Calls, []string{"CompleteTask 123"}) {
		t.Errorf("expected a single CompleteTask call, got %v", svc.Calls)
	}
	if !reflect.DeepEqual(svc.Completed, []string{"123"}) {
		t.Errorf("expected task 123 to be completed, got %v", svc.Completed)
	}
}

func TestFinishCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CompleteTaskErr = &service.RemoteError{Status: 404}

	stdout, err := runCommand(t, &commands.FinishCmd{TaskID: "9"}, svc)
	var remote *service.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
	if len(svc.Completed) != 0 {
		t.Errorf("expected nothing completed, got %v", svc.Completed)
	}
}

func TestListCommand_Workspace(t *testing.T) {
	svc, ws, _ := engineering()
	svc.AddTask(ws, "101", "Fix login")
	svc.AddTask(ws, "102", "Write docs")

	stdout, err := runCommand(t, &commands.ListCmd{Workspace: "eng"}, svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "(101) Fix login\n(102) Write docs\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	if !reflect.DeepEqual(svc.Calls, []string{"Workspaces", "WorkspaceTasks 2"}) {
		t.Errorf("unexpected calls %v", svc.Calls)
	}
}

func TestListCommand_EmptyPrintsNothing(t *testing.T) {
	svc, _, _ := engineering()

	stdout, err := runCommand(t, &commands.ListCmd{Workspace: "eng"}, svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
}

func TestListCommand_Project(t *testing.T) {
	svc, _, p := engineering()
	svc.AddProjectTask(p, "301", "Redesign landing page")
	svc.AddProjectTask(p, "302", "Update footer\nlinks")
	svc.AddProjectTask(p, "303", "")

	stdout, err := runCommand(t, &commands.ListCmd{Workspace: "ENG", Project: "site"}, svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.GoldenString(t, "list_project", stdout)
	if !reflect.DeepEqual(svc.Calls, []string{"Workspaces", "Projects 2", "ProjectTasks 20"}) {
		t.Errorf("unexpected calls %v", svc.Calls)
	}
}

func TestListCommand_ProjectNotFound(t *testing.T) {
	svc, _, _ := engineering()

	_, err := runCommand(t, &commands.ListCmd{Workspace: "eng", Project: "mobile"}, svc)
	if !service.IsNotFound(err, service.KindProject) {
		t.Fatalf("expected project not found, got %v", err)
	}
	if !reflect.DeepEqual(svc.Calls, []string{"Workspaces", "Projects 2"}) {
		t.Errorf("expected no task listing after failed lookup, got %v", svc.Calls)
	}
}

func TestCreateCommand_Workspace(t *testing.T) {
	svc, ws, _ := engineering()

	stdout, err := runCommand(t, &commands.CreateCmd{Workspace: "eng", Name: "buy milk"}, svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "Task created in Engineering!\n" {
		t.Errorf("unexpected output %q", stdout)
	}

	want := []service.NewTask{{Workspace: ws, Name: "buy milk"}}
	if !reflect.DeepEqual(svc.Created, want) {
		t.Errorf("expected %+v, got %+v", want, svc.Created)
	}
	if !reflect.DeepEqual(svc.Calls, []string{"Workspaces", "CreateTask 2"}) {
		t.Errorf("unexpected calls %v", svc.Calls)
	}
}

func TestCreateCommand_AssigneeAndDue(t *testing.T) {
	svc, _, _ := engineering()

	_, err := runCommand(t, &commands.CreateCmd{Workspace: "eng", Name: "review", Assignee: "alice", DueOn: "2026-10-20"}, svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	created := svc.Created[0]
	if created.Assignee == nil || created.Assignee.ID != "200" {
		t.Errorf("expected assignee 200, got %+v", created.Assignee)
	}
	if created.DueOn != "2026-10-20" {
		t.Errorf("expected due date to pass through, got %q", created.DueOn)
	}
}

func TestCreateCommand_AssigneeNotFound(t *testing.T) {
	svc, _, _ := engineering()

	_, err := runCommand(t, &commands.CreateCmd{Workspace: "eng", Name: "review", Assignee: "zed"}, svc)
	if !service.IsNotFound(err, service.KindUser) {
		t.Fatalf("expected assignee not found, got %v", err)
	}
	if len(svc.Created) != 0 {
		t.Errorf("expected no task to be created, got %+v", svc.Created)
	}
}

func TestCreateCommand_WorkspaceNotFound(t *testing.T) {
	svc, _, _ := engineering()

	_, err := runCommand(t, &commands.CreateCmd{Workspace: "zzz", Name: "buy milk"}, svc)
	var nf *service.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != service.KindWorkspace {
		t.Fatalf("expected workspace not found, got %v", err)
	}
	if !reflect.DeepEqual(svc.Calls, []string{"Workspaces"}) {
		t.Errorf("expected no further calls, got %v", svc.Calls)
	}
}

func TestCreateCommand_Project(t *testing.T) {
	svc, _, _ := engineering()

	stdout, err := runCommand(t, &commands.CreateCmd{Workspace: "eng", Project: "web", Name: "ship it"}, svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "Task created in Engineering/Website!\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	if svc.Attached["1000"] != "20" {
		t.Errorf("expected created task 1000 to be added to project 20, got %v", svc.Attached)
	}
	want := []string{"Workspaces", "Projects 2", "CreateTask 2", "AddProject 1000 20"}
	if !reflect.DeepEqual(svc.Calls, want) {
		t.Errorf("expected %v, got %v", want, svc.Calls)
	}
}

func TestCreateCommand_ProjectNotFoundCreatesNothing(t *testing.T) {
	svc, _, _ := engineering()

	_, err := runCommand(t, &commands.CreateCmd{Workspace: "eng", Project: "mobile", Name: "ship it"}, svc)
	if !service.IsNotFound(err, service.KindProject) {
		t.Fatalf("expected project not found, got %v", err)
	}
	if len(svc.Created) != 0 {
		t.Errorf("expected no task to be created, got %+v", svc.Created)
	}
}

func TestCreateCommand_AddProjectFails(t *testing.T) {
	svc, _, _ := engineering()
	svc.AddProjectErr = &service.RemoteError{Status: 500}

	stdout, err := runCommand(t, &commands.CreateCmd{Workspace: "eng", Project: "web", Name: "ship it"}, svc)
	var partial *commands.PartialError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialError, got %v", err)
	}
	if partial.Task.ID != "1000" || partial.Project.ID != "20" {
		t.Errorf("unexpected partial error %+v", partial)
	}
	expected := "task 1000 created but could not be added to project Website: api returned 500"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
	var remote *service.RemoteError
	if !errors.As(err, &remote) {
		t.Error("expected cause to be reachable")
	}
	if stdout != "" {
		t.Errorf("expected no success message, got %q", stdout)
	}
}
