package commands_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"asana/internal/commands"
	"asana/internal/duedate"
)

// Monday, 19 October 2026.
var refNow = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func newParser() *commands.Parser {
	return commands.NewParser(commands.DefaultRegistry, duedate.New(func() time.Time { return refNow }))
}

func TestParse_ShapePriority(t *testing.T) {
	tests := []struct {
		input string
		kind  commands.Kind
	}{
		{"finish 42", commands.KindFinish},
		{"eng", commands.KindListWorkspace},
		{"finish", commands.KindListWorkspace},
		{"eng/web", commands.KindListProject},
		{"eng buy milk", commands.KindCreateInWorkspace},
		{"finish 42 now please", commands.KindCreateInWorkspace},
		{"eng/web buy milk", commands.KindCreateInProject},
	}

	p := newParser()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := p.Parse([]string{tt.input})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cmd.Kind() != tt.kind {
				t.Errorf("expected %s, got %s", tt.kind, cmd.Kind())
			}
		})
	}
}

func TestParse_Operands(t *testing.T) {
	p := newParser()

	cmd, err := p.Parse([]string{"finish", "123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fin, ok := cmd.(*commands.FinishCmd); !ok || fin.TaskID != "123" {
		t.Errorf("expected FinishCmd{123}, got %#v", cmd)
	}

	cmd, err = p.Parse([]string{"eng/web"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list, ok := cmd.(*commands.ListCmd); !ok || list.Workspace != "eng" || list.Project != "web" {
		t.Errorf("expected ListCmd{eng web}, got %#v", cmd)
	}

	cmd, err = p.Parse([]string{"eng/web", "buy", "milk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &commands.CreateCmd{Workspace: "eng", Project: "web", Name: "buy milk"}
	if got, ok := cmd.(*commands.CreateCmd); !ok || *got != *want {
		t.Errorf("expected %#v, got %#v", want, cmd)
	}
}

func TestParse_ArgsJoinedAndCollapsed(t *testing.T) {
	cmd, err := newParser().Parse([]string{"  eng ", "buy   milk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	create := cmd.(*commands.CreateCmd)
	if create.Workspace != "eng" || create.Name != "buy milk" {
		t.Errorf("unexpected command %#v", create)
	}
}

func TestParse_Assignee(t *testing.T) {
	cmd, err := newParser().Parse([]string{"eng", "buy", "milk", "@alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	create, ok := cmd.(*commands.CreateCmd)
	if !ok {
		t.Fatalf("expected CreateCmd, got %#v", cmd)
	}
	if create.Assignee != "alice" {
		t.Errorf("expected assignee alice, got %q", create.Assignee)
	}
	if create.Name != "buy milk" || create.Workspace != "eng" {
		t.Errorf("expected remaining command \"eng buy milk\", got %#v", create)
	}
}

func TestParse_AssigneeLastWins(t *testing.T) {
	cmd, err := newParser().Parse([]string{"eng", "@bob", "review", "@carol"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	create := cmd.(*commands.CreateCmd)
	if create.Assignee != "carol" || create.Name != "review" {
		t.Errorf("unexpected command %#v", create)
	}
}

func TestParse_DueDate(t *testing.T) {
	cmd, err := newParser().Parse([]string{"eng", "buy", "milk", "due", "tomorrow", "@alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	create := cmd.(*commands.CreateCmd)
	if create.Name != "buy milk" {
		t.Errorf("expected name \"buy milk\", got %q", create.Name)
	}
	if create.DueOn != "2026-10-20" {
		t.Errorf("expected due 2026-10-20, got %q", create.DueOn)
	}
	if create.Assignee != "alice" {
		t.Errorf("expected assignee alice, got %q", create.Assignee)
	}
}

func TestParse_DueDateInProject(t *testing.T) {
	cmd, err := newParser().Parse([]string{"eng/web", "deploy", "on", "friday"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	create := cmd.(*commands.CreateCmd)
	if create.Kind() != commands.KindCreateInProject || create.Name != "deploy" {
		t.Errorf("unexpected command %#v", create)
	}
	if !regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`).MatchString(create.DueOn) {
		t.Errorf("expected YYYY-MM-DD, got %q", create.DueOn)
	}
}

func TestParse_DateNeverEatsWorkspace(t *testing.T) {
	cmd, err := newParser().Parse([]string{"eng", "tomorrow"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	create := cmd.(*commands.CreateCmd)
	if create.Workspace != "eng" || create.Name != "tomorrow" || create.DueOn != "" {
		t.Errorf("expected a task named tomorrow without due date, got %#v", create)
	}
}

func TestParse_NothingToDo(t *testing.T) {
	for _, args := range [][]string{nil, {}, {"", "  "}} {
		_, err := newParser().Parse(args)
		if !errors.Is(err, commands.ErrNothingToDo) {
			t.Errorf("%q: expected ErrNothingToDo, got %v", args, err)
		}
	}
}

func TestParse_Unrecognized(t *testing.T) {
	for _, input := range []string{"eng/web/extra", "eng @alice", "/web buy milk"} {
		_, err := newParser().Parse([]string{input})
		var unrec *commands.UnrecognizedError
		if !errors.As(err, &unrec) {
			t.Errorf("%q: expected UnrecognizedError, got %v", input, err)
		}
	}
}

func TestRegistry_DuplicateKind(t *testing.T) {
	r := commands.NewRegistry()
	p := commands.DefaultRegistry.Patterns()[0]
	if err := r.Register(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(p); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestRegistry_DefaultOrder(t *testing.T) {
	want := []commands.Kind{
		commands.KindFinish,
		commands.KindListWorkspace,
		commands.KindListProject,
		commands.KindCreateInWorkspace,
		commands.KindCreateInProject,
	}
	got := commands.DefaultRegistry.Patterns()
	if len(got) != len(want) {
		t.Fatalf("expected %d patterns, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Kind != want[i] {
			t.Errorf("pattern %d: expected %s, got %s", i, want[i], got[i].Kind)
		}
	}
}

func TestParser_Usage(t *testing.T) {
	got := newParser().Usage()
	if len(got) != 5 {
		t.Fatalf("expected a usage line per shape, got %v", got)
	}
	if got[0] != "finish <task-id>" || got[1] != "<workspace>" {
		t.Errorf("expected usage in priority order, got %v", got)
	}
}

func TestParse_AssigneeTrailingPunctuation(t *testing.T) {
	tests := []struct {
		word     string
		assignee string
	}{
		{"@alice,", "alice"},
		{"@alice.", "alice"},
		{"@alice!?", "alice"},
		{"@alice.smith", "alice.smith"},
		{"@bob_2", "bob_2"},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			cmd, err := newParser().Parse([]string{"eng", "review", tt.word, "draft"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			create := cmd.(*commands.CreateCmd)
			if create.Assignee != tt.assignee {
				t.Errorf("expected assignee %q, got %q", tt.assignee, create.Assignee)
			}
			if create.Name != "review draft" {
				t.Errorf("expected name \"review draft\", got %q", create.Name)
			}
		})
	}
}
