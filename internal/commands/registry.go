package commands

import (
	"fmt"
	"regexp"
	"sync"
)

// Options carries the parts taken out of the input before create shapes are
// matched.
type Options struct {
	Assignee string // user name fragment, empty for the caller
	DueOn    string // YYYY-MM-DD, empty for none
}

// Pattern recognizes one command shape.
type Pattern struct {
	Kind  Kind
	Usage string

	// Expr must match the whole input; its groups are passed to Build.
	Expr *regexp.Regexp

	// AfterExtraction marks shapes tried only after the assignee and due
	// date have been removed from the input.
	AfterExtraction bool

	Build func(groups []string, opts Options) Command
}

// Registry holds patterns in priority order.
type Registry struct {
	mu       sync.RWMutex
	patterns []Pattern
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a pattern with the lowest priority so far.
// Returns an error if the kind is already registered.
func (r *Registry) Register(p Pattern) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.patterns {
		if existing.Kind == p.Kind {
			return fmt.Errorf("pattern already registered: %s", p.Kind)
		}
	}
	if p.Expr == nil || p.Build == nil {
		return fmt.Errorf("incomplete pattern: %s", p.Kind)
	}
	r.patterns = append(r.patterns, p)
	return nil
}

// Patterns returns the registered patterns in priority order.
func (r *Registry) Patterns() []Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Pattern, len(r.patterns))
	copy(result, r.patterns)
	return result
}

// Match returns the command built by the first pattern of the given phase
// that matches input.
func (r *Registry) Match(input string, afterExtraction bool, opts Options) (Command, bool) {
	for _, p := range r.Patterns() {
		if p.AfterExtraction != afterExtraction {
			continue
		}
		if m := p.Expr.FindStringSubmatch(input); m != nil {
			return p.Build(m[1:], opts), true
		}
	}
	return nil, false
}

// DefaultRegistry holds the five command shapes in priority order.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range []Pattern{
		{
			Kind:  KindFinish,
			Usage: "finish <task-id>",
			Expr:  regexp.MustCompile(`^finish (\d+)$`),
			Build: func(g []string, _ Options) Command { return &FinishCmd{TaskID: g[0]} },
		},
		{
			Kind:  KindListWorkspace,
			Usage: "<workspace>",
			Expr:  regexp.MustCompile(`^([^\s/]+)$`),
			Build: func(g []string, _ Options) Command { return &ListCmd{Workspace: g[0]} },
		},
		{
			Kind:  KindListProject,
			Usage: "<workspace>/<project>",
			Expr:  regexp.MustCompile(`^([^\s/]+)/([^\s/]+)$`),
			Build: func(g []string, _ Options) Command { return &ListCmd{Workspace: g[0], Project: g[1]} },
		},
		{
			Kind:            KindCreateInWorkspace,
			Usage:           "<workspace> <task name> [@assignee] [due date]",
			Expr:            regexp.MustCompile(`^([^\s/]+) (.+)$`),
			AfterExtraction: true,
			Build: func(g []string, o Options) Command {
				return &CreateCmd{Workspace: g[0], Name: g[1], Assignee: o.Assignee, DueOn: o.DueOn}
			},
		},
		{
			Kind:            KindCreateInProject,
			Usage:           "<workspace>/<project> <task name> [@assignee] [due date]",
			Expr:            regexp.MustCompile(`^([^\s/]+)/([^\s/]+) (.+)$`),
			AfterExtraction: true,
			Build: func(g []string, o Options) Command {
				return &CreateCmd{Workspace: g[0], Project: g[1], Name: g[2], Assignee: o.Assignee, DueOn: o.DueOn}
			},
		},
	} {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
	return r
}
