package commands

import (
	"errors"
	"regexp"
	"strings"

	"asana/internal/duedate"
)

// ErrNothingToDo is returned for empty input.
var ErrNothingToDo = errors.New("nothing to do here")

// UnrecognizedError reports input that matches no command shape.
type UnrecognizedError struct {
	Input string
}

func (e *UnrecognizedError) Error() string {
	return "could not understand: " + e.Input
}

// mention drops trailing punctuation, as in "@alice,".
var mention = regexp.MustCompile(`^@(\S*\w)\W*$`)

// Parser classifies argument vectors. It never talks to the backend.
type Parser struct {
	registry *Registry
	dates    *duedate.Extractor
}

// NewParser creates a parser over registry, using dates for due dates.
func NewParser(registry *Registry, dates *duedate.Extractor) *Parser {
	return &Parser{registry: registry, dates: dates}
}

// Parse joins args with single spaces and returns the command of the first
// matching shape.
//
// The finish and list shapes are tried on the input as typed. Before the
// create shapes, @mention words are removed (the last one names the
// assignee) and a trailing due date is taken off the task name.
func (p *Parser) Parse(args []string) (Command, error) {
	words := strings.Fields(strings.Join(args, " "))
	if len(words) == 0 {
		return nil, ErrNothingToDo
	}

	input := strings.Join(words, " ")
	if cmd, ok := p.registry.Match(input, false, Options{}); ok {
		return cmd, nil
	}

	words, assignee := extractAssignee(words)
	opts := Options{Assignee: assignee}
	if len(words) > 1 && p.dates != nil {
		if name, due, ok := p.dates.Extract(words[1:]); ok {
			words = append([]string{words[0]}, name...)
			opts.DueOn = due
		}
	}

	if cmd, ok := p.registry.Match(strings.Join(words, " "), true, opts); ok {
		return cmd, nil
	}
	return nil, &UnrecognizedError{Input: input}
}

// Usage returns one line per command shape, in priority order.
func (p *Parser) Usage() []string {
	patterns := p.registry.Patterns()
	lines := make([]string, 0, len(patterns))
	for _, pt := range patterns {
		if pt.Usage != "" {
			lines = append(lines, pt.Usage)
		}
	}
	return lines
}

// extractAssignee removes every @mention word and returns the remaining
// words with the fragment of the last mention.
func extractAssignee(words []string) ([]string, string) {
	rest := make([]string, 0, len(words))
	var assignee string
	for _, w := range words {
		if m := mention.FindStringSubmatch(w); m != nil {
			assignee = m[1]
			continue
		}
		rest = append(rest, w)
	}
	return rest, assignee
}
