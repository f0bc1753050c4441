// Package duedate peels a natural-language due date off the end of a task name.
package duedate

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// Layout is the format of extracted dates.
const Layout = "2006-01-02"

// stopWords may precede a date and are dropped with it.
var stopWords = map[string]bool{"due": true, "on": true, "for": true}

// Numeric dates are read month first. when has no rule for them, and its
// common slash rule reads day first.
var (
	fullLayouts  = []string{Layout, "2006/1/2", "1/2/2006", "1/2/06"}
	monthDayOnly = "1/2"
)

// Extractor finds trailing date expressions relative to Now.
type Extractor struct {
	Now    func() time.Time
	parser *when.Parser
}

// New creates an Extractor. A nil now uses time.Now.
func New(now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	w := when.New(nil)
	w.Add(en.All...)
	return &Extractor{Now: now, parser: w}
}

// Extract looks at the last two tokens for a date expression that runs to
// the end of the list. On a hit it drops the last token, and the one before
// it when that token is part of the date, a date on its own, or a stop word
// (due, on, for). It returns the remaining tokens and the date as YYYY-MM-DD.
//
// Extraction never consumes every token; a name made only of date words is
// left alone.
func (e *Extractor) Extract(tokens []string) ([]string, string, bool) {
	n := len(tokens)
	if n < 2 {
		return tokens, "", false
	}

	start := n - 2
	penultimate := tokens[start]
	cut := n - 1

	due, ok := e.numeric(tokens[n-1])
	if ok {
		if stopWords[strings.ToLower(penultimate)] {
			cut = start
		}
	} else {
		text := strings.Join(tokens[start:], " ")
		r, err := e.parser.Parse(text, e.Now())
		if err != nil || r == nil {
			return tokens, "", false
		}
		// A match has to start on a word and run to the end of the text.
		if r.Index > 0 && text[r.Index-1] != ' ' {
			return tokens, "", false
		}
		if strings.TrimSpace(text[r.Index+len(r.Text):]) != "" {
			return tokens, "", false
		}
		// Bare numbers here are clock times, not days.
		if strings.Trim(r.Text, "0123456789:-./ ") == "" {
			return tokens, "", false
		}
		if r.Index < len(penultimate) || stopWords[strings.ToLower(penultimate)] || e.isDate(penultimate) {
			cut = start
		}
		due = r.Time.Format(Layout)
	}
	if cut == 0 {
		return tokens, "", false
	}

	rest := make([]string, cut)
	copy(rest, tokens[:cut])
	return rest, due, true
}

// numeric parses an explicit date such as 2026-12-01, 12/1/2026 or 12/25.
// A date without a year is the next such day on or after today.
func (e *Extractor) numeric(word string) (string, bool) {
	for _, layout := range fullLayouts {
		if t, err := time.Parse(layout, word); err == nil {
			return t.Format(Layout), true
		}
	}

	md, err := time.Parse(monthDayOnly, word)
	if err != nil {
		return "", false
	}
	now := e.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(now.Year(), md.Month(), md.Day(), 0, 0, 0, 0, time.UTC)
	if t.Before(today) {
		t = t.AddDate(1, 0, 0)
	}
	// Feb 29 outside a leap year.
	if t.Day() != md.Day() {
		return "", false
	}
	return t.Format(Layout), true
}

// isDate reports whether word is a date on its own.
func (e *Extractor) isDate(word string) bool {
	if _, ok := e.numeric(word); ok {
		return true
	}
	r, err := e.parser.Parse(word, e.Now())
	return err == nil && r != nil && r.Index == 0 && len(r.Text) == len(word)
}
