// Package query answers "grade at least T in course C" questions on top of a
// built course index.
package query

import (
	"strings"

	"github.com/specialistvlad/erpindex/internal/courseindex"
	"github.com/specialistvlad/erpindex/internal/roster"
	"github.com/specialistvlad/erpindex/internal/student"
)

// DefaultThreshold is the grade used by Top.
const DefaultThreshold = 9

// Result is the answer to one threshold query.
type Result struct {
	Course string
	// Threshold is the value the caller asked for, before clamping.
	Threshold int
	Students  []student.Student
}

// Empty reports whether the query matched nobody.
func (r Result) Empty() bool {
	return len(r.Students) == 0
}

// Engine resolves queries against an index and the roster it was built from.
type Engine struct {
	index  *courseindex.DB
	roster *roster.Roster
	def    int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithDefaultThreshold overrides DefaultThreshold for Top.
func WithDefaultThreshold(t int) Option {
	return func(e *Engine) { e.def = t }
}

// New creates an engine. index must have been built from r.
func New(index *courseindex.DB, r *roster.Roster, opts ...Option) *Engine {
	e := &Engine{index: index, roster: r, def: DefaultThreshold}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultThreshold returns the threshold Top uses.
func (e *Engine) DefaultThreshold() int {
	return e.def
}

// Top returns the students at or above the default threshold in course.
func (e *Engine) Top(course string) Result {
	return e.AtLeast(course, e.def)
}

// AtLeast returns the students with a grade of at least threshold in course,
// lowest qualifying grade first. Surrounding whitespace in course is ignored.
func (e *Engine) AtLeast(course string, threshold int) Result {
	course = strings.TrimSpace(course)
	return Result{
		Course:    course,
		Threshold: threshold,
		Students:  e.roster.Resolve(e.index.QueryAtLeast(course, threshold)),
	}
}
