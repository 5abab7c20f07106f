// Package menu implements the interactive text menu over a loaded roster.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/specialistvlad/erpindex/internal/courseindex"
	"github.com/specialistvlad/erpindex/internal/ctxlog"
	"github.com/specialistvlad/erpindex/internal/query"
	"github.com/specialistvlad/erpindex/internal/render"
	"github.com/specialistvlad/erpindex/internal/roster"
	"github.com/specialistvlad/erpindex/internal/views"
)

const banner = `
===== ERP MENU =====
1. Show students (insertion order)
2. Show students sorted by name
3. Show students sorted by roll
4. Show students sorted by name (list iterator view)
5. Query: students with grade >= %d in a course
6. Query: students with grade >= custom threshold in a course
7. List indexed courses
0. Exit
`

// Session bundles the read-only structures the menu serves.
type Session struct {
	Roster *roster.Roster
	Views  *views.SortViews
	Index  *courseindex.DB
	Engine *query.Engine
}

// Menu reads choices line by line from in and writes results to out.
type Menu struct {
	in          *bufio.Reader
	out         io.Writer
	session     Session
	interactive bool
}

// New creates a menu. When interactive is false the menu text and prompts
// are not printed, which keeps piped output limited to results.
func New(in io.Reader, out io.Writer, session Session, interactive bool) *Menu {
	return &Menu{
		in:          bufio.NewReader(in),
		out:         out,
		session:     session,
		interactive: interactive,
	}
}

// Run loops until the user exits, input ends, or ctx is cancelled. Bad input
// is reported and the menu is shown again.
func (m *Menu) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Menu started.", "interactive", m.interactive)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if m.interactive {
			fmt.Fprintf(m.out, banner, m.session.Engine.DefaultThreshold())
		}
		line, err := m.prompt("Enter choice: ")
		if errors.Is(err, io.EOF) {
			logger.Debug("Input closed, leaving menu.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read choice: %w", err)
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid input. Try again.")
			continue
		}
		logger.Debug("Menu choice.", "choice", choice)

		if choice == 0 {
			fmt.Fprintln(m.out, "Exiting ERP.")
			return nil
		}
		if err := m.dispatch(choice); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (m *Menu) dispatch(choice int) error {
	s := m.session
	switch choice {
	case 1:
		render.InsertionOrder(m.out, s.Roster)
	case 2:
		render.ByIndex(m.out, s.Roster, s.Views.ByNameSeq())
	case 3:
		render.ByIndex(m.out, s.Roster, s.Views.ByRollSeq())
	case 4:
		render.ByIndex(m.out, s.Roster, s.Views.ByNameListSeq())
	case 5:
		course, err := m.prompt("Enter course code (as in CSV, e.g. 801, OOPD): ")
		if err != nil {
			return err
		}
		render.QueryResult(m.out, s.Engine.Top(course))
	case 6:
		course, err := m.prompt("Enter course code (as in CSV, e.g. 801, OOPD): ")
		if err != nil {
			return err
		}
		raw, err := m.prompt("Enter minimum grade (0-10): ")
		if err != nil {
			return err
		}
		threshold, convErr := strconv.Atoi(raw)
		if convErr != nil {
			fmt.Fprintln(m.out, "Invalid grade.")
			return nil
		}
		render.QueryResult(m.out, s.Engine.AtLeast(course, threshold))
	case 7:
		m.listCourses()
	default:
		fmt.Fprintln(m.out, "Unknown choice. Try again.")
	}
	return nil
}

func (m *Menu) listCourses() {
	courses := m.session.Index.Courses()
	if len(courses) == 0 {
		fmt.Fprintln(m.out, "(no courses indexed)")
		return
	}
	for _, c := range courses {
		hist, _ := m.session.Index.Histogram(c)
		total := 0
		for _, n := range hist {
			total += n
		}
		fmt.Fprintf(m.out, "%s: %d graded %v\n", c, total, hist)
	}
}

// prompt writes label when interactive and returns the next trimmed line.
// A final line without a trailing newline is still returned.
func (m *Menu) prompt(label string) (string, error) {
	if m.interactive {
		fmt.Fprint(m.out, label)
	}
	line, err := m.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
