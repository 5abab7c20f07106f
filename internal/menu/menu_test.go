package menu

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/specialistvlad/erpindex/internal/courseindex"
	"github.com/specialistvlad/erpindex/internal/query"
	"github.com/specialistvlad/erpindex/internal/roster"
	"github.com/specialistvlad/erpindex/internal/testutil"
	"github.com/specialistvlad/erpindex/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, r *roster.Roster) (context.Context, Session) {
	t.Helper()
	ctx, _ := testutil.Context(t)
	db := courseindex.New()
	db.Build(ctx, r)
	return ctx, Session{
		Roster: r,
		Views:  views.Build(ctx, r),
		Index:  db,
		Engine: query.New(db, r),
	}
}

func runMenu(t *testing.T, input string, interactive bool) string {
	t.Helper()
	ctx, session := newSession(t, testutil.ScenarioA())
	var out bytes.Buffer
	err := New(strings.NewReader(input), &out, session, interactive).Run(ctx)
	require.NoError(t, err)
	return out.String()
}

func TestRun_ListingsAndExit(t *testing.T) {
	out := runMenu(t, "1\n2\n3\n4\n0\n", false)

	assert.Equal(t, 1, strings.Count(out, "=== Students (insertion order) ==="))
	assert.Equal(t, 3, strings.Count(out, "=== Students (indexed view) ==="))
	assert.True(t, strings.HasSuffix(out, "Exiting ERP.\n"))

	// By-name listing puts Ann before Bob.
	byName := out[strings.Index(out, "=== Students (indexed view) ==="):]
	assert.Less(t, strings.Index(byName, "Name: Ann"), strings.Index(byName, "Name: Bob"))
}

func TestRun_Queries(t *testing.T) {
	out := runMenu(t, "5\n X \n6\nX\n7\n6\nNOPE\n5\n0\n", false)

	assert.Contains(t, out, "Students with grade >= 9 in course 'X':\nName: Bob")
	assert.Contains(t, out, "Students with grade >= 7 in course 'X':\nName: Ann, Roll: 1, Branch: CSE, StartingYear: 2024\nName: Bob")
	assert.Contains(t, out, "Students with grade >= 5 in course 'NOPE':\n(none)\n")
}

func TestRun_RecoversFromBadInput(t *testing.T) {
	out := runMenu(t, "abc\n\n42\n6\nX\nnine\n1\n0\n", false)

	assert.Equal(t, 2, strings.Count(out, "Invalid input. Try again."))
	assert.Contains(t, out, "Unknown choice. Try again.")
	assert.Contains(t, out, "Invalid grade.")
	assert.Contains(t, out, "=== Students (insertion order) ===")
	assert.Contains(t, out, "Exiting ERP.")
}

func TestRun_EOFEndsMenu(t *testing.T) {
	out := runMenu(t, "1", false)
	assert.Contains(t, out, "=== Students (insertion order) ===")
	assert.NotContains(t, out, "Exiting ERP.")

	out = runMenu(t, "5\n", false)
	assert.NotContains(t, out, "Students with grade")
}

func TestRun_InteractivePrompts(t *testing.T) {
	out := runMenu(t, "6\nX\n3\n0\n", true)

	assert.Contains(t, out, "===== ERP MENU =====")
	assert.Contains(t, out, "5. Query: students with grade >= 9 in a course")
	assert.Contains(t, out, "Enter choice: ")
	assert.Contains(t, out, "Enter course code (as in CSV, e.g. 801, OOPD): ")
	assert.Contains(t, out, "Enter minimum grade (0-10): ")
	assert.Contains(t, out, "Students with grade >= 3 in course 'X':")
}

func TestRun_NonInteractiveHasNoPrompts(t *testing.T) {
	out := runMenu(t, "0\n", false)
	assert.Equal(t, "Exiting ERP.\n", out)
}

func TestRun_ListCourses(t *testing.T) {
	ctx, session := newSession(t, testutil.MixedRoster())
	var out bytes.Buffer
	require.NoError(t, New(strings.NewReader("7\n0\n"), &out, session, false).Run(ctx))

	assert.Contains(t, out.String(), "801: 4 graded [1 0 0 0 0 0 0 1 0 1 1]")
	assert.Contains(t, out.String(), "DSA: 2 graded")
}

func TestRun_CancelledContext(t *testing.T) {
	_, session := newSession(t, testutil.ScenarioA())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(strings.NewReader("1\n"), &bytes.Buffer{}, session, false).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
