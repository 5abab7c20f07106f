// Package render formats students and query results for the console.
package render

import (
	"fmt"
	"io"
	"iter"

	"github.com/specialistvlad/erpindex/internal/query"
	"github.com/specialistvlad/erpindex/internal/roster"
	"github.com/specialistvlad/erpindex/internal/student"
)

// Student writes the four uniform attributes of s on one line.
func Student(w io.Writer, s student.Student) {
	fmt.Fprintf(w, "Name: %s, Roll: %s, Branch: %s, StartingYear: %d\n",
		s.Name(), s.Roll(), s.Branch(), s.StartingYear())
}

// InsertionOrder writes every student in r in load order.
func InsertionOrder(w io.Writer, r *roster.Roster) {
	fmt.Fprintln(w, "=== Students (insertion order) ===")
	for _, s := range r.All() {
		Student(w, s)
	}
	fmt.Fprintln(w, "==================================")
}

// ByIndex writes the students at the given roster positions, in the order
// the sequence yields them. Positions that are out of range or hold no record
// are skipped.
func ByIndex(w io.Writer, r *roster.Roster, positions iter.Seq[int]) {
	fmt.Fprintln(w, "=== Students (indexed view) ===")
	for i := range positions {
		if s, ok := r.At(i); ok {
			Student(w, s)
		}
	}
	fmt.Fprintln(w, "================================")
}

// QueryResult writes a query header followed by the matching students, or
// "(none)".
func QueryResult(w io.Writer, res query.Result) {
	fmt.Fprintf(w, "Students with grade >= %d in course '%s':\n", res.Threshold, res.Course)
	if res.Empty() {
		fmt.Fprintln(w, "(none)")
		return
	}
	for _, s := range res.Students {
		Student(w, s)
	}
}
