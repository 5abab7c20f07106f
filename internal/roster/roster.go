// Package roster provides the ordered collection that owns every loaded
// student record.
//
// A Roster is filled once during ingestion and frozen before any derived
// structure is built. Derived structures (the course index, the sorted
// views) refer to records by positional index only, so the roster must
// outlive them and must not change while they are in use.
package roster

import (
	"iter"

	"github.com/specialistvlad/erpindex/internal/student"
)

// Roster is an insertion-ordered collection of student records.
type Roster struct {
	students []student.Student
	frozen   bool
}

// New creates an empty roster with room for capacity records.
func New(capacity int) *Roster {
	return &Roster{students: make([]student.Student, 0, max(capacity, 0))}
}

// Of builds a frozen roster from the given records, in order. It is a
// convenience for tests and small fixtures.
func Of(students ...student.Student) *Roster {
	r := New(len(students))
	for _, s := range students {
		r.Append(s)
	}
	r.Freeze()
	return r
}

// Append adds a record at the end of the roster. A nil record occupies a slot
// but holds no data. Appending to a frozen roster is a programming error.
func (r *Roster) Append(s student.Student) {
	if r.frozen {
		panic("roster: append after freeze")
	}
	r.students = append(r.students, s)
}

// Freeze ends the ingestion phase. It is safe to call more than once.
func (r *Roster) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Roster) Frozen() bool {
	return r.frozen
}

// Len returns the number of slots in the roster.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.students)
}

// At returns the record at position i. ok is false when i is out of range or
// the slot is empty.
func (r *Roster) At(i int) (s student.Student, ok bool) {
	if r == nil || i < 0 || i >= len(r.students) {
		return nil, false
	}
	s = r.students[i]
	return s, s != nil
}

// All yields every non-empty slot with its position, in insertion order.
func (r *Roster) All() iter.Seq2[int, student.Student] {
	return func(yield func(int, student.Student) bool) {
		if r == nil {
			return
		}
		for i, s := range r.students {
			if s == nil {
				continue
			}
			if !yield(i, s) {
				return
			}
		}
	}
}

// Resolve maps positional indices to records, dropping any index that does
// not refer to a populated slot.
func (r *Roster) Resolve(indices []int) []student.Student {
	out := make([]student.Student, 0, len(indices))
	for _, i := range indices {
		if s, ok := r.At(i); ok {
			out = append(out, s)
		}
	}
	return out
}
