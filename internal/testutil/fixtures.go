package testutil

import (
	"github.com/specialistvlad/erpindex/internal/roster"
	"github.com/specialistvlad/erpindex/internal/student"
)

// Grade is a (course, grade) pair for building fixture records.
type Grade struct {
	Course string
	Value  int
}

// IIIT builds an IIIT record with the given past course grades.
func IIIT(name, roll string, grades ...Grade) *student.IIIT {
	s := student.NewIIIT(name, roll, "CSE", 2024)
	for _, g := range grades {
		s.AddPastCourse(g.Course, g.Value)
	}
	return s
}

// ScenarioA is the two-student roster used throughout the index and view
// tests: Bob (roll "2", X:9) followed by Ann (roll "1", X:7).
func ScenarioA() *roster.Roster {
	return roster.Of(
		IIIT("Bob", "2", Grade{"X", 9}),
		IIIT("Ann", "1", Grade{"X", 7}),
	)
}

// MixedRoster returns a roster mixing both variants, with overlapping course
// codes across institutions, shared names, and one empty slot.
func MixedRoster() *roster.Roster {
	r := roster.New(8)

	a := student.NewIIIT("Meera", "MT25003", "CSE", 2025)
	a.AddCurrentCourse("OOPD")
	a.AddPastCourse("801", 9)
	a.AddPastCourse("DSA", 10)
	a.AddPastCourse("ML", 6)
	r.Append(a)

	b := student.NewIIT("Arjun", 2025432, "EE", 2024)
	b.AddCurrentCourse(615)
	b.AddPastCourse(801, 7)
	b.AddPastCourse(601, 9)
	r.Append(b)

	r.Append(nil)

	c := student.NewIIIT("Zoya", "PhD25033", "ECE", 2023)
	c.AddPastCourse("801", 10)
	c.AddPastCourse("DSA", 4)
	c.AddPastCourse("ML", 15)
	r.Append(c)

	d := student.NewIIT("Arjun", 2019001, "ME", 2019)
	d.AddPastCourse(601, 9)
	d.AddPastCourse(801, 0)
	d.AddPastCourse(701, -2)
	r.Append(d)

	e := student.NewIIIT("Kabir", "MT25010", "CSE", 2025)
	r.Append(e)

	r.Freeze()
	return r
}
