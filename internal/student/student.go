package student

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
)

// Student is the capability set every record variant satisfies. All
// institution-specific fields are rendered as text.
type Student interface {
	Name() string
	// Roll returns the roll number rendered as text.
	Roll() string
	Branch() string
	StartingYear() uint
	Institute() Institute

	// CurrentCourses yields the text form of every current course code in
	// the order they were added.
	CurrentCourses() iter.Seq[string]

	// PastCourses yields (course, grade) pairs in the order they were added.
	// The sequence is finite and may be ranged over any number of times.
	PastCourses() iter.Seq2[string, int]

	// HasGradeAtLeast reports whether any past course matching course has a
	// grade of at least threshold. Negative thresholds are treated as zero.
	HasGradeAtLeast(course string, threshold int) bool
}

// Code is the closed set of primitive types a variant may use for roll
// numbers and course codes.
type Code interface {
	~string | ~int | ~uint
}

// PastCourse is one graded course entry.
type PastCourse[C Code] struct {
	Code  C
	Grade int
}

// Record is the generic backing store for a variant. R is the roll number
// type and C the course code type; both are fixed per variant.
type Record[R, C Code] struct {
	institute    Institute
	name         string
	roll         R
	branch       string
	startingYear uint

	current []C
	past    []PastCourse[C]
}

// IIIT is the IIIT Delhi variant: text roll numbers ("MT25003") and text
// course codes ("OOPD", "801").
type IIIT = Record[string, string]

// IIT is the IIT Delhi variant: integer roll numbers and integer course codes.
type IIT = Record[uint, int]

var (
	_ Student = (*IIIT)(nil)
	_ Student = (*IIT)(nil)
)

// NewIIIT builds an empty IIIT record.
func NewIIIT(name, roll, branch string, startingYear uint) *IIIT {
	return &IIIT{
		institute:    IIITDelhi,
		name:         name,
		roll:         roll,
		branch:       branch,
		startingYear: startingYear,
	}
}

// NewIIT builds an empty IIT record.
func NewIIT(name string, roll uint, branch string, startingYear uint) *IIT {
	return &IIT{
		institute:    IITDelhi,
		name:         name,
		roll:         roll,
		branch:       branch,
		startingYear: startingYear,
	}
}

func (r *Record[R, C]) Name() string         { return r.name }
func (r *Record[R, C]) Roll() string         { return toText(r.roll) }
func (r *Record[R, C]) Branch() string       { return r.branch }
func (r *Record[R, C]) StartingYear() uint   { return r.startingYear }
func (r *Record[R, C]) Institute() Institute { return r.institute }

// RollValue returns the roll number in its native type.
func (r *Record[R, C]) RollValue() R { return r.roll }

// CurrentCourseCodes returns a copy of the current course codes in their
// native type.
func (r *Record[R, C]) CurrentCourseCodes() []C {
	return slices.Clone(r.current)
}

// PastCourseEntries returns a copy of the past course entries in their native
// type.
func (r *Record[R, C]) PastCourseEntries() []PastCourse[C] {
	return slices.Clone(r.past)
}

// AddCurrentCourse appends a current course. Only used during ingestion.
func (r *Record[R, C]) AddCurrentCourse(code C) {
	r.current = append(r.current, code)
}

// AddPastCourse appends a graded course. The grade is stored as given; range
// checks belong to the caller.
func (r *Record[R, C]) AddPastCourse(code C, grade int) {
	r.past = append(r.past, PastCourse[C]{Code: code, Grade: grade})
}

func (r *Record[R, C]) CurrentCourses() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, c := range r.current {
			if !yield(toText(c)) {
				return
			}
		}
	}
}

func (r *Record[R, C]) PastCourses() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, pc := range r.past {
			if !yield(toText(pc.Code), pc.Grade) {
				return
			}
		}
	}
}

func (r *Record[R, C]) HasGradeAtLeast(course string, threshold int) bool {
	threshold = max(threshold, 0)
	for code, grade := range r.PastCourses() {
		if code == course && grade >= threshold {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (r *Record[R, C]) String() string {
	return fmt.Sprintf("%s(%s, %s)", r.institute, r.name, r.Roll())
}

// toText renders a code the same way for every variant so that course and
// roll comparisons across institutions stay consistent.
func toText[T Code](v T) string {
	switch x := any(v).(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	default:
		return fmt.Sprint(v)
	}
}
