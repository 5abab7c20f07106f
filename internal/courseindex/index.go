package courseindex

import (
	"context"
	"slices"
	"sync"

	"github.com/specialistvlad/erpindex/internal/ctxlog"
	"github.com/specialistvlad/erpindex/internal/roster"
	"github.com/specialistvlad/erpindex/internal/student"
)

// Buckets holds, for one course, the roster positions of every student with
// each grade. Buckets[g] lists the students graded exactly g.
type Buckets [student.GradeBuckets][]int

// Stats summarizes the last Build.
type Stats struct {
	Students int // populated roster slots visited
	Courses  int // distinct courses indexed
	Entries  int // (student, course) entries indexed
	Skipped  int // entries dropped for an out-of-range grade
	Merged   int // repeated course entries folded into the student's best grade
}

// DB is the course index. The zero value is an empty, unbuilt index.
type DB struct {
	mu      sync.RWMutex
	built   bool
	courses map[string]*Buckets
	stats   Stats
}

// New creates an empty course index.
func New() *DB {
	return &DB{}
}

// Build replaces the index contents with entries derived from r. Every past
// course of every record contributes its roster position to the bucket of its
// grade; grades outside [0,10] are skipped. A record graded more than once in
// the same course is indexed once, under its highest grade.
func (db *DB) Build(ctx context.Context, r *roster.Roster) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building course index.", "roster_size", r.Len())

	courses := make(map[string]*Buckets, r.Len()*2)
	var stats Stats

	best := make(map[string]int)
	var order []string
	for pos, s := range r.All() {
		stats.Students++
		clear(best)
		order = order[:0]

		for course, grade := range s.PastCourses() {
			if !student.ValidGrade(grade) {
				stats.Skipped++
				logger.Debug("Skipping out-of-range grade.", "student", s.Name(), "course", course, "grade", grade)
				continue
			}
			if prev, seen := best[course]; seen {
				stats.Merged++
				best[course] = max(prev, grade)
				continue
			}
			best[course] = grade
			order = append(order, course)
		}

		for _, course := range order {
			b, ok := courses[course]
			if !ok {
				b = &Buckets{}
				courses[course] = b
			}
			grade := best[course]
			b[grade] = append(b[grade], pos)
			stats.Entries++
		}
	}
	stats.Courses = len(courses)

	db.mu.Lock()
	db.courses = courses
	db.stats = stats
	db.built = true
	db.mu.Unlock()

	logger.Debug("Course index built.", "courses", stats.Courses, "entries", stats.Entries, "skipped", stats.Skipped, "merged", stats.Merged)
}

// Built reports whether Build has completed at least once.
func (db *DB) Built() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.built
}

// QueryAtLeast returns the roster positions of every student with a grade of
// at least threshold in course. The threshold is clamped to [0,10]. Unknown
// courses, and queries against an unbuilt index, yield an empty slice.
func (db *DB) QueryAtLeast(course string, threshold int) []int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	b, ok := db.courses[course]
	if !ok {
		return []int{}
	}

	t := student.ClampGrade(threshold)
	n := 0
	for g := t; g <= student.MaxGrade; g++ {
		n += len(b[g])
	}
	result := make([]int, 0, n)
	for g := t; g <= student.MaxGrade; g++ {
		result = append(result, b[g]...)
	}
	return result
}

// Histogram returns the number of students in each grade bucket of course.
func (db *DB) Histogram(course string) (counts [student.GradeBuckets]int, ok bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	b, ok := db.courses[course]
	if !ok {
		return counts, false
	}
	for g := range b {
		counts[g] = len(b[g])
	}
	return counts, true
}

// Courses returns every indexed course in ascending order.
func (db *DB) Courses() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]string, 0, len(db.courses))
	for c := range db.courses {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Stats returns the summary of the last Build.
func (db *DB) Stats() Stats {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.stats
}
