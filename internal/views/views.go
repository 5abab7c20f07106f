// Package views builds the sorted orderings of a roster. A view is a
// permutation of roster positions, never a copy of the records.
package views

import (
	"cmp"
	"container/list"
	"context"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/specialistvlad/erpindex/internal/ctxlog"
	"github.com/specialistvlad/erpindex/internal/roster"
	"github.com/specialistvlad/erpindex/internal/student"
	"golang.org/x/sync/errgroup"
)

// SortViews holds the orderings derived from one roster.
type SortViews struct {
	// ByName orders positions by student name.
	ByName []int
	// ByRoll orders positions by the text form of the roll number.
	ByRoll []int
	// ByNameList carries the same ordering as ByName in a linked list, for
	// consumers that walk a forward-only sequence.
	ByNameList *list.List
}

// Build sorts r by name and by roll. The two sorts run in parallel, each on
// its own output slice, and both are complete when Build returns. r must not
// be modified while Build runs.
func Build(ctx context.Context, r *roster.Roster) *SortViews {
	logger := ctxlog.FromContext(ctx)
	n := r.Len()
	logger.Debug("Building sort views.", "roster_size", n)

	v := &SortViews{
		ByName: identity(n),
		ByRoll: identity(n),
	}

	var g errgroup.Group
	g.Go(func() error {
		sortBy(ctx, "by_name", r, v.ByName, student.Student.Name)
		return nil
	})
	g.Go(func() error {
		sortBy(ctx, "by_roll", r, v.ByRoll, student.Student.Roll)
		return nil
	})
	// Neither task can fail; Wait is the join point.
	_ = g.Wait()

	v.ByNameList = list.New()
	for _, i := range v.ByName {
		v.ByNameList.PushBack(i)
	}

	logger.Debug("Sort views built.")
	return v
}

// sortBy orders positions by key. A position whose slot is empty compares by
// raw position against anything else.
func sortBy(ctx context.Context, name string, r *roster.Roster, positions []int, key func(student.Student) string) {
	start := time.Now()

	keys := make([]string, len(positions))
	present := make([]bool, len(positions))
	for i := range positions {
		if s, ok := r.At(i); ok {
			keys[i] = key(s)
			present[i] = true
		}
	}

	slices.SortFunc(positions, func(a, b int) int {
		if !present[a] || !present[b] {
			return cmp.Compare(a, b)
		}
		return strings.Compare(keys[a], keys[b])
	})

	ctxlog.FromContext(ctx).Debug("Sort finished.", "view", name, "duration", time.Since(start))
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// ByNameSeq walks ByName by position.
func (v *SortViews) ByNameSeq() iter.Seq[int] {
	return slices.Values(v.ByName)
}

// ByRollSeq walks ByRoll by position.
func (v *SortViews) ByRollSeq() iter.Seq[int] {
	return slices.Values(v.ByRoll)
}

// ByNameListSeq walks ByNameList front to back.
func (v *SortViews) ByNameListSeq() iter.Seq[int] {
	return func(yield func(int) bool) {
		if v.ByNameList == nil {
			return
		}
		for e := v.ByNameList.Front(); e != nil; e = e.Next() {
			if !yield(e.Value.(int)) {
				return
			}
		}
	}
}
