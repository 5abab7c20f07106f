package views

import (
	"fmt"
	"slices"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/erpindex/internal/roster"
	"github.com/specialistvlad/erpindex/internal/student"
	"github.com/specialistvlad/erpindex/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isPermutation(t *testing.T, n int, got []int) {
	t.Helper()
	sorted := slices.Clone(got)
	sort.Ints(sorted)
	want := make([]int, n)
	for i := range want {
		want[i] = i
	}
	if diff := cmp.Diff(want, sorted); diff != "" {
		t.Errorf("not a permutation of 0..%d (-want +got):\n%s", n-1, diff)
	}
}

func TestBuild_ScenarioA(t *testing.T) {
	ctx, _ := testutil.Context(t)
	v := Build(ctx, testutil.ScenarioA())

	assert.Equal(t, []int{1, 0}, v.ByName)
	assert.Equal(t, []int{1, 0}, v.ByRoll)
	assert.Equal(t, []int{1, 0}, slices.Collect(v.ByNameListSeq()))
}

func TestBuild_OrdersAcrossVariants(t *testing.T) {
	ctx, _ := testutil.Context(t)
	// Only populated slots: the empty-slot fallback does not give a total
	// order, so sortedness is only checked on a fully populated roster.
	src := testutil.MixedRoster()
	r := roster.New(src.Len())
	for _, s := range src.All() {
		r.Append(s)
	}
	r.Freeze()
	v := Build(ctx, r)

	isPermutation(t, r.Len(), v.ByName)
	isPermutation(t, r.Len(), v.ByRoll)

	var names []string
	for _, i := range v.ByName {
		if s, ok := r.At(i); ok {
			names = append(names, s.Name())
		}
	}
	assert.True(t, slices.IsSorted(names), "names out of order: %v", names)

	var rolls []string
	for _, i := range v.ByRoll {
		if s, ok := r.At(i); ok {
			rolls = append(rolls, s.Roll())
		}
	}
	// Roll comparison is on text, so "2019001" < "2025432" < "MT25003" < "PhD25033".
	assert.Equal(t, []string{"2019001", "2025432", "MT25003", "MT25010", "PhD25033"}, rolls)
	assert.True(t, slices.IsSorted(rolls), "rolls out of order: %v", rolls)
	assert.Equal(t, "2019001", rolls[0])
}

func TestBuild_ListViewMatchesNameView(t *testing.T) {
	ctx, _ := testutil.Context(t)
	v := Build(ctx, testutil.MixedRoster())

	require.Equal(t, len(v.ByName), v.ByNameList.Len())
	if diff := cmp.Diff(v.ByName, slices.Collect(v.ByNameListSeq())); diff != "" {
		t.Errorf("list view differs from name view (-name +list):\n%s", diff)
	}
	assert.Equal(t, v.ByName, slices.Collect(v.ByNameSeq()))
	assert.Equal(t, v.ByRoll, slices.Collect(v.ByRollSeq()))
}

func TestBuild_CaseSensitiveByteOrder(t *testing.T) {
	ctx, _ := testutil.Context(t)
	r := roster.Of(
		testutil.IIIT("bob", "b"),
		testutil.IIIT("Zed", "a"),
		testutil.IIIT("Bob", "B"),
	)
	v := Build(ctx, r)

	// Upper-case letters sort before lower-case ones.
	assert.Equal(t, []int{2, 1, 0}, v.ByName)
	assert.Equal(t, []int{2, 1, 0}, v.ByRoll)
}

func TestBuild_EmptySlotsStayInView(t *testing.T) {
	ctx, _ := testutil.Context(t)
	r := roster.New(3)
	r.Append(nil)
	r.Append(nil)
	r.Freeze()

	v := Build(ctx, r)
	assert.Equal(t, []int{0, 1}, v.ByName)
	assert.Equal(t, []int{0, 1}, v.ByRoll)
}

func TestBuild_EmptyRoster(t *testing.T) {
	ctx, _ := testutil.Context(t)
	v := Build(ctx, roster.Of())

	assert.Empty(t, v.ByName)
	assert.Empty(t, v.ByRoll)
	assert.Equal(t, 0, v.ByNameList.Len())
	assert.Empty(t, slices.Collect(v.ByNameListSeq()))
}

func TestBuild_LargeRoster(t *testing.T) {
	ctx, logs := testutil.Context(t)
	const n = 2000
	r := roster.New(n)
	for i := 0; i < n; i++ {
		s := student.NewIIT(fmt.Sprintf("student-%04d", (i*7919)%n), uint((i*104729)%n), "EE", 2024)
		r.Append(s)
	}
	r.Freeze()

	v := Build(ctx, r)
	isPermutation(t, n, v.ByName)
	isPermutation(t, n, v.ByRoll)

	for k := 1; k < n; k++ {
		a, _ := r.At(v.ByName[k-1])
		b, _ := r.At(v.ByName[k])
		require.LessOrEqual(t, a.Name(), b.Name())
	}
	assert.Contains(t, logs.String(), "view=by_name")
	assert.Contains(t, logs.String(), "view=by_roll")
}
