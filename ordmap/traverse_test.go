// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ordmap

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/require"
)

// newIntSet returns a unique sorted map holding vals.
func newIntSet(t *testing.T, vals ...int) *Map[int, int] {
	t.Helper()

	m, err := NewSorted(cmp.Compare[int], true)
	require.NoError(t, err)
	for _, v := range vals {
		require.NoError(t, m.Insert(v))
	}
	return m
}

// newIntList returns a sorted map holding vals, duplicates allowed.
func newIntList(t *testing.T, vals ...int) *Map[int, int] {
	t.Helper()

	m, err := NewSorted(cmp.Compare[int], false)
	require.NoError(t, err)
	for _, v := range vals {
		require.NoError(t, m.Insert(v))
	}
	return m
}

// TestTraverseCount ensures a traversal without operator counts the selected
// elements.
func TestTraverseCount(t *testing.T) {
	t.Parallel()

	m := newIntSet(t, 1, 2, 3, 4, 5, 6, 7)
	even := func(v int) bool { return v%2 == 0 }

	tests := []struct {
		name string
		sel  Selector[int]
		want int
	}{
		{name: "all", want: 7},
		{name: "even", sel: even, want: 3},
		{name: "none", sel: func(int) bool { return false }, want: 0},
	}
	for _, test := range tests {
		require.Equal(t, test.want, m.Traverse(nil, test.sel), test.name)
		require.Equal(t, test.want, m.TraverseBackward(nil, test.sel),
			test.name)
	}
	require.Equal(t, 7, m.Size())

	empty := NewList[int]()
	require.Equal(t, 0, empty.Traverse(nil, nil))
	require.Equal(t, 0, empty.TraverseBackward(GetOne[int](nil), nil))
}

// TestTraverseStop ensures a Stop verdict ends the traversal and that the
// returned count includes the stopping element.
func TestTraverseStop(t *testing.T) {
	t.Parallel()

	m := newIntSet(t, 1, 2, 3, 4, 5)
	var seen []int
	n := m.Traverse(func(v int) Verdict {
		seen = append(seen, v)
		if v == 3 {
			return Stop
		}
		return Continue
	}, nil)
	require.Equal(t, 3, n)
	require.Equal(t, []int{1, 2, 3}, seen)

	seen = nil
	n = m.TraverseBackward(func(v int) Verdict {
		seen = append(seen, v)
		return Stop
	}, func(v int) bool { return v < 4 })
	require.Equal(t, 1, n)
	require.Equal(t, []int{3}, seen)
}

// TestTraverseRemoveVerdict ensures elements can be removed through the
// verdict while traversing in both directions.
func TestTraverseRemoveVerdict(t *testing.T) {
	t.Parallel()

	removeEven := func(v int) Verdict {
		if v%2 == 0 {
			return Remove
		}
		return Continue
	}

	m := newIntList(t, 6, 1, 2, 2, 5, 4, 3, 8, 7)
	require.Equal(t, 9, m.Traverse(removeEven, nil))
	require.Equal(t, []int{1, 3, 5, 7}, collect(m, false))
	require.NoError(t, m.Check())

	m = newIntList(t, 6, 1, 2, 2, 5, 4, 3, 8, 7)
	require.Equal(t, 9, m.TraverseBackward(removeEven, nil))
	require.Equal(t, []int{7, 5, 3, 1}, collect(m, true))
	require.NoError(t, m.Check())

	// Remove and Stop together remove the element before stopping.
	n := m.Traverse(func(int) Verdict { return Remove | Stop }, nil)
	require.Equal(t, 1, n)
	require.Equal(t, []int{3, 5, 7}, collect(m, false))
}

// TestTraverseNestedRemoval ensures an operator may remove other elements,
// including the next one to visit, through nested calls on the same map.
func TestTraverseNestedRemoval(t *testing.T) {
	t.Parallel()

	m := newIntSet(t, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	var visited []int
	n := m.Traverse(func(v int) Verdict {
		visited = append(visited, v)
		_, err := m.FindByKey(v+1, RemoveOne[int](nil))
		require.NoError(t, err)
		return Continue
	}, nil)
	require.Equal(t, 5, n)
	require.Equal(t, []int{1, 3, 5, 7, 9}, visited)
	require.Equal(t, []int{1, 3, 5, 7, 9}, collect(m, false))
	require.NoError(t, m.Check())

	// Backward, removing the previous element.
	m = newIntSet(t, 1, 2, 3, 4, 5, 6)
	visited = nil
	m.TraverseBackward(func(v int) Verdict {
		visited = append(visited, v)
		m.Traverse(RemoveOne[int](nil), func(w int) bool {
			return w == v-1
		})
		return Continue
	}, nil)
	require.Equal(t, []int{6, 4, 2}, visited)
	require.Equal(t, []int{2, 4, 6}, collect(m, false))
	require.NoError(t, m.Check())
}

// TestTraverseNestedRemovesCurrent ensures an operator removing the element it
// was applied to through a nested call does not break the traversal, even
// when it also asks for removal in its verdict.
func TestTraverseNestedRemovesCurrent(t *testing.T) {
	t.Parallel()

	m := newIntSet(t, 1, 2, 3, 4, 5)
	var visited []int
	n := m.Traverse(func(v int) Verdict {
		visited = append(visited, v)
		count, err := m.FindByKey(v, RemoveOne[int](nil))
		require.NoError(t, err)
		require.Equal(t, 1, count)
		return Remove
	}, nil)
	require.Equal(t, 5, n)
	require.Equal(t, []int{1, 2, 3, 4, 5}, visited)
	require.Equal(t, 0, m.Size())
	require.NoError(t, m.Check())
}

// TestTraverseReinsert ensures an operator may replace the current element by
// one ordered on the already visited side without the traversal revisiting
// it.
func TestTraverseReinsert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		backward bool
		delta    int
		want     []int
	}{
		{name: "forward decrement", delta: -1, want: []int{0, 1, 2, 9, 19}},
		{name: "backward increment", backward: true, delta: 1,
			want: []int{2, 3, 4, 11, 21}},
	}

	for _, test := range tests {
		m := newIntList(t, 1, 2, 3, 10, 20)
		op := func(v int) Verdict {
			require.NoError(t, m.Insert(v+test.delta), test.name)
			return Remove
		}

		var n int
		if test.backward {
			n = m.TraverseBackward(op, nil)
		} else {
			n = m.Traverse(op, nil)
		}
		require.Equal(t, 5, n, test.name)
		require.Equal(t, test.want, collect(m, false), test.name)
		require.NoError(t, m.Check(), test.name)
	}
}

// TestFindByKey exercises lookups on chains of equal keys.
func TestFindByKey(t *testing.T) {
	t.Parallel()

	type entry struct {
		word string
		def  string
	}
	m, err := New(&Config[*entry, string]{
		Key:     func(e *entry) string { return e.word },
		Compare: func(a, b string) int { return cmp.Compare(a, b) },
	})
	require.NoError(t, err)

	entries := []*entry{
		{"orange", "fruit"}, {"apricot", "fruit"}, {"orange", "colour"},
		{"orange", "river"}, {"plum", "fruit"}, {"orange", "telecom"},
	}
	for _, e := range entries {
		require.NoError(t, m.Insert(e))
	}

	defs := func(word string) []string {
		var out []string
		_, err := m.FindByKey(word, func(e *entry) Verdict {
			out = append(out, e.def)
			return Continue
		})
		require.NoError(t, err)
		return out
	}
	require.Equal(t, []string{"fruit", "colour", "river", "telecom"},
		defs("orange"))
	require.Nil(t, defs("banana"))

	// Remove an entry in the middle of the chain.
	n, err := m.FindByKey("orange", func(e *entry) Verdict {
		if e.def == "river" {
			return Remove | Stop
		}
		return Continue
	})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []string{"fruit", "colour", "telecom"}, defs("orange"))
	require.NoError(t, m.Check())

	// Removing the head keeps the node and the tree untouched.
	h := m.Height()
	var head *entry
	_, err = m.FindByKey("orange", RemoveOne(&head))
	require.NoError(t, err)
	require.Same(t, entries[0], head)
	require.Equal(t, h, m.Height())
	require.NoError(t, m.Check())

	// Emptying the chain deletes the node.
	var destroyed []string
	n, err = m.FindByKey("orange", RemoveAll(func(e *entry) {
		destroyed = append(destroyed, e.def)
	}))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []string{"colour", "telecom"}, destroyed)
	require.Equal(t, 2, m.Size())
	require.NoError(t, m.Check())

	// Inserting other keys from the operator does not extend the lookup.
	n, err = m.FindByKey("plum", func(e *entry) Verdict {
		require.NoError(t, m.Insert(&entry{"pear", "fruit"}))
		require.NoError(t, m.Insert(&entry{"quince", "fruit"}))
		return Continue
	})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, 4, m.Size())
	require.NoError(t, m.Check())
}
