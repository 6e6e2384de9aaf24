// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ordmap_test

import (
	"fmt"
	"strings"

	"github.com/btcsuite/collections/ordmap"
)

// This example demonstrates a dictionary holding several definitions per
// word.
func ExampleNew() {
	type entry struct {
		word, def string
	}
	dict, err := ordmap.New(&ordmap.Config[*entry, string]{
		Key:     func(e *entry) string { return e.word },
		Compare: strings.Compare,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	dict.Insert(&entry{"orange", "a fruit"})
	dict.Insert(&entry{"apricot", "a fruit"})
	dict.Insert(&entry{"orange", "a colour"})

	n, _ := dict.FindByKey("orange", func(e *entry) ordmap.Verdict {
		fmt.Println(e.word+":", e.def)
		return ordmap.Continue
	})
	fmt.Println(n, "definitions")

	// Output:
	// orange: a fruit
	// orange: a colour
	// 2 definitions
}

// This example demonstrates an unsorted list used as a FIFO queue.
func ExampleNewList() {
	queue := ordmap.NewList[string]()
	queue.Insert("first")
	queue.Insert("second")

	var next string
	for queue.Traverse(ordmap.RemoveOne(&next), nil) == 1 {
		fmt.Println(next)
	}
	fmt.Println(queue.Close())

	// Output:
	// first
	// second
	// <nil>
}

// This example demonstrates moving the selected elements of a sorted set into
// another map.
func ExampleMoveTo() {
	compare := func(a, b int) int { return a - b }
	all, _ := ordmap.NewSorted(compare, true)
	for _, v := range []int{5, 2, 8, 1, 4} {
		all.Insert(v)
	}
	odd, _ := ordmap.NewSorted(compare, true)

	all.Traverse(ordmap.MoveTo(odd), func(v int) bool { return v%2 != 0 })

	show := func(m *ordmap.Map[int, int]) {
		var vals []string
		m.Traverse(func(v int) ordmap.Verdict {
			vals = append(vals, fmt.Sprint(v))
			return ordmap.Continue
		}, nil)
		fmt.Println(strings.Join(vals, " "))
	}
	show(all)
	show(odd)

	// Output:
	// 2 4 8
	// 1 5
}
