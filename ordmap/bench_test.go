// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ordmap

import (
	"cmp"
	"math/rand"
	"testing"
)

// BenchmarkInsert benchmarks inserting random keys into a sorted map.
func BenchmarkInsert(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	keys := make([]int, b.N)
	for i := range keys {
		keys[i] = rng.Int()
	}
	m, _ := NewSorted(cmp.Compare[int], false)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Insert(keys[i])
	}
}

// BenchmarkFindByKey benchmarks key lookups in a map of 100000 keys.
func BenchmarkFindByKey(b *testing.B) {
	const count = 100000
	m, _ := NewSorted(cmp.Compare[int], true)
	for i := 0; i < count; i++ {
		m.Insert(i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.FindByKey(i%count, nil)
	}
}

// BenchmarkQueue benchmarks pushing to and popping from an unsorted list.
func BenchmarkQueue(b *testing.B) {
	m := NewList[int]()
	pop := RemoveOne[int](nil)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Insert(i)
		m.Traverse(pop, nil)
	}
}

// BenchmarkTraverse benchmarks a full traversal of a map of 10000 elements.
func BenchmarkTraverse(b *testing.B) {
	const count = 10000
	m, _ := NewSorted(cmp.Compare[int], false)
	for i := 0; i < count; i++ {
		m.Insert(i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Traverse(nil, nil)
	}
}
