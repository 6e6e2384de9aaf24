// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ordmap

// GetOne returns an operator that stores the first element it is applied to
// in dst, when dst is not nil, and stops.  The element stays in the map.
//
// For example, the last element of m is retrieved with:
//
//	var last T
//	if m.TraverseBackward(ordmap.GetOne(&last), nil) == 1 {
//		...
//	}
func GetOne[T any](dst *T) Operator[T] {
	return func(item T) Verdict {
		if dst != nil {
			*dst = item
		}
		return Stop
	}
}

// RemoveOne returns an operator that removes the first element it is applied
// to, stores it in dst when dst is not nil, and stops.  Used with Traverse on
// a list it pops in FIFO order, with TraverseBackward in LIFO order.
func RemoveOne[T any](dst *T) Operator[T] {
	return func(item T) Verdict {
		if dst != nil {
			*dst = item
		}
		return Remove | Stop
	}
}

// RemoveAll returns an operator that removes every element it is applied to,
// after passing it to destroy when destroy is not nil.
func RemoveAll[T any](destroy func(item T)) Operator[T] {
	return func(item T) Verdict {
		if destroy != nil {
			destroy(item)
		}
		return Remove
	}
}

// MoveTo returns an operator that inserts every element it is applied to into
// dst and removes it from the traversed map.  It stops, leaving the element in
// place, when the insertion fails, for instance on a duplicate key in a unique
// dst.
//
// The target must be a different map: when the calling goroutine already
// holds the lock of dst, which is the case when dst is the traversed map, the
// operator stops without moving anything.  Two goroutines moving elements
// between the same two maps in opposite directions deadlock.
func MoveTo[T, K any](dst *Map[T, K]) Operator[T] {
	return func(item T) Verdict {
		if dst == nil {
			log.Warnf("MoveTo: nil target map")
			return Stop
		}
		if dst.mu.Held() {
			log.Warnf("MoveTo: target map is locked by the calling " +
				"goroutine")
			return Stop
		}
		if err := dst.Insert(item); err != nil {
			log.Debugf("MoveTo: %v", err)
			return Stop
		}
		return Remove
	}
}
