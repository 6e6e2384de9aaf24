// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ordmap

// Verdict is returned by an Operator to tell the traversal what to do with the
// element it was applied to and whether to go on.
type Verdict uint8

const (
	// Continue keeps the element and goes on with the next one.
	Continue Verdict = 0

	// Stop ends the traversal after the current element.
	Stop Verdict = 1 << 0

	// Remove removes the current element from the map.  Ownership of the
	// payload returns to the operator.
	Remove Verdict = 1 << 1
)

// Operator is applied to the payload of the elements picked by Traverse,
// TraverseBackward and FindByKey.  It may modify the payload except for the
// part read by the key function.
//
// An operator may call Insert, Traverse, TraverseBackward, FindByKey, Size
// and Height on the map being traversed.  Inserting, while traversing
// forward, an element ordered after the one being removed (or, backward,
// before it) can make the traversal run forever.
type Operator[T any] func(item T) Verdict

// Selector reports whether an element should be handed to the operator.  It
// must not have side effects.
type Selector[T any] func(item T) bool

// Traverse applies op to the elements selected by sel, from the first to the
// last, until op returns a verdict including Stop.  A nil sel selects every
// element.  A nil op counts the selected elements.
//
// It returns the number of elements op was applied to.
func (m *Map[T, K]) Traverse(op Operator[T], sel Selector[T]) int {
	return m.traverse(op, sel, false)
}

// TraverseBackward is like Traverse but goes from the last element to the
// first.
func (m *Map[T, K]) TraverseBackward(op Operator[T], sel Selector[T]) int {
	return m.traverse(op, sel, true)
}

func (m *Map[T, K]) traverse(op Operator[T], sel Selector[T], backward bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0
	}

	step := func(e *element[T, K]) *element[T, K] {
		if backward {
			return e.prev
		}
		return e.next
	}

	e := m.first
	if backward {
		e = m.last
	}
	var applied int
	for e != nil {
		next := step(e)
		verdict := Continue
		if sel == nil || sel(e.item) {
			if op != nil {
				verdict = op(e.item)
			}
			applied++
		}

		// The operator may have inserted or removed elements, e
		// included, so the neighbour is looked up again.
		if e.live {
			next = step(e)
			if verdict&Remove != 0 {
				m.remove(e)
			}
		}
		for next != nil && !next.live {
			next = step(next)
		}
		if verdict&Stop != 0 {
			break
		}
		e = next
	}
	return applied
}

// FindByKey applies op, in insertion order, to the elements whose key is equal
// to key until op returns a verdict including Stop.  A nil op counts the
// matching elements.  It fails with ErrNoComparator when the map has no key
// comparator.
//
// It returns the number of elements op was applied to.  The lookup is
// O(log n).
func (m *Map[T, K]) FindByKey(key K, op Operator[T]) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, mapError(ErrClosed, "lookup in a closed map")
	}
	if m.compare == nil {
		str := "key lookup requires a map created with a key comparator"
		return 0, mapError(ErrNoComparator, str)
	}

	n := m.find(key)
	if n == nil {
		return 0, nil
	}

	var applied int
	for e := n.first; e != nil; {
		next := e.next
		verdict := Continue
		if op != nil {
			verdict = op(e.item)
		}
		applied++

		if e.live {
			next = e.next
			if verdict&Remove != 0 {
				m.remove(e)
			}
		}
		for next != nil && !next.live {
			next = next.next
		}

		// The chain ends where the element list reaches another key,
		// or when the operator emptied the node.
		if verdict&Stop != 0 || next == nil || next.node != n {
			break
		}
		e = next
	}
	return applied, nil
}
