// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ordmap

import (
	"fmt"
	"reflect"

	"github.com/btcsuite/collections/internal/rlock"
)

// Config is a descriptor which specifies how a map orders its elements.
type Config[T, K any] struct {
	// Key extracts the key of an element from its payload.  It is called
	// exactly once per inserted element and the result is cached, so the
	// part of the payload it reads must not be modified while the element
	// is stored.  When nil, the payload itself is the key, which requires
	// T to be assignable to K.
	Key func(item T) K

	// Compare returns a negative number, zero or a positive number when a
	// is respectively less than, equal to or greater than b.  Any context
	// the comparison needs is captured by the function itself.
	//
	// When nil, the map is an unsorted list: elements are appended after
	// the last one and Key and Unique must not be set.
	Compare func(a, b K) int

	// Unique rejects the insertion of an element whose key is equal to the
	// key of an element already stored.  Otherwise equal elements are kept
	// in insertion order.
	Unique bool
}

// element wraps one payload stored in a map.  Elements are linked in a doubly
// linked list that mirrors the in-order sequence of the tree.
type element[T, K any] struct {
	item T
	key  K

	prev *element[T, K]
	next *element[T, K]

	// node is the tree node holding every element with an equal key.  It
	// is nil for unsorted lists.
	node *node[T, K]

	// live is cleared when the element is removed.  The prev and next
	// links of a removed element are left as they were at removal time so
	// traversals holding it can still find their way back into the list.
	live bool
}

// Map is a goroutine-safe ordered container.  Depending on its Config it
// behaves as a sorted map, a sorted set, a dictionary with multiple entries per
// key, a sorted list or an unsorted list usable as a FIFO or LIFO queue.
//
// All methods are safe for concurrent access.  The lock guarding a map is
// reentrant, so operators invoked by Traverse, TraverseBackward and FindByKey
// may call back into the same map from the same goroutine.
type Map[T, K any] struct {
	mu rlock.Mutex

	root  *node[T, K]
	first *element[T, K]
	last  *element[T, K]

	key     func(item T) K
	compare func(a, b K) int
	unique  bool

	count      int
	rebalances uint64
	closed     bool
}

// New returns a new empty map ordered as described by cfg.  A nil cfg
// describes an unsorted list.
func New[T, K any](cfg *Config[T, K]) (*Map[T, K], error) {
	if cfg == nil {
		cfg = &Config[T, K]{}
	}
	if cfg.Compare == nil && (cfg.Unique || cfg.Key != nil) {
		str := "a key comparator is required by unique maps and maps " +
			"with a key function"
		return nil, mapError(ErrMissingComparator, str)
	}

	keyFn := cfg.Key
	if keyFn == nil && cfg.Compare != nil {
		itemType, keyType := reflect.TypeFor[T](), reflect.TypeFor[K]()
		if !itemType.AssignableTo(keyType) {
			str := fmt.Sprintf("payload type %v can not be used as "+
				"key type %v without a key function", itemType,
				keyType)
			return nil, mapError(ErrKeyMismatch, str)
		}
		keyFn = func(item T) K {
			k, _ := any(item).(K)
			return k
		}
	}

	m := &Map[T, K]{
		key:     keyFn,
		compare: cfg.Compare,
		unique:  cfg.Unique,
	}
	log.Debugf("Created %s", m.kind())
	return m, nil
}

// NewList returns a new unsorted list.  Elements are appended after the last
// one, so Traverse with RemoveOne pops them in FIFO order and
// TraverseBackward with RemoveOne in LIFO order.
func NewList[T any]() *Map[T, T] {
	m, _ := New[T, T](nil)
	return m
}

// NewSorted returns a new map whose payloads are their own keys.  It is a
// sorted set when unique is true and a sorted list otherwise.
func NewSorted[T any](compare func(a, b T) int, unique bool) (*Map[T, T], error) {
	return New(&Config[T, T]{
		Key:     func(item T) T { return item },
		Compare: compare,
		Unique:  unique,
	})
}

// kind returns a short description of the map flavour for logging.
func (m *Map[T, K]) kind() string {
	switch {
	case m.compare == nil:
		return "unsorted list"
	case m.unique:
		return "sorted map with unique keys"
	default:
		return "sorted map with duplicate keys"
	}
}

// Close destroys an empty map.  A map that still holds elements is left
// untouched and ErrNotEmpty is returned.  Once closed, insertions and lookups
// fail with ErrClosed and traversals visit nothing.
func (m *Map[T, K]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return mapError(ErrClosed, "map already closed")
	}
	if m.first != nil {
		str := fmt.Sprintf("map still holds %d elements", m.count)
		return mapError(ErrNotEmpty, str)
	}
	m.closed = true
	log.Tracef("Closed %s after %d rebalancing operations", m.kind(),
		m.rebalances)
	return nil
}

// Size returns the number of elements in the map.  When other goroutines use
// the map the result may be stale by the time it is returned.
func (m *Map[T, K]) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Height returns the height of the tree, 0 when the map is empty.  Elements
// sharing a key count once and unsorted lists have no tree, so their height
// is always 0.
func (m *Map[T, K]) Height() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return height(m.root)
}

// Rebalances returns the total number of folds and rotations performed since
// the map was created.
func (m *Map[T, K]) Rebalances() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rebalances
}

// Insert adds item to the map.  It fails with ErrDuplicateKey, leaving the map
// unchanged, when the map is unique and already holds an element with an
// equal key.
//
// The complexity is O(log n) for sorted maps and O(1) for unsorted lists.
func (m *Map[T, K]) Insert(item T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return mapError(ErrClosed, "insert into a closed map")
	}

	e := &element[T, K]{item: item, live: true}
	if m.compare == nil {
		m.linkAfter(e, m.last)
		m.count++
		return nil
	}

	e.key = m.key(item)
	if m.root == nil {
		m.root = newNode(e)
		m.linkAfter(e, nil)
		m.count++
		return nil
	}

	parent := m.root
	for {
		cmp := m.compare(e.key, parent.key)
		switch {
		case cmp < 0:
			if parent.lt != nil {
				parent = parent.lt
				continue
			}
			n := newNode(e)
			n.parent = parent
			parent.lt = n
			m.linkAfter(e, parent.first.prev)

		case cmp > 0:
			if parent.gt != nil {
				parent = parent.gt
				continue
			}
			n := newNode(e)
			n.parent = parent
			parent.gt = n
			m.linkAfter(e, parent.last)

		case m.unique:
			str := fmt.Sprintf("an element with key %v already "+
				"exists", e.key)
			return mapError(ErrDuplicateKey, str)

		default:
			// Equal keys join the tail of the chain and leave the
			// tree untouched.
			e.node = parent
			m.linkAfter(e, parent.last)
			parent.last = e
			m.count++
			return nil
		}

		m.count++
		m.rebalance(parent)
		return nil
	}
}

// linkAfter inserts e in the element list right after prev, or at the front
// when prev is nil.
func (m *Map[T, K]) linkAfter(e, prev *element[T, K]) {
	e.prev = prev
	if prev == nil {
		e.next = m.first
		m.first = e
	} else {
		e.next = prev.next
		prev.next = e
	}
	if e.next == nil {
		m.last = e
	} else {
		e.next.prev = e
	}
}

// remove detaches e from the element list and from its tree node, deleting the
// node from the tree when e was the last element with its key.
//
// This function MUST be called with the map lock held.
func (m *Map[T, K]) remove(e *element[T, K]) {
	if e.prev == nil {
		m.first = e.next
	} else {
		e.prev.next = e.next
	}
	if e.next == nil {
		m.last = e.prev
	} else {
		e.next.prev = e.prev
	}

	// Chain members are contiguous in the element list, so the neighbours
	// of e are the new chain ends.
	if n := e.node; n != nil {
		switch {
		case n.first == e && n.last == e:
			m.deleteNode(n)
		case n.first == e:
			n.first = e.next
		case n.last == e:
			n.last = e.prev
		}
	}

	e.node = nil
	e.live = false
	m.count--
}

// find returns the tree node holding the elements whose key is equal to key,
// or nil when there is none.
func (m *Map[T, K]) find(key K) *node[T, K] {
	n := m.root
	for n != nil {
		cmp := m.compare(key, n.key)
		switch {
		case cmp < 0:
			n = n.lt
		case cmp > 0:
			n = n.gt
		default:
			return n
		}
	}
	return nil
}
