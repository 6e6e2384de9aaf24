// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ordmap

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Check verifies the structural invariants of the map: key order, balance and
// cached heights of the tree, parent links, equal-key chains, the element list
// and its first and last cache, and the element count.  It returns an
// AssertError describing the first violation found.
//
// It is meant for tests and debugging and runs in O(n).
func (m *Map[T, K]) Check() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Walk the element list, checking the back links on the way.
	var count int
	var prev *element[T, K]
	for e := m.first; e != nil; e = e.next {
		if !e.live {
			return AssertError("removed element still linked")
		}
		if e.prev != prev {
			return AssertError(fmt.Sprintf("element %d has a bad "+
				"predecessor link", count))
		}
		if m.compare == nil && e.node != nil {
			return AssertError("unsorted list element has a node")
		}
		if m.compare != nil && e.node == nil {
			return AssertError(fmt.Sprintf("element %d has no node",
				count))
		}
		prev = e
		count++
	}
	if m.last != prev {
		return AssertError("last element cache is stale")
	}
	if count != m.count {
		return AssertError(fmt.Sprintf("list holds %d elements, count "+
			"is %d", count, m.count))
	}
	if m.compare == nil {
		if m.root != nil {
			return AssertError("unsorted list has a tree")
		}
		return nil
	}

	if m.root != nil && m.root.parent != nil {
		return AssertError("root has a parent")
	}
	if _, err := m.checkNode(m.root); err != nil {
		return err
	}

	// The list must visit the nodes in tree order, each node's chain
	// being a contiguous run of elements.
	e := m.first
	var prevNode *node[T, K]
	var walkErr error
	m.walk(m.root, func(n *node[T, K]) bool {
		if e != n.first {
			walkErr = AssertError(fmt.Sprintf("chain of key %v is "+
				"out of list order", n.key))
			return false
		}
		if prevNode != nil && m.compare(prevNode.key, n.key) >= 0 {
			walkErr = AssertError(fmt.Sprintf("key %v is not "+
				"greater than key %v", n.key, prevNode.key))
			return false
		}
		for ; e != nil && e != n.last.next; e = e.next {
			if e.node != n {
				walkErr = AssertError(fmt.Sprintf("element of "+
					"key %v is linked in the chain of key "+
					"%v", e.key, n.key))
				return false
			}
			if m.compare(e.key, n.key) != 0 {
				walkErr = AssertError(fmt.Sprintf("element "+
					"key %v differs from node key %v",
					e.key, n.key))
				return false
			}
		}
		prevNode = n
		return true
	})
	if walkErr != nil {
		log.Tracef("%v in tree:\n%v", walkErr, newLogClosure(func() string {
			var sb strings.Builder
			m.Dump(&sb, nil)
			return sb.String()
		}))
		return walkErr
	}
	if e != nil {
		return AssertError("elements linked after the last node")
	}
	return nil
}

// checkNode verifies the subtree rooted at n and returns its height.
func (m *Map[T, K]) checkNode(n *node[T, K]) (int, error) {
	if n == nil {
		return 0, nil
	}
	if n.first == nil || n.last == nil {
		return 0, AssertError(fmt.Sprintf("node of key %v has an "+
			"empty chain", n.key))
	}
	for _, child := range []*node[T, K]{n.lt, n.gt} {
		if child != nil && child.parent != n {
			return 0, AssertError(fmt.Sprintf("child of key %v "+
				"has a bad parent link", child.key))
		}
	}
	lt, err := m.checkNode(n.lt)
	if err != nil {
		return 0, err
	}
	gt, err := m.checkNode(n.gt)
	if err != nil {
		return 0, err
	}
	if lt-gt > maxSkew || gt-lt > maxSkew {
		return 0, AssertError(fmt.Sprintf("node of key %v is out of "+
			"balance: heights %d and %d", n.key, lt, gt))
	}
	h := 1 + max(lt, gt)
	if n.height != h {
		return 0, AssertError(fmt.Sprintf("node of key %v caches "+
			"height %d, actual %d", n.key, n.height, h))
	}
	return h, nil
}

// walk calls fn on the nodes of the subtree rooted at n in key order until fn
// returns false.  It returns false when stopped.
func (m *Map[T, K]) walk(n *node[T, K], fn func(*node[T, K]) bool) bool {
	if n == nil {
		return true
	}
	return m.walk(n.lt, fn) && fn(n) && m.walk(n.gt, fn)
}

// Dump writes a sideways drawing of the tree to w, greater keys on top, one
// line per node listing its chain of elements.  show formats a payload; when
// nil, payloads are printed with spew.  Unsorted lists are written as a
// single line.
func (m *Map[T, K]) Dump(w io.Writer, show func(item T) string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if show == nil {
		show = func(item T) string { return spew.Sprint(item) }
	}
	chain := func(first, last *element[T, K]) string {
		var items []string
		for e := first; e != nil; e = e.next {
			items = append(items, show(e.item))
			if e == last {
				break
			}
		}
		return strings.Join(items, " ")
	}

	bw := bufio.NewWriter(w)
	if m.compare == nil {
		fmt.Fprintf(bw, "[%s]\n", chain(m.first, m.last))
		return bw.Flush()
	}

	var dump func(n *node[T, K], depth int)
	dump = func(n *node[T, K], depth int) {
		if n == nil {
			return
		}
		dump(n.gt, depth+1)
		fmt.Fprintf(bw, "%s(%d) %s\n", strings.Repeat("    ", depth),
			n.height, chain(n.first, n.last))
		dump(n.lt, depth+1)
	}
	dump(m.root, 0)
	return bw.Flush()
}
