// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package ordmap implements a generic, goroutine-safe ordered container.

A single type, Map, covers sorted maps, sorted sets, dictionaries holding
several entries per key, sorted lists, unsorted lists, and FIFO and LIFO
queues, depending on how it is configured:

	Use            Unique  Compare  Key
	Sorted map     true    set      set
	Dictionary     false   set      set
	Sorted set     true    set      nil (the payload is the key)
	Sorted list    false   set      nil (the payload is the key)
	Unsorted list  false   nil      nil
	FIFO           false   nil      nil (Traverse with RemoveOne)
	LIFO           false   nil      nil (TraverseBackward with RemoveOne)

Sorted maps are AVL trees whose nodes each hold the chain of elements sharing
a key, so duplicates do not make the tree deeper.  Elements are also linked in
a list mirroring the in-order sequence, which makes every traversal step O(1).

Reading, updating and removing elements is done with operators applied during
a traversal or a key lookup:

	sum := 0
	m.Traverse(func(v int) ordmap.Verdict {
		sum += v
		return ordmap.Continue
	}, nil)

	// Pop the first element.
	var first int
	m.Traverse(ordmap.RemoveOne(&first), nil)

Operators may insert into and traverse the map they are applied to, from the
same goroutine, since the map lock is reentrant.  An operator removing an
element and inserting an equal or greater one while traversing forward, or an
equal or lower one backward, can keep the traversal from ever ending.

Keys are extracted once, at insertion.  Modifying the part of a payload the
key depends on while it is stored leaves the map in an undefined state.
*/
package ordmap
