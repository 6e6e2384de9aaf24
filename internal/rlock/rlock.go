// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rlock provides a mutual exclusion lock that may be acquired
// repeatedly by the goroutine that already holds it.
package rlock

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// Mutex is a reentrant mutual exclusion lock.  The goroutine holding the lock
// may call Lock again without blocking, and must call Unlock once for every
// Lock.  Any other goroutine blocks in Lock until the owner has released every
// level.
//
// The zero value is an unlocked mutex.
type Mutex struct {
	mu sync.Mutex

	// owner is the id of the goroutine holding mu, or 0.  It is read
	// without holding mu, so it is accessed atomically.
	owner atomic.Int64

	// depth is only touched by the owner.
	depth int
}

// Lock acquires the mutex, blocking unless the calling goroutine already
// holds it.
func (m *Mutex) Lock() {
	id := goid.Get()
	if m.owner.Load() == id {
		m.depth++
		return
	}
	m.mu.Lock()
	m.owner.Store(id)
	m.depth = 1
}

// TryLock acquires the mutex without blocking and reports whether it
// succeeded.
func (m *Mutex) TryLock() bool {
	id := goid.Get()
	if m.owner.Load() == id {
		m.depth++
		return true
	}
	if !m.mu.TryLock() {
		return false
	}
	m.owner.Store(id)
	m.depth = 1
	return true
}

// Unlock releases one level of the mutex.  It panics when the calling
// goroutine does not hold the mutex.
func (m *Mutex) Unlock() {
	if m.owner.Load() != goid.Get() {
		panic("rlock: unlock of mutex not held by calling goroutine")
	}
	m.depth--
	if m.depth > 0 {
		return
	}
	m.owner.Store(0)
	m.mu.Unlock()
}

// Held reports whether the calling goroutine holds the mutex.
func (m *Mutex) Held() bool {
	return m.owner.Load() == goid.Get()
}
