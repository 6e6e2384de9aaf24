// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package timer

import (
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/btcsuite/collections/ordmap"
)

// ErrStopped is returned when scheduling on a service that has been stopped.
var ErrStopped = errors.New("timer service stopped")

// Timer is a scheduled callback.  It is the handle returned by Schedule and
// accepted by Cancel.
type Timer struct {
	deadline time.Time
	fn       func(arg any)
	arg      any
}

// Deadline returns the time at which the timer is due.
func (t *Timer) Deadline() time.Time {
	return t.deadline
}

// Service runs timer callbacks at their deadlines on a dedicated goroutine.
type Service struct {
	shutdown int32

	timers *ordmap.Map[*Timer, time.Time]

	// wake holds at most one pending signal telling the waiter the earliest
	// timer may have changed.
	wake chan struct{}
	quit chan struct{}
	wg   sync.WaitGroup
}

// NewService returns a new timer service with its waiter goroutine running.
// Use Stop to release it.
func NewService() *Service {
	timers, err := ordmap.New(&ordmap.Config[*Timer, time.Time]{
		Key:     func(t *Timer) time.Time { return t.deadline },
		Compare: time.Time.Compare,
	})
	if err != nil {
		// The configuration above is always valid.
		panic(err)
	}

	s := &Service{
		timers: timers,
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
	}
	s.wg.Add(1)
	go s.waiter()
	log.Trace("Timer service started")
	return s
}

// signal wakes the waiter up without blocking.  A signal already pending is
// enough since the waiter looks at the whole queue again.
func (s *Service) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Schedule arranges for fn to be called with arg once deadline is reached.
// Timers sharing a deadline fire in the order they were scheduled.  A
// deadline in the past fires as soon as possible.
func (s *Service) Schedule(deadline time.Time, fn func(arg any),
	arg any) (*Timer, error) {

	if atomic.LoadInt32(&s.shutdown) != 0 {
		return nil, ErrStopped
	}

	t := &Timer{deadline: deadline, fn: fn, arg: arg}
	if err := s.timers.Insert(t); err != nil {
		if ordmap.IsErrorCode(err, ordmap.ErrClosed) {
			return nil, ErrStopped
		}
		return nil, err
	}
	log.Tracef("Scheduled timer for %v", deadline)
	s.signal()
	return t, nil
}

// Cancel removes t from the pending timers.  It returns false, doing
// nothing, when t has already fired or been cancelled.
func (s *Service) Cancel(t *Timer) bool {
	if t == nil {
		return false
	}
	n := s.timers.Traverse(ordmap.RemoveOne[*Timer](nil), func(x *Timer) bool {
		return x == t
	})
	if n == 0 {
		return false
	}
	log.Tracef("Cancelled timer for %v", t.deadline)
	s.signal()
	return true
}

// Pending returns the number of timers waiting for their deadline.
func (s *Service) Pending() int {
	return s.timers.Size()
}

// Stop shuts the waiter goroutine down and discards every pending timer.  A
// callback running at that time is waited for.  Stop must not be called from
// a callback of the same service.
func (s *Service) Stop() error {
	if atomic.AddInt32(&s.shutdown, 1) != 1 {
		log.Warnf("Timer service is already in the process of " +
			"shutting down")
		return nil
	}

	close(s.quit)
	s.wg.Wait()

	// A Schedule racing with the shutdown flag may still get an element
	// in, so drain until the map can be closed.
	var discarded int
	for {
		discarded += s.timers.Traverse(ordmap.RemoveAll[*Timer](nil), nil)
		err := s.timers.Close()
		if err == nil {
			break
		}
		if !ordmap.IsErrorCode(err, ordmap.ErrNotEmpty) {
			return err
		}
	}
	log.Debugf("Timer service stopped, %d pending timers discarded",
		discarded)
	return nil
}

// waiter sleeps until the earliest deadline or a wake signal and fires the due
// timers.  It must be run as a goroutine.
func (s *Service) waiter() {
	defer s.wg.Done()

	for {
		var next *Timer
		if s.timers.Traverse(ordmap.GetOne(&next), nil) == 0 {
			select {
			case <-s.wake:
				continue
			case <-s.quit:
				return
			}
		}

		if d := time.Until(next.deadline); d > 0 {
			t := time.NewTimer(d)
			select {
			case <-s.wake:
				t.Stop()
				continue
			case <-s.quit:
				t.Stop()
				return
			case <-t.C:
			}
		}

		// The earliest timer may have been cancelled or preceded by
		// another one while the deadline elapsed.  Only fire it if it
		// is still at the front.
		var due *Timer
		s.timers.Traverse(func(t *Timer) ordmap.Verdict {
			if t != next {
				return ordmap.Stop
			}
			due = t
			return ordmap.Remove | ordmap.Stop
		}, nil)
		if due == nil {
			log.Tracef("Timer for %v no longer first, waiting again",
				next.deadline)
			continue
		}
		s.fire(due)
	}
}

// fire runs the callback of t, recovering from a panic so the waiter keeps
// serving the remaining timers.
func (s *Service) fire(t *Timer) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Timer callback for %v panicked: %v\n%s",
				t.deadline, r, debug.Stack())
		}
	}()

	log.Tracef("Firing timer for %v", t.deadline)
	if t.fn != nil {
		t.fn(t.arg)
	}
}
