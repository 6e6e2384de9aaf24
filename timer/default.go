// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package timer

import (
	"sync"
	"time"
)

var (
	defaultOnce    sync.Once
	defaultService *Service
)

// Default returns the process-wide service, creating it on first use.
func Default() *Service {
	defaultOnce.Do(func() {
		defaultService = NewService()
	})
	return defaultService
}

// Schedule arranges for fn to be called with arg at deadline on the
// process-wide service.  It fails with ErrStopped after Shutdown.
func Schedule(deadline time.Time, fn func(arg any), arg any) (*Timer, error) {
	return Default().Schedule(deadline, fn, arg)
}

// Cancel cancels t on the process-wide service.  It returns false when t has
// already fired or been cancelled.
func Cancel(t *Timer) bool {
	return Default().Cancel(t)
}

// Shutdown stops the process-wide service.  Later calls to Schedule fail with
// ErrStopped.
func Shutdown() error {
	return Default().Stop()
}

// DeadlineFromDelay returns the absolute deadline seconds from now.
func DeadlineFromDelay(seconds float64) time.Time {
	return time.Now().Add(time.Duration(seconds * float64(time.Second)))
}
