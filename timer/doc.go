// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package timer runs callbacks at absolute deadlines.

A Service keeps its pending timers in an ordmap.Map ordered by deadline, so
the timer due first is always the first element.  One waiter goroutine per
service sleeps until that deadline or until Schedule or Cancel signal that the
earliest timer may have changed.  When the deadline elapses the waiter checks
the earliest timer is still the one it waited for, removes it and runs its
callback.

Callbacks run one at a time on the waiter goroutine.  They must not block for
long and may call Schedule and Cancel, but must not stop their own service.
A panicking callback is logged and does not stop the service.

	svc := timer.NewService()
	defer svc.Stop()

	t, _ := svc.Schedule(timer.DeadlineFromDelay(1.5), func(arg any) {
		fmt.Println("fired", arg)
	}, 42)
	...
	if svc.Cancel(t) {
		fmt.Println("cancelled before firing")
	}

The package level Schedule and Cancel functions use a process-wide service
created on first use and stopped by Shutdown.
*/
package timer
