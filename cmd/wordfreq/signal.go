// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"os/signal"
	"syscall"
)

// interruptSignals defines the signals to catch in order to stop reading
// input and report the words read so far.
var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// interruptListener listens for SIGINT (Ctrl+C) and SIGTERM signals and
// requests from the returned stop function.  It returns a channel that is
// closed when either happens.
func interruptListener() (<-chan struct{}, func()) {
	c := make(chan struct{})
	requested := make(chan struct{}, 1)

	go func() {
		interruptChannel := make(chan os.Signal, 1)
		signal.Notify(interruptChannel, interruptSignals...)
		defer signal.Stop(interruptChannel)

		select {
		case sig := <-interruptChannel:
			wfrqLog.Infof("Received signal (%s).  Stopping input...", sig)
		case <-requested:
		}

		close(c)
	}()

	stop := func() {
		select {
		case requested <- struct{}{}:
		default:
		}
	}
	return c, stop
}

// interruptRequested returns true when the channel returned by
// interruptListener was closed.  This simplifies early shutdown slightly since
// the caller can just use an if statement instead of a select.
func interruptRequested(interrupted <-chan struct{}) bool {
	select {
	case <-interrupted:
		return true
	default:
		return false
	}
}
