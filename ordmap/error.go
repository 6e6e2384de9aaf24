// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ordmap

import (
	"errors"
	"fmt"
)

// AssertError identifies an error that indicates an internal code consistency
// issue and should be treated as a critical and unrecoverable error.
type AssertError string

// Error returns the assertion error as a human-readable string and satisfies
// the error interface.
func (e AssertError) Error() string {
	return "assertion failed: " + string(e)
}

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrMissingComparator indicates a map was requested with uniqueness or
	// a key function but without a key comparator, so there is nothing to
	// order by.
	ErrMissingComparator ErrorCode = iota

	// ErrKeyMismatch indicates a map was requested with a comparator but
	// without a key function while the payload type can not be used as the
	// key type.
	ErrKeyMismatch

	// ErrDuplicateKey indicates an insertion into a unique map was rejected
	// because an element with an equal key is already stored.
	ErrDuplicateKey

	// ErrNotEmpty indicates an attempt to close a map that still holds
	// elements.
	ErrNotEmpty

	// ErrNoComparator indicates a key lookup on a map that was created
	// without a key comparator.
	ErrNoComparator

	// ErrClosed indicates an operation on a map that has been closed.
	ErrClosed

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrMissingComparator: "ErrMissingComparator",
	ErrKeyMismatch:       "ErrKeyMismatch",
	ErrDuplicateKey:      "ErrDuplicateKey",
	ErrNotEmpty:          "ErrNotEmpty",
	ErrNoComparator:      "ErrNoComparator",
	ErrClosed:            "ErrClosed",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a failed map operation.  The caller can use type
// assertions or IsErrorCode to determine the specific kind of failure.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// mapError creates an Error given a set of arguments.
func mapError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether err is an Error, or wraps one, with a matching
// error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var e Error
	return errors.As(err, &e) && e.ErrorCode == c
}
