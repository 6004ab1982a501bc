// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when a builder receives malformed input,
	// e.g. a non-integer target value for a numeric comparison.
	// It is always raised before any network interaction.
	ErrValidation = errors.New("validation error")

	// ErrInvariantViolation indicates a broken builder invariant reached the encoder.
	// It denotes a programming defect and is never recoverable.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrMaxDepthExceeded is returned when nested transactions exceed the supported depth.
	ErrMaxDepthExceeded = fmt.Errorf("nested transaction depth exceeded: %w", ErrValidation)

	// ErrConnection is returned when the coordination service cannot be reached.
	ErrConnection = errors.New("connection error")

	// ErrRemote is returned when the coordination service rejected or failed a request.
	// A transaction whose preconditions did not hold is not an ErrRemote.
	ErrRemote = errors.New("remote error")

	// ErrClientClosed is returned when a call is made on a closed coordinator.
	ErrClientClosed = errors.New("coordinator is closed")
)

// NewErrValidation formats an ErrValidation for the given field.
func NewErrValidation(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}

// NewErrInvariantViolation formats an ErrInvariantViolation with the given detail.
func NewErrInvariantViolation(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, detail)
}

// NewErrMaxDepthExceeded formats an ErrMaxDepthExceeded with the offending depth.
func NewErrMaxDepthExceeded(depth, limit int) error {
	return fmt.Errorf("(depth=%d, limit=%d) %w", depth, limit, ErrMaxDepthExceeded)
}

// NewErrConnection wraps a transport failure with ErrConnection.
func NewErrConnection(err error) error {
	return errors.Join(ErrConnection, err)
}

// NewErrRemote wraps a service failure with ErrRemote.
func NewErrRemote(err error) error {
	return errors.Join(ErrRemote, err)
}
