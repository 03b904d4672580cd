// SPDX-License-Identifier: GPL-3.0-or-later

package wireline

import (
	"errors"
	"fmt"
)

// ErrWriteQueueFull indicates that [Transport.WriteMessage] would grow the
// write queue beyond the configured [ConnConfig.MaxWriteBuffer]. The queued
// bytes are unchanged; call [Transport.Flush] and retry.
var ErrWriteQueueFull = errors.New("wireline: write queue full")

// ErrCaptureUnavailable indicates that [Conn.CaptureView] was called on a
// connection whose variant is not [ConnKindMock].
var ErrCaptureUnavailable = errors.New("wireline: capture view only available on mock connections")

// UnknownCodecError indicates that an encoding label did not resolve to a
// known encoding implementation.
//
// This is a configuration error: it is always surfaced before any network
// activity takes place.
type UnknownCodecError struct {
	// Label is the encoding label that failed to resolve.
	Label string
}

var _ error = &UnknownCodecError{}

// Error implements error.
func (e *UnknownCodecError) Error() string {
	return fmt.Sprintf("wireline: unknown codec %q", e.Label)
}

// TLSError wraps a failure in the TLS establishment path: parsing a root
// certificate, decoding a client identity bundle, or the handshake itself.
//
// Distinguishing these from generic I/O errors lets callers react
// specifically (e.g., prompt for different credentials) rather than
// blindly retry. Use [errors.As] to detect it and Unwrap to reach the
// underlying cause.
type TLSError struct {
	// Op names the failed operation.
	Op string

	// Err is the underlying error.
	Err error
}

var _ error = &TLSError{}

// Error implements error.
func (e *TLSError) Error() string {
	return fmt.Sprintf("wireline: tls: %s: %s", e.Op, e.Err.Error())
}

// Unwrap returns the underlying error.
func (e *TLSError) Unwrap() error {
	return e.Err
}
