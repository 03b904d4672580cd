// SPDX-License-Identifier: GPL-3.0-or-later

package wireline

import "fmt"

// ConnKind identifies the transport variant owned by a [*Conn].
type ConnKind int

const (
	// ConnKindPlain is a plaintext TCP transport.
	ConnKindPlain ConnKind = iota

	// ConnKindTLS is a TLS transport over TCP.
	ConnKindTLS

	// ConnKindMock is an in-memory transport backed by a [*MockStream].
	ConnKindMock
)

// String implements [fmt.Stringer].
func (k ConnKind) String() string {
	switch k {
	case ConnKindPlain:
		return "plain"
	case ConnKindTLS:
		return "tls"
	case ConnKindMock:
		return "mock"
	default:
		return fmt.Sprintf("ConnKind(%d)", int(k))
	}
}

// Conn is an established connection over exactly one transport variant.
//
// The variant is fixed at construction and never changes. Dispatch across
// variants is purely structural: every operation forwards to the owned
// [*Transport], and the variants differ only in the underlying stream's
// own semantics (e.g. TLS close-notify versus plain TCP close). The Conn
// is the sole owner of the stream and must eventually be closed.
//
// Construct via [Establish].
type Conn struct {
	// kind tags the variant.
	kind ConnKind

	// mock is the underlying stream, set only when kind is [ConnKindMock].
	mock *MockStream

	// transport is the owned message stream.
	transport *Transport
}

// Kind returns the connection's variant tag.
func (c *Conn) Kind() ConnKind {
	return c.kind
}

// String implements [fmt.Stringer].
func (c *Conn) String() string {
	return fmt.Sprintf("wireline.Conn(%s)", c.kind)
}

// ReadMessage returns the next decoded message. See [Transport.ReadMessage].
func (c *Conn) ReadMessage() (string, error) {
	return c.transport.ReadMessage()
}

// WriteMessage queues a message for sending. See [Transport.WriteMessage].
func (c *Conn) WriteMessage(text string) error {
	return c.transport.WriteMessage(text)
}

// Flush drives queued bytes to the wire. See [Transport.Flush].
func (c *Conn) Flush() error {
	return c.transport.Flush()
}

// Close releases the underlying stream.
func (c *Conn) Close() error {
	return c.transport.Close()
}

// CaptureView returns a read-only view of the bytes written so far.
//
// The view is only available when the variant is [ConnKindMock]; for the
// other variants CaptureView fails with [ErrCaptureUnavailable]. This
// exists purely to support deterministic testing without a real peer.
func (c *Conn) CaptureView() (*CaptureView, error) {
	if c.kind != ConnKindMock {
		return nil, ErrCaptureUnavailable
	}
	return &CaptureView{codec: c.transport.codec, stream: c.mock}, nil
}
