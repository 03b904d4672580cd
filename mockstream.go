// SPDX-License-Identifier: GPL-3.0-or-later

package wireline

import (
	"bytes"
	"net"
	"sync"
	"time"
)

// NewMockStream returns a [*MockStream] whose reads serve the given
// initial payload.
func NewMockStream(initial []byte) *MockStream {
	return &MockStream{pending: bytes.NewReader(initial)}
}

// MockStream is an in-memory [net.Conn] backing the mock transport variant.
//
// Reads serve the preloaded payload and then return [io.EOF], matching a
// peer that sent the payload and closed cleanly. Writes are captured into
// an internal history retrievable via [MockStream.Written], which is what
// [Conn.CaptureView] exposes for deterministic tests without a real peer.
//
// A MockStream is safe for one concurrent reader plus one concurrent writer.
type MockStream struct {
	// closed records whether Close was called.
	closed bool

	// mu protects every other field.
	mu sync.Mutex

	// pending is the unread remainder of the initial payload.
	pending *bytes.Reader

	// written is the capture history.
	written bytes.Buffer
}

var _ net.Conn = &MockStream{}

// Read implements [net.Conn].
func (s *MockStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, net.ErrClosed
	}
	return s.pending.Read(p)
}

// Write implements [net.Conn]. The bytes are appended to the capture history.
func (s *MockStream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, net.ErrClosed
	}
	return s.written.Write(p)
}

// Written returns a snapshot of all bytes written so far.
func (s *MockStream) Written() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, s.written.Len())
	copy(out, s.written.Bytes())
	return out
}

// Close implements [net.Conn].
//
// Subsequent calls return [net.ErrClosed], consistent with Go's standard
// library behavior for closed connections.
func (s *MockStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return net.ErrClosed
	}
	s.closed = true
	return nil
}

// LocalAddr implements [net.Conn].
func (s *MockStream) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)}
}

// RemoteAddr implements [net.Conn].
func (s *MockStream) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)}
}

// SetDeadline implements [net.Conn]. Deadlines are not enforced: the
// stream never blocks.
func (s *MockStream) SetDeadline(t time.Time) error {
	return nil
}

// SetReadDeadline implements [net.Conn].
func (s *MockStream) SetReadDeadline(t time.Time) error {
	return nil
}

// SetWriteDeadline implements [net.Conn].
func (s *MockStream) SetWriteDeadline(t time.Time) error {
	return nil
}

// CaptureView is a read-only view of the bytes written to a mock
// connection so far. Obtain one via [Conn.CaptureView].
type CaptureView struct {
	// codec decodes the capture history into messages.
	codec *LineCodec

	// stream is the observed mock stream.
	stream *MockStream
}

// Bytes returns a snapshot of the raw bytes written so far.
func (v *CaptureView) Bytes() []byte {
	return v.stream.Written()
}

// Messages decodes the complete frames written so far using the
// connection's codec. Trailing bytes not yet forming a frame are ignored.
func (v *CaptureView) Messages() ([]string, error) {
	buf := bytes.NewBuffer(v.stream.Written())
	out := []string{}
	for {
		msg, ok, err := v.codec.Decode(buf)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, msg)
	}
}
