// SPDX-License-Identifier: GPL-3.0-or-later

package wireline

import (
	"bytes"
	"io"
	"net"
	"strings"
)

// readChunkSize is the size of the per-transport read buffer.
const readChunkSize = 4096

// newTransport binds a [*LineCodec] to an owned byte stream.
func newTransport(conn net.Conn, codec *LineCodec, maxWrite int) *Transport {
	return &Transport{
		chunk:    make([]byte, readChunkSize),
		codec:    codec,
		conn:     conn,
		maxWrite: maxWrite,
	}
}

// Transport is a bidirectional message stream over an owned byte stream.
//
// It pairs a [net.Conn] with a [*LineCodec] bound to one fixed encoding
// for the connection's lifetime, plus a read buffer that preserves
// partial frames across reads and a write queue drained by [Transport.Flush].
//
// A Transport owns its connection: Close releases it. It is safe for at
// most one reading and one writing goroutine at a time.
type Transport struct {
	// chunk is the scratch buffer for conn reads.
	chunk []byte

	// codec converts between frames and text.
	codec *LineCodec

	// conn is the owned byte stream.
	conn net.Conn

	// maxWrite bounds wbuf; zero means unlimited.
	maxWrite int

	// rbuf accumulates received bytes until a frame completes.
	rbuf bytes.Buffer

	// wbuf holds encoded bytes queued by WriteMessage and not yet flushed.
	wbuf bytes.Buffer
}

// Conn returns the underlying net.Conn for logging purposes.
func (t *Transport) Conn() net.Conn {
	return t.conn
}

// ReadMessage blocks until the next message is available and returns it.
//
// Returns [io.EOF] when the stream closed cleanly at a frame boundary and
// [io.ErrUnexpectedEOF] when it closed mid-frame. Other read failures are
// returned as-is. Buffered partial-frame data survives an error return
// untouched.
func (t *Transport) ReadMessage() (string, error) {
	for {
		msg, ok, err := t.codec.Decode(&t.rbuf)
		if err != nil {
			return "", err
		}
		if ok {
			return msg, nil
		}
		count, err := t.conn.Read(t.chunk)
		if count > 0 {
			t.rbuf.Write(t.chunk[:count])
			// Attempt a decode before surfacing any error: the final
			// read may deliver both the last frame and io.EOF.
			continue
		}
		if err == io.EOF && t.rbuf.Len() > 0 {
			return "", io.ErrUnexpectedEOF
		}
		if err == nil {
			continue
		}
		return "", err
	}
}

// WriteMessage encodes text and appends it to the write queue.
//
// A terminating '\n' is appended when text does not already end with one,
// so the queued bytes always form a complete frame. The bytes only reach
// the wire once [Transport.Flush] succeeds. When the queue would exceed
// the configured bound the message is not queued and the call fails with
// [ErrWriteQueueFull].
func (t *Transport) WriteMessage(text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	var staged bytes.Buffer
	if err := t.codec.Encode(text, &staged); err != nil {
		return err
	}
	if t.maxWrite > 0 && t.wbuf.Len()+staged.Len() > t.maxWrite {
		return ErrWriteQueueFull
	}
	t.wbuf.Write(staged.Bytes())
	return nil
}

// Flush writes queued bytes to the stream until the queue is drained or a
// write fails. Flush is the only point at which prior WriteMessage calls
// are guaranteed to have reached the transport.
func (t *Transport) Flush() error {
	for t.wbuf.Len() > 0 {
		count, err := t.conn.Write(t.wbuf.Bytes())
		t.wbuf.Next(count)
		if err != nil {
			return err
		}
	}
	return nil
}

// Close closes the owned byte stream.
func (t *Transport) Close() error {
	return t.conn.Close()
}
