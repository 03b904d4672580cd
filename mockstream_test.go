// SPDX-License-Identifier: GPL-3.0-or-later

package wireline

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Read serves the preloaded payload and then io.EOF.
func TestMockStreamRead(t *testing.T) {
	stream := NewMockStream([]byte("hello\n"))

	buf := make([]byte, 4)
	count, err := stream.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("hell"), buf[:count])

	count, err = stream.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("o\n"), buf[:count])

	_, err = stream.Read(buf)
	require.ErrorIs(t, err, io.EOF)
}

// Write appends to the capture history; Written returns an independent snapshot.
func TestMockStreamWrite(t *testing.T) {
	stream := NewMockStream(nil)

	count, err := stream.Write([]byte("NICK foo\n"))
	require.NoError(t, err)
	assert.Equal(t, 9, count)

	snapshot := stream.Written()
	assert.Equal(t, []byte("NICK foo\n"), snapshot)

	// Mutating the snapshot must not corrupt the history.
	snapshot[0] = 'X'
	assert.Equal(t, []byte("NICK foo\n"), stream.Written())

	_, err = stream.Write([]byte("USER foo\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("NICK foo\nUSER foo\n"), stream.Written())
}

// Close makes subsequent operations fail with net.ErrClosed.
func TestMockStreamClose(t *testing.T) {
	stream := NewMockStream([]byte("data"))

	require.NoError(t, stream.Close())
	assert.ErrorIs(t, stream.Close(), net.ErrClosed)

	_, err := stream.Read(make([]byte, 1))
	assert.ErrorIs(t, err, net.ErrClosed)

	_, err = stream.Write([]byte("x"))
	assert.ErrorIs(t, err, net.ErrClosed)
}

// The stream satisfies the net.Conn surface without enforcing deadlines.
func TestMockStreamConnSurface(t *testing.T) {
	stream := NewMockStream(nil)

	assert.NotNil(t, stream.LocalAddr())
	assert.NotNil(t, stream.RemoteAddr())
	assert.NoError(t, stream.SetDeadline(time.Now()))
	assert.NoError(t, stream.SetReadDeadline(time.Now()))
	assert.NoError(t, stream.SetWriteDeadline(time.Now()))
}

// CaptureView decodes complete frames and ignores a trailing partial frame.
func TestCaptureViewMessages(t *testing.T) {
	codec, err := NewLineCodec("utf-8")
	require.NoError(t, err)

	stream := NewMockStream(nil)
	_, err = stream.Write([]byte("NICK foo\nUSER foo\npartial"))
	require.NoError(t, err)

	view := &CaptureView{codec: codec, stream: stream}

	assert.Equal(t, []byte("NICK foo\nUSER foo\npartial"), view.Bytes())

	msgs, err := view.Messages()
	require.NoError(t, err)
	assert.Equal(t, []string{"NICK foo", "USER foo"}, msgs)
}

// CaptureView reflects writes performed after it was obtained.
func TestCaptureViewIsLive(t *testing.T) {
	codec, err := NewLineCodec("utf-8")
	require.NoError(t, err)

	stream := NewMockStream(nil)
	view := &CaptureView{codec: codec, stream: stream}

	msgs, err := view.Messages()
	require.NoError(t, err)
	assert.Empty(t, msgs)

	_, err = stream.Write([]byte("PONG :x\n"))
	require.NoError(t, err)

	msgs, err = view.Messages()
	require.NoError(t, err)
	assert.Equal(t, []string{"PONG :x"}, msgs)
}
