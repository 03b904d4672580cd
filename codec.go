// SPDX-License-Identifier: GPL-3.0-or-later

package wireline

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// NewLineCodec returns a [*LineCodec] bound to the character encoding
// named by the given WHATWG label (e.g. "utf-8", "utf8", "latin1").
//
// Returns an [*UnknownCodecError] naming the label when it does not
// resolve to a known encoding.
func NewLineCodec(label string) (*LineCodec, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, &UnknownCodecError{Label: label}
	}
	return &LineCodec{enc: enc, label: label}, nil
}

// LineCodec converts between a byte buffer and discrete text frames under
// one fixed character encoding. A frame is a run of bytes terminated by a
// single '\n' byte.
//
// The codec holds no mutable state across calls: all partial-frame state
// lives in the caller-owned buffer passed to [LineCodec.Decode]. This
// keeps "how many bytes were consumed" unambiguous regardless of how many
// codec values touch the same buffer.
//
// Construct via [NewLineCodec].
type LineCodec struct {
	// enc is the resolved encoding, fixed for the codec's lifetime.
	enc encoding.Encoding

	// label is the label the encoding was resolved from.
	label string
}

// Label returns the encoding label this codec was constructed with.
func (c *LineCodec) Label() string {
	return c.label
}

// Decode extracts the next frame from the caller-owned buffer.
//
// If the buffer contains no '\n' byte, Decode returns ok == false and
// leaves the buffer untouched, so a later call after more bytes have been
// appended can complete the frame.
//
// If a '\n' is found at position n, Decode consumes exactly n+1 bytes
// (the frame content plus the terminator) and returns the first n bytes
// decoded under the codec's encoding. Byte sequences that are invalid
// under the encoding decode to U+FFFD rather than failing; this
// substitution policy is a documented contract, not best-effort
// happenstance. A trailing '\r' before the terminator is part of the
// frame content and is retained.
//
// The returned error is reserved for decoder-internal failures and is
// unreachable for encodings resolved by [NewLineCodec], which substitute
// instead of failing.
func (c *LineCodec) Decode(buf *bytes.Buffer) (msg string, ok bool, err error) {
	idx := bytes.IndexByte(buf.Bytes(), '\n')
	if idx < 0 {
		return "", false, nil
	}

	// Remove the frame and its terminator from the buffer. The slice
	// returned by Next is only valid until the next buffer mutation, so
	// decode before touching the buffer again.
	frame := buf.Next(idx + 1)
	decoded, err := c.enc.NewDecoder().Bytes(frame[:idx])
	if err != nil {
		return "", true, err
	}
	return string(decoded), true, nil
}

// Encode converts text to bytes under the codec's encoding and appends
// them to the output buffer.
//
// Characters that the encoding cannot represent are replaced with the
// encoding's substitution sequence instead of failing; like the decode
// side, this lossy policy is deliberate. Encode does NOT append a frame
// terminator: the text must already end with '\n' for the output to be a
// correctly framed wire representation ([Transport.WriteMessage] takes
// care of this).
func (c *LineCodec) Encode(text string, buf *bytes.Buffer) error {
	data, err := encoding.ReplaceUnsupported(c.enc.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
