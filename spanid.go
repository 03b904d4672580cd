// SPDX-License-Identifier: GPL-3.0-or-later

package wireline

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewSpanID returns a UUIDv7 representing a span.
//
// A span is a sequence of operations that can fail in a single, specific
// way; one connection establishment attempt is the canonical span in this
// package. Attach the span ID to the logger passed to [Establish] with
// [*slog.Logger.With] so every log entry from that attempt shares it.
//
// The span terminology is borrowed from OTel.
//
// This function panics if the system random number generator fails,
// which should only happen under extraordinary circumstances.
func NewSpanID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
