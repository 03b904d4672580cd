// SPDX-License-Identifier: GPL-3.0-or-later

// Package wireline implements the transport-and-framing core of a
// line-oriented text protocol client.
//
// # Core Abstractions
//
// The package converts a byte stream into discrete text messages and back
// using a configurable, possibly non-Unicode character encoding:
//
//   - [LineCodec]: splits a byte buffer into newline-terminated frames and
//     converts each frame to and from text under a fixed encoding
//   - [Transport]: binds a [LineCodec] to an owned byte stream, exposing
//     ReadMessage, WriteMessage, and Flush
//   - [Conn]: an established connection over exactly one transport variant
//     (plain TCP, TLS, or an in-memory mock), with purely structural
//     dispatch across variants
//   - [Establish]: drives the multi-stage connection establishment sequence
//     (resolve, connect, optional TLS handshake) and yields a ready [Conn]
//
// Establishment stages are [Func] values composed with [Compose2],
// [Compose3], and [Compose4], so each stage has exactly one success mode
// and one failure mode and the compiler verifies that outputs match inputs
// across the pipeline:
//
//   - [ResolveFunc]: resolves the configured server name to an address
//   - [ConnectFunc]: dials the resolved TCP endpoint
//   - [ObserveConnFunc]: observes connections for logging I/O operations
//   - [TLSHandshakeFunc]: performs a TLS handshake over an existing connection
//   - [CancelWatchFunc]: closes a connection on context cancellation
//
// # Lossy Codec Policy
//
// Decoding and encoding never fail on malformed or unrepresentable data:
// byte sequences that are invalid under the chosen encoding decode to the
// Unicode replacement character, and characters that the encoding cannot
// represent encode to the encoding's substitution sequence. This is a
// deliberate resilience policy so that a peer emitting unexpected byte
// sequences cannot wedge the framing layer. See [LineCodec.Decode] and
// [LineCodec.Encode].
//
// # Connection Lifecycle
//
// [Establish] selects exactly one establishment path from the
// [*ConnConfig]: mock first, then TLS, then plain TCP. Failure at any
// stage is terminal for that attempt; the failing stage closes any
// partially-opened connection and the error is returned to the caller,
// who owns retry policy. There is no internal retry, fallback between
// transport kinds, or timeout: the caller controls deadlines externally
// via [context.WithTimeout] or [context.WithDeadline].
//
// The returned [*Conn] owns its underlying stream; call Close when done.
// A [*Conn] is not safe for concurrent use by more than one reader and
// one writer; callers must coordinate access.
//
// # Observability
//
// All primitives support structured logging via [SLogger] (compatible
// with [log/slog]). By default logging is disabled; pass a custom
// [*slog.Logger] to enable it. Establishment stages emit Start/Done event
// pairs with t, t0, err, and errClass fields; per-I/O events are emitted
// at [slog.LevelDebug]. Error classification is configurable via
// [ErrClassifier].
//
// Use [NewSpanID] to generate a unique, time-ordered identifier (UUIDv7)
// for each establishment attempt and attach it with [*slog.Logger.With] so
// that all log entries from one attempt can be correlated.
//
// # Testing Support
//
// The mock variant is backed by a [MockStream] preloaded with an initial
// payload that is encoded with the same codec as real transports, so the
// decode path is exercised identically. [Conn.CaptureView] exposes the
// bytes written so far, enabling deterministic tests without a real peer.
//
// # Design Boundaries
//
// Higher-level protocol semantics, message parsing, rate limiting, and
// reconnect policy are out of scope and belong to the layers above.
package wireline
