// SPDX-License-Identifier: GPL-3.0-or-later

package wireline

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/bassosimone/runtimex"
)

// Establish produces a ready [*Conn] from configuration.
//
// Exactly one establishment path is selected from cc, in priority order:
// mock first, then TLS, then plain TCP. The codec label is resolved before
// anything else, so an unknown label fails with [*UnknownCodecError]
// before any file or network activity.
//
// The mock path resolves immediately. The network paths advance through
// resolve, connect, and (for TLS) handshake stages; each stage respects
// ctx, and cancelling ctx aborts the attempt and closes any
// partially-opened connection. Failure at any stage is terminal: there is
// no internal retry and no fallback between transport kinds.
//
// The returned Conn owns its stream and does not auto-close when ctx is
// later cancelled; wrap it with [NewCancelWatchFunc] if you want the
// context lifetime to bound the connection lifetime.
func Establish(ctx context.Context, cfg *Config, cc *ConnConfig, logger SLogger) (*Conn, error) {
	runtimex.Assert(cfg != nil)
	runtimex.Assert(cc != nil)

	codec, err := NewLineCodec(cc.codecLabel())
	if err != nil {
		return nil, err
	}

	switch {
	case cc.UseMock:
		return establishMock(cc, codec, logger)
	case cc.UseTLS:
		return establishTLS(ctx, cfg, cc, codec, logger)
	default:
		return establishPlain(ctx, cfg, cc, codec, logger)
	}
}

// establishMock constructs the in-memory variant. The initial payload is
// encoded with the connection's codec before preloading the stream, so
// the decode side is exercised exactly as with a real transport.
func establishMock(cc *ConnConfig, codec *LineCodec, logger SLogger) (*Conn, error) {
	var initial bytes.Buffer
	if err := codec.Encode(cc.MockInitialValue, &initial); err != nil {
		return nil, err
	}
	stream := NewMockStream(initial.Bytes())
	logger.Info(
		"mockConnReady",
		slog.String("codec", codec.Label()),
		slog.Int("initialBytes", initial.Len()),
	)
	return &Conn{
		kind:      ConnKindMock,
		mock:      stream,
		transport: newTransport(stream, codec, cc.MaxWriteBuffer),
	}, nil
}

// establishPlain drives resolve then connect, then attaches the codec.
func establishPlain(ctx context.Context,
	cfg *Config, cc *ConnConfig, codec *LineCodec, logger SLogger) (*Conn, error) {
	pipe := Compose3(
		NewResolveFunc(cfg, cc.Server, cc.Port, logger),
		NewConnectFunc(cfg, logger),
		NewObserveConnFunc(cfg, logger),
	)
	conn, err := pipe.Call(ctx, Unit{})
	if err != nil {
		return nil, err
	}
	return &Conn{
		kind:      ConnKindPlain,
		transport: newTransport(conn, codec, cc.MaxWriteBuffer),
	}, nil
}

// establishTLS builds the TLS client configuration, then drives resolve,
// connect, and handshake, then attaches the codec. Certificate and
// identity files are read fully, once per attempt, before dialing; their
// failures abort the attempt with no network activity.
func establishTLS(ctx context.Context,
	cfg *Config, cc *ConnConfig, codec *LineCodec, logger SLogger) (*Conn, error) {
	tlsConfig, err := ClientTLSConfig(cc, logger)
	if err != nil {
		return nil, err
	}
	pipe := Compose4(
		NewResolveFunc(cfg, cc.Server, cc.Port, logger),
		NewConnectFunc(cfg, logger),
		NewObserveConnFunc(cfg, logger),
		NewTLSHandshakeFunc(cfg, tlsConfig, logger),
	)
	conn, err := pipe.Call(ctx, Unit{})
	if err != nil {
		return nil, err
	}
	return &Conn{
		kind:      ConnKindTLS,
		transport: newTransport(conn, codec, cc.MaxWriteBuffer),
	}, nil
}
