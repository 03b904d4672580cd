// SPDX-License-Identifier: GPL-3.0-or-later

package wireline

import (
	"context"
	"net"
	"net/netip"
	"time"
)

// Resolver abstracts the [*net.Resolver] behavior.
//
// By making [*ResolveFunc] depend on an abstract implementation we
// allow for unit testing and for using alternative resolvers.
type Resolver interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// Config holds common configuration for wireline operations.
//
// Pass this to constructor functions and to [Establish] to pre-wire
// dependencies. All fields have sensible defaults set by [NewConfig].
type Config struct {
	// Dialer is used by [*ConnectFunc].
	//
	// Set by [NewConfig] to [*net.Dialer].
	Dialer Dialer

	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewConfig] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// Resolver is used by [*ResolveFunc].
	//
	// Set by [NewConfig] to [net.DefaultResolver].
	Resolver Resolver

	// TLSEngine is used by [*TLSHandshakeFunc].
	//
	// Set by [NewConfig] to [TLSEngineStdlib].
	TLSEngine TLSEngine

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time
}

// NewConfig creates a [*Config] with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Dialer:        &net.Dialer{},
		ErrClassifier: DefaultErrClassifier,
		Resolver:      net.DefaultResolver,
		TLSEngine:     TLSEngineStdlib{},
		TimeNow:       time.Now,
	}
}

// ConnConfig describes one connection attempt.
//
// A ConnConfig must not be mutated for the lifetime of the attempt it was
// passed to; [Establish] reads it but never writes it.
type ConnConfig struct {
	// Server is the server host name or IP literal.
	Server string

	// Port is the server TCP port.
	Port uint16

	// Encoding is the WHATWG label of the character encoding used for
	// every decode and encode on this connection. Empty means "utf-8".
	Encoding string

	// UseTLS selects the TLS establishment path.
	UseTLS bool

	// UseMock selects the in-memory mock establishment path. Takes
	// precedence over UseTLS.
	UseMock bool

	// MockInitialValue is the text preloaded into the mock stream. It is
	// encoded with the connection's codec before being fed to the stream,
	// so the decode side behaves exactly as with a real transport.
	MockInitialValue string

	// CertPath optionally names a DER-encoded certificate file to add as
	// an additionally trusted root for server verification.
	CertPath string

	// ClientCertPath optionally names a PKCS#12 client identity bundle
	// used for mutual authentication.
	ClientCertPath string

	// ClientCertPass is the passphrase protecting ClientCertPath.
	ClientCertPass string

	// InsecureSkipVerify disables server certificate validation. This is
	// an explicit, logged opt-in and never a silent default.
	InsecureSkipVerify bool

	// MaxWriteBuffer bounds the bytes queued by WriteMessage and not yet
	// flushed. Zero means unlimited. When a write would exceed the bound
	// it fails with [ErrWriteQueueFull].
	MaxWriteBuffer int
}

// codecLabel returns the effective encoding label for this attempt.
func (cc *ConnConfig) codecLabel() string {
	if cc.Encoding == "" {
		return "utf-8"
	}
	return cc.Encoding
}
