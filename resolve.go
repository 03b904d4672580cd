// SPDX-License-Identifier: GPL-3.0-or-later

package wireline

import (
	"context"
	"errors"
	"log/slog"
	"net/netip"
	"time"
)

// errNoAddresses is returned when resolution succeeds but yields nothing.
var errNoAddresses = errors.New("wireline: resolver returned no addresses")

// NewResolveFunc returns a new [*ResolveFunc] for the given server and port.
//
// The cfg argument contains the common configuration for wireline operations.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewResolveFunc(cfg *Config, server string, port uint16, logger SLogger) *ResolveFunc {
	return &ResolveFunc{
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		Port:          port,
		Resolver:      cfg.Resolver,
		Server:        server,
		TimeNow:       cfg.TimeNow,
	}
}

// ResolveFunc resolves a server name to a [netip.AddrPort].
//
// This is the head of an establishment pipeline: it takes [Unit] and
// produces the endpoint that [*ConnectFunc] dials. When the server name
// is already an IP literal no lookup is performed. When resolution
// yields multiple addresses the first one is used.
//
// Returns either a valid [netip.AddrPort] or an error, never both.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to [Call].
type ResolveFunc struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewResolveFunc] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use (configurable for testing or custom logging).
	//
	// Set by [NewResolveFunc] to the user-provided logger.
	Logger SLogger

	// Port is the TCP port to combine with the resolved address.
	//
	// Set by [NewResolveFunc] to the user-provided value.
	Port uint16

	// Resolver is the [Resolver] to use.
	//
	// Set by [NewResolveFunc] from [Config.Resolver].
	Resolver Resolver

	// Server is the host name or IP literal to resolve.
	//
	// Set by [NewResolveFunc] to the user-provided value.
	Server string

	// TimeNow is the function to get the current time (configurable for testing).
	//
	// Set by [NewResolveFunc] from [Config.TimeNow].
	TimeNow func() time.Time
}

var _ Func[Unit, netip.AddrPort] = &ResolveFunc{}

// Call invokes the [*ResolveFunc] to obtain the endpoint to dial.
func (op *ResolveFunc) Call(ctx context.Context, _ Unit) (netip.AddrPort, error) {
	// IP literals short-circuit: no lookup, no logging.
	if addr, err := netip.ParseAddr(op.Server); err == nil {
		return netip.AddrPortFrom(addr, op.Port), nil
	}

	t0 := op.TimeNow()
	deadline, _ := ctx.Deadline()
	op.logResolveStart(t0, deadline)
	addrs, err := op.Resolver.LookupNetIP(ctx, "ip", op.Server)
	if err == nil && len(addrs) < 1 {
		err = errNoAddresses
	}
	op.logResolveDone(t0, deadline, addrs, err)
	if err != nil {
		return netip.AddrPort{}, err
	}
	return netip.AddrPortFrom(addrs[0], op.Port), nil
}

func (op *ResolveFunc) logResolveStart(t0 time.Time, deadline time.Time) {
	op.Logger.Info(
		"resolveStart",
		slog.Time("deadline", deadline),
		slog.String("serverName", op.Server),
		slog.Time("t", t0),
	)
}

func (op *ResolveFunc) logResolveDone(t0 time.Time, deadline time.Time, addrs []netip.Addr, err error) {
	op.Logger.Info(
		"resolveDone",
		slog.Any("addresses", addrs),
		slog.Time("deadline", deadline),
		slog.Any("err", err),
		slog.String("errClass", op.ErrClassifier.Classify(err)),
		slog.String("serverName", op.Server),
		slog.Time("t0", t0),
		slog.Time("t", op.TimeNow()),
	)
}
