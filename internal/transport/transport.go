// Package transport delivers encoded receipts to network printers.
package transport

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"printer-service/internal/escpos"
	"printer-service/internal/model"
)

// Style names a transport implementation
type Style string

const (
	StyleRaw        Style = "raw"
	StyleStructured Style = "structured"
)

// Transport sends one job to one printer. Implementations always finish the
// job with a full cut and then half-close the socket. The returned stats
// cover whatever reached the socket, also on failure.
type Transport interface {
	Transmit(ctx context.Context, conn model.Connection, cmds []escpos.Command) (ConnectionStats, error)
	Style() Style
}

// Options configure both transport styles
type Options struct {
	Encoder        escpos.Encoder
	DialTimeout    time.Duration
	ExecuteTimeout time.Duration
}

// New returns the transport for style
func New(style Style, opts Options, logger *zap.Logger) (Transport, error) {
	switch style {
	case StyleRaw, "":
		return NewRawSocket(opts, logger), nil
	case StyleStructured:
		return NewStructured(opts, logger), nil
	default:
		return nil, fmt.Errorf("unsupported transport style: %s", style)
	}
}

// deliver runs send against an open connection and finishes the job
func deliver(ctx context.Context, tc *TCPConnection, send func(context.Context) error) (ConnectionStats, error) {
	if err := tc.Open(ctx); err != nil {
		return ConnectionStats{}, err
	}
	defer tc.Close()

	if err := send(ctx); err != nil {
		return tc.Stats(), err
	}
	return tc.Stats(), tc.CloseWrite()
}
