package transport

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"printer-service/internal/escpos"
	"printer-service/internal/model"
)

// RawSocket writes each command as its own ESC/POS frame straight to the socket
type RawSocket struct {
	opts   Options
	logger *zap.Logger
}

func NewRawSocket(opts Options, logger *zap.Logger) *RawSocket {
	return &RawSocket{opts: opts, logger: logger.With(zap.String("transport", string(StyleRaw)))}
}

func (r *RawSocket) Style() Style { return StyleRaw }

// Transmit writes one frame per command. Every write gets its own deadline.
func (r *RawSocket) Transmit(ctx context.Context, conn model.Connection, cmds []escpos.Command) (ConnectionStats, error) {
	cmds = escpos.EnsureCut(cmds)
	tc := NewTCPConnection(TCPConfig{
		Address:      conn.Address(),
		DialTimeout:  r.opts.DialTimeout,
		WriteTimeout: r.opts.ExecuteTimeout,
	}, r.logger)

	return deliver(ctx, tc, func(ctx context.Context) error {
		if err := tc.Write(ctx, escpos.Preamble()); err != nil {
			return err
		}
		for i, cmd := range cmds {
			frame := r.opts.Encoder.Encode(cmd)
			if len(frame) == 0 {
				continue
			}
			if err := tc.Write(ctx, frame); err != nil {
				return fmt.Errorf("command %d (%s): %w", i, cmd.Kind, err)
			}
		}
		return nil
	})
}
