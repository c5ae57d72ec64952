package transport

import (
	"context"
	"time"

	"go.uber.org/zap"

	"printer-service/internal/escpos"
	"printer-service/internal/model"
)

const defaultExecuteTimeout = 10 * time.Second

// Structured drives the command-level printer adapter, then executes the
// serialized job in one write bounded by ExecuteTimeout.
type Structured struct {
	opts   Options
	logger *zap.Logger
}

func NewStructured(opts Options, logger *zap.Logger) *Structured {
	if opts.ExecuteTimeout <= 0 {
		opts.ExecuteTimeout = defaultExecuteTimeout
	}
	return &Structured{opts: opts, logger: logger.With(zap.String("transport", string(StyleStructured)))}
}

func (s *Structured) Style() Style { return StyleStructured }

func (s *Structured) Transmit(ctx context.Context, conn model.Connection, cmds []escpos.Command) (ConnectionStats, error) {
	job := escpos.NewPrinter(s.opts.Encoder).Apply(escpos.EnsureCut(cmds)).Bytes()

	ctx, cancel := context.WithTimeout(ctx, s.opts.ExecuteTimeout)
	defer cancel()

	tc := NewTCPConnection(TCPConfig{
		Address:     conn.Address(),
		DialTimeout: s.opts.DialTimeout,
	}, s.logger)

	return deliver(ctx, tc, func(ctx context.Context) error {
		return tc.Write(ctx, job)
	})
}
