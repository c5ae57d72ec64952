// Package probe answers "does anything accept TCP connections at ip:port
// right now". The answer is advisory and never cached.
package probe

import (
	"context"
	"net"
	"time"

	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"

	"printer-service/internal/model"
)

// DefaultTimeout bounds a probe when none is configured
const DefaultTimeout = 1500 * time.Millisecond

// Prober checks endpoint reachability
type Prober interface {
	Probe(ctx context.Context, conn model.Connection) bool
}

// TCPProber dials once and hangs up
type TCPProber struct {
	Timeout time.Duration
	logger  *zap.Logger
}

// NewTCPProber creates a prober bounded by timeout
func NewTCPProber(timeout time.Duration, logger *zap.Logger) *TCPProber {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TCPProber{Timeout: timeout, logger: logger}
}

// Probe returns true when the TCP handshake completes within the timeout.
// Refusal, unreachable hosts, timeouts and cancellation all read as false.
func (p *TCPProber) Probe(ctx context.Context, conn model.Connection) bool {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	start := time.Now()
	var dialer net.Dialer
	c, err := dialer.DialContext(ctx, "tcp", conn.Address())
	if err != nil {
		p.logger.Debug("Probe failed",
			zap.String("endpoint", conn.Address()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return false
	}
	c.Close()
	return true
}

// ProbeAll probes every printer concurrently. Results line up with the input order.
func ProbeAll(ctx context.Context, p Prober, printers []model.PrinterRecord) []model.PrinterStatus {
	return iter.Map(printers, func(rec *model.PrinterRecord) model.PrinterStatus {
		return model.PrinterStatus{
			PrinterRecord: *rec,
			Online:        p.Probe(ctx, rec.Connection),
		}
	})
}
