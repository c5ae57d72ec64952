// internal/transport/tcp_connection.go
package transport

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TCPConfig describes one printer socket
type TCPConfig struct {
	Address      string
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

// ConnectionStats counts traffic on one connection
type ConnectionStats struct {
	BytesWritten int64
	Writes       int
	OpenedAt     time.Time
}

// TCPConnection is a write-only socket to a raw-port printer
type TCPConnection struct {
	config TCPConfig
	conn   net.Conn
	logger *zap.Logger
	mutex  sync.Mutex
	stats  ConnectionStats
}

// NewTCPConnection creates an unopened connection
func NewTCPConnection(config TCPConfig, logger *zap.Logger) *TCPConnection {
	return &TCPConnection{
		config: config,
		logger: logger.With(zap.String("protocol", "tcp"), zap.String("address", config.Address)),
	}
}

// Open dials the printer, bounded by both DialTimeout and ctx
func (tc *TCPConnection) Open(ctx context.Context) error {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if tc.conn != nil {
		return nil
	}

	dialer := &net.Dialer{Timeout: tc.config.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", tc.config.Address)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", tc.config.Address, err)
	}

	tc.conn = conn
	tc.stats = ConnectionStats{OpenedAt: time.Now()}
	tc.logger.Debug("TCP connection opened")
	return nil
}

// Write sends data in full or fails. The deadline is the earlier of
// WriteTimeout and the context deadline.
func (tc *TCPConnection) Write(ctx context.Context, data []byte) error {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if tc.conn == nil {
		return fmt.Errorf("TCP connection not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	deadline := time.Time{}
	if tc.config.WriteTimeout > 0 {
		deadline = time.Now().Add(tc.config.WriteTimeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	if err := tc.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	n, err := tc.conn.Write(data)
	if err != nil {
		return fmt.Errorf("failed to write to %s: %w", tc.config.Address, err)
	}
	if n != len(data) {
		return fmt.Errorf("incomplete write: wrote %d of %d bytes", n, len(data))
	}

	tc.stats.BytesWritten += int64(n)
	tc.stats.Writes++
	return nil
}

// CloseWrite half-closes the socket so the printer sees end of job
func (tc *TCPConnection) CloseWrite() error {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if tc.conn == nil {
		return nil
	}
	if hc, ok := tc.conn.(interface{ CloseWrite() error }); ok {
		if err := hc.CloseWrite(); err != nil {
			return fmt.Errorf("failed to half-close %s: %w", tc.config.Address, err)
		}
	}
	return nil
}

// Close releases the socket. Closing twice is a no-op.
func (tc *TCPConnection) Close() error {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if tc.conn == nil {
		return nil
	}
	err := tc.conn.Close()
	tc.conn = nil
	tc.logger.Debug("TCP connection closed",
		zap.Int64("bytes_written", tc.stats.BytesWritten),
		zap.Int("writes", tc.stats.Writes),
		zap.Duration("open_for", time.Since(tc.stats.OpenedAt)),
	)
	if err != nil {
		return fmt.Errorf("failed to close TCP connection: %w", err)
	}
	return nil
}

// Stats returns a snapshot of the traffic counters
func (tc *TCPConnection) Stats() ConnectionStats {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()
	return tc.stats
}
