package probe

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"

	"printer-service/internal/model"
)

func listen(t *testing.T) (net.Listener, model.Connection) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	return ln, serve(t, ln)
}

// serve accepts and drops connections on ln until the test ends
func serve(t *testing.T, ln net.Listener) model.Connection {
	t.Helper()
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			c.Close()
		}
	}()

	host, port, _ := net.SplitHostPort(ln.Addr().String())
	p, _ := strconv.Atoi(port)
	return model.Connection{IP: host, Port: p}
}

// closedPort returns a loopback port that nothing listens on
func closedPort(t *testing.T) model.Connection {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return model.Connection{IP: "127.0.0.1", Port: port}
}

func TestProbeOpenListener(t *testing.T) {
	_, conn := listen(t)
	p := NewTCPProber(time.Second, zap.NewNop())
	if !p.Probe(context.Background(), conn) {
		t.Fatalf("Probe(%s) = false, want true", conn.Address())
	}
}

func TestProbeIPv6Loopback(t *testing.T) {
	ln, err := net.Listen("tcp6", "[::1]:0")
	if err != nil {
		t.Skipf("IPv6 loopback unavailable: %v", err)
	}
	conn := serve(t, ln)

	want := "[::1]:" + strconv.Itoa(conn.Port)
	if got := conn.Address(); got != want {
		t.Fatalf("Address() = %q, want %q", got, want)
	}
	if !NewTCPProber(time.Second, zap.NewNop()).Probe(context.Background(), conn) {
		t.Fatalf("Probe(%s) = false, want true", conn.Address())
	}
}

func TestProbeClosedPort(t *testing.T) {
	conn := closedPort(t)
	p := NewTCPProber(DefaultTimeout, zap.NewNop())

	start := time.Now()
	if p.Probe(context.Background(), conn) {
		t.Fatalf("Probe(%s) = true, want false", conn.Address())
	}
	if elapsed := time.Since(start); elapsed > DefaultTimeout+500*time.Millisecond {
		t.Fatalf("Probe took %v, want at most the timeout", elapsed)
	}
}

func TestProbeCancelledContext(t *testing.T) {
	_, conn := listen(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if NewTCPProber(time.Second, zap.NewNop()).Probe(ctx, conn) {
		t.Fatalf("Probe with a cancelled context = true")
	}
}

func TestProbeAllKeepsOrder(t *testing.T) {
	_, up := listen(t)
	down := closedPort(t)

	printers := []model.PrinterRecord{
		{ID: "a", Connection: down},
		{ID: "b", Connection: up},
		{ID: "c", Connection: down},
	}
	got := ProbeAll(context.Background(), NewTCPProber(time.Second, zap.NewNop()), printers)

	want := []bool{false, true, false}
	for i, status := range got {
		if status.ID != printers[i].ID {
			t.Fatalf("result %d is %s, want %s", i, status.ID, printers[i].ID)
		}
		if status.Online != want[i] {
			t.Fatalf("printer %s online = %v, want %v", status.ID, status.Online, want[i])
		}
	}
}
