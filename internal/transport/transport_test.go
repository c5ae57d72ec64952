package transport

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"go.uber.org/zap"

	"printer-service/internal/escpos"
	"printer-service/internal/model"
)

// fakePrinter accepts one connection and reports everything it received
func fakePrinter(t *testing.T) (model.Connection, <-chan []byte) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	return accept(t, ln)
}

func accept(t *testing.T, ln net.Listener) (model.Connection, <-chan []byte) {
	t.Helper()
	t.Cleanup(func() { ln.Close() })

	received := make(chan []byte, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		c.SetReadDeadline(time.Now().Add(5 * time.Second))
		data, _ := io.ReadAll(c)
		received <- data
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return model.Connection{IP: addr.IP.String(), Port: addr.Port}, received
}

func receive(t *testing.T, received <-chan []byte) []byte {
	t.Helper()
	select {
	case data := <-received:
		return data
	case <-time.After(5 * time.Second):
		t.Fatalf("fake printer received nothing")
		return nil
	}
}

func testOptions() Options {
	return Options{
		Encoder:        escpos.NewEncoder(48, 576),
		DialTimeout:    time.Second,
		ExecuteTimeout: 3 * time.Second,
	}
}

func TestTransportsDeliverAndCut(t *testing.T) {
	for _, style := range []Style{StyleRaw, StyleStructured} {
		t.Run(string(style), func(t *testing.T) {
			conn, received := fakePrinter(t)
			tr, err := New(style, testOptions(), zap.NewNop())
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if tr.Style() != style {
				t.Fatalf("Style = %s, want %s", tr.Style(), style)
			}

			// No explicit cut: the transport must add one.
			stats, err := tr.Transmit(context.Background(), conn, []escpos.Command{escpos.Text("order 17")})
			if err != nil {
				t.Fatalf("Transmit: %v", err)
			}

			data := receive(t, received)
			if !bytes.HasPrefix(data, escpos.Preamble()) {
				t.Fatalf("job does not start with the preamble: % x", data)
			}
			if !bytes.Contains(data, []byte("order 17\n")) {
				t.Fatalf("job is missing the text: %q", data)
			}
			if !bytes.HasSuffix(data, []byte{0x1D, 0x56, 0x00}) {
				t.Fatalf("job does not end with a full cut: % x", data)
			}
			if n := bytes.Count(data, []byte{0x1D, 0x56, 0x00}); n != 1 {
				t.Fatalf("job holds %d cuts, want 1", n)
			}
			if stats.BytesWritten != int64(len(data)) {
				t.Fatalf("BytesWritten = %d, printer received %d", stats.BytesWritten, len(data))
			}
			if stats.Writes == 0 {
				t.Fatalf("Writes = 0")
			}
		})
	}
}

func TestTransportsEmitSameBytes(t *testing.T) {
	cmds := []escpos.Command{escpos.Text("Crème brûlée €4"), escpos.Row(escpos.Cell{Text: "Größe", Width: 8})}

	var jobs [][]byte
	for _, style := range []Style{StyleRaw, StyleStructured} {
		conn, received := fakePrinter(t)
		tr, err := New(style, testOptions(), zap.NewNop())
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if _, err := tr.Transmit(context.Background(), conn, cmds); err != nil {
			t.Fatalf("Transmit(%s): %v", style, err)
		}
		jobs = append(jobs, receive(t, received))
	}

	if !bytes.Equal(jobs[0], jobs[1]) {
		t.Fatalf("raw and structured jobs differ:\nraw:        % x\nstructured: % x", jobs[0], jobs[1])
	}
	if !bytes.Contains(jobs[0], []byte{'C', 'r', 0x8A, 'm', 'e'}) {
		t.Fatalf("accented text not mapped to code page 858: % x", jobs[0])
	}
}

func TestTransmitIPv6Loopback(t *testing.T) {
	for _, style := range []Style{StyleRaw, StyleStructured} {
		t.Run(string(style), func(t *testing.T) {
			ln, err := net.Listen("tcp6", "[::1]:0")
			if err != nil {
				t.Skipf("IPv6 loopback unavailable: %v", err)
			}
			conn, received := accept(t, ln)
			if conn.IP != "::1" {
				t.Fatalf("listener IP = %q, want ::1", conn.IP)
			}

			tr, err := New(style, testOptions(), zap.NewNop())
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if _, err := tr.Transmit(context.Background(), conn, []escpos.Command{escpos.Text("v6")}); err != nil {
				t.Fatalf("Transmit to %s: %v", conn.Address(), err)
			}
			if data := receive(t, received); !bytes.Contains(data, []byte("v6\n")) {
				t.Fatalf("job is missing the text: %q", data)
			}
		})
	}
}

func TestTransmitClosedPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	tr := NewRawSocket(testOptions(), zap.NewNop())
	stats, err := tr.Transmit(context.Background(), model.Connection{IP: "127.0.0.1", Port: port}, []escpos.Command{escpos.Text("x")})
	if err == nil {
		t.Fatalf("Transmit to a closed port succeeded")
	}
	if stats.BytesWritten != 0 {
		t.Fatalf("BytesWritten = %d after a failed dial", stats.BytesWritten)
	}
}

func TestNewRejectsUnknownStyle(t *testing.T) {
	if _, err := New("carrier-pigeon", testOptions(), zap.NewNop()); err == nil {
		t.Fatalf("New accepted an unknown style")
	}
}
