package discovery

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"printer-service/internal/model"
)

// stubProber reports a fixed set of endpoints as open
type stubProber struct {
	mu     sync.Mutex
	open   map[string]bool
	probed int
}

func (s *stubProber) Probe(_ context.Context, c model.Connection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.probed++
	return s.open[c.Address()]
}

func TestExpand(t *testing.T) {
	addrs, err := expand("192.168.1.77/30")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(addrs) != 2 || addrs[0].String() != "192.168.1.77" || addrs[1].String() != "192.168.1.78" {
		t.Fatalf("expand /30 = %v, want .77 and .78", addrs)
	}

	if addrs, _ := expand("10.0.0.0/24"); len(addrs) != 254 {
		t.Fatalf("expand /24 = %d hosts, want 254", len(addrs))
	}

	for _, bad := range []string{"10.0.0.0/16", "nonsense", "fe80::/120"} {
		if _, err := expand(bad); err == nil {
			t.Errorf("expand(%q) succeeded", bad)
		}
	}
}

func TestScanSortsAndFilters(t *testing.T) {
	prober := &stubProber{open: map[string]bool{
		"10.1.2.20:9100": true,
		"10.1.2.3:9100":  true,
		"10.1.2.3:515":   true,
	}}
	scanner := NewScanner(Config{
		Networks: []string{"10.1.2.0/27"},
		Ports:    []int{9100, 515},
		Workers:  8,
	}, prober, zap.NewNop())

	found, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []DiscoveredPrinter{{"10.1.2.3", 515}, {"10.1.2.3", 9100}, {"10.1.2.20", 9100}}
	if len(found) != len(want) {
		t.Fatalf("Scan = %v, want %v", found, want)
	}
	for i := range want {
		if found[i] != want[i] {
			t.Fatalf("Scan[%d] = %v, want %v", i, found[i], want[i])
		}
	}
	if prober.probed != 30*2 {
		t.Fatalf("probed %d endpoints, want 60", prober.probed)
	}
}
