// internal/discovery/scanner.go
package discovery

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"printer-service/internal/model"
	"printer-service/internal/probe"
)

// maxHosts caps one scan; a /22 is the widest range accepted
const maxHosts = 1024

// DiscoveredPrinter is an endpoint that accepted a TCP connection on a printer port
type DiscoveredPrinter struct {
	IP   string `json:"ip"`
	Port int    `json:"port"`
}

// Config for the network scanner
type Config struct {
	Networks []string
	Ports    []int
	Workers  int
	Timeout  time.Duration
}

// Scanner sweeps IPv4 ranges for open raw-print ports
type Scanner struct {
	config Config
	prober probe.Prober
	logger *zap.Logger
}

// NewScanner creates a new TCP scanner. A nil prober gets a TCP prober
// bounded by config.Timeout.
func NewScanner(config Config, prober probe.Prober, logger *zap.Logger) *Scanner {
	if len(config.Ports) == 0 {
		config.Ports = []int{9100}
	}
	if config.Workers <= 0 {
		config.Workers = 50
	}
	if prober == nil {
		prober = probe.NewTCPProber(config.Timeout, logger)
	}
	return &Scanner{
		config: config,
		prober: prober,
		logger: logger.With(zap.String("scanner", "tcp")),
	}
}

// Scan probes every host and port of the configured networks, or of the
// local /24 when none are configured. Results are sorted by address.
func (s *Scanner) Scan(ctx context.Context) ([]DiscoveredPrinter, error) {
	networks := s.config.Networks
	if len(networks) == 0 {
		local, err := localSubnet()
		if err != nil {
			return nil, err
		}
		networks = []string{local}
	}

	var hosts []netip.Addr
	for _, cidr := range networks {
		addrs, err := expand(cidr)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, addrs...)
		if len(hosts) > maxHosts {
			return nil, fmt.Errorf("scan covers more than %d hosts", maxHosts)
		}
	}

	start := time.Now()
	s.logger.Info("Starting TCP network scan",
		zap.Strings("networks", networks),
		zap.Ints("ports", s.config.Ports),
		zap.Int("hosts", len(hosts)),
	)

	p := pool.NewWithResults[*DiscoveredPrinter]().WithMaxGoroutines(s.config.Workers)
	for _, host := range hosts {
		for _, port := range s.config.Ports {
			p.Go(func() *DiscoveredPrinter {
				if ctx.Err() != nil {
					return nil
				}
				if !s.prober.Probe(ctx, model.Connection{IP: host.String(), Port: port}) {
					return nil
				}
				return &DiscoveredPrinter{IP: host.String(), Port: port}
			})
		}
	}

	var found []DiscoveredPrinter
	for _, d := range p.Wait() {
		if d != nil {
			found = append(found, *d)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		a, b := netip.MustParseAddr(found[i].IP), netip.MustParseAddr(found[j].IP)
		if c := a.Compare(b); c != 0 {
			return c < 0
		}
		return found[i].Port < found[j].Port
	})

	s.logger.Info("TCP scan completed",
		zap.Int("printers_found", len(found)),
		zap.Duration("duration", time.Since(start)),
	)
	if err := ctx.Err(); err != nil {
		return found, err
	}
	return found, nil
}

// expand lists the usable IPv4 host addresses of cidr. Network and
// broadcast addresses are skipped for prefixes shorter than /31.
func expand(cidr string) ([]netip.Addr, error) {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return nil, fmt.Errorf("invalid network %q: %w", cidr, err)
	}
	if !prefix.Addr().Is4() {
		return nil, fmt.Errorf("only IPv4 networks can be scanned: %s", cidr)
	}
	prefix = prefix.Masked()
	if prefix.Bits() < 32-10 {
		return nil, fmt.Errorf("network %s is wider than /22", cidr)
	}

	var addrs []netip.Addr
	for a := prefix.Addr(); prefix.Contains(a); a = a.Next() {
		addrs = append(addrs, a)
	}
	if prefix.Bits() < 31 && len(addrs) > 2 {
		addrs = addrs[1 : len(addrs)-1]
	}
	return addrs, nil
}

// localSubnet returns the /24 of the first non-loopback IPv4 interface address
func localSubnet() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() || ipnet.IP.To4() == nil {
			continue
		}
		addr, _ := netip.AddrFromSlice(ipnet.IP.To4())
		prefix, err := addr.Prefix(24)
		if err != nil {
			continue
		}
		return prefix.String(), nil
	}
	return "", fmt.Errorf("no local IPv4 address found")
}
