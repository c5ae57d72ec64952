// internal/service/discovery_service.go
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"printer-service/internal/apperror"
	"printer-service/internal/discovery"
	"printer-service/internal/model"
	"printer-service/internal/repository"
	"printer-service/internal/utils"
)

// NetworkScanner finds open printer ports
type NetworkScanner interface {
	Scan(ctx context.Context) ([]discovery.DiscoveredPrinter, error)
}

// DiscoveryService reports printers on the network that are not registered yet
type DiscoveryService struct {
	scanner  NetworkScanner
	printers repository.PrinterRepository
	logger   *utils.ServiceLogger
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(scanner NetworkScanner, printers repository.PrinterRepository, logger *zap.Logger) *DiscoveryService {
	return &DiscoveryService{
		scanner:  scanner,
		printers: printers,
		logger:   utils.NewServiceLogger(logger, "discovery-service"),
	}
}

// Discover scans and drops endpoints already in the registry
func (ds *DiscoveryService) Discover(ctx context.Context) ([]discovery.DiscoveredPrinter, error) {
	found, err := ds.scanner.Scan(ctx)
	if err != nil {
		return nil, apperror.Internal("Network scan failed", err)
	}

	known := make(map[string]bool)
	for _, p := range ds.printers.List(ctx) {
		known[strings.ToLower(p.Connection.Address())] = true
	}

	fresh := make([]discovery.DiscoveredPrinter, 0, len(found))
	for _, d := range found {
		addr := strings.ToLower(model.Connection{IP: d.IP, Port: d.Port}.Address())
		if !known[addr] {
			fresh = append(fresh, d)
		}
	}

	ds.logger.Info("Discovery finished",
		zap.Int("found", len(found)),
		zap.Int("unregistered", len(fresh)),
	)
	return fresh, nil
}
