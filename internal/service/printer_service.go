// internal/service/printer_service.go
package service

import (
	"context"
	"errors"
	"net"
	"strings"

	"go.uber.org/zap"

	"printer-service/internal/apperror"
	"printer-service/internal/config"
	"printer-service/internal/events"
	"printer-service/internal/model"
	"printer-service/internal/probe"
	"printer-service/internal/repository"
	"printer-service/internal/utils"
)

// SavePrinterRequest is the body of POST /api/printer/save
type SavePrinterRequest struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Role       model.Role       `json:"role"`
	Connection model.Connection `json:"connection"`
	// Enabled defaults to true when omitted.
	Enabled *bool `json:"enabled"`
}

// PrinterService handles printer registry business logic
type PrinterService struct {
	printers    repository.PrinterRepository
	prober      probe.Prober
	dispatcher  *DispatchService
	bus         events.Publisher
	config      *config.PrinterConfig
	logger      *utils.ServiceLogger
	auditLogger *utils.AuditLogger
}

// NewPrinterService creates a new printer service instance
func NewPrinterService(
	printers repository.PrinterRepository,
	prober probe.Prober,
	dispatcher *DispatchService,
	bus events.Publisher,
	cfg *config.Config,
	logger *zap.Logger,
) *PrinterService {
	return &PrinterService{
		printers:    printers,
		prober:      prober,
		dispatcher:  dispatcher,
		bus:         bus,
		config:      &cfg.Printer,
		logger:      utils.NewServiceLogger(logger, "printer-service"),
		auditLogger: utils.NewAuditLogger(logger),
	}
}

// ListWithStatus returns every printer with a fresh reachability flag, in
// stored order. Probes run to their own timeout even if the caller goes away.
func (ps *PrinterService) ListWithStatus(ctx context.Context) []model.PrinterStatus {
	ctx = context.WithoutCancel(ctx)
	return probe.ProbeAll(ctx, ps.prober, ps.printers.List(ctx))
}

// GetPrinter returns one printer with its reachability flag
func (ps *PrinterService) GetPrinter(ctx context.Context, id string) (*model.PrinterStatus, error) {
	printer, err := ps.printers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.PrinterStatus{
		PrinterRecord: *printer,
		Online:        ps.prober.Probe(context.WithoutCancel(ctx), printer.Connection),
	}, nil
}

// SavePrinter validates and upserts a printer
func (ps *PrinterService) SavePrinter(ctx context.Context, req *SavePrinterRequest) (*model.PrinterRecord, error) {
	if err := ps.validateSaveRequest(req); err != nil {
		return nil, err
	}

	record := &model.PrinterRecord{
		ID:         strings.TrimSpace(req.ID),
		Name:       strings.TrimSpace(req.Name),
		Role:       req.Role,
		Connection: model.Connection{IP: strings.TrimSpace(req.Connection.IP), Port: req.Connection.Port},
		Enabled:    req.Enabled == nil || *req.Enabled,
	}

	created, err := ps.printers.Save(ctx, record)
	if err != nil {
		if errors.Is(err, apperror.ErrQuotaExceeded) {
			ps.logger.Warn("Printer rejected by quota", zap.String("role", string(record.Role)))
		}
		return nil, err
	}

	ps.auditLogger.LogPrinterSaved(record.ID, string(record.Role), created)
	if ps.bus != nil {
		ps.bus.Publish(model.NewPrinterEvent(model.EventPrinterSaved, record.ID, map[string]interface{}{"created": created}))
	}
	return record, nil
}

// DeletePrinter removes a printer; unknown ids succeed
func (ps *PrinterService) DeletePrinter(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.PayloadInvalid("id is required", nil)
	}
	if err := ps.printers.Delete(ctx, id); err != nil {
		return err
	}
	ps.auditLogger.LogPrinterDeleted(id)
	if ps.bus != nil {
		ps.bus.Publish(model.NewPrinterEvent(model.EventPrinterDeleted, id, nil))
	}
	return nil
}

// TestPrinter prints the fixed test message. It always probes first.
func (ps *PrinterService) TestPrinter(ctx context.Context, ref string, client *model.ClientRecord) (*model.DispatchReceipt, error) {
	job := model.TextJob{Text: ps.config.TestMessage}
	return ps.dispatcher.Dispatch(ctx, ref, job, client, DispatchOptions{Probe: true})
}

func (ps *PrinterService) validateSaveRequest(req *SavePrinterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperror.PayloadInvalid("name is required", nil)
	}
	if model.NormalizeRole(req.Role) == "" {
		return apperror.PayloadInvalid("role is required", nil)
	}
	ip := strings.TrimSpace(req.Connection.IP)
	if ip == "" {
		return apperror.PayloadInvalid("connection.ip is required", nil)
	}
	if net.ParseIP(ip) == nil && strings.ContainsAny(ip, " /:") {
		return apperror.PayloadInvalid("connection.ip must be an IP address or host name", nil)
	}
	if req.Connection.Port < 0 || req.Connection.Port > 65535 {
		return apperror.PayloadInvalid("connection.port must be between 1 and 65535", nil)
	}
	return nil
}
