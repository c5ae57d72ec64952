// internal/service/dispatch_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"go.uber.org/zap"

	"printer-service/internal/apperror"
	"printer-service/internal/config"
	"printer-service/internal/escpos"
	"printer-service/internal/events"
	"printer-service/internal/invoice"
	"printer-service/internal/model"
	"printer-service/internal/probe"
	"printer-service/internal/raster"
	"printer-service/internal/repository"
	"printer-service/internal/transport"
	"printer-service/internal/utils"
)

// DispatchOptions is the per entry point dispatch policy
type DispatchOptions struct {
	// Probe checks reachability before rendering and fails fast with
	// PRINTER_OFFLINE instead of waiting for the transport to fail.
	Probe bool
}

// DispatchService resolves, renders and transmits print jobs
type DispatchService struct {
	printers    repository.PrinterRepository
	prober      probe.Prober
	transport   transport.Transport
	rasterizer  raster.Rasterizer
	bus         events.Publisher
	config      *config.PrinterConfig
	uploadDir   string
	logger      *utils.ServiceLogger
	auditLogger *utils.AuditLogger
}

// NewDispatchService creates a new dispatch service instance
func NewDispatchService(
	printers repository.PrinterRepository,
	prober probe.Prober,
	tr transport.Transport,
	rasterizer raster.Rasterizer,
	bus events.Publisher,
	cfg *config.Config,
	logger *zap.Logger,
) *DispatchService {
	return &DispatchService{
		printers:    printers,
		prober:      prober,
		transport:   tr,
		rasterizer:  rasterizer,
		bus:         bus,
		config:      &cfg.Printer,
		uploadDir:   cfg.Storage.UploadDir,
		logger:      utils.NewServiceLogger(logger, "dispatch-service"),
		auditLogger: utils.NewAuditLogger(logger),
	}
}

// DefaultProbe is the probe policy for print entry points
func (ds *DispatchService) DefaultProbe() bool {
	return ds.config.ProbeBeforePrint
}

// DefaultPrinter is the fallback printer reference
func (ds *DispatchService) DefaultPrinter() string {
	return ds.config.DefaultPrinter
}

// Dispatch prints job on the printer identified by ref. It reports success
// or exactly one classified failure and never retries.
func (ds *DispatchService) Dispatch(ctx context.Context, ref string, job model.PrintJob, client *model.ClientRecord, opts DispatchOptions) (*model.DispatchReceipt, error) {
	printer, err := ds.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	clientID := ""
	if client != nil {
		clientID = client.ID
	}
	plog := utils.NewPrinterLogger(ds.logger.Logger, printer.ID, printer.Name, string(printer.Role))
	start := time.Now()

	receipt, stats, err := ds.dispatchTo(ctx, plog, printer, job, opts)

	plog.LogDispatch(string(job.Mode()), printer.Connection.Address(), stats.BytesWritten, time.Since(start), err)
	ds.auditLogger.LogDispatch(clientID, printer.ID, string(job.Mode()), err == nil)
	ds.publish(printer.ID, job.Mode(), clientID, err)

	return receipt, err
}

func (ds *DispatchService) dispatchTo(ctx context.Context, plog *utils.PrinterLogger, printer *model.PrinterRecord, job model.PrintJob, opts DispatchOptions) (*model.DispatchReceipt, transport.ConnectionStats, error) {
	var stats transport.ConnectionStats
	if opts.Probe {
		probeStart := time.Now()
		online := ds.prober.Probe(ctx, printer.Connection)
		plog.LogProbe(printer.Connection.Address(), online, time.Since(probeStart))
		if !online {
			return nil, stats, apperror.PrinterOffline(printer.ID)
		}
	}

	cmds, err := ds.Render(ctx, job)
	if err != nil {
		return nil, stats, err
	}

	stats, err = ds.transport.Transmit(ctx, printer.Connection, cmds)
	if err != nil {
		return nil, stats, apperror.TransportFailure(err)
	}

	return &model.DispatchReceipt{PrinterID: printer.ID, Mode: job.Mode()}, stats, nil
}

// Resolve finds an enabled printer by id, then by name, ignoring case
func (ds *DispatchService) Resolve(ctx context.Context, ref string) (*model.PrinterRecord, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, apperror.PayloadInvalid("printer_id is required", nil)
	}

	var enabled []model.PrinterRecord
	for _, p := range ds.printers.List(ctx) {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	for _, p := range enabled {
		if strings.EqualFold(p.ID, ref) {
			printer := p
			return &printer, nil
		}
	}
	for _, p := range enabled {
		if strings.EqualFold(p.Name, ref) {
			printer := p
			return &printer, nil
		}
	}
	return nil, apperror.NotFound("printer", ref)
}

// Render turns a job into receipt commands ending in a cut
func (ds *DispatchService) Render(ctx context.Context, job model.PrintJob) ([]escpos.Command, error) {
	switch j := job.(type) {
	case model.TextJob:
		return []escpos.Command{escpos.Text(j.Text), escpos.Feed(3), escpos.Cut()}, nil

	case model.InvoiceJob:
		return invoice.Render(j.Company, j.Master, j.Lines, invoice.Options{
			WidthChars:  ds.config.PaperWidthChars,
			ClosingLine: ds.config.ClosingLine,
		}), nil

	case model.ImageJob:
		path, err := ResolveUpload(ds.uploadDir, j.ImagePath)
		if err != nil {
			return nil, err
		}
		img, err := raster.LoadImage(path)
		if err != nil {
			return nil, apperror.PayloadInvalid("Image could not be decoded", err)
		}
		return imageCommands([]image.Image{img}), nil

	case model.DocumentJob:
		path, err := ResolveUpload(ds.uploadDir, j.DocumentPath)
		if err != nil {
			return nil, err
		}
		pages, err := ds.pages(ctx, path, j.Convert)
		if err != nil {
			return nil, err
		}
		return imageCommands(pages), nil
	}
	return nil, apperror.PayloadInvalid(fmt.Sprintf("unsupported job type %T", job), nil)
}

func (ds *DispatchService) pages(ctx context.Context, path string, convert bool) ([]image.Image, error) {
	if !convert {
		img, err := raster.LoadImage(path)
		if err != nil {
			return nil, apperror.PayloadInvalid("Document is not an image; set convert to rasterize it", err)
		}
		return []image.Image{img}, nil
	}

	pages, err := ds.rasterizer.Rasterize(ctx, path)
	if err != nil {
		var unsupported *raster.ErrUnsupported
		if errors.As(err, &unsupported) {
			return nil, apperror.PayloadInvalid("Document type cannot be converted", err)
		}
		return nil, apperror.Internal("Document conversion failed", err)
	}
	if len(pages) == 0 {
		return nil, apperror.PayloadInvalid("Document has no pages", nil)
	}
	return pages, nil
}

func imageCommands(pages []image.Image) []escpos.Command {
	cmds := make([]escpos.Command, 0, len(pages)+2)
	for _, p := range pages {
		cmds = append(cmds, escpos.Image(p))
	}
	return append(cmds, escpos.Feed(3), escpos.Cut())
}

func (ds *DispatchService) publish(printerID string, mode model.JobMode, clientID string, err error) {
	if ds.bus == nil {
		return
	}
	data := map[string]interface{}{"mode": mode}
	if clientID != "" {
		data["client_id"] = clientID
	}
	eventType := model.EventDispatchSucceeded
	if err != nil {
		eventType = model.EventDispatchFailed
		data["code"] = apperror.KindOf(err)
	}
	ds.bus.Publish(model.NewPrinterEvent(eventType, printerID, data))
}
