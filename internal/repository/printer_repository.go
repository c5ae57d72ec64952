// internal/repository/printer_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"printer-service/internal/apperror"
	"printer-service/internal/model"
	"printer-service/internal/storage"
)

// printerRepository implements PrinterRepository over one JSON document
type printerRepository struct {
	store       storage.DocumentStore
	logger      *zap.Logger
	maxPerRole  int
	defaultPort int
}

// NewPrinterRepository creates a new printer repository
func NewPrinterRepository(store storage.DocumentStore, logger *zap.Logger, maxPerRole, defaultPort int) PrinterRepository {
	return &printerRepository{
		store:       store,
		logger:      logger,
		maxPerRole:  maxPerRole,
		defaultPort: defaultPort,
	}
}

// load re-reads the registry on every call
func (r *printerRepository) load(ctx context.Context) []model.PrinterRecord {
	var doc model.PrinterDocument
	if err := r.store.Load(ctx, storage.PrintersDocument, &doc); err != nil {
		if !errors.Is(err, storage.ErrNotExist) {
			r.logger.Warn("Printer registry unreadable, treating as empty", zap.Error(err))
		}
		return []model.PrinterRecord{}
	}
	if doc.Printers == nil {
		return []model.PrinterRecord{}
	}
	return doc.Printers
}

func (r *printerRepository) persist(ctx context.Context, printers []model.PrinterRecord) error {
	if err := r.store.Save(ctx, storage.PrintersDocument, model.PrinterDocument{Printers: printers}); err != nil {
		r.logger.Error("Failed to persist printer registry", zap.Error(err))
		return apperror.Internal("Failed to persist printer registry", err)
	}
	return nil
}

// List returns all printers in stored order
func (r *printerRepository) List(ctx context.Context) []model.PrinterRecord {
	return r.load(ctx)
}

// Get retrieves a printer by id
func (r *printerRepository) Get(ctx context.Context, id string) (*model.PrinterRecord, error) {
	for _, p := range r.load(ctx) {
		if p.ID == id {
			printer := p
			return &printer, nil
		}
	}
	return nil, apperror.NotFound("printer", id)
}

// Save replaces an existing record unconditionally or appends a new one
// when its role still has room. A rejected create writes nothing.
func (r *printerRepository) Save(ctx context.Context, record *model.PrinterRecord) (bool, error) {
	record.Role = model.NormalizeRole(record.Role)
	if record.Connection.Port == 0 {
		record.Connection.Port = r.defaultPort
	}

	printers := r.load(ctx)

	if record.ID != "" {
		for i := range printers {
			if printers[i].ID == record.ID {
				printers[i] = *record
				if err := r.persist(ctx, printers); err != nil {
					return false, err
				}
				r.logger.Info("Printer updated", zap.String("printer_id", record.ID))
				return false, nil
			}
		}
	}

	if n := countEnabled(printers, record.Role); n >= r.maxPerRole {
		r.logger.Warn("Printer quota exceeded",
			zap.String("role", string(record.Role)),
			zap.Int("enabled", n),
			zap.Int("limit", r.maxPerRole),
		)
		return false, apperror.QuotaExceeded(string(record.Role), r.maxPerRole)
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	printers = append(printers, *record)
	if err := r.persist(ctx, printers); err != nil {
		return false, err
	}

	r.logger.Info("Printer created",
		zap.String("printer_id", record.ID),
		zap.String("role", string(record.Role)),
	)
	return true, nil
}

// Delete removes a printer by id. Unknown ids are not an error.
func (r *printerRepository) Delete(ctx context.Context, id string) error {
	printers := r.load(ctx)
	kept := printers[:0]
	for _, p := range printers {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(printers) {
		return nil
	}
	if err := r.persist(ctx, kept); err != nil {
		return fmt.Errorf("delete printer %s: %w", id, err)
	}
	r.logger.Info("Printer deleted", zap.String("printer_id", id))
	return nil
}

func countEnabled(printers []model.PrinterRecord, role model.Role) int {
	n := 0
	for _, p := range printers {
		if p.Enabled && model.NormalizeRole(p.Role) == role {
			n++
		}
	}
	return n
}
