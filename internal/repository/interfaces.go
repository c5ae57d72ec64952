// internal/repository/interfaces.go
package repository

import (
	"context"

	"printer-service/internal/model"
)

// PrinterRepository defines printer registry operations
type PrinterRepository interface {
	// List returns records in stored order. It never fails: unreadable
	// storage yields an empty registry.
	List(ctx context.Context) []model.PrinterRecord
	Get(ctx context.Context, id string) (*model.PrinterRecord, error)
	// Save upserts by id. The per-role quota applies to new ids only.
	Save(ctx context.Context, record *model.PrinterRecord) (created bool, err error)
	Delete(ctx context.Context, id string) error
}

// ClientRepository defines client store operations. Clients are never
// updated or deleted through the service.
type ClientRepository interface {
	Register(ctx context.Context, role model.Role) (*model.ClientRecord, error)
	List(ctx context.Context) []model.ClientRecord
	Get(ctx context.Context, id string) (*model.ClientRecord, error)
}
