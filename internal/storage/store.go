// Package storage persists named JSON documents. The registry and the
// client store each own one document and rewrite it whole on every mutation.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"printer-service/internal/config"
)

// Document names
const (
	PrintersDocument = "printers"
	ClientsDocument  = "clients"
	IdentityDocument = "identity"
)

// ErrNotExist is returned by Load when the document has never been saved.
var ErrNotExist = errors.New("document does not exist")

// DocumentStore loads and saves whole JSON documents by name.
// Save replaces the previous body entirely; last writer wins.
type DocumentStore interface {
	Load(ctx context.Context, name string, v interface{}) error
	Save(ctx context.Context, name string, v interface{}) error
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the store selected by cfg.Driver
func Open(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (DocumentStore, error) {
	switch cfg.Driver {
	case "file":
		store, err := NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "postgres":
		store, err := NewPostgresStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
