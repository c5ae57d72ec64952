// Package identity owns the server's stable id, minted once and then only read.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"printer-service/internal/storage"
)

// ServerIdentity is the persisted identity document
type ServerIdentity struct {
	ServerID  string    `json:"server_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LoadOrCreate returns the persisted identity, creating it on first start.
// An unreadable identity document is an error: silently minting a new id
// would change the server's identity.
func LoadOrCreate(ctx context.Context, store storage.DocumentStore, logger *zap.Logger) (ServerIdentity, error) {
	var id ServerIdentity
	err := store.Load(ctx, storage.IdentityDocument, &id)
	switch {
	case err == nil && id.ServerID != "":
		return id, nil
	case err != nil && !errors.Is(err, storage.ErrNotExist):
		return ServerIdentity{}, fmt.Errorf("loading server identity: %w", err)
	}

	id = ServerIdentity{ServerID: uuid.NewString(), CreatedAt: time.Now().UTC()}
	if err := store.Save(ctx, storage.IdentityDocument, id); err != nil {
		return ServerIdentity{}, fmt.Errorf("persisting server identity: %w", err)
	}
	logger.Info("Server identity created", zap.String("server_id", id.ServerID))
	return id, nil
}
