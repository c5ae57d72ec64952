// internal/repository/client_repository.go
package repository

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"printer-service/internal/apperror"
	"printer-service/internal/model"
	"printer-service/internal/storage"
)

const pinDigits = 6

// clientRepository implements ClientRepository over one JSON document
type clientRepository struct {
	store  storage.DocumentStore
	logger *zap.Logger
}

// NewClientRepository creates a new client repository
func NewClientRepository(store storage.DocumentStore, logger *zap.Logger) ClientRepository {
	return &clientRepository{store: store, logger: logger}
}

func (r *clientRepository) load(ctx context.Context) []model.ClientRecord {
	var doc model.ClientDocument
	if err := r.store.Load(ctx, storage.ClientsDocument, &doc); err != nil {
		if !errors.Is(err, storage.ErrNotExist) {
			r.logger.Warn("Client store unreadable, treating as empty", zap.Error(err))
		}
		return []model.ClientRecord{}
	}
	if doc.Clients == nil {
		return []model.ClientRecord{}
	}
	return doc.Clients
}

// Register mints an id and a numeric pin for a new, enabled client
func (r *clientRepository) Register(ctx context.Context, role model.Role) (*model.ClientRecord, error) {
	pin, err := newPin()
	if err != nil {
		return nil, apperror.Internal("Failed to generate client pin", err)
	}

	client := model.ClientRecord{
		ID:        uuid.NewString(),
		Pin:       pin,
		Role:      model.NormalizeRole(role),
		Enabled:   true,
		CreatedAt: time.Now().UTC(),
	}

	clients := append(r.load(ctx), client)
	if err := r.store.Save(ctx, storage.ClientsDocument, model.ClientDocument{Clients: clients}); err != nil {
		r.logger.Error("Failed to persist client store", zap.Error(err))
		return nil, apperror.Internal("Failed to persist client store", err)
	}

	r.logger.Info("Client registered", zap.String("client_id", client.ID))
	return &client, nil
}

// List returns all clients in registration order
func (r *clientRepository) List(ctx context.Context) []model.ClientRecord {
	return r.load(ctx)
}

// Get retrieves a client by id
func (r *clientRepository) Get(ctx context.Context, id string) (*model.ClientRecord, error) {
	for _, c := range r.load(ctx) {
		if c.ID == id {
			client := c
			return &client, nil
		}
	}
	return nil, apperror.NotFound("client", id)
}

// newPin returns a uniformly random zero-padded decimal pin
func newPin() (string, error) {
	limit := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", pinDigits, n.Int64()), nil
}
