// internal/service/client_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"printer-service/internal/apperror"
	"printer-service/internal/model"
	"printer-service/internal/repository"
	"printer-service/internal/utils"
)

// ClientService registers and lists POS clients
type ClientService struct {
	clients     repository.ClientRepository
	logger      *utils.ServiceLogger
	auditLogger *utils.AuditLogger
}

func NewClientService(clients repository.ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{
		clients:     clients,
		logger:      utils.NewServiceLogger(logger, "client-service"),
		auditLogger: utils.NewAuditLogger(logger),
	}
}

// Register mints credentials. The pin is returned here and nowhere else.
func (cs *ClientService) Register(ctx context.Context, role model.Role) (*model.ClientCredentials, error) {
	if model.NormalizeRole(role) == "" {
		return nil, apperror.PayloadInvalid("role is required", nil)
	}
	client, err := cs.clients.Register(ctx, role)
	if err != nil {
		return nil, err
	}
	cs.auditLogger.LogClientRegistered(client.ID, string(client.Role))
	return &model.ClientCredentials{ID: client.ID, Pin: client.Pin}, nil
}

// List returns all clients without their pins
func (cs *ClientService) List(ctx context.Context) []model.ClientView {
	records := cs.clients.List(ctx)
	views := make([]model.ClientView, 0, len(records))
	for _, c := range records {
		views = append(views, c.View())
	}
	return views
}
