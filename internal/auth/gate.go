// Package auth decides whether a request may use privileged endpoints.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"printer-service/internal/apperror"
	"printer-service/internal/model"
	"printer-service/internal/repository"
)

// Header names carrying client credentials
const (
	HeaderClientID = "x-client-id"
	HeaderPrintKey = "x-print-key"
)

// Denial reasons. These go to the security log only.
const (
	ReasonMissingCredentials = "missing_credentials"
	ReasonUnknownClient      = "unknown_client"
	ReasonDisabledClient     = "disabled_client"
	ReasonWrongKey           = "wrong_key"
)

// Gate checks client credentials against the client store
type Gate struct {
	clients repository.ClientRepository
	enabled bool
}

// NewGate creates a gate; a disabled gate admits every request
func NewGate(clients repository.ClientRepository, enabled bool) *Gate {
	return &Gate{clients: clients, enabled: enabled}
}

// Enabled reports whether credentials are checked at all
func (g *Gate) Enabled() bool { return g.enabled }

// Authorize returns the authenticated client, or nil when the gate is off.
// Unknown, disabled and wrong-key failures share one Forbidden error; the
// returned reason tells them apart for logging.
func (g *Gate) Authorize(ctx context.Context, clientID, presentedKey string) (*model.ClientRecord, string, error) {
	if !g.enabled {
		return nil, "", nil
	}

	clientID = strings.TrimSpace(clientID)
	if clientID == "" || presentedKey == "" {
		return nil, ReasonMissingCredentials, apperror.Unauthorized("Missing client credentials")
	}

	client, err := g.clients.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, ReasonUnknownClient, apperror.Forbidden()
		}
		return nil, "", err
	}
	if !client.Enabled {
		return nil, ReasonDisabledClient, apperror.Forbidden()
	}
	if subtle.ConstantTimeCompare([]byte(client.Pin), []byte(presentedKey)) != 1 {
		return nil, ReasonWrongKey, apperror.Forbidden()
	}
	return client, "", nil
}
