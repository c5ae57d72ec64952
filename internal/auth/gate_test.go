package auth

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"printer-service/internal/apperror"
	"printer-service/internal/model"
	"printer-service/internal/repository"
	"printer-service/internal/storage"
)

func TestAuthorizeMatrix(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	clients := repository.NewClientRepository(store, zap.NewNop())

	good, err := clients.Register(ctx, model.RoleCashier)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Disabling happens out of band; write the record directly.
	disabled := model.ClientRecord{ID: "disabled-client", Pin: "123456", Role: model.RoleCashier}
	all := append(clients.List(ctx), disabled)
	if err := store.Save(ctx, storage.ClientsDocument, model.ClientDocument{Clients: all}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	wrongPin := "000000"
	if good.Pin == wrongPin {
		wrongPin = "111111"
	}

	gate := NewGate(clients, true)
	cases := []struct {
		name     string
		id, key  string
		wantErr  error
		wantWhy  string
		wantUser bool
	}{
		{"valid", good.ID, good.Pin, nil, "", true},
		{"missing id", "", good.Pin, apperror.ErrUnauthorized, ReasonMissingCredentials, false},
		{"missing key", good.ID, "", apperror.ErrUnauthorized, ReasonMissingCredentials, false},
		{"unknown client", "nobody", good.Pin, apperror.ErrForbidden, ReasonUnknownClient, false},
		{"disabled client", disabled.ID, disabled.Pin, apperror.ErrForbidden, ReasonDisabledClient, false},
		{"wrong key", good.ID, wrongPin, apperror.ErrForbidden, ReasonWrongKey, false},
	}

	var forbiddenMessages []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, reason, err := gate.Authorize(ctx, tc.id, tc.key)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Authorize: %v", err)
				}
			} else if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Authorize = %v, want %v", err, tc.wantErr)
			}
			if reason != tc.wantWhy {
				t.Fatalf("reason = %q, want %q", reason, tc.wantWhy)
			}
			if (client != nil) != tc.wantUser {
				t.Fatalf("client = %+v, want present=%v", client, tc.wantUser)
			}
			if errors.Is(err, apperror.ErrForbidden) {
				forbiddenMessages = append(forbiddenMessages, err.Error())
			}
		})
	}

	for _, msg := range forbiddenMessages[1:] {
		if msg != forbiddenMessages[0] {
			t.Fatalf("forbidden errors differ: %q vs %q", msg, forbiddenMessages[0])
		}
	}
}

func TestAuthorizeDisabledGate(t *testing.T) {
	clients := repository.NewClientRepository(storage.NewMemoryStore(), zap.NewNop())
	gate := NewGate(clients, false)

	client, _, err := gate.Authorize(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Authorize with gate off: %v", err)
	}
	if client != nil {
		t.Fatalf("Authorize with gate off returned client %+v", client)
	}
}
