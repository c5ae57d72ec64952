package identity

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"printer-service/internal/storage"
)

func TestLoadOrCreateIsStable(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	first, err := LoadOrCreate(ctx, store, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if first.ServerID == "" {
		t.Fatalf("empty server id")
	}

	second, err := LoadOrCreate(ctx, store, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadOrCreate (second): %v", err)
	}
	if second.ServerID != first.ServerID {
		t.Fatalf("server id changed across restarts: %s -> %s", first.ServerID, second.ServerID)
	}
}

func TestLoadOrCreateRefusesCorruptIdentity(t *testing.T) {
	store := storage.NewMemoryStore()
	store.PutRaw(storage.IdentityDocument, []byte("{"))

	if _, err := LoadOrCreate(context.Background(), store, zap.NewNop()); err == nil {
		t.Fatalf("LoadOrCreate over a corrupt document succeeded")
	}
	raw, _ := store.Raw(storage.IdentityDocument)
	if string(raw) != "{" {
		t.Fatalf("corrupt identity document was overwritten with %q", raw)
	}
}
