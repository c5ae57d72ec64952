package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Names []string `json:"names"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	var missing sample
	if err := store.Load(ctx, "things", &missing); !errors.Is(err, ErrNotExist) {
		t.Fatalf("Load before Save = %v, want ErrNotExist", err)
	}

	if err := store.Save(ctx, "things", sample{Names: []string{"a", "b"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var got sample
	if err := store.Load(ctx, "things", &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Names) != 2 || got.Names[0] != "a" || got.Names[1] != "b" {
		t.Fatalf("Load = %+v, want [a b]", got)
	}

	data, err := os.ReadFile(filepath.Join(dir, "things.json"))
	if err != nil {
		t.Fatalf("reading document: %v", err)
	}
	if !strings.Contains(string(data), `"names"`) {
		t.Fatalf("document body %q does not hold the names key", data)
	}
}

func TestFileStoreSaveLeavesNoTemporaryFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := store.Save(ctx, "things", sample{Names: []string{"x"}}); err != nil {
			t.Fatalf("Save #%d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "things.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("directory holds %v, want only things.json", names)
	}
}

func TestFileStoreCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "things.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var got sample
	err = store.Load(context.Background(), "things", &got)
	if err == nil || errors.Is(err, ErrNotExist) {
		t.Fatalf("Load of corrupt document = %v, want a decode error", err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Save(ctx, "things", sample{Names: []string{"x"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	var got sample
	if err := store.Load(ctx, "things", &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Names) != 1 {
		t.Fatalf("Load = %+v", got)
	}

	store.PutRaw("broken", []byte("]["))
	if err := store.Load(ctx, "broken", &got); err == nil {
		t.Fatalf("Load of raw garbage succeeded")
	}
}
