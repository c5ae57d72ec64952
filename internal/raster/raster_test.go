package raster

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

type fakeBackend struct {
	calls []string
}

func (f *fakeBackend) Rasterize(_ context.Context, path string) ([]image.Image, error) {
	f.calls = append(f.calls, path)
	return []image.Image{image.NewGray(image.Rect(0, 0, 8, 8)), image.NewGray(image.Rect(0, 0, 8, 8))}, nil
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 4))
	img.Set(0, 0, color.Black)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}
}

func TestRouterByExtension(t *testing.T) {
	pdf, html := &fakeBackend{}, &fakeBackend{}
	r := NewRouter(pdf, html, 0)
	ctx := context.Background()

	pages, err := r.Rasterize(ctx, "/uploads/menu.PDF")
	if err != nil {
		t.Fatalf("Rasterize pdf: %v", err)
	}
	if len(pages) != 2 || len(pdf.calls) != 1 {
		t.Fatalf("pdf backend not used: pages=%d calls=%v", len(pages), pdf.calls)
	}

	if _, err := r.Rasterize(ctx, "/uploads/receipt.html"); err != nil {
		t.Fatalf("Rasterize html: %v", err)
	}
	if len(html.calls) != 1 {
		t.Fatalf("html backend calls = %v", html.calls)
	}

	var unsupported *ErrUnsupported
	if _, err := r.Rasterize(ctx, "/uploads/sheet.xlsx"); !errors.As(err, &unsupported) {
		t.Fatalf("Rasterize xlsx = %v, want ErrUnsupported", err)
	}
}

func TestRouterPassesImagesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	writePNG(t, path)

	pages, err := NewRouter(nil, nil, 0).Rasterize(context.Background(), path)
	if err != nil {
		t.Fatalf("Rasterize png: %v", err)
	}
	if len(pages) != 1 || pages[0].Bounds().Dx() != 16 {
		t.Fatalf("pages = %v", pages)
	}
}

func TestLoadImageRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.png")
	if err := os.WriteFile(path, []byte("not an image"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadImage(path); err == nil {
		t.Fatalf("LoadImage accepted garbage")
	}
}

func TestLoadImageRejectsOversized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tall.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, 1, MaxImageSide+1))); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	f.Close()

	_, err = LoadImage(path)
	var tooLarge *ErrTooLarge
	if !errors.As(err, &tooLarge) {
		t.Fatalf("LoadImage = %v, want ErrTooLarge", err)
	}
	if tooLarge.Height != MaxImageSide+1 {
		t.Fatalf("reported height = %d", tooLarge.Height)
	}
}
