// Package raster turns uploaded documents into page images for printing.
package raster

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"printer-service/internal/config"
)

// Decoded images are bounded before any pixel is allocated.
const (
	MaxImageSide   = 20000
	MaxImagePixels = 16 << 20
)

// ErrTooLarge is returned for images beyond MaxImageSide or MaxImagePixels
type ErrTooLarge struct {
	Width, Height int
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("image %dx%d exceeds the %d px side or %d px area limit", e.Width, e.Height, MaxImageSide, MaxImagePixels)
}

// Rasterizer renders every page of a document, in page order
type Rasterizer interface {
	Rasterize(ctx context.Context, path string) ([]image.Image, error)
}

// ErrUnsupported is returned for document types no backend handles
type ErrUnsupported struct {
	Ext string
}

func (e *ErrUnsupported) Error() string {
	return fmt.Sprintf("unsupported document type %q", e.Ext)
}

// Router picks a backend by file extension
type Router struct {
	pdf     Rasterizer
	html    Rasterizer
	timeout time.Duration
}

// New builds the default router from configuration
func New(cfg *config.RasterizerConfig, widthDots int, logger *zap.Logger) *Router {
	return &Router{
		pdf:     NewPDFToPPM(cfg.PdftoppmPath, cfg.DPI, logger),
		html:    NewChrome(cfg.ChromePath, widthDots, logger),
		timeout: cfg.Timeout,
	}
}

// NewRouter wires explicit backends; either may be nil
func NewRouter(pdf, html Rasterizer, timeout time.Duration) *Router {
	return &Router{pdf: pdf, html: html, timeout: timeout}
}

func (r *Router) Rasterize(ctx context.Context, path string) ([]image.Image, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	ext := strings.ToLower(filepath.Ext(path))
	var backend Rasterizer
	switch ext {
	case ".pdf":
		backend = r.pdf
	case ".html", ".htm", ".svg":
		backend = r.html
	case ".png", ".jpg", ".jpeg", ".gif":
		img, err := LoadImage(path)
		if err != nil {
			return nil, err
		}
		return []image.Image{img}, nil
	}
	if backend == nil {
		return nil, &ErrUnsupported{Ext: ext}
	}
	return backend.Rasterize(ctx, path)
}

// LoadImage decodes a PNG, JPEG or GIF file
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, err := decodeBounded(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// decodeBounded reads the header first and refuses oversized images
func decodeBounded(r io.ReadSeeker) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return nil, err
	}
	if cfg.Width > MaxImageSide || cfg.Height > MaxImageSide || cfg.Width*cfg.Height > MaxImagePixels {
		return nil, &ErrTooLarge{Width: cfg.Width, Height: cfg.Height}
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(r)
	return img, err
}
