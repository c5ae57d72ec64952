package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// PDFToPPM shells out to poppler's pdftoppm, one PNG per page
type PDFToPPM struct {
	binary string
	dpi    int
	logger *zap.Logger
}

func NewPDFToPPM(binary string, dpi int, logger *zap.Logger) *PDFToPPM {
	if binary == "" {
		binary = "pdftoppm"
	}
	return &PDFToPPM{binary: binary, dpi: dpi, logger: logger}
}

func (p *PDFToPPM) Rasterize(ctx context.Context, path string) ([]image.Image, error) {
	workDir, err := os.MkdirTemp("", "pdftoppm-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.binary, "-png", "-r", strconv.Itoa(p.dpi), path, filepath.Join(workDir, "page"))
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm %s: %w: %s", filepath.Base(path), err, strings.TrimSpace(stderr.String()))
	}

	pages, err := filepath.Glob(filepath.Join(workDir, "page-*.png"))
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages for %s", filepath.Base(path))
	}
	// pdftoppm zero-pads page numbers to a common width, so name order is page order.
	sort.Strings(pages)

	images := make([]image.Image, 0, len(pages))
	for _, page := range pages {
		img, err := LoadImage(page)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	p.logger.Debug("Document rasterized",
		zap.String("document", filepath.Base(path)),
		zap.Int("pages", len(images)),
		zap.Int("dpi", p.dpi),
	)
	return images, nil
}
