package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/url"
	"path/filepath"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Chrome renders HTML and SVG documents in headless Chrome and captures
// the whole page as a single image at receipt width.
type Chrome struct {
	execPath  string
	widthDots int
	logger    *zap.Logger
}

func NewChrome(execPath string, widthDots int, logger *zap.Logger) *Chrome {
	return &Chrome{execPath: execPath, widthDots: widthDots, logger: logger}
}

func (c *Chrome) Rasterize(ctx context.Context, path string) ([]image.Image, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	target := (&url.URL{Scheme: "file", Path: abs}).String()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	cdpCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var shot []byte
	err = chromedp.Run(cdpCtx,
		chromedp.EmulateViewport(int64(c.widthDots), 200),
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, err := page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithCaptureBeyondViewport(true).
				Do(ctx)
			if err != nil {
				return err
			}
			shot = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome render %s: %w", filepath.Base(path), err)
	}

	img, err := decodeBounded(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	c.logger.Debug("Document rendered in chrome", zap.String("document", filepath.Base(path)))
	return []image.Image{img}, nil
}
