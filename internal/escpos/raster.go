package escpos

import (
	"image"
	"image/color"
)

// ResizeToWidth scales img down to at most width dots using nearest
// neighbour sampling. Narrower images are returned unchanged.
func ResizeToWidth(src image.Image, width int) image.Image {
	b := src.Bounds()
	if width <= 0 || b.Dx() <= width {
		return src
	}

	scale := float64(width) / float64(b.Dx())
	height := int(float64(b.Dy()) * scale)
	if height < 1 {
		height = 1
	}

	dst := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		sy := b.Min.Y + int(float64(y)/scale)
		for x := 0; x < width; x++ {
			sx := b.Min.X + int(float64(x)/scale)
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}

// BandRows is the tallest bitmap sent under one GS v 0 header. Taller
// images are split into consecutive bands.
const BandRows = 256

// Raster encodes img as GS v 0 bitmaps of at most BandRows rows each. Rows
// are padded with white to a whole number of bytes. Transparent pixels
// print as paper.
func Raster(img image.Image) []byte {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	rowBytes := (width + 7) / 8
	bands := (height + BandRows - 1) / BandRows

	out := make([]byte, 0, bands*(len(ESC_POS_COMMANDS.RASTER_IMAGE)+4)+rowBytes*height)
	for top := 0; top < height; top += BandRows {
		rows := min(BandRows, height-top)
		out = append(out, ESC_POS_COMMANDS.RASTER_IMAGE...)
		out = append(out, byte(rowBytes), byte(rowBytes>>8), byte(rows), byte(rows>>8))

		bitmap := make([]byte, rowBytes*rows)
		for y := 0; y < rows; y++ {
			for x := 0; x < width; x++ {
				if isDark(img.At(b.Min.X+x, b.Min.Y+top+y)) {
					bitmap[y*rowBytes+x/8] |= 1 << (7 - uint(x%8))
				}
			}
		}
		out = append(out, bitmap...)
	}
	return out
}

// isDark thresholds at 50% luminance after compositing over white
func isDark(c color.Color) bool {
	r, g, bl, a := c.RGBA()
	gray := (r+g+bl)/3 + (0xFFFF - a)
	return gray < 0x8000
}
