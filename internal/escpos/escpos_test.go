package escpos

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestEnsureCutAlwaysLast(t *testing.T) {
	cmds := EnsureCut([]Command{Text("a"), Cut(), Text("b")})
	if len(cmds) != 3 {
		t.Fatalf("EnsureCut = %d commands, want 3", len(cmds))
	}
	if cmds[len(cmds)-1].Kind != KindCut {
		t.Fatalf("last command = %s, want cut", cmds[len(cmds)-1].Kind)
	}
	for _, c := range cmds[:len(cmds)-1] {
		if c.Kind == KindCut {
			t.Fatalf("interior cut survived EnsureCut")
		}
	}
}

func TestEncodeAllEndsWithCut(t *testing.T) {
	enc := NewEncoder(48, 576)
	out := enc.EncodeAll(EnsureCut([]Command{Text("hello"), Feed(3)}))

	if !bytes.HasPrefix(out, []byte{0x1B, 0x40}) {
		t.Fatalf("output does not start with ESC @: % x", out[:4])
	}
	if !bytes.HasSuffix(out, []byte{0x1D, 0x56, 0x00}) {
		t.Fatalf("output does not end with GS V 0: % x", out[len(out)-4:])
	}
	if !bytes.Contains(out, []byte("hello\n")) {
		t.Fatalf("text line missing from output")
	}
	if !bytes.Contains(out, []byte{0x1B, 0x64, 0x03}) {
		t.Fatalf("feed command missing from output")
	}
}

func TestPrinterMatchesEncoder(t *testing.T) {
	enc := NewEncoder(32, 384)
	cmds := []Command{SetAlign(AlignCenter), SetBold(true), Text("Shop"), SetBold(false), Rule(), Cut()}

	got := NewPrinter(enc).Apply(cmds).Bytes()
	if !bytes.HasSuffix(got, enc.Encode(Cut())) {
		t.Fatalf("printer output does not end with cut")
	}
	var body []byte
	for _, c := range cmds {
		body = append(body, enc.Encode(c)...)
	}
	if !bytes.HasSuffix(got, body) {
		t.Fatalf("printer body differs from per-command frames")
	}
}

func TestRule(t *testing.T) {
	got := NewEncoder(32, 384).Encode(Rule())
	if len(got) != 33 || got[32] != '\n' || got[0] != '-' {
		t.Fatalf("rule = %q, want 32 dashes and a newline", got)
	}
}

func TestFit(t *testing.T) {
	cases := []struct {
		in    string
		width int
		align Align
		want  string
	}{
		{"abc", 5, AlignLeft, "abc  "},
		{"abc", 5, AlignRight, "  abc"},
		{"abc", 6, AlignCenter, " abc  "},
		{"abcdef", 4, AlignRight, "abcd"},
		{"çğüşöı", 3, AlignLeft, "çğü"},
		{"x", 0, AlignLeft, ""},
	}
	for _, tc := range cases {
		if got := Fit(tc.in, tc.width, tc.align); got != tc.want {
			t.Errorf("Fit(%q, %d, %d) = %q, want %q", tc.in, tc.width, tc.align, got, tc.want)
		}
	}
}

func TestRasterHeaderAndBits(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 2))
	for x := 0; x < 10; x++ {
		img.SetGray(x, 0, color.Gray{Y: 0xFF})
		img.SetGray(x, 1, color.Gray{Y: 0xFF})
	}
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(9, 1, color.Gray{Y: 0})

	out := Raster(img)
	wantHeader := []byte{0x1D, 0x76, 0x30, 0x00, 2, 0, 2, 0}
	if !bytes.Equal(out[:8], wantHeader) {
		t.Fatalf("header = % x, want % x", out[:8], wantHeader)
	}
	wantBits := []byte{0x80, 0x00, 0x00, 0x40}
	if !bytes.Equal(out[8:], wantBits) {
		t.Fatalf("bitmap = % x, want % x", out[8:], wantBits)
	}
}

func TestRasterSplitsTallImages(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 600))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.SetGray(15, 599, color.Gray{Y: 0})

	out := Raster(img)
	if n := bytes.Count(out, ESC_POS_COMMANDS.RASTER_IMAGE); n != 3 {
		t.Fatalf("got %d bands, want 3", n)
	}

	off := 0
	for i, rows := range []int{256, 256, 88} {
		header := []byte{0x1D, 0x76, 0x30, 0x00, 2, 0, byte(rows), byte(rows >> 8)}
		if !bytes.Equal(out[off:off+8], header) {
			t.Fatalf("band %d header = % x, want % x", i, out[off:off+8], header)
		}
		off += 8 + 2*rows
	}
	if off != len(out) {
		t.Fatalf("consumed %d of %d bytes", off, len(out))
	}
	// Last pixel of the image lands in the last byte of the last band.
	if out[len(out)-1] != 0x01 {
		t.Fatalf("last byte = %08b, want 00000001", out[len(out)-1])
	}
}

func TestEncodeTextCodePage858(t *testing.T) {
	got := NewEncoder(48, 576).Encode(Text("Café €5 中"))
	want := []byte{'C', 'a', 'f', 0x82, ' ', 0xD5, '5', ' ', '?', 0x0A}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode = % x, want % x", got, want)
	}

	row := NewEncoder(48, 576).Encode(Row(Cell{Text: "Müsli", Width: 6}))
	if !bytes.Equal(row, []byte{'M', 0x81, 's', 'l', 'i', ' ', 0x0A}) {
		t.Fatalf("row = % x", row)
	}
}

func TestPreambleSelectsCodePage(t *testing.T) {
	want := []byte{0x1B, 0x40, 0x1B, 0x74, 0x13}
	if !bytes.Equal(Preamble(), want) {
		t.Fatalf("Preamble = % x, want % x", Preamble(), want)
	}
	if !bytes.HasPrefix(NewPrinter(NewEncoder(48, 576)).Bytes(), want) {
		t.Fatalf("printer job does not start with the preamble")
	}
}

func TestRasterTransparentIsWhite(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 1))
	out := Raster(img)
	if out[8] != 0 {
		t.Fatalf("transparent row printed as %08b, want blank", out[8])
	}
}

func TestResizeToWidth(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1000, 500))
	got := ResizeToWidth(img, 576)
	if got.Bounds().Dx() != 576 || got.Bounds().Dy() != 288 {
		t.Fatalf("resized to %v, want 576x288", got.Bounds())
	}

	small := image.NewGray(image.Rect(0, 0, 100, 50))
	if ResizeToWidth(small, 576) != image.Image(small) {
		t.Fatalf("narrow image was resized")
	}
}
