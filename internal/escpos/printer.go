package escpos

import (
	"bytes"
	"image"
)

// Printer is a command-level builder. Callers describe the receipt through
// method calls and take the serialized job from Bytes once.
type Printer struct {
	enc Encoder
	buf bytes.Buffer
}

// NewPrinter starts a job with the initialize sequence already queued
func NewPrinter(enc Encoder) *Printer {
	p := &Printer{enc: enc}
	p.buf.Write(Preamble())
	return p
}

func (p *Printer) write(cmd Command) *Printer {
	p.buf.Write(p.enc.Encode(cmd))
	return p
}

func (p *Printer) Println(s string) *Printer       { return p.write(Text(s)) }
func (p *Printer) Align(a Align) *Printer          { return p.write(SetAlign(a)) }
func (p *Printer) Bold(on bool) *Printer           { return p.write(SetBold(on)) }
func (p *Printer) Rule() *Printer                  { return p.write(Rule()) }
func (p *Printer) TableRow(cells ...Cell) *Printer { return p.write(Row(cells...)) }
func (p *Printer) Image(img image.Image) *Printer  { return p.write(Image(img)) }
func (p *Printer) Feed(lines int) *Printer         { return p.write(Feed(lines)) }
func (p *Printer) Cut() *Printer                   { return p.write(Cut()) }

// Apply replays a command list through the builder
func (p *Printer) Apply(cmds []Command) *Printer {
	for _, c := range cmds {
		p.write(c)
	}
	return p
}

// Bytes returns the serialized job
func (p *Printer) Bytes() []byte {
	return p.buf.Bytes()
}
