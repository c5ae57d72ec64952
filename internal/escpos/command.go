// Package escpos models receipt output as a list of printer-neutral commands
// and encodes them to ESC/POS bytes.
package escpos

import "image"

// Kind identifies a command
type Kind int

const (
	KindText Kind = iota
	KindAlign
	KindBold
	KindRule
	KindRow
	KindImage
	KindFeed
	KindCut
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindAlign:
		return "align"
	case KindBold:
		return "bold"
	case KindRule:
		return "rule"
	case KindRow:
		return "row"
	case KindImage:
		return "image"
	case KindFeed:
		return "feed"
	case KindCut:
		return "cut"
	}
	return "unknown"
}

// Align is horizontal justification
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Cell is one fixed-width column of a table row
type Cell struct {
	Text  string
	Width int
	Align Align
}

// Command is one step of a receipt. Only the fields relevant to Kind are set.
type Command struct {
	Kind  Kind
	Text  string
	Align Align
	Bold  bool
	Cells []Cell
	Image image.Image
	Lines int
}

func Text(s string) Command         { return Command{Kind: KindText, Text: s} }
func SetAlign(a Align) Command      { return Command{Kind: KindAlign, Align: a} }
func SetBold(on bool) Command       { return Command{Kind: KindBold, Bold: on} }
func Rule() Command                 { return Command{Kind: KindRule} }
func Row(cells ...Cell) Command     { return Command{Kind: KindRow, Cells: cells} }
func Image(img image.Image) Command { return Command{Kind: KindImage, Image: img} }
func Feed(lines int) Command        { return Command{Kind: KindFeed, Lines: lines} }
func Cut() Command                  { return Command{Kind: KindCut} }

// EnsureCut drops interior cuts and guarantees exactly one trailing cut,
// so a receipt never leaves the printer half-cut.
func EnsureCut(cmds []Command) []Command {
	out := make([]Command, 0, len(cmds)+1)
	for _, c := range cmds {
		if c.Kind != KindCut {
			out = append(out, c)
		}
	}
	return append(out, Cut())
}
