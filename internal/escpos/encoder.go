package escpos

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// unmappable replaces runes that code page 858 cannot represent
const unmappable = '?'

// Encoder turns commands into ESC/POS frames for a given paper width
type Encoder struct {
	// WidthChars is the number of font A columns per line.
	WidthChars int
	// WidthDots is the printable raster width.
	WidthDots int
}

// NewEncoder creates an encoder for the given paper geometry
func NewEncoder(widthChars, widthDots int) Encoder {
	return Encoder{WidthChars: widthChars, WidthDots: widthDots}
}

// Encode returns the self-contained frame for one command
func (e Encoder) Encode(cmd Command) []byte {
	switch cmd.Kind {
	case KindText:
		return e.text(cmd.Text)
	case KindAlign:
		return alignCode(cmd.Align)
	case KindBold:
		if cmd.Bold {
			return ESC_POS_COMMANDS.TEXT_BOLD_ON
		}
		return ESC_POS_COMMANDS.TEXT_BOLD_OFF
	case KindRule:
		return append([]byte(strings.Repeat("-", e.WidthChars)), ESC_POS_COMMANDS.LINE_FEED...)
	case KindRow:
		return append(EncodeText(FormatRow(cmd.Cells)), ESC_POS_COMMANDS.LINE_FEED...)
	case KindImage:
		if cmd.Image == nil {
			return nil
		}
		// Images are always centered; restore left alignment afterwards.
		frame := append([]byte{}, ESC_POS_COMMANDS.ALIGN_CENTER...)
		frame = append(frame, Raster(ResizeToWidth(cmd.Image, e.WidthDots))...)
		frame = append(frame, ESC_POS_COMMANDS.LINE_FEED...)
		return append(frame, ESC_POS_COMMANDS.ALIGN_LEFT...)
	case KindFeed:
		n := cmd.Lines
		if n < 0 {
			n = 0
		}
		if n > 255 {
			n = 255
		}
		return append(append([]byte{}, ESC_POS_COMMANDS.FEED_LINES...), byte(n))
	case KindCut:
		return ESC_POS_COMMANDS.CUT_FULL
	}
	return nil
}

// Preamble resets the printer and selects code page 858, the code page
// EncodeText targets. Every job starts with it.
func Preamble() []byte {
	out := append([]byte{}, ESC_POS_COMMANDS.INITIALIZE...)
	return append(out, ESC_POS_COMMANDS.SELECT_CHARSET_PC858...)
}

// EncodeAll concatenates the frames of cmds behind the preamble
func (e Encoder) EncodeAll(cmds []Command) []byte {
	out := Preamble()
	for _, c := range cmds {
		out = append(out, e.Encode(c)...)
	}
	return out
}

// text normalizes line endings and terminates every line
func (e Encoder) text(s string) []byte {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	var out []byte
	for _, line := range strings.Split(s, "\n") {
		out = append(out, EncodeText(line)...)
		out = append(out, ESC_POS_COMMANDS.LINE_FEED...)
	}
	return out
}

// EncodeText maps s onto code page 858, one byte per rune
func EncodeText(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.CodePage858.EncodeRune(r)
		if !ok {
			b = unmappable
		}
		out = append(out, b)
	}
	return out
}

func alignCode(a Align) []byte {
	switch a {
	case AlignCenter:
		return ESC_POS_COMMANDS.ALIGN_CENTER
	case AlignRight:
		return ESC_POS_COMMANDS.ALIGN_RIGHT
	default:
		return ESC_POS_COMMANDS.ALIGN_LEFT
	}
}

// FormatRow lays cells out side by side, truncating or padding each to its width
func FormatRow(cells []Cell) string {
	var sb strings.Builder
	for _, c := range cells {
		sb.WriteString(Fit(c.Text, c.Width, c.Align))
	}
	return sb.String()
}

// Fit truncates s to width runes and pads it according to align
func Fit(s string, width int, align Align) string {
	if width <= 0 {
		return ""
	}
	s = Truncate(s, width)
	pad := width - utf8.RuneCountInString(s)
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// Truncate cuts s to at most n runes
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
