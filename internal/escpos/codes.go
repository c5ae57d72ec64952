// internal/escpos/codes.go
package escpos

// ESC_POS_COMMANDS contains the ESC/POS byte sequences the service emits
var ESC_POS_COMMANDS = struct {
	INITIALIZE []byte

	TEXT_BOLD_ON  []byte
	TEXT_BOLD_OFF []byte
	TEXT_RESET    []byte

	ALIGN_LEFT   []byte
	ALIGN_CENTER []byte
	ALIGN_RIGHT  []byte

	SELECT_CHARSET_PC858 []byte

	LINE_FEED  []byte
	FEED_LINES []byte // + line count byte

	CUT_FULL []byte

	RASTER_IMAGE []byte // + xL xH yL yH + bitmap
}{
	INITIALIZE: []byte{0x1B, 0x40}, // ESC @

	TEXT_BOLD_ON:  []byte{0x1B, 0x45, 0x01}, // ESC E 1
	TEXT_BOLD_OFF: []byte{0x1B, 0x45, 0x00}, // ESC E 0
	TEXT_RESET:    []byte{0x1B, 0x21, 0x00}, // ESC ! 0

	ALIGN_LEFT:   []byte{0x1B, 0x61, 0x00}, // ESC a 0
	ALIGN_CENTER: []byte{0x1B, 0x61, 0x01}, // ESC a 1
	ALIGN_RIGHT:  []byte{0x1B, 0x61, 0x02}, // ESC a 2

	SELECT_CHARSET_PC858: []byte{0x1B, 0x74, 0x13}, // ESC t 19

	LINE_FEED:  []byte{0x0A},       // LF
	FEED_LINES: []byte{0x1B, 0x64}, // ESC d + n

	CUT_FULL: []byte{0x1D, 0x56, 0x00}, // GS V 0

	RASTER_IMAGE: []byte{0x1D, 0x76, 0x30, 0x00}, // GS v 0, normal density
}
