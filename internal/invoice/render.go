// Package invoice lays a bill out as receipt commands. Rendering is pure:
// no I/O and no dependence on the target printer beyond paper width.
package invoice

import (
	"strconv"
	"strings"

	"printer-service/internal/escpos"
	"printer-service/internal/model"
)

// Column layout. The total column takes whatever is left of the paper width.
const (
	colNo        = 4
	colItem      = 19
	colQty       = 7
	minColTotal  = 10
	maxItemRunes = 18
)

// Options carries the per-deployment parts of the layout
type Options struct {
	WidthChars  int
	ClosingLine string
}

// Render builds the command list for one invoice. The list always ends with a cut.
func Render(company model.CompanyInfo, header model.BillHeader, lines []model.LineItem, opts Options) []escpos.Command {
	var cmds []escpos.Command

	cmds = append(cmds,
		escpos.SetAlign(escpos.AlignCenter),
		escpos.SetBold(true),
		escpos.Text(company.Name),
		escpos.SetBold(false),
		escpos.SetAlign(escpos.AlignLeft),
	)
	if s := strings.TrimSpace(company.Address); s != "" {
		cmds = append(cmds, escpos.Text(s))
	}
	if s := strings.TrimSpace(company.Phone); s != "" {
		cmds = append(cmds, escpos.Text("Tel: "+s))
	}
	if s := strings.TrimSpace(company.TaxID); s != "" {
		cmds = append(cmds, escpos.Text("Tax ID: "+s))
	}

	cmds = append(cmds,
		escpos.Rule(),
		escpos.Text("Bill No: "+header.BillNo),
		escpos.Text(strings.TrimSpace("Date: "+header.Date+" "+header.Time)),
	)
	if s := strings.TrimSpace(header.PartyName); s != "" {
		cmds = append(cmds, escpos.Text("Party: "+s))
	}
	cmds = append(cmds, escpos.Rule())

	totalWidth := totalColumn(opts.WidthChars)
	for i, line := range lines {
		cmds = append(cmds, escpos.Row(
			escpos.Cell{Text: strconv.Itoa(i + 1), Width: colNo, Align: escpos.AlignLeft},
			escpos.Cell{Text: escpos.Truncate(line.Name, maxItemRunes), Width: colItem, Align: escpos.AlignLeft},
			escpos.Cell{Text: line.Qty.String(), Width: colQty, Align: escpos.AlignRight},
			escpos.Cell{Text: Money(line.Total), Width: totalWidth, Align: escpos.AlignRight},
		))
	}

	cmds = append(cmds,
		escpos.Rule(),
		escpos.SetAlign(escpos.AlignRight),
		escpos.SetBold(true),
		escpos.Text("Net Total: "+Money(header.NetTotal)),
		escpos.SetBold(false),
	)

	if s := strings.TrimSpace(opts.ClosingLine); s != "" {
		cmds = append(cmds,
			escpos.SetAlign(escpos.AlignCenter),
			escpos.Text(s),
		)
	}

	return append(cmds,
		escpos.SetAlign(escpos.AlignLeft),
		escpos.Feed(3),
		escpos.Cut(),
	)
}

// Money formats an amount with exactly two decimals
func Money(d model.Decimal) string {
	return d.StringFixed(2)
}

func totalColumn(width int) int {
	if w := width - colNo - colItem - colQty; w > minColTotal {
		return w
	}
	return minColTotal
}
