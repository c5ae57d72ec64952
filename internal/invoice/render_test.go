package invoice

import (
	"encoding/json"
	"strings"
	"testing"

	"printer-service/internal/escpos"
	"printer-service/internal/model"
)

func decodeLines(t *testing.T, raw string) []model.LineItem {
	t.Helper()
	var lines []model.LineItem
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		t.Fatalf("Unmarshal lines: %v", err)
	}
	return lines
}

func texts(cmds []escpos.Command) []string {
	var out []string
	for _, c := range cmds {
		switch c.Kind {
		case escpos.KindText:
			out = append(out, c.Text)
		case escpos.KindRow:
			out = append(out, escpos.FormatRow(c.Cells))
		}
	}
	return out
}

func TestRenderTotals(t *testing.T) {
	lines := decodeLines(t, `[
		{"name": "Espresso", "qty": 2, "total": 19.999},
		{"name": "Water", "qty": "1", "total": "n/a"},
		{"name": "Bread"}
	]`)
	var header model.BillHeader
	if err := json.Unmarshal([]byte(`{"bill_no": "B-7", "date": "2024-05-01", "time": "12:30"}`), &header); err != nil {
		t.Fatalf("Unmarshal header: %v", err)
	}

	cmds := Render(model.CompanyInfo{Name: "Cafe"}, header, lines, Options{WidthChars: 48})
	out := texts(cmds)

	rows := out[3:6]
	if !strings.HasSuffix(rows[0], "20.00") {
		t.Fatalf("row 1 = %q, want total 20.00", rows[0])
	}
	if !strings.HasSuffix(rows[1], "0.00") || !strings.HasSuffix(rows[2], "0.00") {
		t.Fatalf("rows with bad totals = %q / %q, want 0.00", rows[1], rows[2])
	}
	for _, r := range rows {
		if len(r) != 48 {
			t.Fatalf("row %q is %d wide, want 48", r, len(r))
		}
	}

	if got := out[len(out)-1]; got != "Net Total: 0.00" {
		t.Fatalf("net total line = %q, want Net Total: 0.00", got)
	}
	if cmds[len(cmds)-1].Kind != escpos.KindCut {
		t.Fatalf("last command = %s, want cut", cmds[len(cmds)-1].Kind)
	}
}

func TestRenderTruncatesNames(t *testing.T) {
	lines := []model.LineItem{{Name: "A very long product name that overflows", Qty: model.Decimal{}}}
	cmds := Render(model.CompanyInfo{Name: "Cafe"}, model.BillHeader{BillNo: "1"}, lines, Options{WidthChars: 48})

	var row string
	for _, c := range cmds {
		if c.Kind == escpos.KindRow {
			row = escpos.FormatRow(c.Cells)
		}
	}
	if !strings.Contains(row, "A very long produc ") {
		t.Fatalf("row %q does not hold the 18-char name", row)
	}
	if strings.Contains(row, "product name") {
		t.Fatalf("row %q was not truncated", row)
	}
}

func TestRenderOptionalFields(t *testing.T) {
	header := model.BillHeader{BillNo: "42", Date: "2024-01-01", Time: "09:00"}
	bare := texts(Render(model.CompanyInfo{Name: "Shop"}, header, nil, Options{WidthChars: 32}))

	for _, line := range bare {
		for _, prefix := range []string{"Tel:", "Tax ID:", "Party:"} {
			if strings.HasPrefix(line, prefix) {
				t.Fatalf("absent field rendered: %q", line)
			}
		}
	}

	full := texts(Render(
		model.CompanyInfo{Name: "Shop", Address: "Main St 1", Phone: "555", TaxID: "TX9"},
		model.BillHeader{BillNo: "42", Date: "2024-01-01", Time: "09:00", PartyName: "Table 4"},
		nil,
		Options{WidthChars: 32, ClosingLine: "Come again"},
	))
	want := []string{"Shop", "Main St 1", "Tel: 555", "Tax ID: TX9", "Bill No: 42", "Date: 2024-01-01 09:00", "Party: Table 4", "Net Total: 0.00", "Come again"}
	if strings.Join(full, "|") != strings.Join(want, "|") {
		t.Fatalf("rendered lines = %q, want %q", full, want)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	lines := decodeLines(t, `[{"name": "Tea", "qty": 1, "total": 3.5}]`)
	a := escpos.NewEncoder(48, 576).EncodeAll(Render(model.CompanyInfo{Name: "X"}, model.BillHeader{}, lines, Options{WidthChars: 48}))
	b := escpos.NewEncoder(48, 576).EncodeAll(Render(model.CompanyInfo{Name: "X"}, model.BillHeader{}, lines, Options{WidthChars: 48}))
	if string(a) != string(b) {
		t.Fatalf("Render output differs between identical calls")
	}
}
