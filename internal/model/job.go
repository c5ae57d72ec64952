// internal/model/job.go
package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// JobMode names the kind of job that was dispatched
type JobMode string

const (
	ModeText     JobMode = "text"
	ModeInvoice  JobMode = "invoice"
	ModeImage    JobMode = "image"
	ModeDocument JobMode = "document"
)

// PrintJob is one of TextJob, InvoiceJob, ImageJob or DocumentJob.
type PrintJob interface {
	Mode() JobMode
	printJob()
}

// TextJob prints a block of plain text
type TextJob struct {
	Text string `json:"text"`
}

func (TextJob) Mode() JobMode { return ModeText }
func (TextJob) printJob()     {}

// InvoiceJob prints a structured receipt
type InvoiceJob struct {
	Company CompanyInfo `json:"company"`
	Master  BillHeader  `json:"master"`
	Lines   []LineItem  `json:"lines"`
}

func (InvoiceJob) Mode() JobMode { return ModeInvoice }
func (InvoiceJob) printJob()     {}

// ImageJob prints an already-uploaded image file
type ImageJob struct {
	ImagePath string `json:"image_path"`
}

func (ImageJob) Mode() JobMode { return ModeImage }
func (ImageJob) printJob()     {}

// DocumentJob prints an uploaded document. When Convert is set the file is
// rasterized first, otherwise it must already be an image.
type DocumentJob struct {
	DocumentPath string `json:"document_path"`
	Convert      bool   `json:"convert"`
}

func (DocumentJob) Mode() JobMode { return ModeDocument }
func (DocumentJob) printJob()     {}

// CompanyInfo heads an invoice
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// BillHeader is the invoice master record
type BillHeader struct {
	BillNo    string  `json:"bill_no"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	PartyName string  `json:"party_name,omitempty"`
	NetTotal  Decimal `json:"net_total"`
}

// LineItem is one invoice row
type LineItem struct {
	Name  string  `json:"name"`
	Qty   Decimal `json:"qty"`
	Total Decimal `json:"total"`
}

// Decimal decodes numbers and numeric strings. Anything else, including
// null and absent values, decodes to zero instead of failing the request.
type Decimal struct {
	decimal.Decimal
}

// NewDecimal wraps d
func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{Decimal: d}
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	d.Decimal = decimal.Zero

	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
	} else {
		s = string(raw)
	}

	if parsed, err := decimal.NewFromString(strings.TrimSpace(s)); err == nil {
		d.Decimal = parsed
	}
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return d.Decimal.MarshalJSON()
}
