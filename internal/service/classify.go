// internal/service/classify.go
package service

import (
	"encoding/json"
	"strings"

	"printer-service/internal/apperror"
	"printer-service/internal/model"
)

// PrintRequest is the decoded /print body. Only one of the two shapes is
// valid: an invoice carries a master record, a text job carries text.
type PrintRequest struct {
	PrinterID string            `json:"printer_id"`
	Text      *string           `json:"text"`
	Company   model.CompanyInfo `json:"company"`
	Master    *model.BillHeader `json:"master"`
	Lines     []model.LineItem  `json:"lines"`
}

// ClassifyPrintBody turns a raw /print body into a job. The master marker
// wins over text when both are present.
func ClassifyPrintBody(body []byte) (string, model.PrintJob, error) {
	var req PrintRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return "", nil, apperror.PayloadInvalid("Request body is not a valid print payload", err)
	}
	job, err := Classify(&req)
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSpace(req.PrinterID), job, nil
}

// Classify picks the job variant for an already decoded request
func Classify(req *PrintRequest) (model.PrintJob, error) {
	switch {
	case req.Master != nil:
		return model.InvoiceJob{Company: req.Company, Master: *req.Master, Lines: req.Lines}, nil
	case req.Text != nil:
		if strings.TrimSpace(*req.Text) == "" {
			return nil, apperror.PayloadInvalid("Text payload is empty", nil)
		}
		return model.TextJob{Text: *req.Text}, nil
	default:
		return nil, apperror.PayloadInvalid("Payload must carry either text or an invoice master record", nil)
	}
}

// PrinterRef picks the target printer: header first, then body, then the
// configured default.
func PrinterRef(header, body, fallback string) string {
	for _, ref := range []string{header, body, fallback} {
		if ref = strings.TrimSpace(ref); ref != "" {
			return ref
		}
	}
	return ""
}
