// internal/model/event.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event
type EventType string

const (
	EventDispatchSucceeded EventType = "DISPATCH_SUCCEEDED"
	EventDispatchFailed    EventType = "DISPATCH_FAILED"
	EventPrinterSaved      EventType = "PRINTER_SAVED"
	EventPrinterDeleted    EventType = "PRINTER_DELETED"
)

// PrinterEvent is published on the event bus and streamed to websocket clients
type PrinterEvent struct {
	ID        uuid.UUID              `json:"id"`
	Type      EventType              `json:"type"`
	PrinterID string                 `json:"printer_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewPrinterEvent stamps a fresh event
func NewPrinterEvent(t EventType, printerID string, data map[string]interface{}) PrinterEvent {
	return PrinterEvent{
		ID:        uuid.New(),
		Type:      t,
		PrinterID: printerID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// DispatchReceipt reports where and how a job was printed
type DispatchReceipt struct {
	PrinterID string  `json:"printerId"`
	Mode      JobMode `json:"mode"`
}
