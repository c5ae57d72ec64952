// Package apperror defines the failure taxonomy shared by every layer of the
// service. Each Kind carries a machine-stable code that is surfaced verbatim
// in the HTTP error envelope.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-stable failure reason
type Kind string

const (
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindForbidden        Kind = "FORBIDDEN"
	KindNotFound         Kind = "NOT_FOUND"
	KindQuotaExceeded    Kind = "QUOTA_EXCEEDED"
	KindPrinterOffline   Kind = "PRINTER_OFFLINE"
	KindTransportFailure Kind = "TRANSPORT_FAILURE"
	KindPayloadInvalid   Kind = "PAYLOAD_INVALID"
	KindInternal         Kind = "INTERNAL_SERVER_ERROR"
)

// Error is a classified failure. Message is safe to show to callers; Err is
// the underlying cause and only ends up in logs and the details field.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, apperror.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrUnauthorized     = &Error{Kind: KindUnauthorized}
	ErrForbidden        = &Error{Kind: KindForbidden}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrQuotaExceeded    = &Error{Kind: KindQuotaExceeded}
	ErrPrinterOffline   = &Error{Kind: KindPrinterOffline}
	ErrTransportFailure = &Error{Kind: KindTransportFailure}
	ErrPayloadInvalid   = &Error{Kind: KindPayloadInvalid}
)

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Forbidden never says which credential check failed.
func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "Invalid client credentials"}
}

func NotFound(what, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found: %s", what, id)}
}

// QuotaExceeded reports that role already has limit enabled printers.
func QuotaExceeded(role string, limit int) *Error {
	return &Error{Kind: KindQuotaExceeded, Message: fmt.Sprintf("Max %d printers reached for role %s", limit, role)}
}

func PrinterOffline(printerID string) *Error {
	return &Error{Kind: KindPrinterOffline, Message: fmt.Sprintf("Printer %s is offline", printerID)}
}

func TransportFailure(err error) *Error {
	return &Error{Kind: KindTransportFailure, Message: "Failed to send job to printer", Err: err}
}

func PayloadInvalid(msg string, err error) *Error {
	return &Error{Kind: KindPayloadInvalid, Message: msg, Err: err}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf extracts the Kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps a Kind onto the status code used at the HTTP boundary.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindQuotaExceeded, KindPayloadInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
