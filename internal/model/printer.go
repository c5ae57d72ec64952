// internal/model/printer.go
package model

import (
	"net"
	"strconv"
	"strings"
)

// Role is the printer's job in the venue
type Role string

const (
	RoleCashier Role = "CASHIER"
	RoleKitchen Role = "KITCHEN"
)

// NormalizeRole upper-cases and trims a role so "kitchen " and "KITCHEN" count together.
func NormalizeRole(r Role) Role {
	return Role(strings.ToUpper(strings.TrimSpace(string(r))))
}

// Connection is a raw TCP printer endpoint
type Connection struct {
	IP   string `json:"ip" binding:"required"`
	Port int    `json:"port"`
}

// Address returns host:port for dialing. IPv6 literals are bracketed.
func (c Connection) Address() string {
	return net.JoinHostPort(c.IP, strconv.Itoa(c.Port))
}

// PrinterRecord is one registered printer
type PrinterRecord struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Role       Role       `json:"role"`
	Connection Connection `json:"connection"`
	Enabled    bool       `json:"enabled"`
}

// PrinterStatus is a record plus a point-in-time reachability flag.
// Online is never persisted.
type PrinterStatus struct {
	PrinterRecord
	Online bool `json:"online"`
}

// PrinterDocument is the persisted shape of the registry
type PrinterDocument struct {
	Printers []PrinterRecord `json:"printers"`
}
