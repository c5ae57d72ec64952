// internal/model/client.go
package model

import "time"

// ClientRecord is a registered POS device allowed to print
type ClientRecord struct {
	ID        string    `json:"id"`
	Pin       string    `json:"pin"`
	Role      Role      `json:"role"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClientView is what listings expose; the pin is shown once at registration only.
type ClientView struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
}

// View strips the pin
func (c ClientRecord) View() ClientView {
	return ClientView{ID: c.ID, Role: c.Role, Enabled: c.Enabled, CreatedAt: c.CreatedAt}
}

// ClientCredentials is returned by registration
type ClientCredentials struct {
	ID  string `json:"id"`
	Pin string `json:"pin"`
}

// ClientDocument is the persisted shape of the client store
type ClientDocument struct {
	Clients []ClientRecord `json:"clients"`
}
