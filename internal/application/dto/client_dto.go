package dto

import "time"

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	TaxID   string `json:"tax_id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        int64     `json:"id"`
	TaxID     string    `json:"tax_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
