package entity

import "time"

// Client representa un cliente facturable. TaxID es el RUC (11 dígitos).
type Client struct {
	ID        int64
	TaxID     string
	Name      string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
}
