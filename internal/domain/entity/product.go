package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock disponible.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
