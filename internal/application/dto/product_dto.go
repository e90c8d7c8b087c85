package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockAdjustmentRequest body para PUT /api/products/stock: id de producto -> valor crudo.
type StockAdjustmentRequest struct {
	Stock map[string]string `json:"stock"`
}

// StockAdjustmentResponse entradas aplicadas y avisos por entrada rechazada.
type StockAdjustmentResponse struct {
	Applied  []StockAppliedEntry `json:"applied"`
	Warnings []StockWarning      `json:"warnings"`
}

// StockAppliedEntry stock que quedó fijado.
type StockAppliedEntry struct {
	ProductID int64 `json:"product_id"`
	Stock     int64 `json:"stock"`
}

// StockWarning entrada rechazada y el motivo.
type StockWarning struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
