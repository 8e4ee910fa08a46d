package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// ImageURL y StorageID viajan siempre juntos (mismo contrato que Customer).
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta unitario
	ImageURL    string
	StorageID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
