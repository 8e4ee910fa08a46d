package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest campos del formulario multipart POST /api/products.
// La imagen viaja aparte como archivo (image).
type CreateProductRequest struct {
	Name        string          `json:"name" form:"name"`
	Description string          `json:"description,omitempty" form:"description"`
	Price       decimal.Decimal `json:"price" form:"price"`
}

// UpdateProductRequest campos opcionales del PUT /api/products/:id.
type UpdateProductRequest struct {
	Name        *string          `json:"name" form:"name"`
	Description *string          `json:"description" form:"description"`
	Price       *decimal.Decimal `json:"price" form:"price"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	StorageID   string          `json:"storageId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
