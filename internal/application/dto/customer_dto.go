package dto

import "time"

// CreateCustomerRequest campos del formulario multipart POST /api/customers.
// La imagen viaja aparte como archivo (profileImage).
type CreateCustomerRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone,omitempty" form:"phone"`
	Address string `json:"address,omitempty" form:"address"`
	Status  string `json:"status" form:"status"`
}

// UpdateCustomerRequest campos opcionales del PUT /api/customers/:id.
// nil = campo no enviado, se conserva el valor actual.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" form:"name"`
	Email   *string `json:"email" form:"email"`
	Phone   *string `json:"phone" form:"phone"`
	Address *string `json:"address" form:"address"`
	Status  *string `json:"status" form:"status"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	StorageID string    `json:"storageId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
