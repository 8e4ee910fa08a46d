package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea de factura en la entrada.
// Discount es POR UNIDAD: se resta del precio antes de multiplicar.
type LineItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// IssueDate opcional (default: ahora); TaxRate es porcentaje (10 => 10%).
type CreateInvoiceRequest struct {
	CustomerID string            `json:"customerId"`
	LineItems  []LineItemRequest `json:"lineItems"`
	TaxRate    *decimal.Decimal  `json:"taxRate,omitempty"`
	IssueDate  *time.Time        `json:"issueDate,omitempty"`
	DueDate    *time.Time        `json:"dueDate"`
	Notes      string            `json:"notes,omitempty"`
	Status     string            `json:"status,omitempty"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id (merge semantics).
// LineItems == nil significa "no enviado": los totales quedan intactos.
// Una lista presente (incluso vacía) dispara el recálculo completo.
type UpdateInvoiceRequest struct {
	CustomerID *string           `json:"customerId"`
	LineItems  []LineItemRequest `json:"lineItems"`
	TaxRate    *decimal.Decimal  `json:"taxRate"`
	IssueDate  *time.Time        `json:"issueDate"`
	DueDate    *time.Time        `json:"dueDate"`
	Notes      *string           `json:"notes"`
	Status     *string           `json:"status"`
	PaidAmount *decimal.Decimal  `json:"paidAmount"`
}

// LineItemResponse línea de factura en respuestas.
type LineItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// InvoiceResponse factura completa. Status es el estado de presentación
// (OVERDUE calculado al leer); el estado persistido nunca se muta por esto.
type InvoiceResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoiceNumber"`
	CustomerID    string             `json:"customerId"`
	LineItems     []LineItemResponse `json:"lineItems"`
	Status        string             `json:"status"`
	IssueDate     time.Time          `json:"issueDate"`
	DueDate       time.Time          `json:"dueDate"`
	Notes         string             `json:"notes,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxRate       decimal.Decimal    `json:"taxRate"`
	Tax           decimal.Decimal    `json:"tax"`
	Discount      decimal.Decimal    `json:"discount"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
	PaidAmount    decimal.Decimal    `json:"paidAmount"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}
