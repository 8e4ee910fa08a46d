package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados persistidos de una factura.
// OVERDUE existe como estado persistible (el usuario puede fijarlo a mano),
// pero el motor nunca lo escribe automáticamente: en los paths de lectura se
// calcula como estado de presentación (ver billing.DisplayStatus).
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusPending   = "PENDING"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusOverdue   = "OVERDUE"
	InvoiceStatusCancelled = "CANCELLED"
)

// ValidInvoiceStatus indica si s es un estado de factura reconocido.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice representa la cabecera de una factura con sus totales materializados.
// Subtotal/Tax/TotalAmount son instantáneas calculadas al escribir, no fórmulas
// re-derivadas al leer. TaxRate se persiste como campo de primera clase; la
// reconstrucción tax/subtotal*100 queda solo como fallback para filas legado.
type Invoice struct {
	ID            string
	InvoiceNumber string // etiqueta secuencial legible, ej. INV-0001
	CustomerID    string
	Status        string
	IssueDate     time.Time
	DueDate       time.Time
	Notes         string
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal // porcentaje, ej. 19 para 19%
	Tax           decimal.Decimal
	Discount      decimal.Decimal // descuento a nivel factura (hoy siempre 0 al crear)
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	LineItems     []*LineItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LineItem representa una línea de factura. Total es la instantánea
// (unit_price - discount) * quantity calculada al momento de escribir.
// Position es el ordinal 1-based dentro de la factura: las líneas son una
// secuencia ordenada y las lecturas deben devolverlas en el orden de entrada.
type LineItem struct {
	ID        string
	InvoiceID string
	ProductID string
	Position  int
	Quantity  int64           // entero positivo
	UnitPrice decimal.Decimal // no negativo
	Discount  decimal.Decimal // descuento POR UNIDAD, se resta antes de multiplicar
	Total     decimal.Decimal
}
