package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturio-api/internal/domain/entity"
	"github.com/jhoicas/Facturio-api/internal/domain/repository"
)

// BillingTxRunner ejecuta fn dentro de una transacción con un InvoiceRepository
// atado a ella. Cabecera y líneas se escriben de forma atómica.
type BillingTxRunner interface {
	Run(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// InvoiceLineForPDF línea de factura enriquecida con el nombre del producto,
// lista para render.
type InvoiceLineForPDF struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, customer *entity.Customer, lines []InvoiceLineForPDF) ([]byte, error)
}
