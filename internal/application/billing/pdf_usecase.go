package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturio-api/internal/domain"
	"github.com/jhoicas/Facturio-api/internal/domain/repository"
)

// PDFUseCase genera la representación imprimible de una factura.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// Generate arma el PDF de la factura con sus líneas (resueltas a nombre de
// producto) y los datos del cliente. Devuelve los bytes listos para servir
// con Content-Type application/pdf.
func (uc *PDFUseCase) Generate(ctx context.Context, invoiceID string) ([]byte, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	inv.LineItems, err = uc.invoiceRepo.GetLineItems(invoiceID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("factura %s: %w: cliente %s", inv.InvoiceNumber, domain.ErrNotFound, inv.CustomerID)
	}

	lines := make([]InvoiceLineForPDF, 0, len(inv.LineItems))
	for _, item := range inv.LineItems {
		name := item.ProductID
		if product, err := uc.productRepo.GetByID(item.ProductID); err == nil && product != nil {
			name = product.Name
		}
		lines = append(lines, InvoiceLineForPDF{
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			Total:       item.Total,
		})
	}
	return uc.generator.GenerateInvoicePDF(ctx, inv, customer, lines)
}
