package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturio-api/internal/application/dto"
	"github.com/jhoicas/Facturio-api/internal/domain"
	domainbilling "github.com/jhoicas/Facturio-api/internal/domain/billing"
	"github.com/jhoicas/Facturio-api/internal/domain/entity"
	"github.com/jhoicas/Facturio-api/internal/domain/repository"
)

// InvoiceUseCase ciclo de vida completo de las facturas: creación con
// numeración consecutiva, actualización parcial con recálculo de totales,
// marcado como pagada y borrado.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	invoiceRepo repository.InvoiceRepository
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. nowFn permite fijar el reloj en
// tests; nil usa time.Now.
func NewInvoiceUseCase(txRunner BillingTxRunner, invoiceRepo repository.InvoiceRepository, nowFn func() time.Time) *InvoiceUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &InvoiceUseCase{txRunner: txRunner, invoiceRepo: invoiceRepo, now: nowFn}
}

// Create crea una factura con sus líneas y totales materializados.
// El consecutivo sale de la secuencia de persistencia (atómico bajo
// creaciones concurrentes) y se formatea como INV-0001.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.DueDate == nil {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.InvoiceStatusDraft
	}
	if !entity.ValidInvoiceStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	taxRate := decimal.Zero
	if in.TaxRate != nil {
		if in.TaxRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		taxRate = *in.TaxRate
	}

	lines, err := toLineInputs(in.LineItems)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	issueDate := now
	if in.IssueDate != nil {
		issueDate = *in.IssueDate
	}

	// Descuento a nivel factura: siempre 0 al crear; se conserva después
	// salvo sobreescritura explícita.
	totals := domainbilling.ComputeTotals(lines, taxRate, decimal.Zero)

	inv := &entity.Invoice{
		ID:          uuid.New().String(),
		CustomerID:  in.CustomerID,
		Status:      status,
		IssueDate:   issueDate,
		DueDate:     *in.DueDate,
		Notes:       in.Notes,
		Subtotal:    totals.Subtotal,
		TaxRate:     taxRate,
		Tax:         totals.Tax,
		Discount:    totals.Discount,
		TotalAmount: totals.TotalAmount,
		PaidAmount:  decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	inv.LineItems = buildLineItems(inv.ID, lines)

	err = uc.txRunner.Run(ctx, func(repo repository.InvoiceRepository) error {
		seq, err := repo.NextNumber()
		if err != nil {
			return fmt.Errorf("reservar consecutivo: %w", err)
		}
		inv.InvoiceNumber = fmt.Sprintf("INV-%04d", seq)
		if err := repo.Create(inv); err != nil {
			return err
		}
		for _, item := range inv.LineItems {
			if err := repo.CreateLineItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(inv), nil
}

// Update aplica una actualización parcial (merge): los campos no enviados
// conservan su valor. Si viene una lista de líneas se recalculan
// subtotal/tax/total (con la tasa explícita o, en su defecto, la de la
// factura); sin líneas los totales quedan exactamente como estaban, incluso
// si el caller mandó taxRate — comportamiento documentado del motor, no un
// bug a corregir en silencio.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	if in.CustomerID != nil {
		if *in.CustomerID == "" {
			return nil, domain.ErrInvalidInput
		}
		inv.CustomerID = *in.CustomerID
	}
	if in.Status != nil {
		if !entity.ValidInvoiceStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		inv.Status = *in.Status
	}
	if in.IssueDate != nil {
		inv.IssueDate = *in.IssueDate
	}
	if in.DueDate != nil {
		inv.DueDate = *in.DueDate
	}
	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	if in.PaidAmount != nil {
		if in.PaidAmount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		inv.PaidAmount = *in.PaidAmount
	}

	recompute := in.LineItems != nil
	if recompute {
		lines, err := toLineInputs(in.LineItems)
		if err != nil {
			return nil, err
		}
		rate := domainbilling.EffectiveTaxRate(inv)
		if in.TaxRate != nil {
			if in.TaxRate.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			rate = *in.TaxRate
		}
		// El descuento de factura se arrastra sin cambios del registro
		// existente.
		totals := domainbilling.ComputeTotals(lines, rate, inv.Discount)
		inv.Subtotal = totals.Subtotal
		inv.TaxRate = rate
		inv.Tax = totals.Tax
		inv.TotalAmount = totals.TotalAmount
		// Cada línea nueva recibe identificador fresco; los viejos no se
		// reutilizan.
		inv.LineItems = buildLineItems(inv.ID, lines)
	}
	inv.UpdatedAt = uc.now()

	err = uc.txRunner.Run(ctx, func(repo repository.InvoiceRepository) error {
		if recompute {
			if err := repo.DeleteLineItems(inv.ID); err != nil {
				return err
			}
			for _, item := range inv.LineItems {
				if err := repo.CreateLineItem(item); err != nil {
					return err
				}
			}
		}
		return repo.Update(inv)
	})
	if err != nil {
		return nil, err
	}

	if !recompute {
		inv.LineItems, err = uc.invoiceRepo.GetLineItems(inv.ID)
		if err != nil {
			return nil, err
		}
	}
	return uc.toResponse(inv), nil
}

// MarkPaid marca la factura como pagada: status PAID y paidAmount igual al
// total. Pasa por el mismo path de actualización.
func (uc *InvoiceUseCase) MarkPaid(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	status := entity.InvoiceStatusPaid
	total := inv.TotalAmount
	return uc.Update(ctx, id, dto.UpdateInvoiceRequest{
		Status:     &status,
		PaidAmount: &total,
	})
}

// Delete elimina la factura y sus líneas embebidas (hard delete).
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(repo repository.InvoiceRepository) error {
		if err := repo.DeleteLineItems(id); err != nil {
			return err
		}
		return repo.Delete(id)
	})
}

// GetByID obtiene la factura completa con sus líneas.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	inv.LineItems, err = uc.invoiceRepo.GetLineItems(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(inv), nil
}

// List lista facturas con paginación, líneas incluidas.
func (uc *InvoiceUseCase) List(ctx context.Context, limit, offset int) ([]*dto.InvoiceResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.invoiceRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		inv.LineItems, err = uc.invoiceRepo.GetLineItems(inv.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, uc.toResponse(inv))
	}
	return out, nil
}

// toLineInputs valida y convierte las líneas de entrada.
func toLineInputs(items []dto.LineItemRequest) ([]domainbilling.LineInput, error) {
	lines := make([]domainbilling.LineInput, 0, len(items))
	for _, it := range items {
		line := domainbilling.LineInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
		}
		if err := line.Validate(); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// buildLineItems materializa las líneas con identificador fresco, posición
// según el orden de entrada y total instantáneo.
func buildLineItems(invoiceID string, lines []domainbilling.LineInput) []*entity.LineItem {
	items := make([]*entity.LineItem, 0, len(lines))
	for i, l := range lines {
		items = append(items, &entity.LineItem{
			ID:        uuid.New().String(),
			InvoiceID: invoiceID,
			ProductID: l.ProductID,
			Position:  i + 1,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
			Total:     domainbilling.LineTotal(l),
		})
	}
	return items
}

// toResponse mapea la entidad al DTO. Status es el estado de presentación:
// OVERDUE se calcula aquí al leer y nunca se escribe de vuelta.
func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	items := make([]dto.LineItemResponse, 0, len(inv.LineItems))
	for _, it := range inv.LineItems {
		items = append(items, dto.LineItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			Total:     it.Total,
		})
	}
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		LineItems:     items,
		Status:        domainbilling.DisplayStatus(inv, uc.now()),
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Notes:         inv.Notes,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		Tax:           inv.Tax,
		Discount:      inv.Discount,
		TotalAmount:   inv.TotalAmount,
		PaidAmount:    inv.PaidAmount,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
