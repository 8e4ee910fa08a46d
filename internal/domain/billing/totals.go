// Package billing contiene la aritmética pura del motor de facturación:
// totales de línea, subtotal/impuesto/total de la factura, tasa implícita y
// estado de presentación. Sin dependencias de persistencia ni de transporte.
package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturio-api/internal/domain"
	"github.com/jhoicas/Facturio-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// LineInput es la entrada mínima para calcular una línea de factura.
type LineInput struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal // por unidad
}

// Validate aplica la política de validación de líneas:
//   - quantity > 0
//   - unit_price >= 0
//   - 0 <= discount <= unit_price
//
// Un descuento mayor al precio unitario produciría un total negativo; la
// política elegida es rechazarlo con ErrInvalidInput en lugar de truncar a
// cero, y se aplica igual en creación y actualización.
func (in LineInput) Validate() error {
	if in.ProductID == "" || in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() || in.Discount.IsNegative() {
		return domain.ErrInvalidInput
	}
	if in.Discount.GreaterThan(in.UnitPrice) {
		return domain.ErrInvalidInput
	}
	return nil
}

// LineTotal calcula (unit_price - discount) * quantity.
// Es la instantánea que se persiste en la línea; no se re-deriva al leer.
func LineTotal(in LineInput) decimal.Decimal {
	return in.UnitPrice.Sub(in.Discount).Mul(decimal.NewFromInt(in.Quantity))
}

// Totals agrupa los montos materializados de una factura.
type Totals struct {
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Discount    decimal.Decimal // nivel factura
	TotalAmount decimal.Decimal
}

// ComputeTotals calcula subtotal = Σ total de línea, tax = subtotal*taxRate/100
// y total = subtotal + tax - discount. taxRate es porcentaje (19 => 19%).
func ComputeTotals(lines []LineInput, taxRate, invoiceDiscount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l))
	}
	tax := subtotal.Mul(taxRate).Div(hundred)
	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		Discount:    invoiceDiscount,
		TotalAmount: subtotal.Add(tax).Sub(invoiceDiscount),
	}
}

// ImpliedTaxRate reconstruye la tasa porcentual desde los montos persistidos:
// tax/subtotal*100, con 0 cuando subtotal es cero (evita división por cero).
// Es un shim de compatibilidad para filas que no persistieron tax_rate; las
// facturas nuevas llevan la tasa como campo de primera clase.
func ImpliedTaxRate(tax, subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() {
		return decimal.Zero
	}
	return tax.Div(subtotal).Mul(hundred)
}

// EffectiveTaxRate devuelve la tasa a usar en un recálculo parcial: la tasa
// persistida si existe, y si la fila es legado (tax > 0 pero tax_rate = 0)
// la tasa implícita reconstruida.
func EffectiveTaxRate(inv *entity.Invoice) decimal.Decimal {
	if !inv.TaxRate.IsZero() {
		return inv.TaxRate
	}
	if !inv.Tax.IsZero() {
		return ImpliedTaxRate(inv.Tax, inv.Subtotal)
	}
	return decimal.Zero
}

// DisplayStatus calcula el estado de presentación de una factura: OVERDUE si
// no está pagada y la fecha de vencimiento ya pasó; en cualquier otro caso el
// estado almacenado. Función pura: nunca escribe de vuelta en la factura.
func DisplayStatus(inv *entity.Invoice, now time.Time) string {
	if inv.Status != entity.InvoiceStatusPaid && inv.DueDate.Before(now) {
		return entity.InvoiceStatusOverdue
	}
	return inv.Status
}
