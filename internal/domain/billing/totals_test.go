package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturio-api/internal/domain"
	"github.com/jhoicas/Facturio-api/internal/domain/billing"
	"github.com/jhoicas/Facturio-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// LineTotal — total de línea = (unit_price - discount) * quantity
// ──────────────────────────────────────────────────────────────────────────────

func TestLineTotal_SinDescuento(t *testing.T) {
	total := billing.LineTotal(billing.LineInput{
		ProductID: "p1",
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(100),
		Discount:  decimal.Zero,
	})
	assert.True(t, total.Equal(decimal.NewFromInt(200)),
		"2 x 100 sin descuento debe dar 200, obtuvo %s", total)
}

func TestLineTotal_DescuentoPorUnidad(t *testing.T) {
	// El descuento se resta ANTES de multiplicar por la cantidad.
	total := billing.LineTotal(billing.LineInput{
		ProductID: "p1",
		Quantity:  3,
		UnitPrice: decimal.NewFromInt(50),
		Discount:  decimal.NewFromInt(5),
	})
	assert.True(t, total.Equal(decimal.NewFromInt(135)),
		"3 x (50-5) debe dar 135, obtuvo %s", total)
}

func TestLineTotal_DescuentoIgualAlPrecio_TotalCero(t *testing.T) {
	total := billing.LineTotal(billing.LineInput{
		ProductID: "p1",
		Quantity:  4,
		UnitPrice: decimal.NewFromInt(10),
		Discount:  decimal.NewFromInt(10),
	})
	assert.True(t, total.IsZero(), "descuento == precio debe dar total 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validate — política de rechazo de líneas degeneradas
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_DescuentoMayorAlPrecio_Rechazado(t *testing.T) {
	// Política explícita: un total negativo se rechaza en validación,
	// no se trunca a cero.
	err := billing.LineInput{
		ProductID: "p1",
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(5),
		Discount:  decimal.NewFromInt(9),
	}.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_CantidadCeroONegativa_Rechazada(t *testing.T) {
	base := billing.LineInput{ProductID: "p1", UnitPrice: decimal.NewFromInt(10)}

	zero := base
	zero.Quantity = 0
	assert.ErrorIs(t, zero.Validate(), domain.ErrInvalidInput)

	neg := base
	neg.Quantity = -2
	assert.ErrorIs(t, neg.Validate(), domain.ErrInvalidInput)
}

func TestValidate_PrecioNegativo_Rechazado(t *testing.T) {
	err := billing.LineInput{
		ProductID: "p1",
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(-1),
	}.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_LineaCorrecta_Pasa(t *testing.T) {
	err := billing.LineInput{
		ProductID: "p1",
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(100),
		Discount:  decimal.NewFromInt(100), // igual al precio: total 0 permitido
	}.Validate()
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeTotals — subtotal / tax / total
// ──────────────────────────────────────────────────────────────────────────────

// Vector de referencia: taxRate=10, una línea {qty:2, price:100, disc:0}
// → subtotal=200, tax=20, total=220.
func TestComputeTotals_VectorReferencia(t *testing.T) {
	totals := billing.ComputeTotals(
		[]billing.LineInput{{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(100)}},
		decimal.NewFromInt(10),
		decimal.Zero,
	)
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal debe ser 200")
	assert.True(t, totals.Tax.Equal(decimal.NewFromInt(20)), "tax debe ser 20")
	assert.True(t, totals.TotalAmount.Equal(decimal.NewFromInt(220)), "total debe ser 220")
}

func TestComputeTotals_SubtotalEsSumaDeLineas(t *testing.T) {
	lines := []billing.LineInput{
		{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		{ProductID: "p2", Quantity: 1, UnitPrice: decimal.NewFromInt(50), Discount: decimal.NewFromInt(5)},
		{ProductID: "p3", Quantity: 3, UnitPrice: decimal.NewFromInt(10), Discount: decimal.NewFromInt(10)},
	}
	totals := billing.ComputeTotals(lines, decimal.Zero, decimal.Zero)

	want := decimal.Zero
	for _, l := range lines {
		want = want.Add(billing.LineTotal(l))
	}
	assert.True(t, totals.Subtotal.Equal(want),
		"subtotal debe ser la suma exacta de los totales de línea")
	assert.True(t, totals.TotalAmount.Equal(totals.Subtotal.Add(totals.Tax).Sub(totals.Discount)),
		"total = subtotal + tax - discount")
}

func TestComputeTotals_TasaFraccionaria(t *testing.T) {
	// subtotal=45, tasa 10% → tax=4.5, total=49.5
	totals := billing.ComputeTotals(
		[]billing.LineInput{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(50), Discount: decimal.NewFromInt(5)}},
		decimal.NewFromInt(10),
		decimal.Zero,
	)
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(45)))
	assert.True(t, totals.Tax.Equal(decimal.RequireFromString("4.5")))
	assert.True(t, totals.TotalAmount.Equal(decimal.RequireFromString("49.5")))
}

func TestComputeTotals_SinLineas_TodoCero(t *testing.T) {
	totals := billing.ComputeTotals(nil, decimal.NewFromInt(19), decimal.Zero)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.TotalAmount.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// ImpliedTaxRate / EffectiveTaxRate
// ──────────────────────────────────────────────────────────────────────────────

func TestImpliedTaxRate_Reconstruccion(t *testing.T) {
	// tax=20, subtotal=200 → 10%
	rate := billing.ImpliedTaxRate(decimal.NewFromInt(20), decimal.NewFromInt(200))
	assert.True(t, rate.Equal(decimal.NewFromInt(10)), "20/200*100 debe dar 10")
}

func TestImpliedTaxRate_SubtotalCero_DaCero(t *testing.T) {
	rate := billing.ImpliedTaxRate(decimal.NewFromInt(20), decimal.Zero)
	assert.True(t, rate.IsZero(), "subtotal 0 no debe dividir por cero")
}

func TestEffectiveTaxRate_PrefiereTasaPersistida(t *testing.T) {
	inv := &entity.Invoice{
		TaxRate:  decimal.NewFromInt(19),
		Tax:      decimal.NewFromInt(38),
		Subtotal: decimal.NewFromInt(200),
	}
	assert.True(t, billing.EffectiveTaxRate(inv).Equal(decimal.NewFromInt(19)))
}

func TestEffectiveTaxRate_FilaLegado_UsaTasaImplicita(t *testing.T) {
	// tax_rate=0 pero tax>0: fila anterior a la persistencia de la tasa.
	inv := &entity.Invoice{
		Tax:      decimal.NewFromInt(20),
		Subtotal: decimal.NewFromInt(200),
	}
	assert.True(t, billing.EffectiveTaxRate(inv).Equal(decimal.NewFromInt(10)))
}

func TestEffectiveTaxRate_SinImpuesto_DaCero(t *testing.T) {
	inv := &entity.Invoice{Subtotal: decimal.NewFromInt(200)}
	assert.True(t, billing.EffectiveTaxRate(inv).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// DisplayStatus — estado de presentación, nunca escribe de vuelta
// ──────────────────────────────────────────────────────────────────────────────

func TestDisplayStatus_VencidaNoPagada_EsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{
		Status:  entity.InvoiceStatusPending,
		DueDate: now.Add(-24 * time.Hour),
	}
	assert.Equal(t, entity.InvoiceStatusOverdue, billing.DisplayStatus(inv, now))
	assert.Equal(t, entity.InvoiceStatusPending, inv.Status,
		"el estado almacenado no debe mutar")
}

func TestDisplayStatus_VencidaPeroPagada_SigueEnPaid(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{
		Status:  entity.InvoiceStatusPaid,
		DueDate: now.Add(-24 * time.Hour),
	}
	assert.Equal(t, entity.InvoiceStatusPaid, billing.DisplayStatus(inv, now))
}

func TestDisplayStatus_NoVencida_DevuelveEstadoAlmacenado(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	for _, status := range []string{
		entity.InvoiceStatusDraft, entity.InvoiceStatusPending, entity.InvoiceStatusCancelled,
	} {
		inv := &entity.Invoice{Status: status, DueDate: now.Add(24 * time.Hour)}
		assert.Equal(t, status, billing.DisplayStatus(inv, now), "estado %s", status)
	}
}

func TestDisplayStatus_Idempotente(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{
		Status:  entity.InvoiceStatusDraft,
		DueDate: now.Add(-time.Hour),
	}
	first := billing.DisplayStatus(inv, now)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, billing.DisplayStatus(inv, now),
			"llamadas repetidas con el mismo (invoice, now) deben dar lo mismo")
	}
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status,
		"repetir el cálculo nunca debe mutar el estado persistido")
}
