package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// EntityCounts totales simples para las tarjetas del dashboard.
type EntityCounts struct {
	Products  int64
	Customers int64
	Invoices  int64
}

// RevenueMetrics montos agregados de facturación.
type RevenueMetrics struct {
	Collected   decimal.Decimal // Σ paid_amount de facturas PAID
	Outstanding decimal.Decimal // Σ total_amount - paid_amount de facturas no pagadas ni canceladas
}

// AnalyticsRepository consultas read-only para el dashboard.
type AnalyticsRepository interface {
	GetEntityCounts(ctx context.Context) (EntityCounts, error)
	GetRevenueMetrics(ctx context.Context) (RevenueMetrics, error)
	// CountOverdue cuenta facturas no pagadas con due_date anterior a now.
	// Es la versión agregada de billing.DisplayStatus: nunca escribe estado.
	CountOverdue(ctx context.Context) (int64, error)
}
