package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Facturio-api/internal/domain/entity"
	"github.com/jhoicas/Facturio-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analytics.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetEntityCounts cuenta productos, clientes y facturas en una sola consulta.
func (r *AnalyticsRepo) GetEntityCounts(ctx context.Context) (repository.EntityCounts, error) {
	query := `
		SELECT
			(SELECT count(*) FROM products),
			(SELECT count(*) FROM customers),
			(SELECT count(*) FROM invoices)`
	var counts repository.EntityCounts
	err := r.q.QueryRow(ctx, query).Scan(&counts.Products, &counts.Customers, &counts.Invoices)
	if err != nil {
		return repository.EntityCounts{}, fmt.Errorf("entity counts: %w", err)
	}
	return counts, nil
}

// GetRevenueMetrics agrega lo cobrado (facturas pagadas) y lo pendiente de
// cobro (facturas vivas, neto de abonos).
func (r *AnalyticsRepo) GetRevenueMetrics(ctx context.Context) (repository.RevenueMetrics, error) {
	query := `
		SELECT
			COALESCE(SUM(paid_amount) FILTER (WHERE status = $1), 0),
			COALESCE(SUM(total_amount - paid_amount) FILTER (WHERE status NOT IN ($1, $2)), 0)
		FROM invoices`
	var m repository.RevenueMetrics
	err := r.q.QueryRow(ctx, query, entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled).
		Scan(&m.Collected, &m.Outstanding)
	if err != nil {
		return repository.RevenueMetrics{}, fmt.Errorf("revenue metrics: %w", err)
	}
	return m, nil
}

// CountOverdue cuenta facturas no pagadas ni canceladas con vencimiento
// anterior a ahora. Es la forma agregada del estado de presentación OVERDUE:
// solo lee, nunca reescribe el estado persistido.
func (r *AnalyticsRepo) CountOverdue(ctx context.Context) (int64, error) {
	query := `
		SELECT count(*) FROM invoices
		WHERE status NOT IN ($1, $2) AND due_date < $3`
	var n int64
	err := r.q.QueryRow(ctx, query, entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled, time.Now()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count overdue: %w", err)
	}
	return n, nil
}
