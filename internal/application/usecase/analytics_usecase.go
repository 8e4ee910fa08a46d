package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturio-api/internal/application/dto"
	"github.com/jhoicas/Facturio-api/internal/domain/repository"
)

// AnalyticsUseCase arma el resumen del dashboard a partir de las consultas
// agregadas de solo lectura.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary devuelve las tarjetas del dashboard. Las tres consultas son
// independientes y se lanzan en paralelo.
func (uc *AnalyticsUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countsResult struct {
		counts repository.EntityCounts
		err    error
	}
	type revenueResult struct {
		revenue repository.RevenueMetrics
		err     error
	}
	type overdueResult struct {
		n   int64
		err error
	}

	countsChan := make(chan countsResult, 1)
	revenueChan := make(chan revenueResult, 1)
	overdueChan := make(chan overdueResult, 1)

	go func() {
		counts, err := uc.analyticsRepo.GetEntityCounts(ctx)
		countsChan <- countsResult{counts, err}
	}()
	go func() {
		revenue, err := uc.analyticsRepo.GetRevenueMetrics(ctx)
		revenueChan <- revenueResult{revenue, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountOverdue(ctx)
		overdueChan <- overdueResult{n, err}
	}()

	countsRes := <-countsChan
	revenueRes := <-revenueChan
	overdueRes := <-overdueChan

	if countsRes.err != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", countsRes.err)
	}
	if revenueRes.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos: %w", revenueRes.err)
	}
	if overdueRes.err != nil {
		return nil, fmt.Errorf("dashboard: vencidas: %w", overdueRes.err)
	}

	return &dto.DashboardSummaryDTO{
		Products:     countsRes.counts.Products,
		Customers:    countsRes.counts.Customers,
		Invoices:     countsRes.counts.Invoices,
		Collected:    revenueRes.revenue.Collected.Round(2),
		Outstanding:  revenueRes.revenue.Outstanding.Round(2),
		OverdueCount: overdueRes.n,
	}, nil
}
