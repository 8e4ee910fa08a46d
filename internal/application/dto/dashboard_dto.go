package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen para las tarjetas del dashboard.
type DashboardSummaryDTO struct {
	Products     int64           `json:"products"`
	Customers    int64           `json:"customers"`
	Invoices     int64           `json:"invoices"`
	Collected    decimal.Decimal `json:"collected"`   // facturas pagadas
	Outstanding  decimal.Decimal `json:"outstanding"` // pendiente de cobro
	OverdueCount int64           `json:"overdueCount"`
}
