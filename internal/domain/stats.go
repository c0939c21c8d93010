package domain

import "github.com/shopspring/decimal"

// DashboardStats is a snapshot recomputed on every request.
type DashboardStats struct {
	TotalBorrowers      int             `json:"total_borrowers"`
	ActiveLoans         int             `json:"active_loans"`
	TotalDisbursed      decimal.Decimal `json:"total_disbursed"`
	TotalCollected      decimal.Decimal `json:"total_collected"`
	TodayCollection     decimal.Decimal `json:"today_collection"`
	OverdueAmount       decimal.Decimal `json:"overdue_amount"`
	CollectionRate      decimal.Decimal `json:"collection_rate"`
	PendingInstallments int64           `json:"pending_installments"`
}
