package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/microfinance-engine/internal/domain"
	"github.com/segyhp/microfinance-engine/pkg/utils"
)

var hundred = decimal.NewFromInt(100)

// ComputeStats aggregates the portfolio as of today. It is pure and keeps no
// state between calls.
func ComputeStats(borrowers []*domain.Borrower, loans []*domain.Loan, collections []*domain.Collection, today time.Time) domain.DashboardStats {
	stats := domain.DashboardStats{
		TotalBorrowers:  len(borrowers),
		TotalDisbursed:  decimal.Zero,
		TotalCollected:  decimal.Zero,
		TodayCollection: decimal.Zero,
		OverdueAmount:   decimal.Zero,
		CollectionRate:  decimal.Zero,
	}

	for _, loan := range loans {
		stats.TotalDisbursed = stats.TotalDisbursed.Add(loan.NetDisbursed)

		switch loan.Status {
		case domain.LoanStatusActive:
			stats.ActiveLoans++
			stats.PendingInstallments += utils.CeilDiv(loan.RemainingBalance, loan.EMIAmount)
		case domain.LoanStatusOverdue:
			stats.OverdueAmount = stats.OverdueAmount.Add(loan.RemainingBalance)
		case domain.LoanStatusClosed, domain.LoanStatusDefaulted:
		}
	}

	for _, c := range collections {
		stats.TotalCollected = stats.TotalCollected.Add(c.CollectedAmount)
		if utils.SameDay(c.CollectionDate, today) {
			stats.TodayCollection = stats.TodayCollection.Add(c.CollectedAmount)
		}
	}

	if !stats.TotalDisbursed.IsZero() {
		stats.CollectionRate = stats.TotalCollected.Div(stats.TotalDisbursed).Mul(hundred)
	}

	return stats
}

// AgentSummaries reports, per agent, the active loans assigned to them and
// everything they have collected. Agents appear in roster order.
func AgentSummaries(staff []*domain.Staff, loans []*domain.Loan, collections []*domain.Collection) []domain.AgentSummary {
	byAgent := make(map[uuid.UUID]*domain.AgentSummary)
	out := make([]*domain.AgentSummary, 0)

	for _, s := range staff {
		if !s.IsAgent() {
			continue
		}
		summary := &domain.AgentSummary{
			AgentID:        s.ID,
			AgentName:      s.FullName,
			TotalCollected: decimal.Zero,
		}
		byAgent[s.ID] = summary
		out = append(out, summary)
	}

	for _, loan := range loans {
		if loan.AssignedAgentID == nil || loan.Status != domain.LoanStatusActive {
			continue
		}
		if summary, ok := byAgent[*loan.AssignedAgentID]; ok {
			summary.AssignedLoansCount++
		}
	}

	for _, c := range collections {
		if summary, ok := byAgent[c.AgentID]; ok {
			summary.TotalCollected = summary.TotalCollected.Add(c.CollectedAmount)
		}
	}

	result := make([]domain.AgentSummary, len(out))
	for i, s := range out {
		result[i] = *s
	}
	return result
}
