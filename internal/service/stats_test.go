package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/microfinance-engine/internal/domain"
)

func statsLoan(status domain.LoanStatus, net, remaining, emi string) *domain.Loan {
	return &domain.Loan{
		ID:               uuid.New(),
		Status:           status,
		NetDisbursed:     dec(net),
		RemainingBalance: dec(remaining),
		EMIAmount:        dec(emi),
	}
}

func statsCollection(amount string, at time.Time) *domain.Collection {
	return &domain.Collection{
		ID:              uuid.New(),
		CollectedAmount: dec(amount),
		CollectionDate:  at,
	}
}

func TestComputeStats(t *testing.T) {
	today := time.Date(2025, 12, 17, 15, 0, 0, 0, time.UTC)

	borrowers := []*domain.Borrower{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}
	loans := []*domain.Loan{
		statsLoan(domain.LoanStatusActive, "600", "1000", "300"),
		statsLoan(domain.LoanStatusActive, "200", "0.01", "100"),
		statsLoan(domain.LoanStatusClosed, "100", "0", "50"),
		statsLoan(domain.LoanStatusOverdue, "100", "450", "50"),
		statsLoan(domain.LoanStatusDefaulted, "0", "999", "50"),
	}
	collections := []*domain.Collection{
		statsCollection("100", time.Date(2025, 12, 17, 0, 0, 0, 0, time.UTC)),
		statsCollection("50", time.Date(2025, 12, 17, 23, 59, 59, 0, time.UTC)),
		statsCollection("75", time.Date(2025, 12, 16, 20, 0, 0, 0, time.UTC)),
		statsCollection("25", time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC)),
	}

	stats := ComputeStats(borrowers, loans, collections, today)

	assert.Equal(t, 3, stats.TotalBorrowers)
	assert.Equal(t, 2, stats.ActiveLoans)
	assert.Equal(t, "1000.00", stats.TotalDisbursed.StringFixed(2))
	assert.Equal(t, "250.00", stats.TotalCollected.StringFixed(2))
	assert.Equal(t, "150.00", stats.TodayCollection.StringFixed(2))
	assert.Equal(t, "450.00", stats.OverdueAmount.StringFixed(2))
	assert.True(t, stats.CollectionRate.Equal(decimal.NewFromInt(25)), "rate %s", stats.CollectionRate)
	// ceil(1000/300) + ceil(0.01/100)
	assert.Equal(t, int64(5), stats.PendingInstallments)
}

func TestComputeStats_TodayUsesReferenceLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	today := time.Date(2025, 12, 17, 9, 0, 0, 0, ist)

	collections := []*domain.Collection{
		// 2025-12-16 20:00 UTC is already 2025-12-17 in IST
		statsCollection("40", time.Date(2025, 12, 16, 20, 0, 0, 0, time.UTC)),
		statsCollection("60", time.Date(2025, 12, 17, 19, 0, 0, 0, time.UTC)),
	}

	stats := ComputeStats(nil, nil, collections, today)

	assert.Equal(t, "40.00", stats.TodayCollection.StringFixed(2))
}

func TestComputeStats_EmptyPortfolio(t *testing.T) {
	stats := ComputeStats(nil, nil, nil, time.Now())

	assert.Equal(t, 0, stats.TotalBorrowers)
	assert.Equal(t, 0, stats.ActiveLoans)
	assert.True(t, stats.TotalDisbursed.IsZero())
	assert.True(t, stats.CollectionRate.IsZero())
	assert.Equal(t, int64(0), stats.PendingInstallments)
}

func TestComputeStats_NegativeRemainingAddsNoPending(t *testing.T) {
	loans := []*domain.Loan{statsLoan(domain.LoanStatusActive, "100", "-20", "50")}

	stats := ComputeStats(nil, loans, nil, time.Now())

	assert.Equal(t, int64(0), stats.PendingInstallments)
}

func TestComputeStats_IsIdempotent(t *testing.T) {
	today := time.Date(2025, 12, 17, 12, 0, 0, 0, time.UTC)
	loans := []*domain.Loan{statsLoan(domain.LoanStatusActive, "68950", "71510", "723.50")}
	collections := []*domain.Collection{statsCollection("840", today)}

	first := ComputeStats(nil, loans, collections, today)
	second := ComputeStats(nil, loans, collections, today)

	assert.True(t, first.CollectionRate.Equal(second.CollectionRate))
	assert.True(t, first.TotalCollected.Equal(second.TotalCollected))
	assert.Equal(t, first.PendingInstallments, second.PendingInstallments)
	assert.Equal(t, int64(99), first.PendingInstallments)
}

func TestAgentSummaries(t *testing.T) {
	suresh := &domain.Staff{ID: uuid.New(), FullName: "Suresh Patel", Role: domain.StaffRoleAgent}
	ramesh := &domain.Staff{ID: uuid.New(), FullName: "Ramesh K", Role: domain.StaffRoleAgent}
	ravi := &domain.Staff{ID: uuid.New(), FullName: "Ravi Kumar", Role: domain.StaffRoleStaff}

	assigned := func(agent *domain.Staff, status domain.LoanStatus) *domain.Loan {
		id := agent.ID
		return &domain.Loan{ID: uuid.New(), Status: status, AssignedAgentID: &id}
	}

	loans := []*domain.Loan{
		assigned(suresh, domain.LoanStatusActive),
		assigned(suresh, domain.LoanStatusActive),
		assigned(suresh, domain.LoanStatusClosed),
		assigned(ramesh, domain.LoanStatusOverdue),
		{ID: uuid.New(), Status: domain.LoanStatusActive},
	}
	collections := []*domain.Collection{
		{AgentID: suresh.ID, CollectedAmount: dec("840")},
		{AgentID: suresh.ID, CollectedAmount: dec("723.50")},
		{AgentID: ramesh.ID, CollectedAmount: dec("18336")},
	}

	summaries := AgentSummaries([]*domain.Staff{ravi, suresh, ramesh}, loans, collections)

	require.Len(t, summaries, 2)
	assert.Equal(t, "Suresh Patel", summaries[0].AgentName)
	assert.Equal(t, 2, summaries[0].AssignedLoansCount)
	assert.Equal(t, "1563.50", summaries[0].TotalCollected.StringFixed(2))
	assert.Equal(t, "Ramesh K", summaries[1].AgentName)
	assert.Equal(t, 0, summaries[1].AssignedLoansCount)
	assert.Equal(t, "18336.00", summaries[1].TotalCollected.StringFixed(2))
}
