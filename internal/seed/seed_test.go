package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/microfinance-engine/internal/domain"
	"github.com/segyhp/microfinance-engine/internal/repository"
	"github.com/segyhp/microfinance-engine/internal/service"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()
	svc := service.NewPortfolioService(repository.NewMemoryStore().Repositories(), nil, nil)

	book, err := Load(ctx, svc)
	require.NoError(t, err)

	assert.Len(t, book.LoanTypes, 3)
	assert.Len(t, book.Borrowers, 3)
	assert.Len(t, book.Staff, 15)
	assert.Len(t, book.Loans, 2)
	assert.Len(t, book.Collections, 1)

	assert.Equal(t, "BOR003", book.Borrowers[2].Code)
	assert.Equal(t, "EMP005", book.Staff[4].EmployeeCode)
	assert.Equal(t, "AGT001", book.Staff[5].EmployeeCode)
	assert.Equal(t, "AGT010", book.Staff[14].EmployeeCode)

	daily := book.Loans[0]
	assert.Equal(t, "LN00001", daily.LoanNumber)
	assert.Equal(t, "Prakash Sharma", daily.BorrowerName)
	assert.Equal(t, "Suresh Patel", daily.AssignedAgentName)
	assert.Equal(t, "723.50", daily.EMIAmount.StringFixed(2))
	assert.Equal(t, "840.00", daily.TotalPaid.StringFixed(2))
	assert.Equal(t, "71510.00", daily.RemainingBalance.StringFixed(2))

	business := book.Loans[1]
	assert.Equal(t, "LN00002", business.LoanNumber)
	assert.Equal(t, domain.FrequencyMonthly, business.RepaymentFrequency)
	assert.Equal(t, "18336.00", business.EMIAmount.StringFixed(2))
	assert.Equal(t, "196000.00", business.NetDisbursed.StringFixed(2))

	assert.Equal(t, "COL00001", book.Collections[0].CollectionNumber)

	stats, err := svc.GetStats(ctx, time.Date(2025, 12, 17, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalBorrowers)
	assert.Equal(t, 2, stats.ActiveLoans)
	assert.Equal(t, "840.00", stats.TodayCollection.StringFixed(2))

	for _, loan := range book.Loans {
		report, err := svc.Reconcile(ctx, loan.ID)
		require.NoError(t, err)
		assert.True(t, report.Balanced())
	}
}

func TestLoad_IntoPopulatedEngineStillNumbersSequentially(t *testing.T) {
	ctx := context.Background()
	svc := service.NewPortfolioService(repository.NewMemoryStore().Repositories(), nil, nil)

	_, err := Load(ctx, svc)
	require.NoError(t, err)

	book, err := Load(ctx, svc)
	require.NoError(t, err)
	assert.Equal(t, "LN00003", book.Loans[0].LoanNumber)
	assert.Equal(t, "BOR004", book.Borrowers[0].Code)
}
