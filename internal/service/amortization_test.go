package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/microfinance-engine/internal/domain"
	customError "github.com/segyhp/microfinance-engine/pkg/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDeriveLoanFigures(t *testing.T) {
	tests := []struct {
		name          string
		principal     decimal.Decimal
		rate          decimal.Decimal
		tenure        int
		freq          domain.Frequency
		fee           decimal.Decimal
		emi           string
		totalAmount   string
		totalInterest string
		processingFee string
		netDisbursed  string
	}{
		{
			name:          "Daily collection loan",
			principal:     decimal.NewFromInt(70000),
			rate:          decimal.NewFromInt(24),
			tenure:        100,
			freq:          domain.FrequencyDaily,
			fee:           dec("1.5"),
			emi:           "723.50",
			totalAmount:   "72350.00",
			totalInterest: "2350.00",
			processingFee: "1050.00",
			netDisbursed:  "68950.00",
		},
		{
			name:          "Monthly business loan",
			principal:     decimal.NewFromInt(200000),
			rate:          decimal.NewFromInt(18),
			tenure:        12,
			freq:          domain.FrequencyMonthly,
			fee:           decimal.NewFromInt(2),
			emi:           "18336.00",
			totalAmount:   "220032.00",
			totalInterest: "20032.00",
			processingFee: "4000.00",
			netDisbursed:  "196000.00",
		},
		{
			name:          "Short monthly loan",
			principal:     decimal.NewFromInt(60000),
			rate:          decimal.NewFromInt(18),
			tenure:        6,
			freq:          domain.FrequencyMonthly,
			fee:           decimal.NewFromInt(2),
			emi:           "10531.51",
			totalAmount:   "63189.06",
			totalInterest: "3189.06",
			processingFee: "1200.00",
			netDisbursed:  "58800.00",
		},
		{
			name:          "Zero rate rounds each installment",
			principal:     decimal.NewFromInt(10000),
			rate:          decimal.Zero,
			tenure:        3,
			freq:          domain.FrequencyMonthly,
			fee:           decimal.Zero,
			emi:           "3333.33",
			totalAmount:   "9999.99",
			totalInterest: "-0.01",
			processingFee: "0.00",
			netDisbursed:  "10000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			figures, err := DeriveLoanFigures(tt.principal, tt.rate, tt.tenure, tt.freq, tt.fee)

			require.NoError(t, err)
			assert.Equal(t, tt.emi, figures.EMIAmount.StringFixed(2))
			assert.Equal(t, tt.totalAmount, figures.TotalAmount.StringFixed(2))
			assert.Equal(t, tt.totalInterest, figures.TotalInterest.StringFixed(2))
			assert.Equal(t, tt.processingFee, figures.ProcessingFee.StringFixed(2))
			assert.Equal(t, tt.netDisbursed, figures.NetDisbursed.StringFixed(2))

			// total is always emi * tenure and interest always total - principal
			assert.True(t, figures.TotalAmount.Equal(figures.EMIAmount.Mul(decimal.NewFromInt(int64(tt.tenure)))))
			assert.True(t, figures.TotalInterest.Equal(figures.TotalAmount.Sub(tt.principal)))
		})
	}
}

func TestCalculateInstallment_RejectsBadTerms(t *testing.T) {
	tests := []struct {
		name   string
		tenure int
		freq   domain.Frequency
	}{
		{name: "Zero tenure", tenure: 0, freq: domain.FrequencyDaily},
		{name: "Negative tenure", tenure: -4, freq: domain.FrequencyWeekly},
		{name: "Unknown frequency", tenure: 12, freq: domain.Frequency("fortnightly")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateInstallment(decimal.NewFromInt(10000), decimal.NewFromInt(12), tt.tenure, tt.freq)

			assert.Error(t, err)
			assert.True(t, customError.IsValidation(err))
			assert.Equal(t, customError.ErrCodeValidation, customError.CodeOf(err))
		})
	}
}

func TestCalculateInstallment_ZeroRateCoversPrincipal(t *testing.T) {
	for _, tenure := range []int{1, 3, 7, 30, 52, 100} {
		principal := decimal.NewFromInt(10000)
		emi, err := CalculateInstallment(principal, decimal.Zero, tenure, domain.FrequencyDaily)

		require.NoError(t, err)
		diff := emi.Mul(decimal.NewFromInt(int64(tenure))).Sub(principal).Abs()
		assert.True(t, diff.LessThanOrEqual(dec("0.01").Mul(decimal.NewFromInt(int64(tenure)))),
			"tenure %d: emi %s drifts %s from principal", tenure, emi, diff)
	}
}

func TestLoanDates(t *testing.T) {
	tests := []struct {
		name         string
		disbursement time.Time
		tenure       int
		freq         domain.Frequency
		start        time.Time
		end          time.Time
	}{
		{
			name:         "Daily",
			disbursement: time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC),
			tenure:       100,
			freq:         domain.FrequencyDaily,
			start:        time.Date(2025, 12, 17, 0, 0, 0, 0, time.UTC),
			end:          time.Date(2026, 3, 27, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "Weekly",
			disbursement: time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC),
			tenure:       12,
			freq:         domain.FrequencyWeekly,
			start:        time.Date(2025, 12, 17, 0, 0, 0, 0, time.UTC),
			end:          time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "Monthly starts the next day too",
			disbursement: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
			tenure:       12,
			freq:         domain.FrequencyMonthly,
			start:        time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
			end:          time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := LoanDates(tt.disbursement, tt.tenure, tt.freq)

			assert.True(t, tt.start.Equal(start), "start: expected %v, got %v", tt.start, start)
			assert.True(t, tt.end.Equal(end), "end: expected %v, got %v", tt.end, end)
		})
	}
}

func activeLoan(total, emi string) domain.Loan {
	return domain.Loan{
		LoanNumber:       "LN00001",
		EMIAmount:        dec(emi),
		TotalAmount:      dec(total),
		TotalPaid:        decimal.Zero,
		RemainingBalance: dec(total),
		Status:           domain.LoanStatusActive,
	}
}

func TestApplyCollection(t *testing.T) {
	t.Run("Partial payment keeps the loan active", func(t *testing.T) {
		balance, err := ApplyCollection(activeLoan("72350", "723.50"), decimal.NewFromInt(840))

		require.NoError(t, err)
		assert.Equal(t, "840.00", balance.TotalPaid.StringFixed(2))
		assert.Equal(t, "71510.00", balance.RemainingBalance.StringFixed(2))
		assert.Equal(t, domain.LoanStatusActive, balance.Status)
	})

	t.Run("Exact settlement closes", func(t *testing.T) {
		loan := activeLoan("72350", "723.50")
		loan.TotalPaid = dec("71626.50")
		loan.RemainingBalance = dec("723.50")

		balance, err := ApplyCollection(loan, dec("723.50"))

		require.NoError(t, err)
		assert.True(t, balance.RemainingBalance.IsZero())
		assert.Equal(t, domain.LoanStatusClosed, balance.Status)
	})

	t.Run("Overpayment closes with a negative remainder", func(t *testing.T) {
		loan := activeLoan("1000", "100")
		loan.TotalPaid = decimal.NewFromInt(950)

		balance, err := ApplyCollection(loan, decimal.NewFromInt(100))

		require.NoError(t, err)
		assert.Equal(t, "-50.00", balance.RemainingBalance.StringFixed(2))
		assert.Equal(t, domain.LoanStatusClosed, balance.Status)
	})

	t.Run("Non-positive amounts are rejected", func(t *testing.T) {
		for _, amount := range []decimal.Decimal{decimal.Zero, dec("-10")} {
			_, err := ApplyCollection(activeLoan("1000", "100"), amount)

			assert.ErrorIs(t, err, customError.ErrInvalidPaymentAmount)
			assert.True(t, customError.IsValidation(err))
		}
	})
}

func TestApplyCollection_FullScheduleClosesOnLastInstallment(t *testing.T) {
	loan := activeLoan("72350", "723.50")

	for i := 1; i <= 100; i++ {
		balance, err := ApplyCollection(loan, loan.EMIAmount)
		require.NoError(t, err)

		loan.TotalPaid = balance.TotalPaid
		loan.RemainingBalance = balance.RemainingBalance
		loan.Status = balance.Status

		if i == 99 {
			assert.Equal(t, "723.50", loan.RemainingBalance.StringFixed(2))
			assert.Equal(t, domain.LoanStatusActive, loan.Status)
		}
	}

	assert.True(t, loan.RemainingBalance.IsZero())
	assert.Equal(t, domain.LoanStatusClosed, loan.Status)
}

func TestApplyCollection_SplitPaymentsMatchSinglePayment(t *testing.T) {
	amounts := []string{"0.01", "100.33", "333.33", "0.07", "1234.56"}

	split := activeLoan("72350", "723.50")
	total := decimal.Zero
	for _, a := range amounts {
		balance, err := ApplyCollection(split, dec(a))
		require.NoError(t, err)
		split.TotalPaid = balance.TotalPaid
		split.RemainingBalance = balance.RemainingBalance
		total = total.Add(dec(a))
	}

	single, err := ApplyCollection(activeLoan("72350", "723.50"), total)
	require.NoError(t, err)

	assert.True(t, single.TotalPaid.Equal(split.TotalPaid))
	assert.True(t, single.RemainingBalance.Equal(split.RemainingBalance))
}

func TestInstallmentFor(t *testing.T) {
	tests := []struct {
		name      string
		totalPaid string
		amount    string
		number    int
		balance   string
	}{
		{name: "First exact installment", totalPaid: "0", amount: "723.50", number: 1, balance: "0.00"},
		{name: "Overpaid first collection", totalPaid: "0", amount: "840", number: 2, balance: "-116.50"},
		{name: "Small partial", totalPaid: "0", amount: "10", number: 1, balance: "713.50"},
		{name: "Tenth installment", totalPaid: "6511.50", amount: "723.50", number: 10, balance: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := activeLoan("72350", "723.50")
			loan.TotalPaid = dec(tt.totalPaid)

			number, expected, balance := installmentFor(loan, dec(tt.amount))

			assert.Equal(t, tt.number, number)
			assert.Equal(t, "723.50", expected.StringFixed(2))
			assert.Equal(t, tt.balance, balance.StringFixed(2))
		})
	}
}

func TestBuildSchedule(t *testing.T) {
	loan := activeLoan("3600", "300")
	loan.Tenure = 12
	loan.RepaymentFrequency = domain.FrequencyWeekly
	loan.StartDate = time.Date(2025, 12, 17, 0, 0, 0, 0, time.UTC)
	loan.TotalPaid = decimal.NewFromInt(750)

	schedule := BuildSchedule(loan)

	require.Len(t, schedule, 12)
	assert.Equal(t, 1, schedule[0].Number)
	assert.True(t, schedule[0].DueDate.Equal(loan.StartDate))
	assert.True(t, schedule[1].DueDate.Equal(time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)))
	assert.True(t, schedule[11].DueDate.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)))

	// 750 covers two full installments; the third is only part paid
	assert.Equal(t, domain.ScheduleStatusPaid, schedule[0].Status)
	assert.Equal(t, domain.ScheduleStatusPaid, schedule[1].Status)
	assert.Equal(t, domain.ScheduleStatusPending, schedule[2].Status)

	for _, inst := range schedule {
		assert.True(t, inst.DueAmount.Equal(loan.EMIAmount))
	}
}
