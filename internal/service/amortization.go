package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/segyhp/microfinance-engine/internal/domain"
	customError "github.com/segyhp/microfinance-engine/pkg/errors"
	"github.com/segyhp/microfinance-engine/pkg/utils"
)

// CalculateInstallment returns the EMI for a loan of the given terms.
func CalculateInstallment(principal, annualRatePercent decimal.Decimal, tenure int, freq domain.Frequency) (decimal.Decimal, error) {
	if !freq.Valid() {
		return decimal.Zero, customError.WrapValidation(fmt.Sprintf("unknown repayment frequency %q", freq), nil)
	}

	emi, err := utils.CalculateInstallment(principal, annualRatePercent, tenure, freq.PeriodsPerYear())
	if err != nil {
		return decimal.Zero, customError.WrapValidation(err.Error(), err)
	}
	return emi, nil
}

// DeriveLoanFigures computes the fields fixed at origination.
func DeriveLoanFigures(principal, annualRatePercent decimal.Decimal, tenure int, freq domain.Frequency, feePercent decimal.Decimal) (domain.LoanFigures, error) {
	emi, err := CalculateInstallment(principal, annualRatePercent, tenure, freq)
	if err != nil {
		return domain.LoanFigures{}, err
	}

	totalAmount := utils.Round2(emi.Mul(decimal.NewFromInt(int64(tenure))))
	processingFee := utils.PercentOf(principal, feePercent)

	return domain.LoanFigures{
		EMIAmount:     emi,
		TotalAmount:   totalAmount,
		TotalInterest: utils.Round2(totalAmount.Sub(principal)),
		ProcessingFee: processingFee,
		NetDisbursed:  utils.Round2(principal.Sub(processingFee)),
	}, nil
}

// LoanDates returns the first due date and the end date of a loan. The first
// installment is always due the day after disbursement, whatever the
// frequency; the end date is tenure periods after that.
func LoanDates(disbursement time.Time, tenure int, freq domain.Frequency) (start, end time.Time) {
	start = disbursement.AddDate(0, 0, 1)
	end = freq.Advance(start, tenure)
	return start, end
}

// ApplyCollection posts amount against loan's running balance. The remaining
// balance is always re-derived from the fixed total so many small payments
// cannot accumulate drift.
func ApplyCollection(loan domain.Loan, amount decimal.Decimal) (domain.LoanBalance, error) {
	if !amount.IsPositive() {
		return domain.LoanBalance{}, customError.WrapInvalidPaymentAmount(amount.String())
	}

	totalPaid := loan.TotalPaid.Add(amount)
	remaining := loan.TotalAmount.Sub(totalPaid)

	status := loan.Status
	if !remaining.IsPositive() {
		status = domain.LoanStatusClosed
	}

	return domain.LoanBalance{
		TotalPaid:        totalPaid,
		RemainingBalance: remaining,
		Status:           status,
	}, nil
}

// installmentFor describes which installment a payment of amount settles.
func installmentFor(loan domain.Loan, amount decimal.Decimal) (number int, expected, balance decimal.Decimal) {
	expected = loan.EMIAmount
	balance = expected.Sub(amount)
	number = int(utils.CeilDiv(loan.TotalPaid.Add(amount), loan.EMIAmount))
	if number < 1 {
		number = 1
	}
	return number, expected, balance
}

// BuildSchedule lays out every installment of loan with its due date. An
// installment counts as paid once the cumulative total covers it.
func BuildSchedule(loan domain.Loan) []*domain.Installment {
	paidInstallments := 0
	if loan.EMIAmount.IsPositive() {
		paidInstallments = int(loan.TotalPaid.Div(loan.EMIAmount).Floor().IntPart())
	}

	schedule := make([]*domain.Installment, 0, loan.Tenure)
	for n := 1; n <= loan.Tenure; n++ {
		status := domain.ScheduleStatusPending
		if n <= paidInstallments {
			status = domain.ScheduleStatusPaid
		}

		schedule = append(schedule, &domain.Installment{
			Number:    n,
			DueAmount: loan.EMIAmount,
			DueDate:   loan.RepaymentFrequency.Advance(loan.StartDate, n-1),
			Status:    status,
		})
	}

	return schedule
}
