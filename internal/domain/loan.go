package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loan represents a loan entity. Rate, tenure and frequency are copied from
// the loan type at creation so later product edits never reach existing loans.
type Loan struct {
	ID                 uuid.UUID       `json:"id"`
	LoanNumber         string          `json:"loan_number"`
	BorrowerID         uuid.UUID       `json:"borrower_id"`
	BorrowerName       string          `json:"borrower_name"`
	LoanTypeID         uuid.UUID       `json:"loan_type_id"`
	LoanTypeName       string          `json:"loan_type_name"`
	PrincipalAmount    decimal.Decimal `json:"principal_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	Tenure             int             `json:"tenure"`
	RepaymentFrequency Frequency       `json:"repayment_frequency"`
	EMIAmount          decimal.Decimal `json:"emi_amount"`
	TotalInterest      decimal.Decimal `json:"total_interest"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	ProcessingFee      decimal.Decimal `json:"processing_fee"`
	NetDisbursed       decimal.Decimal `json:"net_disbursed"`
	DisbursementDate   time.Time       `json:"disbursement_date"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            time.Time       `json:"end_date"`
	Status             LoanStatus      `json:"status"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	RemainingBalance   decimal.Decimal `json:"remaining_balance"`
	AssignedAgentID    *uuid.UUID      `json:"assigned_agent_id,omitempty"`
	AssignedAgentName  string          `json:"assigned_agent_name,omitempty"`
	CreatedBy          string          `json:"created_by"`
	CreatedAt          time.Time       `json:"created_at"`
}

// LoanFigures are the financial fields fixed at origination.
type LoanFigures struct {
	EMIAmount     decimal.Decimal `json:"emi_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	ProcessingFee decimal.Decimal `json:"processing_fee"`
	NetDisbursed  decimal.Decimal `json:"net_disbursed"`
}

// LoanBalance is the running state a collection changes.
type LoanBalance struct {
	TotalPaid        decimal.Decimal `json:"total_paid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Status           LoanStatus      `json:"status"`
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	BorrowerID       uuid.UUID       `json:"borrower_id" validate:"required"`
	LoanTypeID       uuid.UUID       `json:"loan_type_id" validate:"required"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount" validate:"gt=0"`
	Tenure           int             `json:"tenure" validate:"gte=1"`
	DisbursementDate time.Time       `json:"disbursement_date" validate:"required"`
	AgentID          *uuid.UUID      `json:"agent_id,omitempty"`
	CreatedBy        string          `json:"created_by"`
}

type ReconciliationReport struct {
	LoanID            uuid.UUID       `json:"loan_id"`
	LoanNumber        string          `json:"loan_number"`
	CollectionCount   int             `json:"collection_count"`
	LedgerTotal       decimal.Decimal `json:"ledger_total"`
	CachedTotalPaid   decimal.Decimal `json:"cached_total_paid"`
	ExpectedRemaining decimal.Decimal `json:"expected_remaining"`
	CachedRemaining   decimal.Decimal `json:"cached_remaining"`
}

// Balanced reports whether the ledger and the cached balance agree.
func (r ReconciliationReport) Balanced() bool {
	return r.LedgerTotal.Equal(r.CachedTotalPaid) && r.ExpectedRemaining.Equal(r.CachedRemaining)
}
