package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Collection is an immutable repayment event against a loan.
type Collection struct {
	ID                uuid.UUID       `json:"id"`
	CollectionNumber  string          `json:"collection_number"`
	LoanID            uuid.UUID       `json:"loan_id"`
	LoanNumber        string          `json:"loan_number"`
	BorrowerID        uuid.UUID       `json:"borrower_id"`
	BorrowerName      string          `json:"borrower_name"`
	BorrowerPhone     string          `json:"borrower_phone"`
	CollectionDate    time.Time       `json:"collection_date"`
	PayDate           time.Time       `json:"pay_date"`
	InstallmentNumber int             `json:"installment_number"`
	ExpectedAmount    decimal.Decimal `json:"expected_amount"`
	CollectedAmount   decimal.Decimal `json:"collected_amount"`
	BalanceAmount     decimal.Decimal `json:"balance_amount"` // expected - collected; negative on overpayment
	PaymentMode       PaymentMode     `json:"payment_mode"`
	AgentID           uuid.UUID       `json:"agent_id"`
	AgentName         string          `json:"agent_name"`
	Remarks           string          `json:"remarks,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

type PostCollectionRequest struct {
	LoanID         uuid.UUID       `json:"loan_id" validate:"required"`
	Amount         decimal.Decimal `json:"amount" validate:"gt=0"`
	CollectionDate time.Time       `json:"collection_date" validate:"required"`
	PayDate        time.Time       `json:"pay_date"` // defaults to CollectionDate
	PaymentMode    PaymentMode     `json:"payment_mode" validate:"oneof=cash upi bank_transfer cheque"`
	AgentID        uuid.UUID       `json:"agent_id" validate:"required"`
	Remarks        string          `json:"remarks"`
}
