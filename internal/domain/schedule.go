package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Business logic constants
const (
	ScheduleStatusPending = "pending"
	ScheduleStatusPaid    = "paid"
)

// Installment is one entry of a loan's repayment schedule. Schedules are
// derived on demand and never stored.
type Installment struct {
	Number    int             `json:"number"`
	DueAmount decimal.Decimal `json:"due_amount"`
	DueDate   time.Time       `json:"due_date"`
	Status    string          `json:"status"` // pending, paid
}

type ScheduleResponse struct {
	LoanNumber string         `json:"loan_number"`
	Schedule   []*Installment `json:"schedule"`
}
