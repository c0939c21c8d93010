package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanType is a loan product template
type LoanType struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	InterestRate       decimal.Decimal `json:"interest_rate"` // annual percentage
	MinAmount          decimal.Decimal `json:"min_amount"`
	MaxAmount          decimal.Decimal `json:"max_amount"`
	MinTenure          int             `json:"min_tenure"` // repayment periods
	MaxTenure          int             `json:"max_tenure"`
	RepaymentFrequency Frequency       `json:"repayment_frequency"`
	ProcessingFee      decimal.Decimal `json:"processing_fee"` // percentage of principal
	CreatedAt          time.Time       `json:"created_at"`
}

// AllowsAmount reports whether principal lies within [MinAmount, MaxAmount].
func (lt LoanType) AllowsAmount(principal decimal.Decimal) bool {
	return principal.GreaterThanOrEqual(lt.MinAmount) && principal.LessThanOrEqual(lt.MaxAmount)
}

// AllowsTenure reports whether tenure lies within [MinTenure, MaxTenure].
func (lt LoanType) AllowsTenure(tenure int) bool {
	return tenure >= lt.MinTenure && tenure <= lt.MaxTenure
}

type CreateLoanTypeRequest struct {
	Name               string          `json:"name" validate:"required"`
	Description        string          `json:"description"`
	InterestRate       decimal.Decimal `json:"interest_rate" validate:"gte=0"`
	MinAmount          decimal.Decimal `json:"min_amount" validate:"gt=0"`
	MaxAmount          decimal.Decimal `json:"max_amount" validate:"gt=0"`
	MinTenure          int             `json:"min_tenure" validate:"gte=1"`
	MaxTenure          int             `json:"max_tenure" validate:"gte=1,gtefield=MinTenure"`
	RepaymentFrequency Frequency       `json:"repayment_frequency" validate:"oneof=daily weekly monthly"`
	ProcessingFee      decimal.Decimal `json:"processing_fee" validate:"gte=0"`
}
