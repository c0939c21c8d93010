package domain

import (
	"time"

	"github.com/google/uuid"
)

// Borrower is an identity record for a customer.
type Borrower struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	FullName    string    `json:"full_name"`
	DisplayName string    `json:"display_name"`
	Gender      Gender    `json:"gender"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email,omitempty"`
	GovtID      string    `json:"govt_id"`
	TaxID       string    `json:"tax_id"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	PinCode     string    `json:"pin_code"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by"`
}

type RegisterBorrowerRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	DisplayName string `json:"display_name"`
	Gender      Gender `json:"gender" validate:"oneof=male female other"`
	Phone       string `json:"phone" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	GovtID      string `json:"govt_id" validate:"required"`
	TaxID       string `json:"tax_id"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PinCode     string `json:"pin_code"`
	CreatedBy   string `json:"created_by"`
}
