package domain

import (
	"fmt"
	"time"
)

// Frequency is the repayment cadence of a loan product.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// ParseFrequency rejects anything outside the closed set.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown repayment frequency %q", s)
	}
	return f, nil
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// PeriodsPerYear returns 365, 52 or 12; 0 for an invalid frequency.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case FrequencyDaily:
		return 365
	case FrequencyWeekly:
		return 52
	case FrequencyMonthly:
		return 12
	}
	return 0
}

// Advance moves t forward by n repayment periods.
func (f Frequency) Advance(t time.Time, n int) time.Time {
	switch f {
	case FrequencyDaily:
		return t.AddDate(0, 0, n)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7*n)
	case FrequencyMonthly:
		return t.AddDate(0, n, 0)
	}
	return t
}

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusClosed    LoanStatus = "closed"
	LoanStatusOverdue   LoanStatus = "overdue"
	LoanStatusDefaulted LoanStatus = "defaulted"
)

func ParseLoanStatus(s string) (LoanStatus, error) {
	st := LoanStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown loan status %q", s)
	}
	return st, nil
}

func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusActive, LoanStatusClosed, LoanStatusOverdue, LoanStatusDefaulted:
		return true
	}
	return false
}

// PaymentMode is how a collection was paid.
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "cash"
	PaymentModeUPI          PaymentMode = "upi"
	PaymentModeBankTransfer PaymentMode = "bank_transfer"
	PaymentModeCheque       PaymentMode = "cheque"
)

func ParsePaymentMode(s string) (PaymentMode, error) {
	m := PaymentMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown payment mode %q", s)
	}
	return m, nil
}

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeBankTransfer, PaymentModeCheque:
		return true
	}
	return false
}

// StaffRole separates office staff from field collection agents.
type StaffRole string

const (
	StaffRoleStaff StaffRole = "staff"
	StaffRoleAgent StaffRole = "agent"
)

func ParseStaffRole(s string) (StaffRole, error) {
	r := StaffRole(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown staff role %q", s)
	}
	return r, nil
}

func (r StaffRole) Valid() bool {
	switch r {
	case StaffRoleStaff, StaffRoleAgent:
		return true
	}
	return false
}

type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "active"
	StaffStatusInactive StaffStatus = "inactive"
)

func (s StaffStatus) Valid() bool {
	switch s {
	case StaffStatusActive, StaffStatusInactive:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
