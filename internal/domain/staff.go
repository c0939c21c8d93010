package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Staff is an employee; agents collect repayments in the field.
type Staff struct {
	ID           uuid.UUID   `json:"id"`
	EmployeeCode string      `json:"employee_code"`
	FullName     string      `json:"full_name"`
	Role         StaffRole   `json:"role"`
	Phone        string      `json:"phone"`
	Email        string      `json:"email"`
	Address      string      `json:"address"`
	JoiningDate  time.Time   `json:"joining_date"`
	Status       StaffStatus `json:"status"`
}

func (s Staff) IsAgent() bool {
	return s.Role == StaffRoleAgent
}

type AddStaffRequest struct {
	FullName    string    `json:"full_name" validate:"required"`
	Role        StaffRole `json:"role" validate:"oneof=staff agent"`
	Phone       string    `json:"phone" validate:"required"`
	Email       string    `json:"email" validate:"omitempty,email"`
	Address     string    `json:"address"`
	JoiningDate time.Time `json:"joining_date"`
}

// AgentSummary is the per-agent workload shown on the staff page.
type AgentSummary struct {
	AgentID            uuid.UUID       `json:"agent_id"`
	AgentName          string          `json:"agent_name"`
	AssignedLoansCount int             `json:"assigned_loans_count"`
	TotalCollected     decimal.Decimal `json:"total_collected"`
}
