package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrValidation           = errors.New("validation failed")
	ErrAmountOutOfRange     = errors.New("principal outside loan type range")
	ErrTenureOutOfRange     = errors.New("tenure outside loan type range")
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")
	ErrBorrowerNotFound     = errors.New("borrower not found")
	ErrLoanTypeNotFound     = errors.New("loan type not found")
	ErrLoanNotFound         = errors.New("loan not found")
	ErrAgentNotFound        = errors.New("agent not found")
	ErrLoanNotActive        = errors.New("loan is not active")
	ErrLedgerMismatch       = errors.New("collection ledger does not match loan balance")
	ErrDuplicateEntity      = errors.New("entity already exists")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation           = "VALIDATION_FAILED"
	ErrCodeAmountOutOfRange     = "AMOUNT_OUT_OF_RANGE"
	ErrCodeTenureOutOfRange     = "TENURE_OUT_OF_RANGE"
	ErrCodeInvalidPaymentAmount = "INVALID_PAYMENT_AMOUNT"
	ErrCodeBorrowerNotFound     = "BORROWER_NOT_FOUND"
	ErrCodeLoanTypeNotFound     = "LOAN_TYPE_NOT_FOUND"
	ErrCodeLoanNotFound         = "LOAN_NOT_FOUND"
	ErrCodeAgentNotFound        = "AGENT_NOT_FOUND"
	ErrCodeLoanNotActive        = "LOAN_NOT_ACTIVE"
	ErrCodeLedgerMismatch       = "LEDGER_MISMATCH"
	ErrCodeDuplicateEntity      = "DUPLICATE_ENTITY"
	ErrCodeStoreError           = "STORE_ERROR"
)

// WrapValidation reports a request that failed field or invariant checks.
// The cause is kept as the wrapped error so callers can inspect
// validator.ValidationErrors.
func WrapValidation(message string, cause error) *BusinessError {
	if cause == nil {
		cause = ErrValidation
	} else {
		cause = fmt.Errorf("%w: %w", ErrValidation, cause)
	}
	return NewBusinessError(ErrCodeValidation, message, cause)
}

func WrapAmountOutOfRange(amount, min, max string) *BusinessError {
	return NewBusinessError(
		ErrCodeAmountOutOfRange,
		fmt.Sprintf("Principal %s is outside the allowed range %s - %s", amount, min, max),
		fmt.Errorf("%w: %w", ErrValidation, ErrAmountOutOfRange),
	)
}

func WrapTenureOutOfRange(tenure, min, max int) *BusinessError {
	return NewBusinessError(
		ErrCodeTenureOutOfRange,
		fmt.Sprintf("Tenure %d is outside the allowed range %d - %d", tenure, min, max),
		fmt.Errorf("%w: %w", ErrValidation, ErrTenureOutOfRange),
	)
}

func WrapInvalidPaymentAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentAmount,
		fmt.Sprintf("Invalid payment amount: %s", amount),
		fmt.Errorf("%w: %w", ErrValidation, ErrInvalidPaymentAmount),
	)
}

func WrapBorrowerNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeBorrowerNotFound,
		fmt.Sprintf("Borrower with ID %s not found", id),
		ErrBorrowerNotFound,
	)
}

func WrapLoanTypeNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanTypeNotFound,
		fmt.Sprintf("Loan type with ID %s not found", id),
		ErrLoanTypeNotFound,
	)
}

func WrapLoanNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", id),
		ErrLoanNotFound,
	)
}

func WrapAgentNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeAgentNotFound,
		fmt.Sprintf("Agent with ID %s not found", id),
		ErrAgentNotFound,
	)
}

func WrapLoanNotActive(loanNumber, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotActive,
		fmt.Sprintf("Loan %s is %s and cannot take collections", loanNumber, status),
		ErrLoanNotActive,
	)
}

func WrapLedgerMismatch(loanNumber, ledger, cached string) *BusinessError {
	return NewBusinessError(
		ErrCodeLedgerMismatch,
		fmt.Sprintf("Loan %s ledger total %s does not match cached total paid %s", loanNumber, ledger, cached),
		ErrLedgerMismatch,
	)
}

func WrapDuplicateEntity(kind, id string) *BusinessError {
	return NewBusinessError(
		ErrCodeDuplicateEntity,
		fmt.Sprintf("%s with ID %s already exists", kind, id),
		ErrDuplicateEntity,
	)
}

func WrapStoreError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeStoreError,
		"store operation failed",
		err,
	)
}

// IsValidation reports whether err is a validation failure of any kind.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err references a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBorrowerNotFound) ||
		errors.Is(err, ErrLoanTypeNotFound) ||
		errors.Is(err, ErrLoanNotFound) ||
		errors.Is(err, ErrAgentNotFound)
}

// CodeOf returns the business error code carried by err, or "" if err is
// not a BusinessError.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
