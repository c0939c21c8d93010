package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/segyhp/microfinance-engine/internal/domain"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// LoanTypeRepository defines the interface for loan product data operations
type LoanTypeRepository interface {
	// Create stores a new loan type
	Create(ctx context.Context, loanType *domain.LoanType) error

	// GetByID retrieves a loan type by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LoanType, error)

	// Update replaces a stored loan type
	Update(ctx context.Context, loanType *domain.LoanType) error

	// List returns all loan types in creation order
	List(ctx context.Context) ([]*domain.LoanType, error)
}

// BorrowerRepository defines the interface for borrower data operations
type BorrowerRepository interface {
	Create(ctx context.Context, borrower *domain.Borrower) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Borrower, error)
	List(ctx context.Context) ([]*domain.Borrower, error)
}

// StaffRepository defines the interface for staff and agent data operations
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
	List(ctx context.Context) ([]*domain.Staff, error)
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// Create creates a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByID retrieves a loan by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// Update replaces a loan's stored value
	Update(ctx context.Context, loan *domain.Loan) error

	// List returns all loans in creation order
	List(ctx context.Context) ([]*domain.Loan, error)
}

// CollectionRepository defines the interface for the append-only collection ledger
type CollectionRepository interface {
	// Create appends a collection record
	Create(ctx context.Context, collection *domain.Collection) error

	// GetByLoanID retrieves all collections for a loan
	GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.Collection, error)

	// List returns the whole ledger in posting order
	List(ctx context.Context) ([]*domain.Collection, error)
}

// SequenceRepository hands out monotonic per-name counters used for
// human-readable numbers.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int, error)
}
