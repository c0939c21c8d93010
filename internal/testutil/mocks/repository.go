package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/microfinance-engine/internal/domain"
	"github.com/segyhp/microfinance-engine/internal/repository"
)

// NewRepositories wires a fresh set of mocks into a repository bundle.
func NewRepositories() (*Set, repository.Repositories) {
	set := &Set{
		LoanTypes:   &MockLoanTypeRepository{},
		Borrowers:   &MockBorrowerRepository{},
		Staff:       &MockStaffRepository{},
		Loans:       &MockLoanRepository{},
		Collections: &MockCollectionRepository{},
		Sequences:   &MockSequenceRepository{},
	}
	return set, repository.Repositories{
		LoanTypes:   set.LoanTypes,
		Borrowers:   set.Borrowers,
		Staff:       set.Staff,
		Loans:       set.Loans,
		Collections: set.Collections,
		Sequences:   set.Sequences,
	}
}

type Set struct {
	LoanTypes   *MockLoanTypeRepository
	Borrowers   *MockBorrowerRepository
	Staff       *MockStaffRepository
	Loans       *MockLoanRepository
	Collections *MockCollectionRepository
	Sequences   *MockSequenceRepository
}

type MockLoanTypeRepository struct {
	mock.Mock
}

func (m *MockLoanTypeRepository) Create(ctx context.Context, loanType *domain.LoanType) error {
	args := m.Called(ctx, loanType)
	return args.Error(0)
}

func (m *MockLoanTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LoanType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanType), args.Error(1)
}

func (m *MockLoanTypeRepository) Update(ctx context.Context, loanType *domain.LoanType) error {
	args := m.Called(ctx, loanType)
	return args.Error(0)
}

func (m *MockLoanTypeRepository) List(ctx context.Context) ([]*domain.LoanType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanType), args.Error(1)
}

type MockBorrowerRepository struct {
	mock.Mock
}

func (m *MockBorrowerRepository) Create(ctx context.Context, borrower *domain.Borrower) error {
	args := m.Called(ctx, borrower)
	return args.Error(0)
}

func (m *MockBorrowerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Borrower, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrower), args.Error(1)
}

func (m *MockBorrowerRepository) List(ctx context.Context) ([]*domain.Borrower, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Borrower), args.Error(1)
}

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *MockStaffRepository) List(ctx context.Context) ([]*domain.Staff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Staff), args.Error(1)
}

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) List(ctx context.Context) ([]*domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) Create(ctx context.Context, collection *domain.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionRepository) GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.Collection, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Collection), args.Error(1)
}

func (m *MockCollectionRepository) List(ctx context.Context) ([]*domain.Collection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Collection), args.Error(1)
}

type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) Next(ctx context.Context, name string) (int, error) {
	args := m.Called(ctx, name)
	return args.Int(0), args.Error(1)
}
