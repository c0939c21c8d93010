package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/segyhp/microfinance-engine/internal/domain"
)

// table is an insertion-ordered in-memory table keyed by entity id. Values
// are stored by copy so callers never share state with the store.
type table[T any] struct {
	mu    sync.RWMutex
	index map[uuid.UUID]int
	rows  []T
	keyOf func(*T) uuid.UUID
}

func newTable[T any](keyOf func(*T) uuid.UUID) *table[T] {
	return &table[T]{
		index: make(map[uuid.UUID]int),
		keyOf: keyOf,
	}
}

func (t *table[T]) insert(v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.keyOf(v)
	if _, ok := t.index[id]; ok {
		return ErrAlreadyExists
	}
	t.index[id] = len(t.rows)
	t.rows = append(t.rows, *v)
	return nil
}

func (t *table[T]) get(id uuid.UUID) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i, ok := t.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	row := t.rows[i]
	return &row, nil
}

func (t *table[T]) replace(v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.index[t.keyOf(v)]
	if !ok {
		return ErrNotFound
	}
	t.rows[i] = *v
	return nil
}

func (t *table[T]) list(keep func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*T, 0, len(t.rows))
	for i := range t.rows {
		row := t.rows[i]
		if keep == nil || keep(&row) {
			out = append(out, &row)
		}
	}
	return out
}

// MemoryStore holds every engine table in process memory.
type MemoryStore struct {
	loanTypes   *table[domain.LoanType]
	borrowers   *table[domain.Borrower]
	staff       *table[domain.Staff]
	loans       *table[domain.Loan]
	collections *table[domain.Collection]

	seqMu     sync.Mutex
	sequences map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		loanTypes:   newTable(func(v *domain.LoanType) uuid.UUID { return v.ID }),
		borrowers:   newTable(func(v *domain.Borrower) uuid.UUID { return v.ID }),
		staff:       newTable(func(v *domain.Staff) uuid.UUID { return v.ID }),
		loans:       newTable(func(v *domain.Loan) uuid.UUID { return v.ID }),
		collections: newTable(func(v *domain.Collection) uuid.UUID { return v.ID }),
		sequences:   make(map[string]int),
	}
}

func (s *MemoryStore) LoanTypes() LoanTypeRepository     { return &loanTypeRepository{t: s.loanTypes} }
func (s *MemoryStore) Borrowers() BorrowerRepository     { return &borrowerRepository{t: s.borrowers} }
func (s *MemoryStore) Staff() StaffRepository            { return &staffRepository{t: s.staff} }
func (s *MemoryStore) Loans() LoanRepository             { return &loanRepository{t: s.loans} }
func (s *MemoryStore) Collections() CollectionRepository { return &collectionRepository{t: s.collections} }
func (s *MemoryStore) Sequences() SequenceRepository     { return s }

func (s *MemoryStore) Next(ctx context.Context, name string) (int, error) {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()

	s.sequences[name]++
	return s.sequences[name], nil
}

type loanTypeRepository struct {
	t *table[domain.LoanType]
}

func (r *loanTypeRepository) Create(ctx context.Context, loanType *domain.LoanType) error {
	return r.t.insert(loanType)
}

func (r *loanTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LoanType, error) {
	return r.t.get(id)
}

func (r *loanTypeRepository) Update(ctx context.Context, loanType *domain.LoanType) error {
	return r.t.replace(loanType)
}

func (r *loanTypeRepository) List(ctx context.Context) ([]*domain.LoanType, error) {
	return r.t.list(nil), nil
}

type borrowerRepository struct {
	t *table[domain.Borrower]
}

func (r *borrowerRepository) Create(ctx context.Context, borrower *domain.Borrower) error {
	return r.t.insert(borrower)
}

func (r *borrowerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Borrower, error) {
	return r.t.get(id)
}

func (r *borrowerRepository) List(ctx context.Context) ([]*domain.Borrower, error) {
	return r.t.list(nil), nil
}

type staffRepository struct {
	t *table[domain.Staff]
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	return r.t.insert(staff)
}

func (r *staffRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	return r.t.get(id)
}

func (r *staffRepository) List(ctx context.Context) ([]*domain.Staff, error) {
	return r.t.list(nil), nil
}

type loanRepository struct {
	t *table[domain.Loan]
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	return r.t.insert(loan)
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	return r.t.get(id)
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	return r.t.replace(loan)
}

func (r *loanRepository) List(ctx context.Context) ([]*domain.Loan, error) {
	return r.t.list(nil), nil
}

type collectionRepository struct {
	t *table[domain.Collection]
}

func (r *collectionRepository) Create(ctx context.Context, collection *domain.Collection) error {
	return r.t.insert(collection)
}

func (r *collectionRepository) GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.Collection, error) {
	return r.t.list(func(c *domain.Collection) bool { return c.LoanID == loanID }), nil
}

func (r *collectionRepository) List(ctx context.Context) ([]*domain.Collection, error) {
	return r.t.list(nil), nil
}

// Repositories bundles the engine's stores for service construction.
type Repositories struct {
	LoanTypes   LoanTypeRepository
	Borrowers   BorrowerRepository
	Staff       StaffRepository
	Loans       LoanRepository
	Collections CollectionRepository
	Sequences   SequenceRepository
}

func (s *MemoryStore) Repositories() Repositories {
	return Repositories{
		LoanTypes:   s.LoanTypes(),
		Borrowers:   s.Borrowers(),
		Staff:       s.Staff(),
		Loans:       s.Loans(),
		Collections: s.Collections(),
		Sequences:   s.Sequences(),
	}
}
