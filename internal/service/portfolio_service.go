package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/microfinance-engine/internal/config"
	"github.com/segyhp/microfinance-engine/internal/domain"
	"github.com/segyhp/microfinance-engine/internal/repository"
	customError "github.com/segyhp/microfinance-engine/pkg/errors"
)

const (
	seqLoan       = "loan"
	seqCollection = "collection"
	seqBorrower   = "borrower"
)

type PortfolioService struct {
	LoanTypeRepo   repository.LoanTypeRepository
	BorrowerRepo   repository.BorrowerRepository
	StaffRepo      repository.StaffRepository
	LoanRepo       repository.LoanRepository
	CollectionRepo repository.CollectionRepository
	Sequences      repository.SequenceRepository

	config    *config.Config
	logger    *logrus.Logger
	validator *validator.Validate
	loanLocks *keyedMutex
	now       func() time.Time
}

func NewPortfolioService(
	repos repository.Repositories,
	cfg *config.Config,
	logger *logrus.Logger,
) *PortfolioService {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &PortfolioService{
		LoanTypeRepo:   repos.LoanTypes,
		BorrowerRepo:   repos.Borrowers,
		StaffRepo:      repos.Staff,
		LoanRepo:       repos.Loans,
		CollectionRepo: repos.Collections,
		Sequences:      repos.Sequences,
		config:         cfg,
		logger:         logger,
		validator:      newValidator(),
		loanLocks:      newKeyedMutex(),
		now:            time.Now,
	}
}

// CreateLoanType registers a new loan product
func (s *PortfolioService) CreateLoanType(ctx context.Context, request *domain.CreateLoanTypeRequest) (*domain.LoanType, error) {
	if err := s.validateLoanType(request); err != nil {
		return nil, err
	}

	loanType := &domain.LoanType{
		ID:        uuid.New(),
		CreatedAt: s.now(),
	}
	applyLoanTypeFields(loanType, request)

	if err := s.LoanTypeRepo.Create(ctx, loanType); err != nil {
		return nil, customError.WrapStoreError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"loan_type_id": loanType.ID,
		"name":         loanType.Name,
		"frequency":    loanType.RepaymentFrequency,
	}).Info("loan type created")

	return loanType, nil
}

// UpdateLoanType replaces a loan product's terms. Loans already issued keep
// the terms they were created with.
func (s *PortfolioService) UpdateLoanType(ctx context.Context, id uuid.UUID, request *domain.CreateLoanTypeRequest) (*domain.LoanType, error) {
	if err := s.validateLoanType(request); err != nil {
		return nil, err
	}

	existing, err := s.LoanTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, customError.WrapLoanTypeNotFound(id.String()))
	}

	updated := *existing
	applyLoanTypeFields(&updated, request)

	if err := s.LoanTypeRepo.Update(ctx, &updated); err != nil {
		return nil, customError.WrapStoreError(err)
	}

	s.logger.WithField("loan_type_id", id).Info("loan type updated")

	return &updated, nil
}

func (s *PortfolioService) ListLoanTypes(ctx context.Context) ([]*domain.LoanType, error) {
	loanTypes, err := s.LoanTypeRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}
	return loanTypes, nil
}

func (s *PortfolioService) validateLoanType(request *domain.CreateLoanTypeRequest) error {
	if err := s.validate(request); err != nil {
		return err
	}
	if request.MinAmount.GreaterThan(request.MaxAmount) {
		return customError.WrapValidation(
			fmt.Sprintf("min amount %s exceeds max amount %s", request.MinAmount, request.MaxAmount), nil)
	}
	return nil
}

func applyLoanTypeFields(loanType *domain.LoanType, request *domain.CreateLoanTypeRequest) {
	loanType.Name = request.Name
	loanType.Description = request.Description
	loanType.InterestRate = request.InterestRate
	loanType.MinAmount = request.MinAmount
	loanType.MaxAmount = request.MaxAmount
	loanType.MinTenure = request.MinTenure
	loanType.MaxTenure = request.MaxTenure
	loanType.RepaymentFrequency = request.RepaymentFrequency
	loanType.ProcessingFee = request.ProcessingFee
}

// RegisterBorrower adds a borrower with the next sequential code
func (s *PortfolioService) RegisterBorrower(ctx context.Context, request *domain.RegisterBorrowerRequest) (*domain.Borrower, error) {
	if err := s.validate(request); err != nil {
		return nil, err
	}

	seq, err := s.Sequences.Next(ctx, seqBorrower)
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}

	displayName := request.DisplayName
	if displayName == "" {
		displayName = request.FullName
	}

	borrower := &domain.Borrower{
		ID:          uuid.New(),
		Code:        fmt.Sprintf("%s%03d", s.config.Numbering.BorrowerPrefix, seq),
		FullName:    request.FullName,
		DisplayName: displayName,
		Gender:      request.Gender,
		Phone:       request.Phone,
		Email:       request.Email,
		GovtID:      request.GovtID,
		TaxID:       request.TaxID,
		Address:     request.Address,
		City:        request.City,
		State:       request.State,
		PinCode:     request.PinCode,
		CreatedAt:   s.now(),
		CreatedBy:   request.CreatedBy,
	}

	if err := s.BorrowerRepo.Create(ctx, borrower); err != nil {
		return nil, customError.WrapStoreError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"borrower_id": borrower.ID,
		"code":        borrower.Code,
	}).Info("borrower registered")

	return borrower, nil
}

func (s *PortfolioService) ListBorrowers(ctx context.Context) ([]*domain.Borrower, error) {
	borrowers, err := s.BorrowerRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}
	return borrowers, nil
}

// AddStaff adds an employee; codes are counted separately for staff and agents
func (s *PortfolioService) AddStaff(ctx context.Context, request *domain.AddStaffRequest) (*domain.Staff, error) {
	if err := s.validate(request); err != nil {
		return nil, err
	}

	prefix := s.config.Numbering.StaffPrefix
	if request.Role == domain.StaffRoleAgent {
		prefix = s.config.Numbering.AgentPrefix
	}

	seq, err := s.Sequences.Next(ctx, "staff:"+string(request.Role))
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}

	joining := request.JoiningDate
	if joining.IsZero() {
		joining = s.now()
	}

	staff := &domain.Staff{
		ID:           uuid.New(),
		EmployeeCode: fmt.Sprintf("%s%03d", prefix, seq),
		FullName:     request.FullName,
		Role:         request.Role,
		Phone:        request.Phone,
		Email:        request.Email,
		Address:      request.Address,
		JoiningDate:  joining,
		Status:       domain.StaffStatusActive,
	}

	if err := s.StaffRepo.Create(ctx, staff); err != nil {
		return nil, customError.WrapStoreError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"staff_id": staff.ID,
		"code":     staff.EmployeeCode,
		"role":     staff.Role,
	}).Info("staff added")

	return staff, nil
}

func (s *PortfolioService) ListStaff(ctx context.Context) ([]*domain.Staff, error) {
	staff, err := s.StaffRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}
	return staff, nil
}

// CreateLoan disburses a loan to a borrower under a loan product
func (s *PortfolioService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	if err := s.validate(request); err != nil {
		return nil, err
	}

	borrower, err := s.BorrowerRepo.GetByID(ctx, request.BorrowerID)
	if err != nil {
		return nil, lookupError(err, customError.WrapBorrowerNotFound(request.BorrowerID.String()))
	}

	loanType, err := s.LoanTypeRepo.GetByID(ctx, request.LoanTypeID)
	if err != nil {
		return nil, lookupError(err, customError.WrapLoanTypeNotFound(request.LoanTypeID.String()))
	}

	var agent *domain.Staff
	if request.AgentID != nil {
		if agent, err = s.getAgent(ctx, *request.AgentID); err != nil {
			return nil, err
		}
	}

	// Out-of-range terms are rejected, never clamped
	if !loanType.AllowsAmount(request.PrincipalAmount) {
		return nil, customError.WrapAmountOutOfRange(
			request.PrincipalAmount.String(), loanType.MinAmount.String(), loanType.MaxAmount.String())
	}
	if !loanType.AllowsTenure(request.Tenure) {
		return nil, customError.WrapTenureOutOfRange(request.Tenure, loanType.MinTenure, loanType.MaxTenure)
	}

	figures, err := DeriveLoanFigures(
		request.PrincipalAmount,
		loanType.InterestRate,
		request.Tenure,
		loanType.RepaymentFrequency,
		loanType.ProcessingFee,
	)
	if err != nil {
		return nil, err
	}

	startDate, endDate := LoanDates(request.DisbursementDate, request.Tenure, loanType.RepaymentFrequency)

	seq, err := s.Sequences.Next(ctx, seqLoan)
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}

	loan := &domain.Loan{
		ID:                 uuid.New(),
		LoanNumber:         fmt.Sprintf("%s%05d", s.config.Numbering.LoanPrefix, seq),
		BorrowerID:         borrower.ID,
		BorrowerName:       borrower.FullName,
		LoanTypeID:         loanType.ID,
		LoanTypeName:       loanType.Name,
		PrincipalAmount:    request.PrincipalAmount,
		InterestRate:       loanType.InterestRate,
		Tenure:             request.Tenure,
		RepaymentFrequency: loanType.RepaymentFrequency,
		EMIAmount:          figures.EMIAmount,
		TotalInterest:      figures.TotalInterest,
		TotalAmount:        figures.TotalAmount,
		ProcessingFee:      figures.ProcessingFee,
		NetDisbursed:       figures.NetDisbursed,
		DisbursementDate:   request.DisbursementDate,
		StartDate:          startDate,
		EndDate:            endDate,
		Status:             domain.LoanStatusActive,
		TotalPaid:          decimal.Zero,
		RemainingBalance:   figures.TotalAmount,
		CreatedBy:          request.CreatedBy,
		CreatedAt:          s.now(),
	}
	if agent != nil {
		agentID := agent.ID
		loan.AssignedAgentID = &agentID
		loan.AssignedAgentName = agent.FullName
	}

	if err := s.LoanRepo.Create(ctx, loan); err != nil {
		return nil, customError.WrapStoreError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"loan_number":   loan.LoanNumber,
		"borrower_code": borrower.Code,
		"principal":     loan.PrincipalAmount.StringFixed(2),
		"emi":           loan.EMIAmount.StringFixed(2),
		"total_amount":  loan.TotalAmount.StringFixed(2),
	}).Info("loan disbursed")

	return loan, nil
}

// GetLoan returns a loan by id
func (s *PortfolioService) GetLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	loan, err := s.LoanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, lookupError(err, customError.WrapLoanNotFound(loanID.String()))
	}
	return loan, nil
}

func (s *PortfolioService) ListLoans(ctx context.Context) ([]*domain.Loan, error) {
	loans, err := s.LoanRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}
	return loans, nil
}

// GetSchedule returns the repayment schedule for a loan
func (s *PortfolioService) GetSchedule(ctx context.Context, loanID uuid.UUID) (*domain.ScheduleResponse, error) {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	return &domain.ScheduleResponse{
		LoanNumber: loan.LoanNumber,
		Schedule:   BuildSchedule(*loan),
	}, nil
}

// PostCollection records a repayment and applies it to the loan. The
// read-modify-write of the loan runs under that loan's lock.
func (s *PortfolioService) PostCollection(ctx context.Context, request *domain.PostCollectionRequest) (*domain.Collection, *domain.Loan, error) {
	if err := s.validate(request); err != nil {
		return nil, nil, err
	}

	agent, err := s.getAgent(ctx, request.AgentID)
	if err != nil {
		return nil, nil, err
	}

	unlock := s.loanLocks.Lock(request.LoanID)
	defer unlock()

	loan, err := s.GetLoan(ctx, request.LoanID)
	if err != nil {
		return nil, nil, err
	}

	if loan.Status != domain.LoanStatusActive {
		return nil, nil, customError.WrapLoanNotActive(loan.LoanNumber, string(loan.Status))
	}

	borrower, err := s.BorrowerRepo.GetByID(ctx, loan.BorrowerID)
	if err != nil {
		return nil, nil, lookupError(err, customError.WrapBorrowerNotFound(loan.BorrowerID.String()))
	}

	balance, err := ApplyCollection(*loan, request.Amount)
	if err != nil {
		return nil, nil, err
	}

	installment, expected, balanceAmount := installmentFor(*loan, request.Amount)

	seq, err := s.Sequences.Next(ctx, seqCollection)
	if err != nil {
		return nil, nil, customError.WrapStoreError(err)
	}

	payDate := request.PayDate
	if payDate.IsZero() {
		payDate = request.CollectionDate
	}

	collection := &domain.Collection{
		ID:                uuid.New(),
		CollectionNumber:  fmt.Sprintf("%s%05d", s.config.Numbering.CollectionPrefix, seq),
		LoanID:            loan.ID,
		LoanNumber:        loan.LoanNumber,
		BorrowerID:        borrower.ID,
		BorrowerName:      borrower.FullName,
		BorrowerPhone:     borrower.Phone,
		CollectionDate:    request.CollectionDate,
		PayDate:           payDate,
		InstallmentNumber: installment,
		ExpectedAmount:    expected,
		CollectedAmount:   request.Amount,
		BalanceAmount:     balanceAmount,
		PaymentMode:       request.PaymentMode,
		AgentID:           agent.ID,
		AgentName:         agent.FullName,
		Remarks:           request.Remarks,
		CreatedAt:         s.now(),
	}

	updated := *loan
	updated.TotalPaid = balance.TotalPaid
	updated.RemainingBalance = balance.RemainingBalance
	updated.Status = balance.Status

	if err := s.CollectionRepo.Create(ctx, collection); err != nil {
		return nil, nil, customError.WrapStoreError(err)
	}
	if err := s.LoanRepo.Update(ctx, &updated); err != nil {
		return nil, nil, customError.WrapStoreError(err)
	}

	entry := s.logger.WithFields(logrus.Fields{
		"collection_number": collection.CollectionNumber,
		"loan_number":       loan.LoanNumber,
		"amount":            request.Amount.StringFixed(2),
		"remaining":         updated.RemainingBalance.StringFixed(2),
		"installment":       installment,
	})
	entry.Info("collection posted")
	if updated.Status != loan.Status {
		entry.WithField("status", updated.Status).Info("loan closed by collection")
	}

	return collection, &updated, nil
}

// ListCollections returns the whole ledger in posting order
func (s *PortfolioService) ListCollections(ctx context.Context) ([]*domain.Collection, error) {
	collections, err := s.CollectionRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}
	return collections, nil
}

// CollectionsForLoan returns the collections posted against one loan
func (s *PortfolioService) CollectionsForLoan(ctx context.Context, loanID uuid.UUID) ([]*domain.Collection, error) {
	if _, err := s.GetLoan(ctx, loanID); err != nil {
		return nil, err
	}

	collections, err := s.CollectionRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}
	return collections, nil
}

// CloseLoan forces a loan closed regardless of its balance
func (s *PortfolioService) CloseLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	unlock := s.loanLocks.Lock(loanID)
	defer unlock()

	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.Status == domain.LoanStatusClosed {
		return loan, nil
	}

	updated := *loan
	updated.Status = domain.LoanStatusClosed
	if err := s.LoanRepo.Update(ctx, &updated); err != nil {
		return nil, customError.WrapStoreError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"loan_number":     loan.LoanNumber,
		"previous_status": loan.Status,
		"remaining":       loan.RemainingBalance.StringFixed(2),
	}).Info("loan closed manually")

	return &updated, nil
}

// GetStats computes the dashboard snapshot as of asOf
func (s *PortfolioService) GetStats(ctx context.Context, asOf time.Time) (domain.DashboardStats, error) {
	borrowers, err := s.BorrowerRepo.List(ctx)
	if err != nil {
		return domain.DashboardStats{}, customError.WrapStoreError(err)
	}
	loans, err := s.LoanRepo.List(ctx)
	if err != nil {
		return domain.DashboardStats{}, customError.WrapStoreError(err)
	}
	collections, err := s.CollectionRepo.List(ctx)
	if err != nil {
		return domain.DashboardStats{}, customError.WrapStoreError(err)
	}

	return ComputeStats(borrowers, loans, collections, asOf), nil
}

// AgentSummaries returns per-agent workload figures
func (s *PortfolioService) AgentSummaries(ctx context.Context) ([]domain.AgentSummary, error) {
	staff, err := s.StaffRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}
	loans, err := s.LoanRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}
	collections, err := s.CollectionRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}

	return AgentSummaries(staff, loans, collections), nil
}

// Reconcile checks the cached balance of a loan against its collection
// ledger. A mismatch returns the report together with ErrLedgerMismatch.
func (s *PortfolioService) Reconcile(ctx context.Context, loanID uuid.UUID) (*domain.ReconciliationReport, error) {
	unlock := s.loanLocks.Lock(loanID)
	defer unlock()

	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	collections, err := s.CollectionRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapStoreError(err)
	}

	ledgerTotal := decimal.Zero
	for _, c := range collections {
		ledgerTotal = ledgerTotal.Add(c.CollectedAmount)
	}

	report := &domain.ReconciliationReport{
		LoanID:            loan.ID,
		LoanNumber:        loan.LoanNumber,
		CollectionCount:   len(collections),
		LedgerTotal:       ledgerTotal,
		CachedTotalPaid:   loan.TotalPaid,
		ExpectedRemaining: loan.TotalAmount.Sub(loan.TotalPaid),
		CachedRemaining:   loan.RemainingBalance,
	}

	if !report.Balanced() {
		s.logger.WithFields(logrus.Fields{
			"loan_number":  loan.LoanNumber,
			"ledger_total": ledgerTotal.StringFixed(2),
			"total_paid":   loan.TotalPaid.StringFixed(2),
		}).Warn("ledger mismatch")
		return report, customError.WrapLedgerMismatch(loan.LoanNumber, ledgerTotal.StringFixed(2), loan.TotalPaid.StringFixed(2))
	}

	return report, nil
}

func (s *PortfolioService) getAgent(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	staff, err := s.StaffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, customError.WrapAgentNotFound(id.String()))
	}
	if !staff.IsAgent() {
		return nil, customError.WrapAgentNotFound(id.String())
	}
	return staff, nil
}

// lookupError maps a missing record to notFound and anything else to a
// store error.
func lookupError(err error, notFound *customError.BusinessError) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return customError.WrapStoreError(err)
}

// keyedMutex serialises work per key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (k *keyedMutex) Lock(key uuid.UUID) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
