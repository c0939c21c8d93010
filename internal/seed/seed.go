// Package seed loads the demo book used when the engine starts empty.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/microfinance-engine/internal/domain"
)

// Engine is the subset of the portfolio service the seed needs.
type Engine interface {
	CreateLoanType(ctx context.Context, request *domain.CreateLoanTypeRequest) (*domain.LoanType, error)
	RegisterBorrower(ctx context.Context, request *domain.RegisterBorrowerRequest) (*domain.Borrower, error)
	AddStaff(ctx context.Context, request *domain.AddStaffRequest) (*domain.Staff, error)
	CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error)
	PostCollection(ctx context.Context, request *domain.PostCollectionRequest) (*domain.Collection, *domain.Loan, error)
}

// Book is everything Load created, in creation order.
type Book struct {
	LoanTypes   []*domain.LoanType
	Borrowers   []*domain.Borrower
	Staff       []*domain.Staff
	Loans       []*domain.Loan
	Collections []*domain.Collection
}

const createdBy = "admin"

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var loanTypes = []domain.CreateLoanTypeRequest{
	{
		Name:               "Business Loan",
		Description:        "Short-term working capital for small businesses",
		InterestRate:       decimal.NewFromInt(18),
		MinAmount:          decimal.NewFromInt(10000),
		MaxAmount:          decimal.NewFromInt(500000),
		MinTenure:          3,
		MaxTenure:          24,
		RepaymentFrequency: domain.FrequencyMonthly,
		ProcessingFee:      decimal.NewFromInt(2),
	},
	{
		Name:               "Daily Collection Loan",
		Description:        "Daily repayment micro loans for vendors",
		InterestRate:       decimal.NewFromInt(24),
		MinAmount:          decimal.NewFromInt(5000),
		MaxAmount:          decimal.NewFromInt(100000),
		MinTenure:          30,
		MaxTenure:          100,
		RepaymentFrequency: domain.FrequencyDaily,
		ProcessingFee:      decimal.RequireFromString("1.5"),
	},
	{
		Name:               "Weekly Loan",
		Description:        "Weekly repayment loans for regular earners",
		InterestRate:       decimal.NewFromInt(20),
		MinAmount:          decimal.NewFromInt(10000),
		MaxAmount:          decimal.NewFromInt(200000),
		MinTenure:          12,
		MaxTenure:          52,
		RepaymentFrequency: domain.FrequencyWeekly,
		ProcessingFee:      decimal.RequireFromString("1.5"),
	},
}

var borrowers = []domain.RegisterBorrowerRequest{
	{
		FullName:    "Prakash Sharma",
		DisplayName: "Prakash",
		Gender:      domain.GenderMale,
		Phone:       "9876543214",
		Email:       "prakash@email.com",
		GovtID:      "1234-5678-9012",
		TaxID:       "33BMQPR2946K1ZF",
		Address:     "155, Nehru Nagar, Main Road",
		City:        "Madurai",
		State:       "Tamil Nadu",
		PinCode:     "625850",
		CreatedBy:   createdBy,
	},
	{
		FullName:    "Hanisha Enterprises",
		DisplayName: "Hanisha",
		Gender:      domain.GenderOther,
		Phone:       "9876543215",
		GovtID:      "9876-5432-1098",
		TaxID:       "33BRJPK9386C1ZK",
		Address:     "No.24, Vaniyambadi Taluk, Chinnavarikam Village",
		City:        "Vellore",
		State:       "Tamil Nadu",
		PinCode:     "600007",
		CreatedBy:   createdBy,
	},
	{
		FullName:    "Sri Sai Traders",
		DisplayName: "Sri Sai",
		Gender:      domain.GenderOther,
		Phone:       "9876543220",
		GovtID:      "5555-6666-7777",
		TaxID:       "33BMQPR2946K1ZF",
		Address:     "46, NEEK Main Road, Sholavandhan",
		City:        "Madurai",
		State:       "Tamil Nadu",
		PinCode:     "625214",
		CreatedBy:   createdBy,
	},
}

var staff = []domain.AddStaffRequest{
	{FullName: "Ravi Kumar", Role: domain.StaffRoleStaff, Phone: "9876543211", Email: "ravi@microfinance.com", Address: "Chennai", JoiningDate: day(2024, 1, 15)},
	{FullName: "Priya Devi", Role: domain.StaffRoleStaff, Phone: "9876543221", Email: "priya@microfinance.com", Address: "Chennai", JoiningDate: day(2024, 2, 20)},
	{FullName: "Kumar S", Role: domain.StaffRoleStaff, Phone: "9876543222", Email: "kumar@microfinance.com", Address: "Madurai", JoiningDate: day(2024, 3, 10)},
	{FullName: "Lakshmi R", Role: domain.StaffRoleStaff, Phone: "9876543223", Email: "lakshmi@microfinance.com", Address: "Coimbatore", JoiningDate: day(2024, 4, 1)},
	{FullName: "Venkat P", Role: domain.StaffRoleStaff, Phone: "9876543224", Email: "venkat@microfinance.com", Address: "Salem", JoiningDate: day(2024, 5, 15)},
	{FullName: "Suresh Patel", Role: domain.StaffRoleAgent, Phone: "9876543212", Email: "suresh@microfinance.com", Address: "Chennai", JoiningDate: day(2024, 1, 20)},
	{FullName: "Ramesh K", Role: domain.StaffRoleAgent, Phone: "9876543213", Email: "ramesh@microfinance.com", Address: "Madurai", JoiningDate: day(2024, 2, 1)},
	{FullName: "Ganesh M", Role: domain.StaffRoleAgent, Phone: "9876543225", Email: "ganesh@microfinance.com", Address: "Trichy", JoiningDate: day(2024, 2, 15)},
	{FullName: "Murugan S", Role: domain.StaffRoleAgent, Phone: "9876543226", Email: "murugan@microfinance.com", Address: "Salem", JoiningDate: day(2024, 3, 1)},
	{FullName: "Karthik R", Role: domain.StaffRoleAgent, Phone: "9876543227", Email: "karthik@microfinance.com", Address: "Coimbatore", JoiningDate: day(2024, 3, 15)},
	{FullName: "Selvam P", Role: domain.StaffRoleAgent, Phone: "9876543228", Email: "selvam@microfinance.com", Address: "Erode", JoiningDate: day(2024, 4, 1)},
	{FullName: "Vijay K", Role: domain.StaffRoleAgent, Phone: "9876543229", Email: "vijay@microfinance.com", Address: "Tirunelveli", JoiningDate: day(2024, 4, 15)},
	{FullName: "Arjun M", Role: domain.StaffRoleAgent, Phone: "9876543230", Email: "arjun@microfinance.com", Address: "Vellore", JoiningDate: day(2024, 5, 1)},
	{FullName: "Deepak S", Role: domain.StaffRoleAgent, Phone: "9876543231", Email: "deepak@microfinance.com", Address: "Thanjavur", JoiningDate: day(2024, 5, 15)},
	{FullName: "Manoj R", Role: domain.StaffRoleAgent, Phone: "9876543232", Email: "manoj@microfinance.com", Address: "Dindigul", JoiningDate: day(2024, 6, 1)},
}

// Load registers the demo book through the engine's public operations, so
// every derived figure is computed rather than copied. It must run against
// an empty engine.
func Load(ctx context.Context, engine Engine) (*Book, error) {
	book := &Book{}

	for i := range loanTypes {
		lt, err := engine.CreateLoanType(ctx, &loanTypes[i])
		if err != nil {
			return nil, fmt.Errorf("seed loan type %q: %w", loanTypes[i].Name, err)
		}
		book.LoanTypes = append(book.LoanTypes, lt)
	}

	for i := range borrowers {
		b, err := engine.RegisterBorrower(ctx, &borrowers[i])
		if err != nil {
			return nil, fmt.Errorf("seed borrower %q: %w", borrowers[i].FullName, err)
		}
		book.Borrowers = append(book.Borrowers, b)
	}

	for i := range staff {
		s, err := engine.AddStaff(ctx, &staff[i])
		if err != nil {
			return nil, fmt.Errorf("seed staff %q: %w", staff[i].FullName, err)
		}
		book.Staff = append(book.Staff, s)
	}

	suresh, ramesh := book.Staff[5].ID, book.Staff[6].ID

	loans := []domain.CreateLoanRequest{
		{
			BorrowerID:       book.Borrowers[0].ID,
			LoanTypeID:       book.LoanTypes[1].ID,
			PrincipalAmount:  decimal.NewFromInt(70000),
			Tenure:           100,
			DisbursementDate: day(2025, 12, 16),
			AgentID:          agentRef(suresh),
			CreatedBy:        createdBy,
		},
		{
			BorrowerID:       book.Borrowers[1].ID,
			LoanTypeID:       book.LoanTypes[0].ID,
			PrincipalAmount:  decimal.NewFromInt(200000),
			Tenure:           12,
			DisbursementDate: day(2025, 11, 1),
			AgentID:          agentRef(ramesh),
			CreatedBy:        createdBy,
		},
	}

	for i := range loans {
		loan, err := engine.CreateLoan(ctx, &loans[i])
		if err != nil {
			return nil, fmt.Errorf("seed loan %d: %w", i+1, err)
		}
		book.Loans = append(book.Loans, loan)
	}

	collection, loan, err := engine.PostCollection(ctx, &domain.PostCollectionRequest{
		LoanID:         book.Loans[0].ID,
		Amount:         decimal.NewFromInt(840),
		CollectionDate: day(2025, 12, 17),
		PaymentMode:    domain.PaymentModeCash,
		AgentID:        suresh,
	})
	if err != nil {
		return nil, fmt.Errorf("seed collection: %w", err)
	}
	book.Collections = append(book.Collections, collection)
	book.Loans[0] = loan

	return book, nil
}

func agentRef(id uuid.UUID) *uuid.UUID {
	return &id
}
