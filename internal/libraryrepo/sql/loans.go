package sql

import (
	"context"

	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/internal/libraryrepo/constants"
	"github.com/haguru/elibrary/internal/models"
)

// LoanRepository implements interfaces.LoanRepository.
type LoanRepository struct {
	store
}

var _ interfaces.LoanRepository = (*LoanRepository)(nil)

func NewLoanRepository(dbClient interfaces.DBClient, opts Options, logger interfaces.Logger) (*LoanRepository, error) {
	s, err := newStore(dbClient, opts, logger, constants.LoansTable, constants.LoanEntity)
	if err != nil {
		return nil, err
	}
	return &LoanRepository{store: s}, nil
}

func (r *LoanRepository) AddLoan(ctx context.Context, loan *models.Loan) (int64, error) {
	return r.insert(ctx, loanColumns(loan))
}

func (r *LoanRepository) GetAllLoans(ctx context.Context) ([]*models.Loan, error) {
	return findAll[models.Loan](ctx, r.store, &interfaces.FindOptions{SortBy: "id"})
}

func (r *LoanRepository) GetLoanByID(ctx context.Context, id int64) (*models.Loan, error) {
	return findByID[models.Loan](ctx, r.store, id)
}

func (r *LoanRepository) UpdateLoan(ctx context.Context, loan *models.Loan) (int64, error) {
	return r.updateByID(ctx, loan.ID, loanColumns(loan))
}

func (r *LoanRepository) DeleteLoan(ctx context.Context, id int64) (int64, error) {
	return r.deleteByID(ctx, id)
}

func (r *LoanRepository) EnsureSchema(ctx context.Context) error {
	return r.ensureSchema(ctx)
}

// loanColumns maps loan onto its columns. A nil ReturnDate is stored as NULL.
func loanColumns(loan *models.Loan) map[string]interface{} {
	return map[string]interface{}{
		"user_id":     loan.UserID,
		"book_id":     loan.BookID,
		"loan_date":   loan.LoanDate,
		"return_date": loan.ReturnDate,
		"due_date":    loan.DueDate,
		"is_extended": loan.IsExtended,
	}
}
