package libraryservice

import (
	"context"
	"fmt"

	"github.com/haguru/elibrary/internal/dberrors"
	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/internal/models"
	"github.com/haguru/elibrary/internal/validation"
	"github.com/haguru/elibrary/pkg/helper"
)

type LoanService struct {
	LoanRepo interfaces.LoanRepository
	Logger   interfaces.Logger
}

var _ interfaces.LoanService = (*LoanService)(nil)

func NewLoanService(repo interfaces.LoanRepository, logger interfaces.Logger) *LoanService {
	return &LoanService{LoanRepo: repo, Logger: logger}
}

// CreateLoan stores loan. Its user and book are checked by the store's foreign keys.
func (s *LoanService) CreateLoan(ctx context.Context, loan *models.Loan) (*models.Loan, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", loan.UserID, "book", loan.BookID)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	if err := validation.LoanSchema.Check(loan); err != nil {
		return nil, err
	}

	id, err := dberrors.RetryOnDeadlock(ctx, func(ctx context.Context) (int64, error) {
		return s.LoanRepo.AddLoan(ctx, loan)
	})
	if err != nil {
		s.Logger.Error(ErrFailedToSaveLoan, "func", funcName, "user", loan.UserID, "book", loan.BookID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToSaveLoan, err)
	}
	loan.ID = id

	s.Logger.Info("Loan created", "func", funcName, "ID", id, "user", loan.UserID, "book", loan.BookID)
	return loan, nil
}

func (s *LoanService) GetAllLoans(ctx context.Context) ([]*models.Loan, error) {
	loans, err := dberrors.RetryOnce(ctx, s.LoanRepo.GetAllLoans)
	if err != nil {
		s.Logger.Error(ErrRetrievingLoan, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingLoan, err)
	}
	return loans, nil
}

func (s *LoanService) GetLoanByID(ctx context.Context, id int64) (*models.Loan, error) {
	if id <= 0 {
		return nil, ErrInvalidLoanID
	}
	loan, err := dberrors.RetryOnce(ctx, func(ctx context.Context) (*models.Loan, error) {
		return s.LoanRepo.GetLoanByID(ctx, id)
	})
	if err != nil {
		s.Logger.Error(ErrRetrievingLoan, "ID", id, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingLoan, err)
	}
	if loan == nil {
		return nil, ErrLoanNotFound
	}
	return loan, nil
}

func (s *LoanService) UpdateLoan(ctx context.Context, loan *models.Loan) (*models.Loan, error) {
	if loan.ID <= 0 {
		return nil, ErrInvalidLoanID
	}
	if err := validation.LoanSchema.Check(loan); err != nil {
		return nil, err
	}

	matched, err := dberrors.RetryOnce(ctx, func(ctx context.Context) (int64, error) {
		return s.LoanRepo.UpdateLoan(ctx, loan)
	})
	if err != nil {
		s.Logger.Error(ErrFailedToSaveLoan, "ID", loan.ID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToSaveLoan, err)
	}
	if matched == 0 {
		return nil, ErrLoanNotFound
	}
	s.Logger.Info("Loan updated", "ID", loan.ID)
	return loan, nil
}

func (s *LoanService) DeleteLoan(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidLoanID
	}
	return deleteByID(ctx, s.Logger, id, s.LoanRepo.DeleteLoan, ErrLoanNotFound, "Loan deleted")
}

// deleteByID runs del once more on a retryable failure and maps zero deleted rows to
// notFound.
func deleteByID(ctx context.Context, logger interfaces.Logger, id int64, del func(context.Context, int64) (int64, error), notFound error, done string) error {
	deleted, err := dberrors.RetryOnce(ctx, func(ctx context.Context) (int64, error) {
		return del(ctx, id)
	})
	if err != nil {
		logger.Error("delete failed", "ID", id, "error", err)
		return fmt.Errorf("delete %d: %w", id, err)
	}
	if deleted == 0 {
		return notFound
	}
	logger.Info(done, "ID", id)
	return nil
}
