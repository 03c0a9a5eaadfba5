package interfaces

import (
	"context"

	"github.com/haguru/elibrary/internal/models"
)

// UserRepository defines the contract for storing and retrieving User data.
// Lookups return a nil user and a nil error when nothing matches.
type UserRepository interface {
	AddUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	// SetRatings stores both rating counters of user id and returns the matched count.
	SetRatings(ctx context.Context, id int64, positive, negative int) (int64, error)
	EnsureIndices(ctx context.Context) error
	Close(ctx context.Context) error
}

// BookRepository stores books. Update and delete return the affected row count.
type BookRepository interface {
	AddBook(ctx context.Context, book *models.Book) (int64, error)
	GetAllBooks(ctx context.Context) ([]*models.Book, error)
	GetBookByID(ctx context.Context, id int64) (*models.Book, error)
	UpdateBook(ctx context.Context, book *models.Book) (int64, error)
	DeleteBook(ctx context.Context, id int64) (int64, error)
	EnsureSchema(ctx context.Context) error
}

// LoanRepository stores loans.
type LoanRepository interface {
	AddLoan(ctx context.Context, loan *models.Loan) (int64, error)
	GetAllLoans(ctx context.Context) ([]*models.Loan, error)
	GetLoanByID(ctx context.Context, id int64) (*models.Loan, error)
	UpdateLoan(ctx context.Context, loan *models.Loan) (int64, error)
	DeleteLoan(ctx context.Context, id int64) (int64, error)
	EnsureSchema(ctx context.Context) error
}

// PostRepository stores posts. GetAllPosts returns the newest first.
type PostRepository interface {
	AddPost(ctx context.Context, post *models.Post) (int64, error)
	GetAllPosts(ctx context.Context) ([]*models.Post, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) (int64, error)
	EnsureSchema(ctx context.Context) error
}

// ReviewRepository stores reviews.
type ReviewRepository interface {
	AddReview(ctx context.Context, review *models.Review) (int64, error)
	GetAllReviews(ctx context.Context) ([]*models.Review, error)
	GetReviewByID(ctx context.Context, id int64) (*models.Review, error)
	UpdateReview(ctx context.Context, review *models.Review) (int64, error)
	DeleteReview(ctx context.Context, id int64) (int64, error)
	EnsureSchema(ctx context.Context) error
}
