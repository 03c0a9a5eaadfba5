package interfaces

import (
	"context"
	"io"

	"github.com/haguru/elibrary/internal/models"
)

// UserService registers and authenticates library members.
type UserService interface {
	Register(ctx context.Context, user *models.User) (int64, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateRating(ctx context.Context, id int64, positive, increment bool) (*models.User, error)
}

// BookService manages the catalog and its cover images.
type BookService interface {
	AddBook(ctx context.Context, book *models.Book) (*models.Book, error)
	SaveCover(ctx context.Context, originalName string, content io.Reader) (string, error)
	GetAllBooks(ctx context.Context) ([]*models.Book, error)
	GetBookByID(ctx context.Context, id int64) (*models.Book, error)
	CoverDataURI(ctx context.Context, book *models.Book) string
	UpdateBook(ctx context.Context, book *models.Book) (*models.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

// LoanService manages loans.
type LoanService interface {
	CreateLoan(ctx context.Context, loan *models.Loan) (*models.Loan, error)
	GetAllLoans(ctx context.Context) ([]*models.Loan, error)
	GetLoanByID(ctx context.Context, id int64) (*models.Loan, error)
	UpdateLoan(ctx context.Context, loan *models.Loan) (*models.Loan, error)
	DeleteLoan(ctx context.Context, id int64) error
}

// PostService manages posts.
type PostService interface {
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]*models.Post, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

// ReviewService manages reviews.
type ReviewService interface {
	AddReview(ctx context.Context, review *models.Review) (*models.Review, error)
	GetAllReviews(ctx context.Context) ([]*models.Review, error)
	GetReviewByID(ctx context.Context, id int64) (*models.Review, error)
	UpdateReview(ctx context.Context, review *models.Review) (*models.Review, error)
	DeleteReview(ctx context.Context, id int64) error
}
