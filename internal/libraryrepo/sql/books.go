package sql

import (
	"context"
	"time"

	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/internal/libraryrepo/constants"
	"github.com/haguru/elibrary/internal/models"
)

// BookRepository implements interfaces.BookRepository.
type BookRepository struct {
	store
}

var _ interfaces.BookRepository = (*BookRepository)(nil)

func NewBookRepository(dbClient interfaces.DBClient, opts Options, logger interfaces.Logger) (*BookRepository, error) {
	s, err := newStore(dbClient, opts, logger, constants.BooksTable, constants.BookEntity)
	if err != nil {
		return nil, err
	}
	return &BookRepository{store: s}, nil
}

// AddBook inserts book and returns its id. CreatedAt is set when empty.
func (r *BookRepository) AddBook(ctx context.Context, book *models.Book) (int64, error) {
	if book.CreatedAt.IsZero() {
		book.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	doc := bookColumns(book)
	doc["created_at"] = book.CreatedAt
	return r.insert(ctx, doc)
}

func (r *BookRepository) GetAllBooks(ctx context.Context) ([]*models.Book, error) {
	return findAll[models.Book](ctx, r.store, &interfaces.FindOptions{SortBy: "id"})
}

func (r *BookRepository) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	return findByID[models.Book](ctx, r.store, id)
}

// UpdateBook writes every editable column of book and returns the matched row count.
func (r *BookRepository) UpdateBook(ctx context.Context, book *models.Book) (int64, error) {
	return r.updateByID(ctx, book.ID, bookColumns(book))
}

func (r *BookRepository) DeleteBook(ctx context.Context, id int64) (int64, error) {
	return r.deleteByID(ctx, id)
}

func (r *BookRepository) EnsureSchema(ctx context.Context) error {
	return r.ensureSchema(ctx)
}

func bookColumns(book *models.Book) map[string]interface{} {
	return map[string]interface{}{
		"title":          book.Title,
		"author":         book.Author,
		"genre":          book.Genre,
		"description":    book.Description,
		"image_path":     book.ImagePath,
		"average_rating": book.AverageRating,
		"total_reviews":  book.TotalReviews,
	}
}
