// Package libraryservice holds the book, loan, post and review services. Each validates
// its entity, retries a retryable storage failure once and turns missing rows into
// sentinel errors.
package libraryservice

import (
	"context"
	"fmt"
	"io"

	"github.com/haguru/elibrary/internal/dberrors"
	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/internal/models"
	"github.com/haguru/elibrary/internal/validation"
	"github.com/haguru/elibrary/pkg/helper"
)

type BookService struct {
	BookRepo interfaces.BookRepository
	Covers   interfaces.CoverStore
	Logger   interfaces.Logger
}

var _ interfaces.BookService = (*BookService)(nil)

func NewBookService(repo interfaces.BookRepository, covers interfaces.CoverStore, logger interfaces.Logger) *BookService {
	return &BookService{BookRepo: repo, Covers: covers, Logger: logger}
}

// AddBook validates book, stores it and returns it with its new id. When the insert
// fails the cover at book.ImagePath is removed.
func (s *BookService) AddBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "title", book.Title)
	defer s.Logger.Debug("Exiting function", "func", funcName, "title", book.Title)

	if err := validation.BookSchema.Check(book); err != nil {
		s.Logger.Warn("book validation failed", "func", funcName, "error", err)
		return nil, err
	}

	id, err := dberrors.RetryOnDeadlock(ctx, func(ctx context.Context) (int64, error) {
		return s.BookRepo.AddBook(ctx, book)
	})
	if err != nil {
		s.Logger.Error(ErrFailedToAddBook, "func", funcName, "title", book.Title, "error", err)
		if delErr := s.Covers.Delete(ctx, book.ImagePath); delErr != nil {
			s.Logger.Warn("failed to delete orphaned cover", "func", funcName, "path", book.ImagePath, "error", delErr)
		}
		return nil, fmt.Errorf("%s: %w", ErrFailedToAddBook, err)
	}
	book.ID = id

	s.Logger.Info("Book added", "func", funcName, "ID", id, "title", book.Title)
	return book, nil
}

// SaveCover stores an uploaded cover image and returns the path to record on the book.
func (s *BookService) SaveCover(ctx context.Context, originalName string, content io.Reader) (string, error) {
	path, err := s.Covers.Save(ctx, originalName, content)
	if err != nil {
		s.Logger.Warn(ErrFailedToSaveCover, "file", originalName, "error", err)
		return "", fmt.Errorf("%s: %w", ErrFailedToSaveCover, err)
	}
	return path, nil
}

func (s *BookService) GetAllBooks(ctx context.Context) ([]*models.Book, error) {
	books, err := dberrors.RetryOnce(ctx, s.BookRepo.GetAllBooks)
	if err != nil {
		s.Logger.Error(ErrRetrievingBook, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingBook, err)
	}
	return books, nil
}

// GetBookByID returns the book with id or ErrBookNotFound.
func (s *BookService) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	if id <= 0 {
		return nil, ErrInvalidBookID
	}
	book, err := dberrors.RetryOnce(ctx, func(ctx context.Context) (*models.Book, error) {
		return s.BookRepo.GetBookByID(ctx, id)
	})
	if err != nil {
		s.Logger.Error(ErrRetrievingBook, "ID", id, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingBook, err)
	}
	if book == nil {
		s.Logger.Warn("book not found", "ID", id)
		return nil, ErrBookNotFound
	}
	return book, nil
}

// CoverDataURI returns the cover of book as a data URI, or ImageNotFound when it cannot
// be read.
func (s *BookService) CoverDataURI(ctx context.Context, book *models.Book) string {
	uri, err := s.Covers.DataURI(ctx, book.ImagePath)
	if err != nil {
		s.Logger.Warn("cover not readable", "ID", book.ID, "path", book.ImagePath, "error", err)
		return ImageNotFound
	}
	return uri
}

// UpdateBook replaces the descriptive fields of an existing book. The stored cover, rating
// and review count are kept whatever book carries.
func (s *BookService) UpdateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "ID", book.ID)
	defer s.Logger.Debug("Exiting function", "func", funcName, "ID", book.ID)

	if book.ID <= 0 {
		return nil, ErrInvalidBookID
	}

	existing, err := dberrors.RetryOnce(ctx, func(ctx context.Context) (*models.Book, error) {
		return s.BookRepo.GetBookByID(ctx, book.ID)
	})
	if err != nil {
		s.Logger.Error(ErrRetrievingBook, "func", funcName, "ID", book.ID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingBook, err)
	}
	if existing == nil {
		s.Logger.Warn("book does not exist", "func", funcName, "ID", book.ID)
		return nil, ErrBookDoesNotExist
	}

	book.ImagePath = existing.ImagePath
	if err := validation.BookSchema.Check(book); err != nil {
		return nil, err
	}
	book.AverageRating = existing.AverageRating
	book.TotalReviews = existing.TotalReviews
	book.CreatedAt = existing.CreatedAt

	matched, err := dberrors.RetryOnce(ctx, func(ctx context.Context) (int64, error) {
		return s.BookRepo.UpdateBook(ctx, book)
	})
	if err != nil {
		s.Logger.Error(ErrFailedToUpdateBook, "func", funcName, "ID", book.ID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToUpdateBook, err)
	}
	if matched == 0 {
		return nil, ErrBookDoesNotExist
	}

	s.Logger.Info("Book updated", "func", funcName, "ID", book.ID)
	return book, nil
}

// DeleteBook removes the book with id and then its cover.
func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "ID", id)
	defer s.Logger.Debug("Exiting function", "func", funcName, "ID", id)

	if id <= 0 {
		return ErrInvalidBookID
	}

	existing, err := dberrors.RetryOnce(ctx, func(ctx context.Context) (*models.Book, error) {
		return s.BookRepo.GetBookByID(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrRetrievingBook, err)
	}
	if existing == nil {
		return ErrBookDoesNotExist
	}

	deleted, err := dberrors.RetryOnce(ctx, func(ctx context.Context) (int64, error) {
		return s.BookRepo.DeleteBook(ctx, id)
	})
	if err != nil {
		s.Logger.Error(ErrFailedToDeleteBook, "func", funcName, "ID", id, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToDeleteBook, err)
	}
	if deleted == 0 {
		return ErrBookDoesNotExist
	}

	if err := s.Covers.Delete(ctx, existing.ImagePath); err != nil {
		s.Logger.Warn("failed to delete cover", "func", funcName, "ID", id, "path", existing.ImagePath, "error", err)
	}
	s.Logger.Info("Book deleted", "func", funcName, "ID", id)
	return nil
}
