package libraryservice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/haguru/elibrary/internal/dberrors"
	"github.com/haguru/elibrary/internal/interfaces/mocks"
	"github.com/haguru/elibrary/internal/models"
	"github.com/haguru/elibrary/internal/validation"
	"github.com/haguru/elibrary/pkg/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBookService(t *testing.T) (*BookService, *mocks.MockBookRepository, *mocks.MockCoverStore) {
	t.Helper()
	repo := mocks.NewMockBookRepository(t)
	covers := mocks.NewMockCoverStore(t)
	return NewBookService(repo, covers, zerolog.NewNopLogger()), repo, covers
}

func validBook() *models.Book {
	return &models.Book{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Genre:       "Science Fiction",
		Description: "Spice.",
		ImagePath:   "images/dune.png",
	}
}

func TestAddBook(t *testing.T) {
	tests := []struct {
		name     string
		book     func() *models.Book
		results  []error
		wantID   int64
		wantMsgs []string
		wantKind dberrors.Kind
	}{
		{
			name:    "stored",
			book:    validBook,
			results: []error{nil},
			wantID:  9,
		},
		{
			name: "missing title and bad rating",
			book: func() *models.Book {
				b := validBook()
				b.Title = "  "
				b.AverageRating = 6
				return b
			},
			wantMsgs: []string{"title is required.", "Average Rating must be between 0 and 5."},
		},
		{
			name:    "deadlock retried once",
			book:    validBook,
			results: []error{dberrors.Translate("book", dberrors.OpInsert, dberrors.CodeDeadlock, nil), nil},
			wantID:  9,
		},
		{
			name:     "bad string value",
			book:     validBook,
			results:  []error{dberrors.Translate("book", dberrors.OpInsert, dberrors.CodeBadStringValue, nil)},
			wantKind: dberrors.ConstraintViolation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, covers := newBookService(t)
			for _, result := range tt.results {
				var id int64
				if result == nil {
					id = 9
				}
				repo.On("AddBook", mock.Anything, mock.AnythingOfType("*models.Book")).Return(id, result).Once()
			}
			if tt.wantKind != dberrors.Unknown {
				covers.On("Delete", mock.Anything, "images/dune.png").Return(nil).Once()
			}

			got, err := svc.AddBook(context.Background(), tt.book())
			switch {
			case tt.wantMsgs != nil:
				var verr *validation.Error
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantMsgs, verr.Messages)
			case tt.wantKind != dberrors.Unknown:
				assert.Equal(t, tt.wantKind, dberrors.KindOf(err))
				assert.True(t, strings.HasPrefix(err.Error(), ErrFailedToAddBook))
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}

func TestGetBookByID(t *testing.T) {
	svc, repo, _ := newBookService(t)
	ctx := context.Background()

	_, err := svc.GetBookByID(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidBookID)

	repo.On("GetBookByID", mock.Anything, int64(2)).Return(nil, nil)
	_, err = svc.GetBookByID(ctx, 2)
	assert.ErrorIs(t, err, ErrBookNotFound)

	repo.On("GetBookByID", mock.Anything, int64(3)).Return(&models.Book{ID: 3, Title: "Emma"}, nil)
	book, err := svc.GetBookByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Emma", book.Title)
}

func TestGetAllBooks_Failure(t *testing.T) {
	svc, repo, _ := newBookService(t)
	denied := dberrors.Translate("book", dberrors.OpSelect, dberrors.CodeAccessDenied, nil)
	repo.On("GetAllBooks", mock.Anything).Return(nil, denied).Once()

	_, err := svc.GetAllBooks(context.Background())
	assert.ErrorIs(t, err, denied)
}

func TestCoverDataURI(t *testing.T) {
	svc, _, covers := newBookService(t)
	ctx := context.Background()

	covers.On("DataURI", mock.Anything, "images/a.png").Return("data:image/png;base64,AA==", nil)
	covers.On("DataURI", mock.Anything, "images/gone.png").Return("", errors.New("no such file"))

	assert.Equal(t, "data:image/png;base64,AA==", svc.CoverDataURI(ctx, &models.Book{ImagePath: "images/a.png"}))
	assert.Equal(t, ImageNotFound, svc.CoverDataURI(ctx, &models.Book{ImagePath: "images/gone.png"}))
}

func TestSaveCover_Failure(t *testing.T) {
	svc, _, covers := newBookService(t)
	covers.On("Save", mock.Anything, "notes.txt", mock.Anything).Return("", errors.New("not an image"))

	_, err := svc.SaveCover(context.Background(), "notes.txt", strings.NewReader("hello"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrFailedToSaveCover)
}

func TestUpdateBook(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	existing := &models.Book{
		ID: 4, Title: "Old", Author: "A", Genre: "G", Description: "D",
		ImagePath: "images/old.png", AverageRating: 4.5, TotalReviews: 8, CreatedAt: created,
	}

	t.Run("keeps cover and counters", func(t *testing.T) {
		svc, repo, _ := newBookService(t)
		repo.On("GetBookByID", mock.Anything, int64(4)).Return(existing, nil)
		repo.On("UpdateBook", mock.Anything, mock.AnythingOfType("*models.Book")).Return(int64(1), nil)

		update := validBook()
		update.ID = 4
		update.ImagePath = ""
		update.AverageRating = 1

		got, err := svc.UpdateBook(context.Background(), update)
		require.NoError(t, err)
		assert.Equal(t, "images/old.png", got.ImagePath)
		assert.Equal(t, 4.5, got.AverageRating)
		assert.Equal(t, 8, got.TotalReviews)
		assert.Equal(t, created, got.CreatedAt)
		assert.Equal(t, "Dune", got.Title)
	})

	t.Run("ignores a cover path from the request", func(t *testing.T) {
		svc, repo, _ := newBookService(t)
		repo.On("GetBookByID", mock.Anything, int64(4)).Return(existing, nil)
		repo.On("UpdateBook", mock.Anything, mock.MatchedBy(func(b *models.Book) bool {
			return b.ImagePath == "images/old.png"
		})).Return(int64(1), nil).Once()

		update := validBook()
		update.ID = 4
		update.ImagePath = "images/someone-else.png"

		got, err := svc.UpdateBook(context.Background(), update)
		require.NoError(t, err)
		assert.Equal(t, "images/old.png", got.ImagePath)
	})

	t.Run("missing book", func(t *testing.T) {
		svc, repo, _ := newBookService(t)
		repo.On("GetBookByID", mock.Anything, int64(5)).Return(nil, nil)

		update := validBook()
		update.ID = 5
		_, err := svc.UpdateBook(context.Background(), update)
		assert.ErrorIs(t, err, ErrBookDoesNotExist)
	})

	t.Run("removed concurrently", func(t *testing.T) {
		svc, repo, _ := newBookService(t)
		repo.On("GetBookByID", mock.Anything, int64(4)).Return(existing, nil)
		repo.On("UpdateBook", mock.Anything, mock.Anything).Return(int64(0), nil)

		update := validBook()
		update.ID = 4
		_, err := svc.UpdateBook(context.Background(), update)
		assert.ErrorIs(t, err, ErrBookDoesNotExist)
	})

	t.Run("invalid fields", func(t *testing.T) {
		svc, repo, _ := newBookService(t)
		repo.On("GetBookByID", mock.Anything, int64(4)).Return(existing, nil)

		_, err := svc.UpdateBook(context.Background(), &models.Book{ID: 4})
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"title is required.", "author is required.", "genre is required.", "description is required."}, verr.Messages)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc, _, _ := newBookService(t)
		_, err := svc.UpdateBook(context.Background(), validBook())
		assert.ErrorIs(t, err, ErrInvalidBookID)
	})
}

func TestDeleteBook(t *testing.T) {
	t.Run("removes row then cover", func(t *testing.T) {
		svc, repo, covers := newBookService(t)
		repo.On("GetBookByID", mock.Anything, int64(6)).Return(&models.Book{ID: 6, ImagePath: "images/six.png"}, nil)
		repo.On("DeleteBook", mock.Anything, int64(6)).Return(int64(1), nil)
		covers.On("Delete", mock.Anything, "images/six.png").Return(nil)

		require.NoError(t, svc.DeleteBook(context.Background(), 6))
	})

	t.Run("cover failure is not fatal", func(t *testing.T) {
		svc, repo, covers := newBookService(t)
		repo.On("GetBookByID", mock.Anything, int64(6)).Return(&models.Book{ID: 6, ImagePath: "images/six.png"}, nil)
		repo.On("DeleteBook", mock.Anything, int64(6)).Return(int64(1), nil)
		covers.On("Delete", mock.Anything, "images/six.png").Return(errors.New("permission denied"))

		assert.NoError(t, svc.DeleteBook(context.Background(), 6))
	})

	t.Run("missing", func(t *testing.T) {
		svc, repo, _ := newBookService(t)
		repo.On("GetBookByID", mock.Anything, int64(7)).Return(nil, nil)

		assert.ErrorIs(t, svc.DeleteBook(context.Background(), 7), ErrBookDoesNotExist)
	})

	t.Run("still referenced", func(t *testing.T) {
		svc, repo, _ := newBookService(t)
		referenced := dberrors.Translate("book", dberrors.OpDelete, dberrors.CodeForeignKeyParent, nil)
		repo.On("GetBookByID", mock.Anything, int64(8)).Return(&models.Book{ID: 8}, nil)
		repo.On("DeleteBook", mock.Anything, int64(8)).Return(int64(0), referenced)

		err := svc.DeleteBook(context.Background(), 8)
		assert.ErrorIs(t, err, referenced)
	})
}
