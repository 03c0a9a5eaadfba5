package sql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/haguru/elibrary/internal/dberrors"
	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/internal/interfaces/mocks"
	"github.com/haguru/elibrary/internal/models"
	"github.com/haguru/elibrary/pkg/databases/sqlclient"
	"github.com/haguru/elibrary/pkg/zerolog"
	"github.com/lib/pq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var mysqlOpts = Options{Dialect: sqlclient.MySQL, UserForeignKeys: true}

func TestCreateStatement(t *testing.T) {
	tests := []struct {
		name         string
		table        string
		opts         Options
		wantContains []string
		wantMissing  []string
		wantErr      bool
	}{
		{
			name:         "mysql loans with user keys",
			table:        "loans",
			opts:         mysqlOpts,
			wantContains: []string{"AUTO_INCREMENT", "FOREIGN KEY (user_id) REFERENCES users(id)", "FOREIGN KEY (book_id) REFERENCES books(id)", "ENGINE=InnoDB"},
		},
		{
			name:         "postgres loans without user keys",
			table:        "loans",
			opts:         Options{Dialect: sqlclient.Postgres},
			wantContains: []string{"BIGSERIAL", "FOREIGN KEY (book_id) REFERENCES books(id)"},
			wantMissing:  []string{"REFERENCES users", "ENGINE"},
		},
		{
			name:         "postgres books",
			table:        "books",
			opts:         Options{Dialect: sqlclient.Postgres, UserForeignKeys: true},
			wantContains: []string{"CREATE TABLE IF NOT EXISTS books (", "average_rating NUMERIC(3,2)"},
			wantMissing:  []string{"FOREIGN KEY"},
		},
		{name: "unknown table", table: "shelves", opts: mysqlOpts, wantErr: true},
		{name: "unknown dialect", table: "books", opts: Options{Dialect: "sqlite"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := createStatement(tt.table, tt.opts.Dialect, tt.opts.UserForeignKeys)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.wantContains {
				assert.Contains(t, stmt, s)
			}
			for _, s := range tt.wantMissing {
				assert.NotContains(t, stmt, s)
			}
		})
	}
}

func TestNewRepositories_Errors(t *testing.T) {
	logger := zerolog.NewNopLogger()

	_, err := NewBookRepository(nil, mysqlOpts, logger)
	assert.Error(t, err)
	_, err = NewLoanRepository(mocks.NewMockDBClient(t), Options{Dialect: "oracle"}, logger)
	assert.Error(t, err)
}

func TestBookRepository_AddBook(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	repo, err := NewBookRepository(db, mysqlOpts, zerolog.NewNopLogger())
	require.NoError(t, err)

	db.On("InsertOne", mock.Anything, "books", mock.MatchedBy(func(doc map[string]interface{}) bool {
		_, hasCreated := doc["created_at"]
		return doc["title"] == "Dune" && doc["image_path"] == "a.png" && hasCreated
	})).Return(int64(12), nil)

	id, err := repo.AddBook(context.Background(), &models.Book{Title: "Dune", ImagePath: "a.png"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
}

func TestBookRepository_GetAllBooks(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	repo, err := NewBookRepository(db, mysqlOpts, zerolog.NewNopLogger())
	require.NoError(t, err)

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	db.On("FindMany", mock.Anything, "books", map[string]interface{}{}, &interfaces.FindOptions{SortBy: "id"}).
		Return([]interfaces.Document{
			map[string]interface{}{
				"id": int64(1), "title": "Dune", "author": "Herbert", "genre": "SF",
				"description": "desert", "image_path": "a.png", "average_rating": "4.50",
				"total_reviews": int64(2), "created_at": created,
			},
		}, nil)

	books, err := repo.GetAllBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, 4.5, books[0].AverageRating)
	assert.Equal(t, 2, books[0].TotalReviews)
	assert.Equal(t, created, books[0].CreatedAt)
}

func TestBookRepository_GetBookByID(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	repo, err := NewBookRepository(db, mysqlOpts, zerolog.NewNopLogger())
	require.NoError(t, err)

	db.On("FindOne", mock.Anything, "books", map[string]interface{}{"id": int64(404)}, mock.Anything).Return(interfaces.ErrNoDocuments)
	db.On("FindOne", mock.Anything, "books", map[string]interface{}{"id": int64(500)}, mock.Anything).Return(&mysql.MySQLError{Number: 1146})

	book, err := repo.GetBookByID(context.Background(), 404)
	assert.NoError(t, err)
	assert.Nil(t, book)

	_, err = repo.GetBookByID(context.Background(), 500)
	assert.Equal(t, dberrors.SchemaMissing, dberrors.KindOf(err))
}

func TestBookRepository_DeleteBook_StillReferenced(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	repo, err := NewBookRepository(db, Options{Dialect: sqlclient.Postgres}, zerolog.NewNopLogger())
	require.NoError(t, err)

	db.On("DeleteOne", mock.Anything, "books", map[string]interface{}{"id": int64(3)}).
		Return(int64(0), &pq.Error{Code: "23503", Detail: `Key (id)=(3) is still referenced from table "loans".`})

	_, err = repo.DeleteBook(context.Background(), 3)
	var perr *dberrors.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, dberrors.CodeForeignKeyParent, perr.Code)
	assert.Equal(t, "book", perr.Entity)
	assert.Equal(t, dberrors.OpDelete, perr.Op)
}

func TestLoanRepository_AddAndUpdate(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	repo, err := NewLoanRepository(db, mysqlOpts, zerolog.NewNopLogger())
	require.NoError(t, err)

	loan := &models.Loan{ID: 4, UserID: 1, BookID: 2, LoanDate: time.Now(), DueDate: time.Now().Add(14 * 24 * time.Hour)}

	db.On("InsertOne", mock.Anything, "loans", mock.MatchedBy(func(doc map[string]interface{}) bool {
		return doc["user_id"] == int64(1) && doc["book_id"] == int64(2) && doc["return_date"] == (*time.Time)(nil)
	})).Return(nil, &mysql.MySQLError{Number: 1452})

	_, err = repo.AddLoan(context.Background(), loan)
	var perr *dberrors.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, dberrors.CodeForeignKeyChild, perr.Code)

	db.On("UpdateOne", mock.Anything, "loans", map[string]interface{}{"id": int64(4)}, mock.Anything).Return(int64(0), nil)
	matched, err := repo.UpdateLoan(context.Background(), loan)
	require.NoError(t, err)
	assert.Zero(t, matched)
}

func TestLoanRepository_DecodesNullableReturnDate(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	repo, err := NewLoanRepository(db, mysqlOpts, zerolog.NewNopLogger())
	require.NoError(t, err)

	returned := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	db.On("FindMany", mock.Anything, "loans", mock.Anything, mock.Anything).Return([]interfaces.Document{
		map[string]interface{}{"id": int64(1), "user_id": int64(1), "book_id": int64(2), "return_date": nil, "is_extended": int64(0)},
		map[string]interface{}{"id": int64(2), "user_id": int64(1), "book_id": int64(3), "return_date": returned, "is_extended": int64(1)},
	}, nil)

	loans, err := repo.GetAllLoans(context.Background())
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Nil(t, loans[0].ReturnDate)
	assert.False(t, loans[0].IsExtended)
	require.NotNil(t, loans[1].ReturnDate)
	assert.Equal(t, returned, *loans[1].ReturnDate)
	assert.True(t, loans[1].IsExtended)
}

func TestPostRepository_GetAllPostsNewestFirst(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	repo, err := NewPostRepository(db, mysqlOpts, zerolog.NewNopLogger())
	require.NoError(t, err)

	db.On("FindMany", mock.Anything, "posts", map[string]interface{}{},
		&interfaces.FindOptions{SortBy: "created_at", Descending: true}).Return([]interfaces.Document{}, nil)

	posts, err := repo.GetAllPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_AddPost(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	repo, err := NewPostRepository(db, mysqlOpts, zerolog.NewNopLogger())
	require.NoError(t, err)

	db.On("InsertOne", mock.Anything, "posts", mock.Anything).Return("not-an-int", nil)

	_, err = repo.AddPost(context.Background(), &models.Post{Title: "t", Content: "c", AuthorID: 1})
	assert.Error(t, err)
}

func TestReviewRepository(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	repo, err := NewReviewRepository(db, mysqlOpts, zerolog.NewNopLogger())
	require.NoError(t, err)

	db.On("UpdateOne", mock.Anything, "reviews", map[string]interface{}{"id": int64(8)}, mock.MatchedBy(func(doc map[string]interface{}) bool {
		_, hasCreated := doc["created_at"]
		return doc["rating"] == 5 && !hasCreated
	})).Return(int64(1), nil)
	db.On("DeleteOne", mock.Anything, "reviews", map[string]interface{}{"id": int64(8)}).Return(int64(0), errors.New("boom"))
	db.On("EnsureSchema", mock.Anything, "reviews", mock.AnythingOfType("string")).Return(nil)

	matched, err := repo.UpdateReview(context.Background(), &models.Review{ID: 8, Rating: 5, ReviewText: "great"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	_, err = repo.DeleteReview(context.Background(), 8)
	assert.Equal(t, dberrors.Unknown, dberrors.KindOf(err))
	var perr *dberrors.PersistenceError
	assert.ErrorAs(t, err, &perr)

	assert.NoError(t, repo.EnsureSchema(context.Background()))
}
