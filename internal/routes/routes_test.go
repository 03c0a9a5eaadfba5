package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/haguru/elibrary/internal/covers"
	"github.com/haguru/elibrary/internal/dberrors"
	"github.com/haguru/elibrary/internal/interfaces/mocks"
	"github.com/haguru/elibrary/internal/libraryservice"
	"github.com/haguru/elibrary/internal/metrics"
	"github.com/haguru/elibrary/internal/models"
	"github.com/haguru/elibrary/internal/models/dto"
	"github.com/haguru/elibrary/internal/userservice"
	"github.com/haguru/elibrary/internal/validation"
	pkgmetrics "github.com/haguru/elibrary/pkg/metrics"
	"github.com/haguru/elibrary/pkg/zerolog"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	users   *mocks.MockUserService
	books   *mocks.MockBookService
	loans   *mocks.MockLoanService
	posts   *mocks.MockPostService
	reviews *mocks.MockReviewService
	metrics *pkgmetrics.Metrics
	mux     *http.ServeMux
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:   mocks.NewMockUserService(t),
		books:   mocks.NewMockBookService(t),
		loans:   mocks.NewMockLoanService(t),
		posts:   mocks.NewMockPostService(t),
		reviews: mocks.NewMockReviewService(t),
		metrics: pkgmetrics.NewMetrics("test"),
		mux:     http.NewServeMux(),
	}
	require.NoError(t, metrics.Register(f.metrics))

	route := NewRoute(f.metrics, Services{
		Users:   f.users,
		Books:   f.books,
		Loans:   f.loans,
		Posts:   f.posts,
		Reviews: f.reviews,
	}, zerolog.NewNopLogger(), structValidator.New())
	for _, e := range route.Endpoints() {
		f.mux.Handle(e.Pattern, e.Handler)
	}
	return f
}

func (f *fixture) do(method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(ContentType, contentType)
	}
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, req)
	return rr
}

func (f *fixture) scrape() string {
	rr := httptest.NewRecorder()
	f.metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rr.Body.String()
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) dto.MessageResponseDTO {
	t.Helper()
	var msg dto.MessageResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&msg))
	return msg
}

func TestWelcome(t *testing.T) {
	f := newFixture(t)
	rr := f.do(http.MethodGet, "/api/users/", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, MsgWelcome, rr.Body.String())
}

func TestRoute_Register(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		serviceErr  error
		callService bool
		wantStatus  int
		wantMessage string
		wantResult  string
	}{
		{
			name:        "registered",
			contentType: ContentTypeJson,
			body:        `{"name":"Ann","email":"ann@example.com","password":"secret1"}`,
			callService: true,
			wantStatus:  http.StatusOK,
			wantMessage: MsgUserRegistered,
			wantResult:  metrics.ResultSuccess,
		},
		{
			name:        "email taken",
			contentType: ContentTypeJson,
			body:        `{"name":"Ann","email":"ann@example.com","password":"secret1"}`,
			serviceErr:  userservice.ErrEmailTaken,
			callService: true,
			wantStatus:  http.StatusConflict,
			wantMessage: MsgEmailTaken,
			wantResult:  metrics.ResultRejected,
		},
		{
			name:        "duplicate on insert",
			contentType: ContentTypeJson,
			body:        `{"name":"Ann","email":"ann@example.com","password":"secret1"}`,
			serviceErr:  dberrors.Translate("user", dberrors.OpInsert, dberrors.CodeDuplicateKey, nil),
			callService: true,
			wantStatus:  http.StatusConflict,
			wantMessage: "A user with this unique field already exists.",
			wantResult:  metrics.ResultError,
		},
		{
			name:        "missing content type",
			body:        `{"name":"Ann"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: MsgInvalidContentType,
			wantResult:  metrics.ResultRejected,
		},
		{
			name:        "invalid json",
			contentType: ContentTypeJson,
			body:        `{"name":"Ann""email":"x"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: MsgInvalidRequestBody,
			wantResult:  metrics.ResultRejected,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.callService {
				f.users.On("Register", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					return u.Email == "ann@example.com" && u.Password == "secret1"
				})).Return(int64(1), tt.serviceErr)
			}

			rr := f.do(http.MethodPost, "/api/users/register", tt.contentType, tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMessage, decodeMessage(t, rr).Message)

			assert.Contains(t, f.scrape(), fmt.Sprintf(`test_user_signups_total{result="%s"} 1`, tt.wantResult))
		})
	}
}

func TestRoute_RegisterValidationErrors(t *testing.T) {
	f := newFixture(t)
	f.users.On("Register", mock.Anything, mock.Anything).Return(int64(0), &validation.Error{
		Entity:   "user",
		Messages: []string{"Name is required", "Invalid email format"},
	})

	rr := f.do(http.MethodPost, "/api/users/register", ContentTypeJson, `{"email":"nope","password":"secret1"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body dto.ValidationErrorResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, []string{"Name is required", "Invalid email format"}, body.Errors)
}

func TestRoute_Login(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		serviceUser *models.User
		serviceErr  error
		callService bool
		wantStatus  int
	}{
		{
			name:        "valid login",
			body:        `{"email":"ann@example.com","password":"secret1"}`,
			serviceUser: &models.User{ID: 1, Name: "Ann", Email: "ann@example.com", Password: "c2VjcmV0"},
			callService: true,
			wantStatus:  http.StatusOK,
		},
		{
			name:        "wrong password",
			body:        `{"email":"ann@example.com","password":"secret1"}`,
			serviceErr:  userservice.ErrInvalidCredentials,
			callService: true,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:       "missing password",
			body:       `{"email":"ann@example.com"}`,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.callService {
				f.users.On("Login", mock.Anything, "ann@example.com", "secret1").Return(tt.serviceUser, tt.serviceErr)
			}

			rr := f.do(http.MethodPost, "/api/users/login", ContentTypeJson, tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.NotContains(t, rr.Body.String(), "password")
				assert.NotContains(t, rr.Body.String(), tt.serviceUser.Password)
				var user dto.UserResponseDTO
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&user))
				assert.Equal(t, int64(1), user.ID)
			}
		})
	}
}

func TestRoute_UpdateRating(t *testing.T) {
	f := newFixture(t)
	f.users.On("UpdateRating", mock.Anything, int64(3), true, true).Return(&models.User{ID: 3, PositiveRating: 1}, nil)
	f.users.On("UpdateRating", mock.Anything, int64(4), false, true).Return(nil, userservice.ErrUserNotFound)

	rr := f.do(http.MethodPut, "/api/users/3/rating", ContentTypeJson, `{"positive":true,"increment":true}`)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(http.MethodPut, "/api/users/4/rating", ContentTypeJson, `{"positive":false,"increment":true}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = f.do(http.MethodPut, "/api/users/abc/rating", ContentTypeJson, `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid user ID", decodeMessage(t, rr).Message)
}

func multipartBook(t *testing.T, fields map[string]string, fileName string, content []byte) (string, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile(ImageFormField, fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.String(), w.FormDataContentType()
}

func bookFields() map[string]string {
	return map[string]string{
		"title":         "Dune",
		"author":        "Frank Herbert",
		"genre":         "Science Fiction",
		"description":   "Spice.",
		"averageRating": "4.5",
		"totalReviews":  "2",
	}
}

func TestRoute_AddBook(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nrest")

	t.Run("created", func(t *testing.T) {
		f := newFixture(t)
		f.books.On("SaveCover", mock.Anything, "dune.png", mock.Anything).Return("images/abc.png", nil)
		f.books.On("AddBook", mock.Anything, mock.MatchedBy(func(b *models.Book) bool {
			return b.Title == "Dune" && b.ImagePath == "images/abc.png" && b.AverageRating == 4.5 && b.TotalReviews == 2
		})).Return(func(_ context.Context, b *models.Book) *models.Book {
			b.ID = 7
			return b
		}, nil)

		body, ct := multipartBook(t, bookFields(), "dune.png", png)
		rr := f.do(http.MethodPost, "/api/books/addBook", ct, body)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var got models.Book
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, "images/abc.png", got.ImagePath)
	})

	t.Run("no file", func(t *testing.T) {
		f := newFixture(t)
		body, ct := multipartBook(t, bookFields(), "", nil)
		rr := f.do(http.MethodPost, "/api/books/addBook", ct, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, MsgImageRequired, decodeMessage(t, rr).Message)
	})

	t.Run("invalid fields rejected before cover is stored", func(t *testing.T) {
		f := newFixture(t)
		fields := bookFields()
		delete(fields, "title")
		body, ct := multipartBook(t, fields, "dune.png", png)
		rr := f.do(http.MethodPost, "/api/books/addBook", ct, body)
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var errs dto.ValidationErrorResponseDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errs))
		assert.Equal(t, []string{"title is required."}, errs.Errors)
	})

	t.Run("not an image", func(t *testing.T) {
		f := newFixture(t)
		f.books.On("SaveCover", mock.Anything, "notes.png", mock.Anything).
			Return("", fmt.Errorf("%s: %w", libraryservice.ErrFailedToSaveCover, covers.ErrNotImage))

		body, ct := multipartBook(t, bookFields(), "notes.png", []byte("plain text"))
		rr := f.do(http.MethodPost, "/api/books/addBook", ct, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, MsgOnlyImages, decodeMessage(t, rr).Message)
	})

	t.Run("bad number", func(t *testing.T) {
		f := newFixture(t)
		fields := bookFields()
		fields["totalReviews"] = "many"
		body, ct := multipartBook(t, fields, "dune.png", png)
		rr := f.do(http.MethodPost, "/api/books/addBook", ct, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("json body", func(t *testing.T) {
		f := newFixture(t)
		rr := f.do(http.MethodPost, "/api/books/addBook", ContentTypeJson, `{"title":"Dune"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRoute_GetBooks(t *testing.T) {
	f := newFixture(t)
	withCover := &models.Book{ID: 1, Title: "A", ImagePath: "images/a.png"}
	withoutCover := &models.Book{ID: 2, Title: "B", ImagePath: "images/gone.png"}
	f.books.On("GetAllBooks", mock.Anything).Return([]*models.Book{withCover, withoutCover}, nil)
	f.books.On("GetBookByID", mock.Anything, int64(1)).Return(withCover, nil)
	f.books.On("GetBookByID", mock.Anything, int64(9)).Return(nil, libraryservice.ErrBookNotFound)
	f.books.On("CoverDataURI", mock.Anything, withCover).Return("data:image/png;base64,AA==")
	f.books.On("CoverDataURI", mock.Anything, withoutCover).Return(libraryservice.ImageNotFound)

	rr := f.do(http.MethodGet, "/api/books/allBooks", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var all []dto.BookResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&all))
	require.Len(t, all, 2)
	assert.Equal(t, "data:image/png;base64,AA==", all[0].Image)
	assert.Equal(t, "Image not found", all[1].Image)

	rr = f.do(http.MethodGet, "/api/books/1", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(http.MethodGet, "/api/books/9", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, MsgBookNotFound, decodeMessage(t, rr).Message)

	rr = f.do(http.MethodGet, "/api/books/0", "", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid book ID", decodeMessage(t, rr).Message)
}

func TestRoute_UpdateAndDeleteBook(t *testing.T) {
	f := newFixture(t)
	f.books.On("UpdateBook", mock.Anything, mock.MatchedBy(func(b *models.Book) bool { return b.ID == 5 })).
		Return(nil, libraryservice.ErrBookDoesNotExist)
	f.books.On("DeleteBook", mock.Anything, int64(5)).Return(libraryservice.ErrBookDoesNotExist)
	f.books.On("DeleteBook", mock.Anything, int64(6)).Return(nil)
	f.books.On("DeleteBook", mock.Anything, int64(7)).
		Return(dberrors.Translate("book", dberrors.OpDelete, dberrors.CodeForeignKeyParent, nil))

	rr := f.do(http.MethodPut, "/api/books/5", ContentTypeJson, `{"title":"Dune"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, MsgBookDoesNotExist, decodeMessage(t, rr).Message)

	rr = f.do(http.MethodDelete, "/api/books/5", "", "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = f.do(http.MethodDelete, "/api/books/6", "", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = f.do(http.MethodDelete, "/api/books/7", "", "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "This book is associated with other records and cannot be deleted/updated.", decodeMessage(t, rr).Message)

	assert.Contains(t, f.scrape(), `test_persistence_errors_total{entity="book",kind="ConstraintViolation"} 1`)
}

func TestRoute_PersistenceStatuses(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantRetryAfter string
	}{
		{name: "deadlock", err: dberrors.Translate("loan", dberrors.OpSelect, dberrors.CodeDeadlock, nil), wantStatus: http.StatusServiceUnavailable, wantRetryAfter: "1"},
		{name: "missing table", err: dberrors.Translate("loan", dberrors.OpSelect, dberrors.CodeTableMissing, nil), wantStatus: http.StatusInternalServerError},
		{name: "unexpected", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.loans.On("GetAllLoans", mock.Anything).Return(nil, tt.err)

			rr := f.do(http.MethodGet, "/api/loans/allLoans", "", "")
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantRetryAfter, rr.Header().Get(RetryAfter))
		})
	}
}

func TestRoute_Loans(t *testing.T) {
	f := newFixture(t)
	f.loans.On("CreateLoan", mock.Anything, mock.MatchedBy(func(l *models.Loan) bool { return l.UserID == 1 && l.BookID == 2 })).
		Return(&models.Loan{ID: 3, UserID: 1, BookID: 2}, nil)
	f.loans.On("CreateLoan", mock.Anything, mock.MatchedBy(func(l *models.Loan) bool { return l.BookID == 99 })).
		Return(nil, dberrors.Translate("loan", dberrors.OpInsert, dberrors.CodeForeignKeyChild, nil))
	f.loans.On("GetAllLoans", mock.Anything).Return(nil, nil)
	f.loans.On("GetLoanByID", mock.Anything, int64(8)).Return(nil, libraryservice.ErrLoanNotFound)
	f.loans.On("UpdateLoan", mock.Anything, mock.MatchedBy(func(l *models.Loan) bool { return l.ID == 3 && l.IsExtended })).
		Return(&models.Loan{ID: 3, IsExtended: true}, nil)
	f.loans.On("DeleteLoan", mock.Anything, int64(3)).Return(nil)

	rr := f.do(http.MethodPost, "/api/loans/addLoan", ContentTypeJson,
		`{"userId":1,"bookId":2,"loanDate":"2025-03-01T00:00:00Z","dueDate":"2025-03-15T00:00:00Z"}`)
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = f.do(http.MethodPost, "/api/loans/addLoan", ContentTypeJson, `{"userId":1,"bookId":99}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(http.MethodGet, "/api/loans/allLoans", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = f.do(http.MethodGet, "/api/loans/8", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, MsgLoanNotFound, decodeMessage(t, rr).Message)

	rr = f.do(http.MethodPut, "/api/loans/3", ContentTypeJson, `{"isExtended":true}`)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(http.MethodDelete, "/api/loans/3", "", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRoute_Posts(t *testing.T) {
	f := newFixture(t)
	f.posts.On("CreatePost", mock.Anything, mock.MatchedBy(func(p *models.Post) bool { return p.AuthorID == 3 })).
		Return(&models.Post{ID: 1, AuthorID: 3}, nil)
	f.posts.On("CreatePost", mock.Anything, mock.MatchedBy(func(p *models.Post) bool { return p.AuthorID == 42 })).
		Return(nil, libraryservice.ErrAuthorNotFound)
	f.posts.On("GetAllPosts", mock.Anything).Return([]*models.Post{{ID: 2}, {ID: 1}}, nil)
	f.posts.On("DeletePost", mock.Anything, int64(9)).Return(libraryservice.ErrPostNotFound)

	rr := f.do(http.MethodPost, "/api/posts/", ContentTypeJson, `{"title":"Hi","content":"Body","authorId":3}`)
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = f.do(http.MethodPost, "/api/posts/", ContentTypeJson, `{"title":"Hi","content":"Body","authorId":42}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, MsgAuthorNotFound, decodeMessage(t, rr).Message)

	rr = f.do(http.MethodGet, "/api/posts/", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var posts []models.Post
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&posts))
	assert.Equal(t, int64(2), posts[0].ID)

	rr = f.do(http.MethodDelete, "/api/posts/9", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRoute_Reviews(t *testing.T) {
	f := newFixture(t)
	f.reviews.On("AddReview", mock.Anything, mock.Anything).Return(nil, &validation.Error{
		Entity:   "review",
		Messages: []string{"Rating must be between 1 and 5."},
	}).Once()
	f.reviews.On("GetReviewByID", mock.Anything, int64(4)).Return(&models.Review{ID: 4, Rating: 5}, nil)
	f.reviews.On("UpdateReview", mock.Anything, mock.MatchedBy(func(r *models.Review) bool { return r.ID == 4 })).
		Return(nil, libraryservice.ErrReviewNotFound)
	f.reviews.On("DeleteReview", mock.Anything, int64(4)).Return(nil)

	rr := f.do(http.MethodPost, "/api/reviews/addReview", ContentTypeJson, `{"reviewText":"Great","rating":6}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(http.MethodGet, "/api/reviews/4", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(http.MethodPut, "/api/reviews/4", ContentTypeJson, `{"reviewText":"ok","rating":3}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = f.do(http.MethodDelete, "/api/reviews/4", "", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = f.do(http.MethodDelete, "/api/reviews/x", "", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid review ID", decodeMessage(t, rr).Message)
}
