package validation

import (
	"strings"
	"testing"

	"github.com/haguru/elibrary/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBook() *models.Book {
	return &models.Book{
		Title:         "Dune",
		Author:        "Frank Herbert",
		Genre:         "Science Fiction",
		Description:   "Spice and sandworms.",
		ImagePath:     "/covers/dune.png",
		AverageRating: 4.5,
		TotalReviews:  12,
	}
}

func TestBookSchema(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *models.Book)
		want   []string
	}{
		{
			name:   "valid book",
			mutate: func(b *models.Book) {},
			want:   []string{},
		},
		{
			name: "empty title and rating out of range",
			mutate: func(b *models.Book) {
				b.Title = ""
				b.AverageRating = 7
			},
			want: []string{"title is required.", "Average Rating must be between 0 and 5."},
		},
		{
			name:   "whitespace title counts as missing",
			mutate: func(b *models.Book) { b.Title = "   " },
			want:   []string{"title is required."},
		},
		{
			name:   "title too long",
			mutate: func(b *models.Book) { b.Title = strings.Repeat("t", 256) },
			want:   []string{"title cannot exceed 255 characters."},
		},
		{
			name:   "title at limit",
			mutate: func(b *models.Book) { b.Title = strings.Repeat("t", 255) },
			want:   []string{},
		},
		{
			name:   "author too long",
			mutate: func(b *models.Book) { b.Author = strings.Repeat("a", 101) },
			want:   []string{"author cannot exceed 100 characters."},
		},
		{
			name: "everything missing keeps declaration order",
			mutate: func(b *models.Book) {
				*b = models.Book{AverageRating: -1, TotalReviews: -3}
			},
			want: []string{
				"title is required.",
				"author is required.",
				"genre is required.",
				"description is required.",
				"imagePath is required.",
				"Average Rating must be between 0 and 5.",
				"Total reviews must be non-negative.",
			},
		},
		{
			name: "rating boundaries are valid",
			mutate: func(b *models.Book) {
				b.AverageRating = 5
				b.TotalReviews = 0
			},
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := validBook()
			tt.mutate(book)
			got := BookSchema.Validate(book)
			assert.Equal(t, tt.want, []string(got))
			assert.Equal(t, len(tt.want) == 0, got.Valid())
		})
	}
}

func TestUserSchema(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want []string
	}{
		{
			name: "valid user",
			user: models.NewUser("Ann", "ann@example.com", "secret1"),
			want: []string{},
		},
		{
			name: "all missing",
			user: models.NewUser("", "", ""),
			want: []string{"Name is required", "Email is required", "Password is required"},
		},
		{
			name: "malformed email",
			user: models.NewUser("Ann", "ann-at-example.com", "secret1"),
			want: []string{"Invalid email format"},
		},
		{
			name: "short password",
			user: models.NewUser("Ann", "ann@example.com", "12345"),
			want: []string{"Password must be at least 6 characters long"},
		},
		{
			name: "password too long",
			user: models.NewUser("Ann", "ann@example.com", strings.Repeat("p", 256)),
			want: []string{"Password must be at least 6 characters long"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, []string(UserSchema.Validate(tt.user)))
		})
	}
}

func TestPostSchema(t *testing.T) {
	tests := []struct {
		name string
		post *models.Post
		want []string
	}{
		{
			name: "valid post",
			post: &models.Post{Title: "Hello", Content: "World", AuthorID: 1},
			want: []string{},
		},
		{
			name: "missing everything",
			post: &models.Post{},
			want: []string{"title is required", "Content is required", "author ID is required"},
		},
		{
			name: "negative author",
			post: &models.Post{Title: "Hello", Content: "World", AuthorID: -4},
			want: []string{"author ID is required"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, []string(PostSchema.Validate(tt.post)))
		})
	}
}

func TestReviewSchema(t *testing.T) {
	tests := []struct {
		name   string
		rating int
		want   []string
	}{
		{name: "rating zero", rating: 0, want: []string{"Rating must be between 1 and 5."}},
		{name: "rating one", rating: 1, want: []string{}},
		{name: "rating five", rating: 5, want: []string{}},
		{name: "rating six", rating: 6, want: []string{"Rating must be between 1 and 5."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review := &models.Review{ReviewText: "Great read", Rating: tt.rating}
			assert.Equal(t, tt.want, []string(ReviewSchema.Validate(review)))
		})
	}
}

func TestLoanSchema(t *testing.T) {
	assert.True(t, LoanSchema.Validate(&models.Loan{}).Valid())
	assert.NoError(t, LoanSchema.Check(&models.Loan{}))
}

func TestCheck_ReturnsError(t *testing.T) {
	err := ReviewSchema.Check(&models.Review{})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "review", verr.Entity)
	assert.Equal(t, []string{"reviewText is required.", "Rating must be between 1 and 5."}, verr.Messages)
	assert.Contains(t, err.Error(), "review validation failed")
}

func TestCrossFieldRule(t *testing.T) {
	type window struct{ from, to int }
	schema := NewSchema("window",
		MinField("from", "from must be non-negative", 0, func(w window) int { return w.from }),
		CrossFieldRule("to", "to must not precede from", func(w window) bool { return w.to >= w.from }),
	)

	assert.True(t, schema.Validate(window{from: 1, to: 2}).Valid())
	assert.Equal(t, Result{"to must not precede from"}, schema.Validate(window{from: 3, to: 2}))
	assert.Equal(t, Result{"from must be non-negative"}, schema.Validate(window{from: -1, to: 0}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "required", Required.String())
	assert.Equal(t, "cross_field", CrossField.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
