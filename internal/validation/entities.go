package validation

import "github.com/haguru/elibrary/internal/models"

// BookSchema declares the Book constraints. Ratings and counters are checked after the
// text fields.
var BookSchema = NewSchema("book",
	RequiredField("title", "title is required.", func(b *models.Book) string { return b.Title }),
	MaxLengthField("title", "title cannot exceed 255 characters.", 255, func(b *models.Book) string { return b.Title }),
	RequiredField("author", "author is required.", func(b *models.Book) string { return b.Author }),
	MaxLengthField("author", "author cannot exceed 100 characters.", 100, func(b *models.Book) string { return b.Author }),
	RequiredField("genre", "genre is required.", func(b *models.Book) string { return b.Genre }),
	RequiredField("description", "description is required.", func(b *models.Book) string { return b.Description }),
	RequiredField("imagePath", "imagePath is required.", func(b *models.Book) string { return b.ImagePath }),
	RangeField("averageRating", "Average Rating must be between 0 and 5.", 0, 5, func(b *models.Book) float64 { return b.AverageRating }),
	MinField("totalReviews", "Total reviews must be non-negative.", 0, func(b *models.Book) int { return b.TotalReviews }),
)

// UserSchema declares the User constraints; Password is the plaintext before derivation.
var UserSchema = NewSchema("user",
	RequiredField("name", "Name is required", func(u *models.User) string { return u.Name }),
	RequiredField("email", "Email is required", func(u *models.User) string { return u.Email }),
	EmailField("email", "Invalid email format", func(u *models.User) string { return u.Email }),
	RequiredField("password", "Password is required", func(u *models.User) string { return u.Password }),
	MinLengthField("password", "Password must be at least 6 characters long", 6, func(u *models.User) string { return u.Password }),
	MaxLengthField("password", "Password must be at least 6 characters long", 255, func(u *models.User) string { return u.Password }),
)

// PostSchema declares the Post constraints. Whether the author exists is a storage
// question answered by the post service.
var PostSchema = NewSchema("post",
	RequiredField("title", "title is required", func(p *models.Post) string { return p.Title }),
	MaxLengthField("title", "title cannot exceed 255 characters", 255, func(p *models.Post) string { return p.Title }),
	RequiredField("content", "Content is required", func(p *models.Post) string { return p.Content }),
	PositiveField("authorId", "author ID is required", func(p *models.Post) int64 { return p.AuthorID }),
)

// ReviewSchema declares the Review constraints.
var ReviewSchema = NewSchema("review",
	RequiredField("reviewText", "reviewText is required.", func(r *models.Review) string { return r.ReviewText }),
	RangeField("rating", "Rating must be between 1 and 5.", 1, 5, func(r *models.Review) int { return r.Rating }),
)

// LoanSchema is intentionally empty: loan references are enforced by foreign keys.
var LoanSchema = NewSchema[*models.Loan]("loan")
