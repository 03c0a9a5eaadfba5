package constants

// Table names.
const (
	BooksTable   = "books"
	LoansTable   = "loans"
	PostsTable   = "posts"
	ReviewsTable = "reviews"
)

// Entity names used in classified storage errors.
const (
	BookEntity   = "book"
	LoanEntity   = "loan"
	PostEntity   = "post"
	ReviewEntity = "review"
)

const ErrUnexpectedID = "store returned an unexpected id type"
