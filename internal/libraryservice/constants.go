package libraryservice

import "errors"

const (
	ErrRetrievingBook     = "error retrieving book"
	ErrFailedToAddBook    = "failed to add book"
	ErrFailedToSaveCover  = "failed to save cover"
	ErrFailedToUpdateBook = "failed to update book"
	ErrFailedToDeleteBook = "failed to delete book"
	ErrRetrievingLoan     = "error retrieving loan"
	ErrFailedToSaveLoan   = "failed to save loan"
	ErrRetrievingPost     = "error retrieving post"
	ErrFailedToSavePost   = "failed to save post"
	ErrRetrievingReview   = "error retrieving review"
	ErrFailedToSaveReview = "failed to save review"
	ErrRetrievingAuthor   = "error retrieving author"

	// ImageNotFound replaces the data URI of a book whose cover cannot be read.
	ImageNotFound = "Image not found"
)

var (
	ErrInvalidBookID   = errors.New("invalid book id")
	ErrInvalidLoanID   = errors.New("invalid loan id")
	ErrInvalidPostID   = errors.New("invalid post id")
	ErrInvalidReviewID = errors.New("invalid review id")

	// ErrBookNotFound is returned by lookups of a missing book.
	ErrBookNotFound = errors.New("book not found")

	// ErrBookDoesNotExist is returned when updating or deleting a missing book.
	ErrBookDoesNotExist = errors.New("book does not exist")

	ErrLoanNotFound   = errors.New("loan not found")
	ErrPostNotFound   = errors.New("post not found")
	ErrReviewNotFound = errors.New("review not found")

	// ErrAuthorNotFound is returned when a post names an author that is not a user.
	ErrAuthorNotFound = errors.New("author does not exist")
)
