package models

import "time"

// Loan records a book lent to a user. ReturnDate stays nil until the book comes back.
type Loan struct {
	ID         int64      `json:"id" mapstructure:"id" db:"id"`
	UserID     int64      `json:"userId" mapstructure:"user_id" db:"user_id"`
	BookID     int64      `json:"bookId" mapstructure:"book_id" db:"book_id"`
	LoanDate   time.Time  `json:"loanDate" mapstructure:"loan_date" db:"loan_date"`
	ReturnDate *time.Time `json:"returnDate" mapstructure:"return_date" db:"return_date"`
	DueDate    time.Time  `json:"dueDate" mapstructure:"due_date" db:"due_date"`
	IsExtended bool       `json:"isExtended" mapstructure:"is_extended" db:"is_extended"`
}
