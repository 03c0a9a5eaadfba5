package models

import "time"

// Review is a user's rating of a book.
type Review struct {
	ID          int64     `json:"id" mapstructure:"id" db:"id"`
	UserID      int64     `json:"userId" mapstructure:"user_id" db:"user_id"`
	BookID      int64     `json:"bookId" mapstructure:"book_id" db:"book_id"`
	ReviewText  string    `json:"reviewText" mapstructure:"review_text" db:"review_text"`
	Rating      int       `json:"rating" mapstructure:"rating" db:"rating"`
	CreatedAt   time.Time `json:"createdAt" mapstructure:"created_at" db:"created_at"`
	IsModerated bool      `json:"isModerated" mapstructure:"is_moderated" db:"is_moderated"`
}
