package models

import "time"

// Post is a user-authored article.
type Post struct {
	ID        int64     `json:"id" mapstructure:"id" db:"id"`
	Title     string    `json:"title" mapstructure:"title" db:"title"`
	Content   string    `json:"content" mapstructure:"content" db:"content"`
	AuthorID  int64     `json:"authorId" mapstructure:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"createdAt" mapstructure:"created_at" db:"created_at"`
}
