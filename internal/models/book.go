package models

import "time"

// Book is a catalog entry. ImagePath points at the stored cover file.
type Book struct {
	ID            int64     `json:"id" mapstructure:"id" db:"id"`
	Title         string    `json:"title" mapstructure:"title" db:"title"`
	Author        string    `json:"author" mapstructure:"author" db:"author"`
	Genre         string    `json:"genre" mapstructure:"genre" db:"genre"`
	Description   string    `json:"description" mapstructure:"description" db:"description"`
	ImagePath     string    `json:"imagePath" mapstructure:"image_path" db:"image_path"`
	AverageRating float64   `json:"averageRating" mapstructure:"average_rating" db:"average_rating"`
	TotalReviews  int       `json:"totalReviews" mapstructure:"total_reviews" db:"total_reviews"`
	CreatedAt     time.Time `json:"createdAt" mapstructure:"created_at" db:"created_at"`
}
