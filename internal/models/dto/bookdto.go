package dto

import (
	"time"

	"github.com/haguru/elibrary/internal/models"
)

// BookFormDTO mirrors the multipart fields of an add-book request.
type BookFormDTO struct {
	Title         string  `mapstructure:"title"`
	Author        string  `mapstructure:"author"`
	Genre         string  `mapstructure:"genre"`
	Description   string  `mapstructure:"description"`
	AverageRating float64 `mapstructure:"averageRating"`
	TotalReviews  int     `mapstructure:"totalReviews"`
}

// BookResponseDTO is a book with its cover inlined as a data URI.
type BookResponseDTO struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	Description   string    `json:"description"`
	Image         string    `json:"image"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int       `json:"totalReviews"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToBook converts the form fields into a Book.
func (f *BookFormDTO) ToBook() *models.Book {
	return &models.Book{
		Title:         f.Title,
		Author:        f.Author,
		Genre:         f.Genre,
		Description:   f.Description,
		AverageRating: f.AverageRating,
		TotalReviews:  f.TotalReviews,
	}
}

// NewBookResponseDTO builds the response view of book with the given image string.
func NewBookResponseDTO(book *models.Book, image string) *BookResponseDTO {
	return &BookResponseDTO{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		Genre:         book.Genre,
		Description:   book.Description,
		Image:         image,
		AverageRating: book.AverageRating,
		TotalReviews:  book.TotalReviews,
		CreatedAt:     book.CreatedAt,
	}
}
