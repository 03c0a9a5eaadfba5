package dto

import (
	"time"

	"github.com/haguru/elibrary/internal/models"
)

type UserSignupRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserSignupResponseDTO struct {
	Message string `json:"message"`
}

// UserResponseDTO is the public view of a user row; the stored secret is never included.
type UserResponseDTO struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PositiveRating int       `json:"positiveRating"`
	NegativeRating int       `json:"negativeRating"`
	CreatedAt      time.Time `json:"createdAt"`
}

type RatingUpdateRequestDTO struct {
	Positive  bool `json:"positive"`
	Increment bool `json:"increment"`
}

// NewUserResponseDTO copies the public fields of user.
func NewUserResponseDTO(user *models.User) *UserResponseDTO {
	return &UserResponseDTO{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		PositiveRating: user.PositiveRating,
		NegativeRating: user.NegativeRating,
		CreatedAt:      user.CreatedAt,
	}
}
