package models

import "time"

// User represents an internal user model for the application/database.
// Password holds the stored credential secret once the user is registered, never the plaintext.
type User struct {
	ID             int64     `json:"id" bson:"id" mapstructure:"id" db:"id"`
	Name           string    `json:"name" bson:"name" mapstructure:"name" db:"name"`
	Email          string    `json:"email" bson:"email" mapstructure:"email" db:"email"`
	Password       string    `json:"-" bson:"password" mapstructure:"password" db:"password"`
	PositiveRating int       `json:"positiveRating" bson:"positive_rating" mapstructure:"positive_rating" db:"positive_rating"`
	NegativeRating int       `json:"negativeRating" bson:"negative_rating" mapstructure:"negative_rating" db:"negative_rating"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at" mapstructure:"created_at" db:"created_at"`
}

// NewUser creates a new User instance with the given name, email and password.
// Note: No validation is performed here.
func NewUser(name, email, password string) *User {
	return &User{
		Name:     name,
		Email:    email,
		Password: password,
	}
}
