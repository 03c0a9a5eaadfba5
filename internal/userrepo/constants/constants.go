package constants

const (
	// UsersCollection is the table or collection holding users.
	UsersCollection = "users"
	// UserEntity names users in classified storage errors.
	UserEntity = "user"

	ErrUnexpectedID = "store returned an unexpected id type"
)
