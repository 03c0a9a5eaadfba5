package userservice

import (
	"context"
	"fmt"

	"github.com/haguru/elibrary/internal/dberrors"
	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/internal/models"
	"github.com/haguru/elibrary/internal/validation"
	"github.com/haguru/elibrary/pkg/helper"
)

type UserService struct {
	UserRepo interfaces.UserRepository
	Hasher   interfaces.PasswordHasher
	Logger   interfaces.Logger
}

var _ interfaces.UserService = (*UserService)(nil)

// NewUserService creates a new UserService instance.
func NewUserService(repo interfaces.UserRepository, hasher interfaces.PasswordHasher, logger interfaces.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		Hasher:   hasher,
		Logger:   logger,
	}
}

// Register validates user, replaces its plaintext password with a stored secret and adds
// it via the repository. The caller's user is not modified.
func (s *UserService) Register(ctx context.Context, user *models.User) (int64, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "email", user.Email)
	defer s.Logger.Debug("Exiting function", "func", funcName, "email", user.Email)

	if err := validation.UserSchema.Check(user); err != nil {
		return 0, err
	}

	existing, err := s.UserRepo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "email", user.Email, "error", err)
		return 0, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if existing != nil {
		s.Logger.Warn("email already registered", "func", funcName, "email", user.Email)
		return 0, ErrEmailTaken
	}

	secret, err := s.Hasher.Derive(user.Password)
	if err != nil {
		s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "email", user.Email, "error", err)
		return 0, fmt.Errorf("%s: %w", ErrFailedToHashPassword, err)
	}

	stored := *user
	stored.Password = secret
	stored.PositiveRating = 0
	stored.NegativeRating = 0

	userID, err := dberrors.RetryOnDeadlock(ctx, func(ctx context.Context) (int64, error) {
		return s.UserRepo.AddUser(ctx, &stored)
	})
	if err != nil {
		s.Logger.Error(ErrFailedToRegisterUser, "func", funcName, "email", user.Email, "error", err)
		return 0, fmt.Errorf("%s: %w", ErrFailedToRegisterUser, err)
	}

	s.Logger.Info("User registered successfully", "func", funcName, "email", user.Email, "ID", userID)
	return userID, nil
}

// Login returns the user whose stored secret matches password. An unknown email and a
// wrong password both yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "email", email)
	defer s.Logger.Debug("Exiting function", "func", funcName, "email", email)

	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.UserRepo.GetUserByEmail(ctx, email)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "email", email, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if user == nil {
		s.Logger.Warn("login for unknown email", "func", funcName, "email", email)
		return nil, ErrInvalidCredentials
	}

	if !s.Hasher.Verify(password, user.Password) {
		s.Logger.Warn("login with wrong password", "func", funcName, "email", email)
		return nil, ErrInvalidCredentials
	}

	s.Logger.Info("User authenticated successfully", "func", funcName, "email", email, "ID", user.ID)
	return user, nil
}

// GetUserByID returns the user with id, or ErrUserNotFound.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateRating moves the positive or negative counter of user id by one. Counters never
// drop below zero.
func (s *UserService) UpdateRating(ctx context.Context, id int64, positive, increment bool) (*models.User, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "ID", id)
	defer s.Logger.Debug("Exiting function", "func", funcName, "ID", id)

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counter := &user.NegativeRating
	if positive {
		counter = &user.PositiveRating
	}
	*counter = step(*counter, increment)

	matched, err := dberrors.RetryOnce(ctx, func(ctx context.Context) (int64, error) {
		return s.UserRepo.SetRatings(ctx, id, user.PositiveRating, user.NegativeRating)
	})
	if err != nil {
		s.Logger.Error(ErrFailedToUpdateRating, "func", funcName, "ID", id, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToUpdateRating, err)
	}
	if matched == 0 {
		return nil, ErrUserNotFound
	}

	s.Logger.Info("Rating updated", "func", funcName, "ID", id, "positive", positive, "increment", increment)
	return user, nil
}

func step(value int, increment bool) int {
	if increment {
		return value + 1
	}
	if value > 0 {
		return value - 1
	}
	return 0
}
