// Package sql stores users in the relational database shared with the library tables.
package sql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haguru/elibrary/internal/dberrors"
	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/internal/models"
	"github.com/haguru/elibrary/internal/userrepo/constants"
	"github.com/haguru/elibrary/pkg/databases/sqlclient"
)

// SQLUserRepository implements UserRepository on a SQL DBClient.
type SQLUserRepository struct {
	dbClient interfaces.DBClient
	dialect  sqlclient.Dialect
	logger   interfaces.Logger
}

var _ interfaces.UserRepository = (*SQLUserRepository)(nil)

// NewSQLUserRepository creates a user repository speaking dialect through dbClient.
func NewSQLUserRepository(dbClient interfaces.DBClient, dialect sqlclient.Dialect, logger interfaces.Logger) (*SQLUserRepository, error) {
	if dbClient == nil {
		return nil, errors.New("dbClient cannot be nil")
	}
	if _, ok := usersTable[dialect]; !ok {
		return nil, fmt.Errorf("unsupported SQL dialect %q", dialect)
	}
	return &SQLUserRepository{dbClient: dbClient, dialect: dialect, logger: logger}, nil
}

// AddUser inserts user and returns the generated id. CreatedAt is set when empty.
func (r *SQLUserRepository) AddUser(ctx context.Context, user *models.User) (int64, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	doc := map[string]interface{}{
		"name":            user.Name,
		"email":           user.Email,
		"password":        user.Password,
		"positive_rating": user.PositiveRating,
		"negative_rating": user.NegativeRating,
		"created_at":      user.CreatedAt,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, constants.UsersCollection, doc)
	if err != nil {
		return 0, r.fail(dberrors.OpInsert, err)
	}
	id, ok := insertedID.(int64)
	if !ok {
		return 0, errors.New(constants.ErrUnexpectedID)
	}
	return id, nil
}

// GetUserByEmail returns the user registered with email, or nil when there is none.
func (r *SQLUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, map[string]interface{}{"email": email})
}

// GetUserByID returns the user with id, or nil when there is none.
func (r *SQLUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, map[string]interface{}{"id": id})
}

func (r *SQLUserRepository) findOne(ctx context.Context, filter map[string]interface{}) (*models.User, error) {
	var user models.User
	err := r.dbClient.FindOne(ctx, constants.UsersCollection, filter, &user)
	if errors.Is(err, interfaces.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail(dberrors.OpSelect, err)
	}
	return &user, nil
}

// SetRatings overwrites both rating counters of user id.
func (r *SQLUserRepository) SetRatings(ctx context.Context, id int64, positive, negative int) (int64, error) {
	update := map[string]interface{}{
		"positive_rating": positive,
		"negative_rating": negative,
	}
	matched, err := r.dbClient.UpdateOne(ctx, constants.UsersCollection, map[string]interface{}{"id": id}, update)
	if err != nil {
		return 0, r.fail(dberrors.OpUpdate, err)
	}
	return matched, nil
}

// EnsureIndices creates the users table, whose email column is unique.
func (r *SQLUserRepository) EnsureIndices(ctx context.Context) error {
	if err := r.dbClient.EnsureSchema(ctx, constants.UsersCollection, usersTable[r.dialect]); err != nil {
		return r.fail(dberrors.OpSchema, err)
	}
	return nil
}

// Close closes the database connection.
func (r *SQLUserRepository) Close(ctx context.Context) error {
	return r.dbClient.Disconnect(ctx)
}

func (r *SQLUserRepository) fail(op string, err error) error {
	classified := dberrors.Classify(constants.UserEntity, op, err)
	r.logger.Error("user storage failure", "op", op, "kind", dberrors.KindOf(classified).String(), "error", err)
	return classified
}
