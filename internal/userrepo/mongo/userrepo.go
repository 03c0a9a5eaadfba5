package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/haguru/elibrary/internal/dberrors"
	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/internal/models"
	"github.com/haguru/elibrary/internal/userrepo/constants"

	"go.mongodb.org/mongo-driver/bson"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SequenceClient is a DBClient that can also hand out increasing numeric ids.
// *mongo.MongoDBClient satisfies it.
type SequenceClient interface {
	interfaces.DBClient
	NextSequence(ctx context.Context, name string) (int64, error)
}

// MongoUserRepository implements UserRepository on MongoDB. Users keep the numeric ids the
// rest of the library refers to; ids come from the users counter.
type MongoUserRepository struct {
	dbClient SequenceClient
	logger   interfaces.Logger
}

var _ interfaces.UserRepository = (*MongoUserRepository)(nil)

// NewMongoUserRepository creates a new MongoDB repository instance.
func NewMongoUserRepository(dbClient SequenceClient, logger interfaces.Logger) (*MongoUserRepository, error) {
	if dbClient == nil {
		return nil, errors.New("dbClient cannot be nil")
	}
	return &MongoUserRepository{dbClient: dbClient, logger: logger}, nil
}

// AddUser saves a new user to MongoDB and returns its numeric id.
func (r *MongoUserRepository) AddUser(ctx context.Context, user *models.User) (int64, error) {
	id, err := r.dbClient.NextSequence(ctx, constants.UsersCollection)
	if err != nil {
		return 0, r.fail(dberrors.OpInsert, err)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	doc := bson.M{
		"id":              id,
		"name":            user.Name,
		"email":           user.Email,
		"password":        user.Password,
		"positive_rating": user.PositiveRating,
		"negative_rating": user.NegativeRating,
		"created_at":      user.CreatedAt,
	}
	if _, err := r.dbClient.InsertOne(ctx, constants.UsersCollection, doc); err != nil {
		return 0, r.fail(dberrors.OpInsert, err)
	}
	return id, nil
}

// GetUserByEmail retrieves a user by email, or nil when there is none.
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetUserByID retrieves a user by numeric id, or nil when there is none.
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
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
func (r *MongoUserRepository) SetRatings(ctx context.Context, id int64, positive, negative int) (int64, error) {
	update := bson.M{
		"positive_rating": positive,
		"negative_rating": negative,
	}
	matched, err := r.dbClient.UpdateOne(ctx, constants.UsersCollection, bson.M{"id": id}, update)
	if err != nil {
		return 0, r.fail(dberrors.OpUpdate, err)
	}
	return matched, nil
}

// EnsureIndices creates unique indices on email and id.
func (r *MongoUserRepository) EnsureIndices(ctx context.Context) error {
	for _, field := range []string{"email", "id"} {
		indexModel := mongosdk.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
		if err := r.dbClient.EnsureSchema(ctx, constants.UsersCollection, indexModel); err != nil {
			return r.fail(dberrors.OpSchema, err)
		}
	}
	return nil
}

// Close disconnects the MongoDB client.
func (r *MongoUserRepository) Close(ctx context.Context) error {
	return r.dbClient.Disconnect(ctx)
}

func (r *MongoUserRepository) fail(op string, err error) error {
	classified := dberrors.Classify(constants.UserEntity, op, err)
	r.logger.Error("user storage failure", "op", op, "kind", dberrors.KindOf(classified).String(), "error", err)
	return classified
}
