package interfaces

import (
	"context"
	"errors"
)

// Document is a generic interface to represent data that can be stored and retrieved from
// the database. Both clients take map[string]interface{} documents and filters; FindOne
// decodes into a pointer to a struct.
type Document interface{}

// ErrNoDocuments is returned by FindOne when nothing matches the filter.
var ErrNoDocuments = errors.New("no document matches the filter")

// FindOptions orders and limits a FindMany call. The zero value keeps storage order.
type FindOptions struct {
	SortBy     string
	Descending bool
	Limit      int64
}

// DBClient defines the interface for a generic database client.
// It abstracts common database operations across different database types (MongoDB, SQL).
type DBClient interface {
	// Connect establishes a connection to the database described by dsn and pings it.
	Connect(ctx context.Context, dsn string) error

	// Disconnect closes the database connection.
	Disconnect(ctx context.Context) error

	// InsertOne inserts a single document into the named collection/table and returns the
	// identifier the store assigned to it.
	InsertOne(ctx context.Context, collectionName string, document Document) (interface{}, error)

	// FindOne decodes the first document matching filter into result.
	// Returns ErrNoDocuments when nothing matches.
	FindOne(ctx context.Context, collectionName string, filter Document, result Document) error

	// FindMany returns every document matching filter. opts may be nil.
	FindMany(ctx context.Context, collectionName string, filter Document, opts *FindOptions) ([]Document, error)

	// UpdateOne applies the field values in update to the documents matching filter.
	// Returns the count of matched documents.
	UpdateOne(ctx context.Context, collectionName string, filter Document, update Document) (int64, error)

	// DeleteOne deletes the document matching filter and returns the deleted count.
	DeleteOne(ctx context.Context, collectionName string, filter Document) (int64, error)

	// DeleteMany deletes every document matching filter and returns the deleted count.
	DeleteMany(ctx context.Context, collectionName string, filter Document) (int64, error)

	// Ping checks the health of the database connection.
	Ping(ctx context.Context) error

	// EnsureSchema prepares a collection/table. The schema value is store specific: a
	// CREATE TABLE statement for SQL, a mongo.IndexModel for MongoDB.
	EnsureSchema(ctx context.Context, collectionName string, schema Document) error
}
