// Package sql stores books, loans, posts and reviews in PostgreSQL or MySQL through the
// generic SQL DBClient. Storage failures are classified with dberrors and logged.
package sql

import (
	"context"
	"errors"

	"github.com/haguru/elibrary/internal/dberrors"
	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/internal/libraryrepo/constants"
	"github.com/haguru/elibrary/pkg/databases/sqlclient"
)

// store is the part shared by every repository of this package.
type store struct {
	dbClient interfaces.DBClient
	logger   interfaces.Logger
	table    string
	entity   string
	schema   string
}

// Options configures the repositories of this package.
type Options struct {
	Dialect sqlclient.Dialect
	// UserForeignKeys adds foreign keys into the SQL users table. Disable it when users are
	// kept in another store.
	UserForeignKeys bool
}

func newStore(dbClient interfaces.DBClient, opts Options, logger interfaces.Logger, table, entity string) (store, error) {
	if dbClient == nil {
		return store{}, errors.New("dbClient cannot be nil")
	}
	schema, err := createStatement(table, opts.Dialect, opts.UserForeignKeys)
	if err != nil {
		return store{}, err
	}
	return store{dbClient: dbClient, logger: logger, table: table, entity: entity, schema: schema}, nil
}

func (s store) fail(op string, err error) error {
	classified := dberrors.Classify(s.entity, op, err)
	s.logger.Error("storage failure", "entity", s.entity, "op", op, "kind", dberrors.KindOf(classified).String(), "error", err)
	return classified
}

func (s store) insert(ctx context.Context, doc map[string]interface{}) (int64, error) {
	insertedID, err := s.dbClient.InsertOne(ctx, s.table, doc)
	if err != nil {
		return 0, s.fail(dberrors.OpInsert, err)
	}
	id, ok := insertedID.(int64)
	if !ok {
		return 0, errors.New(constants.ErrUnexpectedID)
	}
	return id, nil
}

func (s store) updateByID(ctx context.Context, id int64, update map[string]interface{}) (int64, error) {
	matched, err := s.dbClient.UpdateOne(ctx, s.table, map[string]interface{}{"id": id}, update)
	if err != nil {
		return 0, s.fail(dberrors.OpUpdate, err)
	}
	return matched, nil
}

func (s store) deleteByID(ctx context.Context, id int64) (int64, error) {
	deleted, err := s.dbClient.DeleteOne(ctx, s.table, map[string]interface{}{"id": id})
	if err != nil {
		return 0, s.fail(dberrors.OpDelete, err)
	}
	return deleted, nil
}

func (s store) ensureSchema(ctx context.Context) error {
	if err := s.dbClient.EnsureSchema(ctx, s.table, s.schema); err != nil {
		return s.fail(dberrors.OpSchema, err)
	}
	return nil
}

// findAll decodes every row of the store's table into a T.
func findAll[T any](ctx context.Context, s store, opts *interfaces.FindOptions) ([]*T, error) {
	docs, err := s.dbClient.FindMany(ctx, s.table, map[string]interface{}{}, opts)
	if err != nil {
		return nil, s.fail(dberrors.OpSelect, err)
	}

	results := make([]*T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := sqlclient.DecodeRow(doc, &item); err != nil {
			return nil, err
		}
		results = append(results, &item)
	}
	return results, nil
}

// findByID returns the row with id decoded into a T, or nil when there is none.
func findByID[T any](ctx context.Context, s store, id int64) (*T, error) {
	var item T
	err := s.dbClient.FindOne(ctx, s.table, map[string]interface{}{"id": id}, &item)
	if errors.Is(err, interfaces.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail(dberrors.OpSelect, err)
	}
	return &item, nil
}
