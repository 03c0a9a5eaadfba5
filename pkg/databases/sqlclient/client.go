// Package sqlclient implements interfaces.DBClient on database/sql for PostgreSQL and MySQL.
// Documents and filters are map[string]interface{} keyed by column name.
package sqlclient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq" // registers the "postgres" driver

	"github.com/haguru/elibrary/internal/interfaces"
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database.
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections to the database.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 30 * time.Second
)

// Client implements the DBClient interface for SQL databases.
type Client struct {
	db              *sql.DB
	dialect         Dialect
	logger          interfaces.Logger
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewClient returns an unconnected client speaking dialect.
func NewClient(dialect Dialect, logger interfaces.Logger, maxOpenConns, maxIdleConns int, connMaxLifetime time.Duration) *Client {
	return &Client{
		dialect:         dialect,
		logger:          logger,
		MaxOpenConns:    maxOpenConns,
		MaxIdleConns:    maxIdleConns,
		ConnMaxLifetime: connMaxLifetime,
	}
}

// Dialect reports the SQL flavour of the client.
func (c *Client) Dialect() Dialect {
	return c.dialect
}

// Connect opens the pool and pings the server.
func (c *Client) Connect(ctx context.Context, dsn string) error {
	dsn, err := c.normalizeDSN(dsn)
	if err != nil {
		return err
	}

	c.db, err = sql.Open(string(c.dialect), dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", c.dialect, err)
	}

	c.db.SetMaxOpenConns(c.MaxOpenConns)
	c.db.SetMaxIdleConns(c.MaxIdleConns)
	c.db.SetConnMaxLifetime(c.ConnMaxLifetime)

	return c.Ping(ctx)
}

// normalizeDSN makes MySQL return time.Time for DATETIME columns and report matched rather
// than changed rows, so UpdateOne counts agree across dialects.
func (c *Client) normalizeDSN(dsn string) (string, error) {
	if c.dialect != MySQL {
		return dsn, nil
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MySQL DSN: %w", err)
	}
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

// Disconnect closes the connection pool.
func (c *Client) Disconnect(ctx context.Context) error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// InsertOne inserts document and returns the generated int64 id.
func (c *Client) InsertOne(ctx context.Context, tableName string, document interfaces.Document) (interface{}, error) {
	docMap, err := asMap(document, "InsertOne document")
	if err != nil {
		return nil, err
	}
	query, values, err := c.dialect.buildInsert(tableName, docMap)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("executing insert", "table", tableName)

	if c.dialect == Postgres {
		var insertedID int64
		if err := c.db.QueryRowContext(ctx, query, values...).Scan(&insertedID); err != nil {
			return nil, err
		}
		return insertedID, nil
	}

	res, err := c.db.ExecContext(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	return res.LastInsertId()
}

// FindOne decodes the first row matching filter into result, a pointer to a struct with
// mapstructure tags naming the columns.
func (c *Client) FindOne(ctx context.Context, tableName string, filter interfaces.Document, result interfaces.Document) error {
	filterMap, err := asMap(filter, "FindOne filter")
	if err != nil {
		return err
	}
	if len(filterMap) == 0 {
		return errors.New("FindOne requires a non-empty filter")
	}

	rows, err := c.find(ctx, tableName, filterMap, &interfaces.FindOptions{Limit: 1})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return interfaces.ErrNoDocuments
	}
	return DecodeRow(rows[0], result)
}

// FindMany returns every row matching filter as a map keyed by column name.
func (c *Client) FindMany(ctx context.Context, tableName string, filter interfaces.Document, opts *interfaces.FindOptions) ([]interfaces.Document, error) {
	filterMap, err := asMap(filter, "FindMany filter")
	if err != nil {
		return nil, err
	}
	rows, err := c.find(ctx, tableName, filterMap, opts)
	if err != nil {
		return nil, err
	}

	results := make([]interfaces.Document, 0, len(rows))
	for _, row := range rows {
		results = append(results, row)
	}
	return results, nil
}

func (c *Client) find(ctx context.Context, tableName string, filter map[string]interface{}, opts *interfaces.FindOptions) ([]map[string]interface{}, error) {
	query, values, err := c.dialect.buildSelect(tableName, filter, opts)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("executing select", "table", tableName)

	rows, err := c.db.QueryContext(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			c.logger.Warn("failed to close rows", "table", tableName, "error", cerr)
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	for rows.Next() {
		columnValues := make([]interface{}, len(columns))
		columnPointers := make([]interface{}, len(columns))
		for i := range columns {
			columnPointers[i] = &columnValues[i]
		}
		if err := rows.Scan(columnPointers...); err != nil {
			return nil, err
		}
		results = append(results, rowMap(columns, columnValues))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateOne sets the columns in update on the rows matching filter and returns the
// matched row count.
func (c *Client) UpdateOne(ctx context.Context, tableName string, filter interfaces.Document, update interfaces.Document) (int64, error) {
	filterMap, err := asMap(filter, "UpdateOne filter")
	if err != nil {
		return 0, err
	}
	updateMap, err := asMap(update, "UpdateOne update")
	if err != nil {
		return 0, err
	}
	query, values, err := c.dialect.buildUpdate(tableName, updateMap, filterMap)
	if err != nil {
		return 0, err
	}
	c.logger.Debug("executing update", "table", tableName)
	return c.exec(ctx, query, values)
}

// DeleteOne deletes the rows matching a non-empty filter.
func (c *Client) DeleteOne(ctx context.Context, tableName string, filter interfaces.Document) (int64, error) {
	filterMap, err := asMap(filter, "DeleteOne filter")
	if err != nil {
		return 0, err
	}
	if len(filterMap) == 0 {
		return 0, errors.New("DeleteOne requires a non-empty filter")
	}
	return c.DeleteMany(ctx, tableName, filterMap)
}

// DeleteMany deletes every row matching filter; an empty filter empties the table.
func (c *Client) DeleteMany(ctx context.Context, tableName string, filter interfaces.Document) (int64, error) {
	filterMap, err := asMap(filter, "DeleteMany filter")
	if err != nil {
		return 0, err
	}
	query, values, err := c.dialect.buildDelete(tableName, filterMap)
	if err != nil {
		return 0, err
	}
	c.logger.Debug("executing delete", "table", tableName)
	return c.exec(ctx, query, values)
}

func (c *Client) exec(ctx context.Context, query string, values []interface{}) (int64, error) {
	res, err := c.db.ExecContext(ctx, query, values...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Ping checks the health of the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.db == nil {
		return errors.New("sql client is not connected")
	}
	return c.db.PingContext(ctx)
}

// EnsureSchema executes schema, a single CREATE TABLE IF NOT EXISTS statement.
func (c *Client) EnsureSchema(ctx context.Context, tableName string, schema interfaces.Document) error {
	if c.db == nil {
		return errors.New("sql client is not connected")
	}
	createStmt, ok := schema.(string)
	if !ok || createStmt == "" {
		return fmt.Errorf("EnsureSchema for %s expects a CREATE TABLE statement string", tableName)
	}
	c.logger.Debug("ensuring table", "table", tableName)
	_, err := c.db.ExecContext(ctx, createStmt)
	return err
}
