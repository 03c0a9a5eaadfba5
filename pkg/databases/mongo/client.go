package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/haguru/elibrary/config"
	"github.com/haguru/elibrary/internal/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	MAXPOOLSIZE = 20
	IDFIELD     = "_id"

	// CountersCollection holds one {_id: <name>, seq: <n>} document per numeric sequence.
	CountersCollection = "counters"
	seqField           = "seq"
)

// MongoDBClient implements the interfaces.DBClient interface for MongoDB operations.
type MongoDBClient struct {
	ServerOpts       *options.ServerAPIOptions
	client           *mongo.Client
	db               *mongo.Database
	logger           interfaces.Logger
	timeout          time.Duration
	validCollections map[string]bool // A map to validate collection names
	validFields      map[string]bool // A map to validate field names
}

var _ interfaces.DBClient = (*MongoDBClient)(nil)

// NewMongoDB returns an unconnected MongoDB client configured from dbConfig.
func NewMongoDB(dbConfig *config.MongoDBConfig, logger interfaces.Logger) (*MongoDBClient, error) {
	if dbConfig == nil {
		return nil, errors.New("MongoDBClient: configuration is nil")
	}
	return &MongoDBClient{
		logger:           logger,
		timeout:          dbConfig.Timeout,
		ServerOpts:       config.BuildServerAPIOptions(dbConfig.Options),
		validCollections: config.ListToMap(dbConfig.ValidCollections),
		validFields:      config.ListToMap(dbConfig.ValidFields),
	}, nil
}

// Connect establishes a connection to the MongoDB database using the provided DSN (Data Source Name).
// The DSN should be in the format "mongodb://<host>:<port>/<database>"; the path names the
// database the client works on.
func (m *MongoDBClient) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return errors.New("MongoDBClient: DSN is empty")
	}
	if !strings.HasPrefix(dsn, "mongodb://") && !strings.HasPrefix(dsn, "mongodb+srv://") {
		return errors.New("MongoDBClient: Invalid DSN format, expected 'mongodb://' or 'mongodb+srv://'")
	}
	databaseName, err := getDBNameFromMongoDSN(dsn)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to extract database name from datasource name(dsn): %w", err)
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	clientOptions := options.Client().ApplyURI(dsn)
	if m.ServerOpts != nil {
		clientOptions.SetServerAPIOptions(m.ServerOpts)
	}
	clientOptions.SetMaxPoolSize(MAXPOOLSIZE)
	clientOptions.SetReadPreference(readpref.PrimaryPreferred())

	m.logger.Info("connecting to MongoDB", "database", databaseName)
	m.client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	if err = m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to connect to MongoDB server: %w", err)
	}
	m.logger.Info("connected to MongoDB", "database", databaseName)

	m.db = m.client.Database(databaseName)
	return nil
}

// Disconnect closes the connection to the MongoDB database.
func (m *MongoDBClient) Disconnect(ctx context.Context) error {
	m.logger.Debug("disconnecting from MongoDB")
	if m.client != nil {
		return m.client.Disconnect(ctx)
	}

	return nil
}

func (m *MongoDBClient) collection(name string) (*mongo.Collection, error) {
	if name == "" {
		return nil, errors.New("MongoDBClient: Collection name cannot be empty")
	}
	if !m.validCollections[name] {
		return nil, fmt.Errorf("MongoDBClient: Invalid collection name: %s", name)
	}
	if m.db == nil {
		return nil, errors.New("MongoDBClient: not connected to a database")
	}
	return m.db.Collection(name), nil
}

// InsertOne inserts a document and returns its ID.
func (m *MongoDBClient) InsertOne(ctx context.Context, collectionName string, document interfaces.Document) (interface{}, error) {
	coll, err := m.collection(collectionName)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("inserting one", "collection", collectionName)

	res, err := coll.InsertOne(ctx, m.sanitizeDocument(document))
	if err != nil {
		return nil, fmt.Errorf("MongoDBClient: Failed to insert one into %s: %w", collectionName, err)
	}

	return res.InsertedID, nil
}

// FindOne decodes the first document matching filter into result.
// It returns interfaces.ErrNoDocuments when nothing matches.
func (m *MongoDBClient) FindOne(ctx context.Context, collectionName string, filter interfaces.Document, result interfaces.Document) error {
	coll, err := m.collection(collectionName)
	if err != nil {
		return err
	}
	m.logger.Debug("finding one", "collection", collectionName)

	err = coll.FindOne(ctx, m.sanitizeDocument(filter)).Decode(result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return interfaces.ErrNoDocuments
	}
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to find one in %s: %w", collectionName, err)
	}

	return nil
}

// FindMany retrieves multiple documents from the specified collection.
func (m *MongoDBClient) FindMany(ctx context.Context, collectionName string, filter interfaces.Document, opts *interfaces.FindOptions) ([]interfaces.Document, error) {
	coll, err := m.collection(collectionName)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("finding many", "collection", collectionName)

	findOpts, err := m.buildFindOptions(opts)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, m.sanitizeDocument(filter), findOpts)
	if err != nil {
		return nil, fmt.Errorf("MongoDBClient: Finding many in %s failed: %w", collectionName, err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			m.logger.Warn("failed to close cursor", "collection", collectionName, "error", err)
		}
	}()

	results := []interfaces.Document{}
	for cursor.Next(ctx) {
		var doc map[string]interface{}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("MongoDBClient: Failed to decode cursor: %w", err)
		}
		results = append(results, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("MongoDBClient: cursor failed: %w", err)
	}

	return results, nil
}

func (m *MongoDBClient) buildFindOptions(opts *interfaces.FindOptions) (*options.FindOptions, error) {
	findOpts := options.Find()
	if opts == nil {
		return findOpts, nil
	}
	if opts.SortBy != "" {
		if !m.validFields[opts.SortBy] {
			return nil, fmt.Errorf("MongoDBClient: Invalid sort field: %s", opts.SortBy)
		}
		direction := 1
		if opts.Descending {
			direction = -1
		}
		findOpts.SetSort(bson.D{{Key: opts.SortBy, Value: direction}})
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	return findOpts, nil
}

// UpdateOne sets the fields of update on the first document matching filter.
// Returns the count of matched documents.
func (m *MongoDBClient) UpdateOne(ctx context.Context, collectionName string, filter interfaces.Document, update interfaces.Document) (int64, error) {
	coll, err := m.collection(collectionName)
	if err != nil {
		return 0, err
	}
	m.logger.Debug("updating one", "collection", collectionName)

	fields := m.sanitizeDocument(update)
	if len(fields) == 0 {
		return 0, errors.New("MongoDBClient: update has no valid fields")
	}

	res, err := coll.UpdateOne(ctx, m.sanitizeDocument(filter), bson.M{"$set": fields})
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed updating one in %s: %w", collectionName, err)
	}

	return res.MatchedCount, nil
}

// DeleteOne removes a single document from the specified collection using a filter.
// Returns the count of deleted documents and an error if the operation fails.
func (m *MongoDBClient) DeleteOne(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	coll, err := m.collection(collectionName)
	if err != nil {
		return 0, err
	}
	m.logger.Debug("deleting one", "collection", collectionName)

	sanitizedFilter := m.sanitizeDocument(filter)
	if len(sanitizedFilter) == 0 {
		return 0, errors.New("MongoDBClient: DeleteOne requires a non-empty filter")
	}

	res, err := coll.DeleteOne(ctx, sanitizedFilter)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed deleting one from %s: %w", collectionName, err)
	}

	return res.DeletedCount, nil
}

// DeleteMany removes multiple documents from a collection using a filter.
// Returns the count of deleted documents and an error if the operation fails.
func (m *MongoDBClient) DeleteMany(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	coll, err := m.collection(collectionName)
	if err != nil {
		return 0, err
	}
	m.logger.Debug("deleting many", "collection", collectionName)

	res, err := coll.DeleteMany(ctx, m.sanitizeDocument(filter))
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed Deleting many from %s: %w", collectionName, err)
	}

	return res.DeletedCount, nil
}

// NextSequence atomically increments the named counter and returns its new value. The
// counter starts at 1.
func (m *MongoDBClient) NextSequence(ctx context.Context, name string) (int64, error) {
	coll, err := m.collection(CountersCollection)
	if err != nil {
		return 0, err
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err = coll.FindOneAndUpdate(ctx, bson.M{IDFIELD: name}, bson.M{"$inc": bson.M{seqField: 1}}, opts).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed to advance sequence %s: %w", name, err)
	}
	return counter.Seq, nil
}

// Ping verifies the MongoDB connection health using a ping command.
func (m *MongoDBClient) Ping(ctx context.Context) error {
	if m.client == nil {
		return errors.New("MongoDBClient: not connected")
	}
	return m.client.Ping(ctx, nil)
}

// getDBNameFromMongoDSN extracts the database name from a MongoDB DSN.
func getDBNameFromMongoDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB DSN: %w", err)
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", errors.New("no database name found in MongoDB DSN path")
	}

	// Only the first path segment names the database.
	if idx := strings.Index(dbName, "/"); idx != -1 {
		dbName = dbName[:idx]
	}

	return dbName, nil
}

// EnsureSchema creates the index described by schema, a mongo.IndexModel, on the collection.
// The collection is created on first use.
func (m *MongoDBClient) EnsureSchema(ctx context.Context, collectionName string, schema interfaces.Document) error {
	coll, err := m.collection(collectionName)
	if err != nil {
		return err
	}

	model, ok := schema.(mongo.IndexModel)
	if !ok {
		return errors.New("EnsureSchema: expected mongo.IndexModel for MongoDB")
	}
	name, err := coll.Indexes().CreateOne(ctx, model)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to create index on %s: %w", collectionName, err)
	}
	m.logger.Debug("index ensured", "collection", collectionName, "index", name)
	return nil
}

// sanitizeDocument keeps only whitelisted field names. The _id field and any key carrying
// an operator or path character are dropped so callers cannot inject query operators.
// Documents that are not maps yield an empty document.
func (m *MongoDBClient) sanitizeDocument(document interfaces.Document) bson.M {
	sanitized := bson.M{}

	var docMap map[string]interface{}
	switch doc := document.(type) {
	case map[string]interface{}:
		docMap = doc
	case bson.M:
		docMap = doc
	default:
		if document != nil {
			m.logger.Warn("document is not a map, ignoring it", "type", fmt.Sprintf("%T", document))
		}
		return sanitized
	}

	for key, value := range docMap {
		if key == IDFIELD {
			continue
		}
		if !m.validFields[key] || strings.ContainsAny(key, "$.") {
			m.logger.Warn("skipping invalid or unsafe field name", "field", key)
			continue
		}
		sanitized[key] = value
	}

	return sanitized
}
