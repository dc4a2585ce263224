package loaders

import (
	"context"
	"fmt"
	"time"

	"github.com/petruschka/site-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const connectAttempts = 5

// MongoClient is the process-wide MongoDB connection pool.
type MongoClient struct {
	client       *mongo.Client
	queryTimeout time.Duration
}

// NewMongoClient connects and pings, retrying with exponential backoff so the
// API can start while the cluster is still coming up.
func NewMongoClient(ctx context.Context, uri string, queryTimeout time.Duration) (*MongoClient, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	attempt := 0
	err = utils.Retry(ctx, connectAttempts, utils.NewExpBackoff(), nil, func() error {
		attempt++
		pingErr := client.Ping(ctx, readpref.Primary())
		if pingErr != nil {
			utils.Zlog.Warn("MongoDB ping failed", zap.Int("attempt", attempt), zap.Error(pingErr))
		}
		return pingErr
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to reach mongodb: %w", err)
	}

	if queryTimeout <= 0 {
		queryTimeout = 10 * time.Second
	}
	utils.Zlog.Info("Connected to MongoDB", zap.Int("attempts", attempt))
	return &MongoClient{client: client, queryTimeout: queryTimeout}, nil
}

func (m *MongoClient) Collection(database, collection string) *mongo.Collection {
	return m.client.Database(database).Collection(collection)
}

// WithTimeout bounds a single query by the configured query timeout.
func (m *MongoClient) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.queryTimeout)
}

// Counts returns the estimated document count of every collection in database.
func (m *MongoClient) Counts(ctx context.Context, database string) (map[string]int64, error) {
	ctx, cancel := m.WithTimeout(ctx)
	defer cancel()

	db := m.client.Database(database)
	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list collections of %s: %w", database, err)
	}

	counts := make(map[string]int64, len(names))
	for _, name := range names {
		n, err := db.Collection(name).EstimatedDocumentCount(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s.%s: %w", database, name, err)
		}
		counts[name] = n
	}
	return counts, nil
}

// Find runs filter against database.collection and decodes every document.
func (m *MongoClient) Find(ctx context.Context, database, collection string, filter any, opts ...*options.FindOptions) ([]bson.M, error) {
	ctx, cancel := m.WithTimeout(ctx)
	defer cancel()

	start := time.Now()
	cursor, err := m.Collection(database, collection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s.%s: %w", database, collection, err)
	}
	defer cursor.Close(ctx)

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s.%s: %w", database, collection, err)
	}

	utils.Zlog.Debug("Mongo query",
		zap.String("collection", database+"."+collection),
		zap.Int("documents", len(docs)),
		zap.Duration("duration", time.Since(start)))
	return docs, nil
}

// FindOne returns mongo.ErrNoDocuments when nothing matches.
func (m *MongoClient) FindOne(ctx context.Context, database, collection string, filter any) (bson.M, error) {
	ctx, cancel := m.WithTimeout(ctx)
	defer cancel()

	var doc bson.M
	if err := m.Collection(database, collection).FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Ping reports whether the primary is reachable.
func (m *MongoClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.queryTimeout)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoClient) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
