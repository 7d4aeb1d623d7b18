package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pancard/dataloader/appcontext"
	"pancard/dataloader/table"
)

const idField = "_id"

// ErrCollectionEmpty is returned when a collection holds no documents.
var ErrCollectionEmpty = errors.New("collection has no documents")

// CollectionEmptyError wraps ErrCollectionEmpty with the collection name.
func CollectionEmptyError(collection string) error {
	return fmt.Errorf("%w, %s", ErrCollectionEmpty, collection)
}

// MongoSource loads record tables from MongoDB collections. It only reads.
type MongoSource struct {
	uri      string
	database string
	connect  ConnectFunc
	timeout  time.Duration
	session  *Session
	provider CollectionProvider
}

// SourceOption configures a MongoSource.
type SourceOption func(*MongoSource)

// WithConnectFunc replaces ConnectToMongoDB.
func WithConnectFunc(fn ConnectFunc) SourceOption {
	return func(s *MongoSource) {
		s.connect = fn
	}
}

// WithTimeout bounds each Load and Close. Zero means no deadline.
func WithTimeout(d time.Duration) SourceOption {
	return func(s *MongoSource) {
		s.timeout = d
	}
}

// WithProvider uses an existing provider instead of connecting.
func WithProvider(provider CollectionProvider) SourceOption {
	return func(s *MongoSource) {
		s.provider = provider
	}
}

// NewMongoSource creates a MongoSource. The connection is opened on the first Load.
func NewMongoSource(uri, database string, opts ...SourceOption) *MongoSource {
	s := &MongoSource{
		uri:      uri,
		database: database,
		connect:  ConnectToMongoDB,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads every document of collection in natural order. Columns appear in
// the order they are first seen; fields absent from a document are missing cells.
func (s *MongoSource) Load(ctx context.Context, collection string) (*table.Table, error) {
	logger := appcontext.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "Loading data from MongoDB", "collection", collection)

	ctx, cancel := s.bound(ctx)
	defer cancel()

	provider, err := s.collections(ctx)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().SetProjection(bson.D{{Key: idField, Value: 0}})
	cursor, err := provider.Collection(collection).Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}
	defer func() {
		if deferErr := cursor.Close(ctx); deferErr != nil {
			logger.ErrorContext(ctx, "Error closing MongoDB cursor", "error", deferErr)
		}
	}()

	var columns []string
	seen := make(map[string]struct{})
	var records []table.Record

	for cursor.Next(ctx) {
		var doc bson.D
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document from %s: %w", collection, err)
		}

		rec := make(table.Record, len(doc))
		for _, field := range doc {
			if field.Key == idField {
				continue
			}
			if _, ok := seen[field.Key]; !ok {
				seen[field.Key] = struct{}{}
				columns = append(columns, field.Key)
			}
			rec[field.Key] = field.Value
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collection %s: %w", collection, err)
	}

	if len(records) == 0 {
		return nil, CollectionEmptyError(collection)
	}

	tbl := table.New(columns)
	for _, rec := range records {
		tbl.Append(rec)
	}

	logger.DebugContext(ctx, "Loaded collection", "collection", collection, "columns", columns, "rows", tbl.Len())
	return tbl, nil
}

// Close disconnects the client opened by Load, if any.
func (s *MongoSource) Close(ctx context.Context) error {
	if s.session == nil {
		return nil
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	err := s.session.Close(ctx)
	s.session = nil
	return err
}

func (s *MongoSource) collections(ctx context.Context) (CollectionProvider, error) {
	if s.provider != nil {
		return s.provider, nil
	}

	session, err := OpenSession(ctx, s.connect, s.uri, s.database)
	if err != nil {
		return nil, err
	}

	s.session = session
	s.provider = session
	return s.provider, nil
}

func (s *MongoSource) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
