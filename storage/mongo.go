// Package storage reads PAN records from MongoDB collections and seeds
// fixture collections for local runs.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pancard/dataloader/appcontext"
)

// DefaultDatabase is used when no database name is configured.
const DefaultDatabase = "pancard"

// ---- Abstractions for Testability ----

// DataStore defines the interface for collection operations.
type DataStore interface {
	Find(
		ctx context.Context,
		filter interface{},
		opts ...*options.FindOptions) (*mongo.Cursor, error)
	InsertMany(
		ctx context.Context,
		documents []interface{},
		opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// CollectionProvider defines the interface for obtaining a collection.
type CollectionProvider interface {
	Collection(name string) DataStore
}

// MongoCollection adapts *mongo.Collection to DataStore.
type MongoCollection struct {
	*mongo.Collection
}

// Find runs a query against the collection.
func (c *MongoCollection) Find(
	ctx context.Context,
	filter interface{},
	opts ...*options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := c.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to perform Find: %w", err)
	}

	return cursor, nil
}

// InsertMany inserts a batch of documents.
func (c *MongoCollection) InsertMany(
	ctx context.Context,
	documents []interface{},
	opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	result, err := c.Collection.InsertMany(ctx, documents, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to perform InsertMany: %w", err)
	}

	return result, nil
}

// MongoProvider adapts a MongoClient to CollectionProvider.
type MongoProvider struct {
	client   MongoClient
	database string
}

// NewMongoProvider creates a new MongoProvider for the given database.
func NewMongoProvider(client MongoClient, database string) *MongoProvider {
	if database == "" {
		database = DefaultDatabase
	}
	return &MongoProvider{client: client, database: database}
}

// Collection returns a DataStore for the given collection name.
func (p *MongoProvider) Collection(name string) DataStore {
	return &MongoCollection{p.client.Database(p.database).Collection(name)}
}

// ConnectFunc opens a MongoDB connection.
type ConnectFunc func(ctx context.Context, uri string) (*mongo.Client, error)

// ConnectToMongoDB establishes a connection to MongoDB.
func ConnectToMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	logger := appcontext.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Attempting to connect to MongoDB")

	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		if deferErr := client.Disconnect(ctx); deferErr != nil {
			err = errors.Join(err, deferErr)
		}
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.InfoContext(ctx, "Successfully established connection to MongoDB")
	return client, nil
}
