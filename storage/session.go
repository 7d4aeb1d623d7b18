package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the part of *mongo.Client a Session needs.
type MongoClient interface {
	Disconnect(ctx context.Context) error
	Database(name string, opts ...*options.DatabaseOptions) *mongo.Database
}

// Session is an open MongoDB connection scoped to one database.
type Session struct {
	*MongoProvider
	client MongoClient
}

// NewSession scopes an existing client to database.
func NewSession(client MongoClient, database string) *Session {
	return &Session{
		MongoProvider: NewMongoProvider(client, database),
		client:        client,
	}
}

// OpenSession connects to uri with connect, or ConnectToMongoDB when connect is nil.
func OpenSession(ctx context.Context, connect ConnectFunc, uri, database string) (*Session, error) {
	if connect == nil {
		connect = ConnectToMongoDB
	}
	client, err := connect(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("connection to MongoDB failed: %w", err)
	}
	return NewSession(client, database), nil
}

// Close disconnects the underlying client.
func (s *Session) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
