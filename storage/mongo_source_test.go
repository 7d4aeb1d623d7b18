package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pancard/dataloader/storage"
)

// Mock for DataStore interface.
type mockDataStore struct {
	findFunc       func(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	insertManyFunc func(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

func (m *mockDataStore) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, filter, opts...)
	}
	return mongo.NewCursorFromDocuments(nil, nil, nil)
}

func (m *mockDataStore) InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	if m.insertManyFunc != nil {
		return m.insertManyFunc(ctx, documents, opts...)
	}
	return &mongo.InsertManyResult{InsertedIDs: documents}, nil
}

// Mock for CollectionProvider interface.
type mockCollectionProvider struct {
	collectionFunc func(name string) storage.DataStore
}

func (m *mockCollectionProvider) Collection(name string) storage.DataStore {
	if m.collectionFunc != nil {
		return m.collectionFunc(name)
	}
	return &mockDataStore{}
}

func cursorOf(t *testing.T, docs ...bson.D) *mongo.Cursor {
	t.Helper()
	raw := make([]interface{}, 0, len(docs))
	for _, d := range docs {
		raw = append(raw, d)
	}
	cursor, err := mongo.NewCursorFromDocuments(raw, nil, nil)
	require.NoError(t, err)
	return cursor
}

func TestMongoSource_Load_Success(t *testing.T) {
	ctx := context.Background()
	mockDS := &mockDataStore{
		findFunc: func(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
			return cursorOf(t,
				bson.D{{Key: "_id", Value: 1}, {Key: "Pan_Numbers", Value: " abcde1234f "}},
				bson.D{{Key: "Pan_Numbers", Value: nil}, {Key: "Source", Value: "kyc"}},
				bson.D{{Key: "Source", Value: "branch"}},
			), nil
		},
	}
	provider := &mockCollectionProvider{
		collectionFunc: func(name string) storage.DataStore {
			if name != "pan_numbers" {
				t.Errorf("Expected collection name %s, got %s", "pan_numbers", name)
			}
			return mockDS
		},
	}

	src := storage.NewMongoSource("", "", storage.WithProvider(provider))
	tbl, err := src.Load(ctx, "pan_numbers")
	require.NoError(t, err)

	assert.Equal(t, []string{"Pan_Numbers", "Source"}, tbl.Columns)
	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, " abcde1234f ", tbl.Rows[0]["Pan_Numbers"])
	assert.NotContains(t, tbl.Rows[0], "_id")
	assert.Nil(t, tbl.Rows[1]["Pan_Numbers"])
	_, ok := tbl.Value(2, "Pan_Numbers")
	assert.False(t, ok)
	assert.Equal(t, "branch", tbl.Rows[2]["Source"])
	assert.NoError(t, src.Close(ctx))
}

func TestMongoSource_Load_EmptyCollection(t *testing.T) {
	src := storage.NewMongoSource("", "", storage.WithProvider(&mockCollectionProvider{}))

	tbl, err := src.Load(context.Background(), "empty")

	assert.Nil(t, tbl)
	assert.ErrorIs(t, err, storage.ErrCollectionEmpty)
}

func TestMongoSource_Load_FindError(t *testing.T) {
	expectedErr := errors.New("find error")
	provider := &mockCollectionProvider{
		collectionFunc: func(name string) storage.DataStore {
			return &mockDataStore{
				findFunc: func(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
					return nil, expectedErr
				},
			}
		},
	}

	_, err := storage.NewMongoSource("", "", storage.WithProvider(provider)).Load(context.Background(), "pan")

	assert.ErrorIs(t, err, expectedErr)
}

func TestMongoSource_Load_ConnectionFailed(t *testing.T) {
	expectedErr := errors.New("no reachable servers")
	var gotURI string
	connect := func(ctx context.Context, uri string) (*mongo.Client, error) {
		gotURI = uri
		return nil, expectedErr
	}

	src := storage.NewMongoSource("mongodb://invalid:1234", "pancard", storage.WithConnectFunc(connect))
	_, err := src.Load(context.Background(), "pan")

	require.ErrorIs(t, err, expectedErr)
	assert.Contains(t, err.Error(), "connection to MongoDB failed")
	assert.Equal(t, "mongodb://invalid:1234", gotURI)
	assert.NoError(t, src.Close(context.Background()))
}

func TestSeedCollection_Success(t *testing.T) {
	var inserted []interface{}
	provider := &mockCollectionProvider{
		collectionFunc: func(name string) storage.DataStore {
			assert.Equal(t, "synthetic-ingest", name)
			return &mockDataStore{
				insertManyFunc: func(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
					inserted = documents
					return &mongo.InsertManyResult{InsertedIDs: documents}, nil
				},
			}
		},
	}

	n, err := storage.SeedCollection(context.Background(), provider, "synthetic-ingest", "Pan_Numbers",
		[]string{" abcde1234f", ""})
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	require.Len(t, inserted, 2)
	assert.Equal(t, bson.D{{Key: "Pan_Numbers", Value: " abcde1234f"}}, inserted[0])
	assert.Equal(t, bson.D{{Key: "Pan_Numbers", Value: nil}}, inserted[1])
}

func TestSeedCollection_NoValues(t *testing.T) {
	n, err := storage.SeedCollection(context.Background(), &mockCollectionProvider{}, "pan", "Pan_Numbers", nil)

	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedCollection_InsertError(t *testing.T) {
	expectedErr := errors.New("insert error")
	provider := &mockCollectionProvider{
		collectionFunc: func(name string) storage.DataStore {
			return &mockDataStore{
				insertManyFunc: func(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
					return nil, expectedErr
				},
			}
		},
	}

	_, err := storage.SeedCollection(context.Background(), provider, "pan", "Pan_Numbers", []string{"a"})

	assert.ErrorIs(t, err, expectedErr)
}

func TestMongoSource_Load_AppliesTimeout(t *testing.T) {
	var hasDeadline bool
	provider := &mockCollectionProvider{
		collectionFunc: func(name string) storage.DataStore {
			return &mockDataStore{
				findFunc: func(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
					_, hasDeadline = ctx.Deadline()
					return cursorOf(t, bson.D{{Key: "Pan_Numbers", Value: "abcde1234f"}}), nil
				},
			}
		},
	}

	src := storage.NewMongoSource("", "", storage.WithProvider(provider), storage.WithTimeout(time.Minute))
	_, err := src.Load(context.Background(), "pan")
	require.NoError(t, err)

	assert.True(t, hasDeadline)
}

func TestMongoSource_Load_NoTimeout(t *testing.T) {
	hasDeadline := true
	provider := &mockCollectionProvider{
		collectionFunc: func(name string) storage.DataStore {
			return &mockDataStore{
				findFunc: func(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
					_, hasDeadline = ctx.Deadline()
					return cursorOf(t, bson.D{{Key: "Pan_Numbers", Value: "abcde1234f"}}), nil
				},
			}
		},
	}

	_, err := storage.NewMongoSource("", "", storage.WithProvider(provider)).Load(context.Background(), "pan")
	require.NoError(t, err)

	assert.False(t, hasDeadline)
}
