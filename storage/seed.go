package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pancard/dataloader/appcontext"
)

// SeedCollection inserts one document per value into collection, storing the
// value under column. Empty values are stored as null. It returns the number
// of inserted documents.
func SeedCollection(
	ctx context.Context,
	provider CollectionProvider,
	collection string,
	column string,
	values []string,
) (int, error) {
	if len(values) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(values))
	for _, v := range values {
		var value interface{}
		if v != "" {
			value = v
		}
		docs = append(docs, bson.D{{Key: column, Value: value}})
	}

	result, err := provider.Collection(collection).InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return 0, fmt.Errorf("failed to seed collection %s: %w", collection, err)
	}

	appcontext.LoggerFromContext(ctx).InfoContext(ctx, "Seeded collection",
		"collection", collection, "documents", len(result.InsertedIDs))
	return len(result.InsertedIDs), nil
}
