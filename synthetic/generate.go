package synthetic

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"pancard/dataloader/appcontext"
	"pancard/dataloader/config"
	"pancard/dataloader/storage"
)

// DefaultCollection is the collection seeded when none is given.
const DefaultCollection = "synthetic-ingest"

// Options controls one generator run.
type Options struct {
	Rows           int
	Dir            string
	PersistToMongo bool
	Collection     string
	// Seed fixes the random source; zero means time-based.
	Seed int64
	// Connect defaults to storage.ConnectToMongoDB.
	Connect storage.ConnectFunc
}

// RunGenerateSyntheticData writes a synthetic CSV file, or seeds a MongoDB
// collection when PersistToMongo is set.
func RunGenerateSyntheticData(ctx context.Context, opts Options, cfg *config.Config) error {
	logger := appcontext.LoggerFromContext(ctx)

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if opts.PersistToMongo {
		collection := opts.Collection
		if collection == "" {
			collection = DefaultCollection
		}

		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}

		session, err := storage.OpenSession(ctx, opts.Connect, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return fmt.Errorf("failed to generate and persist synthetic data: %w", err)
		}
		defer func() {
			if deferErr := session.Close(ctx); deferErr != nil {
				logger.ErrorContext(ctx, "Error disconnecting from MongoDB", "error", deferErr)
			}
		}()

		if _, err := storage.SeedCollection(ctx, session, collection, cfg.Column, Records(opts.Rows, rng)); err != nil {
			return fmt.Errorf("failed to generate and persist synthetic data: %w", err)
		}
		logger.InfoContext(ctx, "Synthetic data generated and persisted successfully", "collection", collection)
		return nil
	}

	logger.InfoContext(ctx, "Generating synthetic data", "rows", opts.Rows, "dir", opts.Dir)
	path, err := GenerateSyntheticData(opts.Rows, opts.Dir, cfg.Column, rng)
	if err != nil {
		return fmt.Errorf("failed to generate synthetic data: %w", err)
	}
	logger.InfoContext(ctx, "Synthetic data generated successfully", "file", path)
	return nil
}
