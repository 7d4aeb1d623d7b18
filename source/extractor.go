// Package source works out where a load target lives: a CSV file on disk or
// a MongoDB collection.
package source

import (
	"errors"
	"fmt"
)

// SourceInfo holds the resolved data source and the location within it.
type SourceInfo struct {
	DataSource DataSource
	// Location is a file path for CSV and a collection name for Mongo.
	Location string
}

// InfoExtractor defines the interface for extracting source information from a target.
type InfoExtractor interface {
	ExtractInfo(target string) (*SourceInfo, error)
}

// ErrUnableToExtractInfo is returned when the extractor cannot parse the target.
var ErrUnableToExtractInfo = errors.New("unable to extract source info from target")

// UnableToExtractInfoError wraps ErrUnableToExtractInfo with the target.
func UnableToExtractInfoError(target string) error {
	return fmt.Errorf("%w, %q", ErrUnableToExtractInfo, target)
}

// Resolver tries each extractor in order and returns the first match.
type Resolver struct {
	extractors []InfoExtractor
}

// NewResolver creates a Resolver that recognises mongo targets before falling back to CSV paths.
func NewResolver() *Resolver {
	return &Resolver{
		extractors: []InfoExtractor{NewMongoExtractor(), NewCSVExtractor()},
	}
}

// ExtractInfo resolves target with the first extractor that accepts it.
func (r *Resolver) ExtractInfo(target string) (*SourceInfo, error) {
	for _, e := range r.extractors {
		info, err := e.ExtractInfo(target)
		if err == nil {
			return info, nil
		}
		if !errors.Is(err, ErrUnableToExtractInfo) {
			return nil, err
		}
	}

	return nil, UnableToExtractInfoError(target)
}
