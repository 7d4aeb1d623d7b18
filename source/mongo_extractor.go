package source

import (
	"regexp"
	"strings"
)

const mongoScheme = "mongo:"

// Collection names may not be empty or contain '$' or NUL.
var collectionName = regexp.MustCompile(`^[^$\x00]+$`)

// MongoExtractor extracts the collection from "mongo:<collection>" targets.
type MongoExtractor struct{}

// NewMongoExtractor creates a new MongoExtractor.
func NewMongoExtractor() *MongoExtractor {
	return &MongoExtractor{}
}

// ExtractInfo extracts the collection name from a mongo target.
func (e *MongoExtractor) ExtractInfo(target string) (*SourceInfo, error) {
	name, ok := strings.CutPrefix(target, mongoScheme)
	if !ok || !collectionName.MatchString(name) || strings.HasPrefix(name, "system.") {
		return nil, UnableToExtractInfoError(target)
	}

	return &SourceInfo{
		DataSource: Mongo,
		Location:   name,
	}, nil
}
