package source

import (
	"path/filepath"
	"strings"
)

// CSVExtractor accepts any non-empty path that is not a mongo target.
type CSVExtractor struct{}

// NewCSVExtractor creates a new CSVExtractor.
func NewCSVExtractor() *CSVExtractor {
	return &CSVExtractor{}
}

// ExtractInfo returns the cleaned file path.
func (e *CSVExtractor) ExtractInfo(target string) (*SourceInfo, error) {
	if strings.TrimSpace(target) == "" || strings.HasPrefix(target, mongoScheme) {
		return nil, UnableToExtractInfoError(target)
	}

	return &SourceInfo{
		DataSource: CSV,
		Location:   filepath.Clean(target),
	}, nil
}
