package config

import (
	"time"
)

// Config holds the application configuration.
type Config struct {
	InputPath         string        `mapstructure:"input_path"`
	Column            string        `mapstructure:"column"`
	PreviewRows       int           `mapstructure:"preview_rows"`
	FoldWidth         bool          `mapstructure:"fold_width"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MongoURI          string        `mapstructure:"mongo_uri"`
	MongoDatabase     string        `mapstructure:"mongo_database"`
	SyntheticDataDir  string        `mapstructure:"synthetic_data_dir"`
	SyntheticDataRows int           `mapstructure:"synthetic_data_rows"`
}
