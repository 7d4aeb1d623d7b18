package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default values.
const (
	defaultInputPath         = "dataset/PAN Number Validation Dataset.csv"
	defaultColumn            = "Pan_Numbers"
	defaultPreviewRows       = 10
	defaultFoldWidth         = false
	defaultTimeout           = 30 * time.Second
	defaultMongoURI          = "mongodb://localhost:27017/pancard"
	defaultMongoHost         = "localhost"
	defaultMongoPort         = "27017"
	defaultMongoDatabase     = "pancard"
	defaultSyntheticDataDir  = "tmp/synthetic"
	defaultSyntheticDataRows = 100
	configName               = "pancard"
	envPrefix                = "PAN"
)

// Keys shared by the config file, PAN_* environment variables and CLI flags.
const (
	KeyInputPath         = "input_path"
	KeyColumn            = "column"
	KeyPreviewRows       = "preview_rows"
	KeyFoldWidth         = "fold_width"
	KeyTimeout           = "timeout"
	KeyMongoURI          = "mongo_uri"
	KeyMongoHost         = "mongo_host"
	KeyMongoUser         = "mongo_user"
	KeyMongoPassword     = "mongo_password"
	KeyMongoDatabase     = "mongo_database"
	KeySyntheticDataDir  = "synthetic_data_dir"
	KeySyntheticDataRows = "synthetic_data_rows"
)

// NewViper returns a viper instance with defaults, config file search paths and
// environment bindings in place. The unprefixed MONGO_* variables are honoured
// after their PAN_ counterparts.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyInputPath, defaultInputPath)
	v.SetDefault(KeyColumn, defaultColumn)
	v.SetDefault(KeyPreviewRows, defaultPreviewRows)
	v.SetDefault(KeyFoldWidth, defaultFoldWidth)
	v.SetDefault(KeyTimeout, defaultTimeout)
	v.SetDefault(KeyMongoURI, "")
	v.SetDefault(KeyMongoHost, defaultMongoHost)
	v.SetDefault(KeyMongoUser, "")
	v.SetDefault(KeyMongoPassword, "")
	v.SetDefault(KeyMongoDatabase, defaultMongoDatabase)
	v.SetDefault(KeySyntheticDataDir, defaultSyntheticDataDir)
	v.SetDefault(KeySyntheticDataRows, defaultSyntheticDataRows)

	for key, legacy := range map[string]string{
		KeyMongoURI:      "MONGO_URI",
		KeyMongoHost:     "MONGO_HOST",
		KeyMongoUser:     "MONGO_USER",
		KeyMongoPassword: "MONGO_PASSWORD",
	} {
		_ = v.BindEnv(key, envPrefix+"_"+strings.ToUpper(key), legacy)
	}

	return v
}

// LoadConfig reads the optional config file, then resolves every setting from
// flags, environment and defaults.
func LoadConfig(ctx context.Context, logger *slog.Logger, v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logger.DebugContext(ctx, "No config file found, using defaults and environment")
	} else {
		logger.DebugContext(ctx, "Using config file", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.Column) == "" {
		logger.WarnContext(ctx, "Empty column name, using default", "default", defaultColumn)
		cfg.Column = defaultColumn
	}
	if cfg.PreviewRows < 0 {
		logger.WarnContext(ctx, "Invalid value for preview rows, using default",
			"value", cfg.PreviewRows, "default", defaultPreviewRows)
		cfg.PreviewRows = defaultPreviewRows
	}
	if cfg.Timeout <= 0 {
		logger.WarnContext(ctx, "Invalid value for timeout, using default",
			"value", cfg.Timeout, "default", defaultTimeout)
		cfg.Timeout = defaultTimeout
	}
	if cfg.SyntheticDataRows < 0 {
		logger.WarnContext(ctx, "Invalid value for synthetic data rows, using default",
			"value", cfg.SyntheticDataRows, "default", defaultSyntheticDataRows)
		cfg.SyntheticDataRows = defaultSyntheticDataRows
	}

	cfg.MongoURI = formatMongoURI(ctx, v, logger)

	logger.DebugContext(ctx, "Resolved configuration",
		"input", cfg.InputPath, "column", cfg.Column, "previewRows", cfg.PreviewRows,
		"foldWidth", cfg.FoldWidth, "timeout", cfg.Timeout)

	return &cfg, nil
}

// formatMongoURI formats mongo settings to a url and return the result.
func formatMongoURI(
	ctx context.Context,
	v *viper.Viper,
	logger *slog.Logger,
) string {
	if mongoURI := v.GetString(KeyMongoURI); mongoURI != "" {
		logger.DebugContext(ctx, "Using MongoDB URI from configuration")
		return mongoURI
	}

	mongoHost := v.GetString(KeyMongoHost)
	mongoUser := v.GetString(KeyMongoUser)
	mongoPassword := v.GetString(KeyMongoPassword)

	if mongoUser != "" && mongoPassword != "" {
		hostPort := net.JoinHostPort(mongoHost, defaultMongoPort)
		logger.DebugContext(ctx, "Created MongoDB URI from user, password, and host", "host", hostPort)
		mongoURI := url.URL{
			Scheme:   "mongodb",
			User:     url.UserPassword(mongoUser, mongoPassword),
			Host:     hostPort,
			Path:     "/" + v.GetString(KeyMongoDatabase),
			RawQuery: "authSource=admin",
		}
		return mongoURI.String()
	}

	if mongoHost != defaultMongoHost {
		hostPort := net.JoinHostPort(mongoHost, defaultMongoPort)
		logger.DebugContext(ctx, "Created MongoDB URI from host", "host", hostPort)
		return fmt.Sprintf("mongodb://%s/%s", hostPort, v.GetString(KeyMongoDatabase))
	}

	logger.DebugContext(ctx, "Using default MongoDB URI", "uri", defaultMongoURI)
	return defaultMongoURI
}
