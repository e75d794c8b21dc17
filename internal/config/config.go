// Package config loads process configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every environment-driven setting the CLI and service wiring
// consume. An empty archive driver disables snapshot archiving.
type Config struct {
	CatalogDriver      string `env:"DENTICORE_CATALOG_DRIVER" envDefault:"memory"`
	CatalogSQLitePath  string `env:"DENTICORE_CATALOG_SQLITE_PATH" envDefault:"denticore.db"`
	CatalogPostgresDSN string `env:"DENTICORE_CATALOG_POSTGRES_DSN"`

	ArchiveDriver      string `env:"DENTICORE_ARCHIVE_DRIVER"`
	ArchiveFSRoot      string `env:"DENTICORE_ARCHIVE_FS_ROOT" envDefault:"plandata"`
	ArchiveS3Bucket    string `env:"DENTICORE_ARCHIVE_S3_BUCKET"`
	ArchiveS3Region    string `env:"DENTICORE_ARCHIVE_S3_REGION"`
	ArchiveS3Endpoint  string `env:"DENTICORE_ARCHIVE_S3_ENDPOINT"`
	ArchiveS3PathStyle bool   `env:"DENTICORE_ARCHIVE_S3_PATH_STYLE"`

	// Static S3 credentials, for MinIO and CI. Left empty, the SDK default
	// provider chain applies.
	ArchiveS3AccessKeyID     string `env:"DENTICORE_ARCHIVE_S3_ACCESS_KEY_ID"`
	ArchiveS3SecretAccessKey string `env:"DENTICORE_ARCHIVE_S3_SECRET_ACCESS_KEY"`
	ArchiveS3SessionToken    string `env:"DENTICORE_ARCHIVE_S3_SESSION_TOKEN"`

	RuleTablesPath string `env:"DENTICORE_RULE_TABLES"`
	LogLevel       string `env:"DENTICORE_LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
