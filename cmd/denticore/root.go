package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"denticore/internal/blob"
	"denticore/internal/catalog"
	"denticore/internal/config"
	"denticore/internal/core"
)

type appContext struct {
	cfg     config.Config
	tables  core.RuleTables
	logger  *zap.Logger
	catalog catalog.Store
	archive blob.Store
}

func newRootCmd() *cobra.Command {
	var tablesPath string
	root := &cobra.Command{
		Use:           "denticore",
		Short:         "Validate and repair dental restoration treatment plans",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&tablesPath, "tables", "", "rule tables YAML (overrides DENTICORE_RULE_TABLES)")
	root.AddCommand(newCheckCmd(&tablesPath))
	root.AddCommand(newCatalogCmd(&tablesPath))
	return root
}

// newAppContext wires configuration, rule tables, logger, and stores for one
// command invocation.
func newAppContext(ctx context.Context, tablesPath string, needArchive bool) (*appContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	path := tablesPath
	if path == "" {
		path = cfg.RuleTablesPath
	}
	tables := core.DefaultRuleTables()
	if path != "" {
		tables, err = core.LoadRuleTables(path)
		if err != nil {
			return nil, err
		}
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := catalog.Open(ctx, catalog.Options{
		Driver:      catalog.Driver(cfg.CatalogDriver),
		SQLitePath:  cfg.CatalogSQLitePath,
		PostgresDSN: cfg.CatalogPostgresDSN,
	})
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	app := &appContext{cfg: cfg, tables: tables, logger: logger, catalog: store}
	if needArchive && cfg.ArchiveDriver != "" && cfg.ArchiveDriver != "none" {
		archive, err := blob.Open(ctx, blob.Options{
			Driver: blob.Driver(cfg.ArchiveDriver),
			FSRoot: cfg.ArchiveFSRoot,
			S3: blob.S3Config{
				Bucket:          cfg.ArchiveS3Bucket,
				Region:          cfg.ArchiveS3Region,
				Endpoint:        cfg.ArchiveS3Endpoint,
				PathStyle:       cfg.ArchiveS3PathStyle,
				AccessKeyID:     cfg.ArchiveS3AccessKeyID,
				SecretAccessKey: cfg.ArchiveS3SecretAccessKey,
				SessionToken:    cfg.ArchiveS3SessionToken,
			},
		})
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("open archive: %w", err)
		}
		app.archive = archive
	}
	return app, nil
}

func (a *appContext) close() {
	if a.catalog != nil {
		_ = a.catalog.Close()
	}
	_ = a.logger.Sync()
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
