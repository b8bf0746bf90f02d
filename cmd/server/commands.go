package main

import (
	"context"
	"fmt"

	"icebreaker/backend/internal/config"
	"icebreaker/backend/internal/database"
	"icebreaker/backend/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newRootCmd() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:          "icebreaker",
		Short:        "Icebreaker card catalog API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configDir)
		},
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding the .env file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configDir)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Migrate the schema and seed roles and default categories, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, zlog, err := bootstrap(configDir)
			if err != nil {
				return err
			}
			defer zlog.Sync() //nolint:errcheck

			db, err := openDatabase(cfg, zlog)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			zlog.Info("database migrated and seeded", zap.Strings("categories", cfg.Categories()))
			return nil
		},
	})
	return root
}

// bootstrap loads the configuration and builds the logger every command needs.
func bootstrap(configDir string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, zlog, nil
}

// openDatabase connects, migrates and seeds.
func openDatabase(cfg *config.Config, zlog *zap.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Error("failed to connect to database", zap.Error(err))
		return nil, err
	}
	if err := database.Seed(context.Background(), db, cfg.Categories()); err != nil {
		zlog.Error("failed to seed database", zap.Error(err))
		return nil, err
	}
	return db, nil
}
