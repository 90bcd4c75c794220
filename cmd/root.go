package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"blogly/config"
)

var configPath string

// NewRootCommand builds the blogly command tree.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "blogly",
		Short:         "Blogly users, posts and tags",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newSeedCommand())

	return cmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration, installs the default logger and
// opens the migrated database.
func bootstrap() (*config.AppConfig, *slog.Logger, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := config.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	db, err := config.InitDB(cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
