package main

import (
	"database/sql"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/tsootsoo/dictees/config"
	"github.com/tsootsoo/dictees/database"
	"github.com/tsootsoo/dictees/internal/logger"
	"github.com/tsootsoo/dictees/internal/service"
	"gorm.io/gorm"
)

func newRootCommand() *cobra.Command {
	var assetsDir string

	ctx := newCommandContext(&assetsDir)

	rootCmd := &cobra.Command{
		Use:           "dicteectl",
		Short:         "Dictées maintenance CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&assetsDir, "assets-dir", "", "Override ASSETS_DIR")

	rootCmd.AddCommand(newAssetsCommand(ctx))
	rootCmd.AddCommand(newAudioCommand(ctx))

	return rootCmd
}

// commandContext lazily builds what the subcommands need so that commands
// touching only local files never open a database connection.
type commandContext struct {
	assetsDir *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	db    *gorm.DB
	sqlDB *sql.DB
}

func newCommandContext(assetsDir *string) *commandContext {
	return &commandContext{assetsDir: assetsDir}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.NewConfig()
		if err != nil {
			c.configErr = err
			return
		}
		if c.assetsDir != nil {
			if dir := strings.TrimSpace(*c.assetsDir); dir != "" {
				cfg.AssetsDir = dir
			}
		}
		logger.Configure(cfg.Log.Level, cfg.Log.File)
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) storage() (service.StorageService, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return service.NewStorageService(cfg)
}

func (c *commandContext) database() (*gorm.DB, error) {
	if c.db != nil {
		return c.db, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	db, sqlDB, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	c.db, c.sqlDB = db, sqlDB
	return db, nil
}

func (c *commandContext) close() error {
	if c.sqlDB == nil {
		return nil
	}
	err := c.sqlDB.Close()
	c.db, c.sqlDB = nil, nil
	return err
}
