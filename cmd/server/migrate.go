package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sakura/internal/pg"
	"sakura/internal/schema"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create Postgres enum types for the mapped dropdown enums",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DBURL == "" {
			return errors.New("database url is empty (set --db or SAKURA_DB_URL)")
		}
		cat, err := schema.LoadFile(cfg.SchemaPath)
		if err != nil {
			return err
		}
		db, err := pg.Open(cmd.Context(), cfg.DBURL, cfg.DBPool())
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer db.Close()

		n, err := applyEnumTypes(cmd.Context(), db, cat)
		if err != nil {
			return err
		}
		logger.Info("enum types migrated", zap.Int("created", n))
		return nil
	},
}
