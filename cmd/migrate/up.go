package main

import (
	"context"
	"fmt"
	"time"

	mongoMigration "classbook/internal/migrations/mongo"
	"classbook/pkg/config"

	"github.com/spf13/cobra"
)

var upTimeout time.Duration

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Create collections, schema validators and indexes",
	RunE:  runUp,
}

func init() {
	upCmd.Flags().DurationVar(&upTimeout, "timeout", 2*time.Minute, "Overall deadline for the migration")
}

func runUp(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), upTimeout)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Migration completed successfully.")
	return nil
}
