package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"classbook/internal/provisioning"
	"classbook/internal/reservations/repository"
	"classbook/internal/reservations/validator"
	"classbook/pkg/config"

	"github.com/spf13/cobra"
)

var (
	seedFile    string
	seedTimeout time.Duration
	seedDryRun  bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert classrooms from a YAML file",
	Example: `  migrate seed --file classrooms.yaml
  migrate seed --file classrooms.yaml --dry-run`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML file listing classrooms")
	seedCmd.Flags().DurationVar(&seedTimeout, "timeout", time.Minute, "Overall deadline for the seed")
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "Parse the file and print it without writing")
	_ = seedCmd.MarkFlagRequired("file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	if seedFile == "" {
		return errors.New("--file is required")
	}

	classrooms, err := provisioning.ParseFile(seedFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if seedDryRun {
		for _, c := range classrooms {
			fmt.Fprintf(out, "%-10s block=%-6s floor=%-3d capacity=%-4d available=%t\n",
				c.ID, c.Block, c.Floor, c.Capacity, c.Available)
		}
		fmt.Fprintf(out, "%d classroom(s) parsed, nothing written.\n", len(classrooms))
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), seedTimeout)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	seeder := provisioning.NewSeeder(
		repository.NewMongoClassroomRepository(cfg),
		validator.NewReservationValidator(cfg.Log),
		cfg.Log,
	)
	n, err := seeder.Seed(ctx, classrooms)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	fmt.Fprintf(out, "%d classroom(s) seeded from %s.\n", n, seedFile)
	return nil
}
