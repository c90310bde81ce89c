package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const JobName = "mongo-migration"

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Prepare the classbook Mongo database",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(upCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
