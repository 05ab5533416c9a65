package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "orderetl",
	Short: "Batch ETL for customer orders",
	Long:  "orderetl loads a CSV of customer orders, validates and cleans the records, derives aggregate fields, filters incrementally against a persisted watermark and writes the batch to SQLite with CSV and Parquet backups.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(genCmd)
}
