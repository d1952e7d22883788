package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kicksup/kicksup/pkg/app"
)

// kicksup migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
		return app.Migrate(cmd.OutOrStdout())
	},
}

// kicksup migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
		return app.Rollback(cmd.OutOrStdout())
	},
}

// kicksup migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.MigrateStatus(cmd.OutOrStdout())
	},
}

// kicksup seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the demo users and catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return app.Seed(cmd.OutOrStdout())
	},
}
