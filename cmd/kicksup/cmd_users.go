package main

import (
	"github.com/spf13/cobra"

	"github.com/kicksup/kicksup/pkg/app"
)

// kicksup user:promote <username>
var userPromoteCmd = &cobra.Command{
	Use:   "user:promote <username>",
	Short: "Grant the Administrator role to a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.PromoteUser(cmd.Context(), args[0], cmd.OutOrStdout())
	},
}
