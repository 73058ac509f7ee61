// Package cmd contains the portfolioctl commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portfolioctl",
	Short: "Maintenance tasks for the portfolio backend",
	Long: `portfolioctl runs one-off maintenance tasks against the portfolio backend.

It reads the same environment and .env file as the API server.

Examples:
  # Produce a value for ADMIN_PASSWORD_HASH
  portfolioctl hash-password

  # Import projects from a YAML file
  portfolioctl seed --file projects.yaml`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
