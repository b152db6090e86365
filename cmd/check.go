package cmd

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <dir>",
	Short: "Report which images would be resized without modifying files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResize(cmd, args[0], true)
	},
}

func init() {
	addSizeFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}
