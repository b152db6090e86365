package cmd

import (
	"github.com/spf13/cobra"
)

var resizeCmd = &cobra.Command{
	Use:   "resize [flags] <dir>",
	Short: "Shrink images larger than the maximum size, in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResize(cmd, args[0], false)
	},
}

func init() {
	addSizeFlags(resizeCmd)
	rootCmd.AddCommand(resizeCmd)
}
