package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:           "downsize",
	Short:         "downsize - shrink oversized images in a folder",
	Long:          "downsize shrinks every image in a folder that exceeds a maximum width or height, keeping its aspect ratio and format, and replaces the originals atomically.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML file with max_width, max_height and quality defaults")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "debug logging on stderr")
}
