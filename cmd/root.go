// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "profilegen",
	Short: "Generates GitHub profile stats images and publishes them to branches.",
	Long: `profilegen fetches a user's GitHub contribution data, renders streak,
language and contribution-snake SVG images, and publishes them: the stats
images to an orphan 'output' branch and the snake images to a 'snake' branch.
Run it once by hand or keep it running on a daily schedule with 'daemon'.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Flags shared by every command.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("repo", ".", "Path to the repository checkout to publish from")
	rootCmd.PersistentFlags().StringP("user", "u", "", "GitHub username (defaults to GITHUB_ACTOR)")
	rootCmd.PersistentFlags().String("theme", "", "Card theme: dracula, light or dark")
	rootCmd.PersistentFlags().String("output-dir", "", "Directory for the stats images (default from config)")
	rootCmd.PersistentFlags().String("dist-dir", "", "Directory for the snake images (default from config)")
	rootCmd.PersistentFlags().Bool("skip-snake", false, "Skip the snake pipeline")
	rootCmd.PersistentFlags().Bool("skip-stats", false, "Skip the stats pipeline")
}
