package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fetches GitHub data and renders the SVG images",
	Long: `Fetches the user's contribution calendar, repositories and language data,
then renders the streak and top-languages cards into the generated directory
and both snake variants into the dist directory. No git side effects.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)

		cfg, err := loadConfig(cmd)
		if err != nil {
			fail("Error: %v", err)
		}
		pipeline, err := buildPipeline(cmd, cfg, logger)
		if err != nil {
			fail("Error: %v", err)
		}

		if err := pipeline.Generate(context.Background()); err != nil {
			fail("Failed to generate images: %v", err)
		}
		fmt.Println("Images generated successfully.")
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
