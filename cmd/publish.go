package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Commits and force-pushes the rendered images to their branches",
	Long: `Commits working-tree changes, publishes the generated directory to the
orphan output branch and the dist directory to the snake branch. Both pushes
are forced; rerunning with unchanged content creates no new commit.`,
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

		if err := pipeline.Publish(context.Background()); err != nil {
			fail("Failed to publish images: %v", err)
		}
		fmt.Println("Images published successfully.")
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
}
