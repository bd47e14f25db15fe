package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generates the images and publishes them in one shot",
	Long: `Runs the full pipeline once: fetch, render, then publish. Any generation
failure aborts before anything is committed or pushed.`,
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

		if err := pipeline.Run(context.Background()); err != nil {
			fail("Pipeline run failed: %v", err)
		}
		fmt.Println("Pipeline run completed successfully.")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
