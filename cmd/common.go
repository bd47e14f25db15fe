package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/profilegen/internal/config"
	"github.com/naka-gawa/profilegen/internal/gateway"
	"github.com/naka-gawa/profilegen/internal/publisher"
	"github.com/naka-gawa/profilegen/internal/usecase"
)

// newLogger builds the command logger: silent unless --verbose.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// loadConfig resolves configuration and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	repoPath, _ := cmd.Flags().GetString("repo")
	cfg, err := config.Load(repoPath)
	if err != nil {
		return nil, err
	}
	if user, _ := cmd.Flags().GetString("user"); user != "" {
		cfg.Username = user
	}
	if theme, _ := cmd.Flags().GetString("theme"); theme != "" {
		cfg.Theme = theme
	}
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.GeneratedDir = dir
	}
	if dir, _ := cmd.Flags().GetString("dist-dir"); dir != "" {
		cfg.DistDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildPipeline wires the gateway, builder and publisher into a pipeline.
func buildPipeline(cmd *cobra.Command, cfg *config.Config, logger *log.Logger) (*usecase.Pipeline, error) {
	githubGateway, err := gateway.NewGitHubGateway(cfg.Token, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	builder := usecase.NewBuilder(githubGateway, logger)

	skipSnake, _ := cmd.Flags().GetBool("skip-snake")
	skipStats, _ := cmd.Flags().GetBool("skip-stats")
	opts := usecase.PipelineOptions{SkipSnake: skipSnake, SkipStats: skipStats}

	return usecase.NewPipeline(builder, publisher.New(cfg, logger), cfg, opts, logger), nil
}

// fail prints the error and exits, matching each command's Run style.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
