package usecase

import (
	"context"
	"log"

	"github.com/naka-gawa/profilegen/internal/config"
	"github.com/naka-gawa/profilegen/internal/render"
)

// BranchPublisher is the publishing behavior the pipeline depends on.
type BranchPublisher interface {
	CommitGenerated(ctx context.Context) error
	PublishDir(ctx context.Context, dir, branch string) error
}

// PipelineOptions select which of the two pipelines run.
type PipelineOptions struct {
	SkipSnake bool
	SkipStats bool
}

// Pipeline ties fetching, rendering and publishing together. Generation
// and publication are separate steps so that any generation failure
// prevents all git side effects.
type Pipeline struct {
	builder   *Builder
	publisher BranchPublisher
	cfg       *config.Config
	opts      PipelineOptions
	logger    *log.Logger
}

// NewPipeline creates a Pipeline instance.
func NewPipeline(builder *Builder, publisher BranchPublisher, cfg *config.Config, opts PipelineOptions, logger *log.Logger) *Pipeline {
	return &Pipeline{
		builder:   builder,
		publisher: publisher,
		cfg:       cfg,
		opts:      opts,
		logger:    logger,
	}
}

// Generate fetches the data and writes the images, with no git side effects.
func (p *Pipeline) Generate(ctx context.Context) error {
	theme, err := render.ThemeNamed(p.cfg.Theme)
	if err != nil {
		return err
	}

	stats, err := p.builder.Build(ctx, p.cfg.Username, p.languageOptions())
	if err != nil {
		return err
	}

	if !p.opts.SkipStats {
		if err := render.WriteStats(p.cfg.GeneratedPath(), stats, theme); err != nil {
			return err
		}
		p.logger.Printf("Pipeline: wrote stats images to %s\n", p.cfg.GeneratedPath())
	}
	if !p.opts.SkipSnake {
		if err := render.WriteSnake(p.cfg.DistPath(), stats.Calendar); err != nil {
			return err
		}
		p.logger.Printf("Pipeline: wrote snake images to %s\n", p.cfg.DistPath())
	}
	return nil
}

// Publish pushes the generated artifacts to their branches.
func (p *Pipeline) Publish(ctx context.Context) error {
	if !p.opts.SkipStats {
		if err := p.publisher.CommitGenerated(ctx); err != nil {
			return err
		}
	}
	if !p.opts.SkipSnake {
		if err := p.publisher.PublishDir(ctx, p.cfg.DistPath(), p.cfg.SnakeBranch); err != nil {
			return err
		}
	}
	return nil
}

// Run is generate-then-publish; a generate failure aborts before any push.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.Generate(ctx); err != nil {
		return err
	}
	return p.Publish(ctx)
}

func (p *Pipeline) languageOptions() LanguageOptions {
	return LanguageOptions{
		ExcludedRepos: p.cfg.Excluded,
		ExcludedLangs: p.cfg.ExcludedLangs,
		IncludeForks:  p.cfg.CountStatsFromForks,
	}
}
