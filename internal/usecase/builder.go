package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/profilegen/internal/domain"
	"github.com/naka-gawa/profilegen/internal/gateway"
)

// languageFetchConcurrency bounds the per-repository language requests.
const languageFetchConcurrency = 5

// Builder is the use case for assembling a user's profile statistics.
// It orchestrates the fetching and combining of data.
type Builder struct {
	fetcher gateway.Fetcher
	logger  *log.Logger

	// Now is the clock used for streak calculation; overridable in tests.
	Now func() time.Time
}

// NewBuilder creates a new Builder instance.
func NewBuilder(fetcher gateway.Fetcher, logger *log.Logger) *Builder {
	return &Builder{
		fetcher: fetcher,
		logger:  logger,
		Now:     time.Now,
	}
}

// Build fetches everything concurrently and assembles the profile stats.
// The calendar and repository list are fetched in parallel; per-repository
// language requests then fan out for repositories that pass the filters.
func (b *Builder) Build(ctx context.Context, username string, opts LanguageOptions) (*domain.ProfileStats, error) {
	b.logger.Println("Usecase: Starting profile stats build...")

	var (
		cal   domain.Calendar
		repos []domain.Repository
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		cal, err = b.fetcher.FetchContributionCalendar(egCtx, username)
		return err
	})
	eg.Go(func() error {
		var err error
		repos, err = b.fetcher.FetchRepositories(egCtx, username)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	b.logger.Println("[3/3] Fetching language data per repository...")
	byRepo := make(map[string]map[string]int)
	var mu sync.Mutex
	lg, lgCtx := errgroup.WithContext(ctx)
	lg.SetLimit(languageFetchConcurrency)
	for _, repo := range repos {
		if !opts.IncludeRepo(repo) {
			continue
		}
		lg.Go(func() error {
			langs, err := b.fetcher.FetchLanguages(lgCtx, repo.Owner, repo.Name)
			if err != nil {
				return err
			}
			mu.Lock()
			byRepo[repo.FullName()] = langs
			mu.Unlock()
			return nil
		})
	}
	if err := lg.Wait(); err != nil {
		return nil, err
	}
	b.logger.Println("Usecase: All data fetched successfully.")

	summary, err := Summarize(cal)
	if err != nil {
		return nil, err
	}

	result := &domain.ProfileStats{
		Username:  username,
		Calendar:  cal,
		Streaks:   ComputeStreaks(cal, b.Now()),
		Summary:   summary,
		Languages: AggregateLanguages(repos, byRepo, opts),
	}

	b.logger.Println("Usecase: Profile stats build complete.")
	return result, nil
}
