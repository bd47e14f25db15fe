package usecase

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/profilegen/internal/domain"
)

// Summarize computes summary statistics over the calendar's daily counts.
func Summarize(cal domain.Calendar) (domain.ContributionSummary, error) {
	if len(cal.Days) == 0 {
		return domain.ContributionSummary{}, nil
	}

	counts := make([]float64, len(cal.Days))
	for i, day := range cal.Days {
		counts[i] = float64(day.Count)
	}

	mean, err := stats.Mean(counts)
	if err != nil {
		return domain.ContributionSummary{}, fmt.Errorf("failed to compute mean: %w", err)
	}
	median, err := stats.Median(counts)
	if err != nil {
		return domain.ContributionSummary{}, fmt.Errorf("failed to compute median: %w", err)
	}
	max, err := stats.Max(counts)
	if err != nil {
		return domain.ContributionSummary{}, fmt.Errorf("failed to compute max: %w", err)
	}

	return domain.ContributionSummary{Mean: mean, Median: median, Max: max}, nil
}
