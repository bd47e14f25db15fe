package usecase

import (
	"sort"
	"strings"

	"github.com/naka-gawa/profilegen/internal/domain"
)

// DefaultTopLanguages caps the language breakdown for rendering.
const DefaultTopLanguages = 8

// LanguageOptions control which repositories and languages count towards
// the breakdown. They map directly onto the EXCLUDED, EXCLUDED_LANGS and
// COUNT_STATS_FROM_FORKS environment variables.
type LanguageOptions struct {
	ExcludedRepos []string // owner/name entries to skip
	ExcludedLangs []string // language names to skip, case-insensitive
	IncludeForks  bool
	TopN          int // 0 means DefaultTopLanguages
}

// IncludeRepo reports whether a repository participates in language stats.
func (o LanguageOptions) IncludeRepo(repo domain.Repository) bool {
	if repo.Fork && !o.IncludeForks {
		return false
	}
	for _, excluded := range o.ExcludedRepos {
		if strings.EqualFold(excluded, repo.FullName()) {
			return false
		}
	}
	return true
}

func (o LanguageOptions) includeLang(name string) bool {
	for _, excluded := range o.ExcludedLangs {
		if strings.EqualFold(excluded, name) {
			return false
		}
	}
	return true
}

// AggregateLanguages sums per-repository language bytes into a sorted
// breakdown. Percentages are shares of the total after exclusions, so they
// sum to 100 before the TopN cap is applied. Ties sort by name ascending
// for deterministic output.
func AggregateLanguages(repos []domain.Repository, byRepo map[string]map[string]int, opts LanguageOptions) []domain.LanguageStat {
	totals := make(map[string]int64)
	for _, repo := range repos {
		if !opts.IncludeRepo(repo) {
			continue
		}
		for lang, bytes := range byRepo[repo.FullName()] {
			if !opts.includeLang(lang) {
				continue
			}
			totals[lang] += int64(bytes)
		}
	}

	var grand int64
	for _, bytes := range totals {
		grand += bytes
	}
	if grand == 0 {
		return []domain.LanguageStat{}
	}

	stats := make([]domain.LanguageStat, 0, len(totals))
	for lang, bytes := range totals {
		stats = append(stats, domain.LanguageStat{
			Name:       lang,
			Bytes:      bytes,
			Percentage: float64(bytes) / float64(grand) * 100,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Bytes != stats[j].Bytes {
			return stats[i].Bytes > stats[j].Bytes
		}
		return stats[i].Name < stats[j].Name
	})

	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopLanguages
	}
	if len(stats) > topN {
		stats = stats[:topN]
	}
	return stats
}
