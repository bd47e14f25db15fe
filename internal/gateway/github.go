// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/profilegen/internal/domain"
)

// calendarDateLayout is the date format used by the contribution calendar API.
const calendarDateLayout = "2006-01-02"

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchContributionCalendar(ctx context.Context, username string) (domain.Calendar, error)
	FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error)
	FetchLanguages(ctx context.Context, owner, repo string) (map[string]int, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// contributionCalendarQuery mirrors the contributionsCollection GraphQL shape.
type contributionCalendarQuery struct {
	User struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				TotalContributions githubv4.Int
				Weeks              []struct {
					ContributionDays []struct {
						ContributionCount githubv4.Int
						Date              githubv4.String
					}
				}
			}
		}
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

// FetchContributionCalendar fetches the user's contribution calendar via the
// GraphQL API and flattens the weekly layout into a date-ascending day list.
func (g *GitHubGateway) FetchContributionCalendar(ctx context.Context, username string) (domain.Calendar, error) {
	g.logger.Println("[1/3] Fetching contribution calendar using GraphQL API...")

	var q contributionCalendarQuery
	variables := map[string]interface{}{"login": githubv4.String(username)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return domain.Calendar{}, fmt.Errorf("failed to query contribution calendar: %w", err)
	}

	calendar := q.User.ContributionsCollection.ContributionCalendar
	cal := domain.Calendar{Total: int(calendar.TotalContributions)}
	for _, week := range calendar.Weeks {
		for _, day := range week.ContributionDays {
			date, err := time.Parse(calendarDateLayout, string(day.Date))
			if err != nil {
				return domain.Calendar{}, fmt.Errorf("failed to parse contribution date %q: %w", day.Date, err)
			}
			cal.Days = append(cal.Days, domain.ContributionDay{
				Date:  date,
				Count: int(day.ContributionCount),
			})
		}
	}
	sort.Slice(cal.Days, func(i, j int) bool {
		return cal.Days[i].Date.Before(cal.Days[j].Date)
	})

	g.logger.Printf("Completed fetching contribution calendar: %d days, %d contributions\n", len(cal.Days), cal.Total)
	return cal, nil
}

// FetchRepositories fetches the user's own repositories using the REST API.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	g.logger.Println("[2/3] Fetching repositories using REST API...")

	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var repos []domain.Repository
	for {
		result, resp, err := g.restClient.Repositories.ListByUser(ctx, username, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories with REST API: %w", err)
		}
		for _, repo := range result {
			repos = append(repos, domain.Repository{
				Owner: repo.GetOwner().GetLogin(),
				Name:  repo.GetName(),
				Fork:  repo.GetFork(),
				Stars: repo.GetStargazersCount(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of repositories...")
	}

	g.logger.Printf("Completed fetching repositories: %d found\n", len(repos))
	return repos, nil
}

// FetchLanguages fetches the byte counts per language for a single repository.
func (g *GitHubGateway) FetchLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	langs, _, err := g.restClient.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages for %s/%s: %w", owner, repo, err)
	}
	return langs, nil
}
