package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/profilegen/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	// Setup REST client to point to the mock server.
	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	// Use NewEnterpriseClient to point the GraphQL client to our mock server's URL.
	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())
	logger := log.New(io.Discard, "", 0)

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}

	return gateway, server
}

func TestGitHubGateway_FetchContributionCalendar(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expected       domain.Calendar
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - flattens weeks into sorted days",
			responseBody: `{"data":{"user":{"contributionsCollection":{"contributionCalendar":{` +
				`"totalContributions":5,` +
				`"weeks":[{"contributionDays":[` +
				`{"contributionCount":2,"date":"2026-08-27"},` +
				`{"contributionCount":3,"date":"2026-08-28"}]}]}}}}}`,
			expected: domain.Calendar{
				Total: 5,
				Days: []domain.ContributionDay{
					{Date: time.Date(2026, time.August, 27, 0, 0, 0, 0, time.UTC), Count: 2},
					{Date: time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC), Count: 3},
				},
			},
		},
		{
			name:           "error case - GraphQL error payload",
			responseBody:   `{"errors":[{"message":"Could not resolve to a User"}]}`,
			expectError:    true,
			expectedErrMsg: "failed to query contribution calendar",
		},
		{
			name: "error case - malformed date",
			responseBody: `{"data":{"user":{"contributionsCollection":{"contributionCalendar":{` +
				`"totalContributions":1,` +
				`"weeks":[{"contributionDays":[{"contributionCount":1,"date":"27/08/2026"}]}]}}}}}`,
			expectError:    true,
			expectedErrMsg: "failed to parse contribution date",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "contributionsCollection")

				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			cal, err := gateway.FetchContributionCalendar(context.Background(), "any-user")

			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, cal)
			}
		})
	}
}

func TestGitHubGateway_FetchRepositories(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       []domain.Repository
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - maps repository attributes",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.String(), "/users/any-user/repos")
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[{"name":"tools","fork":false,"stargazers_count":7,"owner":{"login":"any-user"}},`+
					`{"name":"forked","fork":true,"stargazers_count":0,"owner":{"login":"any-user"}}]`)
			},
			expected: []domain.Repository{
				{Owner: "any-user", Name: "tools", Fork: false, Stars: 7},
				{Owner: "any-user", Name: "forked", Fork: true, Stars: 0},
			},
		},
		{
			name: "error case - GitHub API returns an error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectError:    true,
			expectedErrMsg: "failed to list repositories with REST API",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			repos, err := gateway.FetchRepositories(context.Background(), "any-user")

			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, repos)
			}
		})
	}
}

func TestGitHubGateway_FetchLanguages(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.String(), "/repos/any-user/tools/languages")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"Go": 12345, "Shell": 678}`)
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
	defer server.Close()

	langs, err := gateway.FetchLanguages(context.Background(), "any-user", "tools")

	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"Go": 12345, "Shell": 678}, langs)
}
