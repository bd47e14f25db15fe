package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable the loader reads so tests do not bleed
// into each other through the real environment. t.Setenv registers the
// restore; the explicit unset matters because godotenv treats a
// present-but-empty variable as already set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ACCESS_TOKEN", "GITHUB_TOKEN", "GITHUB_ACTOR", "EXCLUDED", "EXCLUDED_LANGS", "COUNT_STATS_FROM_FORKS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_TOKEN", "secret")
	t.Setenv("GITHUB_ACTOR", "octo")

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "octo", cfg.Username)
	assert.Equal(t, DefaultOutputBranch, cfg.OutputBranch)
	assert.Equal(t, DefaultSnakeBranch, cfg.SnakeBranch)
	assert.Equal(t, DefaultCron, cfg.Cron)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, DefaultCommitName, cfg.CommitName)
	assert.False(t, cfg.CountStatsFromForks)
	assert.Empty(t, cfg.Excluded)
}

func TestLoad_GithubTokenFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "fallback")
	t.Setenv("GITHUB_ACTOR", "octo")

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "fallback", cfg.Token)
}

func TestLoad_AccessTokenWinsOverGithubToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_TOKEN", "primary")
	t.Setenv("GITHUB_TOKEN", "fallback")
	t.Setenv("GITHUB_ACTOR", "octo")

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.Token)
}

func TestLoad_FilterVariables(t *testing.T) {
	testCases := []struct {
		name          string
		excluded      string
		forks         string
		expectedList  []string
		expectedForks bool
	}{
		{
			name:          "comma list with whitespace and empties",
			excluded:      " octo/a , octo/b ,,",
			forks:         "true",
			expectedList:  []string{"octo/a", "octo/b"},
			expectedForks: true,
		},
		{
			name:          "unparseable bool counts as false",
			excluded:      "",
			forks:         "definitely",
			expectedList:  nil,
			expectedForks: false,
		},
		{
			name:          "numeric bool",
			excluded:      "octo/a",
			forks:         "1",
			expectedList:  []string{"octo/a"},
			expectedForks: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("ACCESS_TOKEN", "secret")
			t.Setenv("GITHUB_ACTOR", "octo")
			t.Setenv("EXCLUDED", tc.excluded)
			t.Setenv("COUNT_STATS_FROM_FORKS", tc.forks)

			cfg, err := Load(t.TempDir())

			require.NoError(t, err)
			assert.Equal(t, tc.expectedList, cfg.Excluded)
			assert.Equal(t, tc.expectedForks, cfg.CountStatsFromForks)
		})
	}
}

func TestLoad_YamlOverlay(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_TOKEN", "secret")
	t.Setenv("GITHUB_ACTOR", "octo")

	dir := t.TempDir()
	yaml := []byte("theme: dark\nsnake_branch: pages\ncron: \"30 6 * * *\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profilegen.yaml"), yaml, 0o644))

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "pages", cfg.SnakeBranch)
	assert.Equal(t, "30 6 * * *", cfg.Cron)
	// Untouched settings keep their defaults.
	assert.Equal(t, DefaultOutputBranch, cfg.OutputBranch)
}

func TestLoad_MalformedYaml(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profilegen.yaml"), []byte(":\n\t"), 0o644))

	_, err := Load(dir)

	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	env := []byte("ACCESS_TOKEN=from-dotenv\nGITHUB_ACTOR=octo\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), env, 0o644))

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Token)
	assert.Equal(t, "octo", cfg.Username)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name     string
		token    string
		username string
		expected error
	}{
		{name: "missing token", token: "", username: "octo", expected: ErrMissingToken},
		{name: "missing username", token: "secret", username: "", expected: ErrMissingUsername},
		{name: "complete", token: "secret", username: "octo", expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Token: tc.token, Username: tc.username}
			err := cfg.Validate()
			if tc.expected != nil {
				assert.ErrorIs(t, err, tc.expected)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{RepoPath: "/work/repo", GeneratedDir: "generated", DistDir: "/abs/dist"}

	assert.Equal(t, filepath.Join("/work/repo", "generated"), cfg.GeneratedPath())
	assert.Equal(t, "/abs/dist", cfg.DistPath())
}
