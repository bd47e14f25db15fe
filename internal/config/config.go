// Package config resolves runtime configuration from the environment and
// an optional profilegen.yaml file. Secrets only ever come from the
// environment; the file carries non-secret settings such as themes,
// branch names and the daemon schedule.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for required settings.
var (
	ErrMissingToken    = errors.New("a personal access token is required: set ACCESS_TOKEN or GITHUB_TOKEN")
	ErrMissingUsername = errors.New("a GitHub username is required: set GITHUB_ACTOR")
)

// Default settings matching the original publishing workflow.
const (
	DefaultGeneratedDir = "generated"
	DefaultDistDir      = "dist"
	DefaultOutputBranch = "output"
	DefaultSnakeBranch  = "snake"
	DefaultSourceBranch = "main"
	DefaultRemote       = "origin"
	DefaultCommitName   = "github-actions[bot]"
	DefaultCommitEmail  = "github-actions[bot]@users.noreply.github.com"
	DefaultCron         = "0 0 * * *"
	DefaultMetricsAddr  = ":9180"
	DefaultTheme        = "dracula"
)

// Config is the resolved runtime configuration.
type Config struct {
	Token    string
	Username string

	// Aggregation filters from the workflow environment.
	Excluded            []string
	ExcludedLangs       []string
	CountStatsFromForks bool

	// Output locations, relative to RepoPath unless absolute.
	GeneratedDir string
	DistDir      string

	// Git publishing targets.
	RepoPath     string
	RemoteName   string
	OutputBranch string
	SnakeBranch  string
	SourceBranch string
	CommitName   string
	CommitEmail  string

	// Daemon settings.
	Cron        string
	MetricsAddr string

	Theme string
}

// fileConfig is the yaml shape of profilegen.yaml. Every field is
// optional; zero values defer to defaults.
type fileConfig struct {
	Theme        string `yaml:"theme"`
	GeneratedDir string `yaml:"generated_dir"`
	DistDir      string `yaml:"dist_dir"`
	RemoteName   string `yaml:"remote"`
	OutputBranch string `yaml:"output_branch"`
	SnakeBranch  string `yaml:"snake_branch"`
	SourceBranch string `yaml:"source_branch"`
	CommitName   string `yaml:"commit_name"`
	CommitEmail  string `yaml:"commit_email"`
	Cron         string `yaml:"cron"`
	MetricsAddr  string `yaml:"metrics_addr"`
}

// Load resolves the configuration for the repository at repoPath.
// Precedence, lowest to highest: defaults, profilegen.yaml, environment.
// A .env / .env.local file next to the repository is loaded first without
// overriding variables already present in the process environment.
func Load(repoPath string) (*Config, error) {
	if repoPath == "" {
		repoPath = "."
	}

	for _, name := range []string{".env", ".env.local"} {
		// godotenv.Load never overrides existing process env.
		_ = godotenv.Load(filepath.Join(repoPath, name))
	}

	cfg := &Config{
		RepoPath:     repoPath,
		GeneratedDir: DefaultGeneratedDir,
		DistDir:      DefaultDistDir,
		RemoteName:   DefaultRemote,
		OutputBranch: DefaultOutputBranch,
		SnakeBranch:  DefaultSnakeBranch,
		SourceBranch: DefaultSourceBranch,
		CommitName:   DefaultCommitName,
		CommitEmail:  DefaultCommitEmail,
		Cron:         DefaultCron,
		MetricsAddr:  DefaultMetricsAddr,
		Theme:        DefaultTheme,
	}

	if err := cfg.applyFile(filepath.Join(repoPath, "profilegen.yaml")); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// Validate checks the required settings. It runs after any command-line
// overrides have been applied.
func (c *Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	if c.Username == "" {
		return ErrMissingUsername
	}
	return nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setIfNotEmpty(&c.Theme, fc.Theme)
	setIfNotEmpty(&c.GeneratedDir, fc.GeneratedDir)
	setIfNotEmpty(&c.DistDir, fc.DistDir)
	setIfNotEmpty(&c.RemoteName, fc.RemoteName)
	setIfNotEmpty(&c.OutputBranch, fc.OutputBranch)
	setIfNotEmpty(&c.SnakeBranch, fc.SnakeBranch)
	setIfNotEmpty(&c.SourceBranch, fc.SourceBranch)
	setIfNotEmpty(&c.CommitName, fc.CommitName)
	setIfNotEmpty(&c.CommitEmail, fc.CommitEmail)
	setIfNotEmpty(&c.Cron, fc.Cron)
	setIfNotEmpty(&c.MetricsAddr, fc.MetricsAddr)
	return nil
}

func (c *Config) applyEnv() {
	c.Token = os.Getenv("ACCESS_TOKEN")
	if c.Token == "" {
		c.Token = os.Getenv("GITHUB_TOKEN")
	}
	c.Username = os.Getenv("GITHUB_ACTOR")

	c.Excluded = splitList(os.Getenv("EXCLUDED"))
	c.ExcludedLangs = splitList(os.Getenv("EXCLUDED_LANGS"))
	if v := os.Getenv("COUNT_STATS_FROM_FORKS"); v != "" {
		// Unparseable values count as false, matching the workflow's
		// treatment of the variable as an opaque pass-through.
		b, err := strconv.ParseBool(strings.ToLower(v))
		c.CountStatsFromForks = err == nil && b
	}
}

// GeneratedPath returns the generated-images directory anchored at RepoPath.
func (c *Config) GeneratedPath() string {
	return c.anchored(c.GeneratedDir)
}

// DistPath returns the snake-output directory anchored at RepoPath.
func (c *Config) DistPath() string {
	return c.anchored(c.DistDir)
}

func (c *Config) anchored(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.RepoPath, dir)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// splitList parses a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
