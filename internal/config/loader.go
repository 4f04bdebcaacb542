package config

import (
	"net/url"
	"os"
	"strings"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/joho/godotenv"
	"github.com/ryo246912/gh-review-tally/internal/ui"
	"github.com/sethvargo/go-githubactions"
)

// Environment variables provided by the Actions runner
const (
	EnvEventPath   = "GITHUB_EVENT_PATH"
	EnvRepository  = "GITHUB_REPOSITORY"
	EnvServerURL   = "GITHUB_SERVER_URL"
	EnvOutput      = "GITHUB_OUTPUT"
	EnvStepSummary = "GITHUB_STEP_SUMMARY"
	EnvInputToken  = "INPUT_TOKEN"
	EnvToken       = "GITHUB_TOKEN"
)

const defaultHost = "github.com"

// Options holds values given on the command line; they win over the environment
type Options struct {
	Token       string
	Repository  string
	EventPath   string
	PRNumber    int
	Interactive bool
	Format      string
}

// Config represents normalized runtime configuration
type Config struct {
	Host        string
	Owner       string
	Name        string
	Token       string
	EventPath   string
	PRNumber    int
	Interactive bool
	Format      string
	OutputPath  string
	SummaryPath string
}

// LocalMode reports whether the pull request comes from the command line
// instead of a workflow event
func (c Config) LocalMode() bool {
	return c.PRNumber > 0 || c.Interactive
}

// GetOwner and GetName let Config serve as repository information
func (c Config) GetOwner() string { return c.Owner }
func (c Config) GetName() string  { return c.Name }

var (
	tokenForHost      = auth.TokenForHost
	currentRepository = repository.Current
)

// Load merges command line options with the environment. A .env file in the
// working directory is read only in local mode.
func Load(opts Options) (Config, error) {
	if opts.PRNumber > 0 || opts.Interactive {
		_ = godotenv.Load()
	}

	cfg := Config{
		Host:        hostFromServerURL(os.Getenv(EnvServerURL)),
		PRNumber:    opts.PRNumber,
		Interactive: opts.Interactive,
		OutputPath:  os.Getenv(EnvOutput),
		SummaryPath: os.Getenv(EnvStepSummary),
	}

	if cfg.PRNumber < 0 {
		return Config{}, NewValidationError("pr", "must be positive")
	}
	if cfg.PRNumber > 0 && cfg.Interactive {
		return Config{}, NewValidationError("pr", "cannot be combined with --interactive")
	}

	if err := cfg.loadRepository(firstNonEmpty(opts.Repository, os.Getenv(EnvRepository))); err != nil {
		return Config{}, err
	}

	if !cfg.LocalMode() {
		cfg.EventPath = firstNonEmpty(opts.EventPath, os.Getenv(EnvEventPath))
		if cfg.EventPath == "" {
			return Config{}, NewValidationError("event path", EnvEventPath+" is not set")
		}
	}

	cfg.Token = firstNonEmpty(opts.Token, githubactions.GetInput("token"), os.Getenv(EnvToken))
	if cfg.Token == "" && cfg.LocalMode() {
		cfg.Token, _ = tokenForHost(cfg.Host)
	}
	if cfg.Token == "" {
		return Config{}, NewValidationError("token", "an access token is required (--token, "+EnvInputToken+" or "+EnvToken+")")
	}

	cfg.Format = opts.Format
	if cfg.Format == "" {
		cfg.Format = ui.FormatGitHub
		if cfg.LocalMode() {
			cfg.Format = ui.FormatTable
		}
	}
	if !validFormat(cfg.Format) {
		return Config{}, NewValidationError("format", "must be one of "+strings.Join(ui.Formats, ", "))
	}

	return cfg, nil
}

func (c *Config) loadRepository(value string) error {
	if value == "" {
		if !c.LocalMode() {
			return NewValidationError("repository", EnvRepository+" is not set")
		}
		repo, err := currentRepository()
		if err != nil {
			return NewValidationError("repository", "could not determine the current repository: "+err.Error())
		}
		c.Host, c.Owner, c.Name = repo.Host, repo.Owner, repo.Name
		return nil
	}

	repo, err := repository.ParseWithHost(value, c.Host)
	if err != nil {
		return NewValidationError("repository", "expected owner/name, got "+value)
	}
	c.Host, c.Owner, c.Name = repo.Host, repo.Owner, repo.Name
	return nil
}

func hostFromServerURL(serverURL string) string {
	if serverURL == "" {
		return defaultHost
	}
	u, err := url.Parse(serverURL)
	if err != nil || u.Host == "" {
		return defaultHost
	}
	return u.Host
}

func validFormat(format string) bool {
	for _, f := range ui.Formats {
		if f == format {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
