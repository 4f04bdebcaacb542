package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cli/go-gh/v2/pkg/repository"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvEventPath, EnvRepository, EnvServerURL, EnvOutput, EnvStepSummary, EnvInputToken, EnvToken} {
		t.Setenv(key, "")
	}
}

// useDotenv runs the test from a directory holding a .env file. The listed
// keys are unset so godotenv is free to fill them; t.Setenv restores them.
func useDotenv(t *testing.T, content string, keys ...string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func stubLocal(t *testing.T, token string, repo repository.Repository, repoErr error) {
	t.Helper()
	origToken, origRepo := tokenForHost, currentRepository
	tokenForHost = func(string) (string, string) { return token, "oauth_token" }
	currentRepository = func() (repository.Repository, error) { return repo, repoErr }
	t.Cleanup(func() {
		tokenForHost, currentRepository = origToken, origRepo
	})
}

func TestLoad_ActionsEnvironment(t *testing.T) {
	clearEnv(t)
	stubLocal(t, "", repository.Repository{}, errors.New("not a git repository"))
	t.Setenv(EnvEventPath, "/github/workflow/event.json")
	t.Setenv(EnvRepository, "octo/hello")
	t.Setenv(EnvServerURL, "https://github.com")
	t.Setenv(EnvOutput, "/github/output")
	t.Setenv(EnvStepSummary, "/github/summary")
	t.Setenv(EnvInputToken, "input-token")
	t.Setenv(EnvToken, "env-token")

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load error = %v, want nil", err)
	}

	expected := Config{
		Host:        "github.com",
		Owner:       "octo",
		Name:        "hello",
		Token:       "input-token",
		EventPath:   "/github/workflow/event.json",
		Format:      "github",
		OutputPath:  "/github/output",
		SummaryPath: "/github/summary",
	}
	if cfg != expected {
		t.Errorf("Load() = %+v, want %+v", cfg, expected)
	}
	if cfg.LocalMode() {
		t.Error("LocalMode() = true, want false")
	}
}

func TestLoad_EnterpriseHost(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvEventPath, "event.json")
	t.Setenv(EnvRepository, "octo/hello")
	t.Setenv(EnvServerURL, "https://ghe.example.com")
	t.Setenv(EnvToken, "env-token")

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load error = %v, want nil", err)
	}
	if cfg.Host != "ghe.example.com" {
		t.Errorf("Host = %q, want ghe.example.com", cfg.Host)
	}
	if cfg.Token != "env-token" {
		t.Errorf("Token = %q, want env-token", cfg.Token)
	}
}

func TestLoad_FlagsWinOverEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvEventPath, "env-event.json")
	t.Setenv(EnvRepository, "octo/hello")
	t.Setenv(EnvInputToken, "input-token")

	cfg, err := Load(Options{
		Token:      "flag-token",
		Repository: "other/repo",
		EventPath:  "flag-event.json",
		Format:     "json",
	})
	if err != nil {
		t.Fatalf("Load error = %v, want nil", err)
	}
	if cfg.Token != "flag-token" || cfg.Owner != "other" || cfg.Name != "repo" || cfg.EventPath != "flag-event.json" || cfg.Format != "json" {
		t.Errorf("Load() = %+v, want flag values", cfg)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		opts          Options
		expectedField string
		errorContains string
	}{
		{
			name:          "missing repository",
			env:           map[string]string{EnvEventPath: "e.json", EnvToken: "t"},
			expectedField: "repository",
			errorContains: EnvRepository,
		},
		{
			name:          "malformed repository",
			env:           map[string]string{EnvRepository: "just-a-name", EnvEventPath: "e.json", EnvToken: "t"},
			expectedField: "repository",
			errorContains: "owner/name",
		},
		{
			name:          "missing event path",
			env:           map[string]string{EnvRepository: "octo/hello", EnvToken: "t"},
			expectedField: "event path",
			errorContains: EnvEventPath,
		},
		{
			name:          "missing token",
			env:           map[string]string{EnvRepository: "octo/hello", EnvEventPath: "e.json"},
			expectedField: "token",
			errorContains: "access token is required",
		},
		{
			name:          "unknown format",
			env:           map[string]string{EnvRepository: "octo/hello", EnvEventPath: "e.json", EnvToken: "t"},
			opts:          Options{Format: "xml"},
			expectedField: "format",
			errorContains: "must be one of",
		},
		{
			name:          "negative pr",
			opts:          Options{PRNumber: -1},
			expectedField: "pr",
			errorContains: "must be positive",
		},
		{
			name:          "pr with interactive",
			opts:          Options{PRNumber: 3, Interactive: true},
			expectedField: "pr",
			errorContains: "--interactive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			stubLocal(t, "", repository.Repository{}, errors.New("not a git repository"))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(tt.opts)

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error = %v (%T), want *ValidationError", err, err)
			}
			if vErr.Field != tt.expectedField {
				t.Errorf("Field = %q, want %q", vErr.Field, tt.expectedField)
			}
			if !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("error = %q, want contains %q", err.Error(), tt.errorContains)
			}
		})
	}
}

func TestLoad_LocalMode(t *testing.T) {
	clearEnv(t)
	stubLocal(t, "gh-token", repository.Repository{Host: "github.com", Owner: "me", Name: "project"}, nil)

	cfg, err := Load(Options{PRNumber: 15})
	if err != nil {
		t.Fatalf("Load error = %v, want nil", err)
	}
	if !cfg.LocalMode() {
		t.Error("LocalMode() = false, want true")
	}
	if cfg.Owner != "me" || cfg.Name != "project" {
		t.Errorf("repository = %s/%s, want me/project", cfg.Owner, cfg.Name)
	}
	if cfg.Token != "gh-token" {
		t.Errorf("Token = %q, want gh-token", cfg.Token)
	}
	if cfg.EventPath != "" {
		t.Errorf("EventPath = %q, want empty in local mode", cfg.EventPath)
	}
	if cfg.Format != "table" {
		t.Errorf("Format = %q, want table", cfg.Format)
	}
}

func TestLoad_LocalModeWithoutRepository(t *testing.T) {
	clearEnv(t)
	stubLocal(t, "gh-token", repository.Repository{}, errors.New("no git remotes found"))

	_, err := Load(Options{Interactive: true})

	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "repository" {
		t.Fatalf("error = %v, want repository validation error", err)
	}
	if !strings.Contains(err.Error(), "no git remotes found") {
		t.Errorf("error = %q, want underlying cause", err.Error())
	}
}

func TestLoad_ActionsModeIgnoresGhAuth(t *testing.T) {
	clearEnv(t)
	stubLocal(t, "gh-token", repository.Repository{}, nil)
	t.Setenv(EnvRepository, "octo/hello")
	t.Setenv(EnvEventPath, "e.json")

	_, err := Load(Options{})

	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "token" {
		t.Fatalf("error = %v, want token validation error", err)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("format", "must be table")

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if err.Error() != "invalid format: must be table" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestLoad_InputTokenIsTrimmed(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvEventPath, "event.json")
	t.Setenv(EnvRepository, "octo/hello")
	t.Setenv(EnvInputToken, "  input-token\n")

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load error = %v, want nil", err)
	}
	if cfg.Token != "input-token" {
		t.Errorf("Token = %q, want input-token", cfg.Token)
	}
}

func TestLoad_DotenvIgnoredInActionsMode(t *testing.T) {
	clearEnv(t)
	useDotenv(t, "GITHUB_REPOSITORY=dotenv/repo\nGITHUB_TOKEN=dotenv-token\n", EnvRepository, EnvToken)
	t.Setenv(EnvEventPath, "event.json")
	t.Setenv(EnvInputToken, "input-token")

	_, err := Load(Options{})

	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "repository" {
		t.Fatalf("Load error = %v, want repository validation error", err)
	}
	if got := os.Getenv(EnvToken); got != "" {
		t.Errorf("%s = %q, want .env left unread", EnvToken, got)
	}
}

func TestLoad_DotenvUsedInLocalMode(t *testing.T) {
	clearEnv(t)
	stubLocal(t, "", repository.Repository{}, errors.New("not a git repository"))
	useDotenv(t, "GITHUB_REPOSITORY=dotenv/repo\nGITHUB_TOKEN=dotenv-token\n", EnvRepository, EnvToken)

	cfg, err := Load(Options{PRNumber: 3})
	if err != nil {
		t.Fatalf("Load error = %v, want nil", err)
	}
	if cfg.Owner != "dotenv" || cfg.Name != "repo" {
		t.Errorf("repository = %s/%s, want dotenv/repo", cfg.Owner, cfg.Name)
	}
	if cfg.Token != "dotenv-token" {
		t.Errorf("Token = %q, want dotenv-token", cfg.Token)
	}
}
