package main

import (
	"errors"

	"github.com/ryo246912/gh-review-tally/internal/config"
	"github.com/ryo246912/gh-review-tally/internal/event"
	"github.com/ryo246912/gh-review-tally/internal/github"
)

const (
	// ExitOK indicates the counts were published.
	ExitOK = 0
	// ExitRuntime indicates an upstream or I/O failure.
	ExitRuntime = 1
	// ExitInvalidInput indicates missing configuration or an unusable event payload.
	ExitInvalidInput = 2
	// ExitAuth indicates auth/authz failures.
	ExitAuth = 3
)

// ResolveExitCode maps run error state to process exit codes.
func ResolveExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var vErr *config.ValidationError
	if errors.As(err, &vErr) {
		return ExitInvalidInput
	}

	var uErr *event.UnrecognizedEventError
	if errors.As(err, &uErr) {
		return ExitInvalidInput
	}

	var mErr *event.MalformedEventError
	if errors.As(err, &mErr) {
		return ExitInvalidInput
	}

	if github.IsAuthError(err) {
		return ExitAuth
	}

	return ExitRuntime
}
