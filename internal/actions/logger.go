// Package actions talks to the GitHub Actions runner through workflow
// commands and the files it exposes via environment variables.
package actions

import (
	"io"

	"github.com/sethvargo/go-githubactions"
)

// Logger reports progress and problems to the workflow log
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warningf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// NewLogger returns a Logger writing workflow commands to w
func NewLogger(w io.Writer) Logger {
	return githubactions.New(githubactions.WithWriter(w))
}

var _ Logger = (*githubactions.Action)(nil)
