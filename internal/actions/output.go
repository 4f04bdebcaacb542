package actions

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ryo246912/gh-review-tally/internal/models"
	"github.com/sethvargo/go-githubactions"
)

const (
	envOutput      = "GITHUB_OUTPUT"
	envStepSummary = "GITHUB_STEP_SUMMARY"
)

// OutputWriter publishes step outputs and the job summary for later workflow steps
type OutputWriter struct {
	// Path is the runner's GITHUB_OUTPUT file. When it is empty or cannot be
	// written, outputs fall back to set-output commands on Fallback.
	Path        string
	SummaryPath string
	Fallback    io.Writer
}

func (o *OutputWriter) action() *githubactions.Action {
	return githubactions.New(
		githubactions.WithWriter(o.Fallback),
		githubactions.WithGetenv(func(key string) string {
			switch key {
			case envOutput:
				return o.Path
			case envStepSummary:
				return o.SummaryPath
			default:
				return ""
			}
		}),
	)
}

// WriteCounts emits one output per review state
func (o *OutputWriter) WriteCounts(counts models.Counts) {
	action := o.action()
	for _, out := range counts.Outputs() {
		action.SetOutput(out.Key, strconv.Itoa(out.Value))
	}
}

// WriteStepSummary appends a markdown table of counts to the job summary
func (o *OutputWriter) WriteStepSummary(prNumber int, counts models.Counts) {
	if o.SummaryPath == "" {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### Review states for #%d\n\n", prNumber)
	b.WriteString("| State | Count |\n| --- | ---: |\n")
	for _, out := range counts.Outputs() {
		fmt.Fprintf(&b, "| %s | %d |\n", out.Key, out.Value)
	}

	o.action().AddStepSummary(b.String())
}
