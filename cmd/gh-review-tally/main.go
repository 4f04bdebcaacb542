package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/ryo246912/gh-review-tally/internal/actions"
	"github.com/ryo246912/gh-review-tally/internal/config"
	"github.com/ryo246912/gh-review-tally/internal/github"
	"github.com/ryo246912/gh-review-tally/internal/models"
	"github.com/ryo246912/gh-review-tally/internal/service"
	"github.com/ryo246912/gh-review-tally/internal/ui"
	"github.com/spf13/cobra"
)

var version = "dev"

// apiTransport is handed to the GraphQL client; nil uses the default transport
var apiTransport http.RoundTripper

func runCommand(ctx context.Context, opts config.Options, stdout io.Writer) error {
	cfg, err := config.Load(opts)
	if err != nil {
		return err
	}

	client, err := github.NewClient(github.Config{
		Host:      cfg.Host,
		Token:     cfg.Token,
		Transport: apiTransport,
	})
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	logger := actions.NewLogger(stdout)
	tallyService := service.NewTallyService(client, cfg, &ui.DefaultPrompter{}, logger)

	prNumber, counts, err := tallyService.Process(ctx, service.Options{
		PRNumber:    cfg.PRNumber,
		Interactive: cfg.Interactive,
		EventPath:   cfg.EventPath,
	})
	if err != nil {
		return err
	}

	return emit(cfg, stdout, prNumber, counts)
}

func emit(cfg config.Config, stdout io.Writer, prNumber int, counts models.Counts) error {
	if cfg.Format != ui.FormatGitHub {
		return ui.Render(stdout, cfg.Format, counts)
	}

	outputs := &actions.OutputWriter{
		Path:        cfg.OutputPath,
		SummaryPath: cfg.SummaryPath,
		Fallback:    stdout,
	}
	outputs.WriteCounts(counts)
	outputs.WriteStepSummary(prNumber, counts)
	return nil
}

func newRootCmd() *cobra.Command {
	var opts config.Options

	cmd := &cobra.Command{
		Use:   "gh-review-tally",
		Short: "Count pull request reviewers per review state",
		Long: "Count pull request reviewers per review state (approved, changes_requested,\n" +
			"commented, dismissed, pending) and publish the counts as step outputs.\n" +
			"Inside GitHub Actions the pull request is read from " + config.EnvEventPath + ".",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Token, "token", "", "GitHub token (default $"+config.EnvInputToken+" or $"+config.EnvToken+")")
	flags.StringVarP(&opts.Repository, "repo", "R", "", "repository as [HOST/]OWNER/REPO (default $"+config.EnvRepository+")")
	flags.StringVar(&opts.EventPath, "event-path", "", "event payload file (default $"+config.EnvEventPath+")")
	flags.IntVar(&opts.PRNumber, "pr", 0, "pull request number; skips the event payload")
	flags.BoolVarP(&opts.Interactive, "interactive", "i", false, "pick an open pull request interactively")
	flags.StringVarP(&opts.Format, "format", "f", "", "output format: "+strings.Join(ui.Formats, ", "))

	return cmd
}

func main() {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		actions.NewLogger(os.Stdout).Errorf("%v", err)
		os.Exit(ResolveExitCode(err))
	}
}
