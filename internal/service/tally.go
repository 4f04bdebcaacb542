package service

import (
	"context"
	"fmt"
	"io"

	"github.com/ryo246912/gh-review-tally/internal/actions"
	"github.com/ryo246912/gh-review-tally/internal/event"
	"github.com/ryo246912/gh-review-tally/internal/github"
	"github.com/ryo246912/gh-review-tally/internal/models"
	"github.com/ryo246912/gh-review-tally/internal/ui"
)

// Options selects where the pull request number comes from
type Options struct {
	PRNumber    int
	Interactive bool
	EventPath   string
}

// TallyService contains the business logic
type TallyService struct {
	client   github.GitHubClient
	repo     github.RepositoryInfo
	prompter ui.Prompter
	logger   actions.Logger
}

// NewTallyService creates a new service instance
func NewTallyService(client github.GitHubClient, repo github.RepositoryInfo, prompter ui.Prompter, logger actions.Logger) *TallyService {
	if logger == nil {
		logger = actions.NewLogger(io.Discard)
	}
	return &TallyService{
		client:   client,
		repo:     repo,
		prompter: prompter,
		logger:   logger,
	}
}

// Process resolves the pull request and tallies its review states
func (s *TallyService) Process(ctx context.Context, opts Options) (int, models.Counts, error) {
	prNumber, err := s.ResolvePRNumber(ctx, opts)
	if err != nil {
		return 0, nil, err
	}

	counts, err := s.Tally(ctx, prNumber)
	if err != nil {
		return prNumber, nil, err
	}
	return prNumber, counts, nil
}

// ResolvePRNumber gets PR number from options, the picker, or the event payload
func (s *TallyService) ResolvePRNumber(ctx context.Context, opts Options) (int, error) {
	if opts.PRNumber > 0 {
		return opts.PRNumber, nil
	}

	if opts.Interactive {
		prs, err := s.client.GetOpenPRs(ctx, s.repo.GetOwner(), s.repo.GetName())
		if err != nil {
			return 0, fmt.Errorf("failed to get open PRs: %w", err)
		}
		return s.prompter.SelectPR(prs)
	}

	ev, err := event.Load(opts.EventPath)
	if err != nil {
		return 0, err
	}
	s.logger.Debugf("%s event for pull request #%d", ev.Kind, ev.Number)
	return ev.Number, nil
}

// Tally queries reviews and outstanding review requests of one pull request
func (s *TallyService) Tally(ctx context.Context, prNumber int) (models.Counts, error) {
	owner, name := s.repo.GetOwner(), s.repo.GetName()

	reviews, err := s.client.GetReviews(ctx, owner, name, prNumber)
	if err != nil {
		return nil, err
	}
	s.logger.Debugf("fetched %d reviews of %s/%s#%d", len(reviews), owner, name, prNumber)
	if len(reviews) > github.PageSize {
		s.logger.Infof("pull request #%d has %d reviews; fetched them across multiple pages", prNumber, len(reviews))
	}

	requests, err := s.client.GetReviewRequests(ctx, owner, name, prNumber)
	if err != nil {
		return nil, err
	}
	for _, r := range requests {
		s.logger.Debugf("review requested from %s %s", r.Kind, r.Reviewer)
	}

	latest := LatestReviewStates(reviews)
	for login, state := range latest {
		if !state.Valid() {
			s.logger.Warningf("ignoring unknown review state %q from %s", state, login)
		}
	}
	return Aggregate(latest, len(requests)), nil
}

// LatestReviewStates folds reviews into login -> state. Reviews are taken in
// the order returned by the API and a later review from the same login
// overwrites the earlier one.
func LatestReviewStates(reviews []models.Review) map[string]models.ReviewState {
	latest := make(map[string]models.ReviewState, len(reviews))
	for _, review := range reviews {
		latest[review.Author] = review.State
	}
	return latest
}

// Aggregate counts logins per review state. Outstanding review requests are
// added to the pending bucket.
func Aggregate(latest map[string]models.ReviewState, requestCount int) models.Counts {
	counts := make(models.Counts, len(models.ReviewStates))
	for _, state := range models.ReviewStates {
		n := 0
		for _, s := range latest {
			if s == state {
				n++
			}
		}
		if state == models.ReviewStatePending {
			n += requestCount
		}
		counts[state] = n
	}
	return counts
}
