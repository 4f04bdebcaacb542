package github

import (
	"context"

	"github.com/ryo246912/gh-review-tally/internal/models"
)

// GitHubClient defines the interface for GitHub operations
type GitHubClient interface {
	GetReviews(ctx context.Context, owner, repo string, prNumber int) ([]models.Review, error)
	GetReviewRequests(ctx context.Context, owner, repo string, prNumber int) ([]models.ReviewRequest, error)
	GetOpenPRs(ctx context.Context, owner, repo string) ([]models.PullRequestInfo, error)
}

// RepositoryInfo defines repository information interface
type RepositoryInfo interface {
	GetOwner() string
	GetName() string
}

// Ensure Client implements GitHubClient interface
var _ GitHubClient = (*Client)(nil)
