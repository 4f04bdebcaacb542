package github

import (
	"context"
	"fmt"

	"github.com/ryo246912/gh-review-tally/internal/models"
)

// MockClient implements GitHubClient for testing
type MockClient struct {
	// Control test behavior
	Reviews       []models.Review
	ReviewsError  error
	Requests      []models.ReviewRequest
	RequestsError error
	OpenPRs       []models.PullRequestInfo
	OpenPRsError  error

	// Track method calls
	GetReviewsCalled        bool
	GetReviewRequestsCalled bool
	GetOpenPRsCalled        bool

	// Store call arguments for verification
	LastOwner    string
	LastRepo     string
	LastPRNumber int
}

// GetReviews mocks the reviews query
func (m *MockClient) GetReviews(ctx context.Context, owner, repo string, prNumber int) ([]models.Review, error) {
	m.GetReviewsCalled = true
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastPRNumber = prNumber
	return m.Reviews, m.ReviewsError
}

// GetReviewRequests mocks the review requests query
func (m *MockClient) GetReviewRequests(ctx context.Context, owner, repo string, prNumber int) ([]models.ReviewRequest, error) {
	m.GetReviewRequestsCalled = true
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastPRNumber = prNumber
	return m.Requests, m.RequestsError
}

// GetOpenPRs mocks the pull request search
func (m *MockClient) GetOpenPRs(ctx context.Context, owner, repo string) ([]models.PullRequestInfo, error) {
	m.GetOpenPRsCalled = true
	m.LastOwner = owner
	m.LastRepo = repo
	return m.OpenPRs, m.OpenPRsError
}

// Called reports whether any query was issued
func (m *MockClient) Called() bool {
	return m.GetReviewsCalled || m.GetReviewRequestsCalled || m.GetOpenPRsCalled
}

// MockRepository implements repository information for testing
type MockRepository struct {
	Owner string
	Name  string
}

func (m *MockRepository) GetOwner() string {
	return m.Owner
}

func (m *MockRepository) GetName() string {
	return m.Name
}

// Helper functions for creating test data
func CreateTestPRs(count int) []models.PullRequestInfo {
	prs := make([]models.PullRequestInfo, count)
	for i := 0; i < count; i++ {
		prs[i] = models.PullRequestInfo{
			Number:         i + 1,
			Title:          fmt.Sprintf("Test PR #%d", i+1),
			User:           fmt.Sprintf("user%d", i+1),
			Draft:          i%2 == 0,
			ReviewDecision: "REVIEW_REQUIRED",
			UpdatedAt:      "2023-01-01T12:00:00Z",
		}
	}
	return prs
}

func CreateTestRequests(count int) []models.ReviewRequest {
	requests := make([]models.ReviewRequest, count)
	for i := 0; i < count; i++ {
		requests[i] = models.ReviewRequest{Reviewer: fmt.Sprintf("reviewer%d", i+1), Kind: models.ReviewerUser}
	}
	return requests
}

// NewAPIError builds an error for testing failure paths
func NewAPIError(message string) error {
	return fmt.Errorf("API error: %s", message)
}
