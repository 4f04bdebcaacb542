package ui

import "github.com/ryo246912/gh-review-tally/internal/models"

// Prompter defines interface for user interaction
type Prompter interface {
	SelectPR(prs []models.PullRequestInfo) (int, error)
}

// DefaultPrompter implements the actual prompting logic
type DefaultPrompter struct{}

// SelectPR prompts user to select a PR
func (p *DefaultPrompter) SelectPR(prs []models.PullRequestInfo) (int, error) {
	return SelectPR(prs)
}

// MockPrompter for testing
type MockPrompter struct {
	SelectedPRNumber int
	PRSelectionError error

	// Call tracking
	SelectPRCalled bool
	OfferedPRs     []models.PullRequestInfo
}

// SelectPR mocks PR selection
func (m *MockPrompter) SelectPR(prs []models.PullRequestInfo) (int, error) {
	m.SelectPRCalled = true
	m.OfferedPRs = prs
	return m.SelectedPRNumber, m.PRSelectionError
}
