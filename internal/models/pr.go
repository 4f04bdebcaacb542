package models

import "strings"

// ReviewState is the state of a submitted pull request review
type ReviewState string

const (
	ReviewStateApproved         ReviewState = "APPROVED"
	ReviewStateChangesRequested ReviewState = "CHANGES_REQUESTED"
	ReviewStateCommented        ReviewState = "COMMENTED"
	ReviewStateDismissed        ReviewState = "DISMISSED"
	// Reviews in this state are not returned to other users, so the tally
	// also counts outstanding review requests here.
	ReviewStatePending ReviewState = "PENDING"
)

// ReviewStates lists every tallied state in output order
var ReviewStates = []ReviewState{
	ReviewStateApproved,
	ReviewStateChangesRequested,
	ReviewStateCommented,
	ReviewStateDismissed,
	ReviewStatePending,
}

// Valid reports whether s is one of ReviewStates
func (s ReviewState) Valid() bool {
	switch s {
	case ReviewStateApproved, ReviewStateChangesRequested, ReviewStateCommented,
		ReviewStateDismissed, ReviewStatePending:
		return true
	}
	return false
}

// OutputKey returns the name the state is emitted under
func (s ReviewState) OutputKey() string {
	return strings.ToLower(string(s))
}

// Review represents a submitted PR review
type Review struct {
	Author            string      `json:"author"`
	AuthorAssociation string      `json:"author_association"`
	State             ReviewState `json:"state"`
}

// ReviewerKind tells a user request apart from a team request
type ReviewerKind string

const (
	ReviewerUser ReviewerKind = "User"
	ReviewerTeam ReviewerKind = "Team"
)

// ReviewRequest represents an outstanding review request
type ReviewRequest struct {
	Reviewer string       `json:"reviewer"`
	Kind     ReviewerKind `json:"kind"`
}

// PullRequestInfo represents PR metadata shown by the interactive picker
type PullRequestInfo struct {
	Number         int    `json:"number"`
	Title          string `json:"title"`
	User           string `json:"user"`
	Draft          bool   `json:"draft"`
	ReviewDecision string `json:"review_decision"`
	UpdatedAt      string `json:"updated_at"`
}
