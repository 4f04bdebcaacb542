// Package event reads the workflow event payload and extracts the pull request it refers to.
package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Kind identifies which payload shape an event matched
type Kind int

const (
	KindPullRequest Kind = iota + 1
	KindPullRequestReview
)

func (k Kind) String() string {
	switch k {
	case KindPullRequest:
		return "pull_request"
	case KindPullRequestReview:
		return "pull_request_review"
	default:
		return "unknown"
	}
}

// Event is a classified event payload
type Event struct {
	Kind   Kind
	Number int
}

// UnrecognizedEventError is returned when a payload is neither a pull_request
// nor a pull_request_review event
type UnrecognizedEventError struct {
	Fields []string
}

func (e *UnrecognizedEventError) Error() string {
	return fmt.Sprintf("unrecognized event: payload has neither pull_request nor pull_request_review (top-level fields: %v)", e.Fields)
}

// MalformedEventError is returned when a payload is not a JSON object, or
// matches a known event shape without a usable pull request number
type MalformedEventError struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *MalformedEventError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *MalformedEventError) Unwrap() error {
	return e.Err
}

type number struct {
	Number *int `json:"number"`
}

type reviewPayload struct {
	PullRequest *number `json:"pull_request"`
}

// Load reads and classifies the event payload stored at path
func Load(path string) (Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Event{}, fmt.Errorf("failed to read event payload: %w", err)
	}
	return Parse(data)
}

// Parse classifies a raw event payload. pull_request wins over
// pull_request_review when both are present.
func Parse(data []byte) (Event, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Event{}, &MalformedEventError{Reason: "failed to decode event payload", Err: err}
	}

	if raw, ok := present(fields, "pull_request"); ok {
		var pr number
		if err := json.Unmarshal(raw, &pr); err != nil {
			return Event{}, &MalformedEventError{Kind: KindPullRequest, Reason: "failed to decode pull_request", Err: err}
		}
		return newEvent(KindPullRequest, pr.Number)
	}

	if raw, ok := present(fields, "pull_request_review"); ok {
		var review reviewPayload
		if err := json.Unmarshal(raw, &review); err != nil {
			return Event{}, &MalformedEventError{Kind: KindPullRequestReview, Reason: "failed to decode pull_request_review", Err: err}
		}
		if review.PullRequest == nil {
			return Event{}, &MalformedEventError{Kind: KindPullRequestReview, Reason: "pull_request_review event has no pull_request"}
		}
		return newEvent(KindPullRequestReview, review.PullRequest.Number)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return Event{}, &UnrecognizedEventError{Fields: names}
}

// present treats an explicit null the same as a missing field
func present(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

func newEvent(kind Kind, n *int) (Event, error) {
	if n == nil {
		return Event{}, &MalformedEventError{Kind: kind, Reason: fmt.Sprintf("%s event has no pull request number", kind)}
	}
	if *n <= 0 {
		return Event{}, &MalformedEventError{Kind: kind, Reason: fmt.Sprintf("%s event has invalid pull request number %d", kind, *n)}
	}
	return Event{Kind: kind, Number: *n}, nil
}
