package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	graphql "github.com/cli/shurcooL-graphql"
	"github.com/ryo246912/gh-review-tally/internal/models"
)

const (
	// DefaultHost is used when Config.Host is empty
	DefaultHost = "github.com"
	// PageSize is the number of nodes requested per GraphQL page
	PageSize = 100
	// MaxPages bounds pagination of a single connection
	MaxPages = 50
)

// Config configures the GraphQL client
type Config struct {
	Host      string
	Token     string
	Timeout   time.Duration
	Transport http.RoundTripper
}

// Client wraps the GitHub GraphQL API client
type Client struct {
	gql *api.GraphQLClient
}

type pageInfo struct {
	HasNextPage bool
	EndCursor   string
}

func NewClient(cfg Config) (*Client, error) {
	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	gqlClient, err := api.NewGraphQLClient(api.ClientOptions{
		Host:      host,
		AuthToken: cfg.Token,
		Timeout:   timeout,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}

	return &Client{gql: gqlClient}, nil
}

// GetReviews fetches submitted reviews of a pull request in API order
func (c *Client) GetReviews(ctx context.Context, owner, repo string, prNumber int) ([]models.Review, error) {
	// query ($repoOwner: String!, $repoName: String!, $prNumber: Int!, $first: Int!, $endCursor: String) {
	// 	repository(owner: $repoOwner, name: $repoName) {
	// 		pullRequest(number: $prNumber) {
	// 			reviews(first: $first, after: $endCursor) {
	// 				nodes { author { login } authorAssociation state }
	// 				pageInfo { hasNextPage endCursor }
	// 			}
	// 		}
	// 	}
	// }
	var reviews []models.Review
	err := c.paginate(func(cursor *graphql.String) (pageInfo, error) {
		var q struct {
			Repository struct {
				PullRequest struct {
					Reviews struct {
						Nodes []struct {
							Author struct {
								Login string
							}
							AuthorAssociation string
							State             string
						}
						PageInfo pageInfo
					} `graphql:"reviews(first: $first, after: $endCursor)"`
				} `graphql:"pullRequest(number: $prNumber)"`
			} `graphql:"repository(owner: $repoOwner, name: $repoName)"`
		}

		if err := c.gql.QueryWithContext(ctx, "PullRequestReviews", &q, pullRequestVariables(owner, repo, prNumber, cursor)); err != nil {
			return pageInfo{}, err
		}

		conn := q.Repository.PullRequest.Reviews
		for _, node := range conn.Nodes {
			reviews = append(reviews, models.Review{
				Author:            node.Author.Login,
				AuthorAssociation: node.AuthorAssociation,
				State:             models.ReviewState(node.State),
			})
		}
		return conn.PageInfo, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

// GetReviewRequests fetches reviewers and teams whose review is still requested
func (c *Client) GetReviewRequests(ctx context.Context, owner, repo string, prNumber int) ([]models.ReviewRequest, error) {
	var requests []models.ReviewRequest
	err := c.paginate(func(cursor *graphql.String) (pageInfo, error) {
		var q struct {
			Repository struct {
				PullRequest struct {
					ReviewRequests struct {
						Nodes []struct {
							RequestedReviewer struct {
								Typename string `graphql:"__typename"`
								User     struct {
									Login string
								} `graphql:"... on User"`
								Team struct {
									Name string
								} `graphql:"... on Team"`
								Mannequin struct {
									Login string
								} `graphql:"... on Mannequin"`
							}
						}
						PageInfo pageInfo
					} `graphql:"reviewRequests(first: $first, after: $endCursor)"`
				} `graphql:"pullRequest(number: $prNumber)"`
			} `graphql:"repository(owner: $repoOwner, name: $repoName)"`
		}

		if err := c.gql.QueryWithContext(ctx, "PullRequestReviewRequests", &q, pullRequestVariables(owner, repo, prNumber, cursor)); err != nil {
			return pageInfo{}, err
		}

		conn := q.Repository.PullRequest.ReviewRequests
		for _, node := range conn.Nodes {
			reviewer := node.RequestedReviewer
			switch reviewer.Typename {
			case "Team":
				requests = append(requests, models.ReviewRequest{Reviewer: reviewer.Team.Name, Kind: models.ReviewerTeam})
			case "Mannequin":
				requests = append(requests, models.ReviewRequest{Reviewer: reviewer.Mannequin.Login, Kind: models.ReviewerUser})
			default:
				requests = append(requests, models.ReviewRequest{Reviewer: reviewer.User.Login, Kind: models.ReviewerUser})
			}
		}
		return conn.PageInfo, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review requests: %w", err)
	}
	return requests, nil
}

// GetOpenPRs fetches the most recently updated open pull requests using GraphQL
func (c *Client) GetOpenPRs(ctx context.Context, owner, repo string) ([]models.PullRequestInfo, error) {
	// NOTE: https://github.com/cli/go-gh/blob/a08820a13f257d6c5b4cb86d37db559ec6d14577/example_gh_test.go#L233
	var q struct {
		Search struct {
			Nodes []struct {
				PullRequest struct {
					Number         int
					Title          string
					IsDraft        bool
					ReviewDecision string
					UpdatedAt      string
					Author         struct {
						Login string
					}
				} `graphql:"... on PullRequest"`
			}
		} `graphql:"search(type: ISSUE, query: $query, first: $first)"`
	}

	variables := map[string]interface{}{
		"query": graphql.String(fmt.Sprintf("repo:%s/%s is:pr state:open sort:updated-desc", owner, repo)),
		"first": graphql.Int(PageSize),
	}

	if err := c.gql.QueryWithContext(ctx, "OpenPullRequests", &q, variables); err != nil {
		return nil, fmt.Errorf("failed to fetch pull requests: %w", err)
	}

	prs := make([]models.PullRequestInfo, 0, len(q.Search.Nodes))
	for _, node := range q.Search.Nodes {
		pr := node.PullRequest
		prs = append(prs, models.PullRequestInfo{
			Number:         pr.Number,
			Title:          pr.Title,
			User:           pr.Author.Login,
			Draft:          pr.IsDraft,
			ReviewDecision: pr.ReviewDecision,
			UpdatedAt:      pr.UpdatedAt,
		})
	}
	return prs, nil
}

// paginate calls fetch with the cursor of the next page until the
// connection reports no further pages
func (c *Client) paginate(fetch func(cursor *graphql.String) (pageInfo, error)) error {
	var cursor *graphql.String
	previous := ""
	for page := 0; ; page++ {
		if page >= MaxPages {
			return fmt.Errorf("pagination exceeded max page limit %d", MaxPages)
		}

		info, err := fetch(cursor)
		if err != nil {
			return err
		}
		if !info.HasNextPage {
			return nil
		}
		if info.EndCursor == "" {
			return fmt.Errorf("pagination returned empty cursor while hasNextPage=true")
		}
		if info.EndCursor == previous {
			return fmt.Errorf("pagination cursor stalled at %q", info.EndCursor)
		}

		next := graphql.String(info.EndCursor)
		cursor = &next
		previous = info.EndCursor
	}
}

func pullRequestVariables(owner, repo string, prNumber int, cursor *graphql.String) map[string]interface{} {
	return map[string]interface{}{
		"repoOwner": graphql.String(owner),
		"repoName":  graphql.String(repo),
		"prNumber":  graphql.Int(prNumber),
		"first":     graphql.Int(PageSize),
		"endCursor": cursor,
	}
}
