package ui

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-runewidth"
	"github.com/ryo246912/gh-review-tally/internal/models"
)

// FormatPRItem renders one picker line
func FormatPRItem(pr models.PullRequestInfo) string {
	decision := pr.ReviewDecision
	if decision == "" {
		decision = "-"
	}
	if pr.Draft {
		decision += " (Draft)"
	}
	title := runewidth.Truncate(pr.Title, 60, "...")
	return fmt.Sprintf(
		"#%s %s %s %s %s",
		PadRight(fmt.Sprintf("%-6d", pr.Number), 7),
		PadRight(title, 60),
		PadRight(pr.User, 15),
		PadRight(decision, 26),
		PadRight(pr.UpdatedAt, 20),
	)
}

func SelectPR(prs []models.PullRequestInfo) (int, error) {
	if len(prs) == 0 {
		return 0, fmt.Errorf("no open pull requests found")
	}

	items := make([]string, len(prs))
	for i, pr := range prs {
		items[i] = FormatPRItem(pr)
	}

	prompt := promptui.Select{
		Label: "Select PR",
		Items: items,
		Size:  12,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
		StartInSearchMode: true,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("prompt failed: %w", err)
	}
	return prs[idx].Number, nil
}
