package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/ryo246912/gh-review-tally/internal/models"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Render. FormatGitHub is handled by the actions package.
const (
	FormatGitHub = "github"
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// Formats lists every supported --format value
var Formats = []string{FormatGitHub, FormatTable, FormatJSON, FormatYAML}

func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// Render writes counts to w in a human or machine readable format
func Render(w io.Writer, format string, counts models.Counts) error {
	outputs := counts.Outputs()

	switch format {
	case FormatTable:
		fmt.Fprintf(w, "%s %s\n", PadRight("STATE", 18), "COUNT")
		for _, out := range outputs {
			fmt.Fprintf(w, "%s %d\n", PadRight(out.Key, 18), out.Value)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toMap(outputs))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toYAMLNode(outputs)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func toMap(outputs []models.Output) map[string]int {
	m := make(map[string]int, len(outputs))
	for _, out := range outputs {
		m[out.Key] = out.Value
	}
	return m
}

// toYAMLNode keeps declaration order, which a Go map would lose
func toYAMLNode(outputs []models.Output) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, out := range outputs {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: out.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("%d", out.Value)},
		)
	}
	return node
}
