package models

// Counts holds the number of reviewers per state
type Counts map[ReviewState]int

// Output is one named value handed to the calling workflow step
type Output struct {
	Key   string `json:"key" yaml:"key"`
	Value int    `json:"value" yaml:"value"`
}

// Outputs returns one entry per state in ReviewStates, missing states as zero
func (c Counts) Outputs() []Output {
	outputs := make([]Output, 0, len(ReviewStates))
	for _, state := range ReviewStates {
		outputs = append(outputs, Output{Key: state.OutputKey(), Value: c[state]})
	}
	return outputs
}
