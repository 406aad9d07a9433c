package domain

import (
	"fmt"
	"time"
)

// Violation is a single style finding produced by a rule.
type Violation struct {
	Rule    string `json:"rule"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// Key returns the comparison identity of a finding. The rule name is not part
// of it so custom findings can be matched against external ones.
func (v Violation) Key() FindingKey {
	return FindingKey{Line: v.Line, Column: v.Column, Message: v.Message}
}

func (v Violation) String() string {
	return fmt.Sprintf("Line %d, Column %d: %s", v.Line, v.Column, v.Message)
}

// FindingKey is the (line, column, message) triple used for exact matching.
type FindingKey struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// CheckFailure records a rule that could not complete on a file.
type CheckFailure struct {
	Rule  string `json:"rule"`
	Error string `json:"error"`
}

// CheckReport is the result of running the rule engine over one file.
type CheckReport struct {
	RunID      string         `json:"run_id"`
	File       string         `json:"file"`
	Violations []Violation    `json:"violations"`
	Failures   []CheckFailure `json:"failures,omitempty"`
	// Error is set when the file could not be read or parsed; no rule ran.
	Error string `json:"error,omitempty"`
	// Cached is set when the violations come from an earlier run.
	Cached bool `json:"cached,omitempty"`
}

// HasFindings reports whether the file has any violation.
func (r *CheckReport) HasFindings() bool { return len(r.Violations) > 0 }

// Failed reports whether the file or one of its rules could not be checked.
func (r *CheckReport) Failed() bool { return r.Error != "" || len(r.Failures) > 0 }

// CountByRule groups violation counts by rule name.
func (r *CheckReport) CountByRule() map[string]int {
	counts := make(map[string]int)
	for _, v := range r.Violations {
		counts[v.Rule]++
	}
	return counts
}

// ExternalFinding is one line of external linter output.
type ExternalFinding struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FullMessage is the message as used for comparison: "CODE message".
func (f ExternalFinding) FullMessage() string {
	return f.Code + " " + f.Message
}

func (f ExternalFinding) Key() FindingKey {
	return FindingKey{Line: f.Line, Column: f.Column, Message: f.FullMessage()}
}

// ToolRun captures the findings of one tool together with its cost.
type ToolRun struct {
	Tool        string        `json:"tool"`
	Findings    []FindingKey  `json:"findings"`
	Duration    time.Duration `json:"duration_ns"`
	MemoryDelta int64         `json:"memory_delta_bytes"`
}

// Comparison partitions the findings of the custom rules and an external linter.
type Comparison struct {
	File         string       `json:"file"`
	CustomOnly   []FindingKey `json:"custom_only"`
	ExternalOnly []FindingKey `json:"external_only"`
	Common       []FindingKey `json:"common"`
	Custom       ToolRun      `json:"custom"`
	External     ToolRun      `json:"external"`
	// Failures lists rules that did not complete; their findings are
	// missing from the custom side.
	Failures []CheckFailure `json:"failures,omitempty"`
}

// HistoryEntry is one persisted compare run.
type HistoryEntry struct {
	Timestamp       time.Time `json:"timestamp"`
	CommitHash      string    `json:"commit_hash,omitempty"`
	File            string    `json:"file"`
	CustomCount     int       `json:"custom_count"`
	ExternalCount   int       `json:"external_count"`
	CommonCount     int       `json:"common_count"`
	CustomSeconds   float64   `json:"custom_seconds"`
	ExternalSeconds float64   `json:"external_seconds"`
}

// FormatResult is the outcome of running the external formatter.
type FormatResult struct {
	File    string `json:"file"`
	Diff    string `json:"diff"`
	Applied bool   `json:"applied"`
}
