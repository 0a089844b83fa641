package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/agentstation/skillmap/pkg/institutions"
)

// Result represents the outcome of a catalog build.
type Result struct {
	// RunID identifies the build in logs and snapshots
	RunID string `json:"run_id" yaml:"run_id"`

	// Institutions is the catalog: user-merged records first, then
	// unmatched legacy records, then companies
	Institutions []institutions.Institution `json:"institutions" yaml:"institutions"`

	// Failures lists records whose inference failed; they are still in Institutions
	Failures []InferenceFailure `json:"failures" yaml:"failures"`

	// Warnings about the input data
	Warnings []string `json:"warnings" yaml:"warnings"`

	Stats    Statistics `json:"stats" yaml:"stats"`
	Metadata Metadata   `json:"metadata" yaml:"metadata"`

	started time.Time
}

// InferenceFailure records a per-record inference failure.
type InferenceFailure struct {
	ID    string `json:"id" yaml:"id"`
	Error string `json:"error" yaml:"error"`
	Err   error  `json:"-" yaml:"-"`
}

// Statistics counts records by how they entered the catalog.
type Statistics struct {
	Users             int `json:"users" yaml:"users"`                           // user records after deduplication
	DuplicateUsers    int `json:"duplicate_users" yaml:"duplicate_users"`       // user records replaced by a later one
	Merged            int `json:"merged" yaml:"merged"`                         // user records merged with a legacy record
	UserOnly          int `json:"user_only" yaml:"user_only"`                   // user records without a legacy counterpart
	LegacyPassthrough int `json:"legacy_passthrough" yaml:"legacy_passthrough"` // unmatched legacy records
	Companies         int `json:"companies" yaml:"companies"`
	Dropped           int `json:"dropped" yaml:"dropped"` // records dropped for reusing an id
	InferenceFailures int `json:"inference_failures" yaml:"inference_failures"`
	Total             int `json:"total" yaml:"total"`
}

// Metadata contains metadata about the build.
type Metadata struct {
	StartTime utc.Time      `json:"start_time" yaml:"start_time"`
	EndTime   utc.Time      `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Inferrer  string        `json:"inferrer" yaml:"inferrer"`
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	now := time.Now()
	return &Result{
		RunID:    uuid.NewString(),
		Failures: []InferenceFailure{},
		Warnings: []string{},
		Metadata: Metadata{
			StartTime: utc.New(now),
		},
		started: now,
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = utc.Now()
	r.Metadata.Duration = time.Since(r.started)
}

// HasFailures reports whether any record fell back to its manual values.
func (r *Result) HasFailures() bool {
	return len(r.Failures) > 0
}

// Collection returns a read-only view of the catalog.
func (r *Result) Collection() *institutions.Collection {
	return institutions.NewCollection(r.Institutions)
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Stats
	summary := fmt.Sprintf("Built catalog of %d institutions (%d merged, %d user only, %d legacy, %d companies)",
		s.Total, s.Merged, s.UserOnly, s.LegacyPassthrough, s.Companies)
	if s.InferenceFailures > 0 {
		summary += fmt.Sprintf("; inference failed for %d", s.InferenceFailures)
	}
	if len(r.Warnings) > 0 {
		summary += fmt.Sprintf("; %d warnings", len(r.Warnings))
	}
	return summary
}

func (r *Result) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
