package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ObjectCreator pushes a document into a remote content space. Implementations
// return nil when the object was accepted.
type ObjectCreator interface {
	CreateObject(ctx context.Context, spaceID, title string, body []byte) error
}

// MigrationService runs a migration pass over a directory of Markdown files.
// Per-document failures are reported through RunSummary; the returned error is
// reserved for failures that prevent the pass from running or finishing, such
// as a bad pattern or a cancelled context.
type MigrationService interface {
	Run(ctx context.Context, opts RunOptions) (*RunSummary, error)
}

// RunOptions overrides the service configuration for a single pass. Empty
// values fall back to the configured defaults.
type RunOptions struct {
	SourceDir     string
	SpaceID       string
	Pattern       string
	Recursive     *bool
	CreateObjects *bool
}

// DocumentStatus is the outcome category of a single document.
type DocumentStatus string

const (
	DocumentSucceeded DocumentStatus = "success"
	DocumentFailed    DocumentStatus = "failure"
)

// DocumentResult is the explicit outcome for one discovered path. Document is
// nil and Err is set when Status is DocumentFailed.
type DocumentResult struct {
	Path     string
	Status   DocumentStatus
	Document *Document
	Err      error
}

// Succeeded reports whether the document was processed successfully.
func (r DocumentResult) Succeeded() bool {
	return r.Status == DocumentSucceeded
}

// RunSummary aggregates the outcome of a migration pass.
type RunSummary struct {
	RunID     uuid.UUID
	SourceDir string
	SpaceID   string
	// Total is the number of documents found, processed or not.
	Total     int
	Succeeded int
	Failed    int
	Results   []DocumentResult
	// Interrupted is set when the run stopped before every document was
	// processed. Succeeded + Failed == len(Results) always holds; it equals
	// Total only when Interrupted is false.
	Interrupted bool
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Pending reports how many found documents were never processed.
func (s *RunSummary) Pending() int {
	if s == nil {
		return 0
	}
	return s.Total - len(s.Results)
}

// Failures returns the failed results in processing order.
func (s *RunSummary) Failures() []DocumentResult {
	if s == nil {
		return nil
	}
	out := make([]DocumentResult, 0, s.Failed)
	for _, result := range s.Results {
		if !result.Succeeded() {
			out = append(out, result)
		}
	}
	return out
}
