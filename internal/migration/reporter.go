package migration

import (
	"fmt"
	"io"

	"github.com/goliatone/go-docmigrate/pkg/interfaces"
)

// Reporter prints human-readable progress for a run. Write errors are ignored;
// the report is advisory and never affects the outcome.
type Reporter struct {
	out io.Writer
}

// NewReporter writes to out, or discards output when out is nil.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = io.Discard
	}
	return &Reporter{out: out}
}

// Start announces how many documents were found and where they go.
func (r *Reporter) Start(total int, spaceID string) {
	fmt.Fprintf(r.out, "Found %d Markdown files\n", total)
	fmt.Fprintf(r.out, "Target space: %s\n\n", spaceID)
}

// Processing announces the document about to be handled.
func (r *Reporter) Processing(path string) {
	fmt.Fprintf(r.out, "Processing: %s\n", path)
}

// Loaded prints the resolved title and the size in bytes.
func (r *Reporter) Loaded(doc *interfaces.Document) {
	fmt.Fprintf(r.out, "  Title: %s\n", doc.Title)
	fmt.Fprintf(r.out, "  Size: %d bytes\n", doc.Size())
}

// Finished closes a document block: a blank line after a success, the
// failure reason otherwise.
func (r *Reporter) Finished(result interfaces.DocumentResult) {
	if result.Succeeded() {
		fmt.Fprintln(r.out)
		return
	}
	fmt.Fprintf(r.out, "  ERROR: %v\n", result.Err)
}

// Summary prints the final tally, preceded by a blank line.
func (r *Reporter) Summary(summary *interfaces.RunSummary) {
	fmt.Fprintln(r.out, "\nSummary:")
	fmt.Fprintf(r.out, "  Success: %d\n", summary.Succeeded)
	fmt.Fprintf(r.out, "  Failed: %d\n", summary.Failed)
	fmt.Fprintf(r.out, "  Total: %d\n", summary.Total)
}
