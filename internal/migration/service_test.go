package migration

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-docmigrate/internal/adapters/noop"
	"github.com/goliatone/go-docmigrate/pkg/interfaces"
)

func TestRunReportsDocumentsInSortedOrder(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"b.md":      "# Bee\n",
		"c_file.md": "## Sub\n",
		"a.md":      "no heading\n",
		"skip.txt":  "# Not markdown\n",
	})

	var out bytes.Buffer
	svc := NewService(Config{SourceDir: dir, SpaceID: "space-1"}, WithReporter(NewReporter(&out)))

	summary, err := svc.Run(context.Background(), interfaces.RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := strings.Join([]string{
		"Found 3 Markdown files",
		"Target space: space-1",
		"",
		"Processing: a.md",
		"  Title: a",
		"  Size: 11 bytes",
		"",
		"Processing: b.md",
		"  Title: Bee",
		"  Size: 6 bytes",
		"",
		"Processing: c_file.md",
		"  Title: c file",
		"  Size: 7 bytes",
		"",
		"",
		"Summary:",
		"  Success: 3",
		"  Failed: 0",
		"  Total: 3",
		"",
	}, "\n")
	if out.String() != want {
		t.Fatalf("unexpected report\nwant:\n%s\ngot:\n%s", want, out.String())
	}

	if summary.Total != 3 || summary.Succeeded != 3 || summary.Failed != 0 {
		t.Fatalf("unexpected counts %+v", summary)
	}
	gotOrder := []string{summary.Results[0].Path, summary.Results[1].Path, summary.Results[2].Path}
	if strings.Join(gotOrder, ",") != "a.md,b.md,c_file.md" {
		t.Fatalf("unexpected order %v", gotOrder)
	}
	if summary.RunID.String() == "" || summary.SpaceID != "space-1" || summary.SourceDir != dir {
		t.Fatalf("unexpected run metadata %+v", summary)
	}
}

func TestRunCountsUndecodableDocumentAndContinues(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md": {Data: []byte("# A\n")},
		"b.md": {Data: []byte{0xff, 0xfe, 0xfd}},
		"c.md": {Data: []byte("# C\n")},
	}

	var out bytes.Buffer
	svc := NewService(Config{SourceDir: "docs", SpaceID: "space"},
		WithFilesystem(func(string) fs.FS { return fsys }),
		WithReporter(NewReporter(&out)),
	)

	summary, err := svc.Run(context.Background(), interfaces.RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Total != 3 || summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected counts %+v", summary)
	}
	if summary.Succeeded+summary.Failed != summary.Total {
		t.Fatalf("counts do not add up: %+v", summary)
	}

	paths := []string{}
	for _, result := range summary.Results {
		paths = append(paths, result.Path)
	}
	if strings.Join(paths, ",") != "a.md,b.md,c.md" {
		t.Fatalf("expected order preserved, got %v", paths)
	}

	bad := summary.Results[1]
	if bad.Succeeded() || bad.Document != nil || bad.Err == nil {
		t.Fatalf("expected failure result, got %+v", bad)
	}
	if !goerrors.IsCategory(bad.Err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", bad.Err)
	}
	if len(summary.Failures()) != 1 || summary.Failures()[0].Path != "b.md" {
		t.Fatalf("unexpected failures %+v", summary.Failures())
	}

	report := out.String()
	if !strings.Contains(report, "Processing: b.md\n  ERROR: ") {
		t.Fatalf("expected error line for b.md, got:\n%s", report)
	}
	if !strings.Contains(report, "Processing: c.md\n  Title: C\n") {
		t.Fatalf("expected c.md to be processed after the failure, got:\n%s", report)
	}
}

func TestRunReadFailureIsCommandCategory(t *testing.T) {
	svc := NewService(Config{}, WithFilesystem(func(string) fs.FS {
		return unreadableFS{fstest.MapFS{"locked.md": {Data: []byte("# Locked")}}}
	}))

	summary, err := svc.Run(context.Background(), interfaces.RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Failed != 1 {
		t.Fatalf("expected one failure, got %+v", summary)
	}
	if !goerrors.IsCategory(summary.Results[0].Err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", summary.Results[0].Err)
	}
}

func TestRunEmptyDirectory(t *testing.T) {
	var out bytes.Buffer
	svc := NewService(Config{SourceDir: t.TempDir(), SpaceID: "space"}, WithReporter(NewReporter(&out)))

	summary, err := svc.Run(context.Background(), interfaces.RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Total != 0 || summary.Succeeded != 0 || summary.Failed != 0 {
		t.Fatalf("expected zero counts, got %+v", summary)
	}
	if !strings.Contains(out.String(), "Found 0 Markdown files") || !strings.Contains(out.String(), "  Total: 0\n") {
		t.Fatalf("expected zero summary, got:\n%s", out.String())
	}
}

func TestRunMissingDirectoryCompletesEmpty(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	summary, err := NewService(Config{SourceDir: missing}).Run(context.Background(), interfaces.RunOptions{})
	if err != nil {
		t.Fatalf("expected missing directory to be tolerated, got %v", err)
	}
	if summary.Total != 0 {
		t.Fatalf("expected no documents, got %+v", summary)
	}
}

func TestRunDoesNotCreateObjectsByDefault(t *testing.T) {
	dir := writeDocs(t, map[string]string{"a.md": "# A\n"})
	creator := noop.NewObjectCreator(nil, nil)

	summary, err := NewService(Config{SourceDir: dir, SpaceID: "space"}, WithObjectCreator(creator)).
		Run(context.Background(), interfaces.RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("expected success, got %+v", summary)
	}
	if creator.Calls() != 0 {
		t.Fatalf("expected creator not to be invoked, got %d calls", creator.Calls())
	}
}

func TestRunCreatesObjectsWhenEnabled(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"a.md":        "# Alpha\n",
		"beta_doc.md": "text\n",
	})
	creator := &recordingCreator{}
	enabled := true

	summary, err := NewService(Config{SourceDir: dir, SpaceID: "space-9"}, WithObjectCreator(creator)).
		Run(context.Background(), interfaces.RunOptions{CreateObjects: &enabled})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Succeeded != 2 {
		t.Fatalf("expected two successes, got %+v", summary)
	}
	if strings.Join(creator.titles, ",") != "Alpha,beta doc" {
		t.Fatalf("unexpected created titles %v", creator.titles)
	}
	if creator.spaces[0] != "space-9" || string(creator.bodies[0]) != "# Alpha\n" {
		t.Fatalf("unexpected creator input %v %q", creator.spaces, creator.bodies[0])
	}
}

func TestRunCountsCreatorErrorsAsFailures(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"a.md": "# A\n",
		"b.md": "# B\n",
	})
	creator := &recordingCreator{failOn: "A"}
	enabled := true

	summary, err := NewService(Config{SourceDir: dir, SpaceID: "space"}, WithObjectCreator(creator)).
		Run(context.Background(), interfaces.RunOptions{CreateObjects: &enabled})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Succeeded != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected counts %+v", summary)
	}
	if !goerrors.IsCategory(summary.Results[0].Err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", summary.Results[0].Err)
	}
}

func TestRunRequiresCreatorWhenCreatingObjects(t *testing.T) {
	enabled := true
	_, err := NewService(Config{SpaceID: "space"}).Run(context.Background(), interfaces.RunOptions{CreateObjects: &enabled})
	if !errors.Is(err, ErrCreatorRequired) {
		t.Fatalf("expected ErrCreatorRequired, got %v", err)
	}

	_, err = NewService(Config{CreateObjects: true}, WithObjectCreator(&recordingCreator{})).
		Run(context.Background(), interfaces.RunOptions{})
	if !errors.Is(err, ErrSpaceIDRequired) {
		t.Fatalf("expected ErrSpaceIDRequired, got %v", err)
	}
}

func TestRunOptionsOverrideConfig(t *testing.T) {
	configured := writeDocs(t, map[string]string{"a.md": "# A\n"})
	override := writeDocs(t, map[string]string{"x.markdown": "# X\n", "y.md": "# Y\n"})

	summary, err := NewService(Config{SourceDir: configured, SpaceID: "configured"}).Run(context.Background(), interfaces.RunOptions{
		SourceDir: override,
		SpaceID:   "override",
		Pattern:   "*.markdown",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Total != 1 || summary.Results[0].Path != "x.markdown" || summary.SpaceID != "override" {
		t.Fatalf("expected override to apply, got %+v", summary)
	}
}

func TestRunRejectsInvalidPattern(t *testing.T) {
	_, err := NewService(Config{SourceDir: t.TempDir(), Pattern: "[md"}).Run(context.Background(), interfaces.RunOptions{})
	if err == nil {
		t.Fatal("expected pattern error")
	}
}

func TestRunStopsOnCancellation(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"a.md": "# A\n",
		"b.md": "# B\n",
	})
	ctx, cancel := context.WithCancel(context.Background())
	creator := &recordingCreator{onCreate: cancel}
	enabled := true

	var out bytes.Buffer
	summary, err := NewService(Config{SourceDir: dir, SpaceID: "space"}, WithObjectCreator(creator), WithReporter(NewReporter(&out))).
		Run(ctx, interfaces.RunOptions{CreateObjects: &enabled})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary == nil || !summary.Interrupted {
		t.Fatalf("expected interrupted summary, got %+v", summary)
	}
	if summary.Total != 2 || len(summary.Results) != 1 || summary.Pending() != 1 {
		t.Fatalf("expected one processed and one pending document, got %+v", summary)
	}
	if summary.Succeeded+summary.Failed != len(summary.Results) {
		t.Fatalf("counters disagree with results: %+v", summary)
	}
	if strings.Contains(out.String(), "Summary:") {
		t.Fatalf("expected no final tally for an interrupted run, got:\n%s", out.String())
	}
}

// cancelOnWrite cancels a run as soon as the report mentions marker.
type cancelOnWrite struct {
	buf    bytes.Buffer
	marker string
	cancel context.CancelFunc
}

func (w *cancelOnWrite) Write(p []byte) (int, error) {
	n, err := w.buf.Write(p)
	if strings.Contains(w.buf.String(), w.marker) {
		w.cancel()
	}
	return n, err
}

func TestRunCancellationDuringLoadIsNotADocumentFailure(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"a.md": "# A\n",
		"b.md": "# B\n",
		"c.md": "# C\n",
	})
	ctx, cancel := context.WithCancel(context.Background())
	out := &cancelOnWrite{marker: "Processing: b.md", cancel: cancel}

	summary, err := NewService(Config{SourceDir: dir}, WithReporter(NewReporter(out))).
		Run(ctx, interfaces.RunOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !summary.Interrupted || summary.Failed != 0 || summary.Succeeded != 1 {
		t.Fatalf("expected b.md to be left unprocessed rather than failed, got %+v", summary)
	}
	if len(summary.Results) != 1 || summary.Results[0].Path != "a.md" || summary.Pending() != 2 {
		t.Fatalf("unexpected results %+v", summary.Results)
	}
	if strings.Contains(out.buf.String(), "ERROR:") {
		t.Fatalf("expected no error line, got:\n%s", out.buf.String())
	}
}

func TestRunCompletedSummaryIsConsistent(t *testing.T) {
	dir := writeDocs(t, map[string]string{"a.md": "# A\n", "b.md": "x"})

	summary, err := NewService(Config{SourceDir: dir}).Run(context.Background(), interfaces.RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Interrupted || summary.Pending() != 0 {
		t.Fatalf("expected a completed run, got %+v", summary)
	}
	if summary.Succeeded+summary.Failed != summary.Total || summary.Total != len(summary.Results) {
		t.Fatalf("counters disagree: %+v", summary)
	}
}

func TestReporterMatchesScriptLayout(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out)
	r.Processing("bad.md")
	r.Finished(interfaces.DocumentResult{Path: "bad.md", Status: interfaces.DocumentFailed, Err: errors.New("boom")})
	r.Processing("good.md")
	r.Loaded(&interfaces.Document{Title: "Good", Content: []byte("# Good")})
	r.Finished(interfaces.DocumentResult{Path: "good.md", Status: interfaces.DocumentSucceeded})
	r.Summary(&interfaces.RunSummary{Total: 2, Succeeded: 1, Failed: 1})

	want := "Processing: bad.md\n" +
		"  ERROR: boom\n" +
		"Processing: good.md\n" +
		"  Title: Good\n" +
		"  Size: 6 bytes\n" +
		"\n" +
		"\n" +
		"Summary:\n" +
		"  Success: 1\n" +
		"  Failed: 1\n" +
		"  Total: 2\n"
	if out.String() != want {
		t.Fatalf("unexpected report\nwant:\n%q\ngot:\n%q", want, out.String())
	}
}

func TestRunUsesClockForTimestamps(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ticks := 0
	clock := func() time.Time {
		ticks++
		return start.Add(time.Duration(ticks) * time.Second)
	}

	summary, err := NewService(Config{SourceDir: t.TempDir()}, WithClock(clock)).Run(context.Background(), interfaces.RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !summary.FinishedAt.After(summary.StartedAt) {
		t.Fatalf("expected FinishedAt after StartedAt, got %s / %s", summary.StartedAt, summary.FinishedAt)
	}
}

func writeDocs(tb testing.TB, files map[string]string) string {
	tb.Helper()
	dir := tb.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			tb.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

type recordingCreator struct {
	titles   []string
	spaces   []string
	bodies   [][]byte
	failOn   string
	onCreate func()
}

func (r *recordingCreator) CreateObject(_ context.Context, spaceID, title string, body []byte) error {
	r.titles = append(r.titles, title)
	r.spaces = append(r.spaces, spaceID)
	r.bodies = append(r.bodies, body)
	if r.onCreate != nil {
		r.onCreate()
	}
	if r.failOn != "" && title == r.failOn {
		return errors.New("remote rejected object")
	}
	return nil
}

// unreadableFS lists entries but refuses to open any file.
type unreadableFS struct {
	fstest.MapFS
}

func (u unreadableFS) Open(name string) (fs.File, error) {
	if name == "." {
		return u.MapFS.Open(name)
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
}

func (u unreadableFS) ReadFile(name string) ([]byte, error) {
	return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrPermission}
}
