package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-docmigrate/internal/logging"
	"github.com/goliatone/go-docmigrate/internal/markdown"
	"github.com/goliatone/go-docmigrate/pkg/interfaces"
)

// Config holds the defaults for every run. RunOptions may override them per
// call.
type Config struct {
	SourceDir string
	SpaceID   string
	Pattern   string
	Recursive bool
	// CreateObjects hands each loaded document to the ObjectCreator. When off,
	// a document succeeds once its title and size are known.
	CreateObjects bool
}

// Service walks a source directory and reports every Markdown document in it.
type Service struct {
	cfg        Config
	creator    interfaces.ObjectCreator
	reporter   *Reporter
	logger     interfaces.Logger
	filesystem func(dir string) fs.FS
	clock      func() time.Time
	newRunID   func() uuid.UUID
}

var _ interfaces.MigrationService = (*Service)(nil)

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithObjectCreator sets the collaborator used when CreateObjects is enabled.
func WithObjectCreator(creator interfaces.ObjectCreator) ServiceOption {
	return func(s *Service) {
		s.creator = creator
	}
}

// WithReporter sets the progress reporter. Defaults to a discarding reporter.
func WithReporter(reporter *Reporter) ServiceOption {
	return func(s *Service) {
		if reporter != nil {
			s.reporter = reporter
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFilesystem replaces os.DirFS as the way a source directory is opened.
func WithFilesystem(open func(dir string) fs.FS) ServiceOption {
	return func(s *Service) {
		if open != nil {
			s.filesystem = open
		}
	}
}

// WithClock overrides time.Now for run timestamps.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService builds a Service from cfg.
func NewService(cfg Config, opts ...ServiceOption) *Service {
	s := &Service{
		cfg:        cfg,
		reporter:   NewReporter(nil),
		logger:     logging.NoOp(),
		filesystem: os.DirFS,
		clock:      time.Now,
		newRunID:   uuid.New,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Run processes every matching document under the source directory in sorted
// order. Documents that fail are recorded and the loop moves on; the returned
// error only reports problems with the run itself. On cancellation the partial
// summary, marked Interrupted, is returned along with the context error; the
// document in flight is neither counted nor reported as failed.
func (s *Service) Run(ctx context.Context, opts interfaces.RunOptions) (*interfaces.RunSummary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := s.resolve(opts)
	if cfg.CreateObjects {
		if s.creator == nil {
			return nil, ErrCreatorRequired
		}
		if strings.TrimSpace(cfg.SpaceID) == "" {
			return nil, ErrSpaceIDRequired
		}
	}

	summary := &interfaces.RunSummary{
		RunID:     s.newRunID(),
		SourceDir: cfg.SourceDir,
		SpaceID:   cfg.SpaceID,
		StartedAt: s.clock(),
	}
	logger := logging.WithRunContext(s.logger.WithContext(ctx), summary.RunID.String(), cfg.SpaceID)

	fsys := s.filesystem(cfg.SourceDir)
	collector := markdown.NewCollector(fsys, markdown.CollectorConfig{
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
		Logger:    logger,
	})
	paths, err := collector.Collect(ctx, ".")
	if err != nil {
		return nil, fmt.Errorf("migration: collect %s: %w", cfg.SourceDir, err)
	}

	summary.Total = len(paths)
	summary.Results = make([]interfaces.DocumentResult, 0, len(paths))
	logger.Info("migration.run.started", "source_dir", cfg.SourceDir, "documents", summary.Total, "create_objects", cfg.CreateObjects)
	s.reporter.Start(summary.Total, cfg.SpaceID)

	loader := markdown.NewLoader(fsys, logger)
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return s.interrupt(summary, logger, err)
		}

		s.reporter.Processing(p)
		result, err := s.process(ctx, loader, cfg, p)
		if err != nil {
			return s.interrupt(summary, logger, err)
		}
		record(summary, result)
		s.reporter.Finished(result)

		docLogger := logging.WithDocument(logger, p)
		if result.Succeeded() {
			docLogger.Debug("migration.document.completed", "title", result.Document.Title, "size_bytes", result.Document.Size())
		} else {
			docLogger.Warn("migration.document.failed", "error", result.Err)
		}
	}

	summary.FinishedAt = s.clock()
	s.reporter.Summary(summary)
	logger.Info("migration.run.completed",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"duration", summary.FinishedAt.Sub(summary.StartedAt),
	)
	return summary, nil
}

// process handles one document. A non-nil error means the run was
// interrupted while the document was in flight; it is not a document failure.
func (s *Service) process(ctx context.Context, loader *markdown.Loader, cfg Config, p string) (interfaces.DocumentResult, error) {
	doc, err := loader.Load(ctx, p)
	if err != nil {
		if interrupted(ctx, err) {
			return interfaces.DocumentResult{}, ctx.Err()
		}
		return failed(p, wrapLoadError(err)), nil
	}

	s.reporter.Loaded(doc)

	if cfg.CreateObjects {
		if err := s.creator.CreateObject(ctx, cfg.SpaceID, doc.Title, doc.Content); err != nil {
			if interrupted(ctx, err) {
				return interfaces.DocumentResult{}, ctx.Err()
			}
			return failed(p, wrapCreateError(err)), nil
		}
	}

	return interfaces.DocumentResult{
		Path:     p,
		Status:   interfaces.DocumentSucceeded,
		Document: doc,
	}, nil
}

// interrupt closes an unfinished run. Documents not yet recorded stay out of
// Results and the counters; Pending reports them.
func (s *Service) interrupt(summary *interfaces.RunSummary, logger interfaces.Logger, err error) (*interfaces.RunSummary, error) {
	summary.Interrupted = true
	summary.FinishedAt = s.clock()
	logger.Warn("migration.run.interrupted",
		"processed", len(summary.Results),
		"pending", summary.Pending(),
		"error", err,
	)
	return summary, err
}

func interrupted(ctx context.Context, err error) bool {
	return ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}

func (s *Service) resolve(opts interfaces.RunOptions) Config {
	cfg := s.cfg
	if dir := strings.TrimSpace(opts.SourceDir); dir != "" {
		cfg.SourceDir = dir
	}
	if space := strings.TrimSpace(opts.SpaceID); space != "" {
		cfg.SpaceID = space
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Pattern = pattern
	}
	if opts.Recursive != nil {
		cfg.Recursive = *opts.Recursive
	}
	if opts.CreateObjects != nil {
		cfg.CreateObjects = *opts.CreateObjects
	}
	if strings.TrimSpace(cfg.SourceDir) == "" {
		cfg.SourceDir = "."
	}
	return cfg
}

func failed(p string, err error) interfaces.DocumentResult {
	return interfaces.DocumentResult{
		Path:   p,
		Status: interfaces.DocumentFailed,
		Err:    err,
	}
}

func record(summary *interfaces.RunSummary, result interfaces.DocumentResult) {
	summary.Results = append(summary.Results, result)
	if result.Succeeded() {
		summary.Succeeded++
		return
	}
	summary.Failed++
}
