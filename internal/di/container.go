package di

import (
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-docmigrate/internal/adapters/noop"
	"github.com/goliatone/go-docmigrate/internal/commands"
	migrationcmd "github.com/goliatone/go-docmigrate/internal/commands/migration"
	"github.com/goliatone/go-docmigrate/internal/logging"
	"github.com/goliatone/go-docmigrate/internal/logging/console"
	"github.com/goliatone/go-docmigrate/internal/logging/gologger"
	"github.com/goliatone/go-docmigrate/internal/markdown"
	"github.com/goliatone/go-docmigrate/internal/migration"
	"github.com/goliatone/go-docmigrate/internal/runtimeconfig"
	"github.com/goliatone/go-docmigrate/pkg/interfaces"
)

// Container wires the migration service and its collaborators from a
// runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	creator        interfaces.ObjectCreator
	reportWriter   io.Writer
	logWriter      io.Writer

	migrationSvc *migration.Service
	renderer     *markdown.GoldmarkRenderer
}

// Option customises the container.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithObjectCreator overrides the stub creator.
func WithObjectCreator(creator interfaces.ObjectCreator) Option {
	return func(c *Container) {
		c.creator = creator
	}
}

// WithReportWriter sets where the human-readable report goes. Defaults to
// stdout.
func WithReportWriter(out io.Writer) Option {
	return func(c *Container) {
		c.reportWriter = out
	}
}

// WithLogWriter sets where the console provider writes. Defaults to stderr.
func WithLogWriter(out io.Writer) Option {
	return func(c *Container) {
		c.logWriter = out
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:       cfg,
		reportWriter: os.Stdout,
		logWriter:    os.Stderr,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.loggerProvider == nil {
		provider, err := newLoggerProvider(cfg.Logging, c.logWriter)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}
	if c.creator == nil {
		c.creator = noop.NewObjectCreator(c.reportWriter, logging.CreatorLogger(c.loggerProvider))
	}

	c.migrationSvc = migration.NewService(migration.Config{
		SourceDir:     cfg.SourceDir,
		SpaceID:       cfg.SpaceID,
		Pattern:       cfg.Pattern,
		Recursive:     cfg.Recursive,
		CreateObjects: cfg.CreateObjects,
	},
		migration.WithObjectCreator(c.creator),
		migration.WithReporter(migration.NewReporter(c.reportWriter)),
		migration.WithLogger(logging.MigrationLogger(c.loggerProvider)),
	)
	c.renderer = markdown.NewGoldmarkRenderer(interfaces.RenderOptions{})

	logging.ModuleLogger(c.loggerProvider, "").Debug("container.configured",
		"source_dir", cfg.SourceDir,
		"logging_provider", providerName(cfg.Logging.Provider),
		"create_objects", cfg.CreateObjects,
	)

	return c, nil
}

// LoggerProvider returns the active provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// MigrationService returns the configured driver loop.
func (c *Container) MigrationService() interfaces.MigrationService {
	return c.migrationSvc
}

// MigrateDirectoryHandler wraps the migration service in the command layer.
func (c *Container) MigrateDirectoryHandler(onSummary func(*interfaces.RunSummary)) *migrationcmd.MigrateDirectoryHandler {
	return migrationcmd.NewMigrateDirectoryHandler(c.migrationSvc, commands.CommandLogger(c.loggerProvider, "migration"), onSummary)
}

// DocumentLoader returns a loader rooted at dir, or at Config.SourceDir when
// dir is empty.
func (c *Container) DocumentLoader(dir string) *markdown.Loader {
	if dir == "" {
		dir = c.Config.SourceDir
	}
	return markdown.NewLoader(os.DirFS(dir), logging.MarkdownLogger(c.loggerProvider))
}

// Renderer returns the goldmark renderer used for previews.
func (c *Container) Renderer() interfaces.MarkdownRenderer {
	return c.renderer
}

func newLoggerProvider(cfg runtimeconfig.LoggingConfig, out io.Writer) (interfaces.LoggerProvider, error) {
	switch providerName(cfg.Provider) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("di: gologger provider: %w", err)
		}
		return provider, nil
	default:
		opts := console.Options{Writer: out}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	}
}

func providerName(name string) string {
	if normalized := runtimeconfig.NormalizeProvider(name); normalized != "" {
		return normalized
	}
	return "console"
}
