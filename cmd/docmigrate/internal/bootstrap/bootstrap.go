package bootstrap

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-docmigrate/internal/di"
	"github.com/goliatone/go-docmigrate/internal/logging"
	"github.com/goliatone/go-docmigrate/internal/runtimeconfig"
	"github.com/goliatone/go-docmigrate/pkg/interfaces"
)

// Options captures how a CLI wants the module built. Values are layered:
// defaults, then ConfigFile, then Overrides.
type Options struct {
	ConfigFile     string
	Overrides      func(*runtimeconfig.Config)
	ReportWriter   io.Writer
	LogWriter      io.Writer
	LoggerProvider interfaces.LoggerProvider
}

// Module bundles the container and a CLI-scoped logger.
type Module struct {
	Container *di.Container
	Config    runtimeconfig.Config
	Logger    interfaces.Logger
}

// BuildModule resolves configuration and constructs the container.
func BuildModule(opts Options) (*Module, error) {
	cfg := runtimeconfig.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigFile); path != "" {
		loaded, err := runtimeconfig.LoadFile(path, cfg)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.Overrides != nil {
		opts.Overrides(&cfg)
	}

	diOpts := []di.Option{}
	if opts.ReportWriter != nil {
		diOpts = append(diOpts, di.WithReportWriter(opts.ReportWriter))
	}
	if opts.LogWriter != nil {
		diOpts = append(diOpts, di.WithLogWriter(opts.LogWriter))
	}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	container, err := di.NewContainer(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise docmigrate module: %w", err)
	}

	return &Module{
		Container: container,
		Config:    cfg,
		Logger:    logging.ModuleLogger(container.LoggerProvider(), "docmigrate.cli"),
	}, nil
}
