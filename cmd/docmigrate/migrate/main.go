package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-docmigrate/cmd/docmigrate/internal/bootstrap"
	migrationcmd "github.com/goliatone/go-docmigrate/internal/commands/migration"
	"github.com/goliatone/go-docmigrate/internal/runtimeconfig"
	"github.com/goliatone/go-docmigrate/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runMigrate(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("docmigrate: %v", err)
	}
}

// runMigrate exits cleanly even when individual documents fail; only
// configuration and bootstrap problems are returned.
func runMigrate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("docmigrate-migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "Path to a YAML configuration file")
	sourceDir := fs.String("source-dir", runtimeconfig.DefaultSourceDir, "Directory holding the Markdown documents")
	spaceID := fs.String("space-id", runtimeconfig.DefaultSpaceID, "Identifier of the target space")
	pattern := fs.String("pattern", runtimeconfig.DefaultPattern, "Glob pattern matched against file names")
	recursive := fs.Bool("recursive", false, "Descend into subdirectories")
	create := fs.Bool("create", false, "Hand every document to the object creator")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "go-logger output format (json, console, pretty)")
	logProvider := fs.String("log-provider", "console", "Logger provider (console, gologger)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	module, err := moduleBuilder(bootstrap.Options{
		ConfigFile:   *configFile,
		ReportWriter: stdout,
		LogWriter:    stderr,
		Overrides: func(cfg *runtimeconfig.Config) {
			if set["source-dir"] {
				cfg.SourceDir = *sourceDir
			}
			if set["space-id"] {
				cfg.SpaceID = *spaceID
			}
			if set["pattern"] {
				cfg.Pattern = *pattern
			}
			if set["recursive"] {
				cfg.Recursive = *recursive
			}
			if set["create"] {
				cfg.CreateObjects = *create
			}
			if set["log-level"] {
				cfg.Logging.Level = *logLevel
			}
			if set["log-format"] {
				cfg.Logging.Format = *logFormat
			}
			if set["log-provider"] {
				cfg.Logging.Provider = *logProvider
			}
		},
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Container == nil {
		return fmt.Errorf("migration service not configured")
	}

	cfg := module.Config
	var summary *interfaces.RunSummary
	handler := module.Container.MigrateDirectoryHandler(func(s *interfaces.RunSummary) { summary = s })
	err = handler.Execute(ctx, migrationcmd.MigrateDirectoryCommand{
		Directory:     cfg.SourceDir,
		SpaceID:       cfg.SpaceID,
		Pattern:       cfg.Pattern,
		Recursive:     cfg.Recursive,
		CreateObjects: cfg.CreateObjects,
	})
	if err != nil {
		return fmt.Errorf("execute migrate command: %w", err)
	}

	if summary != nil && summary.Failed > 0 {
		module.Logger.Warn("migration.completed_with_failures", "failed", summary.Failed, "total", summary.Total)
	}
	return nil
}
