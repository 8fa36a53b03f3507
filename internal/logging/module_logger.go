package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-docmigrate/pkg/interfaces"
)

const (
	rootModule      = "docmigrate"
	markdownModule  = "docmigrate.markdown"
	migrationModule = "docmigrate.migration"
	creatorModule   = "docmigrate.creator"
)

const (
	fieldDocumentPath = "document_path"
	fieldSpaceID      = "space_id"
	fieldRunID        = "run_id"
)

// ModuleLogger returns a logger scoped to module. A nil provider, or one that
// returns nil, yields the no-op logger. The module name is attached as the
// "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// MarkdownLogger is the namespace for collection and loading.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// MigrationLogger is the namespace for the driver loop.
func MigrationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, migrationModule)
}

// CreatorLogger is the namespace for object creators.
func CreatorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, creatorModule)
}

// WithRunContext tags logger with the run identifier and target space.
func WithRunContext(logger interfaces.Logger, runID, spaceID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(runID); trimmed != "" {
		fields[fieldRunID] = trimmed
	}
	if trimmed := strings.TrimSpace(spaceID); trimmed != "" {
		fields[fieldSpaceID] = trimmed
	}
	return WithFields(logger, fields)
}

// WithDocument tags logger with a document path.
func WithDocument(logger interfaces.Logger, path string) interfaces.Logger {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldDocumentPath: trimmed})
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
