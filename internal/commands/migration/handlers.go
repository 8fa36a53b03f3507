package migrationcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-docmigrate/internal/commands"
	"github.com/goliatone/go-docmigrate/internal/logging"
	"github.com/goliatone/go-docmigrate/pkg/interfaces"
)

const migrateOperation = "migration.migrate_directory"

// ErrServiceRequired is returned when the handler has no migration service.
var ErrServiceRequired = errors.New("migration command: service is required")

var _ command.Commander[MigrateDirectoryCommand] = (*MigrateDirectoryHandler)(nil)

// MigrateDirectoryHandler runs MigrateDirectoryCommand through the shared
// command handler.
type MigrateDirectoryHandler struct {
	inner *commands.Handler[MigrateDirectoryCommand]
}

// NewMigrateDirectoryHandler binds the handler to service. onSummary, when
// non-nil, receives the summary of every run, interrupted runs included. The
// handler applies no timeout of its own.
func NewMigrateDirectoryHandler(service interfaces.MigrationService, logger interfaces.Logger, onSummary func(*interfaces.RunSummary), opts ...commands.HandlerOption[MigrateDirectoryCommand]) *MigrateDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg MigrateDirectoryCommand) error {
		if service == nil {
			return ErrServiceRequired
		}

		recursive := msg.Recursive
		create := msg.CreateObjects
		summary, err := service.Run(ctx, interfaces.RunOptions{
			SourceDir:     msg.Directory,
			SpaceID:       msg.SpaceID,
			Pattern:       msg.Pattern,
			Recursive:     &recursive,
			CreateObjects: &create,
		})
		if summary != nil {
			logging.WithFields(baseLogger, map[string]any{
				"run_id":    summary.RunID.String(),
				"total":     summary.Total,
				"succeeded": summary.Succeeded,
				"failed":    summary.Failed,
			}).Info("migration.command.migrate_directory.completed")
			if onSummary != nil {
				onSummary(summary)
			}
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[MigrateDirectoryCommand]{
		commands.WithLogger[MigrateDirectoryCommand](baseLogger),
		// a run lasts as long as the directory takes; only the caller's ctx stops it
		commands.WithTimeout[MigrateDirectoryCommand](0),
		commands.WithOperation[MigrateDirectoryCommand](migrateOperation),
		commands.WithMessageFields(func(msg MigrateDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.SpaceID != "" {
				fields["space_id"] = msg.SpaceID
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Recursive {
				fields["recursive"] = true
			}
			if msg.CreateObjects {
				fields["create_objects"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[MigrateDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MigrateDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[MigrateDirectoryCommand].
func (h *MigrateDirectoryHandler) Execute(ctx context.Context, msg MigrateDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
