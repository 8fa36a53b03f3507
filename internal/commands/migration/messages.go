package migrationcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-docmigrate/internal/markdown"
)

const migrateDirectoryMessageType = "docmigrate.migration.migrate_directory"

// MigrateDirectoryCommand runs one migration pass over Directory. Empty
// fields fall back to the service configuration.
type MigrateDirectoryCommand struct {
	// Directory is the source directory holding the Markdown documents.
	Directory string `json:"directory"`
	// SpaceID identifies the target space. Required when CreateObjects is set.
	SpaceID string `json:"space_id,omitempty"`
	// Pattern is the glob matched against file names, "*.md" when empty.
	Pattern string `json:"pattern,omitempty"`
	// Recursive descends into subdirectories.
	Recursive bool `json:"recursive,omitempty"`
	// CreateObjects hands every loaded document to the object creator.
	CreateObjects bool `json:"create_objects,omitempty"`
}

// Type implements command.Message.
func (MigrateDirectoryCommand) Type() string { return migrateDirectoryMessageType }

// Validate checks the directory, the pattern and, when objects are created,
// the space id.
func (cmd MigrateDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(notBlank(
			"docmigrate.migration.migrate_directory.directory_required", "directory is required",
		))),
		validation.Field(&cmd.SpaceID, validation.When(cmd.CreateObjects,
			validation.Required,
			validation.By(notBlank("docmigrate.migration.migrate_directory.space_id_required", "space id is required")),
		)),
		validation.Field(&cmd.Pattern, validation.By(func(value any) error {
			pattern, _ := value.(string)
			if strings.TrimSpace(pattern) == "" {
				return nil
			}
			if err := markdown.ValidatePattern(pattern); err != nil {
				return validation.NewError("docmigrate.migration.migrate_directory.pattern_invalid", "pattern is not a valid glob")
			}
			return nil
		})),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		text, _ := value.(string)
		if strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
