package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/goliatone/go-docmigrate/internal/logging"
	"github.com/goliatone/go-docmigrate/pkg/interfaces"
)

// DefaultPattern matches Markdown files by extension.
const DefaultPattern = "*.md"

// ErrPatternInvalid reports a malformed glob pattern.
var ErrPatternInvalid = errors.New("markdown collector: invalid pattern")

// CollectorConfig configures file discovery.
type CollectorConfig struct {
	// Pattern is matched against the base name, or against the full relative
	// path when it contains a slash. Defaults to DefaultPattern.
	Pattern string
	// Recursive walks sub-directories. The default only lists dir itself.
	Recursive bool
	Logger    interfaces.Logger
}

// Collector lists the Markdown files of a directory in a stable order.
type Collector struct {
	fs        fs.FS
	pattern   string
	recursive bool
	logger    interfaces.Logger
}

// NewCollector builds a collector over filesystem.
func NewCollector(filesystem fs.FS, cfg CollectorConfig) *Collector {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = DefaultPattern
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Collector{
		fs:        filesystem,
		pattern:   path.Clean(pattern),
		recursive: cfg.Recursive,
		logger:    logger,
	}
}

// ValidatePattern reports ErrPatternInvalid when pattern is not a valid glob.
func ValidatePattern(pattern string) error {
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("%w %q: %v", ErrPatternInvalid, pattern, err)
	}
	return nil
}

// Collect returns the slash separated paths under dir that match the pattern,
// sorted ascending. A directory that does not exist yields no paths and no
// error.
func (c *Collector) Collect(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidatePattern(c.pattern); err != nil {
		return nil, err
	}

	root := path.Clean(strings.TrimSpace(dir))
	if root == "" || root == "/" {
		root = "."
	}

	var paths []string
	err := fs.WalkDir(c.fs, root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && !c.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if c.matches(p) {
			paths = append(paths, p)
		}
		return nil
	})

	switch {
	case errors.Is(err, fs.ErrNotExist) && len(paths) == 0:
		c.logger.Warn("markdown.collect.directory_missing", "directory", root)
		return []string{}, nil
	case err != nil:
		return nil, fmt.Errorf("markdown collector walk %s: %w", root, err)
	}

	slices.Sort(paths)
	c.logger.Debug("markdown.collect.completed", "directory", root, "count", len(paths))
	if paths == nil {
		paths = []string{}
	}
	return paths, nil
}

func (c *Collector) matches(p string) bool {
	target := path.Base(p)
	if strings.Contains(c.pattern, "/") {
		target = p
	}
	ok, err := path.Match(c.pattern, target)
	return err == nil && ok
}
