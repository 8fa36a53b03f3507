package markdown

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"unicode/utf8"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-docmigrate/internal/logging"
	"github.com/goliatone/go-docmigrate/pkg/interfaces"
)

// ErrInvalidUTF8 is the cause of a LoadError for content that does not
// decode as UTF-8.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// LoadFailure names the stage at which loading a document failed.
type LoadFailure string

const (
	FailureRead   LoadFailure = "read"
	FailureDecode LoadFailure = "decode"
)

// LoadError is returned by Loader.Load for documents that cannot be read or
// decoded.
type LoadError struct {
	Path    string
	Failure LoadFailure
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Failure, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader reads single documents from a filesystem.
type Loader struct {
	fs     fs.FS
	logger interfaces.Logger
}

// NewLoader builds a loader over filesystem. A nil logger disables logging.
func NewLoader(filesystem fs.FS, logger interfaces.Logger) *Loader {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Loader{fs: filesystem, logger: logger}
}

// Load reads the document at p and resolves its title and metadata. Read and
// decode problems are returned as *LoadError.
func (l *Loader) Load(ctx context.Context, p string) (*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fs, p)
	if err != nil {
		return nil, &LoadError{Path: p, Failure: FailureRead, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &LoadError{Path: p, Failure: FailureDecode, Err: ErrInvalidUTF8}
	}

	info, err := fs.Stat(l.fs, p)
	if err != nil {
		return nil, &LoadError{Path: p, Failure: FailureRead, Err: err}
	}

	return l.build(p, data, info), nil
}

func (l *Loader) build(p string, data []byte, info fs.FileInfo) *interfaces.Document {
	filename := path.Base(p)
	title, source := ResolveTitle(filename, string(data))
	sum := sha256.Sum256(data)

	doc := &interfaces.Document{
		FilePath:     p,
		Filename:     filename,
		Content:      data,
		Title:        title,
		TitleSource:  source,
		Checksum:     sum[:],
		LastModified: info.ModTime(),
	}

	logger := logging.WithDocument(l.logger, p)

	if normalized, err := slug.Normalize(title); err == nil {
		doc.Slug = normalized
	} else {
		logger.Debug("markdown.load.slug_failed", "title", title, "error", err)
	}

	if fm, err := ParseFrontMatter(data); err == nil {
		doc.FrontMatter = fm
	} else {
		logger.Warn("markdown.load.frontmatter_invalid", "error", err)
	}

	return doc
}
