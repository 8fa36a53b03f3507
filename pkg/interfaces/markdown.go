package interfaces

import (
	"time"
)

// TitleSource records where a document title came from.
type TitleSource string

const (
	// TitleFromHeading marks titles taken from the first "# " heading line.
	TitleFromHeading TitleSource = "heading"
	// TitleFromFilename marks titles derived from the file name.
	TitleFromFilename TitleSource = "filename"
)

// Document is a single Markdown file read from the source directory. Documents
// are built once by the loader and never mutated afterwards.
type Document struct {
	// FilePath is slash separated and relative to the source directory.
	FilePath string
	// Filename is the base name of FilePath.
	Filename string
	// Content holds the raw bytes; they are guaranteed to be valid UTF-8.
	Content     []byte
	Title       string
	TitleSource TitleSource
	// Slug is the normalised form of Title. It is informational and never
	// replaces the title.
	Slug        string
	FrontMatter FrontMatter
	// Checksum is the SHA-256 digest of Content.
	Checksum     []byte
	LastModified time.Time
}

// Size reports the content length in bytes.
func (d *Document) Size() int {
	if d == nil {
		return 0
	}
	return len(d.Content)
}

// FrontMatter is the optional YAML header of a document. Only a handful of keys
// are typed; everything else lands in Custom.
type FrontMatter struct {
	Title   string         `yaml:"title" json:"title"`
	Tags    []string       `yaml:"tags" json:"tags"`
	Author  string         `yaml:"author" json:"author"`
	Date    time.Time      `yaml:"date" json:"date"`
	Custom  map[string]any `yaml:",inline" json:"custom"`
	Present bool           `yaml:"-" json:"present"`
}

// RenderOptions customises HTML rendering for previews.
type RenderOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// MarkdownRenderer converts Markdown into HTML.
type MarkdownRenderer interface {
	Render(markdown []byte, opts RenderOptions) ([]byte, error)
}
