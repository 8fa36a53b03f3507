package markdown

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-docmigrate/pkg/interfaces"
)

// HeadingMarker is the exact prefix of a top-level heading line.
const HeadingMarker = "# "

// ExtractTitle returns the trimmed text following the first line that starts
// with HeadingMarker. It reports false when no line matches. Only the first
// matching line is considered, even when its text is empty.
func ExtractTitle(content string) (string, bool) {
	for line := range strings.SplitSeq(content, "\n") {
		if strings.HasPrefix(line, HeadingMarker) {
			return strings.TrimSpace(line[len(HeadingMarker):]), true
		}
	}
	return "", false
}

// FilenameTitle derives a title from a file name: the final extension is
// dropped and every underscore becomes a space.
func FilenameTitle(filename string) string {
	base := path.Base(filepath.ToSlash(filename))
	base = strings.TrimSuffix(base, path.Ext(base))
	return strings.ReplaceAll(base, "_", " ")
}

// ResolveTitle picks the title for a document. A non-empty heading title wins;
// otherwise the file name is used.
func ResolveTitle(filename, content string) (string, interfaces.TitleSource) {
	if title, ok := ExtractTitle(content); ok && title != "" {
		return title, interfaces.TitleFromHeading
	}
	return FilenameTitle(filename), interfaces.TitleFromFilename
}
