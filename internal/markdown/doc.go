// Package markdown discovers Markdown files in a directory and turns each one
// into an interfaces.Document: raw content, a resolved title, and the metadata
// reported for it (size, slug, checksum, frontmatter).
//
// Title resolution is line based. The first line that starts with
// the exact heading marker "# " supplies the title; "## " and "#title" never
// match. Without such a line the title is derived from the file name.
package markdown
