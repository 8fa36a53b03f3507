package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-docmigrate/cmd/docmigrate/internal/bootstrap"
	"github.com/goliatone/go-docmigrate/internal/markdown"
	"github.com/goliatone/go-docmigrate/internal/runtimeconfig"
	"github.com/goliatone/go-docmigrate/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPreview(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("docmigrate preview: %v", err)
	}
}

func runPreview(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("docmigrate-preview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sourceDir := fs.String("source-dir", runtimeconfig.DefaultSourceDir, "Directory holding the Markdown documents")
	filePath := fs.String("file", "", "Markdown file to preview, relative to the source directory")
	renderHTML := fs.Bool("render-html", false, "Render the document body into HTML")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *filePath == "" {
		return errors.New("-file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		LogWriter:    stderr,
		ReportWriter: stdout,
		Overrides: func(cfg *runtimeconfig.Config) {
			cfg.SourceDir = *sourceDir
		},
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	doc, err := module.Container.DocumentLoader(*sourceDir).Load(ctx, *filePath)
	if err != nil {
		return fmt.Errorf("load markdown document: %w", err)
	}

	fmt.Fprintf(stdout, "Path: %s\nTitle: %s\nTitle source: %s\nSlug: %s\nSize: %d bytes\nChecksum: %x\n\n",
		doc.FilePath, doc.Title, doc.TitleSource, doc.Slug, doc.Size(), doc.Checksum)

	body := doc.Content
	if doc.FrontMatter.Present {
		frontmatter, err := json.MarshalIndent(doc.FrontMatter, "", "  ")
		if err == nil {
			fmt.Fprintf(stdout, "Frontmatter:\n%s\n\n", frontmatter)
		}
		if _, rest, err := markdown.SplitFrontMatter(doc.Content); err == nil {
			body = rest
		}
	}

	if *renderHTML {
		html, err := module.Container.Renderer().Render(body, interfaces.RenderOptions{})
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		fmt.Fprintf(stdout, "Rendered HTML:\n%s\n", html)
		return nil
	}

	fmt.Fprintf(stdout, "Markdown Body:\n%s\n", body)
	return nil
}
