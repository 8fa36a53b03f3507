package markdown

import (
	"bytes"
	"fmt"
	"maps"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-docmigrate/pkg/interfaces"
)

type frontMatterEnvelope struct {
	Title  string         `yaml:"title"`
	Tags   []string       `yaml:"tags"`
	Author string         `yaml:"author"`
	Date   time.Time      `yaml:"date"`
	Custom map[string]any `yaml:",inline"`
}

// ParseFrontMatter reads an optional YAML/TOML/JSON header from source. A
// document without a header yields a zero FrontMatter with Present unset.
// The frontmatter never changes the resolved title.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, error) {
	fm, _, err := SplitFrontMatter(source)
	return fm, err
}

// SplitFrontMatter is ParseFrontMatter that also returns the body following
// the header. Without a header the body is source itself.
func SplitFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var env frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &env)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	fm := interfaces.FrontMatter{
		Title:   env.Title,
		Tags:    append([]string(nil), env.Tags...),
		Author:  env.Author,
		Date:    env.Date,
		Custom:  maps.Clone(env.Custom),
		Present: len(body) != len(source),
	}
	if fm.Custom == nil {
		fm.Custom = map[string]any{}
	}
	return fm, body, nil
}
