// Package parser extracts frontmatter and embed references from Markdown notes.
package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	wikilinkRe = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	embedRe    = regexp.MustCompile(`^!?\[\[([^\]]+)\]\]$`)
	imageRefRe = regexp.MustCompile(`(?i)\.(png|jpe?g|webp|gif|svg|avif)$`)
)

// Split separates YAML frontmatter (between leading --- delimiters) from the
// Markdown body. If no frontmatter block is found the entire content is body
// and the returned frontmatter is nil.
func Split(data []byte) (frontmatter []byte, body string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter, treat everything as body.
		return nil, string(data)
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	return yamlBlock, strings.TrimLeft(string(afterDelim), "\n\r")
}

// Frontmatter decodes the note's frontmatter block into a typed record.
// Notes without a frontmatter block decode to the zero value. Malformed YAML
// is an error; callers treat it as a per-file failure.
func Frontmatter[T any](data []byte) (T, error) {
	var out T
	fm, _ := Split(data)
	if fm == nil {
		return out, nil
	}
	if err := yaml.Unmarshal(fm, &out); err != nil {
		return out, fmt.Errorf("parser: frontmatter: %w", err)
	}
	return out, nil
}

// Title returns the explicit frontmatter title when non-empty, otherwise the
// file name without its .md extension.
func Title(explicit, fileName string) string {
	if explicit != "" {
		return explicit
	}
	return strings.TrimSuffix(fileName, ".md")
}

// FirstWikiLink returns the inner text of the first [[...]] occurrence in
// text, verbatim (no alias or heading stripping). Empty string if none.
func FirstWikiLink(text string) string {
	m := wikilinkRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// UnwrapEmbed unwraps an Obsidian embed reference ("![[name|alias#heading]]"
// or "[[name]]") to its bare target name, stripping alias and heading
// fragments. Values that are not exactly a bracketed reference return "".
func UnwrapEmbed(value string) string {
	m := embedRe.FindStringSubmatch(value)
	if m == nil {
		return ""
	}
	target := m[1]
	if i := strings.Index(target, "|"); i >= 0 {
		target = target[:i]
	}
	if i := strings.Index(target, "#"); i >= 0 {
		target = target[:i]
	}
	return strings.TrimSpace(target)
}

// LooksLikeImageRef reports whether value ends in a known image extension.
// Strings that do not (bare URLs, labels) are passed through untouched by
// the asset pipeline.
func LooksLikeImageRef(value string) bool {
	return imageRefRe.MatchString(strings.TrimSpace(value))
}
