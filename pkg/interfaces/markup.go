package interfaces

import (
	"fmt"
	"io"
	"strings"
)

// MarkupLanguage identifies the markup dialect of generated documents and of
// imported content fragments.
type MarkupLanguage string

const (
	// MarkupAsciiDoc is the default dialect of the generator and of most
	// externally authored fragments.
	MarkupAsciiDoc MarkupLanguage = "asciidoc"
	// MarkupMarkdown covers GitHub-flavoured Markdown fragments.
	MarkupMarkdown MarkupLanguage = "markdown"
	// MarkupConfluence covers Confluence wiki markup fragments, which the
	// generator writes out with a txt extension.
	MarkupConfluence MarkupLanguage = "confluence"
)

// ParseMarkupLanguage maps a configuration value onto a MarkupLanguage.
// Both the canonical names and the common filename extensions are accepted.
func ParseMarkupLanguage(value string) (MarkupLanguage, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "asciidoc", "adoc":
		return MarkupAsciiDoc, nil
	case "markdown", "md":
		return MarkupMarkdown, nil
	case "confluence", "confluence_markup":
		return MarkupConfluence, nil
	default:
		return "", fmt.Errorf("unsupported markup language %q", value)
	}
}

// FileNameExtensions lists the filename extensions (without leading dot)
// recognised for content files written in the language.
func (l MarkupLanguage) FileNameExtensions() []string {
	switch l {
	case MarkupMarkdown:
		return []string{"md", "markdown"}
	case MarkupConfluence:
		return []string{"txt"}
	default:
		return []string{"adoc", "asciidoc"}
	}
}

// DefaultFileExtension returns the canonical filename extension for the
// language, without leading dot.
func (l MarkupLanguage) DefaultFileExtension() string {
	return l.FileNameExtensions()[0]
}

// DocBuilder is the markup document builder contract the extensions drive.
// The host generator supplies its own implementation; internal/markup ships a
// default one for hosts and tests.
type DocBuilder interface {
	// SectionTitleLevel appends a section title at the given level, where
	// level 1 is the first sub-section below the document title.
	SectionTitleLevel(level int, title string)
	// ListingBlock appends a source listing in the given language. An empty
	// language produces a plain listing.
	ListingBlock(content string, language string)
	// ImportMarkup appends an externally authored fragment written in lang,
	// shifting its headings down by levelOffset.
	ImportMarkup(r io.Reader, lang MarkupLanguage, levelOffset int) error
	// AddFileExtension appends the builder's filename extension to name.
	AddFileExtension(name string) string
}
