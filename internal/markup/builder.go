// Package markup ships the default DocBuilder implementation used by hosts
// and tests: AsciiDoc and Markdown section titles, source listings, and
// level-shifted import of externally authored fragments.
package markup

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

// Builder accumulates generated markup for a single document.
type Builder struct {
	lang interfaces.MarkupLanguage
	buf  bytes.Buffer
}

var _ interfaces.DocBuilder = (*Builder)(nil)

// NewBuilder returns a builder emitting the given markup language.
func NewBuilder(lang interfaces.MarkupLanguage) *Builder {
	return &Builder{lang: lang}
}

// Language returns the builder's output language.
func (b *Builder) Language() interfaces.MarkupLanguage {
	return b.lang
}

// Markup returns everything written so far.
func (b *Builder) Markup() string {
	return b.buf.String()
}

// SectionTitleLevel appends a section title. Level 1 maps to the first
// sub-section marker of the language ("==" in AsciiDoc, "##" in Markdown).
func (b *Builder) SectionTitleLevel(level int, title string) {
	depth := clampDepth(level + 1)
	b.ensureSeparation()
	b.buf.WriteString(headingMarker(b.lang, depth))
	b.buf.WriteByte(' ')
	b.buf.WriteString(strings.TrimSpace(title))
	b.buf.WriteString("\n")
}

// ListingBlock appends a source listing in the given language.
func (b *Builder) ListingBlock(content string, language string) {
	b.ensureSeparation()
	language = strings.TrimSpace(language)
	switch b.lang {
	case interfaces.MarkupMarkdown:
		b.buf.WriteString("```" + language + "\n")
		b.buf.WriteString(content)
		b.buf.WriteString("\n```\n")
	case interfaces.MarkupConfluence:
		if language != "" {
			b.buf.WriteString("{code:language=" + language + "}\n")
		} else {
			b.buf.WriteString("{code}\n")
		}
		b.buf.WriteString(content)
		b.buf.WriteString("\n{code}\n")
	default:
		if language != "" {
			b.buf.WriteString("[source," + language + "]\n")
		} else {
			b.buf.WriteString("[source]\n")
		}
		b.buf.WriteString("----\n")
		b.buf.WriteString(content)
		b.buf.WriteString("\n----\n")
	}
}

// ImportMarkup appends a fragment written in lang, shifting its headings by
// levelOffset and converting heading syntax when lang differs from the
// builder's language.
func (b *Builder) ImportMarkup(r io.Reader, lang interfaces.MarkupLanguage, levelOffset int) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("markup import: read: %w", err)
	}
	converted, err := Convert(data, lang, b.lang, levelOffset)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(converted)) == 0 {
		return nil
	}
	b.ensureSeparation()
	b.buf.Write(converted)
	if !bytes.HasSuffix(converted, []byte("\n")) {
		b.buf.WriteByte('\n')
	}
	return nil
}

// AddFileExtension appends the builder language's filename extension.
func (b *Builder) AddFileExtension(name string) string {
	return name + "." + b.lang.DefaultFileExtension()
}

// ensureSeparation guarantees a blank line between consecutive blocks.
func (b *Builder) ensureSeparation() {
	if b.buf.Len() == 0 {
		return
	}
	for !bytes.HasSuffix(b.buf.Bytes(), []byte("\n\n")) {
		b.buf.WriteByte('\n')
	}
}

func headingMarker(lang interfaces.MarkupLanguage, depth int) string {
	switch lang {
	case interfaces.MarkupMarkdown:
		return strings.Repeat("#", depth)
	case interfaces.MarkupConfluence:
		return "h" + strconv.Itoa(depth) + "."
	default:
		return strings.Repeat("=", depth)
	}
}

func clampDepth(depth int) int {
	if depth < 1 {
		return 1
	}
	if depth > 6 {
		return 6
	}
	return depth
}
