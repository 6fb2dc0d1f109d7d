package markup

import (
	"bytes"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

// heading is a source heading scheduled for rewriting: its line index, depth
// (1-based, document title = 1), and flattened title text.
type heading struct {
	depth int
	text  string
}

// Convert rewrites a markup fragment from one language into another while
// shifting every heading down by levelOffset. Body lines pass through
// verbatim; only heading syntax is rewritten. Markdown fragments may carry
// YAML frontmatter, which is stripped before conversion.
func Convert(src []byte, from, to interfaces.MarkupLanguage, levelOffset int) ([]byte, error) {
	if from == interfaces.MarkupMarkdown {
		src = stripFrontmatter(src)
	}

	lines := splitLines(src)

	var headings map[int]heading
	var drop map[int]bool
	switch from {
	case interfaces.MarkupMarkdown:
		headings, drop = markdownHeadings(src)
	case interfaces.MarkupConfluence:
		headings, drop = confluenceHeadings(lines)
	default:
		headings, drop = asciidocHeadings(lines)
	}

	var out bytes.Buffer
	for i, line := range lines {
		if drop[i] {
			continue
		}
		if h, ok := headings[i]; ok {
			out.WriteString(headingMarker(to, clampDepth(h.depth+levelOffset)))
			out.WriteByte(' ')
			out.WriteString(h.text)
			out.WriteByte('\n')
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}

	result := out.Bytes()
	if !bytes.HasSuffix(src, []byte("\n")) {
		result = bytes.TrimSuffix(result, []byte("\n"))
	}
	return result, nil
}

// stripFrontmatter removes a leading YAML/TOML frontmatter block. Fragments
// authored inside static-site trees routinely carry metadata that must not
// surface in the generated document.
func stripFrontmatter(src []byte) []byte {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return src
	}
	return body
}

// markdownHeadings locates ATX and setext headings through the goldmark AST
// so text inside fenced code blocks is never mistaken for a heading. It
// returns the headings keyed by line index plus the set of extra source
// lines (setext underlines, wrapped heading text) to drop on rewrite.
func markdownHeadings(src []byte) (map[int]heading, map[int]bool) {
	headings := map[int]heading{}
	drop := map[int]bool{}

	starts := lineStarts(src)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		segments := h.Lines()
		if segments.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		first := segments.At(0)
		firstLine := lineIndexOf(starts, first.Start)
		lastLine := firstLine

		parts := make([]string, 0, segments.Len())
		for i := 0; i < segments.Len(); i++ {
			seg := segments.At(i)
			parts = append(parts, strings.TrimSpace(string(src[seg.Start:seg.Stop])))
			idx := lineIndexOf(starts, seg.Start)
			if idx > lastLine {
				lastLine = idx
			}
			if i > 0 {
				drop[idx] = true
			}
		}

		title := strings.Join(parts, " ")
		if isATXLine(lineAt(src, starts, firstLine)) {
			// Trim optional closing hash run of ATX headings.
			title = strings.TrimSpace(strings.TrimRight(title, "#"))
		} else {
			// Setext: the underline sits on the line after the text.
			drop[lastLine+1] = true
		}

		headings[firstLine] = heading{depth: h.Level, text: title}
		return ast.WalkSkipChildren, nil
	})

	return headings, drop
}

var asciidocHeadingRe = regexp.MustCompile(`^(={1,6})[ \t]+(\S.*)$`)
var asciidocDelimiterRe = regexp.MustCompile("^(-{4,}|={4,}|\\.{4,}|_{4,}|\\+{4,}|`{3,})$")

// asciidocHeadings locates "=" headings with a delimiter-aware line scan so
// listing, example, and passthrough block content is left untouched.
func asciidocHeadings(lines []string) (map[int]heading, map[int]bool) {
	headings := map[int]heading{}
	delimiter := ""

	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if asciidocDelimiterRe.MatchString(trimmed) {
			switch {
			case delimiter == "":
				delimiter = trimmed
			case delimiter == trimmed:
				delimiter = ""
			}
			continue
		}
		if delimiter != "" {
			continue
		}
		if match := asciidocHeadingRe.FindStringSubmatch(trimmed); match != nil {
			headings[i] = heading{depth: len(match[1]), text: strings.TrimSpace(match[2])}
		}
	}

	return headings, map[int]bool{}
}

var confluenceHeadingRe = regexp.MustCompile(`^h([1-6])\.[ \t]+(\S.*)$`)
var confluenceBlockRe = regexp.MustCompile(`^\{(code|noformat)[^}]*\}$`)

// confluenceHeadings locates "h<n>." headings, skipping the content of
// {code} and {noformat} blocks.
func confluenceHeadings(lines []string) (map[int]heading, map[int]bool) {
	headings := map[int]heading{}
	blockTag := ""

	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if match := confluenceBlockRe.FindStringSubmatch(trimmed); match != nil {
			switch {
			case blockTag == "":
				blockTag = match[1]
			case blockTag == match[1]:
				blockTag = ""
			}
			continue
		}
		if blockTag != "" {
			continue
		}
		if match := confluenceHeadingRe.FindStringSubmatch(trimmed); match != nil {
			depth, _ := strconv.Atoi(match[1])
			headings[i] = heading{depth: depth, text: strings.TrimSpace(match[2])}
		}
	}

	return headings, map[int]bool{}
}

func splitLines(src []byte) []string {
	normalized := strings.ReplaceAll(string(src), "\r\n", "\n")
	normalized = strings.TrimSuffix(normalized, "\n")
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "\n")
}

func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func lineIndexOf(starts []int, offset int) int {
	idx := sort.SearchInts(starts, offset+1) - 1
	if idx < 0 {
		return 0
	}
	return idx
}

func lineAt(src []byte, starts []int, idx int) string {
	if idx < 0 || idx >= len(starts) {
		return ""
	}
	end := len(src)
	if idx+1 < len(starts) {
		end = starts[idx+1]
	}
	return strings.TrimSuffix(string(src[starts[idx]:end]), "\n")
}

func isATXLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " "), "#")
}
