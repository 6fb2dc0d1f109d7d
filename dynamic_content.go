package extensions

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Swagger2Markup/swagger2markup-extensions/internal/logging"
	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

// DynamicContentExtension scans content directories for markup fragments
// whose filename starts with a position-derived prefix and imports them into
// the document builder in lexicographic filename order.
type DynamicContentExtension struct {
	global  *interfaces.GlobalContext
	builder interfaces.DocBuilder
	content *ContentExtension
	logger  interfaces.Logger
}

// NewDynamicContentExtension builds the scanner for one Apply invocation.
func NewDynamicContentExtension(global *interfaces.GlobalContext, builder interfaces.DocBuilder) *DynamicContentExtension {
	var provider interfaces.LoggerProvider
	if global != nil {
		provider = global.Logger
	}
	return &DynamicContentExtension{
		global:  global,
		builder: builder,
		content: NewContentExtension(global),
		logger:  logging.DynamicLogger(provider),
	}
}

// Section imports every matching fragment from the given directories. A
// fragment matches when its name starts with prefix and its extension
// belongs to the generator's output markup language. Files are imported in
// lexicographic name order per directory; unreadable directories are skipped
// with a debug log, since per-element directories routinely do not exist.
func (e *DynamicContentExtension) Section(lang interfaces.MarkupLanguage, contentPaths []string, prefix string, levelOffset int) {
	extensions := e.global.MarkupLanguage.FileNameExtensions()

	for _, dir := range contentPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			logging.WithContentContext(e.logger, dir, prefix, "").
				Debug("failed to read extension files from directory", "error", err)
			continue
		}

		var names []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if matchesPrefix(entry.Name(), prefix, extensions) {
				names = append(names, entry.Name())
			}
		}
		slices.Sort(names)

		for _, name := range names {
			path := filepath.Join(dir, name)
			e.content.ImportContentPath(path, func(r io.Reader) {
				if err := e.builder.ImportMarkup(r, lang, levelOffset); err != nil {
					e.logger.Warn("failed to import extension content", "path", path, "error", err)
				}
			})
		}
	}
}

// matchesPrefix reports whether a filename carries the position prefix and
// one of the accepted markup extensions.
func matchesPrefix(name, prefix string, extensions []string) bool {
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	for _, accepted := range extensions {
		if strings.EqualFold(ext, accepted) {
			return true
		}
	}
	return false
}
