package extensions

import (
	"fmt"
	"path/filepath"

	"github.com/Swagger2Markup/swagger2markup-extensions/internal/logging"
	"github.com/Swagger2Markup/swagger2markup-extensions/internal/uriutil"
	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

const defaultPathsExtensionID = "dynamicPaths"

// DynamicPathsDocumentExtension appends externally stored markup in the
// Paths document. Document positions read fragments from the configured
// content paths directly; every operation position (operation-before through
// operation-security-end) reads from a per-operation sub-directory named
// after the normalized operation id, resolved against each configured
// content path in turn.
type DynamicPathsDocumentExtension struct {
	extensionID    string
	contentPaths   []string
	markupLanguage interfaces.MarkupLanguage

	global *interfaces.GlobalContext
	logger interfaces.Logger
}

var _ interfaces.DocumentExtension = (*DynamicPathsDocumentExtension)(nil)

// NewDynamicPathsDocumentExtension creates the extension with the default
// extension id. Multiple content paths are searched in order.
func NewDynamicPathsDocumentExtension(contentPaths []string, lang interfaces.MarkupLanguage) *DynamicPathsDocumentExtension {
	return NewDynamicPathsDocumentExtensionWithID(defaultPathsExtensionID, contentPaths, lang)
}

// NewDynamicPathsDocumentExtensionWithID creates the extension under a
// custom extension id.
func NewDynamicPathsDocumentExtensionWithID(extensionID string, contentPaths []string, lang interfaces.MarkupLanguage) *DynamicPathsDocumentExtension {
	if extensionID == "" {
		extensionID = defaultPathsExtensionID
	}
	if lang == "" {
		lang = interfaces.MarkupAsciiDoc
	}
	return &DynamicPathsDocumentExtension{
		extensionID:    extensionID,
		contentPaths:   append([]string(nil), contentPaths...),
		markupLanguage: lang,
	}
}

// Init resolves the content path list: the contentPath property (single
// value or list) wins, then the constructor values, then the spec directory.
func (e *DynamicPathsDocumentExtension) Init(global *interfaces.GlobalContext) error {
	e.global = global
	e.logger = logging.ModuleLogger(loggerProviderOf(global), "swagger2markup.dynamic.paths")

	if paths := propertyStringList(global, e.extensionID, "contentPath"); len(paths) > 0 {
		e.contentPaths = paths
	} else if len(e.contentPaths) == 0 {
		if dir, ok := specParentDir(global); ok {
			e.contentPaths = []string{dir}
		} else {
			e.logger.Warn("disabling dynamic paths extension: content path not configured and not derivable from spec location")
		}
	}

	if lang, ok := propertyMarkupLanguage(global, e.extensionID, "markupLanguage"); ok {
		e.markupLanguage = lang
	}
	return nil
}

// Apply imports the matching fragments for a Paths document position.
// Operation positions require the context to carry the operation.
func (e *DynamicPathsDocumentExtension) Apply(ctx *interfaces.Context) error {
	if ctx == nil {
		return fmt.Errorf("dynamic paths: nil context")
	}
	if e.global == nil {
		return fmt.Errorf("dynamic paths: extension not initialised")
	}
	if len(e.contentPaths) == 0 {
		return nil
	}

	dynamic := NewDynamicContentExtension(e.global, ctx.Builder)
	switch {
	case ctx.Position.IsDocument():
		dynamic.Section(e.markupLanguage, e.contentPaths, ctx.Position.Prefix(), ctx.Position.LevelOffset())
	case ctx.Position.IsOperation():
		if ctx.Operation == nil || ctx.Operation.ID == "" {
			return fmt.Errorf("dynamic paths: missing operation at position %q", ctx.Position)
		}
		name := uriutil.NormalizeName(ctx.Operation.ID)
		resolved := make([]string, 0, len(e.contentPaths))
		for _, base := range e.contentPaths {
			resolved = append(resolved, filepath.Join(base, name))
		}
		dynamic.Section(e.markupLanguage, resolved, ctx.Position.Prefix(), ctx.Position.LevelOffset())
	default:
		return fmt.Errorf("dynamic paths: unexpected position %q", ctx.Position)
	}
	return nil
}
