package extensions

import (
	"fmt"

	"github.com/Swagger2Markup/swagger2markup-extensions/internal/logging"
	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

const defaultOverviewExtensionID = "dynamicOverview"

// DynamicOverviewDocumentExtension appends externally stored markup around
// the Overview document:
//   - document-before-*.<ext> imports before the document (level offset 0)
//   - document-begin-*.<ext>  imports just after the main title (offset 1)
//   - document-end-*.<ext>    imports at the end of the document (offset 1)
//
// Files are appended in the lexicographic order of their names per category.
type DynamicOverviewDocumentExtension struct {
	extensionID    string
	contentPath    string
	markupLanguage interfaces.MarkupLanguage

	global *interfaces.GlobalContext
	logger interfaces.Logger
}

var _ interfaces.DocumentExtension = (*DynamicOverviewDocumentExtension)(nil)

// NewDynamicOverviewDocumentExtension creates the extension with the default
// extension id. An empty contentPath defers to configuration or to the spec
// location fallback at Init time.
func NewDynamicOverviewDocumentExtension(contentPath string, lang interfaces.MarkupLanguage) *DynamicOverviewDocumentExtension {
	return NewDynamicOverviewDocumentExtensionWithID(defaultOverviewExtensionID, contentPath, lang)
}

// NewDynamicOverviewDocumentExtensionWithID creates the extension under a
// custom extension id, which selects its property namespace.
func NewDynamicOverviewDocumentExtensionWithID(extensionID, contentPath string, lang interfaces.MarkupLanguage) *DynamicOverviewDocumentExtension {
	if extensionID == "" {
		extensionID = defaultOverviewExtensionID
	}
	if lang == "" {
		lang = interfaces.MarkupAsciiDoc
	}
	return &DynamicOverviewDocumentExtension{
		extensionID:    extensionID,
		contentPath:    contentPath,
		markupLanguage: lang,
	}
}

// Init resolves configuration: an explicit contentPath property wins over
// the constructor value, and when neither is present the extension falls
// back to the spec's directory or disables itself with a warning.
func (e *DynamicOverviewDocumentExtension) Init(global *interfaces.GlobalContext) error {
	e.global = global
	e.logger = logging.ModuleLogger(loggerProviderOf(global), "swagger2markup.dynamic.overview")

	if path, ok := propertyString(global, e.extensionID, "contentPath"); ok {
		e.contentPath = path
	} else if e.contentPath == "" {
		if dir, ok := specParentDir(global); ok {
			e.contentPath = dir
		} else {
			e.logger.Warn("disabling dynamic overview extension: content path not configured and not derivable from spec location")
		}
	}

	if lang, ok := propertyMarkupLanguage(global, e.extensionID, "markupLanguage"); ok {
		e.markupLanguage = lang
	}
	return nil
}

// Apply imports the matching fragments for an Overview document position.
func (e *DynamicOverviewDocumentExtension) Apply(ctx *interfaces.Context) error {
	if ctx == nil {
		return fmt.Errorf("dynamic overview: nil context")
	}
	if e.global == nil {
		return fmt.Errorf("dynamic overview: extension not initialised")
	}
	if e.contentPath == "" {
		return nil
	}
	if !ctx.Position.IsDocument() {
		return fmt.Errorf("dynamic overview: unexpected position %q", ctx.Position)
	}

	dynamic := NewDynamicContentExtension(e.global, ctx.Builder)
	dynamic.Section(e.markupLanguage, []string{e.contentPath}, ctx.Position.Prefix(), ctx.Position.LevelOffset())
	return nil
}
