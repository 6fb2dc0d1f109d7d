package extensions

import (
	"fmt"
	"path/filepath"

	"github.com/Swagger2Markup/swagger2markup-extensions/internal/logging"
	"github.com/Swagger2Markup/swagger2markup-extensions/internal/uriutil"
	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

const defaultDefinitionsExtensionID = "dynamicDefinitions"

// DynamicDefinitionsDocumentExtension appends externally stored markup in
// the Definitions document:
//   - document-before-*.<ext>   imports before the document (level offset 0)
//   - document-begin-*.<ext>    imports just after the main title (offset 1)
//   - document-end-*.<ext>      imports at the end of the document (offset 1)
//   - definition-begin-*.<ext>  imports after each definition title (offset 2)
//   - definition-end-*.<ext>    imports at the end of each definition (offset 2)
//
// Definition-scoped fragments live in a sub-directory named after the
// normalized definition name. Files are appended in the lexicographic order
// of their names per category.
type DynamicDefinitionsDocumentExtension struct {
	extensionID    string
	contentPath    string
	markupLanguage interfaces.MarkupLanguage

	global *interfaces.GlobalContext
	logger interfaces.Logger
}

var _ interfaces.DocumentExtension = (*DynamicDefinitionsDocumentExtension)(nil)

// NewDynamicDefinitionsDocumentExtension creates the extension with the
// default extension id.
func NewDynamicDefinitionsDocumentExtension(contentPath string, lang interfaces.MarkupLanguage) *DynamicDefinitionsDocumentExtension {
	return NewDynamicDefinitionsDocumentExtensionWithID(defaultDefinitionsExtensionID, contentPath, lang)
}

// NewDynamicDefinitionsDocumentExtensionWithID creates the extension under a
// custom extension id.
func NewDynamicDefinitionsDocumentExtensionWithID(extensionID, contentPath string, lang interfaces.MarkupLanguage) *DynamicDefinitionsDocumentExtension {
	if extensionID == "" {
		extensionID = defaultDefinitionsExtensionID
	}
	if lang == "" {
		lang = interfaces.MarkupAsciiDoc
	}
	return &DynamicDefinitionsDocumentExtension{
		extensionID:    extensionID,
		contentPath:    contentPath,
		markupLanguage: lang,
	}
}

// Init resolves configuration with the same precedence as the other dynamic
// extensions: property, then constructor value, then spec directory.
func (e *DynamicDefinitionsDocumentExtension) Init(global *interfaces.GlobalContext) error {
	e.global = global
	e.logger = logging.ModuleLogger(loggerProviderOf(global), "swagger2markup.dynamic.definitions")

	if path, ok := propertyString(global, e.extensionID, "contentPath"); ok {
		e.contentPath = path
	} else if e.contentPath == "" {
		if dir, ok := specParentDir(global); ok {
			e.contentPath = dir
		} else {
			e.logger.Warn("disabling dynamic definitions extension: content path not configured and not derivable from spec location")
		}
	}

	if lang, ok := propertyMarkupLanguage(global, e.extensionID, "markupLanguage"); ok {
		e.markupLanguage = lang
	}
	return nil
}

// Apply imports the matching fragments for a Definitions document position.
// Definition positions require the context to carry the definition name.
func (e *DynamicDefinitionsDocumentExtension) Apply(ctx *interfaces.Context) error {
	if ctx == nil {
		return fmt.Errorf("dynamic definitions: nil context")
	}
	if e.global == nil {
		return fmt.Errorf("dynamic definitions: extension not initialised")
	}
	if e.contentPath == "" {
		return nil
	}

	dynamic := NewDynamicContentExtension(e.global, ctx.Builder)
	switch {
	case ctx.Position.IsDocument():
		dynamic.Section(e.markupLanguage, []string{e.contentPath}, ctx.Position.Prefix(), ctx.Position.LevelOffset())
	case ctx.Position.IsDefinition():
		if ctx.DefinitionName == "" {
			return fmt.Errorf("dynamic definitions: missing definition name at position %q", ctx.Position)
		}
		dir := filepath.Join(e.contentPath, uriutil.NormalizeName(ctx.DefinitionName))
		dynamic.Section(e.markupLanguage, []string{dir}, ctx.Position.Prefix(), ctx.Position.LevelOffset())
	default:
		return fmt.Errorf("dynamic definitions: unexpected position %q", ctx.Position)
	}
	return nil
}
