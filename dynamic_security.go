package extensions

import (
	"fmt"
	"path/filepath"

	"github.com/Swagger2Markup/swagger2markup-extensions/internal/logging"
	"github.com/Swagger2Markup/swagger2markup-extensions/internal/uriutil"
	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

const defaultSecurityExtensionID = "dynamicSecurity"

// DynamicSecurityDocumentExtension appends externally stored markup in the
// Security document. Document positions read fragments from the configured
// content paths; security-scheme positions read from a per-scheme
// sub-directory named after the normalized scheme name.
type DynamicSecurityDocumentExtension struct {
	extensionID    string
	contentPaths   []string
	markupLanguage interfaces.MarkupLanguage

	global *interfaces.GlobalContext
	logger interfaces.Logger
}

var _ interfaces.DocumentExtension = (*DynamicSecurityDocumentExtension)(nil)

// NewDynamicSecurityDocumentExtension creates the extension with the default
// extension id.
func NewDynamicSecurityDocumentExtension(contentPaths []string, lang interfaces.MarkupLanguage) *DynamicSecurityDocumentExtension {
	return NewDynamicSecurityDocumentExtensionWithID(defaultSecurityExtensionID, contentPaths, lang)
}

// NewDynamicSecurityDocumentExtensionWithID creates the extension under a
// custom extension id.
func NewDynamicSecurityDocumentExtensionWithID(extensionID string, contentPaths []string, lang interfaces.MarkupLanguage) *DynamicSecurityDocumentExtension {
	if extensionID == "" {
		extensionID = defaultSecurityExtensionID
	}
	if lang == "" {
		lang = interfaces.MarkupAsciiDoc
	}
	return &DynamicSecurityDocumentExtension{
		extensionID:    extensionID,
		contentPaths:   append([]string(nil), contentPaths...),
		markupLanguage: lang,
	}
}

// Init resolves the content path list with the shared precedence rules.
func (e *DynamicSecurityDocumentExtension) Init(global *interfaces.GlobalContext) error {
	e.global = global
	e.logger = logging.ModuleLogger(loggerProviderOf(global), "swagger2markup.dynamic.security")

	if paths := propertyStringList(global, e.extensionID, "contentPath"); len(paths) > 0 {
		e.contentPaths = paths
	} else if len(e.contentPaths) == 0 {
		if dir, ok := specParentDir(global); ok {
			e.contentPaths = []string{dir}
		} else {
			e.logger.Warn("disabling dynamic security extension: content path not configured and not derivable from spec location")
		}
	}

	if lang, ok := propertyMarkupLanguage(global, e.extensionID, "markupLanguage"); ok {
		e.markupLanguage = lang
	}
	return nil
}

// Apply imports the matching fragments for a Security document position.
// Scheme positions require the context to carry the security scheme name.
func (e *DynamicSecurityDocumentExtension) Apply(ctx *interfaces.Context) error {
	if ctx == nil {
		return fmt.Errorf("dynamic security: nil context")
	}
	if e.global == nil {
		return fmt.Errorf("dynamic security: extension not initialised")
	}
	if len(e.contentPaths) == 0 {
		return nil
	}

	dynamic := NewDynamicContentExtension(e.global, ctx.Builder)
	switch {
	case ctx.Position.IsDocument():
		dynamic.Section(e.markupLanguage, e.contentPaths, ctx.Position.Prefix(), ctx.Position.LevelOffset())
	case ctx.Position.IsSecurityScheme():
		if ctx.SecuritySchemeName == "" {
			return fmt.Errorf("dynamic security: missing security scheme name at position %q", ctx.Position)
		}
		name := uriutil.NormalizeName(ctx.SecuritySchemeName)
		resolved := make([]string, 0, len(e.contentPaths))
		for _, base := range e.contentPaths {
			resolved = append(resolved, filepath.Join(base, name))
		}
		dynamic.Section(e.markupLanguage, resolved, ctx.Position.Prefix(), ctx.Position.LevelOffset())
	default:
		return fmt.Errorf("dynamic security: unexpected position %q", ctx.Position)
	}
	return nil
}
