package extensions

import (
	"fmt"
	"net/url"

	"github.com/Swagger2Markup/swagger2markup-extensions/internal/logging"
	"github.com/Swagger2Markup/swagger2markup-extensions/internal/uriutil"
	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

const defaultRestDocsExtensionID = "springRestDocs"

// Snippet pairs a Spring REST Docs snippet file name with the section title
// it is rendered under. Order is preserved in the generated document.
type Snippet struct {
	Name  string
	Title string
}

// DefaultSnippets returns the built-in snippet table in render order.
func DefaultSnippets() []Snippet {
	return []Snippet{
		{Name: "http-request", Title: "HTTP request"},
		{Name: "http-response", Title: "HTTP response"},
		{Name: "curl-request", Title: "Curl request"},
	}
}

// SpringRestDocsExtension imports Spring REST Docs generated snippets as
// titled sub-sections at the end of each operation. For an operation with id
// updatePet and the http-request snippet it resolves
// <snippetBaseUri>/update-pet/http-request.<builder ext>.
type SpringRestDocsExtension struct {
	extensionID    string
	snippetBaseURI *url.URL
	snippets       []Snippet

	global *interfaces.GlobalContext
	logger interfaces.Logger
}

var _ interfaces.DocumentExtension = (*SpringRestDocsExtension)(nil)

// NewSpringRestDocsExtension creates the extension with the default
// extension id. A nil baseURI defers to configuration or the spec location
// fallback.
func NewSpringRestDocsExtension(baseURI *url.URL) *SpringRestDocsExtension {
	return NewSpringRestDocsExtensionWithID(defaultRestDocsExtensionID, baseURI)
}

// NewSpringRestDocsExtensionWithID creates the extension under a custom
// extension id.
func NewSpringRestDocsExtensionWithID(extensionID string, baseURI *url.URL) *SpringRestDocsExtension {
	if extensionID == "" {
		extensionID = defaultRestDocsExtensionID
	}
	return &SpringRestDocsExtension{
		extensionID:    extensionID,
		snippetBaseURI: baseURI,
	}
}

// WithDefaultSnippets appends the built-in snippet table, skipping names
// already present.
func (e *SpringRestDocsExtension) WithDefaultSnippets() *SpringRestDocsExtension {
	return e.WithExplicitSnippets(DefaultSnippets()...)
}

// WithExplicitSnippets appends custom snippets in the given order, skipping
// duplicates by name.
func (e *SpringRestDocsExtension) WithExplicitSnippets(snippets ...Snippet) *SpringRestDocsExtension {
	for _, snippet := range snippets {
		if !e.hasSnippet(snippet.Name) {
			e.snippets = append(e.snippets, snippet)
		}
	}
	return e
}

func (e *SpringRestDocsExtension) hasSnippet(name string) bool {
	for _, existing := range e.snippets {
		if existing.Name == name {
			return true
		}
	}
	return false
}

// Init resolves the snippet base URI and the snippet table. The
// defaultSnippets property (default true) seeds the built-in table.
func (e *SpringRestDocsExtension) Init(global *interfaces.GlobalContext) error {
	e.global = global
	e.logger = logging.RestDocsLogger(loggerProviderOf(global))

	if propertyBool(global, e.extensionID, "defaultSnippets", true) {
		e.WithDefaultSnippets()
	}

	if uri, ok := propertyURI(global, e.extensionID, "snippetBaseUri"); ok {
		e.snippetBaseURI = uri
	} else if e.snippetBaseURI == nil {
		if parent, ok := specParentURI(global); ok {
			e.snippetBaseURI = parent
		} else {
			e.logger.Warn("disabling Spring REST Docs extension: snippet base URI not configured and not derivable from spec location")
		}
	}
	return nil
}

// Apply renders the configured snippet sections at the end of an operation.
// Other positions are ignored.
func (e *SpringRestDocsExtension) Apply(ctx *interfaces.Context) error {
	if ctx == nil {
		return fmt.Errorf("restdocs extension: nil context")
	}
	if e.global == nil {
		return fmt.Errorf("restdocs extension: extension not initialised")
	}
	if e.snippetBaseURI == nil || ctx.Position != interfaces.PositionOperationEnd {
		return nil
	}
	if ctx.Operation == nil || ctx.Operation.ID == "" {
		return fmt.Errorf("restdocs extension: missing operation at position %q", ctx.Position)
	}

	for _, snippet := range e.snippets {
		e.snippetSection(ctx, snippet, ctx.Position.LevelOffset())
	}
	return nil
}

// OperationSnippetURI resolves a snippet file URI for an operation. The file
// name carries the builder's markup extension, matching how Spring REST Docs
// names its generated snippets per output format.
func (e *SpringRestDocsExtension) OperationSnippetURI(ctx *interfaces.Context, operation *interfaces.PathOperation, snippetName string) *url.URL {
	return uriutil.Resolve(e.snippetBaseURI, uriutil.NormalizeName(operation.ID), ctx.Builder.AddFileExtension(snippetName))
}

func (e *SpringRestDocsExtension) snippetSection(ctx *interfaces.Context, snippet Snippet, levelOffset int) {
	snippetURI := e.OperationSnippetURI(ctx, ctx.Operation, snippet.Name)

	content := NewContentExtension(e.global)
	reader, err := content.ReadContentURI(snippetURI)
	if err != nil {
		e.logger.Debug("skipping missing snippet", "uri", snippetURI.String(), "error", err)
		return
	}
	defer reader.Close()

	ctx.Builder.SectionTitleLevel(1+levelOffset, snippet.Title)
	if err := ctx.Builder.ImportMarkup(reader, e.global.MarkupLanguage, levelOffset+1); err != nil {
		e.logger.Warn("failed to import snippet", "uri", snippetURI.String(), "error", err)
	}
}
