package extensions

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/Swagger2Markup/swagger2markup-extensions/internal/markup"
	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

// Re-exported contract types so hosts can depend on this package alone.
type (
	// Position is a lifecycle position in document assembly.
	Position = interfaces.Position
	// Context is the per-position state handed to Apply.
	Context = interfaces.Context
	// GlobalContext is the init-time view of the host generator.
	GlobalContext = interfaces.GlobalContext
	// DocBuilder is the markup document builder contract.
	DocBuilder = interfaces.DocBuilder
	// MarkupLanguage identifies a markup dialect.
	MarkupLanguage = interfaces.MarkupLanguage
	// PathOperation is the operation model slice used by path extensions.
	PathOperation = interfaces.PathOperation
	// DocumentExtension is the Init/Apply lifecycle contract.
	DocumentExtension = interfaces.DocumentExtension
	// MarkupBuilder is the bundled default DocBuilder implementation.
	MarkupBuilder = markup.Builder
)

const (
	MarkupAsciiDoc   = interfaces.MarkupAsciiDoc
	MarkupMarkdown   = interfaces.MarkupMarkdown
	MarkupConfluence = interfaces.MarkupConfluence
)

// NewMarkupBuilder returns the bundled DocBuilder for the given language.
func NewMarkupBuilder(lang MarkupLanguage) *MarkupBuilder {
	return markup.NewBuilder(lang)
}

// Registry collects the extensions registered for each generated document
// and dispatches lifecycle positions to them, in registration order.
type Registry struct {
	overview    []interfaces.DocumentExtension
	definitions []interfaces.DocumentExtension
	paths       []interfaces.DocumentExtension
	security    []interfaces.DocumentExtension
}

// NewRegistry returns an empty extension registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// WithOverviewExtension registers an extension for the Overview document.
func (r *Registry) WithOverviewExtension(ext interfaces.DocumentExtension) *Registry {
	r.overview = append(r.overview, ext)
	return r
}

// WithDefinitionsExtension registers an extension for the Definitions document.
func (r *Registry) WithDefinitionsExtension(ext interfaces.DocumentExtension) *Registry {
	r.definitions = append(r.definitions, ext)
	return r
}

// WithPathsExtension registers an extension for the Paths document.
func (r *Registry) WithPathsExtension(ext interfaces.DocumentExtension) *Registry {
	r.paths = append(r.paths, ext)
	return r
}

// WithSecurityExtension registers an extension for the Security document.
func (r *Registry) WithSecurityExtension(ext interfaces.DocumentExtension) *Registry {
	r.security = append(r.security, ext)
	return r
}

// Init initialises every registered extension against the global context.
// Initialisation failures are configuration problems and abort the run.
func (r *Registry) Init(global *interfaces.GlobalContext) error {
	for _, group := range [][]interfaces.DocumentExtension{r.overview, r.definitions, r.paths, r.security} {
		for _, ext := range group {
			if err := ext.Init(global); err != nil {
				if goerrors.IsWrapped(err) {
					return err
				}
				return goerrors.Wrap(err, goerrors.CategoryValidation, "extension initialisation failed").
					WithTextCode("EXTENSION_INIT_FAILED")
			}
		}
	}
	return nil
}

// ApplyOverview dispatches an Overview document position to every registered
// overview extension.
func (r *Registry) ApplyOverview(ctx *interfaces.Context) error {
	return applyAll(r.overview, ctx)
}

// ApplyDefinitions dispatches a Definitions document position.
func (r *Registry) ApplyDefinitions(ctx *interfaces.Context) error {
	return applyAll(r.definitions, ctx)
}

// ApplyPaths dispatches a Paths document position.
func (r *Registry) ApplyPaths(ctx *interfaces.Context) error {
	return applyAll(r.paths, ctx)
}

// ApplySecurity dispatches a Security document position.
func (r *Registry) ApplySecurity(ctx *interfaces.Context) error {
	return applyAll(r.security, ctx)
}

// applyAll runs every extension even when one fails so a single broken
// extension does not hide the content of the others.
func applyAll(group []interfaces.DocumentExtension, ctx *interfaces.Context) error {
	var errs []error
	for _, ext := range group {
		if err := ext.Apply(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
