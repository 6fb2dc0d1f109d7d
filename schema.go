package extensions

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Swagger2Markup/swagger2markup-extensions/internal/logging"
	"github.com/Swagger2Markup/swagger2markup-extensions/internal/uriutil"
	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

const defaultSchemaExtensionID = "schema"

// SchemaMetadata describes one schema flavour the extension looks for next
// to each definition: the section title to emit, the schema file extension,
// and the source language of the listing block.
type SchemaMetadata struct {
	Title         string
	FileExtension string
	Language      string
}

// DefaultSchemas returns the built-in schema table: JSON Schema and XSD.
func DefaultSchemas() []SchemaMetadata {
	return []SchemaMetadata{
		{Title: "JSON Schema", FileExtension: "json", Language: "json"},
		{Title: "XML Schema", FileExtension: "xsd", Language: "xml"},
	}
}

// SchemaExtension renders per-definition schema files as titled code
// listings at the end of each definition section. For a definition named
// Pet and a JSON schema it resolves <schemaBaseUri>/pet/schema.json.
type SchemaExtension struct {
	extensionID     string
	schemaBaseURI   *url.URL
	schemas         []SchemaMetadata
	validateSchemas bool

	global *interfaces.GlobalContext
	logger interfaces.Logger
}

var _ interfaces.DocumentExtension = (*SchemaExtension)(nil)

// NewSchemaExtension creates the extension with the default extension id. A
// nil baseURI defers to configuration or the spec location fallback.
func NewSchemaExtension(baseURI *url.URL) *SchemaExtension {
	return NewSchemaExtensionWithID(defaultSchemaExtensionID, baseURI)
}

// NewSchemaExtensionWithID creates the extension under a custom extension id.
func NewSchemaExtensionWithID(extensionID string, baseURI *url.URL) *SchemaExtension {
	if extensionID == "" {
		extensionID = defaultSchemaExtensionID
	}
	return &SchemaExtension{
		extensionID:   extensionID,
		schemaBaseURI: baseURI,
	}
}

// WithDefaultSchemas appends the built-in schema table, skipping entries
// already present.
func (e *SchemaExtension) WithDefaultSchemas() *SchemaExtension {
	return e.WithSchemas(DefaultSchemas()...)
}

// WithSchemas appends custom schema metadata, skipping duplicates by file
// extension.
func (e *SchemaExtension) WithSchemas(schemas ...SchemaMetadata) *SchemaExtension {
	for _, schema := range schemas {
		if !e.hasSchema(schema.FileExtension) {
			e.schemas = append(e.schemas, schema)
		}
	}
	return e
}

func (e *SchemaExtension) hasSchema(fileExtension string) bool {
	for _, existing := range e.schemas {
		if existing.FileExtension == fileExtension {
			return true
		}
	}
	return false
}

// Init resolves the schema base URI and the schema table. The defaultSchemas
// property (default true) seeds the built-in table; validateSchemas enables
// advisory compilation of JSON schema files before rendering.
func (e *SchemaExtension) Init(global *interfaces.GlobalContext) error {
	e.global = global
	e.logger = logging.SchemaLogger(loggerProviderOf(global))

	if propertyBool(global, e.extensionID, "defaultSchemas", true) {
		e.WithDefaultSchemas()
	}
	e.validateSchemas = propertyBool(global, e.extensionID, "validateSchemas", false)

	if uri, ok := propertyURI(global, e.extensionID, "schemaBaseUri"); ok {
		e.schemaBaseURI = uri
	} else if e.schemaBaseURI == nil {
		if parent, ok := specParentURI(global); ok {
			e.schemaBaseURI = parent
		} else {
			e.logger.Warn("disabling schema extension: schema base URI not configured and not derivable from spec location")
		}
	}
	return nil
}

// Apply renders the configured schema sections at the end of a definition.
// Other positions are ignored.
func (e *SchemaExtension) Apply(ctx *interfaces.Context) error {
	if ctx == nil {
		return fmt.Errorf("schema extension: nil context")
	}
	if e.global == nil {
		return fmt.Errorf("schema extension: extension not initialised")
	}
	if e.schemaBaseURI == nil || ctx.Position != interfaces.PositionDefinitionEnd {
		return nil
	}
	if ctx.DefinitionName == "" {
		return fmt.Errorf("schema extension: missing definition name at position %q", ctx.Position)
	}

	for _, schema := range e.schemas {
		e.schemaSection(ctx, schema, ctx.Position.LevelOffset())
	}
	return nil
}

// DefinitionSchemaURI resolves the schema file URI for a definition.
func (e *SchemaExtension) DefinitionSchemaURI(definitionName string, schema SchemaMetadata) *url.URL {
	name := "schema"
	if schema.FileExtension != "" {
		name += "." + schema.FileExtension
	}
	return uriutil.Resolve(e.schemaBaseURI, uriutil.NormalizeName(definitionName), name)
}

func (e *SchemaExtension) schemaSection(ctx *interfaces.Context, schema SchemaMetadata, levelOffset int) {
	schemaURI := e.DefinitionSchemaURI(ctx.DefinitionName, schema)
	e.logger.Debug("processing schema", "uri", schemaURI.String())

	content := NewContentExtension(e.global)
	content.ImportContent(schemaURI, func(r io.Reader) {
		data, err := io.ReadAll(r)
		if err != nil {
			e.logger.Warn("failed to read schema", "uri", schemaURI.String(), "error", err)
			return
		}
		if e.validateSchemas && schema.Language == "json" {
			if err := compileJSONSchema(data); err != nil {
				e.logger.Warn("schema file does not compile", "uri", schemaURI.String(), "error", err)
			}
		}
		ctx.Builder.SectionTitleLevel(1+levelOffset, schema.Title)
		ctx.Builder.ListingBlock(strings.TrimSpace(string(data)), schema.Language)
	})
}

// compileJSONSchema checks that data is a compilable JSON schema. Validation
// is advisory: the caller still renders the listing on failure.
func compileJSONSchema(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(data)); err != nil {
		return err
	}
	_, err := compiler.Compile("schema.json")
	return err
}
