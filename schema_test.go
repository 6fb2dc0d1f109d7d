package extensions

import (
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Swagger2Markup/swagger2markup-extensions/internal/properties"
	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

func schemaBase(dir string) *url.URL {
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(dir)}
}

func TestSchemaExtensionRendersJSONSchema(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, elementDir(t, dir, "Pet"), "schema.json", "{\"type\": \"object\"}\n")

	ext := NewSchemaExtension(schemaBase(dir))
	if err := ext.Init(newGlobal(interfaces.MarkupAsciiDoc)); err != nil {
		t.Fatalf("Init: %v", err)
	}

	builder := NewMarkupBuilder(MarkupAsciiDoc)
	if err := ext.Apply(&Context{
		Position:       interfaces.PositionDefinitionEnd,
		DefinitionName: "Pet",
		Builder:        builder,
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got := builder.Markup()
	// definition-end content nests two levels below the definition title.
	if !strings.Contains(got, "==== JSON Schema") {
		t.Fatalf("schema section title missing:\n%s", got)
	}
	if !strings.Contains(got, "[source,json]") {
		t.Fatalf("json listing missing:\n%s", got)
	}
	if !strings.Contains(got, "{\"type\": \"object\"}") {
		t.Fatalf("schema content missing:\n%s", got)
	}
	if strings.Contains(got, "XML Schema") {
		t.Fatalf("missing XSD should not render a section:\n%s", got)
	}
}

func TestSchemaExtensionRendersBothDefaultSchemas(t *testing.T) {
	dir := t.TempDir()
	petDir := elementDir(t, dir, "Pet")
	writeFragment(t, petDir, "schema.json", "{}")
	writeFragment(t, petDir, "schema.xsd", "<xs:schema/>")

	ext := NewSchemaExtension(schemaBase(dir))
	if err := ext.Init(newGlobal(interfaces.MarkupAsciiDoc)); err != nil {
		t.Fatalf("Init: %v", err)
	}

	builder := NewMarkupBuilder(MarkupAsciiDoc)
	if err := ext.Apply(&Context{
		Position:       interfaces.PositionDefinitionEnd,
		DefinitionName: "Pet",
		Builder:        builder,
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got := builder.Markup()
	jsonIdx := strings.Index(got, "JSON Schema")
	xmlIdx := strings.Index(got, "XML Schema")
	if jsonIdx < 0 || xmlIdx < 0 {
		t.Fatalf("both schema sections expected:\n%s", got)
	}
	if jsonIdx > xmlIdx {
		t.Fatalf("JSON Schema should render before XML Schema:\n%s", got)
	}
	if !strings.Contains(got, "[source,xml]") {
		t.Fatalf("xml listing missing:\n%s", got)
	}
}

func TestSchemaExtensionIgnoresOtherPositions(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, elementDir(t, dir, "Pet"), "schema.json", "{}")

	ext := NewSchemaExtension(schemaBase(dir))
	if err := ext.Init(newGlobal(interfaces.MarkupAsciiDoc)); err != nil {
		t.Fatalf("Init: %v", err)
	}

	builder := NewMarkupBuilder(MarkupAsciiDoc)
	if err := ext.Apply(&Context{
		Position:       interfaces.PositionDefinitionBegin,
		DefinitionName: "Pet",
		Builder:        builder,
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := builder.Markup(); got != "" {
		t.Fatalf("non definition-end position should add nothing, got %q", got)
	}
}

func TestSchemaExtensionDefaultSchemasDisabled(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, elementDir(t, dir, "Pet"), "schema.json", "{}")

	global := newGlobal(interfaces.MarkupAsciiDoc)
	global.Properties = properties.New(map[string]any{
		"swagger2markup.extensions.schema.defaultSchemas": false,
	})

	ext := NewSchemaExtension(schemaBase(dir))
	if err := ext.Init(global); err != nil {
		t.Fatalf("Init: %v", err)
	}

	builder := NewMarkupBuilder(MarkupAsciiDoc)
	if err := ext.Apply(&Context{
		Position:       interfaces.PositionDefinitionEnd,
		DefinitionName: "Pet",
		Builder:        builder,
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := builder.Markup(); got != "" {
		t.Fatalf("no schema table means no output, got %q", got)
	}
}

func TestSchemaExtensionCustomSchemas(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, elementDir(t, dir, "Pet"), "schema.avsc", "{\"type\": \"record\"}")

	global := newGlobal(interfaces.MarkupAsciiDoc)
	global.Properties = properties.New(map[string]any{
		"swagger2markup.extensions.schema.defaultSchemas": false,
	})

	ext := NewSchemaExtension(schemaBase(dir)).
		WithSchemas(SchemaMetadata{Title: "Avro Schema", FileExtension: "avsc", Language: "json"})
	if err := ext.Init(global); err != nil {
		t.Fatalf("Init: %v", err)
	}

	builder := NewMarkupBuilder(MarkupAsciiDoc)
	if err := ext.Apply(&Context{
		Position:       interfaces.PositionDefinitionEnd,
		DefinitionName: "Pet",
		Builder:        builder,
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := builder.Markup(); !strings.Contains(got, "Avro Schema") {
		t.Fatalf("custom schema section missing:\n%s", got)
	}
}

func TestSchemaExtensionValidationIsAdvisory(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, elementDir(t, dir, "Pet"), "schema.json", "{not valid json")

	global := newGlobal(interfaces.MarkupAsciiDoc)
	global.Properties = properties.New(map[string]any{
		"swagger2markup.extensions.schema.validateSchemas": true,
	})

	ext := NewSchemaExtension(schemaBase(dir))
	if err := ext.Init(global); err != nil {
		t.Fatalf("Init: %v", err)
	}

	builder := NewMarkupBuilder(MarkupAsciiDoc)
	if err := ext.Apply(&Context{
		Position:       interfaces.PositionDefinitionEnd,
		DefinitionName: "Pet",
		Builder:        builder,
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := builder.Markup(); !strings.Contains(got, "{not valid json") {
		t.Fatalf("listing should render despite failed validation:\n%s", got)
	}
}

func TestSchemaExtensionRequiresInit(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, elementDir(t, dir, "Pet"), "schema.json", "{}")

	ext := NewSchemaExtension(schemaBase(dir)).WithDefaultSchemas()
	builder := NewMarkupBuilder(MarkupAsciiDoc)
	err := ext.Apply(&Context{
		Position:       interfaces.PositionDefinitionEnd,
		DefinitionName: "Pet",
		Builder:        builder,
	})
	if err == nil {
		t.Fatalf("Apply before Init should fail")
	}
	if got := builder.Markup(); got != "" {
		t.Fatalf("uninitialised extension should produce no output, got %q", got)
	}
}

func TestSchemaExtensionRequiresDefinitionName(t *testing.T) {
	ext := NewSchemaExtension(schemaBase(t.TempDir()))
	if err := ext.Init(newGlobal(interfaces.MarkupAsciiDoc)); err != nil {
		t.Fatalf("Init: %v", err)
	}

	builder := NewMarkupBuilder(MarkupAsciiDoc)
	if err := ext.Apply(&Context{Position: interfaces.PositionDefinitionEnd, Builder: builder}); err == nil {
		t.Fatalf("expected error for missing definition name")
	}
}

func TestSchemaExtensionBaseURIProperty(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, elementDir(t, dir, "Pet"), "schema.json", "{}")

	global := newGlobal(interfaces.MarkupAsciiDoc)
	global.Properties = properties.New(map[string]any{
		"swagger2markup.extensions.schema.schemaBaseUri": dir,
	})

	ext := NewSchemaExtension(nil)
	if err := ext.Init(global); err != nil {
		t.Fatalf("Init: %v", err)
	}

	builder := NewMarkupBuilder(MarkupAsciiDoc)
	if err := ext.Apply(&Context{
		Position:       interfaces.PositionDefinitionEnd,
		DefinitionName: "Pet",
		Builder:        builder,
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := builder.Markup(); !strings.Contains(got, "JSON Schema") {
		t.Fatalf("schemaBaseUri property not honoured:\n%s", got)
	}
}

func TestSchemaExtensionDisablesWithoutBaseURI(t *testing.T) {
	ext := NewSchemaExtension(nil)
	if err := ext.Init(newGlobal(interfaces.MarkupAsciiDoc)); err != nil {
		t.Fatalf("Init: %v", err)
	}

	builder := NewMarkupBuilder(MarkupAsciiDoc)
	if err := ext.Apply(&Context{
		Position:       interfaces.PositionDefinitionEnd,
		DefinitionName: "Pet",
		Builder:        builder,
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := builder.Markup(); got != "" {
		t.Fatalf("disabled extension should produce no output, got %q", got)
	}
}
