package interfaces

import (
	"net/url"
	"strings"
)

// Position is a discrete point in the document assembly lifecycle. The host
// generator announces each position exactly once per document (document
// positions) or once per named element (definition, operation, and security
// scheme positions), and extensions dispatch on it.
type Position string

const (
	PositionDocumentBefore Position = "DOCUMENT_BEFORE"
	PositionDocumentBegin  Position = "DOCUMENT_BEGIN"
	PositionDocumentEnd    Position = "DOCUMENT_END"
	PositionDocumentAfter  Position = "DOCUMENT_AFTER"

	PositionDefinitionBefore Position = "DEFINITION_BEFORE"
	PositionDefinitionBegin  Position = "DEFINITION_BEGIN"
	PositionDefinitionEnd    Position = "DEFINITION_END"
	PositionDefinitionAfter  Position = "DEFINITION_AFTER"

	PositionOperationBefore Position = "OPERATION_BEFORE"
	PositionOperationBegin  Position = "OPERATION_BEGIN"
	PositionOperationEnd    Position = "OPERATION_END"
	PositionOperationAfter  Position = "OPERATION_AFTER"

	PositionOperationDescriptionBefore Position = "OPERATION_DESCRIPTION_BEFORE"
	PositionOperationDescriptionBegin  Position = "OPERATION_DESCRIPTION_BEGIN"
	PositionOperationDescriptionEnd    Position = "OPERATION_DESCRIPTION_END"
	PositionOperationDescriptionAfter  Position = "OPERATION_DESCRIPTION_AFTER"

	PositionOperationParametersBefore Position = "OPERATION_PARAMETERS_BEFORE"
	PositionOperationParametersBegin  Position = "OPERATION_PARAMETERS_BEGIN"
	PositionOperationParametersEnd    Position = "OPERATION_PARAMETERS_END"
	PositionOperationParametersAfter  Position = "OPERATION_PARAMETERS_AFTER"

	PositionOperationResponsesBefore Position = "OPERATION_RESPONSES_BEFORE"
	PositionOperationResponsesBegin  Position = "OPERATION_RESPONSES_BEGIN"
	PositionOperationResponsesEnd    Position = "OPERATION_RESPONSES_END"
	PositionOperationResponsesAfter  Position = "OPERATION_RESPONSES_AFTER"

	PositionOperationSecurityBefore Position = "OPERATION_SECURITY_BEFORE"
	PositionOperationSecurityBegin  Position = "OPERATION_SECURITY_BEGIN"
	PositionOperationSecurityEnd    Position = "OPERATION_SECURITY_END"
	PositionOperationSecurityAfter  Position = "OPERATION_SECURITY_AFTER"

	PositionSecuritySchemeBefore Position = "SECURITY_SCHEME_BEFORE"
	PositionSecuritySchemeBegin  Position = "SECURITY_SCHEME_BEGIN"
	PositionSecuritySchemeEnd    Position = "SECURITY_SCHEME_END"
	PositionSecuritySchemeAfter  Position = "SECURITY_SCHEME_AFTER"
)

// Prefix returns the filename prefix associated with the position: the
// lowercased position name with underscores replaced by dashes, e.g.
// DOCUMENT_BEFORE matches files named document-before-*.
func (p Position) Prefix() string {
	return strings.ReplaceAll(strings.ToLower(string(p)), "_", "-")
}

// LevelOffset returns the heading-depth adjustment applied to content
// imported at the position. Content before/after the document is imported
// unshifted; content inside the document is nested below the section that
// encloses the position.
func (p Position) LevelOffset() int {
	switch p {
	case PositionDocumentBefore, PositionDocumentAfter:
		return 0
	case PositionDocumentBegin, PositionDocumentEnd:
		return 1
	case PositionDefinitionBefore, PositionDefinitionAfter,
		PositionOperationBefore, PositionOperationAfter,
		PositionSecuritySchemeBefore, PositionSecuritySchemeAfter:
		return 1
	case PositionDefinitionBegin, PositionDefinitionEnd,
		PositionOperationBegin, PositionOperationEnd,
		PositionSecuritySchemeBegin, PositionSecuritySchemeEnd:
		return 2
	case PositionOperationDescriptionBefore, PositionOperationDescriptionAfter,
		PositionOperationParametersBefore, PositionOperationParametersAfter,
		PositionOperationResponsesBefore, PositionOperationResponsesAfter,
		PositionOperationSecurityBefore, PositionOperationSecurityAfter:
		return 2
	default:
		return 3
	}
}

// IsDocument reports whether the position is a whole-document position.
func (p Position) IsDocument() bool {
	switch p {
	case PositionDocumentBefore, PositionDocumentBegin, PositionDocumentEnd, PositionDocumentAfter:
		return true
	}
	return false
}

// IsDefinition reports whether the position is scoped to a single definition.
func (p Position) IsDefinition() bool {
	switch p {
	case PositionDefinitionBefore, PositionDefinitionBegin, PositionDefinitionEnd, PositionDefinitionAfter:
		return true
	}
	return false
}

// IsOperation reports whether the position is scoped to a single operation,
// including the operation sub-section positions.
func (p Position) IsOperation() bool {
	return strings.HasPrefix(string(p), "OPERATION_")
}

// IsSecurityScheme reports whether the position is scoped to a security scheme.
func (p Position) IsSecurityScheme() bool {
	return strings.HasPrefix(string(p), "SECURITY_SCHEME_")
}

// PathOperation is the slice of the host's path model that operation-scoped
// extensions need: a stable id plus the method and path it documents.
type PathOperation struct {
	ID     string
	Method string
	Path   string
}

// Context carries the per-position state handed to an extension's Apply.
// Exactly one of DefinitionName, Operation, or SecuritySchemeName is set for
// element-scoped positions; all are empty for document positions.
type Context struct {
	Position           Position
	Builder            DocBuilder
	DefinitionName     string
	Operation          *PathOperation
	SecuritySchemeName string
}

// Properties exposes typed, read-only access to the generator's extension
// properties. Keys are fully qualified dotted paths, e.g.
// swagger2markup.extensions.dynamicPaths.contentPath.
type Properties interface {
	String(key string) (string, bool)
	Bool(key string, fallback bool) bool
	StringList(key string) []string
	URI(key string) (*url.URL, bool)
	MarkupLanguage(key string) (MarkupLanguage, bool)
}

// GlobalContext is the init-time view of the host generator: the output
// markup language, where the Swagger spec was loaded from, the extension
// properties, and the logging provider. It is immutable after Init.
type GlobalContext struct {
	// MarkupLanguage is the output language of the generated documents. It
	// drives which filename extensions dynamic content scanning accepts.
	MarkupLanguage MarkupLanguage
	// SpecLocation is the URI the Swagger spec was read from, when known.
	// Extensions without an explicit content path derive their default from
	// its parent directory if the scheme is file.
	SpecLocation *url.URL
	// Properties holds the extension properties; may be nil.
	Properties Properties
	// Logger provides module loggers; may be nil, in which case extensions
	// fall back to a no-op logger.
	Logger LoggerProvider
}

// PropertyPrefix namespaces every extension property key.
const PropertyPrefix = "swagger2markup.extensions"

// PropertyKey builds the fully qualified property key for an extension id.
func PropertyKey(extensionID, name string) string {
	return PropertyPrefix + "." + extensionID + "." + name
}

// DocumentExtension is the lifecycle contract every extension implements:
// Init runs once against the global context, Apply runs at every lifecycle
// position of the document family the extension is registered for.
type DocumentExtension interface {
	Init(global *GlobalContext) error
	Apply(ctx *Context) error
}
