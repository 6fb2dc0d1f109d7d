// Package logging provides module-scoped loggers for the extension runtime,
// defaulting to a no-op implementation when the host supplies no provider.
package logging

import (
	"context"
	"strings"

	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

const (
	rootModule     = "swagger2markup"
	contentModule  = "swagger2markup.content"
	dynamicModule  = "swagger2markup.dynamic"
	schemaModule   = "swagger2markup.schema"
	restdocsModule = "swagger2markup.restdocs"
)

const (
	fieldContentPath = "content_path"
	fieldPrefix      = "prefix"
	fieldPosition    = "position"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as structured context so downstream entries can be filtered.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ContentLogger returns the logger namespace reserved for content reading.
func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentModule)
}

// DynamicLogger returns the logger namespace reserved for dynamic content
// extensions.
func DynamicLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, dynamicModule)
}

// SchemaLogger returns the logger namespace reserved for the schema extension.
func SchemaLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, schemaModule)
}

// RestDocsLogger returns the logger namespace reserved for the REST Docs
// snippet extension.
func RestDocsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, restdocsModule)
}

// WithContentContext enriches the provided logger with the common dynamic
// content fields: content path, filename prefix, and lifecycle position.
// Empty values are ignored.
func WithContentContext(logger interfaces.Logger, path, prefix string, position interfaces.Position) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldContentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(prefix); trimmed != "" {
		fields[fieldPrefix] = trimmed
	}
	if position != "" {
		fields[fieldPosition] = string(position)
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so extensions can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
