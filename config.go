package extensions

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/Swagger2Markup/swagger2markup-extensions/internal/logging"
	"github.com/Swagger2Markup/swagger2markup-extensions/internal/logging/gologger"
	"github.com/Swagger2Markup/swagger2markup-extensions/internal/properties"
	"github.com/Swagger2Markup/swagger2markup-extensions/internal/uriutil"
	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

// LoggingConfig selects the logging provider used for module loggers.
type LoggingConfig struct {
	// Provider is "noop" (default) or "gologger".
	Provider string
	// Level, Format, and AddSource configure the gologger provider.
	Level     string
	Format    string
	AddSource bool
}

// Config assembles a GlobalContext for hosts that do not construct one
// themselves: the output markup language, the spec location, the extension
// properties (inline and/or from a YAML file), and logging.
type Config struct {
	// MarkupLanguage is the output language of the generated documents.
	MarkupLanguage string
	// SpecLocation is the path or URI the Swagger spec was read from.
	// Optional; without it extensions must be configured explicitly.
	SpecLocation string
	// PropertiesFile points at a YAML file with extension properties.
	PropertiesFile string
	// Properties holds inline extension properties; entries override the
	// properties file on conflicting keys.
	Properties map[string]any
	// Logging selects and configures the logger provider.
	Logging LoggingConfig
}

// DefaultConfig returns a configuration producing AsciiDoc output with
// logging disabled.
func DefaultConfig() Config {
	return Config{
		MarkupLanguage: string(interfaces.MarkupAsciiDoc),
		Logging: LoggingConfig{
			Provider: "noop",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate checks the configuration before a global context is built.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MarkupLanguage, validation.Required, validation.By(func(value any) error {
			if _, err := interfaces.ParseMarkupLanguage(value.(string)); err != nil {
				return validation.NewError("swagger2markup.config.markup_language", err.Error())
			}
			return nil
		})),
		validation.Field(&c.Logging, validation.By(func(value any) error {
			cfg := value.(LoggingConfig)
			switch cfg.Provider {
			case "", "noop", "gologger":
				return nil
			default:
				return validation.NewError("swagger2markup.config.logging_provider", "unknown logging provider "+cfg.Provider)
			}
		})),
	)
}

// BuildGlobalContext validates the configuration and materialises the
// GlobalContext handed to Registry.Init.
func (c Config) BuildGlobalContext() (*interfaces.GlobalContext, error) {
	if err := c.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid extension configuration").
			WithTextCode("EXTENSION_CONFIG_INVALID")
	}

	lang, err := interfaces.ParseMarkupLanguage(c.MarkupLanguage)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid extension configuration").
			WithTextCode("EXTENSION_CONFIG_INVALID")
	}

	props := properties.New(c.Properties)
	if c.PropertiesFile != "" {
		fileProps, err := properties.LoadFile(c.PropertiesFile)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid extension properties file").
				WithTextCode("EXTENSION_CONFIG_INVALID")
		}
		// Inline properties win over file entries.
		props = fileProps.Merge(props)
	}

	global := &interfaces.GlobalContext{
		MarkupLanguage: lang,
		Properties:     props,
	}

	if c.SpecLocation != "" {
		location, err := uriutil.ParseLocation(c.SpecLocation)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid spec location").
				WithTextCode("EXTENSION_CONFIG_INVALID")
		}
		global.SpecLocation = location
	}

	if c.Logging.Provider == "gologger" {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Logging.Level,
			Format:    c.Logging.Format,
			AddSource: c.Logging.AddSource,
		})
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid logging configuration").
				WithTextCode("EXTENSION_CONFIG_INVALID")
		}
		global.Logger = provider
	} else {
		global.Logger = noopProvider{}
	}

	return global, nil
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
