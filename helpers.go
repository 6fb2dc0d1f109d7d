package extensions

import (
	"net/url"
	"path/filepath"

	"github.com/Swagger2Markup/swagger2markup-extensions/internal/uriutil"
	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

func loggerProviderOf(global *interfaces.GlobalContext) interfaces.LoggerProvider {
	if global == nil {
		return nil
	}
	return global.Logger
}

// propertyString reads an extension property, tolerating a nil store.
func propertyString(global *interfaces.GlobalContext, extensionID, name string) (string, bool) {
	if global == nil || global.Properties == nil {
		return "", false
	}
	return global.Properties.String(interfaces.PropertyKey(extensionID, name))
}

func propertyStringList(global *interfaces.GlobalContext, extensionID, name string) []string {
	if global == nil || global.Properties == nil {
		return nil
	}
	return global.Properties.StringList(interfaces.PropertyKey(extensionID, name))
}

func propertyBool(global *interfaces.GlobalContext, extensionID, name string, fallback bool) bool {
	if global == nil || global.Properties == nil {
		return fallback
	}
	return global.Properties.Bool(interfaces.PropertyKey(extensionID, name), fallback)
}

func propertyMarkupLanguage(global *interfaces.GlobalContext, extensionID, name string) (interfaces.MarkupLanguage, bool) {
	if global == nil || global.Properties == nil {
		return "", false
	}
	return global.Properties.MarkupLanguage(interfaces.PropertyKey(extensionID, name))
}

func propertyURI(global *interfaces.GlobalContext, extensionID, name string) (*url.URL, bool) {
	if global == nil || global.Properties == nil {
		return nil, false
	}
	uri, ok := global.Properties.URI(interfaces.PropertyKey(extensionID, name))
	if !ok {
		return nil, false
	}
	if uri.Scheme == "" {
		coerced, err := uriutil.ParseLocation(uri.String())
		if err != nil {
			return nil, false
		}
		return coerced, true
	}
	return uri, true
}

// specParentDir returns the directory of the Swagger spec when its location
// is a local file; extensions fall back to it when no content path is
// configured.
func specParentDir(global *interfaces.GlobalContext) (string, bool) {
	if global == nil || global.SpecLocation == nil || !uriutil.IsFile(global.SpecLocation) {
		return "", false
	}
	return filepath.Dir(global.SpecLocation.Path), true
}

// specParentURI is specParentDir for URI-based extensions; unlike the
// directory fallback it accepts any scheme.
func specParentURI(global *interfaces.GlobalContext) (*url.URL, bool) {
	if global == nil || global.SpecLocation == nil {
		return nil, false
	}
	return uriutil.Parent(global.SpecLocation), true
}
