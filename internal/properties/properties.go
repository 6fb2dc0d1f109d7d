// Package properties implements the typed extension-property store the
// generator hands to extensions at init time. Values come from YAML documents
// or plain nested maps and are flattened into dotted keys, matching the
// swagger2markup.extensions.<id>.<name> addressing scheme.
package properties

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

// Store is an immutable flattened key/value view over extension properties.
type Store struct {
	values map[string]any
}

var _ interfaces.Properties = (*Store)(nil)

// New flattens the supplied nested map into a Store. Nested maps become
// dotted key segments; list values are kept intact at their leaf key.
func New(values map[string]any) *Store {
	flat := map[string]any{}
	flatten("", values, flat)
	return &Store{values: flat}
}

// Load parses a YAML document into a Store.
func Load(data []byte) (*Store, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("properties: parse: %w", err)
	}
	return New(raw), nil
}

// LoadFile reads and parses a YAML properties file.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("properties: read %s: %w", path, err)
	}
	store, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("properties: %s: %w", path, err)
	}
	return store, nil
}

// Merge returns a Store containing the receiver's entries overlaid with the
// other store's entries. The other store wins on conflicting keys.
func (s *Store) Merge(other *Store) *Store {
	merged := map[string]any{}
	if s != nil {
		for key, value := range s.values {
			merged[key] = value
		}
	}
	if other != nil {
		for key, value := range other.values {
			merged[key] = value
		}
	}
	return &Store{values: merged}
}

// String returns the scalar value at key rendered as a string.
func (s *Store) String(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	value, ok := s.values[key]
	if !ok || value == nil {
		return "", false
	}
	switch typed := value.(type) {
	case string:
		return typed, true
	case bool:
		return strconv.FormatBool(typed), true
	case int:
		return strconv.Itoa(typed), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	default:
		return fmt.Sprintf("%v", typed), true
	}
}

// Bool returns the boolean at key, or fallback when the key is absent or not
// a recognisable boolean.
func (s *Store) Bool(key string, fallback bool) bool {
	if s == nil {
		return fallback
	}
	value, ok := s.values[key]
	if !ok {
		return fallback
	}
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err != nil {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}

// StringList returns the list value at key. Scalar values are split on
// commas so single-path and multi-path configurations share one key.
func (s *Store) StringList(key string) []string {
	if s == nil {
		return nil
	}
	value, ok := s.values[key]
	if !ok || value == nil {
		return nil
	}
	switch typed := value.(type) {
	case []any:
		out := make([]string, 0, len(typed))
		for _, entry := range typed {
			if text := strings.TrimSpace(fmt.Sprintf("%v", entry)); text != "" {
				out = append(out, text)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(typed))
		for _, entry := range typed {
			if text := strings.TrimSpace(entry); text != "" {
				out = append(out, text)
			}
		}
		return out
	default:
		var out []string
		for _, entry := range strings.Split(fmt.Sprintf("%v", typed), ",") {
			if text := strings.TrimSpace(entry); text != "" {
				out = append(out, text)
			}
		}
		return out
	}
}

// URI parses the value at key into a URL. Malformed values report absent.
func (s *Store) URI(key string) (*url.URL, bool) {
	raw, ok := s.String(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, false
	}
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, false
	}
	return parsed, true
}

// MarkupLanguage parses the value at key into a MarkupLanguage. Unsupported
// values report absent so callers keep their defaults.
func (s *Store) MarkupLanguage(key string) (interfaces.MarkupLanguage, bool) {
	raw, ok := s.String(key)
	if !ok {
		return "", false
	}
	lang, err := interfaces.ParseMarkupLanguage(raw)
	if err != nil {
		return "", false
	}
	return lang, true
}

func flatten(prefix string, in map[string]any, out map[string]any) {
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch nested := value.(type) {
		case map[string]any:
			flatten(full, nested, out)
		case map[any]any:
			converted := map[string]any{}
			for k, v := range nested {
				converted[fmt.Sprintf("%v", k)] = v
			}
			flatten(full, converted, out)
		default:
			out[full] = value
		}
	}
}
