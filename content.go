// Package extensions implements the swagger2markup extension points: dynamic
// content import around document lifecycle positions, per-definition schema
// listings, and Spring REST Docs snippet sections.
package extensions

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/Swagger2Markup/swagger2markup-extensions/internal/logging"
	"github.com/Swagger2Markup/swagger2markup-extensions/internal/uriutil"
	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

// ContentExtension reads a single external resource and hands its content to
// a callback. Missing or unreadable resources are not errors: extension
// content is optional by contract, so failures degrade to a debug log.
type ContentExtension struct {
	logger interfaces.Logger
	client *http.Client
}

// NewContentExtension builds the content reader for one extension run.
func NewContentExtension(global *interfaces.GlobalContext) *ContentExtension {
	var provider interfaces.LoggerProvider
	if global != nil {
		provider = global.Logger
	}
	return &ContentExtension{
		logger: logging.ContentLogger(provider),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// ReadContentURI opens the resource at uri. Supported schemes are file (or
// none, treated as a local path) and http/https.
func (e *ContentExtension) ReadContentURI(uri *url.URL) (io.ReadCloser, error) {
	if uri == nil {
		return nil, fmt.Errorf("content: nil URI")
	}
	switch {
	case uriutil.IsFile(uri):
		file, err := os.Open(uri.Path)
		if err != nil {
			return nil, fmt.Errorf("content: open %s: %w", uri.Path, err)
		}
		return file, nil
	case uri.Scheme == "http" || uri.Scheme == "https":
		resp, err := e.client.Get(uri.String())
		if err != nil {
			return nil, fmt.Errorf("content: get %s: %w", uri, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, fmt.Errorf("content: get %s: unexpected status %s", uri, resp.Status)
		}
		return resp.Body, nil
	default:
		return nil, fmt.Errorf("content: unsupported scheme %q", uri.Scheme)
	}
}

// ImportContent opens the resource at uri and invokes handler with a reader
// over its content. I/O failures are swallowed into a debug log so optional
// fragments can simply be absent.
func (e *ContentExtension) ImportContent(uri *url.URL, handler func(io.Reader)) {
	reader, err := e.ReadContentURI(uri)
	if err != nil {
		e.logger.Debug("skipping unreadable content", "uri", uriString(uri), "error", err)
		return
	}
	defer reader.Close()
	handler(reader)
}

// ImportContentPath is ImportContent for a plain filesystem path.
func (e *ContentExtension) ImportContentPath(path string, handler func(io.Reader)) {
	e.ImportContent(&url.URL{Scheme: "file", Path: path}, handler)
}

func uriString(uri *url.URL) string {
	if uri == nil {
		return ""
	}
	return uri.String()
}
