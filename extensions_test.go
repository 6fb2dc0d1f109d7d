package extensions

import (
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/Swagger2Markup/swagger2markup-extensions/pkg/interfaces"
)

// stubExtension records lifecycle calls and optionally fails them.
type stubExtension struct {
	initErr  error
	applyErr error

	initCalls  int
	applyCalls int
}

func (s *stubExtension) Init(*interfaces.GlobalContext) error {
	s.initCalls++
	return s.initErr
}

func (s *stubExtension) Apply(*interfaces.Context) error {
	s.applyCalls++
	return s.applyErr
}

func TestRegistryInitInitialisesEveryExtension(t *testing.T) {
	overview := &stubExtension{}
	definitions := &stubExtension{}
	paths := &stubExtension{}
	security := &stubExtension{}

	registry := NewRegistry().
		WithOverviewExtension(overview).
		WithDefinitionsExtension(definitions).
		WithPathsExtension(paths).
		WithSecurityExtension(security)

	if err := registry.Init(newGlobal(interfaces.MarkupAsciiDoc)); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for _, stub := range []*stubExtension{overview, definitions, paths, security} {
		if stub.initCalls != 1 {
			t.Fatalf("init calls = %d, want 1", stub.initCalls)
		}
	}
}

func TestRegistryInitWrapsFailures(t *testing.T) {
	registry := NewRegistry().
		WithOverviewExtension(&stubExtension{initErr: errors.New("bad content path")})

	err := registry.Init(newGlobal(interfaces.MarkupAsciiDoc))
	if err == nil {
		t.Fatalf("expected init failure")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("error should carry the validation category: %v", err)
	}
}

func TestRegistryApplyRunsAllExtensionsDespiteFailures(t *testing.T) {
	failing := &stubExtension{applyErr: errors.New("broken extension")}
	healthy := &stubExtension{}

	registry := NewRegistry().
		WithDefinitionsExtension(failing).
		WithDefinitionsExtension(healthy)
	if err := registry.Init(newGlobal(interfaces.MarkupAsciiDoc)); err != nil {
		t.Fatalf("Init: %v", err)
	}

	err := registry.ApplyDefinitions(&Context{Position: interfaces.PositionDocumentBegin})
	if err == nil {
		t.Fatalf("expected error from failing extension")
	}
	if !strings.Contains(err.Error(), "broken extension") {
		t.Fatalf("error = %v", err)
	}
	if healthy.applyCalls != 1 {
		t.Fatalf("healthy extension should still run, calls = %d", healthy.applyCalls)
	}
}

func TestRegistryApplyDispatchesPerDocument(t *testing.T) {
	overview := &stubExtension{}
	paths := &stubExtension{}

	registry := NewRegistry().
		WithOverviewExtension(overview).
		WithPathsExtension(paths)
	if err := registry.Init(newGlobal(interfaces.MarkupAsciiDoc)); err != nil {
		t.Fatalf("Init: %v", err)
	}

	ctx := &Context{Position: interfaces.PositionDocumentBegin}
	if err := registry.ApplyOverview(ctx); err != nil {
		t.Fatalf("ApplyOverview: %v", err)
	}
	if overview.applyCalls != 1 || paths.applyCalls != 0 {
		t.Fatalf("overview dispatch leaked: overview=%d paths=%d", overview.applyCalls, paths.applyCalls)
	}

	if err := registry.ApplyPaths(ctx); err != nil {
		t.Fatalf("ApplyPaths: %v", err)
	}
	if paths.applyCalls != 1 {
		t.Fatalf("paths calls = %d", paths.applyCalls)
	}
}

func TestRegistryApplyWithoutExtensions(t *testing.T) {
	registry := NewRegistry()
	if err := registry.ApplySecurity(&Context{Position: interfaces.PositionDocumentBegin}); err != nil {
		t.Fatalf("empty registry should be a no-op: %v", err)
	}
}
