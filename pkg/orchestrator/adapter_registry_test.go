package orchestrator

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docdantic/pkg/jsonschema"
	"github.com/goliatone/go-docdantic/pkg/model"
	"github.com/goliatone/go-docdantic/pkg/openapi"
	"github.com/goliatone/go-docdantic/pkg/schema"
)

type stubAdapter struct {
	name string
}

func (s stubAdapter) Name() string                       { return s.name }
func (s stubAdapter) Detect(schema.Source, []byte) bool { return true }
func (s stubAdapter) Declarations(context.Context, string, schema.Document) ([]model.Declaration, error) {
	return nil, nil
}

func TestAdapterRegistry(t *testing.T) {
	reg := NewAdapterRegistry()
	reg.MustRegister(openapi.Adapter{})
	reg.MustRegister(jsonschema.Adapter{})

	if err := reg.Register(stubAdapter{name: " OpenAPI "}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := reg.Register(stubAdapter{}); err == nil {
		t.Fatal("expected empty name error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatal("expected nil adapter error")
	}

	if diff := cmp.Diff([]string{"jsonschema", "openapi"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	adapter, err := reg.Get("JSONSchema")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if adapter.Name() != "jsonschema" {
		t.Fatalf("unexpected adapter %q", adapter.Name())
	}
}

func TestAdapterRegistryDetect(t *testing.T) {
	reg := NewAdapterRegistry()
	reg.MustRegister(openapi.Adapter{})
	reg.MustRegister(jsonschema.Adapter{})

	src := schema.SourceFromFile("spec.yaml")
	oas := []byte("openapi: 3.0.3\ninfo:\n  title: x\n  version: \"1\"\npaths: {}\ncomponents:\n  schemas: {}\n")
	matches := reg.Detect(src, oas)
	if len(matches) != 1 || matches[0].Name() != "openapi" {
		t.Fatalf("expected openapi match, got %v", names(matches))
	}

	js := []byte(`{"$schema": "https://json-schema.org/draft/2020-12/schema", "$defs": {}}`)
	matches = reg.Detect(src, js)
	if len(matches) != 1 || matches[0].Name() != "jsonschema" {
		t.Fatalf("expected jsonschema match, got %v", names(matches))
	}
}

func names(adapters []schema.FormatAdapter) []string {
	out := make([]string, 0, len(adapters))
	for _, adapter := range adapters {
		out = append(out, adapter.Name())
	}
	return out
}

func TestAdapterRegistryKeepsNameOrder(t *testing.T) {
	reg := NewAdapterRegistry()
	for _, name := range []string{"zeta", "Alpha", "mid"} {
		reg.MustRegister(stubAdapter{name: name})
	}
	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	matched := names(reg.Detect(schema.SourceFromFS("any"), []byte("x")))
	if diff := cmp.Diff([]string{"Alpha", "mid", "zeta"}, matched); diff != "" {
		t.Fatalf("detect order mismatch (-want +got):\n%s", diff)
	}
	if _, err := reg.Get("beta"); err == nil {
		t.Fatal("expected missing format error")
	}
}
