package docdantic_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-docdantic"
	"github.com/goliatone/go-docdantic/pkg/model"
	"github.com/goliatone/go-docdantic/pkg/orchestrator"
	"github.com/goliatone/go-docdantic/pkg/registry"
	"github.com/goliatone/go-docdantic/pkg/schema"
)

func exampleRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := docdantic.NewRegistry()
	reg.MustRegister("pkg", model.Declaration{
		Name: "User",
		Kind: model.KindModel,
		Fields: []model.Field{
			{Name: "id", Type: model.Named("int"), Required: true},
			{Name: "name", Type: model.Named("str"), Default: "anon", HasDefault: true},
		},
	})
	return reg
}

func TestExpand(t *testing.T) {
	got, err := docdantic.Expand("!docdantic: pkg.User\n", orchestrator.WithRegistry(exampleRegistry(t)))
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := "### User\n" +
		"\n" +
		"| Name     | Type | Required | Default |\n" +
		"|----------|------|----------|---------|\n" +
		"| **id**   | int  | true     | ...     |\n" +
		"| **name** | str  | false    | anon    |\n"
	if got != want {
		t.Fatalf("unexpected expansion:\n%s", got)
	}
}

func TestExpandMissingModel(t *testing.T) {
	_, err := docdantic.Expand("!docdantic: pkg.Missing\n", orchestrator.WithRegistry(exampleRegistry(t)))
	var resolution *registry.ResolutionError
	if !errors.As(err, &resolution) {
		t.Fatalf("expected ResolutionError, got %v", err)
	}
}

func TestConvert(t *testing.T) {
	source := []byte("# API\n\n!docdantic: pkg.User\n  exclude: {User: [name]}\n")
	out, err := docdantic.Convert(source, orchestrator.WithRegistry(exampleRegistry(t)))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	html := string(out)
	for _, want := range []string{`<h1 id="api">API</h1>`, `<h3 id="user">User</h3>`, "<strong>id</strong>"} {
		if !strings.Contains(html, want) {
			t.Fatalf("output missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<strong>name</strong>") {
		t.Fatalf("excluded field rendered:\n%s", html)
	}
}

func TestNewLoaderReadsFileSystem(t *testing.T) {
	files := fstest.MapFS{
		"models.json": {Data: []byte(`{"$defs": {"User": {"type": "object", "properties": {"id": {"type": "integer"}}}}}`)},
	}
	loader := docdantic.NewLoader(docdantic.WithFileSystem(files))

	orch := docdantic.NewOrchestrator(orchestrator.WithLoader(loader))
	paths, err := orch.Load(context.Background(), orchestrator.LoadRequest{
		Namespace: "fs",
		Source:    schema.SourceFromFS("models.json"),
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(paths) != 1 || paths[0] != "fs.User" {
		t.Fatalf("unexpected paths %v", paths)
	}
}
