package openapi

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docdantic/pkg/model"
	"github.com/goliatone/go-docdantic/pkg/schema"
)

func loadDoc(t *testing.T, name string) schema.Document {
	t.Helper()
	path := filepath.Join("testdata", name)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return schema.MustNewDocument(schema.SourceFromFile(path), raw)
}

func TestAdapterConvertsComponents(t *testing.T) {
	decls, err := Adapter{}.Declarations(context.Background(), "cat", loadDoc(t, "catalog.json"))
	if err != nil {
		t.Fatalf("declarations: %v", err)
	}
	if len(decls) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(decls))
	}
	if decls[0].Name != "Category" || decls[0].Kind != model.KindEnum {
		t.Fatalf("unexpected first declaration %+v", decls[0])
	}

	money := decls[1]
	wantMoney := model.Declaration{
		Name: "Money",
		Kind: model.KindModel,
		Fields: []model.Field{
			{Name: "currency", Type: model.Named("string"), Default: "EUR", HasDefault: true},
			{Name: "amount", Type: model.NamedFormat("integer", "int64")},
		},
	}
	if diff := cmp.Diff(wantMoney, money); diff != "" {
		t.Fatalf("money mismatch (-want +got):\n%s", diff)
	}

	product := decls[2]
	wantTypes := []struct {
		name     string
		typ      model.Type
		required bool
	}{
		{name: "sku", typ: model.Named("string"), required: true},
		{name: "price", typ: model.ModelRef("cat.Money"), required: true},
		{name: "tags", typ: model.ListOf(model.Named("string"))},
		{name: "discount", typ: model.OptionalOf(model.Named("number"))},
		{name: "attributes", typ: model.MapOf(model.Named("string"), model.Named("integer"))},
		{name: "extra", typ: model.MapOf(model.Named("string"), model.Named("any"))},
		{name: "variant", typ: model.UnionOf(model.ModelRef("cat.Product"), model.Named("string"))},
		{name: "category", typ: model.Named("Category")},
		{name: "parent", typ: model.OptionalOf(model.ModelRef("cat.Product"))},
	}
	if len(product.Fields) != len(wantTypes) {
		t.Fatalf("expected %d fields, got %d", len(wantTypes), len(product.Fields))
	}
	for i, want := range wantTypes {
		field := product.Fields[i]
		if field.Name != want.name {
			t.Fatalf("field %d: expected %q, got %q (document order lost)", i, want.name, field.Name)
		}
		if field.Required != want.required {
			t.Fatalf("%s: required = %v", field.Name, field.Required)
		}
		if diff := cmp.Diff(want.typ, field.Type); diff != "" {
			t.Fatalf("%s type mismatch (-want +got):\n%s", field.Name, diff)
		}
	}

	tags, _ := product.Field("tags")
	if !tags.HasDefault {
		t.Fatal("expected tags default")
	}
}

func TestAdapterNullableYAML(t *testing.T) {
	raw := []byte(`openapi: 3.0.3
info: {title: x, version: "1"}
paths: {}
components:
  schemas:
    Pet:
      type: object
      properties:
        tag:
          type: string
          nullable: true
        id:
          type: integer
`)
	doc := schema.MustNewDocument(schema.SourceFromFS("pets.yaml"), raw)
	decls, err := Adapter{}.Declarations(context.Background(), "pets", doc)
	if err != nil {
		t.Fatalf("declarations: %v", err)
	}
	pet := decls[0]
	if pet.Fields[0].Name != "tag" || pet.Fields[1].Name != "id" {
		t.Fatalf("property order lost: %+v", pet.Fields)
	}
	if diff := cmp.Diff(model.OptionalOf(model.Named("string")), pet.Fields[0].Type); diff != "" {
		t.Fatalf("nullable mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapterWithoutComponents(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFS("empty.yaml"), []byte("openapi: 3.0.3\ninfo: {title: x, version: \"1\"}\npaths: {}\n"))
	decls, err := Adapter{}.Declarations(context.Background(), "x", doc)
	if err != nil {
		t.Fatalf("declarations: %v", err)
	}
	if len(decls) != 0 {
		t.Fatalf("expected no declarations, got %+v", decls)
	}
}

func TestAdapterHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Adapter{}).Declarations(ctx, "cat", loadDoc(t, "catalog.json")); err == nil {
		t.Fatal("expected context error")
	}
}

func TestOrderedNamesFallsBackToAlphabetical(t *testing.T) {
	got := orderedNames(openapi3.Schemas{"b": nil, "a": nil, "c": nil}, []string{"c", "missing"})
	if diff := cmp.Diff([]string{"c", "a", "b"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}
