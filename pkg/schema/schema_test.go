package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSource(t *testing.T) {
	cases := []struct {
		raw      string
		kind     SourceKind
		location string
	}{
		{raw: "specs/./petstore.yaml", kind: SourceKindFile, location: "specs/petstore.yaml"},
		{raw: " https://example.com/openapi.json ", kind: SourceKindURL, location: "https://example.com/openapi.json"},
		{raw: "http://localhost:8080/schema", kind: SourceKindURL, location: "http://localhost:8080/schema"},
	}
	for _, tc := range cases {
		src, err := ParseSource(tc.raw)
		if err != nil {
			t.Fatalf("ParseSource(%q): %v", tc.raw, err)
		}
		if src.Kind() != tc.kind || src.Location() != tc.location {
			t.Fatalf("ParseSource(%q) = %s %s", tc.raw, src.Kind(), src.Location())
		}
	}

	if _, err := ParseSource("   "); err == nil {
		t.Fatal("expected error for empty location")
	}
	if _, err := SourceFromURL(""); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestDocumentCopiesPayload(t *testing.T) {
	raw := []byte(`{"type":"object"}`)
	doc, err := NewDocument(SourceFromFS("schema.json"), raw)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	raw[0] = 'x'
	got := doc.Raw()
	if diff := cmp.Diff(`{"type":"object"}`, string(got)); diff != "" {
		t.Fatalf("document aliased input (-want +got):\n%s", diff)
	}
	got[0] = 'y'
	if doc.Raw()[0] != '{' {
		t.Fatal("Raw returned shared storage")
	}
	if !doc.IsJSON() {
		t.Fatal("expected JSON document")
	}
	if doc.Location() != "schema.json" || doc.Source().Kind() != SourceKindFS {
		t.Fatalf("unexpected origin %s", doc.Location())
	}
}

func TestDocumentValidation(t *testing.T) {
	if _, err := NewDocument(nil, []byte("a: 1")); err == nil {
		t.Fatal("expected error for nil source")
	}
	if _, err := NewDocument(SourceFromFile("a.yaml"), []byte(" \n")); err == nil {
		t.Fatal("expected error for blank payload")
	}
	yamlDoc := MustNewDocument(SourceFromFile("a.yaml"), []byte("openapi: 3.0.0\n"))
	if yamlDoc.IsJSON() {
		t.Fatal("YAML document reported as JSON")
	}
	if (Document{}).Location() != "" {
		t.Fatal("zero document should have no location")
	}
}
