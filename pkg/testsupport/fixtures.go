package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docdantic/pkg/model"
	"github.com/goliatone/go-docdantic/pkg/registry"
	"github.com/goliatone/go-docdantic/pkg/schema"
)

// LoadDocument reads a fixture and builds a schema.Document using a file
// source. Testing helpers fail the test on error to keep callers concise.
func LoadDocument(t *testing.T, path string) schema.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T, so
// setup functions can share fixtures.
func LoadDocumentFromPath(path string) (schema.Document, error) {
	if path == "" {
		return schema.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(path), data)
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// UserRegistry returns a registry holding the canonical example models under
// the "app" namespace: User {id: int, name: str = "anon"}, Team with a list
// of users, and a self-referential Node.
func UserRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()
	if err := reg.Register("app", ExampleDeclarations()...); err != nil {
		t.Fatalf("register fixtures: %v", err)
	}
	return reg
}

// ExampleDeclarations returns the declarations behind UserRegistry.
func ExampleDeclarations() []model.Declaration {
	return []model.Declaration{
		{
			Name: "User",
			Kind: model.KindModel,
			Fields: []model.Field{
				{Name: "id", Type: model.Named("int"), Required: true},
				{Name: "name", Type: model.Named("str"), Default: "anon", HasDefault: true},
			},
		},
		{
			Name: "Team",
			Kind: model.KindModel,
			Fields: []model.Field{
				{Name: "title", Type: model.Named("str"), Required: true},
				{Name: "members", Type: model.ListOf(model.ModelRef("app.User")), Required: true},
				{Name: "lead", Type: model.OptionalOf(model.ModelRef("app.User")), Default: nil, HasDefault: true},
			},
		},
		{
			Name: "Node",
			Kind: model.KindModel,
			Fields: []model.Field{
				{Name: "value", Type: model.Named("int"), Required: true},
				{Name: "children", Type: model.ListOf(model.ModelRef("app.Node")), Default: []any{}, HasDefault: true},
			},
		},
		{
			Name: "Role",
			Kind: model.KindEnum,
		},
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertGolden compares got against the golden file at path, rewriting the
// file instead when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path, got string) {
	t.Helper()
	if WriteMaybeGolden(t, path, []byte(got)) {
		return
	}
	want := MustReadGoldenString(t, path)
	if diff := CompareGolden(want, got); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// Lines splits text into lines without trailing newlines.
func Lines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
