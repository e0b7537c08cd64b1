package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-docdantic/pkg/schema"
)

func TestLoaderReadsFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.json")
	if err := os.WriteFile(path, []byte(`{"$defs": {}}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(Options{}).Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := string(doc.Raw()); got != `{"$defs": {}}` {
		t.Fatalf("unexpected payload %q", got)
	}
	if !doc.IsJSON() {
		t.Fatalf("expected payload to be detected as JSON")
	}
}

func TestLoaderReadsFS(t *testing.T) {
	files := fstest.MapFS{
		"schemas/user.yaml": {Data: []byte("title: User\n")},
	}

	doc, err := New(Options{FileSystem: files}).Load(context.Background(), schema.SourceFromFS("schemas/user.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.IsJSON() {
		t.Fatalf("expected YAML payload")
	}
	if doc.Location() != "schemas/user.yaml" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoaderRejectsHTTPByDefault(t *testing.T) {
	src, err := schema.SourceFromURL("https://example.com/openapi.json")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	_, err = New(Options{}).Load(context.Background(), src)
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected http disabled error, got %v", err)
	}
}

func TestLoaderFetchesHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"openapi": "3.0.0"}`))
	}))
	defer server.Close()

	l := New(Options{HTTPClient: server.Client()})

	src, err := schema.SourceFromURL(server.URL + "/openapi.json")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	doc, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.Contains(string(doc.Raw()), "openapi") {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	missing, err := schema.SourceFromURL(server.URL + "/missing")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if _, err := l.Load(context.Background(), missing); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestLoaderRejectsEmptyDocuments(t *testing.T) {
	files := fstest.MapFS{"empty.json": {Data: []byte("  \n")}}
	if _, err := New(Options{FileSystem: files}).Load(context.Background(), schema.SourceFromFS("empty.json")); err == nil {
		t.Fatalf("expected empty document error")
	}
}
