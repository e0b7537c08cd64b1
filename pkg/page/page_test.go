package page_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-docdantic/pkg/page"
	"github.com/goliatone/go-docdantic/pkg/testsupport"
)

func TestRenderDefaultLayout(t *testing.T) {
	renderer, err := page.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var buf bytes.Buffer
	err = renderer.Render(&buf, page.Page{
		Title: "  Models ",
		Body:  []byte("<h3 id=\"user\">User</h3>\n<table>\n<tr>\n<td><a href=\"#user\">User</a></td>\n</tr>\n</table>\n"),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "page.golden.html"), buf.String())
}

func TestRenderSanitisesBody(t *testing.T) {
	renderer, err := page.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var buf bytes.Buffer
	err = renderer.Render(&buf, page.Page{
		Title: "x",
		Body:  []byte(`<p onclick="steal()">hi</p><script>alert(1)</script>`),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>") || strings.Contains(out, "onclick") {
		t.Fatalf("unsafe markup survived:\n%s", out)
	}
	if !strings.Contains(out, "<p>hi</p>") {
		t.Fatalf("expected paragraph to survive:\n%s", out)
	}
}

func TestRenderCustomTemplate(t *testing.T) {
	files := fstest.MapFS{
		"bare.tpl": {Data: []byte("[{{ title }}|{{ body|safe }}|{{ site }}]")},
	}
	renderer, err := page.New(
		page.WithTemplates(files),
		page.WithTemplate("bare.tpl"),
		page.WithPolicy(bluemonday.StrictPolicy()),
		page.WithGlobalData(map[string]any{"site": "docs"}),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, page.Page{Title: "T", Body: []byte("<b>bold</b>")}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := buf.String(), "[T|bold|docs]"; got != want {
		t.Fatalf("unexpected output: want %q got %q", want, got)
	}
}

func TestRenderMissingTemplate(t *testing.T) {
	renderer, err := page.New(page.WithTemplate("missing.tpl"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, page.Page{}); err == nil {
		t.Fatal("expected missing template error")
	}
}
