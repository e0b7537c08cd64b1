package directive

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docdantic/pkg/model"
)

func TestMatch(t *testing.T) {
	cases := []struct {
		line   string
		target string
		ok     bool
	}{
		{line: "!docdantic: pkg.User", target: "pkg.User", ok: true},
		{line: "!docdantic:pkg.User  \r\n", target: "pkg.User", ok: true},
		{line: "!docdantic:", target: "", ok: true},
		{line: " !docdantic: pkg.User", ok: false},
		{line: "text !docdantic: pkg.User", ok: false},
		{line: "!docdantic pkg.User", ok: false},
	}
	for _, tc := range cases {
		target, ok := Match(tc.line)
		if ok != tc.ok || target != tc.target {
			t.Fatalf("Match(%q) = %q, %v; want %q, %v", tc.line, target, ok, tc.target, tc.ok)
		}
	}
}

func TestIsConfigLine(t *testing.T) {
	for line, want := range map[string]bool{
		"\texclude:":  true,
		"  exclude:":  true,
		"    exclude": true,
		" exclude:":   false,
		"exclude:":    false,
		"":            false,
		"   ":         false,
		"\t \t":      false,
	} {
		if got := IsConfigLine(line); got != want {
			t.Fatalf("IsConfigLine(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestParseWithoutConfigEqualsEmptyExclude(t *testing.T) {
	bare, last, err := Parse([]string{"!docdantic: pkg.User", "next"}, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if last != 0 {
		t.Fatalf("expected no consumed config lines, got last=%d", last)
	}

	explicit, _, err := Parse([]string{"!docdantic: pkg.User", `    {"exclude": {}}`}, 0)
	if err != nil {
		t.Fatalf("parse explicit: %v", err)
	}
	if len(bare.Config.Exclude) != 0 || len(explicit.Config.Exclude) != 0 {
		t.Fatalf("expected empty exclusions, got %v and %v", bare.Config.Exclude, explicit.Config.Exclude)
	}
}

func TestParseConsumesConfigBlock(t *testing.T) {
	lines := []string{
		"intro",
		"!docdantic: pkg.User",
		"    exclude:",
		"      User:",
		"        - name",
		"      Team: [members]",
		"after",
	}
	d, last, err := Parse(lines, 1)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if last != 5 {
		t.Fatalf("expected last consumed line 5, got %d", last)
	}
	want := Directive{
		Target: "pkg.User",
		Line:   1,
		Config: Config{Exclude: model.Exclusions{"User": {"name"}, "Team": {"members"}}},
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Fatalf("directive mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigJSONLiteral(t *testing.T) {
	cfg, err := ParseConfig([]string{
		"    {",
		`      "exclude": {"User": ["name", "email"]}`,
		"    }",
	})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if diff := cmp.Diff(model.Exclusions{"User": {"name", "email"}}, cfg.Exclude); diff != "" {
		t.Fatalf("exclude mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigTabs(t *testing.T) {
	cfg, err := ParseConfig([]string{"\texclude:", "\t  User: [name]"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if !cfg.Exclude.Excludes("User", "name") {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseConfigErrors(t *testing.T) {
	cases := map[string][]string{
		"invalid syntax": {`  {"exclude": {"User": ["name"]}`},
		"unknown key":    {"  include: {User: [name]}"},
		"wrong shape":    {"  exclude: [name]"},
		"two documents":  {"  exclude: {}", "  ---", "  exclude: {}"},
	}
	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig(lines)
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected SyntaxError, got %v", err)
			}
		})
	}
}

func TestParseConfigEmpty(t *testing.T) {
	for _, lines := range [][]string{nil, {"   ", ""}} {
		cfg, err := ParseConfig(lines)
		if err != nil {
			t.Fatalf("parse config %q: %v", lines, err)
		}
		if cfg.Exclude != nil {
			t.Fatalf("expected zero config, got %+v", cfg)
		}
	}
}

func TestParseSyntaxErrorCarriesLocation(t *testing.T) {
	lines := []string{"# title", "!docdantic: pkg.User", "  exclude: [oops"}
	d, last, err := Parse(lines, 1)
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if syntaxErr.Target != "pkg.User" || syntaxErr.Line != 3 {
		t.Fatalf("unexpected location %+v", syntaxErr)
	}
	if d.Target != "pkg.User" || last != 2 {
		t.Fatalf("unexpected directive %+v last=%d", d, last)
	}
}

func TestParseRejectsNonDirective(t *testing.T) {
	if _, _, err := Parse([]string{"plain"}, 0); err == nil {
		t.Fatal("expected error for non-directive line")
	}
	if _, _, err := Parse(nil, 0); err == nil {
		t.Fatal("expected out of range error")
	}
}
