package directive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docdantic/pkg/model"
)

// Marker prefixes a directive line.
const Marker = "!docdantic:"

// Config is the optional configuration block following a directive line.
type Config struct {
	Exclude model.Exclusions `yaml:"exclude" json:"exclude"`
}

// Directive is one occurrence of the marker in a document.
type Directive struct {
	// Target is the dotted registry path named after the marker.
	Target string
	// Config holds the decoded configuration block, zero when absent.
	Config Config
	// Line is the zero-based index of the marker line.
	Line int
}

// Match reports whether line is a directive line and returns its target.
func Match(line string) (string, bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, Marker) {
		return "", false
	}
	return strings.TrimSpace(line[len(Marker):]), true
}

// IsConfigLine reports whether line belongs to a configuration block: it must
// be indented by a tab or by at least two spaces and hold some text. A blank
// line ends the block.
func IsConfigLine(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	return strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "  ")
}

// Parse reads the directive at lines[start] together with the configuration
// lines that follow it. The returned index is the last line consumed.
func Parse(lines []string, start int) (Directive, int, error) {
	if start < 0 || start >= len(lines) {
		return Directive{}, start, fmt.Errorf("directive: line %d out of range", start+1)
	}
	target, ok := Match(lines[start])
	if !ok {
		return Directive{}, start, fmt.Errorf("directive: line %d is not a directive", start+1)
	}

	end := start
	for end+1 < len(lines) && IsConfigLine(lines[end+1]) {
		end++
	}

	d := Directive{Target: target, Line: start}
	cfg, err := ParseConfig(lines[start+1 : end+1])
	if err != nil {
		var syntaxErr *SyntaxError
		if errors.As(err, &syntaxErr) {
			syntaxErr.Target = target
			syntaxErr.Line = start + 2
		}
		return d, end, err
	}
	d.Config = cfg
	return d, end, nil
}

// ParseConfig decodes a configuration block. The block is dedented and read
// as YAML, so the JSON object literals used in existing documents parse as
// flow mappings. An empty block yields the zero Config.
func ParseConfig(lines []string) (Config, error) {
	body := dedent(lines)
	if strings.TrimSpace(body) == "" {
		return Config{}, nil
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(body)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, &SyntaxError{Err: err}
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Config{}, &SyntaxError{Err: errors.New("configuration block holds more than one document")}
	}
	return cfg, nil
}

func dedent(lines []string) string {
	cleaned := make([]string, 0, len(lines))
	prefix := ""
	prefixSet := false
	for _, line := range lines {
		line = strings.TrimRight(line, "\r\n")
		cleaned = append(cleaned, line)
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !prefixSet {
			prefix = indent
			prefixSet = true
			continue
		}
		prefix = commonPrefix(prefix, indent)
	}

	for i, line := range cleaned {
		if strings.TrimSpace(line) == "" {
			cleaned[i] = ""
			continue
		}
		cleaned[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(cleaned, "\n")
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
