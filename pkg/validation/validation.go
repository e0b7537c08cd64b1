package validation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-docdantic/pkg/model"
	"github.com/goliatone/go-docdantic/pkg/registry"
	"github.com/goliatone/go-docdantic/pkg/schema"
)

// Issue is one problem found in a declaration set.
type Issue struct {
	// Path is the qualified declaration path, or a JSON pointer when the issue
	// comes from document conversion.
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	location := i.Path
	if i.Field != "" {
		location += "." + i.Field
	}
	if location == "" {
		return i.Message
	}
	return location + ": " + i.Message
}

// Result collects the outcome of a check.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

func (r *Result) add(issue Issue) {
	r.Valid = false
	r.Issues = append(r.Issues, issue)
}

// ValidateDocument converts doc with adapter and reports conversion errors,
// invalid declarations and model references that the document itself does
// not define.
func ValidateDocument(ctx context.Context, adapter schema.FormatAdapter, namespace string, doc schema.Document) Result {
	result := Result{Valid: true}
	if adapter == nil {
		result.add(Issue{Message: "adapter is required"})
		return result
	}

	decls, err := adapter.Declarations(ctx, namespace, doc)
	if err != nil {
		result.add(issueFromError(err))
		return result
	}

	reg := registry.New()
	for _, decl := range decls {
		if err := decl.Validate(); err != nil {
			result.add(Issue{Path: model.JoinPath(namespace, decl.Name), Message: trimPrefixes(err.Error())})
			continue
		}
		if err := reg.Register(namespace, decl); err != nil {
			result.add(Issue{Path: model.JoinPath(namespace, decl.Name), Message: trimPrefixes(err.Error())})
		}
	}
	for _, issue := range ValidateRegistry(reg).Issues {
		result.add(issue)
	}
	return result
}

// ValidateRegistry reports every field whose type references a model that
// does not resolve. Rendering such a model would fail.
func ValidateRegistry(reg *registry.Registry) Result {
	result := Result{Valid: true}
	if reg == nil {
		result.add(Issue{Message: "registry is required"})
		return result
	}

	for _, path := range reg.Models() {
		decl, err := reg.Lookup(path)
		if err != nil {
			result.add(Issue{Path: path, Message: trimPrefixes(err.Error())})
			continue
		}
		for _, field := range decl.Fields {
			for _, ref := range field.Type.Models() {
				if _, err := reg.Resolve(ref); err != nil {
					result.add(Issue{
						Path:    path,
						Field:   field.Name,
						Message: describeRefError(ref, err),
					})
				}
			}
		}
	}
	sort.SliceStable(result.Issues, func(i, j int) bool {
		if result.Issues[i].Path != result.Issues[j].Path {
			return result.Issues[i].Path < result.Issues[j].Path
		}
		return result.Issues[i].Field < result.Issues[j].Field
	})
	return result
}

func describeRefError(ref string, err error) string {
	var typeErr *registry.TypeError
	switch {
	case errors.As(err, &typeErr):
		return fmt.Sprintf("references %s, a %s declaration", ref, typeErr.Kind)
	case errors.Is(err, registry.ErrNamespaceNotFound):
		return fmt.Sprintf("references %s in an unregistered namespace", ref)
	default:
		return fmt.Sprintf("references unregistered model %s", ref)
	}
}

func issueFromError(err error) Issue {
	if err == nil {
		return Issue{Message: "unknown error"}
	}

	msg := strings.TrimSpace(err.Error())
	path := extractJSONPointer(msg)
	if path != "" {
		msg = strings.Replace(msg, " at "+path, "", 1)
	}
	return Issue{
		Path:    path,
		Field:   fieldPathFromPointer(path),
		Message: trimPrefixes(msg),
	}
}

func trimPrefixes(msg string) string {
	for _, prefix := range []string{"jsonschema: ", "openapi: ", "registry: ", "model: "} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	return strings.TrimSpace(msg)
}

func extractJSONPointer(message string) string {
	if message == "" {
		return ""
	}
	if idx := strings.LastIndex(message, " at "); idx >= 0 {
		candidate := strings.TrimSpace(message[idx+4:])
		if strings.HasPrefix(candidate, "#/") {
			return trimPointer(candidate)
		}
	}
	if idx := strings.LastIndex(message, "#/"); idx >= 0 {
		candidate := strings.Fields(message[idx:])[0]
		return trimPointer(candidate)
	}
	return ""
}

func trimPointer(pointer string) string {
	trimmed := strings.TrimRight(pointer, ".)];,\"'")
	return strings.TrimSpace(trimmed)
}

// fieldPathFromPointer maps a JSON pointer into a schema document onto the
// dotted field path it names, e.g. #/$defs/User/properties/name to name.
func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for idx := 0; idx < len(parts); idx++ {
		segment := unescapePointer(parts[idx])
		switch segment {
		case "properties":
			if idx+1 < len(parts) {
				out = append(out, unescapePointer(parts[idx+1]))
				idx++
			}
		case "items":
			out = append(out, "items")
		case "oneOf", "anyOf", "allOf":
			if idx+1 < len(parts) && isNumeric(parts[idx+1]) {
				idx++
			}
		case "$defs", "definitions", "schemas":
			if idx+1 < len(parts) {
				idx++
			}
		case "components", "":
		default:
			out = append(out, segment)
		}
	}
	return strings.Join(out, ".")
}

func unescapePointer(segment string) string {
	segment = strings.ReplaceAll(segment, "~1", "/")
	return strings.ReplaceAll(segment, "~0", "~")
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
