package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-docdantic/pkg/model"
)

// FormatType renders a field type for the Type column. Model references become
// links to the section rendered for that model.
func FormatType(t model.Type) string {
	switch t.Kind {
	case model.TypeModel:
		return ModelLink(t.Name)
	case model.TypeList:
		return "List[" + formatElem(t.Elem) + "]"
	case model.TypeMap:
		return "Map[" + formatElem(t.Key) + ", " + formatElem(t.Elem) + "]"
	case model.TypeOptional:
		return "Optional[" + formatElem(t.Elem) + "]"
	case model.TypeUnion:
		parts := make([]string, 0, len(t.Variants))
		for _, variant := range t.Variants {
			parts = append(parts, FormatType(variant))
		}
		return "Union[" + strings.Join(parts, ", ") + "]"
	default:
		name := t.Name
		if name == "" {
			name = "any"
		}
		if t.Format != "" {
			return name + " (" + t.Format + ")"
		}
		return name
	}
}

func formatElem(t *model.Type) string {
	if t == nil {
		return "any"
	}
	return FormatType(*t)
}

// ModelLink returns a Markdown link to the heading of the named model.
func ModelLink(name string) string {
	return "[" + name + "](#" + Slug(name) + ")"
}

// Slug mirrors the anchor generated for a model heading.
func Slug(name string) string {
	return strings.ToLower(name)
}

func (r *Renderer) formatDefault(field model.Field) string {
	if !field.HasDefault {
		return r.opts.Placeholder
	}
	return FormatValue(field.Default)
}

// FormatValue prints a default value in its literal form.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(payload)
}
