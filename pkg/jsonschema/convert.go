package jsonschema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	js "github.com/invopop/jsonschema"

	"github.com/goliatone/go-docdantic/pkg/model"
)

// Declarations converts the definitions of root (`$defs` and legacy
// `definitions`) into declarations registered under namespace. A root schema
// with its own properties becomes a declaration named after its title.
// Definitions are returned sorted by name; properties keep document order.
func Declarations(namespace string, root *js.Schema) ([]model.Declaration, error) {
	if root == nil {
		return nil, fmt.Errorf("jsonschema: schema is nil")
	}
	defs := collectDefinitions(root)
	return convertDefinitions(namespace, defs)
}

func collectDefinitions(root *js.Schema) map[string]*js.Schema {
	defs := make(map[string]*js.Schema, len(root.Definitions)+1)
	for name, def := range root.Definitions {
		if def != nil {
			defs[name] = def
		}
	}
	if root.Ref == "" && hasProperties(root) {
		if name := identifier(root.Title); name != "" {
			if _, exists := defs[name]; !exists {
				defs[name] = root
			}
		}
	}
	return defs
}

func convertDefinitions(namespace string, defs map[string]*js.Schema) ([]model.Declaration, error) {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	conv := converter{namespace: namespace, defs: defs}
	out := make([]model.Declaration, 0, len(names))
	for _, name := range names {
		decl, err := conv.declaration(name, defs[name])
		if err != nil {
			return nil, err
		}
		out = append(out, decl)
	}
	return out, nil
}

type converter struct {
	namespace string
	defs      map[string]*js.Schema
}

func (c converter) declaration(name string, s *js.Schema) (model.Declaration, error) {
	decl := model.Declaration{
		Name:        name,
		Kind:        kindOf(s),
		Description: strings.TrimSpace(s.Description),
	}
	if decl.Kind != model.KindModel {
		return decl, nil
	}

	required := make(map[string]struct{}, len(s.Required))
	for _, item := range s.Required {
		required[item] = struct{}{}
	}

	if s.Properties != nil {
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			prop := pair.Value
			if prop == nil {
				return model.Declaration{}, fmt.Errorf("jsonschema: %s.%s: property schema is nil", name, pair.Key)
			}
			_, isRequired := required[pair.Key]
			field := model.Field{
				Name:        pair.Key,
				Type:        c.typeOf(prop),
				Required:    isRequired,
				Description: strings.TrimSpace(prop.Description),
			}
			if prop.Default != nil {
				field.Default = prop.Default
				field.HasDefault = true
			}
			decl.Fields = append(decl.Fields, field)
		}
	}
	return decl, nil
}

func (c converter) typeOf(s *js.Schema) model.Type {
	if s == nil {
		return model.Named("any")
	}
	if s.Ref != "" {
		return c.refType(s.Ref)
	}

	if variants := nonEmpty(s.AnyOf, s.OneOf); len(variants) > 0 {
		var (
			types    []model.Type
			nullable bool
		)
		for _, variant := range variants {
			if variant != nil && variant.Type == "null" {
				nullable = true
				continue
			}
			types = append(types, c.typeOf(variant))
		}
		if len(types) == 0 {
			return model.Named("null")
		}
		t := model.UnionOf(types...)
		if nullable {
			return model.OptionalOf(t)
		}
		return t
	}
	if len(s.AllOf) == 1 {
		return c.typeOf(s.AllOf[0])
	}

	switch s.Type {
	case "array":
		return model.ListOf(c.typeOf(s.Items))
	case "object":
		if !hasProperties(s) && s.AdditionalProperties != nil {
			if allowed, isBool := booleanSchema(s.AdditionalProperties); !isBool || allowed {
				return model.MapOf(model.Named("string"), c.typeOf(s.AdditionalProperties))
			}
		}
		return model.NamedFormat("object", s.Format)
	case "":
		if len(s.Enum) > 0 {
			return model.Named("enum")
		}
		if len(s.AllOf) > 1 || hasProperties(s) {
			return model.Named("object")
		}
		return model.Named("any")
	default:
		return model.NamedFormat(s.Type, s.Format)
	}
}

func (c converter) refType(ref string) model.Type {
	name := refName(ref)
	if name == "" {
		return model.Named(ref)
	}
	if def, ok := c.defs[name]; ok && isLocalRef(ref) && kindOf(def) == model.KindModel {
		return model.ModelRef(model.JoinPath(c.namespace, name))
	}
	return model.Named(name)
}

func kindOf(s *js.Schema) model.Kind {
	switch {
	case s.Type == "object" || hasProperties(s):
		return model.KindModel
	case len(s.Enum) > 0:
		return model.KindEnum
	default:
		return model.KindScalar
	}
}

func hasProperties(s *js.Schema) bool {
	return s != nil && s.Properties != nil && s.Properties.Len() > 0
}

// booleanSchema reports whether s is the `true` or `false` schema.
func booleanSchema(s *js.Schema) (bool, bool) {
	if s == js.TrueSchema {
		return true, true
	}
	if s == js.FalseSchema {
		return false, true
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return false, false
	}
	switch string(payload) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

func isLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#/$defs/") || strings.HasPrefix(ref, "#/definitions/")
}

func refName(ref string) string {
	idx := strings.LastIndex(ref, "/")
	if idx < 0 || idx == len(ref)-1 {
		return ""
	}
	name := ref[idx+1:]
	name = strings.ReplaceAll(name, "~1", "/")
	return strings.ReplaceAll(name, "~0", "~")
}

func identifier(title string) string {
	return strings.Join(strings.Fields(title), "")
}

func nonEmpty(groups ...[]*js.Schema) []*js.Schema {
	for _, group := range groups {
		if len(group) > 0 {
			return group
		}
	}
	return nil
}
