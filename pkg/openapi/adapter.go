package openapi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docdantic/pkg/model"
	"github.com/goliatone/go-docdantic/pkg/schema"
)

const componentRefPrefix = "#/components/schemas/"

// Adapter converts OpenAPI 3 `components.schemas` into declarations.
type Adapter struct {
	// AllowExternalRefs lets kin-openapi follow refs into other documents.
	AllowExternalRefs bool
}

var _ schema.FormatAdapter = Adapter{}

// Name identifies the adapter.
func (Adapter) Name() string {
	return "openapi"
}

// Detect reports whether raw looks like an OpenAPI 3 document.
func (Adapter) Detect(_ schema.Source, raw []byte) bool {
	text := string(raw)
	return strings.Contains(text, "openapi") && (strings.Contains(text, "components") || strings.Contains(text, "paths"))
}

// Declarations loads doc with kin-openapi and converts every component
// schema. Components are returned sorted by name; properties follow the order
// in which they appear in the document.
func (a Adapter) Declarations(ctx context.Context, namespace string, doc schema.Document) ([]model.Declaration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: a.AllowExternalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: %s: load document: %w", doc.Location(), err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, nil
	}

	order, err := propertyOrder(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: %s: %w", doc.Location(), err)
	}

	conv := converter{
		namespace:  namespace,
		components: spec.Components.Schemas,
		order:      order,
	}

	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]model.Declaration, 0, len(names))
	for _, name := range names {
		ref := spec.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("openapi: component %q has no schema", name)
		}
		out = append(out, conv.declaration(name, ref.Value))
	}
	return out, nil
}

type converter struct {
	namespace  string
	components openapi3.Schemas
	order      map[string][]string
}

func (c converter) declaration(name string, s *openapi3.Schema) model.Declaration {
	decl := model.Declaration{
		Name:        name,
		Kind:        kindOf(s),
		Description: strings.TrimSpace(s.Description),
	}
	if decl.Kind != model.KindModel {
		return decl
	}

	required := make(map[string]struct{}, len(s.Required))
	for _, item := range s.Required {
		required[item] = struct{}{}
	}

	for _, propName := range orderedNames(s.Properties, c.order[name]) {
		prop := s.Properties[propName]
		_, isRequired := required[propName]
		field := model.Field{
			Name:     propName,
			Type:     c.typeOf(prop),
			Required: isRequired,
		}
		if prop != nil && prop.Value != nil {
			field.Description = strings.TrimSpace(prop.Value.Description)
			if prop.Value.Default != nil {
				field.Default = prop.Value.Default
				field.HasDefault = true
			}
		}
		decl.Fields = append(decl.Fields, field)
	}
	return decl
}

func (c converter) typeOf(ref *openapi3.SchemaRef) model.Type {
	if ref == nil {
		return model.Named("any")
	}
	if ref.Ref != "" {
		t := c.refType(ref.Ref)
		if ref.Value != nil && ref.Value.Nullable {
			return model.OptionalOf(t)
		}
		return t
	}
	s := ref.Value
	if s == nil {
		return model.Named("any")
	}

	t := c.baseType(s)
	nullable := s.Nullable || (s.Type != nil && s.Type.Includes(openapi3.TypeNull))
	if nullable && t.Kind != model.TypeOptional {
		return model.OptionalOf(t)
	}
	return t
}

func (c converter) baseType(s *openapi3.Schema) model.Type {
	if variants := nonEmpty(s.AnyOf, s.OneOf); len(variants) > 0 {
		var (
			types    []model.Type
			nullable bool
		)
		for _, variant := range variants {
			if variant != nil && variant.Ref == "" && variant.Value != nil && variant.Value.Type != nil && variant.Value.Type.Is(openapi3.TypeNull) {
				nullable = true
				continue
			}
			types = append(types, c.typeOf(variant))
		}
		if len(types) == 0 {
			return model.Named(openapi3.TypeNull)
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

	types := schemaTypes(s)
	switch len(types) {
	case 0:
		switch {
		case len(s.Properties) > 0 || len(s.AllOf) > 1:
			return model.Named(openapi3.TypeObject)
		case len(s.Enum) > 0:
			return model.Named("enum")
		default:
			return model.Named("any")
		}
	case 1:
		return c.singleType(types[0], s)
	default:
		variants := make([]model.Type, 0, len(types))
		for _, typ := range types {
			variants = append(variants, c.singleType(typ, s))
		}
		return model.UnionOf(variants...)
	}
}

func (c converter) singleType(typ string, s *openapi3.Schema) model.Type {
	switch typ {
	case openapi3.TypeArray:
		return model.ListOf(c.typeOf(s.Items))
	case openapi3.TypeObject:
		if len(s.Properties) == 0 {
			if s.AdditionalProperties.Schema != nil {
				return model.MapOf(model.Named(openapi3.TypeString), c.typeOf(s.AdditionalProperties.Schema))
			}
			if s.AdditionalProperties.Has != nil && *s.AdditionalProperties.Has {
				return model.MapOf(model.Named(openapi3.TypeString), model.Named("any"))
			}
		}
		return model.Named(openapi3.TypeObject)
	default:
		return model.NamedFormat(typ, s.Format)
	}
}

func (c converter) refType(ref string) model.Type {
	if !strings.HasPrefix(ref, componentRefPrefix) {
		if idx := strings.LastIndex(ref, "/"); idx >= 0 && idx < len(ref)-1 {
			return model.Named(ref[idx+1:])
		}
		return model.Named(ref)
	}
	name := strings.TrimPrefix(ref, componentRefPrefix)
	if target, ok := c.components[name]; ok && target != nil && target.Value != nil && kindOf(target.Value) == model.KindModel {
		return model.ModelRef(model.JoinPath(c.namespace, name))
	}
	return model.Named(name)
}

func kindOf(s *openapi3.Schema) model.Kind {
	switch {
	case (s.Type != nil && s.Type.Includes(openapi3.TypeObject)) || len(s.Properties) > 0:
		return model.KindModel
	case len(s.Enum) > 0:
		return model.KindEnum
	default:
		return model.KindScalar
	}
}

func schemaTypes(s *openapi3.Schema) []string {
	if s.Type == nil {
		return nil
	}
	var out []string
	for _, typ := range s.Type.Slice() {
		if typ == openapi3.TypeNull {
			continue
		}
		out = append(out, typ)
	}
	return out
}

func nonEmpty(groups ...openapi3.SchemaRefs) openapi3.SchemaRefs {
	for _, group := range groups {
		if len(group) > 0 {
			return group
		}
	}
	return nil
}
