package jsonschema

import (
	"fmt"
	"reflect"

	js "github.com/invopop/jsonschema"

	"github.com/goliatone/go-docdantic/pkg/model"
)

// Reflect derives declarations from Go values using the default reflector.
// Fields are required unless their json tag carries omitempty; defaults come
// from `jsonschema:"default=..."` tags.
func Reflect(namespace string, values ...any) ([]model.Declaration, error) {
	return ReflectWith(&js.Reflector{}, namespace, values...)
}

// ReflectWith derives declarations using a caller-configured reflector. Every
// struct reachable from values becomes a declaration named after its Go type.
func ReflectWith(reflector *js.Reflector, namespace string, values ...any) ([]model.Declaration, error) {
	if reflector == nil {
		return nil, fmt.Errorf("jsonschema: reflector is nil")
	}

	defs := make(map[string]*js.Schema)
	for _, value := range values {
		if value == nil {
			return nil, fmt.Errorf("jsonschema: cannot reflect nil value")
		}
		root := reflector.Reflect(value)
		if root == nil {
			return nil, fmt.Errorf("jsonschema: reflect %T: empty schema", value)
		}
		for name, def := range root.Definitions {
			if _, exists := defs[name]; !exists && def != nil {
				defs[name] = def
			}
		}
		if root.Ref == "" && kindOf(root) == model.KindModel {
			name := typeName(value)
			if name == "" {
				return nil, fmt.Errorf("jsonschema: reflect %T: anonymous types need a name", value)
			}
			if _, exists := defs[name]; !exists {
				defs[name] = root
			}
		}
	}
	return convertDefinitions(namespace, defs)
}

func typeName(value any) string {
	t := reflect.TypeOf(value)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
