package model

// TypeKind enumerates the nodes of a field type tree.
type TypeKind string

const (
	TypeNamed    TypeKind = "named"
	TypeModel    TypeKind = "model"
	TypeList     TypeKind = "list"
	TypeMap      TypeKind = "map"
	TypeOptional TypeKind = "optional"
	TypeUnion    TypeKind = "union"
)

// Type is a node in a field type tree. Named types carry a display name and an
// optional format, model types carry the qualified path of the referenced
// declaration, wrappers carry their inner types.
type Type struct {
	Kind     TypeKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Format   string   `json:"format,omitempty"`
	Ref      string   `json:"ref,omitempty"`
	Key      *Type    `json:"key,omitempty"`
	Elem     *Type    `json:"elem,omitempty"`
	Variants []Type   `json:"variants,omitempty"`
}

// Named returns a scalar or otherwise opaque named type.
func Named(name string) Type {
	return Type{Kind: TypeNamed, Name: name}
}

// NamedFormat returns a named type annotated with a format such as date-time.
func NamedFormat(name, format string) Type {
	return Type{Kind: TypeNamed, Name: name, Format: format}
}

// ModelRef returns a reference to the model registered under path.
func ModelRef(path string) Type {
	return Type{Kind: TypeModel, Name: NameFromPath(path), Ref: path}
}

// ListOf wraps elem in a list.
func ListOf(elem Type) Type {
	return Type{Kind: TypeList, Elem: &elem}
}

// MapOf returns a map from key to elem.
func MapOf(key, elem Type) Type {
	return Type{Kind: TypeMap, Key: &key, Elem: &elem}
}

// OptionalOf marks elem as nullable.
func OptionalOf(elem Type) Type {
	return Type{Kind: TypeOptional, Elem: &elem}
}

// UnionOf groups alternatives. A single variant collapses to itself.
func UnionOf(variants ...Type) Type {
	if len(variants) == 1 {
		return variants[0]
	}
	return Type{Kind: TypeUnion, Variants: append([]Type(nil), variants...)}
}

// Models returns the qualified paths of every model referenced by the type
// tree, in depth-first order, without duplicates.
func (t Type) Models() []string {
	var out []string
	seen := make(map[string]struct{})
	t.walk(func(node Type) {
		if node.Kind != TypeModel || node.Ref == "" {
			return
		}
		if _, ok := seen[node.Ref]; ok {
			return
		}
		seen[node.Ref] = struct{}{}
		out = append(out, node.Ref)
	})
	return out
}

func (t Type) walk(visit func(Type)) {
	visit(t)
	if t.Key != nil {
		t.Key.walk(visit)
	}
	if t.Elem != nil {
		t.Elem.walk(visit)
	}
	for _, variant := range t.Variants {
		variant.walk(visit)
	}
}
