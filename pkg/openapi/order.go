package openapi

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// propertyOrder reads the raw document (JSON is valid YAML) and records the
// order in which each component lists its properties. kin-openapi stores
// properties in a map, which loses that order.
func propertyOrder(raw []byte) (map[string][]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("read property order: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil
	}

	schemas := mappingValue(mappingValue(root.Content[0], "components"), "schemas")
	if schemas == nil || schemas.Kind != yaml.MappingNode {
		return nil, nil
	}

	order := make(map[string][]string)
	for i := 0; i+1 < len(schemas.Content); i += 2 {
		name := schemas.Content[i].Value
		props := mappingValue(schemas.Content[i+1], "properties")
		if props == nil || props.Kind != yaml.MappingNode {
			continue
		}
		keys := make([]string, 0, len(props.Content)/2)
		for j := 0; j+1 < len(props.Content); j += 2 {
			keys = append(keys, props.Content[j].Value)
		}
		order[name] = keys
	}
	return order, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			value := node.Content[i+1]
			if value.Kind == yaml.AliasNode {
				return value.Alias
			}
			return value
		}
	}
	return nil
}

// orderedNames lists the keys of props in document order, appending any key
// the hint does not know about in alphabetical order.
func orderedNames(props openapi3.Schemas, hint []string) []string {
	out := make([]string, 0, len(props))
	seen := make(map[string]struct{}, len(props))
	for _, name := range hint {
		if _, ok := props[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	var rest []string
	for name := range props {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
