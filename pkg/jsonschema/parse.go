package jsonschema

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	js "github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docdantic/pkg/model"
	"github.com/goliatone/go-docdantic/pkg/schema"
)

// Parse decodes a JSON or YAML JSON Schema document. Legacy `definitions`
// entries are merged into the `$defs` map.
func Parse(doc schema.Document) (*js.Schema, error) {
	raw := doc.Raw()
	if !doc.IsJSON() {
		converted, err := YAMLToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("jsonschema: %s: %w", doc.Location(), err)
		}
		raw = converted
	}

	var root js.Schema
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("jsonschema: %s: decode schema: %w", doc.Location(), err)
	}

	var legacy struct {
		Definitions map[string]*js.Schema `json:"definitions"`
	}
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("jsonschema: %s: decode definitions: %w", doc.Location(), err)
	}
	if len(legacy.Definitions) > 0 {
		if root.Definitions == nil {
			root.Definitions = make(js.Definitions, len(legacy.Definitions))
		}
		for name, def := range legacy.Definitions {
			if _, exists := root.Definitions[name]; !exists {
				root.Definitions[name] = def
			}
		}
	}
	return &root, nil
}

// YAMLToJSON converts a YAML document to JSON keeping mapping key order, which
// the ordered property maps rely on.
func YAMLToJSON(raw []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, &node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeJSON(buf, node.Content[0])
	case yaml.AliasNode:
		return writeJSON(buf, node.Alias)
	case yaml.MappingNode:
		pairs, err := mappingPairs(node, 0)
		if err != nil {
			return err
		}
		buf.WriteByte('{')
		for i, pair := range pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(pair.key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, pair.value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return fmt.Errorf("decode scalar at line %d: %w", node.Line, err)
		}
		payload, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode scalar at line %d: %w", node.Line, err)
		}
		buf.Write(payload)
		return nil
	default:
		return fmt.Errorf("unsupported yaml node kind %d", node.Kind)
	}
}

const maxMergeDepth = 32

type mappingPair struct {
	key   string
	value *yaml.Node
}

// mappingPairs flattens a mapping, expanding `<<` merge keys in place. Keys
// written in the mapping itself win over merged ones; earlier merge sources
// win over later ones.
func mappingPairs(node *yaml.Node, depth int) ([]mappingPair, error) {
	if depth > maxMergeDepth {
		return nil, fmt.Errorf("merge keys nested deeper than %d at line %d", maxMergeDepth, node.Line)
	}

	explicit := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if !isMergeKey(node.Content[i]) {
			explicit[node.Content[i].Value] = struct{}{}
		}
	}

	var out []mappingPair
	emitted := make(map[string]struct{}, len(explicit))
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, value := node.Content[i], node.Content[i+1]
		if !isMergeKey(keyNode) {
			emitted[keyNode.Value] = struct{}{}
			out = append(out, mappingPair{key: keyNode.Value, value: value})
			continue
		}

		sources, err := mergeSources(value)
		if err != nil {
			return nil, err
		}
		for _, src := range sources {
			merged, err := mappingPairs(src, depth+1)
			if err != nil {
				return nil, err
			}
			for _, pair := range merged {
				if _, ok := explicit[pair.key]; ok {
					continue
				}
				if _, ok := emitted[pair.key]; ok {
					continue
				}
				emitted[pair.key] = struct{}{}
				out = append(out, pair)
			}
		}
	}
	return out, nil
}

func isMergeKey(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!merge"
}

// mergeSources returns the mappings named by a merge value: one mapping or a
// sequence of mappings, usually aliases.
func mergeSources(value *yaml.Node) ([]*yaml.Node, error) {
	value = unalias(value)
	switch value.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{value}, nil
	case yaml.SequenceNode:
		out := make([]*yaml.Node, 0, len(value.Content))
		for _, item := range value.Content {
			item = unalias(item)
			if item.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("merge key at line %d expects mappings", item.Line)
			}
			out = append(out, item)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("merge key at line %d expects a mapping", value.Line)
	}
}

func unalias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

// Adapter implements schema.FormatAdapter for JSON Schema documents.
type Adapter struct{}

var _ schema.FormatAdapter = Adapter{}

// Name identifies the adapter.
func (Adapter) Name() string {
	return "jsonschema"
}

// Detect reports whether raw looks like a JSON Schema document.
func (Adapter) Detect(_ schema.Source, raw []byte) bool {
	text := string(raw)
	if strings.Contains(text, "openapi") && strings.Contains(text, "components") {
		return false
	}
	for _, marker := range []string{"$schema", "$defs", "definitions", "properties"} {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// Declarations parses doc and converts its definitions.
func (Adapter) Declarations(ctx context.Context, namespace string, doc schema.Document) ([]model.Declaration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	return Declarations(namespace, root)
}

// Load reads src through loader and converts the document's definitions.
func Load(ctx context.Context, loader schema.Loader, namespace string, src schema.Source) ([]model.Declaration, error) {
	if loader == nil {
		return nil, fmt.Errorf("jsonschema: loader is nil")
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: load: %w", err)
	}
	return Adapter{}.Declarations(ctx, namespace, doc)
}
