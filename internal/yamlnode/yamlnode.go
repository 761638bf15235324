// Package yamlnode converts the ordered values produced by the builders into
// yaml.v3 nodes so YAML output keeps insertion order.
package yamlnode

import (
	"encoding/json"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// FromValue converts v into a yaml node. Ordered maps keep their order, plain
// maps are emitted with sorted keys, json.Number keeps its literal text.
func FromValue(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *yaml.Node:
		return t, nil
	case *orderedmap.OrderedMap[string, any]:
		if t == nil {
			return nullNode(), nil
		}
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for p := t.Oldest(); p != nil; p = p.Next() {
			vn, err := FromValue(p.Value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, keyNode(p.Key), vn)
		}
		return n, nil
	case map[string]any:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			vn, err := FromValue(t[k])
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, keyNode(k), vn)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range t {
			en, err := FromValue(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, en)
		}
		return n, nil
	case json.Number:
		tag := "!!int"
		if _, err := t.Int64(); err != nil {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String()}, nil
	case nil:
		return nullNode(), nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}

func keyNode(k string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
