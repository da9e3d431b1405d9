package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// loadInitial reads a YAML mapping of initial variables. The keys are
// returned in document order alongside the decoded values.
func loadInitial(filename string) (map[string]any, []string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read initial state: %w", err)
	}
	return parseInitial(data)
}

func parseInitial(data []byte) (map[string]any, []string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse initial state: %w", err)
	}

	if len(doc.Content) == 0 {
		return map[string]any{}, nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("initial state must be a mapping, got %s", nodeKind(root))
	}

	order := make([]string, 0, len(root.Content)/2)
	for i := 0; i < len(root.Content); i += 2 {
		order = append(order, root.Content[i].Value)
	}

	vars := make(map[string]any, len(order))
	if err := root.Decode(&vars); err != nil {
		return nil, nil, fmt.Errorf("failed to decode initial state: %w", err)
	}

	return vars, order, nil
}

// forEachPartial decodes a stream of YAML documents, each a partial update,
// and calls fn for each in order. Empty documents yield empty partials.
func forEachPartial(r io.Reader, fn func(partial map[string]any) error) error {
	dec := yaml.NewDecoder(r)
	for i := 0; ; i++ {
		var partial map[string]any
		err := dec.Decode(&partial)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to parse update %d: %w", i+1, err)
		}

		if err := fn(partial); err != nil {
			return fmt.Errorf("update %d: %w", i+1, err)
		}
	}
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
