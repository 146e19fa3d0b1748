package schemafile

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

var errEmptyDocument = errors.New("schemafile: empty document")

// DuplicateKeyError reports a key that appears twice in one mapping of a
// schema document. At is the document location of the mapping.
type DuplicateKeyError struct {
	At        string
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("schemafile: %s: key %q repeated at %d:%d (first at %d:%d)",
		e.At, e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// readStrict decodes the first document in r (YAML or JSON) into plain maps,
// slices and scalars.
func readStrict(r io.Reader) (any, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyDocument
		}
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, errEmptyDocument
		}
		return toValue(root.Content[0], "$")
	}
	return toValue(&root, "$")
}

// toValue converts n, located at the document path at, keeping the first
// error it meets.
func toValue(n *yaml.Node, at string) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return toValue(n.Alias, at)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("schemafile: %s: %w", at, err)
		}
		return v, nil
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := toValue(c, at+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		seen := make(map[string]*yaml.Node, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yaml.AliasNode {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("schemafile: %s: line %d: mapping keys must be scalars", at, k.Line)
			}
			if prev, dup := seen[k.Value]; dup {
				return nil, &DuplicateKeyError{At: at, Key: k.Value,
					FirstLine: prev.Line, FirstCol: prev.Column, Line: k.Line, Col: k.Column}
			}
			seen[k.Value] = k
			v, err := toValue(n.Content[i+1], at+"."+k.Value)
			if err != nil {
				return nil, err
			}
			out[k.Value] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("schemafile: %s: line %d: unsupported YAML node", at, n.Line)
}
