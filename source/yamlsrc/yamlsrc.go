// Package yamlsrc turns a YAML document into the token stream consumed by the
// decoding engine, so YAML input is validated exactly like JSON input.
package yamlsrc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/skema/internal/engine"
)

// ErrAliasCycle is returned when an alias refers to one of its own ancestors.
var ErrAliasCycle = errors.New("yamlsrc: alias cycle")

// ErrAliasExpansion is returned when expanding aliases would produce more
// tokens than the document budget allows.
var ErrAliasExpansion = errors.New("yamlsrc: alias expansion exceeds budget")

// Tokens produced inside alias expansions are capped at aliasRatio times the
// node count of the document, with a floor of aliasFloor.
const (
	aliasFloor = 10000
	aliasRatio = 10
)

type source struct {
	r      io.Reader
	loaded bool
	err    error
	toks   []eng.Token
	pos    int
}

// NewReader returns a token source over the first YAML document in r.
func NewReader(r io.Reader) eng.TokenSource { return &source{r: r} }

// NewBytes returns a token source over the first YAML document in b.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	if !s.loaded {
		s.load()
	}
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *source) Location() int64 { return -1 }

func (s *source) load() {
	s.loaded = true
	var doc yaml.Node
	if err := yaml.NewDecoder(s.r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		s.err = err
		return
	}
	w := &walker{visiting: map[*yaml.Node]bool{}, budget: max(aliasFloor, aliasRatio*countNodes(&doc))}
	if err := w.walk(&doc); err != nil {
		s.err = err
		return
	}
	s.toks = w.toks
}

type walker struct {
	toks     []eng.Token
	visiting map[*yaml.Node]bool

	aliasDepth int
	expanded   int
	budget     int
}

func (w *walker) emit(t eng.Token) {
	t.Offset = -1
	w.toks = append(w.toks, t)
	if w.aliasDepth > 0 {
		w.expanded++
	}
}

// countNodes counts the nodes written in the document, without following
// aliases.
func countNodes(n *yaml.Node) int {
	c := 1
	for _, ch := range n.Content {
		c += countNodes(ch)
	}
	return c
}

func (w *walker) walk(n *yaml.Node) error {
	if w.expanded > w.budget {
		return ErrAliasExpansion
	}
	if w.visiting[n] {
		return ErrAliasCycle
	}
	w.visiting[n] = true
	defer delete(w.visiting, n)

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return w.walk(n.Content[0])
	case yaml.AliasNode:
		w.aliasDepth++
		defer func() { w.aliasDepth-- }()
		if err := w.walk(n.Alias); err != nil {
			return err
		}
		if w.expanded > w.budget {
			return ErrAliasExpansion
		}
		return nil
	case yaml.MappingNode:
		w.emit(eng.Token{Kind: eng.KindBeginObject})
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yaml.AliasNode {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("yamlsrc: line %d: mapping keys must be scalars", k.Line)
			}
			w.emit(eng.Token{Kind: eng.KindKey, String: k.Value})
			if err := w.walk(n.Content[i+1]); err != nil {
				return err
			}
		}
		w.emit(eng.Token{Kind: eng.KindEndObject})
		return nil
	case yaml.SequenceNode:
		w.emit(eng.Token{Kind: eng.KindBeginArray})
		for _, c := range n.Content {
			if err := w.walk(c); err != nil {
				return err
			}
		}
		w.emit(eng.Token{Kind: eng.KindEndArray})
		return nil
	case yaml.ScalarNode:
		return w.scalar(n)
	default:
		return fmt.Errorf("yamlsrc: line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func (w *walker) scalar(n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		w.emit(eng.Token{Kind: eng.KindNull})
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		w.emit(eng.Token{Kind: eng.KindBool, Bool: b})
	case "!!int":
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		w.emit(eng.Token{Kind: eng.KindNumber, Number: formatNumber(v, n.Value)})
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return err
		}
		w.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64)})
	default:
		w.emit(eng.Token{Kind: eng.KindString, String: n.Value})
	}
	return nil
}

func formatNumber(v any, raw string) string {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return raw
	}
}
