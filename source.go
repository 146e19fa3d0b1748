package skema

import (
	"bytes"
	"io"

	eng "github.com/reoring/skema/internal/engine"
	"github.com/reoring/skema/source/gojson"
	"github.com/reoring/skema/source/yamlsrc"
)

// Token describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise).
type Token = eng.Token

// TokenKind enumerates token kinds.
type TokenKind = eng.Kind

const (
	TokenBeginObject TokenKind = eng.KindBeginObject
	TokenEndObject   TokenKind = eng.KindEndObject
	TokenBeginArray  TokenKind = eng.KindBeginArray
	TokenEndArray    TokenKind = eng.KindEndArray
	TokenKey         TokenKind = eng.KindKey
	TokenString      TokenKind = eng.KindString
	TokenNumber      TokenKind = eng.KindNumber
	TokenBool        TokenKind = eng.KindBool
	TokenNull        TokenKind = eng.KindNull
)

// Source abstracts over polymorphic input formats. Location reports the number
// of input bytes consumed so far, or -1 when unknown.
type Source = eng.TokenSource

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return JSONReader(bytes.NewReader(b)) }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source {
	cr := &countingReader{r: r}
	return &countedSource{TokenSource: gojson.NewReader(cr), cr: cr}
}

// YAMLBytes wraps a byte slice as a YAML Source. Only the first document is
// read.
func YAMLBytes(b []byte) Source { return YAMLReader(bytes.NewReader(b)) }

// YAMLReader wraps an io.Reader as a YAML Source.
func YAMLReader(r io.Reader) Source {
	cr := &countingReader{r: r}
	return &countedSource{TokenSource: yamlsrc.NewReader(cr), cr: cr}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

type countedSource struct {
	eng.TokenSource
	cr *countingReader
}

func (s *countedSource) Location() int64 { return s.cr.n }
