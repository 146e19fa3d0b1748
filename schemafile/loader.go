package schemafile

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hashicorp/golang-lru/v2"

	"github.com/reoring/skema/dsl"
)

// DefaultCacheSize is the number of compiled schemas a Loader keeps when no
// size is given.
const DefaultCacheSize = 64

// Loader compiles schema files and caches the results. A cached entry is
// reused while the file keeps its size and modification time. Loader is safe
// for concurrent use.
type Loader struct {
	opts   Options
	cache  *lru.Cache[string, entry]
	logger *slog.Logger
}

type entry struct {
	size   int64
	mod    time.Time
	schema dsl.Schema[any]
	diag   Diag
}

// NewLoader creates a Loader holding up to size compiled schemas. A nil logger
// discards cache events.
func NewLoader(size int, opts Options, logger *slog.Logger) (*Loader, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{opts: opts, cache: cache, logger: logger}, nil
}

// Load returns the compiled schema stored at path.
func (l *Loader) Load(path string) (dsl.Schema[any], Diag, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, Diag{}, err
	}
	if e, ok := l.cache.Get(path); ok && e.size == fi.Size() && e.mod.Equal(fi.ModTime()) {
		l.logger.Debug("schema cache hit", "path", path)
		return e.schema, e.diag, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Diag{}, err
	}
	s, d, err := CompileBytes(data, l.opts)
	if err != nil {
		return nil, d, fmt.Errorf("%s: %w", path, err)
	}
	l.cache.Add(path, entry{size: fi.Size(), mod: fi.ModTime(), schema: s, diag: d})
	l.logger.Debug("schema compiled", "path", path, "warnings", len(d.Warnings()))
	return s, d, nil
}

// Len reports the number of cached schemas.
func (l *Loader) Len() int { return l.cache.Len() }

// Purge drops every cached schema.
func (l *Loader) Purge() { l.cache.Purge() }
