package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/dsl"
	"github.com/reoring/skema/i18n"
	"github.com/reoring/skema/schemafile"
)

// report is the JSON line printed for every checked input.
type report struct {
	Input   string        `json:"input"`
	Success bool          `json:"success"`
	Data    any           `json:"data,omitempty"`
	Issues  []issueReport `json:"issues,omitempty"`
}

type issueReport struct {
	Path    string         `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

func checkCmd(ctx context.Context, cfg *Config, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		schemaPath string
		format     string
		lang       string
		withData   bool
		verbose    bool
		opt        = skema.ParseOpt{MaxBytes: cfg.MaxBytes, MaxDepth: cfg.MaxDepth, RejectDuplicateKeys: cfg.RejectDuplicates}
	)
	fs.StringVar(&schemaPath, "schema", "", "schema document (YAML or JSON)")
	fs.StringVar(&format, "format", "auto", "input format: auto, json or yaml")
	fs.Int64Var(&opt.MaxBytes, "max-bytes", opt.MaxBytes, "maximum input size in bytes (0 = unlimited)")
	fs.IntVar(&opt.MaxDepth, "max-depth", opt.MaxDepth, "maximum nesting depth (0 = unlimited)")
	fs.BoolVar(&opt.RejectDuplicateKeys, "reject-dup", opt.RejectDuplicateKeys, "report duplicate object keys")
	fs.StringVar(&lang, "lang", cfg.Lang, "message language (en, ja)")
	fs.BoolVar(&withData, "data", false, "include converted data in successful reports")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if schemaPath == "" {
		fs.Usage()
		return 2
	}
	switch format {
	case "auto", "json", "yaml":
	default:
		fmt.Fprintf(stderr, "skema: unknown format %q\n", format)
		return 2
	}
	logger := newLogger(stderr, verbose)
	i18n.SetLanguage(lang)

	schema, ok := loadSchema(schemaPath, logger)
	if !ok {
		return 2
	}

	enc := json.NewEncoder(stdout)
	inputs := fs.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	failed := 0
	for _, in := range inputs {
		rep, err := checkOne(ctx, schema, in, format, opt, stdin)
		if err != nil {
			logger.Error("check aborted", "input", in, "error", err)
			return 2
		}
		if !rep.Success {
			failed++
		} else if !withData {
			rep.Data = nil
		}
		if err := enc.Encode(rep); err != nil {
			logger.Error("write report", "error", err)
			return 2
		}
	}
	logger.Debug("check finished", "inputs", len(inputs), "failed", failed)
	if failed > 0 {
		return 1
	}
	return 0
}

// loadSchema compiles the one schema a run uses, so the Loader holds a
// single entry.
func loadSchema(path string, logger *slog.Logger) (dsl.Schema[any], bool) {
	loader, err := schemafile.NewLoader(1, schemafile.Options{}, logger)
	if err != nil {
		logger.Error("create loader", "error", err)
		return nil, false
	}
	schema, diag, err := loader.Load(path)
	if err != nil {
		logger.Error("load schema", "error", err)
		return nil, false
	}
	for _, w := range diag.Warnings() {
		logger.Warn("schema", "path", path, "warning", w)
	}
	logger.Debug("schema loaded", "path", path, "kind", schema.Kind())
	return schema, true
}

// checkOne validates a single input. The returned error is reserved for
// failures that are not about the input itself (unreadable file, canceled
// context).
func checkOne(ctx context.Context, schema dsl.Schema[any], in, format string, opt skema.ParseOpt, stdin io.Reader) (report, error) {
	var r io.Reader
	if in == "-" {
		r = stdin
	} else {
		f, err := os.Open(in)
		if err != nil {
			return report{}, err
		}
		defer f.Close()
		r = f
	}
	br := bufio.NewReader(r)
	var src skema.Source
	if detectFormat(format, in, br) == "yaml" {
		src = skema.YAMLReader(br)
	} else {
		src = skema.JSONReader(br)
	}
	res, err := skema.ParseFrom[any](ctx, schema, src, opt)
	if err != nil {
		return report{}, err
	}
	rep := report{Input: in, Success: res.Success, Data: res.Data}
	for _, it := range res.Issues {
		rep.Issues = append(rep.Issues, issueReport{
			Path:    it.Path.String(),
			Code:    it.Code,
			Message: it.Message,
			Params:  it.Params,
		})
	}
	return rep, nil
}

// detectFormat resolves "auto" from the file extension, or for stdin and
// unknown extensions from the first non-space byte.
func detectFormat(format, name string, br *bufio.Reader) string {
	if format != "auto" {
		return format
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	for n := 1; ; n++ {
		peek, err := br.Peek(n)
		if len(peek) < n {
			return "yaml"
		}
		trimmed := bytes.TrimLeft(peek, " \t\r\n")
		if len(trimmed) > 0 {
			switch trimmed[0] {
			case '{', '[', '"':
				return "json"
			}
			return "yaml"
		}
		if err != nil {
			return "yaml"
		}
	}
}
