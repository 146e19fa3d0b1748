package main

import (
	"flag"
	"io"

	json "github.com/goccy/go-json"

	js "github.com/reoring/skema/jsonschema"
)

func jsonSchemaCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jsonschema", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var schemaPath string
	var verbose bool
	fs.StringVar(&schemaPath, "schema", "", "schema document (YAML or JSON)")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if schemaPath == "" {
		fs.Usage()
		return 2
	}
	logger := newLogger(stderr, verbose)
	schema, ok := loadSchema(schemaPath, logger)
	if !ok {
		return 2
	}
	out, err := schema.JSONSchema()
	if err != nil {
		logger.Error("export", "error", err)
		return 2
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(js.NewDocument(out)); err != nil {
		logger.Error("write", "error", err)
		return 2
	}
	return 0
}
