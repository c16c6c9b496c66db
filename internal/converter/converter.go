// Package converter turns asset files of one dialect into the other. It ties
// classification, schema selection, transformation and output together and
// reduces every failure to a per-file Outcome so a batch never stops early.
package converter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/mcncl/funkinconv/internal/config"
	"github.com/mcncl/funkinconv/internal/detect"
	"github.com/mcncl/funkinconv/internal/errors"
	"github.com/mcncl/funkinconv/internal/formatter"
	"github.com/mcncl/funkinconv/internal/models"
	"github.com/mcncl/funkinconv/internal/parser"
	"github.com/mcncl/funkinconv/internal/schema"
)

// Converter converts single files and batches of files.
type Converter struct {
	cfg       *config.Config
	formatter *formatter.Formatter
	logger    *log.Logger

	// DetectOnly classifies files without transforming or writing them.
	DetectOnly bool
}

// New creates a Converter. A nil cfg uses the defaults, unset fields of cfg
// fall back to them, and a nil logger discards everything.
func New(cfg *config.Config, logger *log.Logger) *Converter {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	cfg = cfg.WithDefaults()
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Converter{
		cfg:       cfg,
		formatter: cfg.Formatter(),
		logger:    logger,
	}
}

// Result is a converted document together with what it was converted from.
type Result struct {
	Kind    models.Kind
	Dialect models.Dialect
	Schema  string
	Output  models.JSONObject
}

// ConvertDocument converts an already parsed document to its opposite
// dialect. Nothing is read or written.
func (c *Converter) ConvertDocument(v models.JSONValue) (Result, error) {
	cls := detect.Classify(v)
	if cls.Kind == models.KindUnknown {
		return Result{}, errors.NewClassificationError("unrecognised document", errors.ErrUnknownKind)
	}

	s, ok := schema.Resolve(cls.Kind, v, c.cfg.Variant())
	if !ok {
		return Result{}, errors.NewClassificationError(string(cls.Kind), errors.ErrUnknownKind)
	}
	res := Result{Kind: cls.Kind, Dialect: s.Detect(v), Schema: s.Name()}
	c.logger.Debug("classified", "kind", res.Kind, "dialect", res.Dialect, "schema", res.Schema)

	out, err := convertSafely(s, v, res.Dialect)
	if err != nil {
		return res, err
	}
	res.Output = out
	return res, nil
}

// convertSafely runs the transformer and turns a panic into a transform error.
func convertSafely(s schema.Schema, v models.JSONValue, from models.Dialect) (out models.JSONObject, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = errors.NewTransformError(fmt.Sprintf("%s transformer failed", s.Name()), fmt.Errorf("%v", r))
		}
	}()
	return schema.Convert(s, v, from)
}

// Convert reads the file at path, converts it and writes the result next to
// it. It never returns an error; failures are reported in the Outcome.
func (c *Converter) Convert(path string) models.Outcome {
	if !isFile(path) {
		return NotFound(path)
	}

	doc, err := parser.ParseFile(path)
	if err != nil {
		return failure(err)
	}

	if c.DetectOnly {
		return c.detect(doc.Root)
	}

	res, err := c.ConvertDocument(doc.Root)
	if err != nil {
		return res.failure(err)
	}

	outPath := c.formatter.OutputPath(path, res.Dialect.Opposite())
	if err := c.formatter.WriteFile(outPath, res.Output); err != nil {
		return res.failure(errors.NewOutputError(fmt.Sprintf("cannot write '%s'", outPath), err))
	}

	return models.Outcome{
		OK:      true,
		Message: fmt.Sprintf("Converted (%s, %s) -> %s", res.Kind, res.Dialect, filepath.Base(outPath)),
		Kind:    res.Kind,
		Dialect: res.Dialect,
		Output:  outPath,
	}
}

func (c *Converter) detect(v models.JSONValue) models.Outcome {
	cls := detect.Classify(v)
	if cls.Kind == models.KindUnknown {
		return failure(errors.NewClassificationError("unrecognised document", errors.ErrUnknownKind))
	}
	s, _ := schema.Resolve(cls.Kind, v, c.cfg.Variant())
	dialect := s.Detect(v)
	c.logger.Debug("classified", "kind", cls.Kind, "dialect", dialect, "schema", s.Name(),
		"rule", detect.Explain(cls.Kind, v))

	o := models.Outcome{Kind: cls.Kind, Dialect: dialect}
	if dialect == models.DialectUnknown {
		o.Message = errors.OutcomeMessage(errors.NewClassificationError(string(cls.Kind), errors.ErrUnknownDialect))
		return o
	}
	o.OK = true
	o.Message = fmt.Sprintf("Detected (%s, %s) using %s", cls.Kind, dialect, s.Name())
	return o
}

// NotFound is the outcome for a path that is not a regular file.
func NotFound(path string) models.Outcome {
	return models.Outcome{
		Message: fmt.Sprintf("%s not found.", path),
		Kind:    models.KindUnknown,
		Dialect: models.DialectUnknown,
	}
}

func failure(err error) models.Outcome {
	return models.Outcome{
		Message: errors.OutcomeMessage(err),
		Kind:    models.KindUnknown,
		Dialect: models.DialectUnknown,
	}
}

// failure keeps whatever was learned about the document before err.
func (r Result) failure(err error) models.Outcome {
	o := failure(err)
	if r.Kind != "" {
		o.Kind, o.Dialect = r.Kind, r.Dialect
	}
	return o
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
