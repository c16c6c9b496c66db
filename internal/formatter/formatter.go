package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcncl/funkinconv/internal/models"
)

// DefaultIndent matches what the game's own tools write.
const DefaultIndent = 2

// Naming selects how output files are named.
type Naming string

const (
	// NamingConverted writes <stem>_<suffix>.json.
	NamingConverted Naming = "converted"
	// NamingDialect writes <stem>_base.json or <stem>_psych.json after the target dialect.
	NamingDialect Naming = "dialect"
)

// DefaultSuffix is the suffix used by NamingConverted.
const DefaultSuffix = "converted"

// Formatter serialises converted documents and places them next to their source
type Formatter struct {
	Indent int
	Naming Naming
	Suffix string
}

// NewFormatter creates a Formatter with the default layout
func NewFormatter() *Formatter {
	return &Formatter{
		Indent: DefaultIndent,
		Naming: NamingConverted,
		Suffix: DefaultSuffix,
	}
}

// Format renders v as indented JSON. HTML characters are not escaped and
// non-ASCII text is written as-is.
func (f *Formatter) Format(v models.JSONValue) ([]byte, error) {
	indent := f.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// OutputPath derives the converted file's path from the input path. The
// result always differs from input.
func (f *Formatter) OutputPath(input string, target models.Dialect) string {
	stem := strings.TrimSuffix(input, filepath.Ext(input))

	suffix := f.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	if f.Naming == NamingDialect && target != models.DialectUnknown {
		suffix = string(target)
	}
	return stem + "_" + suffix + ".json"
}

// WriteFile formats v and writes it to path.
func (f *Formatter) WriteFile(path string, v models.JSONValue) error {
	data, err := f.Format(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
