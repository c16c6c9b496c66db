package models

import "github.com/iancoleman/strcase"

// JSONValue is a generic type to represent any JSON value.
// This can be a string, json.Number, boolean, null, object, or array.
type JSONValue interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Document is a parsed asset file ready for classification.
type Document struct {
	Root JSONValue
}

// Kind identifies which asset a document describes.
type Kind string

const (
	KindUnknown   Kind = "unknown"
	KindCharacter Kind = "character"
	KindChart     Kind = "chart"
	KindEvents    Kind = "events"
	KindStage     Kind = "stage"
	KindWeek      Kind = "week"
)

// Title returns the kind as a display label, e.g. "Character".
func (k Kind) Title() string {
	return strcase.ToCamel(string(k))
}

// Dialect identifies the schema family of a document.
type Dialect string

const (
	DialectUnknown Dialect = "unknown"
	DialectPsych   Dialect = "psych"
	DialectBase    Dialect = "base"
)

// Opposite returns the dialect a conversion targets.
func (d Dialect) Opposite() Dialect {
	switch d {
	case DialectPsych:
		return DialectBase
	case DialectBase:
		return DialectPsych
	default:
		return DialectUnknown
	}
}

// Outcome is the result of converting a single file.
type Outcome struct {
	OK      bool
	Message string
	Kind    Kind
	Dialect Dialect
	Output  string // path written, empty on failure or in detect-only mode
}
