package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/mcncl/funkinconv/internal/errors" // Custom errors package
	"github.com/mcncl/funkinconv/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse decodes a single JSON value from reader into a Document.
// Numbers are kept as json.Number so they are written back unchanged.
func Parse(reader io.Reader) (models.Document, error) {
	br := bufio.NewReader(reader)
	// Editors on Windows like to prefix asset files with a BOM
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	decoder := json.NewDecoder(br)
	decoder.UseNumber()

	var rootValue models.JSONValue
	if err := decoder.Decode(&rootValue); err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return models.Document{}, errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d: %s", syntaxError.Offset, syntaxError.Error()),
				errors.ErrInvalidJSON,
			)
		}
		if stderrors.Is(err, io.ErrUnexpectedEOF) {
			return models.Document{}, errors.NewParsingError("unexpected EOF while reading JSON", errors.ErrInvalidJSON)
		}
		return models.Document{}, errors.NewParsingError("failed to decode JSON", err)
	}

	// Anything but whitespace after the first value is rejected
	if decoder.More() {
		var trailingValue interface{}
		if err := decoder.Decode(&trailingValue); err != nil {
			if !stderrors.Is(err, io.EOF) {
				return models.Document{}, errors.NewParsingError("invalid trailing data after first JSON value", errors.ErrInvalidJSON)
			}
		} else {
			return models.Document{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
	}

	return models.Document{Root: normalizeJSONValue(rootValue)}, nil
}

// normalizeJSONValue converts raw JSON types into our model types
func normalizeJSONValue(val models.JSONValue) models.JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[key] = normalizeJSONValue(value)
		}
		return obj
	case []interface{}:
		arr := make(models.JSONArray, len(v))
		for i, value := range v {
			arr[i] = normalizeJSONValue(value)
		}
		return arr
	default:
		return v // Primitives (string, json.Number, bool, nil) are returned as is
	}
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Document{}, errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.IsDir() {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("'%s' is a directory", filePath),
			errors.ErrInvalidFilePath,
		)
	}
	if stat.Size() == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}
