// Package transform holds the structural mappers between the Psych and Base
// dialects of each asset kind.
//
// Every mapper is total over object input: absent fields take the defaults
// listed next to them, and only values of the wrong shape (a position that is
// not a list, a note that is not an object) produce an error. Mappers never
// modify their input; carried-through values are deep copies.
package transform

import (
	"fmt"
	"math"

	"github.com/mcncl/funkinconv/internal/errors"
	"github.com/mcncl/funkinconv/internal/models"
)

// field returns a deep copy of obj[key], or def when key is absent.
func field(obj models.JSONObject, key string, def models.JSONValue) models.JSONValue {
	return models.Clone(obj.Get(key, def))
}

// arrayField returns obj[key] as a list, def when absent, and a shape error
// when present with any other type.
func arrayField(obj models.JSONObject, key string, def models.JSONArray) (models.JSONArray, error) {
	v, ok := obj[key]
	if !ok {
		return def, nil
	}
	arr, ok := models.AsArray(v)
	if !ok {
		return nil, errors.NewShapeError("%q must be a list, got %s", key, typeName(v))
	}
	return arr, nil
}

// objectField is arrayField for objects.
func objectField(obj models.JSONObject, key string, def models.JSONObject) (models.JSONObject, error) {
	v, ok := obj[key]
	if !ok {
		return def, nil
	}
	o, ok := models.AsObject(v)
	if !ok {
		return nil, errors.NewShapeError("%q must be an object, got %s", key, typeName(v))
	}
	return o, nil
}

// at returns a copy of arr[i], or def when arr is too short.
func at(arr models.JSONArray, i int, def models.JSONValue) models.JSONValue {
	if i < len(arr) {
		return models.Clone(arr[i])
	}
	return def
}

// firstTruthy returns a copy of the first truthy value among keys, or def.
func firstTruthy(obj models.JSONObject, def models.JSONValue, keys ...string) models.JSONValue {
	for _, k := range keys {
		if v := obj[k]; models.Truthy(v) {
			return models.Clone(v)
		}
	}
	return def
}

// number reads v as a finite float for arithmetic.
func number(v models.JSONValue, what string) (float64, error) {
	f, ok := models.AsFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.NewShapeError("%s must be a number, got %s", what, typeName(v))
	}
	return f, nil
}

func defaultCamera() models.JSONObject {
	return models.JSONObject{"x": 0, "y": 0}
}

func typeName(v models.JSONValue) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case models.JSONArray:
		return "list"
	case models.JSONObject:
		return "object"
	default:
		if _, ok := models.AsFloat(v); ok {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}
