package models

import (
	"encoding/json"
	"math"
)

// Has reports whether key is present, regardless of its value.
func (o JSONObject) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// HasAny reports whether at least one of keys is present.
func (o JSONObject) HasAny(keys ...string) bool {
	for _, k := range keys {
		if o.Has(k) {
			return true
		}
	}
	return false
}

// Get returns the value stored under key, or def when the key is absent.
// A key present with a null value yields nil, not def.
func (o JSONObject) Get(key string, def JSONValue) JSONValue {
	if v, ok := o[key]; ok {
		return v
	}
	return def
}

// Object returns the value under key when it is an object.
func (o JSONObject) Object(key string) (JSONObject, bool) {
	return AsObject(o[key])
}

// Array returns the value under key when it is an array.
func (o JSONObject) Array(key string) (JSONArray, bool) {
	return AsArray(o[key])
}

// Clone returns a deep copy of the object.
func (o JSONObject) Clone() JSONObject {
	out, _ := Clone(o).(JSONObject)
	return out
}

// AsObject converts v to a JSONObject when it is one. Values must come from
// the parser, which normalises decoded maps and slices into model types.
func AsObject(v JSONValue) (JSONObject, bool) {
	switch t := v.(type) {
	case JSONObject:
		return t, true
	default:
		return nil, false
	}
}

// AsArray converts v to a JSONArray when it is one.
func AsArray(v JSONValue) (JSONArray, bool) {
	switch t := v.(type) {
	case JSONArray:
		return t, true
	default:
		return nil, false
	}
}

// AsFloat converts a JSON number to float64.
func AsFloat(v JSONValue) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Truthy follows the usual loose-JSON notion of truth: null, false, zero,
// and empty strings, arrays and objects are false.
func Truthy(v JSONValue) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case JSONArray:
		return len(t) > 0
	case JSONObject:
		return len(t) > 0
	default:
		if f, ok := AsFloat(v); ok {
			return f != 0 && !math.IsNaN(f)
		}
		return true
	}
}

// Clone deep-copies a JSON value so transformers never share nested
// containers with their input.
func Clone(v JSONValue) JSONValue {
	switch t := v.(type) {
	case JSONObject:
		out := make(JSONObject, len(t))
		for k, val := range t {
			out[k] = Clone(val)
		}
		return out
	case JSONArray:
		out := make(JSONArray, len(t))
		for i, val := range t {
			out[i] = Clone(val)
		}
		return out
	default:
		return v
	}
}
