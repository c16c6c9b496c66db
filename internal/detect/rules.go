// Package detect classifies parsed asset documents by kind and dialect.
//
// Every decision is an ordered table of (predicate, tag) rules evaluated top
// to bottom; the first match wins. The order is part of the contract: key sets
// overlap between asset kinds, and some tables deliberately shadow later rules
// (a stage holding only "objects" is always Psych, a document holding both
// "animations" and "song" is always a character).
package detect

import "github.com/mcncl/funkinconv/internal/models"

// predicate inspects a document object.
type predicate func(obj models.JSONObject) bool

type dialectRule struct {
	name    string
	match   predicate
	dialect models.Dialect
}

// dialectRules is an ordered rule table for one asset kind.
type dialectRules []dialectRule

func (rs dialectRules) eval(obj models.JSONObject) models.Dialect {
	for _, r := range rs {
		if r.match(obj) {
			return r.dialect
		}
	}
	return models.DialectUnknown
}

// explain returns the name of the rule that matched, or "" when none did.
func (rs dialectRules) explain(obj models.JSONObject) string {
	for _, r := range rs {
		if r.match(obj) {
			return r.name
		}
	}
	return ""
}

func has(keys ...string) predicate {
	return func(obj models.JSONObject) bool {
		for _, k := range keys {
			if !obj.Has(k) {
				return false
			}
		}
		return true
	}
}

func hasAny(keys ...string) predicate {
	return func(obj models.JSONObject) bool {
		return obj.HasAny(keys...)
	}
}

func isArray(key string) predicate {
	return func(obj models.JSONObject) bool {
		_, ok := obj.Array(key)
		return ok
	}
}

func isObject(key string) predicate {
	return func(obj models.JSONObject) bool {
		_, ok := obj.Object(key)
		return ok
	}
}

// nestedIsArray matches when obj[outer] is an object whose inner value is an array.
func nestedIsArray(outer, inner string) predicate {
	return func(obj models.JSONObject) bool {
		o, ok := obj.Object(outer)
		if !ok {
			return false
		}
		_, ok = o.Array(inner)
		return ok
	}
}

// nestedHas matches when obj[outer] is an object containing inner.
func nestedHas(outer, inner string) predicate {
	return func(obj models.JSONObject) bool {
		o, ok := obj.Object(outer)
		return ok && o.Has(inner)
	}
}

func or(ps ...predicate) predicate {
	return func(obj models.JSONObject) bool {
		for _, p := range ps {
			if p(obj) {
				return true
			}
		}
		return false
	}
}
