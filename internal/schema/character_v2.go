package schema

import "github.com/mcncl/funkinconv/internal/models"

// looksLikeCharacterV2 reports V2 markers: any animation object carrying fps,
// loop or offsets, or top-level flip flags. A mapping of animations and
// list-form animation entries are V1 whatever else the document holds, since
// V1 files carry flip_x too.
func looksLikeCharacterV2(v models.JSONValue) bool {
	obj, ok := models.AsObject(v)
	if !ok {
		return false
	}
	if _, ok := obj.Object("animations"); ok {
		return false
	}
	anims, _ := obj.Array("animations")
	marked := false
	for _, a := range anims {
		if _, ok := models.AsArray(a); ok {
			return false
		}
		if anim, ok := models.AsObject(a); ok && anim.HasAny("fps", "loop", "offsets") {
			marked = true
		}
	}
	return marked || obj.HasAny("flip_x", "flip_y")
}

// detectCharacterV2 tells the two V2 layouts apart. Both keep animations as a
// list, so the Base side is recognised by its flip flags or "name" key.
func detectCharacterV2(v models.JSONValue) models.Dialect {
	obj, ok := models.AsObject(v)
	if !ok {
		return models.DialectUnknown
	}
	switch {
	case obj.HasAny("flip_x", "flip_y", "name"):
		return models.DialectBase
	case obj.Has("character"):
		return models.DialectPsych
	}
	if _, ok := obj.Array("animations"); ok {
		return models.DialectPsych
	}
	return models.DialectUnknown
}
