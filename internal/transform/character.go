package transform

import (
	"sort"

	"github.com/mcncl/funkinconv/internal/errors"
	"github.com/mcncl/funkinconv/internal/models"
)

// CharacterPsychToBase maps a Psych character to the Base layout.
//
//	image ("") scale (1.0) position[0]/[1] -> x/y (0,0)
//	animations [[key, anim, offsetX(0), offsetY(0)], ...] -> {key: {anim, offset_x, offset_y}}
func CharacterPsychToBase(data models.JSONObject) (models.JSONObject, error) {
	position, err := arrayField(data, "position", models.JSONArray{0, 0})
	if err != nil {
		return nil, err
	}
	if len(position) < 2 {
		return nil, errors.NewShapeError("position has %d element(s), want 2", len(position))
	}

	anims, err := arrayField(data, "animations", models.JSONArray{})
	if err != nil {
		return nil, err
	}
	baseAnims := make(models.JSONObject, len(anims))
	for i, a := range anims {
		entry, ok := models.AsArray(a)
		if !ok {
			return nil, errors.NewShapeError("animation %d must be a list, got %s", i, typeName(a))
		}
		if len(entry) < 2 {
			return nil, errors.NewShapeError("animation %d has %d element(s), want at least 2", i, len(entry))
		}
		key, ok := entry[0].(string)
		if !ok {
			return nil, errors.NewShapeError("animation %d name must be a string, got %s", i, typeName(entry[0]))
		}
		baseAnims[key] = models.JSONObject{
			"anim":     models.Clone(entry[1]),
			"offset_x": at(entry, 2, 0),
			"offset_y": at(entry, 3, 0),
		}
	}

	return models.JSONObject{
		"image":      field(data, "image", ""),
		"scale":      field(data, "scale", 1.0),
		"x":          models.Clone(position[0]),
		"y":          models.Clone(position[1]),
		"animations": baseAnims,
	}, nil
}

// CharacterBaseToPsych is the inverse of CharacterPsychToBase. Animations are
// emitted in name order.
func CharacterBaseToPsych(data models.JSONObject) (models.JSONObject, error) {
	anims, err := objectField(data, "animations", models.JSONObject{})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(anims))
	for name := range anims {
		names = append(names, name)
	}
	sort.Strings(names)

	psychAnims := make(models.JSONArray, 0, len(anims))
	for _, name := range names {
		info, ok := models.AsObject(anims[name])
		if !ok {
			return nil, errors.NewShapeError("animation %q must be an object, got %s", name, typeName(anims[name]))
		}
		psychAnims = append(psychAnims, models.JSONArray{
			name,
			field(info, "anim", ""),
			field(info, "offset_x", 0),
			field(info, "offset_y", 0),
		})
	}

	return models.JSONObject{
		"image":      field(data, "image", ""),
		"scale":      field(data, "scale", 1.0),
		"position":   models.JSONArray{field(data, "x", 0), field(data, "y", 0)},
		"animations": psychAnims,
	}, nil
}
