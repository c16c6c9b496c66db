package transform

import (
	"github.com/mcncl/funkinconv/internal/errors"
	"github.com/mcncl/funkinconv/internal/models"
)

// The V2 character layout keeps animations as a list of objects on both sides
// and carries fps/loop/offsets per animation plus flip flags on the Base side.

// CharacterV2PsychToBase maps {character, image, scale, animations:[{anim,name,fps,loop,offsets}]}
// to {name, image, scale, flip_x, flip_y, animations:[...]}. Flip flags are always false.
func CharacterV2PsychToBase(data models.JSONObject) (models.JSONObject, error) {
	anims, err := v2Animations(data, true)
	if err != nil {
		return nil, err
	}
	return models.JSONObject{
		"name":       field(data, "character", ""),
		"image":      field(data, "image", ""),
		"animations": anims,
		"scale":      field(data, "scale", 1.0),
		"flip_x":     false,
		"flip_y":     false,
	}, nil
}

// CharacterV2BaseToPsych maps the V2 Base layout back; flip flags are dropped.
func CharacterV2BaseToPsych(data models.JSONObject) (models.JSONObject, error) {
	anims, err := v2Animations(data, false)
	if err != nil {
		return nil, err
	}
	return models.JSONObject{
		"character":  field(data, "name", ""),
		"image":      field(data, "image", ""),
		"animations": anims,
		"scale":      field(data, "scale", 1.0),
	}, nil
}

// v2Animations copies the animation list with defaults fps (24), loop (true)
// and offsets ([0, 0]). toBase trims offsets to their first two values.
func v2Animations(data models.JSONObject, toBase bool) (models.JSONArray, error) {
	anims, err := arrayField(data, "animations", models.JSONArray{})
	if err != nil {
		return nil, err
	}

	out := make(models.JSONArray, 0, len(anims))
	for i, a := range anims {
		anim, ok := models.AsObject(a)
		if !ok {
			return nil, errors.NewShapeError("animation %d must be an object, got %s", i, typeName(a))
		}

		offsets := field(anim, "offsets", models.JSONArray{0, 0})
		if toBase {
			arr, ok := models.AsArray(offsets)
			if !ok || len(arr) < 2 {
				return nil, errors.NewShapeError("animation %d offsets must be a list of two numbers", i)
			}
			offsets = models.JSONArray{arr[0], arr[1]}
		}

		out = append(out, models.JSONObject{
			"anim":    field(anim, "anim", ""),
			"name":    field(anim, "name", ""),
			"fps":     field(anim, "fps", 24),
			"loop":    field(anim, "loop", true),
			"offsets": offsets,
		})
	}
	return out, nil
}
