package transform

import (
	"github.com/mcncl/funkinconv/internal/errors"
	"github.com/mcncl/funkinconv/internal/models"
)

// StagePsychToBase reads the stage from data.stage when present, else from
// data itself, and rebuilds it as a layer list.
func StagePsychToBase(data models.JSONObject) (models.JSONObject, error) {
	stage := data
	if data.Has("stage") {
		s, err := objectField(data, "stage", nil)
		if err != nil {
			return nil, err
		}
		stage = s
	}

	bpm := models.JSONValue(DefaultBPM)
	if song, ok := data.Object("song"); ok {
		bpm = song.Get("bpm", DefaultBPM)
	}

	layers := models.JSONArray{}
	if stage.Has("background") {
		layers = append(layers, models.JSONObject{
			"type":   "background",
			"image":  field(stage, "background", nil),
			"scroll": field(stage, "bgScroll", 1.0),
		})
	}
	if stage.Has("foreground") {
		layers = append(layers, models.JSONObject{
			"type":  "foreground",
			"items": field(stage, "foreground", nil),
		})
	}

	out := models.JSONObject{
		"image":   field(stage, "image", field(stage, "background", "")),
		"bpm":     field(stage, "bpm", models.Clone(bpm)),
		"layers":  layers,
		"objects": firstTruthy(stage, models.JSONArray{}, "objects", "props"),
		"camera":  field(stage, "camera", defaultCamera()),
	}
	if stage.Has("name") {
		out["name"] = field(stage, "name", nil)
	}
	return out, nil
}

// StageBaseToPsych folds background and foreground layers back into flat
// stage keys and wraps the result as {stage: {...}}.
func StageBaseToPsych(data models.JSONObject) (models.JSONObject, error) {
	stage := models.JSONObject{
		"image": field(data, "image", field(data, "bg", "")),
		"bpm":   field(data, "bpm", DefaultBPM),
	}

	layers, err := arrayField(data, "layers", models.JSONArray{})
	if err != nil {
		return nil, err
	}
	for i, l := range layers {
		layer, ok := models.AsObject(l)
		if !ok {
			return nil, errors.NewShapeError("layer %d must be an object, got %s", i, typeName(l))
		}
		switch layer["type"] {
		case "background":
			if layer.Has("image") {
				stage["background"] = field(layer, "image", nil)
				stage["bgScroll"] = field(layer, "scroll", 1.0)
			}
		case "foreground":
			stage["foreground"] = field(layer, "items", field(layer, "image", models.JSONArray{}))
		}
	}

	stage["objects"] = field(data, "objects", models.JSONArray{})
	stage["camera"] = field(data, "camera", defaultCamera())
	if data.Has("name") {
		stage["name"] = field(data, "name", nil)
	}
	return models.JSONObject{"stage": stage}, nil
}
