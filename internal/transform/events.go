package transform

import "github.com/mcncl/funkinconv/internal/models"

// EventsPsychToBase lifts events and bpm out of song when a song key exists,
// otherwise reads them from the top level. Defaults: events [], bpm 120.
func EventsPsychToBase(data models.JSONObject) (models.JSONObject, error) {
	src := data
	if data.Has("song") {
		song, err := objectField(data, "song", nil)
		if err != nil {
			return nil, err
		}
		src = song
	}
	return models.JSONObject{
		"events": field(src, "events", models.JSONArray{}),
		"bpm":    field(src, "bpm", DefaultBPM),
	}, nil
}

// EventsBaseToPsych nests events and bpm under song. The note list is always
// empty: an events file carries no chart data.
func EventsBaseToPsych(data models.JSONObject) (models.JSONObject, error) {
	return models.JSONObject{
		"song": models.JSONObject{
			"events": field(data, "events", models.JSONArray{}),
			"bpm":    field(data, "bpm", DefaultBPM),
			"notes":  models.JSONArray{},
		},
	}, nil
}
