package transform

import "github.com/mcncl/funkinconv/internal/models"

const defaultWeekName = "week"

// WeekPsychToBase keeps only the fields the base game reads.
func WeekPsychToBase(data models.JSONObject) (models.JSONObject, error) {
	return models.JSONObject{
		"weekName":            field(data, "weekName", field(data, "week", defaultWeekName)),
		"weekCharacters":      field(data, "weekCharacters", field(data, "characters", models.JSONArray{})),
		"weekSongs":           field(data, "songs", models.JSONArray{}),
		"startUnlocked":       field(data, "startUnlocked", true),
		"hiddenUntilUnlocked": field(data, "hiddenUntilUnlocked", false),
	}, nil
}

// WeekBaseToPsych builds a Psych week skeleton. weekBefore is always null.
func WeekBaseToPsych(data models.JSONObject) (models.JSONObject, error) {
	return models.JSONObject{
		"week":                field(data, "weekName", field(data, "week", defaultWeekName)),
		"songs":               field(data, "weekSongs", field(data, "songs", models.JSONArray{})),
		"weekCharacters":      field(data, "weekCharacters", models.JSONArray{}),
		"weekBefore":          nil,
		"startUnlocked":       field(data, "startUnlocked", true),
		"hiddenUntilUnlocked": field(data, "hiddenUntilUnlocked", false),
	}, nil
}
