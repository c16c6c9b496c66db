package detect

import "github.com/mcncl/funkinconv/internal/models"

var characterRules = dialectRules{
	{name: "animations is a list", match: isArray("animations"), dialect: models.DialectPsych},
	{name: "animations is a mapping", match: isObject("animations"), dialect: models.DialectBase},
	{name: "position is a list", match: isArray("position"), dialect: models.DialectPsych},
	{name: "x and y present", match: has("x", "y"), dialect: models.DialectBase},
}

var chartRules = dialectRules{
	{name: "song present", match: has("song"), dialect: models.DialectPsych},
	{name: "notes is a list", match: isArray("notes"), dialect: models.DialectBase},
}

var eventsRules = dialectRules{
	{name: "song.events is a list", match: nestedIsArray("song", "events"), dialect: models.DialectPsych},
	{name: "events is a list", match: isArray("events"), dialect: models.DialectBase},
}

// "objects" appears in both rows; the Psych row is checked first and wins.
var stageRules = dialectRules{
	{name: "psych stage keys", match: hasAny("stage", "objects", "foreground", "background"), dialect: models.DialectPsych},
	{name: "base stage keys", match: hasAny("layers", "image", "objects"), dialect: models.DialectBase},
}

var weekRules = dialectRules{
	{name: "weekBefore, or songs with unlock", match: or(has("weekBefore"), has("songs", "unlock")), dialect: models.DialectPsych},
	{name: "base week keys", match: hasAny("weekName", "week", "songs"), dialect: models.DialectBase},
}

// Character reports the dialect of a character document.
func Character(v models.JSONValue) models.Dialect { return evalObject(characterRules, v) }

// Chart reports the dialect of a chart document. A top-level list of note
// objects is the flat Base chart some tools write.
func Chart(v models.JSONValue) models.Dialect {
	if isFlatChart(v) {
		return models.DialectBase
	}
	return evalObject(chartRules, v)
}

// Events reports the dialect of an events document.
func Events(v models.JSONValue) models.Dialect { return evalObject(eventsRules, v) }

// Stage reports the dialect of a stage document.
func Stage(v models.JSONValue) models.Dialect { return evalObject(stageRules, v) }

// Week reports the dialect of a week document.
func Week(v models.JSONValue) models.Dialect { return evalObject(weekRules, v) }

// ForKind returns the dialect detector for kind.
func ForKind(kind models.Kind) func(models.JSONValue) models.Dialect {
	switch kind {
	case models.KindCharacter:
		return Character
	case models.KindChart:
		return Chart
	case models.KindEvents:
		return Events
	case models.KindStage:
		return Stage
	case models.KindWeek:
		return Week
	default:
		return func(models.JSONValue) models.Dialect { return models.DialectUnknown }
	}
}

// Explain names the rule that decided v's dialect for kind, for debug logs.
func Explain(kind models.Kind, v models.JSONValue) string {
	if kind == models.KindChart && isFlatChart(v) {
		return "top-level list of notes"
	}
	obj, ok := models.AsObject(v)
	if !ok {
		return ""
	}
	switch kind {
	case models.KindCharacter:
		return characterRules.explain(obj)
	case models.KindChart:
		return chartRules.explain(obj)
	case models.KindEvents:
		return eventsRules.explain(obj)
	case models.KindStage:
		return stageRules.explain(obj)
	case models.KindWeek:
		return weekRules.explain(obj)
	}
	return ""
}

func evalObject(rules dialectRules, v models.JSONValue) models.Dialect {
	obj, ok := models.AsObject(v)
	if !ok {
		return models.DialectUnknown
	}
	return rules.eval(obj)
}

// isFlatChart matches a non-empty top-level list whose elements are all objects.
func isFlatChart(v models.JSONValue) bool {
	arr, ok := models.AsArray(v)
	if !ok || len(arr) == 0 {
		return false
	}
	for _, el := range arr {
		if _, ok := models.AsObject(el); !ok {
			return false
		}
	}
	return true
}
