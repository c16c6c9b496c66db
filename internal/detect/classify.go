package detect

import "github.com/mcncl/funkinconv/internal/models"

// Classification is the (kind, dialect) pair inferred for a document.
type Classification struct {
	Kind    models.Kind
	Dialect models.Dialect
}

// Unknown is the classification of anything no rule recognises.
var Unknown = Classification{Kind: models.KindUnknown, Dialect: models.DialectUnknown}

// Known reports whether both the kind and the dialect were recognised.
func (c Classification) Known() bool {
	return c.Kind != models.KindUnknown && c.Dialect != models.DialectUnknown
}

type kindRule struct {
	match predicate
	kind  models.Kind
}

// Key sets overlap between kinds, so the order below is significant.
var kindRules = []kindRule{
	{match: has("animations"), kind: models.KindCharacter},
	{match: hasAny("song", "notes"), kind: models.KindChart},
	{match: or(has("events"), nestedHas("song", "events")), kind: models.KindEvents},
	{match: func(obj models.JSONObject) bool { return stageRules.eval(obj) != models.DialectUnknown }, kind: models.KindStage},
	{match: func(obj models.JSONObject) bool { return weekRules.eval(obj) != models.DialectUnknown }, kind: models.KindWeek},
}

// Classify infers the asset kind of v and then its dialect using that kind's
// detector. It never fails: anything unrecognised is Unknown.
func Classify(v models.JSONValue) Classification {
	if isFlatChart(v) {
		return Classification{Kind: models.KindChart, Dialect: models.DialectBase}
	}

	obj, ok := models.AsObject(v)
	if !ok {
		return Unknown
	}

	for _, r := range kindRules {
		if r.match(obj) {
			return Classification{Kind: r.kind, Dialect: ForKind(r.kind)(obj)}
		}
	}
	return Unknown
}
