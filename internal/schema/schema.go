// Package schema pairs each asset kind's dialect detector with its two
// transformers behind a single capability interface.
//
// Characters come in two incompatible layouts. CharacterV1 is the tuple-based
// layout ({"animations": [["idle", "BF idle dance", 0, 0]]} on the Psych side,
// an animation mapping on the Base side). CharacterV2 keeps animations as a
// list of objects with fps, loop and offsets and adds flip flags on the Base
// side. The two are never merged: a document is handled by exactly one of
// them, picked by Resolve.
package schema

import (
	"fmt"

	"github.com/mcncl/funkinconv/internal/detect"
	"github.com/mcncl/funkinconv/internal/errors"
	"github.com/mcncl/funkinconv/internal/models"
	"github.com/mcncl/funkinconv/internal/transform"
)

// Schema detects and converts one asset kind.
type Schema interface {
	Kind() models.Kind
	Name() string
	Detect(v models.JSONValue) models.Dialect
	ToBase(v models.JSONValue) (models.JSONObject, error)
	ToPsych(v models.JSONValue) (models.JSONObject, error)
}

// Convert applies the transformer leading away from dialect.
func Convert(s Schema, v models.JSONValue, from models.Dialect) (models.JSONObject, error) {
	switch from {
	case models.DialectPsych:
		return s.ToBase(v)
	case models.DialectBase:
		return s.ToPsych(v)
	default:
		return nil, errors.NewClassificationError(string(s.Kind()), errors.ErrUnknownDialect)
	}
}

type objectMapper func(models.JSONObject) (models.JSONObject, error)

// objectSchema adapts a detector and two object mappers to Schema.
type objectSchema struct {
	kind    models.Kind
	name    string
	detect  func(models.JSONValue) models.Dialect
	toBase  objectMapper
	toPsych objectMapper
}

func (s objectSchema) Kind() models.Kind                        { return s.kind }
func (s objectSchema) Name() string                             { return s.name }
func (s objectSchema) Detect(v models.JSONValue) models.Dialect { return s.detect(v) }

func (s objectSchema) ToBase(v models.JSONValue) (models.JSONObject, error) {
	return s.apply(v, s.toBase)
}

func (s objectSchema) ToPsych(v models.JSONValue) (models.JSONObject, error) {
	return s.apply(v, s.toPsych)
}

func (s objectSchema) apply(v models.JSONValue, m objectMapper) (models.JSONObject, error) {
	obj, ok := models.AsObject(v)
	if !ok {
		return nil, errors.NewShapeError("%s document must be a JSON object", s.kind)
	}
	return m(obj)
}

// chartSchema also accepts a bare note list on the Base side.
type chartSchema struct{}

func (chartSchema) Kind() models.Kind                        { return models.KindChart }
func (chartSchema) Name() string                             { return "chart" }
func (chartSchema) Detect(v models.JSONValue) models.Dialect { return detect.Chart(v) }

func (chartSchema) ToBase(v models.JSONValue) (models.JSONObject, error) {
	obj, ok := models.AsObject(v)
	if !ok {
		return nil, errors.NewShapeError("psych chart must be a JSON object")
	}
	return transform.ChartPsychToBase(obj)
}

func (chartSchema) ToPsych(v models.JSONValue) (models.JSONObject, error) {
	return transform.ChartBaseToPsych(v)
}

var (
	// CharacterV1 maps list-form Psych animations to the Base animation mapping.
	CharacterV1 Schema = objectSchema{
		kind:    models.KindCharacter,
		name:    "character-v1",
		detect:  detect.Character,
		toBase:  transform.CharacterPsychToBase,
		toPsych: transform.CharacterBaseToPsych,
	}
	// CharacterV2 maps between the two object-list animation layouts.
	CharacterV2 Schema = objectSchema{
		kind:    models.KindCharacter,
		name:    "character-v2",
		detect:  detectCharacterV2,
		toBase:  transform.CharacterV2PsychToBase,
		toPsych: transform.CharacterV2BaseToPsych,
	}
	// Chart regroups notes between sections and a flat list.
	Chart Schema = chartSchema{}
	// Events moves the event list in and out of the song wrapper.
	Events Schema = objectSchema{
		kind:    models.KindEvents,
		name:    "events",
		detect:  detect.Events,
		toBase:  transform.EventsPsychToBase,
		toPsych: transform.EventsBaseToPsych,
	}
	// Stage converts layer lists to and from the background/foreground layout.
	Stage Schema = objectSchema{
		kind:    models.KindStage,
		name:    "stage",
		detect:  detect.Stage,
		toBase:  transform.StagePsychToBase,
		toPsych: transform.StageBaseToPsych,
	}
	// Week converts song entries and week metadata.
	Week Schema = objectSchema{
		kind:    models.KindWeek,
		name:    "week",
		detect:  detect.Week,
		toBase:  transform.WeekPsychToBase,
		toPsych: transform.WeekBaseToPsych,
	}
)

// CharacterVariant selects how character documents are handled.
type CharacterVariant string

const (
	CharacterAuto CharacterVariant = "auto"
	CharacterV1ID CharacterVariant = "v1"
	CharacterV2ID CharacterVariant = "v2"
)

// ParseCharacterVariant validates a variant name from config or flags.
func ParseCharacterVariant(s string) (CharacterVariant, error) {
	switch v := CharacterVariant(s); v {
	case CharacterAuto, CharacterV1ID, CharacterV2ID:
		return v, nil
	case "":
		return CharacterAuto, nil
	default:
		return "", fmt.Errorf("unknown character schema %q (want auto, v1 or v2)", s)
	}
}

// Resolve returns the schema handling documents of kind. For characters the
// variant is forced by pref, or chosen from the document when pref is auto.
func Resolve(kind models.Kind, v models.JSONValue, pref CharacterVariant) (Schema, bool) {
	switch kind {
	case models.KindCharacter:
		switch pref {
		case CharacterV1ID:
			return CharacterV1, true
		case CharacterV2ID:
			return CharacterV2, true
		}
		if looksLikeCharacterV2(v) {
			return CharacterV2, true
		}
		return CharacterV1, true
	case models.KindChart:
		return Chart, true
	case models.KindEvents:
		return Events, true
	case models.KindStage:
		return Stage, true
	case models.KindWeek:
		return Week, true
	default:
		return nil, false
	}
}

// All lists every registered schema.
func All() []Schema {
	return []Schema{CharacterV1, CharacterV2, Chart, Events, Stage, Week}
}
