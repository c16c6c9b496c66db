package transform

import (
	"fmt"
	"math"
	"sort"

	"github.com/mcncl/funkinconv/internal/errors"
	"github.com/mcncl/funkinconv/internal/models"
)

// DefaultBPM is used wherever a chart, event or stage file omits its tempo.
const DefaultBPM = 120

// SectionLength returns the length in milliseconds of one four-beat section.
func SectionLength(bpm float64) float64 {
	return (60000 / bpm) * 4
}

// maxSectionIndex bounds section indexes to integers a float64 holds exactly.
const maxSectionIndex = 1 << 53

// SectionIndex returns the section a note at strumTime falls into.
func SectionIndex(strumTime, sectionLength float64) (int, error) {
	q := math.Floor(strumTime / sectionLength)
	if math.IsNaN(q) || q < -maxSectionIndex || q > maxSectionIndex {
		return 0, errors.NewShapeError("strumTime %v is out of range", strumTime)
	}
	return int(q), nil
}

// ChartPsychToBase flattens song.notes sections into a single note list:
//
//	{song: {notes: [{mustHitSection(true), sectionNotes: [[time, noteData(0), sustain(0)]]}], events([]), bpm(120)}}
//	-> {notes: [{strumTime, noteData, mustPress, sustainLength}], events, bpm}
func ChartPsychToBase(data models.JSONObject) (models.JSONObject, error) {
	song, err := objectField(data, "song", models.JSONObject{})
	if err != nil {
		return nil, err
	}
	sections, err := arrayField(song, "notes", models.JSONArray{})
	if err != nil {
		return nil, err
	}

	flat := models.JSONArray{}
	for si, s := range sections {
		section, ok := models.AsObject(s)
		if !ok {
			return nil, errors.NewShapeError("section %d must be an object, got %s", si, typeName(s))
		}
		mustHit := field(section, "mustHitSection", true)
		notes, ok := models.AsArray(section.Get("sectionNotes", models.JSONArray{}))
		if !ok {
			return nil, errors.NewShapeError("section %d sectionNotes must be a list, got %s", si, typeName(section["sectionNotes"]))
		}
		for ni, n := range notes {
			note, ok := models.AsArray(n)
			if !ok {
				return nil, errors.NewShapeError("note %d in section %d must be a list, got %s", ni, si, typeName(n))
			}
			if len(note) == 0 {
				return nil, errors.NewShapeError("note %d in section %d is empty", ni, si)
			}
			flat = append(flat, models.JSONObject{
				"strumTime":     models.Clone(note[0]),
				"noteData":      at(note, 1, 0),
				"mustPress":     models.Clone(mustHit),
				"sustainLength": at(note, 2, 0),
			})
		}
	}

	return models.JSONObject{
		"notes":  flat,
		"events": field(song, "events", models.JSONArray{}),
		"bpm":    field(song, "bpm", DefaultBPM),
	}, nil
}

// ChartBaseToPsych buckets a flat note list into four-beat sections.
//
// data is either {notes, events([]), bpm(120)} or a bare note list. A note
// lands in section floor(strumTime / ((60000/bpm)*4)); sections are emitted
// in ascending index order, empty sections are skipped, and a section's
// mustHitSection is the mustPress (true) of the first note placed in it.
func ChartBaseToPsych(data models.JSONValue) (models.JSONObject, error) {
	var (
		notes  models.JSONArray
		events models.JSONValue = models.JSONArray{}
		bpmVal models.JSONValue = DefaultBPM
	)

	if arr, ok := models.AsArray(data); ok {
		notes = arr
	} else {
		obj, ok := models.AsObject(data)
		if !ok {
			return nil, errors.NewShapeError("chart must be an object or a list of notes, got %s", typeName(data))
		}
		var err error
		if notes, err = arrayField(obj, "notes", models.JSONArray{}); err != nil {
			return nil, err
		}
		events = field(obj, "events", models.JSONArray{})
		bpmVal = field(obj, "bpm", DefaultBPM)
	}

	bpm, ok := models.AsFloat(bpmVal)
	if !ok || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return nil, errors.NewTransformError(fmt.Sprintf("chart bpm must be a number, got %s", typeName(bpmVal)), errors.ErrInvalidBPM)
	}
	if bpm <= 0 {
		return nil, errors.NewTransformError(fmt.Sprintf("chart bpm is %v", bpm), errors.ErrInvalidBPM)
	}
	sectionLength := SectionLength(bpm)

	buckets := make(map[int]models.JSONObject)
	for i, n := range notes {
		note, ok := models.AsObject(n)
		if !ok {
			return nil, errors.NewShapeError("note %d must be an object, got %s", i, typeName(n))
		}
		strumTime := field(note, "strumTime", 0)
		st, err := number(strumTime, fmt.Sprintf("note %d strumTime", i))
		if err != nil {
			return nil, err
		}

		idx, err := SectionIndex(st, sectionLength)
		if err != nil {
			return nil, err
		}
		section, ok := buckets[idx]
		if !ok {
			section = models.JSONObject{
				"sectionNotes":   models.JSONArray{},
				"mustHitSection": field(note, "mustPress", true),
			}
			buckets[idx] = section
		}
		section["sectionNotes"] = append(section["sectionNotes"].(models.JSONArray), models.JSONArray{
			strumTime,
			field(note, "noteData", 0),
			field(note, "sustainLength", 0),
		})
	}

	indexes := make([]int, 0, len(buckets))
	for idx := range buckets {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	sections := make(models.JSONArray, 0, len(indexes))
	for _, idx := range indexes {
		sections = append(sections, buckets[idx])
	}

	return models.JSONObject{
		"song": models.JSONObject{
			"notes":  sections,
			"events": events,
			"bpm":    bpmVal,
		},
	}, nil
}
