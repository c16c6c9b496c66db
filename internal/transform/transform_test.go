package transform

import (
	"encoding/json"
	stderrors "errors"
	"math"
	"testing"

	"github.com/mcncl/funkinconv/internal/errors"
	"github.com/mcncl/funkinconv/internal/models"
	"github.com/mcncl/funkinconv/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseObject(t *testing.T, s string) models.JSONObject {
	t.Helper()
	doc, err := parser.ParseString(s)
	require.NoError(t, err)
	obj, ok := doc.Root.(models.JSONObject)
	require.True(t, ok, "root must be an object")
	return obj
}

func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestCharacterPsychToBase(t *testing.T) {
	in := parseObject(t, `{"image":"bf","scale":1,"position":[10,20],"animations":[["idle","BF idle dance",0,0]]}`)

	out, err := CharacterPsychToBase(in)
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"image":"bf","scale":1,"x":10,"y":20,"animations":{"idle":{"anim":"BF idle dance","offset_x":0,"offset_y":0}}}`,
		toJSON(t, out))
}

func TestCharacterPsychToBase_Defaults(t *testing.T) {
	out, err := CharacterPsychToBase(parseObject(t, `{"animations":[["singLEFT","BF NOTE LEFT"]]}`))
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"image":"","scale":1.0,"x":0,"y":0,"animations":{"singLEFT":{"anim":"BF NOTE LEFT","offset_x":0,"offset_y":0}}}`,
		toJSON(t, out))
}

func TestCharacterPsychToBase_BadShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "short position", input: `{"position":[1]}`, want: "position has 1 element(s), want 2"},
		{name: "position not a list", input: `{"position":"here","animations":[]}`, want: `"position" must be a list, got string`},
		{name: "animation not a list", input: `{"animations":[{"anim":"idle"}]}`, want: "animation 0 must be a list, got object"},
		{name: "animation too short", input: `{"animations":[["idle"]]}`, want: "animation 0 has 1 element(s), want at least 2"},
		{name: "animation name not a string", input: `{"animations":[[1,"idle"]]}`, want: "animation 0 name must be a string, got number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CharacterPsychToBase(parseObject(t, tt.input))
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrUnexpectedShape))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCharacterBaseToPsych_IsLeftInverse(t *testing.T) {
	in := parseObject(t, `{"image":"bf","scale":1,"position":[10,20],"animations":[["idle","BF idle dance",0,0]]}`)
	base, err := CharacterPsychToBase(in)
	require.NoError(t, err)

	psych, err := CharacterBaseToPsych(base)
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"image":"bf","scale":1,"position":[10,20],"animations":[["idle","BF idle dance",0,0]]}`,
		toJSON(t, psych))
}

func TestCharacterBaseToPsych_SortedAndDefaulted(t *testing.T) {
	in := parseObject(t, `{"x":5,"animations":{"singUP":{"anim":"up","offset_y":-3},"idle":{}}}`)

	out, err := CharacterBaseToPsych(in)
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"image":"","scale":1.0,"position":[5,0],"animations":[["idle","",0,0],["singUP","up",0,-3]]}`,
		toJSON(t, out))
}

func TestCharacterBaseToPsych_BadShapes(t *testing.T) {
	_, err := CharacterBaseToPsych(parseObject(t, `{"animations":[]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"animations" must be an object, got list`)

	_, err = CharacterBaseToPsych(parseObject(t, `{"animations":{"idle":"BF idle"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `animation "idle" must be an object, got string`)
}

func TestCharacterPsychToBase_DoesNotMutateInput(t *testing.T) {
	in := parseObject(t, `{"image":"bf","position":[10,20],"animations":[["idle","BF idle dance",1,2]]}`)
	before := toJSON(t, in)

	out, err := CharacterPsychToBase(in)
	require.NoError(t, err)
	anims := out["animations"].(models.JSONObject)
	anims["idle"].(models.JSONObject)["anim"] = "changed"
	out["x"] = json.Number("999")

	assert.JSONEq(t, before, toJSON(t, in))
}

func TestCharacterV2_PsychToBase(t *testing.T) {
	in := parseObject(t, `{"character":"pico","image":"characters/Pico_FNF_assetss","scale":1,
		"animations":[{"anim":"idle","name":"Pico Idle Dance","fps":24,"loop":false,"offsets":[3,-2,9]},{"anim":"singUP","name":"pico Up note0"}]}`)

	out, err := CharacterV2PsychToBase(in)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name":"pico","image":"characters/Pico_FNF_assetss","scale":1,"flip_x":false,"flip_y":false,
		"animations":[
			{"anim":"idle","name":"Pico Idle Dance","fps":24,"loop":false,"offsets":[3,-2]},
			{"anim":"singUP","name":"pico Up note0","fps":24,"loop":true,"offsets":[0,0]}
		]}`, toJSON(t, out))
}

func TestCharacterV2_BaseToPsych(t *testing.T) {
	in := parseObject(t, `{"name":"pico","image":"pico","flip_x":true,"animations":[{"anim":"idle","fps":12,"offsets":[1,2]}]}`)

	out, err := CharacterV2BaseToPsych(in)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"character":"pico","image":"pico","scale":1.0,
		"animations":[{"anim":"idle","name":"","fps":12,"loop":true,"offsets":[1,2]}]}`, toJSON(t, out))
}

func TestCharacterV2_BadOffsets(t *testing.T) {
	_, err := CharacterV2PsychToBase(parseObject(t, `{"animations":[{"anim":"idle","offsets":[1]}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "animation 0 offsets must be a list of two numbers")

	_, err = CharacterV2BaseToPsych(parseObject(t, `{"animations":["idle"]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "animation 0 must be an object, got string")
}

func TestSectionIndex(t *testing.T) {
	length := SectionLength(120)
	assert.Equal(t, 2000.0, length)

	tests := []struct {
		strumTime float64
		want      int
	}{
		{0, 0},
		{1999, 0},
		{2000, 1},
		{2500, 1},
		{-1, -1},
	}
	for _, tt := range tests {
		got, err := SectionIndex(tt.strumTime, length)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "strumTime %v", tt.strumTime)
	}

	for _, st := range []float64{1e300, -1e300, math.NaN()} {
		_, err := SectionIndex(st, length)
		assert.True(t, stderrors.Is(err, errors.ErrUnexpectedShape), "strumTime %v", st)
	}
}

func TestChartPsychToBase(t *testing.T) {
	in := parseObject(t, `{"song":{"bpm":150,"events":[[0,[["Hey!","BF","0.6"]]]],"notes":[
		{"mustHitSection":true,"sectionNotes":[[0,1,0],[400,2]]},
		{"mustHitSection":false,"sectionNotes":[[1600,5,200]]},
		{"sectionNotes":[[3200]]}
	]}}`)

	out, err := ChartPsychToBase(in)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"bpm":150,
		"events":[[0,[["Hey!","BF","0.6"]]]],
		"notes":[
			{"strumTime":0,"noteData":1,"mustPress":true,"sustainLength":0},
			{"strumTime":400,"noteData":2,"mustPress":true,"sustainLength":0},
			{"strumTime":1600,"noteData":5,"mustPress":false,"sustainLength":200},
			{"strumTime":3200,"noteData":0,"mustPress":true,"sustainLength":0}
		]}`, toJSON(t, out))
}

func TestChartPsychToBase_Defaults(t *testing.T) {
	out, err := ChartPsychToBase(parseObject(t, `{"song":{}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"notes":[],"events":[],"bpm":120}`, toJSON(t, out))
}

func TestChartPsychToBase_BadShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "song not an object", input: `{"song":"bopeebo"}`, want: `"song" must be an object, got string`},
		{name: "section not an object", input: `{"song":{"notes":[[0,1]]}}`, want: "section 0 must be an object, got list"},
		{name: "sectionNotes not a list", input: `{"song":{"notes":[{"sectionNotes":{}}]}}`, want: "section 0 sectionNotes must be a list, got object"},
		{name: "note not a list", input: `{"song":{"notes":[{"sectionNotes":[5]}]}}`, want: "note 0 in section 0 must be a list, got number"},
		{name: "empty note", input: `{"song":{"notes":[{"sectionNotes":[[0,1],[]]}]}}`, want: "note 1 in section 0 is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ChartPsychToBase(parseObject(t, tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestChartBaseToPsych_Bucketing(t *testing.T) {
	in := parseObject(t, `{"bpm":120,"events":[],"notes":[
		{"strumTime":2500,"noteData":3,"mustPress":false,"sustainLength":0},
		{"strumTime":0,"noteData":1,"mustPress":true},
		{"strumTime":1999,"noteData":2,"mustPress":false},
		{"strumTime":6000,"noteData":0}
	]}`)

	out, err := ChartBaseToPsych(in)
	require.NoError(t, err)

	assert.JSONEq(t, `{"song":{"bpm":120,"events":[],"notes":[
		{"mustHitSection":true,"sectionNotes":[[0,1,0],[1999,2,0]]},
		{"mustHitSection":false,"sectionNotes":[[2500,3,0]]},
		{"mustHitSection":true,"sectionNotes":[[6000,0,0]]}
	]}}`, toJSON(t, out))
}

func TestChartBaseToPsych_FirstNoteDecidesMustHit(t *testing.T) {
	in := parseObject(t, `{"notes":[
		{"strumTime":100,"mustPress":false},
		{"strumTime":200,"mustPress":true}
	]}`)

	out, err := ChartBaseToPsych(in)
	require.NoError(t, err)

	sections := out["song"].(models.JSONObject)["notes"].(models.JSONArray)
	require.Len(t, sections, 1)
	assert.Equal(t, false, sections[0].(models.JSONObject)["mustHitSection"])
}

func TestChartBaseToPsych_FlatList(t *testing.T) {
	doc, err := parser.ParseString(`[{"strumTime":2500,"noteData":1,"mustPress":true,"sustainLength":100}]`)
	require.NoError(t, err)

	out, err := ChartBaseToPsych(doc.Root)
	require.NoError(t, err)

	assert.JSONEq(t, `{"song":{"bpm":120,"events":[],"notes":[
		{"mustHitSection":true,"sectionNotes":[[2500,1,100]]}
	]}}`, toJSON(t, out))
}

func TestChartBaseToPsych_BadInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "zero bpm", input: `{"notes":[],"bpm":0}`, want: "chart bpm is 0", wantErr: errors.ErrInvalidBPM},
		{name: "negative bpm", input: `{"notes":[],"bpm":-90}`, want: "chart bpm is -90", wantErr: errors.ErrInvalidBPM},
		{name: "string bpm", input: `{"notes":[],"bpm":"fast"}`, want: "chart bpm must be a number, got string", wantErr: errors.ErrInvalidBPM},
		{name: "null bpm", input: `{"notes":[],"bpm":null}`, want: "chart bpm must be a number, got null", wantErr: errors.ErrInvalidBPM},
		{name: "huge strumTime", input: `{"notes":[{"strumTime":1e300}]}`, want: "strumTime 1e+300 is out of range", wantErr: errors.ErrUnexpectedShape},
		{name: "note not an object", input: `{"notes":[[0,1,0]]}`, want: "note 0 must be an object, got list", wantErr: errors.ErrUnexpectedShape},
		{name: "strumTime not a number", input: `{"notes":[{"strumTime":"0"}]}`, want: "note 0 strumTime must be a number, got string", wantErr: errors.ErrUnexpectedShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ChartBaseToPsych(parseObject(t, tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.True(t, stderrors.Is(err, tt.wantErr))
		})
	}

	_, err := ChartBaseToPsych("chart")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart must be an object or a list of notes")
}

func TestChart_RoundTrip(t *testing.T) {
	in := parseObject(t, `{"song":{"bpm":100,"events":[],"notes":[
		{"mustHitSection":true,"sectionNotes":[[0,0,0],[600,1,0]]},
		{"mustHitSection":false,"sectionNotes":[[2400,4,300]]}
	]}}`)

	base, err := ChartPsychToBase(in)
	require.NoError(t, err)
	psych, err := ChartBaseToPsych(base)
	require.NoError(t, err)

	assert.JSONEq(t, toJSON(t, in), toJSON(t, psych))
}

func TestEventsPsychToBase(t *testing.T) {
	nested, err := EventsPsychToBase(parseObject(t, `{"song":{"events":[[1000,[["Hey!","",""]]]],"bpm":160,"notes":[]}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"events":[[1000,[["Hey!","",""]]]],"bpm":160}`, toJSON(t, nested))

	topLevel, err := EventsPsychToBase(parseObject(t, `{"events":[[0,[]]]}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"events":[[0,[]]],"bpm":120}`, toJSON(t, topLevel))

	emptySong, err := EventsPsychToBase(parseObject(t, `{"song":{},"events":[[0,[]]],"bpm":90}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"events":[],"bpm":120}`, toJSON(t, emptySong), "song takes precedence over top-level keys")

	_, err = EventsPsychToBase(parseObject(t, `{"song":null}`))
	require.Error(t, err)
}

func TestEventsBaseToPsych_AlwaysEmptiesNotes(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"events":[[0,[["Hey!","",""]]]],"bpm":140}`,
		`{"events":[],"notes":[{"strumTime":0}]}`,
		`{"song":{"notes":[1,2,3]}}`,
	}

	for _, in := range inputs {
		out, err := EventsBaseToPsych(parseObject(t, in))
		require.NoError(t, err)
		song := out["song"].(models.JSONObject)
		assert.Equal(t, models.JSONArray{}, song["notes"], "input %s", in)
	}

	out, err := EventsBaseToPsych(parseObject(t, `{"events":[[0,[]]],"bpm":140}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"song":{"events":[[0,[]]],"bpm":140,"notes":[]}}`, toJSON(t, out))
}

func TestStagePsychToBase(t *testing.T) {
	in := parseObject(t, `{"stage":{
		"name":"stage","background":"stageback","bgScroll":0.9,
		"foreground":["stagefront","stagecurtains"],
		"props":[{"name":"lamp"}],"camera":{"x":100,"y":-50}
	}}`)

	out, err := StagePsychToBase(in)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name":"stage","image":"stageback","bpm":120,
		"layers":[
			{"type":"background","image":"stageback","scroll":0.9},
			{"type":"foreground","items":["stagefront","stagecurtains"]}
		],
		"objects":[{"name":"lamp"}],
		"camera":{"x":100,"y":-50}
	}`, toJSON(t, out))
}

func TestStagePsychToBase_FlatAndDefaults(t *testing.T) {
	out, err := StagePsychToBase(parseObject(t, `{"objects":[],"song":{"bpm":180}}`))
	require.NoError(t, err)

	assert.JSONEq(t, `{"image":"","bpm":180,"layers":[],"objects":[],"camera":{"x":0,"y":0}}`, toJSON(t, out))
}

func TestStagePsychToBase_ImageBeatsBackground(t *testing.T) {
	out, err := StagePsychToBase(parseObject(t, `{"image":"full","background":"bg","bpm":95}`))
	require.NoError(t, err)

	assert.Equal(t, "full", out["image"])
	assert.Equal(t, json.Number("95"), out["bpm"])
	layers := out["layers"].(models.JSONArray)
	require.Len(t, layers, 1)
	assert.JSONEq(t, `{"type":"background","image":"bg","scroll":1.0}`, toJSON(t, layers[0]))
}

func TestStageBaseToPsych(t *testing.T) {
	in := parseObject(t, `{
		"name":"spooky","image":"halloween_bg","bpm":100,
		"layers":[
			{"type":"background","image":"halloween_bg","scroll":0.5},
			{"type":"foreground","items":["fog"]},
			{"type":"overlay","image":"ignored"}
		],
		"objects":[{"name":"tree"}]
	}`)

	out, err := StageBaseToPsych(in)
	require.NoError(t, err)

	assert.JSONEq(t, `{"stage":{
		"name":"spooky","image":"halloween_bg","bpm":100,
		"background":"halloween_bg","bgScroll":0.5,
		"foreground":["fog"],
		"objects":[{"name":"tree"}],
		"camera":{"x":0,"y":0}
	}}`, toJSON(t, out))
}

func TestStageBaseToPsych_Fallbacks(t *testing.T) {
	out, err := StageBaseToPsych(parseObject(t, `{"bg":"legacy","layers":[{"type":"foreground","image":"front"},{"type":"background"}]}`))
	require.NoError(t, err)

	assert.JSONEq(t, `{"stage":{
		"image":"legacy","bpm":120,"foreground":"front",
		"objects":[],"camera":{"x":0,"y":0}
	}}`, toJSON(t, out))

	_, err = StageBaseToPsych(parseObject(t, `{"layers":["background"]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layer 0 must be an object, got string")
}

func TestWeekPsychToBase(t *testing.T) {
	in := parseObject(t, `{"weekBefore":"tutorial","weekName":"Daddy Dearest","songs":[["Bopeebo","dad",[146,113,253]]],
		"weekCharacters":["dad","bf","gf"],"hiddenUntilUnlocked":true,"hideStoryMode":false}`)

	out, err := WeekPsychToBase(in)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"weekName":"Daddy Dearest","weekCharacters":["dad","bf","gf"],
		"weekSongs":[["Bopeebo","dad",[146,113,253]]],
		"startUnlocked":true,"hiddenUntilUnlocked":true
	}`, toJSON(t, out))
}

func TestWeekPsychToBase_Fallbacks(t *testing.T) {
	out, err := WeekPsychToBase(parseObject(t, `{"week":"week1","characters":["dad"],"startUnlocked":false}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"weekName":"week1","weekCharacters":["dad"],"weekSongs":[],"startUnlocked":false,"hiddenUntilUnlocked":false}`, toJSON(t, out))

	out, err = WeekPsychToBase(parseObject(t, `{}`))
	require.NoError(t, err)
	assert.Equal(t, "week", out["weekName"])
}

func TestWeekBaseToPsych(t *testing.T) {
	in := parseObject(t, `{"weekName":"Spooky Month","weekSongs":["Spookeez","South"],"weekCharacters":["spooky","bf","gf"]}`)

	out, err := WeekBaseToPsych(in)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"week":"Spooky Month","songs":["Spookeez","South"],"weekCharacters":["spooky","bf","gf"],
		"weekBefore":null,"startUnlocked":true,"hiddenUntilUnlocked":false
	}`, toJSON(t, out))

	fallback, err := WeekBaseToPsych(parseObject(t, `{"week":"w","songs":["Tutorial"]}`))
	require.NoError(t, err)
	assert.Equal(t, "w", fallback["week"])
	assert.Equal(t, models.JSONArray{"Tutorial"}, fallback["songs"])
	assert.Equal(t, models.JSONArray{}, fallback["weekCharacters"])
}
