package cql2

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundtripScenarios mirrors the lettered concrete scenarios: each pairs
// an equivalent cql2-text and cql2-json encoding of the same predicate.
var roundtripScenarios = []struct {
	name string
	text string
	json string
}{
	{
		name: "simple_comparison",
		text: `city = 'Toronto'`,
		json: `{"op":"=","args":[{"property":"city"},"Toronto"]}`,
	},
	{
		name: "arithmetic_in_comparison",
		text: `vehicle_height > (bridge_clearance - 1)`,
		json: `{"op":">","args":[{"property":"vehicle_height"},
			{"op":"-","args":[{"property":"bridge_clearance"},1]}]}`,
	},
	{
		name: "like",
		text: `name LIKE 'Smith%'`,
		json: `{"op":"like","args":[{"property":"name"},"Smith%"]}`,
	},
	{
		name: "between",
		text: `depth BETWEEN 100 AND 150`,
		json: `{"op":"between","args":[{"property":"depth"},100,150]}`,
	},
	{
		name: "temporal_interval",
		text: `T_DURING(event_time, INTERVAL('2020-01-01','2020-12-31'))`,
		json: `{"op":"t_during","args":[{"property":"event_time"},
			{"interval":["2020-01-01","2020-12-31"]}]}`,
	},
	{
		name: "not_and",
		text: `NOT (a = 1 AND b = 2)`,
		json: `{"op":"not","args":[{"op":"and","args":[
			{"op":"=","args":[{"property":"a"},1]},
			{"op":"=","args":[{"property":"b"},2]}]}]}`,
	},
	{
		name: "is_not_null",
		text: `geom IS NOT NULL`,
		json: `{"op":"not","args":[{"op":"isNull","args":{"property":"geom"}}]}`,
	},
}

// TestRoundtrip_JSONToASTToJSON exercises decode(encode(AST)) ≡ AST: every
// JSON fixture decodes to an AST that re-encodes to the same structural JSON.
func TestRoundtrip_JSONToASTToJSON(t *testing.T) {
	for _, sc := range roundtripScenarios {
		t.Run(sc.name, func(t *testing.T) {
			expr, err := ParseJSON([]byte(sc.json))
			require.NoError(t, err)

			v, err := RenderJSON(expr)
			require.NoError(t, err)
			data, err := json.Marshal(v)
			require.NoError(t, err)
			assert.JSONEq(t, sc.json, string(data))

			expr2, err := ParseJSON(data)
			require.NoError(t, err)
			assert.Equal(t, expr, expr2)
		})
	}
}

// TestRoundtrip_TextToASTToText exercises determinism of RenderText: parsing
// the rendered text again yields an AST equal to the first parse.
func TestRoundtrip_TextToASTToText(t *testing.T) {
	for _, sc := range roundtripScenarios {
		t.Run(sc.name, func(t *testing.T) {
			expr, err := ParseText(sc.text)
			require.NoError(t, err)

			out, err := RenderText(expr)
			require.NoError(t, err)

			out2, err := RenderText(expr)
			require.NoError(t, err)
			assert.Equal(t, out, out2, "RenderText must be deterministic")

			expr2, err := ParseText(out)
			require.NoError(t, err)
			assert.Equal(t, expr, expr2)
		})
	}
}

// TestRoundtrip_JSONViaText exercises parse_text(render_text(parse_json(j)))
// ≡ parse_json(j): converting a JSON fixture to text and back preserves
// the AST.
func TestRoundtrip_JSONViaText(t *testing.T) {
	for _, sc := range roundtripScenarios {
		t.Run(sc.name, func(t *testing.T) {
			fromJSON, err := ParseJSON([]byte(sc.json))
			require.NoError(t, err)

			text, err := RenderText(fromJSON)
			require.NoError(t, err)

			fromText, err := ParseText(text)
			require.NoError(t, err)

			assert.Equal(t, fromJSON, fromText)
		})
	}
}

// TestRoundtrip_TextViaJSON exercises parse_json(render_json(parse_text(t)))
// ≡ parse_text(t): converting a text fixture to JSON and back preserves
// the AST.
func TestRoundtrip_TextViaJSON(t *testing.T) {
	for _, sc := range roundtripScenarios {
		t.Run(sc.name, func(t *testing.T) {
			fromText, err := ParseText(sc.text)
			require.NoError(t, err)

			v, err := RenderJSON(fromText)
			require.NoError(t, err)
			data, err := json.Marshal(v)
			require.NoError(t, err)

			fromJSON, err := ParseJSON(data)
			require.NoError(t, err)

			assert.Equal(t, fromText, fromJSON)
		})
	}
}

// TestRoundtrip_FilterWrapper confirms the Filter wrapper round-trips
// through encoding/json without altering the underlying expression.
func TestRoundtrip_FilterWrapper(t *testing.T) {
	for _, sc := range roundtripScenarios {
		t.Run(sc.name, func(t *testing.T) {
			var f Filter
			require.NoError(t, json.Unmarshal([]byte(sc.json), &f))

			data, err := json.Marshal(&f)
			require.NoError(t, err)
			assert.JSONEq(t, sc.json, string(data))

			var f2 Filter
			require.NoError(t, json.Unmarshal(data, &f2))
			assert.Equal(t, f.Expression, f2.Expression)
		})
	}
}
