package application

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"json-prompt-generator/backend/internal/features/normalization/domain"
)

func TestRepairPasses(t *testing.T) {
	tests := []struct {
		name  string
		apply func(string) string
		input string
		want  string
	}{
		{
			name:  "trailing commas",
			apply: RemoveTrailingCommas,
			input: `{"a": 1, "b": [1, 2,],}`,
			want:  `{"a": 1, "b": [1, 2]}`,
		},
		{
			name:  "trailing commas before whitespace",
			apply: RemoveTrailingCommas,
			input: "{\"a\": 1,\n}",
			want:  "{\"a\": 1\n}",
		},
		{
			name:  "trailing commas inside strings untouched",
			apply: RemoveTrailingCommas,
			input: `{"a": "x,}", "b": "y\",]"}`,
			want:  `{"a": "x,}", "b": "y\",]"}`,
		},
		{
			name:  "adjacent structures",
			apply: InsertCommasBetweenStructures,
			input: `{"items": [{"a": 1} {"b": 2}] ["c"]}`,
			want:  `{"items": [{"a": 1}, {"b": 2}], ["c"]}`,
		},
		{
			name:  "adjacent structures inside strings untouched",
			apply: InsertCommasBetweenStructures,
			input: `{"a": "} {"}`,
			want:  `{"a": "} {"}`,
		},
		{
			name:  "adjacent strings",
			apply: InsertCommasBetweenStrings,
			input: `{"task": "x" "style": "y"}`,
			want:  `{"task": "x", "style": "y"}`,
		},
		{
			name:  "adjacent strings escaped quote",
			apply: InsertCommasBetweenStrings,
			input: `{"a": "say \"hi\"" "b": "c"}`,
			want:  `{"a": "say \"hi\"", "b": "c"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.apply(tt.input))
		})
	}
}

func TestStripFences(t *testing.T) {
	tests := map[string]string{
		"```json\n{\"task\": \"x\"}\n```": `{"task": "x"}`,
		"```\n{\"task\": \"x\"}\n```":     `{"task": "x"}`,
		"  ```JSON\r\n{}\r\n```  ":         `{}`,
		`{"task": "x"}`:                    `{"task": "x"}`,
	}
	for in, want := range tests {
		assert.Equal(t, want, StripFences(in), "StripFences(%q)", in)
	}
}

func TestRepairAndParseFencedTrailingComma(t *testing.T) {
	outcome := RepairAndParse("```json\n{\"task\": \"x\",}\n```")

	require.Equal(t, domain.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, []domain.Field{{Key: "task", Value: "x"}}, outcome.Prompt.Fields())
}

func TestRepairAndParseExtractsFromProse(t *testing.T) {
	raw := "Sure! Here is your prompt:\n{\"task\": \"write code\", \"language\": \"Go\"}\nLet me know if you need more."
	outcome := RepairAndParse(raw)

	require.Equal(t, domain.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, []string{"task", "language"}, outcome.Prompt.Keys())
}

func TestRepairAndParseExtractsNestedFromProse(t *testing.T) {
	raw := `Result: {"task": "generate image", "details": {"lighting": "soft",}} done`
	outcome := RepairAndParse(raw)

	require.Equal(t, domain.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, []string{"task", "details"}, outcome.Prompt.Keys())
}

func TestRepairAndParseMissingCommas(t *testing.T) {
	outcome := RepairAndParse(`{"task": "write content" "tone": "casual"}`)

	require.Equal(t, domain.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "casual", outcome.Prompt.String("tone"))
}

func TestRepairAndParseMalformed(t *testing.T) {
	inputs := []string{
		"",
		"I cannot help with that.",
		"```json\n```",
		`["task", "x"]`,
		`{"task": }`,
		"{{{{",
	}
	for _, in := range inputs {
		outcome := RepairAndParse(in)
		assert.Equal(t, domain.OutcomeMalformed, outcome.Kind, "input %q", in)
		assert.Equal(t, in, outcome.Raw)
	}
}

// Any valid object, fenced and with trailing commas, parses to the same value as
// the clean text.
func TestRepairAndParseLaw(t *testing.T) {
	cases := []struct {
		clean string
		dirty string
	}{
		{
			clean: `{"task": "x"}`,
			dirty: "```json\n{\"task\": \"x\",}\n```",
		},
		{
			clean: `{"task": "analyze data", "metrics": ["revenue", "churn"], "visualizations": true}`,
			dirty: "```\n{\"task\": \"analyze data\", \"metrics\": [\"revenue\", \"churn\",], \"visualizations\": true,}\n```",
		},
		{
			clean: `{"task": "generate image", "composition": {"angle": "wide", "ratio": 1.5}}`,
			dirty: "```json\n{\"task\": \"generate image\", \"composition\": {\"angle\": \"wide\", \"ratio\": 1.5,},}\n```",
		},
	}
	for _, c := range cases {
		want, err := domain.ParseStructuredPrompt([]byte(c.clean))
		require.NoError(t, err)

		for _, raw := range []string{c.clean, c.dirty} {
			outcome := RepairAndParse(raw)
			require.Equal(t, domain.OutcomeSuccess, outcome.Kind, "input %q", raw)
			if diff := cmp.Diff(want.ToMap(), outcome.Prompt.ToMap()); diff != "" {
				t.Errorf("RepairAndParse(%q) mismatch (-want +got):\n%s", raw, diff)
			}
			assert.Equal(t, want.Keys(), outcome.Prompt.Keys())
		}
	}
}

func TestRepairAndParseDeepNestingInProse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		keys []string
	}{
		{
			name: "three levels",
			raw:  `Sure! {"task": "x", "a": {"b": {"c": 1}}}`,
			keys: []string{"task", "a"},
		},
		{
			name: "four levels with trailing text",
			raw:  "Here you go:\n{\"task\": \"generate image\", \"scene\": {\"sky\": {\"clouds\": {\"type\": \"cirrus\"}}}, \"style\": \"anime\"}\nEnjoy!",
			keys: []string{"task", "scene", "style"},
		},
		{
			name: "braces inside strings",
			raw:  `Output: {"task": "write code", "template": "func() { return }", "nested": {"x": {"y": "}"}}}`,
			keys: []string{"task", "template", "nested"},
		},
		{
			name: "stray quote in prose",
			raw:  `He said "here it is: {"task": "x", "a": {"b": {"c": 1,}}}`,
			keys: []string{"task", "a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := RepairAndParse(tt.raw)
			require.Equal(t, domain.OutcomeSuccess, outcome.Kind)
			assert.Equal(t, tt.keys, outcome.Prompt.Keys())
		})
	}
}

func TestBalancedObjects(t *testing.T) {
	assert.Equal(t,
		[]string{`{"a": {"b": {"c": 1}}}`, `{"d": "}{"}`},
		BalancedObjects(`x } {"a": {"b": {"c": 1}}} y {"d": "}{"} z {"open": 1`))
	assert.Empty(t, BalancedObjects("no objects here"))
}
