package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStructuredPromptKeepsInsertionOrder(t *testing.T) {
	p := NewStructuredPrompt()
	p.Set("task", "write code")
	p.Set("language", "Python")
	p.Set("comments", true)
	p.Set("task", "write a function")

	assert.Equal(t, []string{"task", "language", "comments"}, p.Keys())
	assert.Equal(t, "write a function", p.String("task"))

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `{"task":"write a function","language":"Python","comments":true}`, string(out))
}

func TestStructuredPromptPrependDeleteTruncate(t *testing.T) {
	p := NewStructuredPrompt()
	for _, k := range []string{"a", "b", "c", "d"} {
		p.Set(k, k)
	}

	p.Prepend("c", "C")
	assert.Equal(t, []string{"c", "a", "b", "d"}, p.Keys())
	assert.Equal(t, "C", p.String("c"))

	p.Delete("a")
	assert.Equal(t, []string{"c", "b", "d"}, p.Keys())
	assert.False(t, p.Has("a"))

	p.Truncate(2)
	assert.Equal(t, []string{"c", "b"}, p.Keys())
	assert.False(t, p.Has("d"))

	p.Truncate(10)
	assert.Equal(t, 2, p.Len())
}

func TestStructuredPromptMergeKeepsExisting(t *testing.T) {
	p := NewStructuredPrompt()
	p.Set("task", "generate image")
	p.Set("style", "painting")

	defaults := NewStructuredPrompt()
	defaults.Set("style", "realistic")
	defaults.Set("quality", "high")

	p.Merge(defaults)
	assert.Equal(t, []string{"task", "style", "quality"}, p.Keys())
	assert.Equal(t, "painting", p.String("style"))
}

func TestParseStructuredPrompt(t *testing.T) {
	p, err := ParseStructuredPrompt([]byte(`{"z": "last", "a": {"inner": [1, "two", false]}, "n": 3.5}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a", "n"}, p.Keys())
	want := map[string]any{
		"z": "last",
		"a": map[string]any{"inner": []any{json.Number("1"), "two", false}},
		"n": json.Number("3.5"),
	}
	if diff := cmp.Diff(want, p.ToMap()); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"z":"last","a":{"inner":[1,"two",false]},"n":3.5}`, string(out))
}

func TestParseStructuredPromptRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"array", `["a", "b"]`},
		{"string", `"task"`},
		{"trailing comma", `{"a": 1,}`},
		{"missing comma", `{"a": "b" "c": "d"}`},
		{"trailing data", `{"a": 1} {"b": 2}`},
		{"unterminated", `{"a": 1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStructuredPrompt([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"task":          "task",
		"Output Format": "output_format",
		"outputFormat":  "output_format",
		"output-format": "output_format",
		"  Word Count ": "word_count",
		"HTTPMethod":    "httpmethod",
		"size2x":        "size2x",
		"!!!":           "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeKey(in), "NormalizeKey(%q)", in)
	}
}

func TestNormalizeKeysFirstWins(t *testing.T) {
	nested := NewStructuredPrompt()
	nested.Set("Frame Rate", "24fps")

	p := NewStructuredPrompt()
	p.Set("Output Format", "report")
	p.Set("output_format", "table")
	p.Set("Details", nested)

	got := p.NormalizeKeys()
	assert.Equal(t, []string{"output_format", "details"}, got.Keys())
	assert.Equal(t, "report", got.String("output_format"))

	v, ok := got.Get("details")
	require.True(t, ok)
	assert.Equal(t, []string{"frame_rate"}, v.(*StructuredPrompt).Keys())
}

func TestMarshalYAMLKeepsOrder(t *testing.T) {
	p, err := ParseStructuredPrompt([]byte(`{"task": "analyze data", "visualizations": true, "count": 5, "tags": ["a", "b"]}`))
	require.NoError(t, err)

	out, err := yaml.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, "task: analyze data\nvisualizations: true\ncount: 5\ntags:\n    - a\n    - b\n", string(out))
}

func TestUnmarshalJSONIntoField(t *testing.T) {
	var resp PromptResponse
	require.NoError(t, json.Unmarshal([]byte(`{"original_text": "hi", "json_prompt": {"b": "1", "a": "2"}}`), &resp))
	assert.Equal(t, []string{"b", "a"}, resp.JSONPrompt.Keys())
}
