package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"json-prompt-generator/backend/internal/features/normalization/application"
	"json-prompt-generator/backend/internal/features/normalization/domain"
)

func TestWritePrompt(t *testing.T) {
	p := domain.NewStructuredPrompt()
	p.Set("task", "write code")
	p.Set("comments", true)

	var buf bytes.Buffer
	require.NoError(t, writePrompt(&buf, p, "json"))
	assert.Equal(t, "{\n  \"task\": \"write code\",\n  \"comments\": true\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, writePrompt(&buf, p, "yaml"))
	assert.Equal(t, "task: write code\ncomments: true\n", buf.String())
}

func TestRunBatchKeepsInputOrder(t *testing.T) {
	service = application.NewNormalizationService(application.NewHeuristicOnlyGenerator(), 8, nil)
	batchConcurrency = 3

	path := filepath.Join(t.TempDir(), "requests.txt")
	input := "Write a Python function to sort a list\n\n  Create a sunset landscape painting \nTell me a joke\n"
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	require.NoError(t, runBatch(cmd, []string{path}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)

	wantTasks := []string{"write code", "generate image", "Tell me a joke"}
	for i, line := range lines {
		var got struct {
			OriginalText string         `json:"original_text"`
			JSONPrompt   map[string]any `json:"json_prompt"`
			Status       string         `json:"status"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &got))
		assert.Equal(t, wantTasks[i], got.JSONPrompt["task"])
		assert.Equal(t, "heuristic: AI backend not configured", got.Status)
	}
}

func TestReadLinesFromStdin(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("one\n\n two \n"))

	lines, err := readLines(cmd, "-")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)

	_, err = readLines(cmd, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
