package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yogendra14/chatbot-ner/city"
)

// run executes the root command and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

func TestDetectCommand(t *testing.T) {
	out, err := run(t, "", "detect", "from", "chennai", "to", "mumbai")
	require.NoError(t, err)

	var res city.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Entities, 2)
	assert.Equal(t, "Chennai", res.Entities[0].Value)
	assert.Equal(t, city.From, res.Entities[0].Role)
	assert.Equal(t, "Mumbai", res.Entities[1].Value)
	assert.Equal(t, city.To, res.Entities[1].Role)
	assert.Equal(t, " from __city__ to __city__ ", res.Tagged)
}

func TestDetectCommandBotMessage(t *testing.T) {
	out, err := run(t, "", "detect", "-b", "What is your origin city?", "Pune")
	require.NoError(t, err)

	var res city.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Entities, 1)
	assert.Equal(t, city.From, res.Entities[0].Role)
}

func TestDetectCommandStdin(t *testing.T) {
	out, err := run(t, "mum-del\n", "detect")
	require.NoError(t, err)

	var res city.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Entities, 2)
	assert.Equal(t, "New Delhi", res.Entities[1].Value)
}

func TestDetectCommandLegacy(t *testing.T) {
	out, err := run(t, "", "detect", "--legacy", "pune", "to", "goa")
	require.NoError(t, err)

	var got legacyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []city.LegacyValue{
		{City: "Pune", Flags: city.Flags{From: true}},
		{City: "Goa", Flags: city.Flags{To: true}},
	}, got.Values)
	assert.Equal(t, []string{"pune", "goa"}, got.Originals)
	assert.Equal(t, []string{"from message text", "from message text"}, got.Methods)
}

func TestDetectCommandConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cityner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("detector:\n  entity_name: place\n"), 0o600))

	out, err := run(t, "", "--config", path, "detect", "goa")
	require.NoError(t, err)
	assert.Contains(t, out, "__place__")
}

func TestDetectCommandBadConfig(t *testing.T) {
	_, err := run(t, "", "--config", filepath.Join(t.TempDir(), "none.yaml"), "detect", "goa")
	assert.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	input := strings.Join([]string{
		`{"id":"a1","text":"from chennai to mumbai"}`,
		`not json`,
		``,
		`   `,
		`{"text":"Goa","bot_message":"What is your destination?"}`,
	}, "\n")

	out, err := run(t, input, "batch", "--workers", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)

	var first batchResponse
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "a1", first.ID)
	assert.Equal(t, 1, first.Line)
	require.NotNil(t, first.Result)
	assert.Len(t, first.Entities, 2)

	var second batchResponse
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, 2, second.Line)
	assert.Contains(t, second.Error, "invalid JSON")
	assert.Nil(t, second.Result)

	var third batchResponse
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &third))
	assert.Equal(t, 5, third.Line, "blank lines are skipped but still counted")
	assert.Empty(t, third.Error)
	require.NotNil(t, third.Result)
	require.Len(t, third.Entities, 1)
	assert.Equal(t, city.To, third.Entities[0].Role)
}

func TestBatchCommandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"text":"leaving bombay reaching delhi"}`+"\n"), 0o600))

	out, err := run(t, "", "batch", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"value":"Mumbai"`)
	assert.Contains(t, out, `"value":"New Delhi"`)

	_, err = run(t, "", "batch", filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

func TestCitiesCommand(t *testing.T) {
	out, err := run(t, "", "cities", "-n", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "Mumbai"))

	out, err = run(t, "", "cities", "bang")
	require.NoError(t, err)
	assert.Contains(t, out, "Bengaluru")
	assert.Contains(t, out, "Bangkok")
	assert.NotContains(t, out, "Mumbai")
}
