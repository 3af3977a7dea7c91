package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_Plain(t *testing.T) {
	out, err := ExtractJSON(`{"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)
}

func TestExtractJSON_MarkdownFence(t *testing.T) {
	in := "Here is the result:\n```json\n{\"score\": 75, \"note\": \"ok\"}\n```\nHope that helps."
	out, err := ExtractJSON(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":75,"note":"ok"}`, out)
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	in := `Sure! The analysis is {"nested":{"deep":[1,2,3]},"s":"a } inside string"} and nothing else.`
	out, err := ExtractJSON(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nested":{"deep":[1,2,3]},"s":"a } inside string"}`, out)
}

func TestExtractJSON_EscapedQuotes(t *testing.T) {
	in := `{"quote":"he said \"hello\""}`
	out, err := ExtractJSON(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestExtractJSON_Array(t *testing.T) {
	out, err := ExtractJSON(`the cards are ["a","b"] ok`)
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, out)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON("no structured content here")
	assert.Error(t, err)
}

func TestExtractJSON_Unbalanced(t *testing.T) {
	_, err := ExtractJSON(`{"truncated": "resp`)
	assert.Error(t, err)
}

func TestParseJSONResponse(t *testing.T) {
	type payload struct {
		Score int `json:"score"`
	}

	p, err := ParseJSONResponse[payload]("```json\n{\"score\": 42}\n```")
	require.NoError(t, err)
	assert.Equal(t, 42, p.Score)

	_, err = ParseJSONResponse[payload](`{"score": "not a number"}`)
	assert.Error(t, err)
}
