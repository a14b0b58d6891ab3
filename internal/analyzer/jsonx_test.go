package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_CodeFence(t *testing.T) {
	raw := "Here is the analysis:\n```json\n{\"overall_score\": 75}\n```\nHope this helps."

	got, ok := ExtractJSON(raw)
	require.True(t, ok)
	assert.JSONEq(t, `{"overall_score": 75}`, got)
}

func TestExtractJSON_BareFence(t *testing.T) {
	raw := "```\n{\"a\": 1}\n```"

	got, ok := ExtractJSON(raw)
	require.True(t, ok)
	assert.JSONEq(t, `{"a": 1}`, got)
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	raw := "Sure! {\"a\": {\"b\": 2}} is my answer."

	got, ok := ExtractJSON(raw)
	require.True(t, ok)
	assert.JSONEq(t, `{"a": {"b": 2}}`, got)
}

func TestExtractJSON_NoObject(t *testing.T) {
	_, ok := ExtractJSON("I cannot analyze this content.")
	assert.False(t, ok)
}

func TestSanitizeJSON_TrailingCommas(t *testing.T) {
	raw := `{"a": 1, "b": [1, 2, 3,], }`

	var out map[string]any
	err := json.Unmarshal([]byte(SanitizeJSON(raw)), &out)
	require.NoError(t, err)
	assert.Equal(t, float64(1), out["a"])
}

func TestSanitizeJSON_Comments(t *testing.T) {
	raw := `{
		// the overall score
		"a": 1,
		/* multi
		   line */
		"b": 2
	}`

	var out map[string]any
	err := json.Unmarshal([]byte(SanitizeJSON(raw)), &out)
	require.NoError(t, err)
	assert.Equal(t, float64(2), out["b"])
}

func TestSanitizeJSON_PreservesStrings(t *testing.T) {
	raw := `{"url": "https://example.com/a", "note": "uses // and , inside"}`

	var out map[string]string
	err := json.Unmarshal([]byte(SanitizeJSON(raw)), &out)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", out["url"])
	assert.Equal(t, "uses // and , inside", out["note"])
}
