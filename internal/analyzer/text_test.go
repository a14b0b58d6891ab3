package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repscan/internal/domain"
)

type fakeText struct {
	response string
	err      error
	prompt   string
}

func (f *fakeText) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func sampleItems() []domain.CachedItem {
	return []domain.CachedItem{
		{ItemID: "1", Text: "hello world"},
		{ItemID: "2", Text: "another post"},
	}
}

func TestAnalyze_FullResponse(t *testing.T) {
	model := &fakeText{response: "```json\n" + `{
		"overall_score": 82,
		"sentiment": {"positive": 0.6, "neutral": 0.3, "negative": 0.1},
		"toxicity_score": 0.05,
		"hate_speech_detected": false,
		"key_findings": ["mostly positive engagement"],
		"recommendations": ["keep it up"]
	}` + "\n```"}
	a := NewTextAnalyzer(model, "test-model", discardLogger())

	output, err := a.Analyze(context.Background(), sampleItems(), "employment_screening", "")
	require.NoError(t, err)

	assert.Equal(t, 82, output.OverallScore)
	assert.Equal(t, domain.RiskLow, output.RiskLevel)
	assert.Equal(t, 0.6, output.Sentiment.Positive)
	assert.Equal(t, 0.05, output.ToxicityScore)
	assert.False(t, output.HateSpeechDetected)
	assert.Equal(t, []string{"mostly positive engagement"}, output.KeyFindings)
}

func TestAnalyze_RiskLevelDerivedNotTrusted(t *testing.T) {
	// the model's own risk label must be ignored in favor of the score
	model := &fakeText{response: `{"overall_score": 15, "risk_level": "low"}`}
	a := NewTextAnalyzer(model, "test-model", discardLogger())

	output, err := a.Analyze(context.Background(), sampleItems(), "general", "")
	require.NoError(t, err)

	assert.Equal(t, domain.RiskCritical, output.RiskLevel)
}

func TestAnalyze_MissingFieldsFallBack(t *testing.T) {
	model := &fakeText{response: `{"toxicity_score": 0.8}`}
	a := NewTextAnalyzer(model, "test-model", discardLogger())

	output, err := a.Analyze(context.Background(), sampleItems(), "general", "")
	require.NoError(t, err)

	assert.Equal(t, 50, output.OverallScore)
	assert.Equal(t, domain.RiskMedium, output.RiskLevel)
	assert.Equal(t, domain.SentimentBreakdown{Neutral: 1}, output.Sentiment)
	assert.Equal(t, 0.8, output.ToxicityScore)
	assert.NotNil(t, output.KeyFindings)
	assert.Empty(t, output.KeyFindings)
}

func TestAnalyze_ClampsScores(t *testing.T) {
	model := &fakeText{response: `{"overall_score": 150, "toxicity_score": -2}`}
	a := NewTextAnalyzer(model, "test-model", discardLogger())

	output, err := a.Analyze(context.Background(), sampleItems(), "general", "")
	require.NoError(t, err)

	assert.Equal(t, 100, output.OverallScore)
	assert.Equal(t, 0.0, output.ToxicityScore)
}

func TestAnalyze_ToleratesSloppyJSON(t *testing.T) {
	model := &fakeText{response: `Here you go: {
		// score reflects the whole account
		"overall_score": 64,
		"key_findings": ["a", "b",],
	}`}
	a := NewTextAnalyzer(model, "test-model", discardLogger())

	output, err := a.Analyze(context.Background(), sampleItems(), "general", "")
	require.NoError(t, err)

	assert.Equal(t, 64, output.OverallScore)
	assert.Equal(t, []string{"a", "b"}, output.KeyFindings)
}

func TestAnalyze_NoJSONIsModelResponseError(t *testing.T) {
	model := &fakeText{response: "I am unable to analyze these posts."}
	a := NewTextAnalyzer(model, "test-model", discardLogger())

	_, err := a.Analyze(context.Background(), sampleItems(), "general", "")

	var respErr *ModelResponseError
	require.ErrorAs(t, err, &respErr)
}

func TestAnalyze_ModelCallError(t *testing.T) {
	callErr := errors.New("rate limited")
	a := NewTextAnalyzer(&fakeText{err: callErr}, "test-model", discardLogger())

	_, err := a.Analyze(context.Background(), sampleItems(), "general", "")

	require.ErrorIs(t, err, callErr)
	var respErr *ModelResponseError
	assert.False(t, errors.As(err, &respErr))
}

func TestAnalyze_PromptCarriesItemsAndContext(t *testing.T) {
	model := &fakeText{response: `{"overall_score": 50}`}
	a := NewTextAnalyzer(model, "test-model", discardLogger())

	items := []domain.CachedItem{{
		ItemID:   "1",
		Text:     "check out my new project",
		HasMedia: true,
		ImageAnalysis: &domain.ImageAnalysisSummary{
			CombinedDescription: "1. a screenshot of code",
		},
	}}

	_, err := a.Analyze(context.Background(), items, "brand_safety", "focus on professionalism")
	require.NoError(t, err)

	assert.Contains(t, model.prompt, "check out my new project")
	assert.Contains(t, model.prompt, "brand_safety")
	assert.Contains(t, model.prompt, "focus on professionalism")
	assert.Contains(t, model.prompt, "a screenshot of code")
}
