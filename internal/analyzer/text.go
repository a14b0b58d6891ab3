package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"repscan/internal/domain"
)

// ModelResponseError means the text model's output contained no parsable
// JSON at all. Unlike per-field gaps, this is fatal for the run.
type ModelResponseError struct {
	Reason string
}

func (e *ModelResponseError) Error() string {
	return fmt.Sprintf("unusable model response: %s", e.Reason)
}

// TextAnalyzer runs the text-analysis model over a set of unanalyzed items.
// Partially-valid model responses are repaired field by field; only a
// response with no locatable JSON aborts the run.
type TextAnalyzer struct {
	model     TextModel
	modelName string
	logger    *slog.Logger
}

func NewTextAnalyzer(model TextModel, modelName string, logger *slog.Logger) *TextAnalyzer {
	return &TextAnalyzer{
		model:     model,
		modelName: modelName,
		logger:    logger,
	}
}

func (a *TextAnalyzer) ModelName() string {
	return a.modelName
}

type textResponse struct {
	OverallScore *float64 `json:"overall_score"`
	Sentiment    *struct {
		Positive *float64 `json:"positive"`
		Neutral  *float64 `json:"neutral"`
		Negative *float64 `json:"negative"`
	} `json:"sentiment"`
	ToxicityScore      *float64 `json:"toxicity_score"`
	HateSpeechDetected *bool    `json:"hate_speech_detected"`
	KeyFindings        []string `json:"key_findings"`
	Recommendations    []string `json:"recommendations"`
}

// Analyze prompts the model over the items and normalizes its response into
// OutputData. The risk level is always derived from the overall score; any
// risk label the model proposes is discarded.
func (a *TextAnalyzer) Analyze(ctx context.Context, items []domain.CachedItem, purpose, customContext string) (*domain.OutputData, error) {
	prompt := buildTextPrompt(items, purpose, customContext)

	raw, err := a.model.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("text model call: %w", err)
	}

	jsonText, ok := ExtractJSON(raw)
	if !ok {
		return nil, &ModelResponseError{Reason: "no JSON object located"}
	}

	var tr textResponse
	if err := json.Unmarshal([]byte(SanitizeJSON(jsonText)), &tr); err != nil {
		return nil, &ModelResponseError{Reason: err.Error()}
	}

	output := &domain.OutputData{
		OverallScore:    50,
		Sentiment:       domain.SentimentBreakdown{Neutral: 1},
		KeyFindings:     []string{},
		Recommendations: []string{},
	}

	if tr.OverallScore != nil {
		output.OverallScore = clampScore(*tr.OverallScore)
	} else {
		a.logger.Warn("model response missing overall_score, using fallback")
	}
	if tr.Sentiment != nil {
		output.Sentiment = domain.SentimentBreakdown{
			Positive: deref(tr.Sentiment.Positive),
			Neutral:  deref(tr.Sentiment.Neutral),
			Negative: deref(tr.Sentiment.Negative),
		}
	}
	if tr.ToxicityScore != nil {
		output.ToxicityScore = clamp01(*tr.ToxicityScore)
	}
	if tr.HateSpeechDetected != nil {
		output.HateSpeechDetected = *tr.HateSpeechDetected
	}
	if tr.KeyFindings != nil {
		output.KeyFindings = tr.KeyFindings
	}
	if tr.Recommendations != nil {
		output.Recommendations = tr.Recommendations
	}

	output.RiskLevel = domain.DeriveRiskLevel(output.OverallScore)

	return output, nil
}

func clampScore(v float64) int {
	score := int(math.Round(v))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
