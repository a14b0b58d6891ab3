package analyzer

import (
	"fmt"
	"strings"

	"repscan/internal/domain"
)

// buildTextPrompt frames the unanalyzed items for the stated purpose. Image
// findings already attached to an item are folded into its entry so the text
// model can weigh them.
func buildTextPrompt(items []domain.CachedItem, purpose, customContext string) string {
	var sb strings.Builder

	sb.WriteString("You are assessing the public reputation of a social media account.\n\n")
	sb.WriteString(fmt.Sprintf("Assessment purpose: %s\n", purpose))
	if customContext != "" {
		sb.WriteString(fmt.Sprintf("Additional context: %s\n", customContext))
	}
	sb.WriteString("\n## Posts\n")

	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, item.CreatedAt.Format("2006-01-02"), item.Text))
		if item.ImageAnalysis != nil {
			sb.WriteString(fmt.Sprintf("   Attached images: %s", item.ImageAnalysis.CombinedDescription))
			if item.ImageAnalysis.HasInappropriateContent {
				sb.WriteString(fmt.Sprintf(" [inappropriate content detected, severity %s]", item.ImageAnalysis.MaxSeverity))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString(`
Respond with a single JSON object:
{
  "overall_score": <0-100, higher is safer>,
  "sentiment": {"positive": <0-1>, "neutral": <0-1>, "negative": <0-1>},
  "toxicity_score": <0-1>,
  "hate_speech_detected": <bool>,
  "key_findings": ["..."],
  "recommendations": ["..."]
}
Respond with JSON only, no other text.`)

	return sb.String()
}

// buildVisionPrompt asks for a structured verdict on one image.
func buildVisionPrompt(altText string) string {
	var sb strings.Builder

	sb.WriteString("Analyze this image from a social media post.\n")
	if altText != "" {
		sb.WriteString(fmt.Sprintf("The post's alt text reads: %q\n", altText))
	}
	sb.WriteString(`
Respond with a single JSON object:
{
  "scene_description": "<one sentence>",
  "ocr_text": "<any visible text, or empty>",
  "sentiment": "positive" | "neutral" | "negative",
  "inappropriate_content": {
    "detected": <bool>,
    "categories": ["..."],
    "severity": "low" | "medium" | "high" | "critical"
  },
  "confidence_score": <0-1>
}
Respond with JSON only, no other text.`)

	return sb.String()
}
