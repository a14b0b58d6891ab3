package domain

// MediaRef points at one media attachment on a cached item.
type MediaRef struct {
	Type    string `json:"type"`
	URL     string `json:"url"`
	AltText string `json:"alt_text,omitempty"`
}

// Sentiment of a piece of content.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ValidSentiment reports whether s is one of the closed sentiment values.
func ValidSentiment(s Sentiment) bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Severity of detected inappropriate content, ordered low < medium < high < critical.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// ValidSeverity reports whether s is one of the closed severity values.
func ValidSeverity(s Severity) bool {
	_, ok := severityRank[s]
	return ok
}

// MaxSeverity returns the higher-ranked of a and b.
func MaxSeverity(a, b Severity) Severity {
	if severityRank[b] > severityRank[a] {
		return b
	}
	return a
}

// InappropriateContent is the vision model's verdict on one image.
type InappropriateContent struct {
	Detected   bool     `json:"detected"`
	Categories []string `json:"categories,omitempty"`
	Severity   Severity `json:"severity"`
}

// ImageAnalysisResult is the normalized vision-model output for one image.
type ImageAnalysisResult struct {
	SceneDescription string               `json:"scene_description"`
	OCRText          string               `json:"ocr_text,omitempty"`
	Sentiment        Sentiment            `json:"sentiment"`
	Inappropriate    InappropriateContent `json:"inappropriate_content"`
	ConfidenceScore  float64              `json:"confidence_score"`
}

// ImageAnalysisSummary aggregates all per-image results on one item.
type ImageAnalysisSummary struct {
	HasInappropriateContent bool      `json:"has_inappropriate_content"`
	MaxSeverity             Severity  `json:"max_severity"`
	CombinedDescription     string    `json:"combined_description"`
	AllOCRText              []string  `json:"all_ocr_text,omitempty"`
	OverallSentiment        Sentiment `json:"overall_sentiment"`
}
