package analyzer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"repscan/internal/domain"
)

const (
	// Images are analyzed in fixed-size concurrency groups: calls within a
	// group run concurrently, groups run sequentially. This caps peak load
	// on the vision backend while still parallelizing one item's media set.
	defaultGroupSize = 3

	defaultVisionTimeout   = 60 * time.Second
	defaultDownloadTimeout = 15 * time.Second

	maxImageBytes = 8 << 20
)

// MediaAnalyzer runs the vision model over an item's media attachments.
// It never fails a caller: every per-image error degrades to a safe default
// result so image analysis can never abort the surrounding text analysis.
type MediaAnalyzer struct {
	vision        VisionModel
	httpClient    *http.Client
	groupSize     int
	visionTimeout time.Duration
	logger        *slog.Logger
}

type MediaConfig struct {
	GroupSize       int
	VisionTimeout   time.Duration
	DownloadTimeout time.Duration
}

func NewMediaAnalyzer(vision VisionModel, cfg MediaConfig, logger *slog.Logger) *MediaAnalyzer {
	if cfg.GroupSize <= 0 {
		cfg.GroupSize = defaultGroupSize
	}
	if cfg.VisionTimeout <= 0 {
		cfg.VisionTimeout = defaultVisionTimeout
	}
	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = defaultDownloadTimeout
	}

	return &MediaAnalyzer{
		vision:        vision,
		httpClient:    &http.Client{Timeout: cfg.DownloadTimeout},
		groupSize:     cfg.GroupSize,
		visionTimeout: cfg.VisionTimeout,
		logger:        logger,
	}
}

// AnalyzeItem analyzes every photo attached to one item and returns the
// aggregated summary, or nil when the item carries no analyzable media.
func (m *MediaAnalyzer) AnalyzeItem(ctx context.Context, item *domain.CachedItem) (*domain.ImageAnalysisSummary, error) {
	if !item.HasMedia || len(item.MediaRefs) == 0 {
		return nil, nil
	}

	results := m.AnalyzeBatch(ctx, item.MediaRefs)
	if len(results) == 0 {
		return nil, nil
	}

	summary := Aggregate(results)
	return &summary, nil
}

// AnalyzeBatch filters refs down to photos with a resolvable URL and runs
// them through the vision model in concurrency groups.
func (m *MediaAnalyzer) AnalyzeBatch(ctx context.Context, refs []domain.MediaRef) []domain.ImageAnalysisResult {
	var photos []domain.MediaRef
	for _, ref := range refs {
		if ref.Type == "photo" && ref.URL != "" {
			photos = append(photos, ref)
		}
	}
	if len(photos) == 0 {
		return nil
	}

	results := make([]domain.ImageAnalysisResult, len(photos))

	for start := 0; start < len(photos); start += m.groupSize {
		end := min(start+m.groupSize, len(photos))

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = m.AnalyzeOne(gctx, photos[i])
				return nil
			})
		}
		// Tasks convert their own failures to safe defaults, so the only
		// thing waited on here is completion of the group.
		_ = g.Wait()
	}

	return results
}

// AnalyzeOne downloads one image and asks the vision model for a verdict.
// Any failure (download, timeout, malformed response) yields the safe
// default result rather than an error.
func (m *MediaAnalyzer) AnalyzeOne(ctx context.Context, ref domain.MediaRef) domain.ImageAnalysisResult {
	imageBase64, mediaType, err := m.download(ctx, ref.URL)
	if err != nil {
		m.logger.Warn("image download failed", "url", ref.URL, "error", err)
		return safeDefaultResult()
	}

	callCtx, cancel := context.WithTimeout(ctx, m.visionTimeout)
	defer cancel()

	raw, err := m.vision.CompleteWithImage(callCtx, buildVisionPrompt(ref.AltText), imageBase64, mediaType)
	if err != nil {
		m.logger.Warn("vision model call failed", "url", ref.URL, "error", err)
		return safeDefaultResult()
	}

	result, err := parseVisionResponse(raw)
	if err != nil {
		m.logger.Warn("vision response unparsable", "url", ref.URL, "error", err)
		return safeDefaultResult()
	}
	return result
}

func (m *MediaAnalyzer) download(ctx context.Context, url string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return "", "", err
	}

	mediaType := resp.Header.Get("Content-Type")
	if idx := strings.Index(mediaType, ";"); idx != -1 {
		mediaType = mediaType[:idx]
	}
	if !strings.HasPrefix(mediaType, "image/") {
		mediaType = http.DetectContentType(data)
	}

	return base64.StdEncoding.EncodeToString(data), mediaType, nil
}

type visionResponse struct {
	SceneDescription string `json:"scene_description"`
	OCRText          string `json:"ocr_text"`
	Sentiment        string `json:"sentiment"`
	Inappropriate    struct {
		Detected   bool     `json:"detected"`
		Categories []string `json:"categories"`
		Severity   string   `json:"severity"`
	} `json:"inappropriate_content"`
	ConfidenceScore float64 `json:"confidence_score"`
}

func parseVisionResponse(raw string) (domain.ImageAnalysisResult, error) {
	jsonText, ok := ExtractJSON(raw)
	if !ok {
		return domain.ImageAnalysisResult{}, fmt.Errorf("no JSON object in vision response")
	}

	var vr visionResponse
	if err := json.Unmarshal([]byte(SanitizeJSON(jsonText)), &vr); err != nil {
		return domain.ImageAnalysisResult{}, fmt.Errorf("parse vision response: %w", err)
	}

	result := domain.ImageAnalysisResult{
		SceneDescription: vr.SceneDescription,
		OCRText:          vr.OCRText,
		Sentiment:        domain.Sentiment(vr.Sentiment),
		Inappropriate: domain.InappropriateContent{
			Detected:   vr.Inappropriate.Detected,
			Categories: vr.Inappropriate.Categories,
			Severity:   domain.Severity(vr.Inappropriate.Severity),
		},
		ConfidenceScore: clamp01(vr.ConfidenceScore),
	}

	if !domain.ValidSentiment(result.Sentiment) {
		result.Sentiment = domain.SentimentNeutral
	}
	if !domain.ValidSeverity(result.Inappropriate.Severity) {
		result.Inappropriate.Severity = domain.SeverityLow
	}

	return result, nil
}

func safeDefaultResult() domain.ImageAnalysisResult {
	return domain.ImageAnalysisResult{
		Sentiment: domain.SentimentNeutral,
		Inappropriate: domain.InappropriateContent{
			Detected: false,
			Severity: domain.SeverityLow,
		},
		ConfidenceScore: 0,
	}
}

// Aggregate collapses per-image results into one item-level summary. Negative
// sentiment dominates, then positive, then neutral; max severity only counts
// images where inappropriate content was actually detected.
func Aggregate(results []domain.ImageAnalysisResult) domain.ImageAnalysisSummary {
	summary := domain.ImageAnalysisSummary{
		MaxSeverity:      domain.SeverityLow,
		OverallSentiment: domain.SentimentNeutral,
	}

	var descriptions []string
	anyPositive := false
	for i, r := range results {
		if r.Inappropriate.Detected {
			summary.HasInappropriateContent = true
			summary.MaxSeverity = domain.MaxSeverity(summary.MaxSeverity, r.Inappropriate.Severity)
		}
		if r.SceneDescription != "" {
			descriptions = append(descriptions, fmt.Sprintf("%d. %s", i+1, r.SceneDescription))
		}
		if r.OCRText != "" {
			summary.AllOCRText = append(summary.AllOCRText, r.OCRText)
		}
		switch r.Sentiment {
		case domain.SentimentNegative:
			summary.OverallSentiment = domain.SentimentNegative
		case domain.SentimentPositive:
			anyPositive = true
		}
	}

	if summary.OverallSentiment != domain.SentimentNegative && anyPositive {
		summary.OverallSentiment = domain.SentimentPositive
	}
	summary.CombinedDescription = strings.Join(descriptions, " ")

	return summary
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
