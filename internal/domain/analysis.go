package domain

import (
	"math"
	"time"
)

// AnalysisStatus of a result row. Only completed results are eligible for
// reuse or for anchoring a merge.
type AnalysisStatus string

const (
	StatusPending   AnalysisStatus = "pending"
	StatusCompleted AnalysisStatus = "completed"
	StatusFailed    AnalysisStatus = "failed"
)

// RiskLevel derived from the overall score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// DeriveRiskLevel maps an overall score onto a risk level. The model's own
// risk opinion is always discarded in favor of this mapping.
func DeriveRiskLevel(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskLow
	case score >= 40:
		return RiskMedium
	case score >= 20:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// SentimentBreakdown is the fraction of items per sentiment bucket.
type SentimentBreakdown struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// CacheInfo records how much of a scan was served from cache.
type CacheInfo struct {
	CachedItemCount    int        `json:"cached_item_count"`
	NewItemsFetched    int        `json:"new_items_fetched"`
	NewItemsAnalyzed   int        `json:"new_items_analyzed"`
	UsedCachedAnalysis bool       `json:"used_cached_analysis"`
	LastSyncAt         *time.Time `json:"last_sync_at,omitempty"`
}

// OutputData is the structured payload of one analysis run.
type OutputData struct {
	Status             string             `json:"status"`
	OverallScore       int                `json:"overall_score"`
	RiskLevel          RiskLevel          `json:"risk_level"`
	Sentiment          SentimentBreakdown `json:"sentiment"`
	ToxicityScore      float64            `json:"toxicity_score"`
	HateSpeechDetected bool               `json:"hate_speech_detected"`
	KeyFindings        []string           `json:"key_findings"`
	Recommendations    []string           `json:"recommendations"`
	MergedFromPrevious bool               `json:"merged_from_previous,omitempty"`
	CacheInfo          CacheInfo          `json:"cache_info"`
}

// MaxMergedFindings bounds the merged key-findings and recommendations lists.
const MaxMergedFindings = 5

// MergeOutput combines a fresh delta analysis with the previous completed
// output for the same purpose. Scores are averaged, lists are concatenated
// new-first and truncated, everything else passes through from the new
// result.
func MergeOutput(fresh, previous OutputData) OutputData {
	merged := fresh
	merged.OverallScore = int(math.Round(float64(fresh.OverallScore+previous.OverallScore) / 2))
	merged.RiskLevel = DeriveRiskLevel(merged.OverallScore)
	merged.KeyFindings = truncate(append(append([]string{}, fresh.KeyFindings...), previous.KeyFindings...), MaxMergedFindings)
	merged.Recommendations = truncate(append(append([]string{}, fresh.Recommendations...), previous.Recommendations...), MaxMergedFindings)
	merged.MergedFromPrevious = true
	return merged
}

func truncate(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

// AnalysisResult is one purpose-scoped analysis run. Created pending,
// transitioned exactly once to completed or failed, immutable after that.
type AnalysisResult struct {
	ID              int64
	AccountID       string
	Purpose         string
	ModelUsed       string
	Status          AnalysisStatus
	Output          *OutputData
	Error           string
	ExecutionTimeMs int64
	CreatedAt       time.Time
}

// PreviousAnalysis is the reusable view of the most recent completed result
// for an (account, purpose) pair.
type PreviousAnalysis struct {
	ResultID      int64
	Output        OutputData
	AnalyzedCount int
	CreatedAt     time.Time
}
