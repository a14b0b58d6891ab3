package domain

import "time"

// ScanReport holds statistics about one scan run.
type ScanReport struct {
	ResultID           int64
	AccountID          string
	Purpose            string
	OverallScore       int
	RiskLevel          RiskLevel
	Fetched            int
	NewItemsAnalyzed   int
	UsedCachedAnalysis bool
	Duration           time.Duration
}
