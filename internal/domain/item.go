package domain

import (
	"encoding/json"
	"time"
)

// StaleAfter is how old cached account data may get before a full refetch
// is warranted.
const StaleAfter = 24 * time.Hour

// CachedItem is one cached source post for an account. Rows are unique on
// (AccountID, ItemID); refetches overwrite mutable fields, never duplicate.
type CachedItem struct {
	ItemID        string
	AccountID     string
	Text          string
	CreatedAt     time.Time
	Metrics       map[string]int64
	Entities      json.RawMessage
	HasMedia      bool
	MediaCount    int
	MediaRefs     []MediaRef
	ImageAnalysis *ImageAnalysisSummary
	FetchedAt     time.Time
}

// CacheStatus summarizes the cache freshness metadata for one account.
type CacheStatus struct {
	Count        int
	LastSyncAt   *time.Time
	NewestItemID string
	NeedsRefresh bool
}

// StaleAt reports whether a cache last synced at last is stale relative to
// now. An empty cache (count 0 or no sync timestamp) is always stale.
func StaleAt(count int, last *time.Time, now time.Time) bool {
	if count == 0 || last == nil {
		return true
	}
	return now.Sub(*last) > StaleAfter
}

// FetchResult is what the remote fetcher returns for one incremental pull.
type FetchResult struct {
	Items       []CachedItem
	NewestID    string
	OldestID    string
	ResultCount int
}
