package twitter

import (
	"encoding/json"
	"time"
)

// apiResponse represents a Twitter API v2 timeline response.
type apiResponse struct {
	Data     []apiTweet  `json:"data"`
	Includes apiIncludes `json:"includes"`
	Meta     apiMeta     `json:"meta"`
}

type apiMeta struct {
	NewestID    string `json:"newest_id"`
	OldestID    string `json:"oldest_id"`
	ResultCount int    `json:"result_count"`
	NextToken   string `json:"next_token"`
}

type apiIncludes struct {
	Media []apiMedia `json:"media"`
}

type apiMedia struct {
	MediaKey string `json:"media_key"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	AltText  string `json:"alt_text"`
}

type apiTweet struct {
	ID            string           `json:"id"`
	Text          string           `json:"text"`
	CreatedAt     time.Time        `json:"created_at"`
	PublicMetrics map[string]int64 `json:"public_metrics"`
	Entities      json.RawMessage  `json:"entities"`
	Attachments   *apiAttachments  `json:"attachments"`
}

type apiAttachments struct {
	MediaKeys []string `json:"media_keys"`
}
