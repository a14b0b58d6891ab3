package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"repscan/internal/domain"
)

const SourceName = "Twitter"

const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 30 * time.Second
)

// Config holds Twitter source configuration. Token acquisition is an
// external concern; the bearer token arrives as configuration.
type Config struct {
	BaseURL        string
	BearerToken    string
	PageSize       int
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Source fetches an account's timeline incrementally from the Twitter API.
type Source struct {
	httpClient     *http.Client
	baseURL        string
	bearerToken    string
	pageSize       int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultInitialBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = defaultMaxBackoff
	}

	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.BaseURL,
		bearerToken:    cfg.BearerToken,
		pageSize:       cfg.PageSize,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("source", SourceName),
	}
}

// FetchIncremental pulls the account's timeline since the given item id.
// An empty sinceItemID fetches the most recent page outright.
func (s *Source) FetchIncremental(ctx context.Context, accountID, sinceItemID string) (*domain.FetchResult, error) {
	endpoint := fmt.Sprintf("%s/users/%s/tweets", s.baseURL, url.PathEscape(accountID))

	params := url.Values{}
	params.Set("max_results", fmt.Sprintf("%d", s.pageSize))
	params.Set("tweet.fields", "created_at,public_metrics,entities,attachments")
	params.Set("expansions", "attachments.media_keys")
	params.Set("media.fields", "media_key,type,url,alt_text")
	if sinceItemID != "" {
		params.Set("since_id", sinceItemID)
	}

	resp, err := s.fetchWithRetry(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("fetched timeline page",
		"account_id", accountID,
		"since_id", sinceItemID,
		"result_count", resp.Meta.ResultCount,
	)

	return s.transform(accountID, resp), nil
}

func (s *Source) fetchWithRetry(ctx context.Context, requestURL string) (*apiResponse, error) {
	var resp *apiResponse
	var err error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		resp, err = s.doRequest(ctx, requestURL)
		if err == nil {
			return resp, nil
		}

		if attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("fetch timeline: %w", err)
}

func (s *Source) doRequest(ctx context.Context, requestURL string) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.bearerToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &apiResp, nil
}

func (s *Source) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff * time.Duration(1<<(attempt-1))
	if backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}

func (s *Source) transform(accountID string, resp *apiResponse) *domain.FetchResult {
	mediaByKey := make(map[string]apiMedia, len(resp.Includes.Media))
	for _, m := range resp.Includes.Media {
		mediaByKey[m.MediaKey] = m
	}

	items := make([]domain.CachedItem, 0, len(resp.Data))
	for _, tweet := range resp.Data {
		item := domain.CachedItem{
			ItemID:    tweet.ID,
			AccountID: accountID,
			Text:      tweet.Text,
			CreatedAt: tweet.CreatedAt,
			Metrics:   tweet.PublicMetrics,
			Entities:  tweet.Entities,
		}

		if tweet.Attachments != nil {
			for _, key := range tweet.Attachments.MediaKeys {
				m, ok := mediaByKey[key]
				if !ok {
					continue
				}
				item.MediaRefs = append(item.MediaRefs, domain.MediaRef{
					Type:    m.Type,
					URL:     m.URL,
					AltText: m.AltText,
				})
			}
			item.MediaCount = len(item.MediaRefs)
			item.HasMedia = item.MediaCount > 0
		}

		items = append(items, item)
	}

	return &domain.FetchResult{
		Items:       items,
		NewestID:    resp.Meta.NewestID,
		OldestID:    resp.Meta.OldestID,
		ResultCount: resp.Meta.ResultCount,
	}
}
