package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"repscan/internal/domain"
)

// ErrNoItems means the scan had nothing to analyze: the cache is empty and
// the remote source produced nothing.
var ErrNoItems = errors.New("no items available")

// ScanService orchestrates one reputation scan: decide whether to refetch,
// analyze the unanalyzed delta, merge with the previous completed result and
// persist the linkage for future reuse.
type ScanService struct {
	fetcher       Fetcher
	items         ItemStore
	analyses      AnalysisStore
	links         LinkStore
	textAnalyzer  TextAnalyzer
	imageAnalyzer ImageAnalyzer
	txManager     TransactionManager
	publisher     Publisher
	logger        *slog.Logger
}

func NewScanService(
	fetcher Fetcher,
	items ItemStore,
	analyses AnalysisStore,
	links LinkStore,
	textAnalyzer TextAnalyzer,
	imageAnalyzer ImageAnalyzer,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
) *ScanService {
	return &ScanService{
		fetcher:       fetcher,
		items:         items,
		analyses:      analyses,
		links:         links,
		textAnalyzer:  textAnalyzer,
		imageAnalyzer: imageAnalyzer,
		txManager:     txManager,
		publisher:     publisher,
		logger:        logger,
	}
}

type scanOutcome struct {
	output      *domain.OutputData
	linkItemIDs []string
	fetched     int
	usedCache   bool
}

// RunScan is the single entry point. A failed run is still persisted as a
// failed result row with a human-readable error, so history never loses a
// scan; callers get the error back rather than a raw panic or a lost row.
func (s *ScanService) RunScan(ctx context.Context, accountID, purpose, customContext string) (*domain.ScanReport, error) {
	startTime := time.Now()
	s.logger.Info("starting scan", "account_id", accountID, "purpose", purpose)

	resultID, err := s.analyses.CreatePending(ctx, accountID, purpose, s.textAnalyzer.ModelName())
	if err != nil {
		return nil, fmt.Errorf("create result: %w", err)
	}

	outcome, err := s.execute(ctx, accountID, purpose, customContext)
	executionMs := time.Since(startTime).Milliseconds()

	if err != nil {
		if failErr := s.analyses.Fail(ctx, resultID, err.Error(), executionMs); failErr != nil {
			s.logger.Error("failed to persist failed scan", "result_id", resultID, "error", failErr)
		}
		s.logger.Error("scan failed", "account_id", accountID, "purpose", purpose, "error", err)
		return nil, err
	}

	outcome.output.Status = string(domain.StatusCompleted)

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.analyses.Complete(txCtx, resultID, outcome.output, executionMs); err != nil {
			return fmt.Errorf("persist result: %w", err)
		}
		if err := s.links.LinkItems(txCtx, resultID, outcome.linkItemIDs, purpose); err != nil {
			return fmt.Errorf("link analyzed items: %w", err)
		}
		return nil
	})
	if err != nil {
		if failErr := s.analyses.Fail(ctx, resultID, err.Error(), executionMs); failErr != nil {
			s.logger.Error("failed to persist failed scan", "result_id", resultID, "error", failErr)
		}
		return nil, err
	}

	report := &domain.ScanReport{
		ResultID:           resultID,
		AccountID:          accountID,
		Purpose:            purpose,
		OverallScore:       outcome.output.OverallScore,
		RiskLevel:          outcome.output.RiskLevel,
		Fetched:            outcome.fetched,
		NewItemsAnalyzed:   len(outcome.linkItemIDs),
		UsedCachedAnalysis: outcome.usedCache,
		Duration:           time.Since(startTime),
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, report); err != nil {
			s.logger.Warn("failed to publish scan event", "result_id", resultID, "error", err)
		}
	}

	s.logger.Info("scan completed",
		"result_id", resultID,
		"overall_score", report.OverallScore,
		"risk_level", report.RiskLevel,
		"new_items_analyzed", report.NewItemsAnalyzed,
		"used_cached_analysis", report.UsedCachedAnalysis,
		"duration", report.Duration,
	)

	return report, nil
}

func (s *ScanService) execute(ctx context.Context, accountID, purpose, customContext string) (*scanOutcome, error) {
	status, err := s.items.GetCacheStatus(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get cache status: %w", err)
	}

	fetched, err := s.fetchIfNeeded(ctx, accountID, status)
	if err != nil {
		return nil, err
	}

	// A successful fetch just replaced the meta row; re-read it so the
	// persisted cache info carries this sync's timestamp, not the prior one.
	if fetched > 0 {
		if status, err = s.items.GetCacheStatus(ctx, accountID); err != nil {
			return nil, fmt.Errorf("refresh cache status: %w", err)
		}
	}

	allItems, err := s.items.GetAll(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("load cached items: %w", err)
	}
	if len(allItems) == 0 {
		return nil, ErrNoItems
	}

	unanalyzed, err := s.links.GetUnanalyzed(ctx, accountID, purpose)
	if err != nil {
		return nil, fmt.Errorf("select unanalyzed items: %w", err)
	}

	previous, err := s.analyses.GetLatestCompleted(ctx, accountID, purpose)
	if err != nil {
		return nil, fmt.Errorf("load previous analysis: %w", err)
	}

	cacheInfo := domain.CacheInfo{
		CachedItemCount:  len(allItems),
		NewItemsFetched:  fetched,
		NewItemsAnalyzed: len(unanalyzed),
		LastSyncAt:       status.LastSyncAt,
	}

	// Everything already analyzed for this purpose: reuse the previous
	// output verbatim without touching the model.
	if len(unanalyzed) == 0 {
		if previous == nil {
			return nil, ErrNoItems
		}
		output := previous.Output
		cacheInfo.UsedCachedAnalysis = true
		output.CacheInfo = cacheInfo
		s.logger.Info("reusing previous analysis",
			"account_id", accountID,
			"purpose", purpose,
			"previous_result_id", previous.ResultID,
		)
		return &scanOutcome{output: &output, fetched: fetched, usedCache: true}, nil
	}

	s.analyzeImages(ctx, accountID, unanalyzed)

	output, err := s.textAnalyzer.Analyze(ctx, unanalyzed, purpose, customContext)
	if err != nil {
		return nil, fmt.Errorf("analyze items: %w", err)
	}

	// Merge only when some cached items were reused; a full re-analysis
	// stands alone.
	if previous != nil && len(unanalyzed) < len(allItems) {
		merged := domain.MergeOutput(*output, previous.Output)
		output = &merged
	}
	output.CacheInfo = cacheInfo

	linkIDs := make([]string, len(unanalyzed))
	for i, item := range unanalyzed {
		linkIDs[i] = item.ItemID
	}

	return &scanOutcome{output: output, linkItemIDs: linkIDs, fetched: fetched}, nil
}

// fetchIfNeeded applies the fetch decision: refetch when the cache is empty
// or stale, and opportunistically whenever a newest-item marker exists, since
// an incremental since-fetch is cheap. A remote failure is only fatal when
// there is nothing cached to fall back on.
func (s *ScanService) fetchIfNeeded(ctx context.Context, accountID string, status *domain.CacheStatus) (int, error) {
	needsFetch := status.NeedsRefresh || status.NewestItemID != "" || status.Count == 0
	if !needsFetch {
		return 0, nil
	}

	result, err := s.fetcher.FetchIncremental(ctx, accountID, status.NewestItemID)
	if err != nil {
		if status.Count == 0 {
			return 0, fmt.Errorf("%w: remote fetch failed: %v", ErrNoItems, err)
		}
		s.logger.Warn("remote fetch failed, continuing with cached items",
			"account_id", accountID,
			"cached_count", status.Count,
			"error", err,
		)
		return 0, nil
	}

	if len(result.Items) == 0 {
		s.logger.Debug("no new items from remote", "account_id", accountID)
		return 0, nil
	}

	stored, err := s.items.UpsertBatch(ctx, accountID, result.Items, result.NewestID)
	if err != nil {
		return 0, fmt.Errorf("cache fetched items: %w", err)
	}

	s.logger.Info("fetched new items", "account_id", accountID, "fetched", len(result.Items), "stored", stored)
	return stored, nil
}

// analyzeImages runs the vision sub-pipeline over every unanalyzed item with
// media, attaching and persisting the summary before text analysis so the
// prompt can weigh image findings. Single-item failures are logged and
// skipped.
func (s *ScanService) analyzeImages(ctx context.Context, accountID string, items []domain.CachedItem) {
	for i := range items {
		item := &items[i]
		if !item.HasMedia {
			continue
		}

		summary, err := s.imageAnalyzer.AnalyzeItem(ctx, item)
		if err != nil {
			s.logger.Warn("image analysis failed for item", "item_id", item.ItemID, "error", err)
			continue
		}
		if summary == nil {
			continue
		}

		item.ImageAnalysis = summary
		if err := s.items.SaveImageAnalysis(ctx, accountID, item.ItemID, summary); err != nil {
			s.logger.Warn("failed to persist image analysis", "item_id", item.ItemID, "error", err)
		}
	}
}
