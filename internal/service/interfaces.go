package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"repscan/internal/domain"
)

type ItemStore interface {
	UpsertBatch(ctx context.Context, accountID string, items []domain.CachedItem, newestID string) (int, error)
	GetAll(ctx context.Context, accountID string) ([]domain.CachedItem, error)
	GetCacheStatus(ctx context.Context, accountID string) (*domain.CacheStatus, error)
	SaveImageAnalysis(ctx context.Context, accountID, itemID string, summary *domain.ImageAnalysisSummary) error
}

type AnalysisStore interface {
	CreatePending(ctx context.Context, accountID, purpose, modelUsed string) (int64, error)
	Complete(ctx context.Context, resultID int64, output *domain.OutputData, executionTimeMs int64) error
	Fail(ctx context.Context, resultID int64, errMsg string, executionTimeMs int64) error
	GetLatestCompleted(ctx context.Context, accountID, purpose string) (*domain.PreviousAnalysis, error)
}

type LinkStore interface {
	LinkItems(ctx context.Context, resultID int64, itemIDs []string, purpose string) error
	GetUnanalyzed(ctx context.Context, accountID, purpose string) ([]domain.CachedItem, error)
}

type Fetcher interface {
	FetchIncremental(ctx context.Context, accountID, sinceItemID string) (*domain.FetchResult, error)
}

type TextAnalyzer interface {
	Analyze(ctx context.Context, items []domain.CachedItem, purpose, customContext string) (*domain.OutputData, error)
	ModelName() string
}

type ImageAnalyzer interface {
	AnalyzeItem(ctx context.Context, item *domain.CachedItem) (*domain.ImageAnalysisSummary, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, report *domain.ScanReport) error
	Close() error
}
