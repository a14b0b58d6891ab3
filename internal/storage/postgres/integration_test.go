//go:build integration

package postgres

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"repscan/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
	logger    *slog.Logger
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_cached_items.up.sql"),
			filepath.Join(migrationsPath, "002_create_analysis.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM item_analysis_links")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM analysis_results")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM cached_items")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM account_cache_meta")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func testItem(accountID, itemID, text string, createdAt time.Time) domain.CachedItem {
	return domain.CachedItem{
		AccountID: accountID,
		ItemID:    itemID,
		Text:      text,
		CreatedAt: createdAt,
		Metrics:   map[string]int64{"like_count": 5},
	}
}

func (s *PostgresIntegrationSuite) TestItemStore_UpsertBatch_Insert() {
	store := NewItemStore(s.db, s.logger)
	now := time.Now().Truncate(time.Microsecond)

	items := []domain.CachedItem{
		testItem("acct-1", "t1", "first", now),
		testItem("acct-1", "t2", "second", now.Add(-time.Hour)),
	}

	stored, err := store.UpsertBatch(s.ctx, "acct-1", items, "t1")
	s.NoError(err)
	s.Equal(2, stored)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM cached_items WHERE account_id = $1", "acct-1")
	s.NoError(err)
	s.Equal(2, count)
}

func (s *PostgresIntegrationSuite) TestItemStore_UpsertBatch_DeduplicatesLatestTextWins() {
	store := NewItemStore(s.db, s.logger)
	now := time.Now().Truncate(time.Microsecond)

	_, err := store.UpsertBatch(s.ctx, "acct-1", []domain.CachedItem{
		testItem("acct-1", "t1", "original text", now),
	}, "t1")
	s.NoError(err)

	_, err = store.UpsertBatch(s.ctx, "acct-1", []domain.CachedItem{
		testItem("acct-1", "t1", "edited text", now),
	}, "t1")
	s.NoError(err)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM cached_items WHERE account_id = $1", "acct-1")
	s.NoError(err)
	s.Equal(1, count)

	var text string
	err = s.db.GetContext(s.ctx, &text, "SELECT item_text FROM cached_items WHERE account_id = $1 AND item_id = $2", "acct-1", "t1")
	s.NoError(err)
	s.Equal("edited text", text)
}

func (s *PostgresIntegrationSuite) TestItemStore_UpsertBatch_ReplacesMeta() {
	store := NewItemStore(s.db, s.logger)
	now := time.Now().Truncate(time.Microsecond)

	_, err := store.UpsertBatch(s.ctx, "acct-1", []domain.CachedItem{
		testItem("acct-1", "t5", "old", now.Add(-time.Hour)),
	}, "t5")
	s.NoError(err)

	_, err = store.UpsertBatch(s.ctx, "acct-1", []domain.CachedItem{
		testItem("acct-1", "t9", "new", now),
	}, "t9")
	s.NoError(err)

	status, err := store.GetCacheStatus(s.ctx, "acct-1")
	s.NoError(err)
	s.Equal("t9", status.NewestItemID)
	s.Equal(2, status.Count)
	s.False(status.NeedsRefresh)
}

func (s *PostgresIntegrationSuite) TestItemStore_GetAll_NewestFirst() {
	store := NewItemStore(s.db, s.logger)
	now := time.Now().Truncate(time.Microsecond)

	items := []domain.CachedItem{
		testItem("acct-1", "old", "oldest", now.Add(-2*time.Hour)),
		testItem("acct-1", "new", "newest", now),
		testItem("acct-1", "mid", "middle", now.Add(-time.Hour)),
	}
	_, err := store.UpsertBatch(s.ctx, "acct-1", items, "new")
	s.NoError(err)

	got, err := store.GetAll(s.ctx, "acct-1")
	s.NoError(err)
	s.Require().Len(got, 3)
	s.Equal("new", got[0].ItemID)
	s.Equal("mid", got[1].ItemID)
	s.Equal("old", got[2].ItemID)
	s.Equal(int64(5), got[0].Metrics["like_count"])
}

func (s *PostgresIntegrationSuite) TestItemStore_GetCacheStatus_MissingAccount() {
	store := NewItemStore(s.db, s.logger)

	status, err := store.GetCacheStatus(s.ctx, "nobody")
	s.NoError(err)
	s.Equal(0, status.Count)
	s.True(status.NeedsRefresh)
	s.Nil(status.LastSyncAt)
}

func (s *PostgresIntegrationSuite) TestItemStore_GetCacheStatus_StaleSync() {
	store := NewItemStore(s.db, s.logger)
	now := time.Now().Truncate(time.Microsecond)

	_, err := store.UpsertBatch(s.ctx, "acct-1", []domain.CachedItem{
		testItem("acct-1", "t1", "text", now),
	}, "t1")
	s.NoError(err)

	_, err = s.db.ExecContext(s.ctx,
		"UPDATE account_cache_meta SET last_sync_at = now() - interval '25 hours' WHERE account_id = $1",
		"acct-1",
	)
	s.NoError(err)

	status, err := store.GetCacheStatus(s.ctx, "acct-1")
	s.NoError(err)
	s.True(status.NeedsRefresh)
}

func (s *PostgresIntegrationSuite) TestItemStore_SaveImageAnalysis_RoundTrip() {
	store := NewItemStore(s.db, s.logger)
	now := time.Now().Truncate(time.Microsecond)

	_, err := store.UpsertBatch(s.ctx, "acct-1", []domain.CachedItem{
		testItem("acct-1", "t1", "with image", now),
	}, "t1")
	s.NoError(err)

	summary := &domain.ImageAnalysisSummary{
		HasInappropriateContent: true,
		MaxSeverity:             domain.SeverityHigh,
		CombinedDescription:     "1. a crowd",
		AllOCRText:              []string{"banner text"},
		OverallSentiment:        domain.SentimentNegative,
	}
	err = store.SaveImageAnalysis(s.ctx, "acct-1", "t1", summary)
	s.NoError(err)

	got, err := store.GetAll(s.ctx, "acct-1")
	s.NoError(err)
	s.Require().Len(got, 1)
	s.Require().NotNil(got[0].ImageAnalysis)
	s.Equal(domain.SeverityHigh, got[0].ImageAnalysis.MaxSeverity)
	s.Equal([]string{"banner text"}, got[0].ImageAnalysis.AllOCRText)
}

func (s *PostgresIntegrationSuite) TestAnalysisStore_CompleteLifecycle() {
	store := NewAnalysisStore(s.db)

	id, err := store.CreatePending(s.ctx, "acct-1", "general", "test-model")
	s.NoError(err)
	s.Greater(id, int64(0))

	output := &domain.OutputData{
		Status:       string(domain.StatusCompleted),
		OverallScore: 72,
		RiskLevel:    domain.RiskLow,
		KeyFindings:  []string{"fine"},
	}
	err = store.Complete(s.ctx, id, output, 1500)
	s.NoError(err)

	prev, err := store.GetLatestCompleted(s.ctx, "acct-1", "general")
	s.NoError(err)
	s.Require().NotNil(prev)
	s.Equal(id, prev.ResultID)
	s.Equal(72, prev.Output.OverallScore)
	s.Equal(domain.RiskLow, prev.Output.RiskLevel)
}

func (s *PostgresIntegrationSuite) TestAnalysisStore_CompletedRowIsImmutable() {
	store := NewAnalysisStore(s.db)

	id, err := store.CreatePending(s.ctx, "acct-1", "general", "test-model")
	s.NoError(err)

	err = store.Complete(s.ctx, id, &domain.OutputData{OverallScore: 72}, 100)
	s.NoError(err)

	// a second terminal transition must not touch the row
	err = store.Fail(s.ctx, id, "late failure", 200)
	s.NoError(err)

	var status string
	err = s.db.GetContext(s.ctx, &status, "SELECT status FROM analysis_results WHERE id = $1", id)
	s.NoError(err)
	s.Equal(string(domain.StatusCompleted), status)
}

func (s *PostgresIntegrationSuite) TestAnalysisStore_FailKeepsError() {
	store := NewAnalysisStore(s.db)

	id, err := store.CreatePending(s.ctx, "acct-1", "general", "test-model")
	s.NoError(err)

	err = store.Fail(s.ctx, id, "remote fetch failed", 300)
	s.NoError(err)

	var (
		status string
		errMsg string
	)
	row := s.db.QueryRowContext(s.ctx, "SELECT status, error FROM analysis_results WHERE id = $1", id)
	s.NoError(row.Scan(&status, &errMsg))
	s.Equal(string(domain.StatusFailed), status)
	s.Equal("remote fetch failed", errMsg)

	prev, err := store.GetLatestCompleted(s.ctx, "acct-1", "general")
	s.NoError(err)
	s.Nil(prev)
}

func (s *PostgresIntegrationSuite) TestAnalysisStore_GetLatestCompleted_CountsLinkedItems() {
	analysisStore := NewAnalysisStore(s.db)
	linkStore := NewLinkStore(s.db)
	itemStore := NewItemStore(s.db, s.logger)
	now := time.Now().Truncate(time.Microsecond)

	_, err := itemStore.UpsertBatch(s.ctx, "acct-1", []domain.CachedItem{
		testItem("acct-1", "t1", "a", now),
		testItem("acct-1", "t2", "b", now),
	}, "t1")
	s.NoError(err)

	id, err := analysisStore.CreatePending(s.ctx, "acct-1", "general", "test-model")
	s.NoError(err)
	s.NoError(analysisStore.Complete(s.ctx, id, &domain.OutputData{OverallScore: 60}, 100))
	s.NoError(linkStore.LinkItems(s.ctx, id, []string{"t1", "t2"}, "general"))

	prev, err := analysisStore.GetLatestCompleted(s.ctx, "acct-1", "general")
	s.NoError(err)
	s.Require().NotNil(prev)
	s.Equal(2, prev.AnalyzedCount)
}

func (s *PostgresIntegrationSuite) TestLinkStore_LinkItems_Idempotent() {
	analysisStore := NewAnalysisStore(s.db)
	linkStore := NewLinkStore(s.db)

	id, err := analysisStore.CreatePending(s.ctx, "acct-1", "general", "test-model")
	s.NoError(err)

	s.NoError(linkStore.LinkItems(s.ctx, id, []string{"t1", "t2"}, "general"))
	s.NoError(linkStore.LinkItems(s.ctx, id, []string{"t1", "t2"}, "general"))

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM item_analysis_links WHERE result_id = $1", id)
	s.NoError(err)
	s.Equal(2, count)
}

func (s *PostgresIntegrationSuite) TestLinkStore_GetUnanalyzed_AntiJoin() {
	analysisStore := NewAnalysisStore(s.db)
	linkStore := NewLinkStore(s.db)
	itemStore := NewItemStore(s.db, s.logger)
	now := time.Now().Truncate(time.Microsecond)

	_, err := itemStore.UpsertBatch(s.ctx, "acct-1", []domain.CachedItem{
		testItem("acct-1", "t1", "analyzed", now),
		testItem("acct-1", "t2", "not yet", now.Add(-time.Hour)),
	}, "t1")
	s.NoError(err)

	id, err := analysisStore.CreatePending(s.ctx, "acct-1", "general", "test-model")
	s.NoError(err)
	s.NoError(analysisStore.Complete(s.ctx, id, &domain.OutputData{OverallScore: 60}, 100))
	s.NoError(linkStore.LinkItems(s.ctx, id, []string{"t1"}, "general"))

	unanalyzed, err := linkStore.GetUnanalyzed(s.ctx, "acct-1", "general")
	s.NoError(err)
	s.Require().Len(unanalyzed, 1)
	s.Equal("t2", unanalyzed[0].ItemID)
}

func (s *PostgresIntegrationSuite) TestLinkStore_GetUnanalyzed_PurposesAreIndependent() {
	analysisStore := NewAnalysisStore(s.db)
	linkStore := NewLinkStore(s.db)
	itemStore := NewItemStore(s.db, s.logger)
	now := time.Now().Truncate(time.Microsecond)

	_, err := itemStore.UpsertBatch(s.ctx, "acct-1", []domain.CachedItem{
		testItem("acct-1", "t1", "text", now),
	}, "t1")
	s.NoError(err)

	id, err := analysisStore.CreatePending(s.ctx, "acct-1", "employment_screening", "test-model")
	s.NoError(err)
	s.NoError(analysisStore.Complete(s.ctx, id, &domain.OutputData{OverallScore: 60}, 100))
	s.NoError(linkStore.LinkItems(s.ctx, id, []string{"t1"}, "employment_screening"))

	unanalyzed, err := linkStore.GetUnanalyzed(s.ctx, "acct-1", "brand_safety")
	s.NoError(err)
	s.Len(unanalyzed, 1)
}

func (s *PostgresIntegrationSuite) TestLinkStore_GetUnanalyzed_ItemIDsScopedPerAccount() {
	analysisStore := NewAnalysisStore(s.db)
	linkStore := NewLinkStore(s.db)
	itemStore := NewItemStore(s.db, s.logger)
	now := time.Now().Truncate(time.Microsecond)

	// both accounts cache the same item id
	_, err := itemStore.UpsertBatch(s.ctx, "acct-a", []domain.CachedItem{
		testItem("acct-a", "t1", "a's post", now),
	}, "t1")
	s.NoError(err)
	_, err = itemStore.UpsertBatch(s.ctx, "acct-b", []domain.CachedItem{
		testItem("acct-b", "t1", "b's post", now),
	}, "t1")
	s.NoError(err)

	id, err := analysisStore.CreatePending(s.ctx, "acct-a", "visa", "test-model")
	s.NoError(err)
	s.NoError(analysisStore.Complete(s.ctx, id, &domain.OutputData{OverallScore: 60}, 100))
	s.NoError(linkStore.LinkItems(s.ctx, id, []string{"t1"}, "visa"))

	// a's link must not shadow b's identically-named item
	unanalyzed, err := linkStore.GetUnanalyzed(s.ctx, "acct-b", "visa")
	s.NoError(err)
	s.Require().Len(unanalyzed, 1)
	s.Equal("t1", unanalyzed[0].ItemID)
	s.Equal("acct-b", unanalyzed[0].AccountID)

	unanalyzed, err = linkStore.GetUnanalyzed(s.ctx, "acct-a", "visa")
	s.NoError(err)
	s.Len(unanalyzed, 0)
}

func (s *PostgresIntegrationSuite) TestLinkStore_GetUnanalyzed_FailedResultDoesNotCount() {
	analysisStore := NewAnalysisStore(s.db)
	linkStore := NewLinkStore(s.db)
	itemStore := NewItemStore(s.db, s.logger)
	now := time.Now().Truncate(time.Microsecond)

	_, err := itemStore.UpsertBatch(s.ctx, "acct-1", []domain.CachedItem{
		testItem("acct-1", "t1", "text", now),
	}, "t1")
	s.NoError(err)

	id, err := analysisStore.CreatePending(s.ctx, "acct-1", "general", "test-model")
	s.NoError(err)
	s.NoError(linkStore.LinkItems(s.ctx, id, []string{"t1"}, "general"))
	s.NoError(analysisStore.Fail(s.ctx, id, "model error", 100))

	unanalyzed, err := linkStore.GetUnanalyzed(s.ctx, "acct-1", "general")
	s.NoError(err)
	s.Len(unanalyzed, 1)
}

func (s *PostgresIntegrationSuite) TestQuotaStore_CountsCurrentMonth() {
	quotaStore := NewQuotaStore(s.db)
	analysisStore := NewAnalysisStore(s.db)

	ok, err := quotaStore.HasQuota(s.ctx, "acct-1", "basic")
	s.NoError(err)
	s.True(ok)

	for i := 0; i < 3; i++ {
		_, err := analysisStore.CreatePending(s.ctx, "acct-1", "general", "test-model")
		s.NoError(err)
	}

	ok, err = quotaStore.HasQuota(s.ctx, "acct-1", "basic")
	s.NoError(err)
	s.True(ok)
}

func (s *PostgresIntegrationSuite) TestQuotaStore_UnknownTier() {
	quotaStore := NewQuotaStore(s.db)

	ok, err := quotaStore.HasQuota(s.ctx, "acct-1", "platinum")
	s.NoError(err)
	s.False(ok)
}

func (s *PostgresIntegrationSuite) TestTransaction_Rollback() {
	tm := NewTransactionManager(s.db)
	analysisStore := NewAnalysisStore(s.db)
	linkStore := NewLinkStore(s.db)

	id, err := analysisStore.CreatePending(s.ctx, "acct-1", "general", "test-model")
	s.NoError(err)

	err = tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := analysisStore.Complete(ctx, id, &domain.OutputData{OverallScore: 60}, 100); err != nil {
			return err
		}
		if err := linkStore.LinkItems(ctx, id, []string{"t1"}, "general"); err != nil {
			return err
		}
		return context.Canceled
	})
	s.Error(err)

	var status string
	err = s.db.GetContext(s.ctx, &status, "SELECT status FROM analysis_results WHERE id = $1", id)
	s.NoError(err)
	s.Equal(string(domain.StatusPending), status)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM item_analysis_links WHERE result_id = $1", id)
	s.NoError(err)
	s.Equal(0, count)
}

func (s *PostgresIntegrationSuite) TestTransaction_Commit() {
	tm := NewTransactionManager(s.db)
	analysisStore := NewAnalysisStore(s.db)
	linkStore := NewLinkStore(s.db)

	id, err := analysisStore.CreatePending(s.ctx, "acct-1", "general", "test-model")
	s.NoError(err)

	err = tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := analysisStore.Complete(ctx, id, &domain.OutputData{OverallScore: 60}, 100); err != nil {
			return err
		}
		return linkStore.LinkItems(ctx, id, []string{"t1"}, "general")
	})
	s.NoError(err)

	var status string
	err = s.db.GetContext(s.ctx, &status, "SELECT status FROM analysis_results WHERE id = $1", id)
	s.NoError(err)
	s.Equal(string(domain.StatusCompleted), status)
}
