package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"repscan/internal/domain"
)

type ItemStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewItemStore(db *sqlx.DB, logger *slog.Logger) *ItemStore {
	return &ItemStore{db: db, logger: logger}
}

// UpsertBatch inserts or updates every item by (account_id, item_id) and
// returns the number of successfully stored rows. A failing item is skipped,
// not fatal for the batch. After the loop the account's cache meta row is
// replaced atomically in a single upsert; this is the only writer of
// account_cache_meta. newestID falls back to the first item's id when empty.
func (s *ItemStore) UpsertBatch(ctx context.Context, accountID string, items []domain.CachedItem, newestID string) (int, error) {
	stored := 0
	for i := range items {
		if err := s.upsertOne(ctx, accountID, &items[i]); err != nil {
			s.logger.Warn("failed to upsert item",
				"account_id", accountID,
				"item_id", items[i].ItemID,
				"error", err,
			)
			continue
		}
		stored++
	}

	if newestID == "" && len(items) > 0 {
		newestID = items[0].ItemID
	}

	if err := s.replaceMeta(ctx, accountID, newestID); err != nil {
		return stored, fmt.Errorf("replace cache meta: %w", err)
	}

	return stored, nil
}

func (s *ItemStore) upsertOne(ctx context.Context, accountID string, item *domain.CachedItem) error {
	metrics, err := json.Marshal(item.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}

	entities := []byte(item.Entities)
	if len(entities) == 0 {
		entities = []byte("{}")
	}

	var mediaRefs []byte
	if item.MediaRefs != nil {
		if mediaRefs, err = json.Marshal(item.MediaRefs); err != nil {
			return fmt.Errorf("marshal media refs: %w", err)
		}
	}

	query := `
		INSERT INTO cached_items (
			account_id, item_id, item_text, item_created_at, metrics, entities,
			has_media, media_count, media_refs, fetched_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, now()
		)
		ON CONFLICT (account_id, item_id) DO UPDATE SET
			item_text = EXCLUDED.item_text,
			metrics = EXCLUDED.metrics,
			entities = EXCLUDED.entities,
			has_media = EXCLUDED.has_media,
			media_count = EXCLUDED.media_count,
			media_refs = EXCLUDED.media_refs,
			fetched_at = EXCLUDED.fetched_at`

	exec := GetExecutor(ctx, s.db)
	_, err = exec.ExecContext(ctx, query,
		accountID,
		item.ItemID,
		item.Text,
		item.CreatedAt,
		metrics,
		entities,
		item.HasMedia,
		item.MediaCount,
		mediaRefs,
	)
	return err
}

func (s *ItemStore) replaceMeta(ctx context.Context, accountID, newestID string) error {
	query := `
		INSERT INTO account_cache_meta (account_id, newest_item_id, last_sync_at, total_cached_count)
		VALUES ($1, $2, now(), (SELECT COUNT(*) FROM cached_items WHERE account_id = $1))
		ON CONFLICT (account_id) DO UPDATE SET
			newest_item_id = EXCLUDED.newest_item_id,
			last_sync_at = EXCLUDED.last_sync_at,
			total_cached_count = EXCLUDED.total_cached_count`

	exec := GetExecutor(ctx, s.db)
	_, err := exec.ExecContext(ctx, query, accountID, newestID)
	return err
}

// GetAll returns every cached item for the account, newest first.
func (s *ItemStore) GetAll(ctx context.Context, accountID string) ([]domain.CachedItem, error) {
	query := `
		SELECT account_id, item_id, item_text, item_created_at, metrics, entities,
		       has_media, media_count, media_refs, image_analysis, fetched_at
		FROM cached_items
		WHERE account_id = $1
		ORDER BY item_created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CachedItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// GetCacheStatus reads the account's cache meta. A missing row is reported as
// an empty cache that needs refresh, not an error.
func (s *ItemStore) GetCacheStatus(ctx context.Context, accountID string) (*domain.CacheStatus, error) {
	query := `
		SELECT newest_item_id, last_sync_at, total_cached_count
		FROM account_cache_meta
		WHERE account_id = $1`

	var (
		newestID sql.NullString
		lastSync sql.NullTime
		count    int
	)
	err := s.db.QueryRowContext(ctx, query, accountID).Scan(&newestID, &lastSync, &count)
	if err == sql.ErrNoRows {
		return &domain.CacheStatus{NeedsRefresh: true}, nil
	}
	if err != nil {
		return nil, err
	}

	status := &domain.CacheStatus{
		Count:        count,
		NewestItemID: newestID.String,
	}
	if lastSync.Valid {
		t := lastSync.Time
		status.LastSyncAt = &t
	}
	status.NeedsRefresh = domain.StaleAt(count, status.LastSyncAt, time.Now())
	return status, nil
}

// SaveImageAnalysis persists the aggregated vision verdict back onto the
// cached row so later scans and prompts can reuse it.
func (s *ItemStore) SaveImageAnalysis(ctx context.Context, accountID, itemID string, summary *domain.ImageAnalysisSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal image analysis: %w", err)
	}

	exec := GetExecutor(ctx, s.db)
	_, err = exec.ExecContext(ctx,
		"UPDATE cached_items SET image_analysis = $1 WHERE account_id = $2 AND item_id = $3",
		data, accountID, itemID,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.CachedItem, error) {
	var (
		item          domain.CachedItem
		metrics       []byte
		entities      []byte
		mediaRefs     []byte
		imageAnalysis []byte
	)

	err := row.Scan(
		&item.AccountID,
		&item.ItemID,
		&item.Text,
		&item.CreatedAt,
		&metrics,
		&entities,
		&item.HasMedia,
		&item.MediaCount,
		&mediaRefs,
		&imageAnalysis,
		&item.FetchedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(metrics) > 0 {
		if err := json.Unmarshal(metrics, &item.Metrics); err != nil {
			return nil, fmt.Errorf("unmarshal metrics: %w", err)
		}
	}
	item.Entities = entities
	if len(mediaRefs) > 0 {
		if err := json.Unmarshal(mediaRefs, &item.MediaRefs); err != nil {
			return nil, fmt.Errorf("unmarshal media refs: %w", err)
		}
	}
	if len(imageAnalysis) > 0 {
		item.ImageAnalysis = &domain.ImageAnalysisSummary{}
		if err := json.Unmarshal(imageAnalysis, item.ImageAnalysis); err != nil {
			return nil, fmt.Errorf("unmarshal image analysis: %w", err)
		}
	}
	return &item, nil
}
