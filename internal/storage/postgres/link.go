package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"repscan/internal/domain"
)

type LinkStore struct {
	db *sqlx.DB
}

func NewLinkStore(db *sqlx.DB) *LinkStore {
	return &LinkStore{db: db}
}

// LinkItems bulk-inserts analysis links for the given items. Re-linking the
// same (item, result) pair is a no-op, never an error. Empty input is a no-op.
func (s *LinkStore) LinkItems(ctx context.Context, resultID int64, itemIDs []string, purpose string) error {
	if len(itemIDs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO item_analysis_links (item_id, result_id, purpose) VALUES ")
	args := make([]interface{}, 0, len(itemIDs)+2)
	args = append(args, resultID, purpose)

	for i, itemID := range itemIDs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("($")
		sb.WriteString(strconv.Itoa(i + 3))
		sb.WriteString(", $1, $2)")
		args = append(args, itemID)
	}
	sb.WriteString(" ON CONFLICT (item_id, result_id) DO NOTHING")

	exec := GetExecutor(ctx, s.db)
	_, err := exec.ExecContext(ctx, sb.String(), args...)
	return err
}

// GetUnanalyzed returns every cached item for the account with no link to a
// completed result of the exact same purpose, newest first. Purpose strings
// are compared for equality only; a "custom" purpose is one reuse bucket
// regardless of its free-text context. Item ids are only unique per account,
// so links are matched through the result's account.
func (s *LinkStore) GetUnanalyzed(ctx context.Context, accountID, purpose string) ([]domain.CachedItem, error) {
	query := `
		SELECT ci.account_id, ci.item_id, ci.item_text, ci.item_created_at, ci.metrics, ci.entities,
		       ci.has_media, ci.media_count, ci.media_refs, ci.image_analysis, ci.fetched_at
		FROM cached_items ci
		WHERE ci.account_id = $1
		  AND NOT EXISTS (
			SELECT 1
			FROM item_analysis_links l
			INNER JOIN analysis_results r ON r.id = l.result_id
			WHERE l.item_id = ci.item_id
			  AND r.account_id = ci.account_id
			  AND l.purpose = $2
			  AND r.status = $3
		  )
		ORDER BY ci.item_created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, accountID, purpose, domain.StatusCompleted)
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
