package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"repscan/internal/domain"
)

type AnalysisStore struct {
	db *sqlx.DB
}

func NewAnalysisStore(db *sqlx.DB) *AnalysisStore {
	return &AnalysisStore{db: db}
}

// CreatePending inserts a new pending result row at scan start and returns
// its id.
func (s *AnalysisStore) CreatePending(ctx context.Context, accountID, purpose, modelUsed string) (int64, error) {
	query := `
		INSERT INTO analysis_results (account_id, purpose, model_used, status, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query, accountID, purpose, modelUsed, domain.StatusPending).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create pending analysis: %w", err)
	}
	return id, nil
}

// Complete writes the final output onto a pending row. Rows already in a
// terminal state are never touched again.
func (s *AnalysisStore) Complete(ctx context.Context, resultID int64, output *domain.OutputData, executionTimeMs int64) error {
	data, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	exec := GetExecutor(ctx, s.db)
	_, err = exec.ExecContext(ctx, `
		UPDATE analysis_results
		SET status = $1, output_data = $2, execution_time_ms = $3
		WHERE id = $4 AND status = $5`,
		domain.StatusCompleted, data, executionTimeMs, resultID, domain.StatusPending,
	)
	return err
}

// Fail marks a pending row failed with a human-readable error, so failed
// scans stay queryable in history.
func (s *AnalysisStore) Fail(ctx context.Context, resultID int64, errMsg string, executionTimeMs int64) error {
	exec := GetExecutor(ctx, s.db)
	_, err := exec.ExecContext(ctx, `
		UPDATE analysis_results
		SET status = $1, error = $2, execution_time_ms = $3
		WHERE id = $4 AND status = $5`,
		domain.StatusFailed, errMsg, executionTimeMs, resultID, domain.StatusPending,
	)
	return err
}

// GetLatestCompleted returns the most recent completed result for the
// (account, purpose) pair, with the count of distinct items linked to it.
// Returns nil when none exists; callers treat that as "nothing to reuse".
func (s *AnalysisStore) GetLatestCompleted(ctx context.Context, accountID, purpose string) (*domain.PreviousAnalysis, error) {
	query := `
		SELECT r.id, r.output_data, r.created_at,
		       (SELECT COUNT(DISTINCT l.item_id) FROM item_analysis_links l WHERE l.result_id = r.id)
		FROM analysis_results r
		WHERE r.account_id = $1 AND r.purpose = $2 AND r.status = $3
		ORDER BY r.created_at DESC
		LIMIT 1`

	var (
		prev domain.PreviousAnalysis
		data []byte
	)
	err := s.db.QueryRowContext(ctx, query, accountID, purpose, domain.StatusCompleted).
		Scan(&prev.ResultID, &data, &prev.CreatedAt, &prev.AnalyzedCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, &prev.Output); err != nil {
		return nil, fmt.Errorf("unmarshal output data: %w", err)
	}
	return &prev, nil
}
