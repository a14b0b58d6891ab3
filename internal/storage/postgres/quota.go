package postgres

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Monthly analysis quotas per subscription tier.
var tierQuotas = map[string]int{
	"basic":      1000,
	"pro":        10000,
	"enterprise": 100000,
}

type QuotaStore struct {
	db *sqlx.DB
}

func NewQuotaStore(db *sqlx.DB) *QuotaStore {
	return &QuotaStore{db: db}
}

// HasQuota reports whether the account owner may start another analysis this
// calendar month. Unknown tiers get no quota.
func (s *QuotaStore) HasQuota(ctx context.Context, accountID, tier string) (bool, error) {
	max, ok := tierQuotas[strings.ToLower(tier)]
	if !ok {
		return false, nil
	}

	var used int
	err := s.db.GetContext(ctx, &used, `
		SELECT COUNT(*)
		FROM analysis_results
		WHERE account_id = $1
		  AND created_at >= date_trunc('month', CURRENT_DATE)`,
		accountID,
	)
	if err != nil {
		return false, err
	}

	return used < max, nil
}
