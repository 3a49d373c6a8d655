package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/demajh/research-listener/pkg/domain"
)

// DigestRepository keeps delivered digests
type DigestRepository struct {
	db *sqlx.DB
}

// NewDigestRepository creates a new digest repository
func NewDigestRepository(db *sqlx.DB) *DigestRepository {
	return &DigestRepository{db: db}
}

type digestRow struct {
	ID             int64     `db:"id"`
	SubscriptionID int64     `db:"subscription_id"`
	RunID          string    `db:"run_id"`
	GeneratedAt    time.Time `db:"generated_at"`
	Papers         int       `db:"papers"`
	Markdown       string    `db:"markdown"`
}

// Save stores a digest and sets its ID
func (r *DigestRepository) Save(ctx context.Context, d *domain.ArchivedDigest) error {
	row := digestRow{
		SubscriptionID: d.SubscriptionID,
		RunID:          d.RunID,
		GeneratedAt:    d.GeneratedAt.UTC(),
		Papers:         d.Papers,
		Markdown:       d.Markdown,
	}

	return withRetry(ctx, func() error {
		query := `
			INSERT INTO digests (subscription_id, run_id, generated_at, papers, markdown)
			VALUES (:subscription_id, :run_id, :generated_at, :papers, :markdown)
		`
		res, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("save digest: %w", err)}
		}
		id, err := res.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		d.ID = id
		return nil
	})
}

// Recent returns the latest digests of a subscription, newest first
func (r *DigestRepository) Recent(ctx context.Context, subscriptionID int64, limit int) ([]domain.ArchivedDigest, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, subscription_id, run_id, generated_at, papers, markdown
		FROM digests
		WHERE subscription_id = ?
		ORDER BY generated_at DESC, id DESC
		LIMIT ?
	`
	var rows []digestRow
	if err := r.db.SelectContext(ctx, &rows, query, subscriptionID, limit); err != nil {
		return nil, fmt.Errorf("get recent digests: %w", err)
	}

	res := make([]domain.ArchivedDigest, len(rows))
	for i, row := range rows {
		res[i] = domain.ArchivedDigest{
			ID:             row.ID,
			SubscriptionID: row.SubscriptionID,
			RunID:          row.RunID,
			GeneratedAt:    row.GeneratedAt,
			Papers:         row.Papers,
			Markdown:       row.Markdown,
		}
	}
	return res, nil
}
