package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/demajh/research-listener/pkg/domain"
)

// SubscriptionRepository handles subscription database operations
type SubscriptionRepository struct {
	db *sqlx.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// subscriptionRow is the database representation of a subscription
type subscriptionRow struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Channel   string    `db:"channel"`
	Interest  string    `db:"interest"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

// Create inserts a new active subscription and sets its ID. An inactive subscription of the same
// email and channel is reactivated with the new interest, keeping its ID and archived digests.
// Returns ErrDuplicate if the email is already actively subscribed to the channel.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	createdAt := time.Now().UTC()

	var id int64
	err := withRetry(ctx, func() error {
		query := `
			INSERT INTO subscriptions (email, channel, interest, active, created_at)
			VALUES (?, ?, ?, 1, ?)
			ON CONFLICT (email, channel) DO UPDATE SET interest = excluded.interest, active = 1
			WHERE subscriptions.active = 0
			RETURNING id
		`
		err := r.db.QueryRowxContext(ctx, query, sub.Email, sub.Channel, sub.Interest, createdAt).Scan(&id)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, sql.ErrNoRows):
			// conflict with an active row, the update was skipped
			return &criticalError{err: ErrDuplicate}
		case isLockError(err):
			return err // retry
		case isUniqueError(err):
			return &criticalError{err: ErrDuplicate}
		default:
			return &criticalError{err: fmt.Errorf("create subscription: %w", err)}
		}
	})
	if err != nil {
		return err
	}

	stored, err := r.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("read created subscription: %w", err)
	}
	*sub = *stored
	return nil
}

// Get retrieves a subscription by ID
func (r *SubscriptionRepository) Get(ctx context.Context, id int64) (*domain.Subscription, error) {
	var row subscriptionRow
	err := r.db.GetContext(ctx, &row, "SELECT id, email, channel, interest, active, created_at FROM subscriptions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	sub := row.toDomain()
	return &sub, nil
}

// List returns subscriptions ordered by creation, optionally only the active ones
func (r *SubscriptionRepository) List(ctx context.Context, activeOnly bool) ([]domain.Subscription, error) {
	query := "SELECT id, email, channel, interest, active, created_at FROM subscriptions"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY id"

	var rows []subscriptionRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	res := make([]domain.Subscription, len(rows))
	for i, row := range rows {
		res[i] = row.toDomain()
	}
	return res, nil
}

// SetActive enables or disables a subscription
func (r *SubscriptionRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE subscriptions SET active = ? WHERE id = ?", active, id)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("update subscription status: %w", err)}
		}
		return affectedOrNotFound(res)
	})
}

// Delete removes a subscription and its archived digests
func (r *SubscriptionRepository) Delete(ctx context.Context, id int64) error {
	return withRetry(ctx, func() error {
		// foreign keys pragma is per connection, don't rely on cascade
		if _, err := r.db.ExecContext(ctx, "DELETE FROM digests WHERE subscription_id = ?", id); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("delete subscription digests: %w", err)}
		}
		res, err := r.db.ExecContext(ctx, "DELETE FROM subscriptions WHERE id = ?", id)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("delete subscription: %w", err)}
		}
		return affectedOrNotFound(res)
	})
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return &criticalError{err: fmt.Errorf("get affected rows: %w", err)}
	}
	if n == 0 {
		return &criticalError{err: ErrNotFound}
	}
	return nil
}

func (s subscriptionRow) toDomain() domain.Subscription {
	return domain.Subscription{
		ID:        s.ID,
		Email:     s.Email,
		Channel:   s.Channel,
		Interest:  s.Interest,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
	}
}
