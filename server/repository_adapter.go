package server

import (
	"context"

	"github.com/demajh/research-listener/pkg/domain"
	"github.com/demajh/research-listener/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Database interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// CreateSubscription stores a new subscription
func (r *RepositoryAdapter) CreateSubscription(ctx context.Context, sub *domain.Subscription) error {
	return r.repos.Subscription.Create(ctx, sub)
}

// GetSubscription returns a subscription by ID
func (r *RepositoryAdapter) GetSubscription(ctx context.Context, id int64) (*domain.Subscription, error) {
	return r.repos.Subscription.Get(ctx, id)
}

// ListSubscriptions returns subscriptions, optionally active only
func (r *RepositoryAdapter) ListSubscriptions(ctx context.Context, activeOnly bool) ([]domain.Subscription, error) {
	return r.repos.Subscription.List(ctx, activeOnly)
}

// SetSubscriptionActive enables or disables a subscription
func (r *RepositoryAdapter) SetSubscriptionActive(ctx context.Context, id int64, active bool) error {
	return r.repos.Subscription.SetActive(ctx, id, active)
}

// RecentDigests returns the latest archived digests of a subscription
func (r *RepositoryAdapter) RecentDigests(ctx context.Context, subscriptionID int64, limit int) ([]domain.ArchivedDigest, error) {
	return r.repos.Digest.Recent(ctx, subscriptionID, limit)
}

// DeleteSubscription removes a subscription with its archived digests
func (r *RepositoryAdapter) DeleteSubscription(ctx context.Context, id int64) error {
	return r.repos.Subscription.Delete(ctx, id)
}

// Ping checks the database connection
func (r *RepositoryAdapter) Ping(ctx context.Context) error {
	return r.repos.Ping(ctx)
}
