// Package relevance selects papers matching a subscriber's interest.
// Two strategies exist: keyword matching, which is pure and never fails, and semantic ranking by
// embedding similarity. New wires semantic ranking behind a keyword fallback when embeddings are available.
package relevance

import (
	"context"

	"github.com/go-pkgz/lgr"

	"github.com/demajh/research-listener/pkg/domain"
)

//go:generate moq -out mocks/embedder.go -pkg mocks -skip-ensure -fmt goimports . Embedder
//go:generate moq -out mocks/strategy.go -pkg mocks -skip-ensure -fmt goimports . Strategy

// Strategy filters papers by interest
type Strategy interface {
	Filter(ctx context.Context, papers []domain.Paper, interest string) ([]domain.Paper, error)
}

// Embedder converts texts to vectors, one per input, in input order
type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

// Options for the semantic strategy
type Options struct {
	TopK          int
	Threshold     float64
	AbstractLimit int
	BatchSize     int
}

// New returns the relevance strategy for the available capabilities.
// With semantic enabled the result ranks by embeddings and falls back to keywords on any error.
func New(semanticEnabled bool, embedder Embedder, opts Options) Strategy {
	if !semanticEnabled || embedder == nil {
		lgr.Printf("[INFO] relevance filter: keyword")
		return &Keyword{}
	}
	lgr.Printf("[INFO] relevance filter: semantic (top %d, threshold %.2f) with keyword fallback", opts.TopK, opts.Threshold)
	return &Fallback{Primary: NewSemantic(embedder, opts), Secondary: &Keyword{}}
}

// Fallback tries Primary and uses Secondary for the same input when Primary fails
type Fallback struct {
	Primary   Strategy
	Secondary Strategy
}

// Filter implements Strategy
func (f *Fallback) Filter(ctx context.Context, papers []domain.Paper, interest string) ([]domain.Paper, error) {
	res, err := f.Primary.Filter(ctx, papers, interest)
	if err == nil {
		return res, nil
	}
	lgr.Printf("[WARN] primary relevance filter failed, using fallback: %v", err)
	return f.Secondary.Filter(ctx, papers, interest)
}
