package relevance

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/demajh/research-listener/pkg/domain"
)

// Semantic ranks papers by cosine similarity between interest and abstract embeddings
type Semantic struct {
	embedder Embedder
	opts     Options
}

// NewSemantic makes a semantic strategy, zero options get defaults
func NewSemantic(embedder Embedder, opts Options) *Semantic {
	if opts.TopK <= 0 {
		opts.TopK = 15
	}
	if opts.AbstractLimit <= 0 {
		opts.AbstractLimit = 4096
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 2048
	}
	return &Semantic{embedder: embedder, opts: opts}
}

type scored struct {
	paper domain.Paper
	score float64
}

// Filter implements Strategy. Result holds at most TopK papers scoring at or above Threshold, best first.
func (s *Semantic) Filter(ctx context.Context, papers []domain.Paper, interest string) ([]domain.Paper, error) {
	if len(papers) == 0 || len(Tokens(interest)) == 0 {
		return []domain.Paper{}, nil
	}

	abstracts := make([]string, len(papers))
	for i, p := range papers {
		abstracts[i] = truncate(p.Abstract, s.opts.AbstractLimit)
	}

	var interestVec []float32
	var paperVecs [][]float32

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vecs, err := s.embedder.Embed(gctx, []string{interest})
		if err != nil {
			return fmt.Errorf("embed interest: %w", err)
		}
		if len(vecs) != 1 {
			return fmt.Errorf("embed interest: expected 1 vector, got %d", len(vecs))
		}
		interestVec = vecs[0]
		return nil
	})
	g.Go(func() error {
		vecs, err := s.embedBatches(gctx, abstracts)
		if err != nil {
			return fmt.Errorf("embed abstracts: %w", err)
		}
		paperVecs = vecs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := make([]scored, len(papers))
	for i, p := range papers {
		ranked[i] = scored{paper: p, score: cosine(interestVec, paperVecs[i])}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if len(ranked) > s.opts.TopK {
		ranked = ranked[:s.opts.TopK]
	}

	res := []domain.Paper{}
	for _, r := range ranked {
		if r.score < s.opts.Threshold {
			break
		}
		res = append(res, r.paper)
	}

	lgr.Printf("[DEBUG] semantic filter kept %d of %d papers", len(res), len(papers))
	return res, nil
}

// embedBatches embeds texts in chunks of at most BatchSize
func (s *Semantic) embedBatches(ctx context.Context, texts []string) ([][]float32, error) {
	res := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += s.opts.BatchSize {
		end := min(start+s.opts.BatchSize, len(texts))
		vecs, err := s.embedder.Embed(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		if len(vecs) != end-start {
			return nil, fmt.Errorf("expected %d vectors, got %d", end-start, len(vecs))
		}
		res = append(res, vecs...)
	}
	return res, nil
}

// cosine returns the cosine similarity, 0 for zero or mismatched vectors
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// truncate cuts s to at most limit runes
func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
