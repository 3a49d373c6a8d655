package relevance

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demajh/research-listener/pkg/domain"
	"github.com/demajh/research-listener/pkg/relevance/mocks"
)

func testPapers() []domain.Paper {
	return []domain.Paper{
		{ArxivID: "1", Title: "Graph Neural Networks", Abstract: "Message passing on molecules."},
		{ArxivID: "2", Title: "Efficient Transformers", Abstract: "We study sparse attention for long documents."},
		{ArxivID: "3", Title: "Reinforcement learning", Abstract: "Policy gradients in robotics."},
	}
}

func TestKeyword_Filter(t *testing.T) {
	k := &Keyword{}
	papers := testPapers()

	tests := []struct {
		name     string
		interest string
		want     []string
	}{
		{name: "single match", interest: "transformer attention", want: []string{"2"}},
		{name: "case insensitive", interest: "GRAPH", want: []string{"1"}},
		{name: "substring match", interest: "robot", want: []string{"3"}},
		{name: "order preserved", interest: "policy, graph", want: []string{"1", "3"}},
		{name: "no match", interest: "quantum chemistry", want: []string{}},
		{name: "punctuation only", interest: "?!, ...", want: []string{}},
		{name: "empty interest", interest: "", want: []string{}},
		{name: "unicode tokens", interest: "naïve Transformers", want: []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := k.Filter(context.Background(), papers, tt.interest)
			require.NoError(t, err)
			ids := []string{}
			for _, p := range res {
				ids = append(ids, p.ArxivID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestKeyword_Filter_Invariants(t *testing.T) {
	k := &Keyword{}
	papers := testPapers()
	interest := "attention graph"
	tokens := Tokens(interest)

	res, err := k.Filter(context.Background(), papers, interest)
	require.NoError(t, err)

	kept := map[string]bool{}
	for _, p := range res {
		kept[p.ArxivID] = true
	}
	for _, p := range papers {
		text := strings.ToLower(p.Title + " " + p.Abstract)
		hit := false
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				hit = true
			}
		}
		assert.Equal(t, hit, kept[p.ArxivID], "paper %s", p.ArxivID)
	}
}

func TestKeyword_Filter_EmptyPapers(t *testing.T) {
	res, err := (&Keyword{}).Filter(context.Background(), nil, "anything")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"large", "language_models", "v2"}, Tokens("Large, language_models & v2!"))
	assert.Empty(t, Tokens("  - ; "))
}

// vectorEmbedder maps known texts to fixed vectors
func vectorEmbedder(vectors map[string][]float32) *mocks.EmbedderMock {
	return &mocks.EmbedderMock{
		EmbedFunc: func(ctx context.Context, inputs []string) ([][]float32, error) {
			res := make([][]float32, len(inputs))
			for i, in := range inputs {
				v, ok := vectors[in]
				if !ok {
					v = []float32{0, 0, 1}
				}
				res[i] = v
			}
			return res, nil
		},
	}
}

func TestSemantic_Filter(t *testing.T) {
	papers := []domain.Paper{
		{ArxivID: "a", Abstract: "close"},
		{ArxivID: "b", Abstract: "far"},
		{ArxivID: "c", Abstract: "exact"},
		{ArxivID: "d", Abstract: "medium"},
	}
	emb := vectorEmbedder(map[string][]float32{
		"interest": {1, 0, 0},
		"exact":    {1, 0, 0},
		"close":    {0.95, 0.1, 0},
		"medium":   {0.8, 0.6, 0},
		"far":      {0, 1, 0},
	})

	t.Run("threshold and order", func(t *testing.T) {
		s := NewSemantic(emb, Options{TopK: 15, Threshold: 0.78})
		res, err := s.Filter(context.Background(), papers, "interest")
		require.NoError(t, err)
		ids := []string{}
		for _, p := range res {
			ids = append(ids, p.ArxivID)
		}
		// medium scores exactly 0.8, far scores 0
		assert.Equal(t, []string{"c", "a", "d"}, ids)
	})

	t.Run("top k", func(t *testing.T) {
		s := NewSemantic(emb, Options{TopK: 2, Threshold: 0.5})
		res, err := s.Filter(context.Background(), papers, "interest")
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, "c", res[0].ArxivID)
		assert.Equal(t, "a", res[1].ArxivID)
	})

	t.Run("high threshold", func(t *testing.T) {
		s := NewSemantic(emb, Options{TopK: 15, Threshold: 0.999})
		res, err := s.Filter(context.Background(), papers, "interest")
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "c", res[0].ArxivID)
	})

	t.Run("empty papers", func(t *testing.T) {
		s := NewSemantic(emb, Options{})
		res, err := s.Filter(context.Background(), nil, "interest")
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestSemantic_Filter_TruncatesAndBatches(t *testing.T) {
	var mu sync.Mutex
	var batches [][]string
	emb := &mocks.EmbedderMock{
		EmbedFunc: func(ctx context.Context, inputs []string) ([][]float32, error) {
			mu.Lock()
			batches = append(batches, inputs)
			mu.Unlock()
			res := make([][]float32, len(inputs))
			for i := range inputs {
				res[i] = []float32{1, 0}
			}
			return res, nil
		},
	}

	papers := make([]domain.Paper, 5)
	for i := range papers {
		papers[i] = domain.Paper{ArxivID: string(rune('a' + i)), Abstract: strings.Repeat("x", 20)}
	}

	s := NewSemantic(emb, Options{TopK: 10, Threshold: 0.5, AbstractLimit: 8, BatchSize: 2})
	res, err := s.Filter(context.Background(), papers, "topic")
	require.NoError(t, err)
	assert.Len(t, res, 5)

	// one interest call plus three abstract batches
	require.Len(t, emb.EmbedCalls(), 4)
	sizes := map[int]int{}
	for _, b := range batches {
		if len(b) == 1 && b[0] == "topic" {
			continue
		}
		sizes[len(b)]++
		for _, in := range b {
			assert.Len(t, in, 8)
		}
	}
	assert.Equal(t, map[int]int{2: 2, 1: 1}, sizes)
}

func TestSemantic_Filter_Errors(t *testing.T) {
	papers := testPapers()

	t.Run("embedder fails", func(t *testing.T) {
		emb := &mocks.EmbedderMock{
			EmbedFunc: func(ctx context.Context, inputs []string) ([][]float32, error) {
				return nil, errors.New("backend down")
			},
		}
		_, err := NewSemantic(emb, Options{}).Filter(context.Background(), papers, "graph")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "backend down")
	})

	t.Run("count mismatch", func(t *testing.T) {
		emb := &mocks.EmbedderMock{
			EmbedFunc: func(ctx context.Context, inputs []string) ([][]float32, error) {
				return [][]float32{{1, 0}}, nil
			},
		}
		_, err := NewSemantic(emb, Options{}).Filter(context.Background(), papers, "graph")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 3 vectors, got 1")
	})
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Zero(t, cosine([]float32{0, 0}, []float32{1, 1}))
	assert.Zero(t, cosine([]float32{1}, []float32{1, 1}))
	assert.Zero(t, cosine(nil, nil))
}

func TestFallback_Filter(t *testing.T) {
	papers := testPapers()

	t.Run("primary ok", func(t *testing.T) {
		primary := &mocks.StrategyMock{
			FilterFunc: func(ctx context.Context, p []domain.Paper, interest string) ([]domain.Paper, error) {
				return p[:1], nil
			},
		}
		secondary := &mocks.StrategyMock{}
		res, err := (&Fallback{Primary: primary, Secondary: secondary}).Filter(context.Background(), papers, "x")
		require.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Empty(t, secondary.FilterCalls())
	})

	t.Run("primary fails equals keyword result", func(t *testing.T) {
		emb := &mocks.EmbedderMock{
			EmbedFunc: func(ctx context.Context, inputs []string) ([][]float32, error) {
				return nil, errors.New("unavailable")
			},
		}
		f := &Fallback{Primary: NewSemantic(emb, Options{}), Secondary: &Keyword{}}
		res, err := f.Filter(context.Background(), papers, "transformer attention")
		require.NoError(t, err)

		want, err := (&Keyword{}).Filter(context.Background(), papers, "transformer attention")
		require.NoError(t, err)
		assert.Equal(t, want, res)
	})
}

func TestFallback_Filter_BackendDown(t *testing.T) {
	papers := testPapers()
	emb := &mocks.EmbedderMock{
		EmbedFunc: func(ctx context.Context, inputs []string) ([][]float32, error) {
			return nil, errors.New("connection refused")
		},
	}
	f := New(true, emb, Options{TopK: 5, Threshold: 0.5})

	tests := []struct {
		name     string
		interest string
		want     []string
	}{
		{name: "keyword match", interest: "transformer attention", want: []string{"2"}},
		{name: "several matches", interest: "GRAPH robot", want: []string{"1", "3"}},
		{name: "punctuation only", interest: "!!!", want: []string{}},
		{name: "empty interest", interest: "", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.Filter(context.Background(), papers, tt.interest)
			require.NoError(t, err)
			require.NotNil(t, res)
			ids := make([]string, 0, len(res))
			for _, p := range res {
				ids = append(ids, p.ArxivID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSemantic_Filter_NoTokens(t *testing.T) {
	emb := &mocks.EmbedderMock{}
	for _, interest := range []string{"", "!!!", " ... "} {
		res, err := NewSemantic(emb, Options{TopK: 5}).Filter(context.Background(), testPapers(), interest)
		require.NoError(t, err)
		assert.Empty(t, res)
		assert.NotNil(t, res)
	}
	assert.Empty(t, emb.EmbedCalls())
}

func TestNew(t *testing.T) {
	emb := &mocks.EmbedderMock{}

	_, ok := New(false, emb, Options{}).(*Keyword)
	assert.True(t, ok, "keyword when semantic disabled")

	_, ok = New(true, nil, Options{}).(*Keyword)
	assert.True(t, ok, "keyword without embedder")

	f, ok := New(true, emb, Options{TopK: 3}).(*Fallback)
	require.True(t, ok)
	sem, ok := f.Primary.(*Semantic)
	require.True(t, ok)
	assert.Equal(t, 3, sem.opts.TopK)
	_, ok = f.Secondary.(*Keyword)
	assert.True(t, ok)
}
