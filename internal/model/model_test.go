package model

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efebarandurmaz/ranker/internal/bm25"
	"github.com/efebarandurmaz/ranker/internal/corpus"
)

func docs(texts ...string) []corpus.Document[int32] {
	out := make([]corpus.Document[int32], len(texts))
	for i, t := range texts {
		out[i] = corpus.Document[int32]{ID: int32(i + 1), Text: t}
	}
	return out
}

func TestQueryEmptyManager(t *testing.T) {
	m := New[int32](corpus.KindDataset)

	got, err := m.Query(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, m.Stats().Documents)
	assert.NotEmpty(t, m.Stats().Generation)
}

func TestPopulateEmptyCorpus(t *testing.T) {
	m := New[int32](corpus.KindDataset)

	stats, err := m.Populate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Documents)

	got, err := m.Query(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPopulateThenQuery(t *testing.T) {
	m := New[int32](corpus.KindDataset, bm25.WithAnalyzer(bm25.AnalyzerOptions{Language: bm25.LanguageNone}))

	stats, err := m.Populate(context.Background(), docs("the cat sat", "the dog ran fast", "cats and dogs"))
	require.NoError(t, err)
	assert.Equal(t, corpus.KindDataset, stats.Kind)
	assert.Equal(t, 3, stats.Documents)

	got, err := m.Query(context.Background(), "dog")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int32(2), got[0].ID)
}

func TestPopulateIdempotent(t *testing.T) {
	ctx := context.Background()
	m := New[int32](corpus.KindPaper)
	corpusDocs := docs("graph neural networks", "neural ranking models", "graph databases at scale")

	_, err := m.Populate(ctx, corpusDocs)
	require.NoError(t, err)
	first, err := m.Query(ctx, "neural graph")
	require.NoError(t, err)
	firstGen := m.Stats().Generation

	_, err = m.Populate(ctx, corpusDocs)
	require.NoError(t, err)
	second, err := m.Query(ctx, "neural graph")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 3, m.Stats().Documents)
	assert.NotEqual(t, firstGen, m.Stats().Generation)
}

func TestPopulateEvictsMissingDocuments(t *testing.T) {
	ctx := context.Background()
	m := New[int32](corpus.KindDataset)

	_, err := m.Populate(ctx, []corpus.Document[int32]{{ID: 1, Text: "solar wind"}, {ID: 2, Text: "solar panels"}})
	require.NoError(t, err)
	_, err = m.Populate(ctx, []corpus.Document[int32]{{ID: 2, Text: "solar panels"}})
	require.NoError(t, err)

	_, ok := m.Current().Index.Get(1)
	assert.False(t, ok)
	got, err := m.Query(ctx, "solar")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int32(2), got[0].ID)
}

func TestPopulateWaitsForRunningRebuild(t *testing.T) {
	m := New[int32](corpus.KindPaper)
	m.rebuild <- struct{}{}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.Populate(ctx, docs("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, corpus.ErrConcurrency))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	<-m.rebuild
	_, err = m.Populate(context.Background(), docs("x"))
	assert.NoError(t, err)
}

func TestPopulatePanicKeepsPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	m := New[int32](corpus.KindDataset)
	_, err := m.Populate(ctx, docs("stable corpus"))
	require.NoError(t, err)
	before := m.Current()

	m.fit = func([]string) (*bm25.Embedder, []bm25.Embedding) { panic("boom") }
	_, err = m.Populate(ctx, docs("replacement"))
	require.Error(t, err)
	assert.ErrorIs(t, err, corpus.ErrConcurrency)
	assert.Same(t, before, m.Current())

	// The semaphore was released.
	m.fit = func(texts []string) (*bm25.Embedder, []bm25.Embedding) { return bm25.FitEmbed(texts) }
	_, err = m.Populate(ctx, docs("replacement"))
	assert.NoError(t, err)
}

func TestPopulateCancelledBeforeInstall(t *testing.T) {
	m := New[int32](corpus.KindDataset)
	before := m.Current()

	ctx, cancel := context.WithCancel(context.Background())
	m.fit = func(texts []string) (*bm25.Embedder, []bm25.Embedding) {
		cancel()
		return bm25.FitEmbed(texts)
	}
	_, err := m.Populate(ctx, docs("never installed"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Same(t, before, m.Current())
}

func TestConcurrentPopulateAndQuery(t *testing.T) {
	ctx := context.Background()
	a := docs("alpha beta gamma", "alpha alpha delta", "beta epsilon", "alpha zeta eta theta")
	b := docs("alpha", "beta beta beta alpha", "gamma delta alpha", "epsilon")
	const query = "alpha beta"

	expected := func(d []corpus.Document[int32]) []bm25.ScoredDocument[int32] {
		ref := New[int32](corpus.KindPaper)
		_, err := ref.Populate(ctx, d)
		require.NoError(t, err)
		res, err := ref.Query(ctx, query)
		require.NoError(t, err)
		return res
	}
	wantA, wantB := expected(a), expected(b)
	require.NotEqual(t, wantA, wantB)

	m := New[int32](corpus.KindPaper)
	_, err := m.Populate(ctx, a)
	require.NoError(t, err)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			next := a
			if i%2 == 0 {
				next = b
			}
			if _, err := m.Populate(ctx, next); err != nil {
				t.Errorf("populate: %v", err)
			}
		}
		close(stop)
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				got, err := m.Query(ctx, query)
				if err != nil {
					t.Errorf("query: %v", err)
					return
				}
				if !reflect.DeepEqual(got, wantA) && !reflect.DeepEqual(got, wantB) {
					t.Errorf("query observed a mixed snapshot: %v", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestQueryCancelledContext(t *testing.T) {
	m := New[int32](corpus.KindPaper)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Query(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
