// Package model pairs a fitted embedder with the index built from it and
// swaps that pair atomically when the corpus is rebuilt.
package model

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/efebarandurmaz/ranker/internal/bm25"
	"github.com/efebarandurmaz/ranker/internal/corpus"
)

// Snapshot is an immutable (Embedder, Index) pair. Every embedding in Index
// was produced by Embedder.
type Snapshot[K comparable] struct {
	Embedder   *bm25.Embedder
	Index      *bm25.Index[K]
	Generation string
	BuiltAt    time.Time
}

// Stats describes the installed snapshot.
type Stats struct {
	Kind         corpus.Kind `json:"kind"`
	Documents    int         `json:"documents"`
	Terms        int         `json:"terms"`
	AvgDocLength float64     `json:"avg_doc_length"`
	Generation   string      `json:"generation"`
	BuiltAt      time.Time   `json:"built_at"`
}

// Manager serves queries from the current snapshot while rebuilds run.
// Rebuilds are serialized; queries never wait for one.
type Manager[K comparable] struct {
	kind corpus.Kind

	mu      sync.RWMutex
	current *Snapshot[K]

	rebuild chan struct{}
	fit     func(texts []string) (*bm25.Embedder, []bm25.Embedding)
	now     func() time.Time
}

// New returns a Manager holding an empty snapshot. opts configure every
// Embedder the Manager fits.
func New[K comparable](kind corpus.Kind, opts ...bm25.Option) *Manager[K] {
	m := &Manager[K]{
		kind:    kind,
		rebuild: make(chan struct{}, 1),
		fit: func(texts []string) (*bm25.Embedder, []bm25.Embedding) {
			return bm25.FitEmbed(texts, opts...)
		},
		now: time.Now,
	}
	m.current = &Snapshot[K]{
		Embedder:   bm25.Fit(nil, opts...),
		Index:      bm25.NewIndex[K](),
		Generation: uuid.NewString(),
		BuiltAt:    m.now(),
	}
	return m
}

// Kind returns the corpus kind this Manager indexes.
func (m *Manager[K]) Kind() corpus.Kind { return m.kind }

// Current returns the installed snapshot.
func (m *Manager[K]) Current() *Snapshot[K] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Query ranks the current snapshot against text. The whole query runs
// against one snapshot even if a rebuild is installed meanwhile.
func (m *Manager[K]) Query(ctx context.Context, text string) ([]bm25.ScoredDocument[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := m.Current()
	return snap.Index.Match(snap.Embedder.Embed(text)), nil
}

// Populate fits a new embedder on docs, indexes every document with it and
// installs the result. Identifiers missing from docs are gone afterwards.
// When an identifier repeats, its last document wins.
//
// Only one rebuild runs at a time; a caller that gives up waiting gets an
// error wrapping corpus.ErrConcurrency. On any failure the previous
// snapshot stays installed.
func (m *Manager[K]) Populate(ctx context.Context, docs []corpus.Document[K]) (Stats, error) {
	select {
	case m.rebuild <- struct{}{}:
	case <-ctx.Done():
		return Stats{}, fmt.Errorf("%w: waiting for %s rebuild: %w", corpus.ErrConcurrency, m.kind, ctx.Err())
	}
	defer func() { <-m.rebuild }()

	snap, err := m.build(docs)
	if err != nil {
		return Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	m.mu.Lock()
	m.current = snap
	m.mu.Unlock()

	return m.stats(snap), nil
}

func (m *Manager[K]) build(docs []corpus.Document[K]) (snap *Snapshot[K], err error) {
	defer func() {
		if r := recover(); r != nil {
			snap = nil
			err = fmt.Errorf("%w: %s rebuild panicked: %v", corpus.ErrConcurrency, m.kind, r)
		}
	}()

	embedder, embeddings := m.fit(corpus.Texts(docs))
	index := bm25.NewIndex[K]()
	for i, d := range docs {
		index.Upsert(d.ID, embeddings[i])
	}
	return &Snapshot[K]{
		Embedder:   embedder,
		Index:      index,
		Generation: uuid.NewString(),
		BuiltAt:    m.now(),
	}, nil
}

// Stats describes the installed snapshot.
func (m *Manager[K]) Stats() Stats {
	return m.stats(m.Current())
}

func (m *Manager[K]) stats(snap *Snapshot[K]) Stats {
	return Stats{
		Kind:         m.kind,
		Documents:    snap.Index.Len(),
		Terms:        snap.Index.Terms(),
		AvgDocLength: snap.Embedder.AvgDocLength(),
		Generation:   snap.Generation,
		BuiltAt:      snap.BuiltAt,
	}
}
