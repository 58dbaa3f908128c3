package bm25

import (
	"cmp"
	"slices"
	"sort"
	"sync"
)

// ScoredDocument is one ranked match.
type ScoredDocument[K comparable] struct {
	ID    K
	Score float32
}

type indexEntry struct {
	seq       uint64
	embedding Embedding
}

// Index stores one embedding per document identifier, with inverted
// postings per term. The zero value is not usable; call NewIndex.
type Index[K comparable] struct {
	mu       sync.RWMutex
	docs     map[K]*indexEntry
	postings map[string]map[K]float64
	seq      uint64
}

// NewIndex returns an empty Index.
func NewIndex[K comparable]() *Index[K] {
	return &Index[K]{
		docs:     make(map[K]*indexEntry),
		postings: make(map[string]map[K]float64),
	}
}

// Upsert stores e under id, replacing any previous embedding for id. The
// index takes ownership of e. A replaced document keeps its original
// insertion position for tie-breaking.
func (ix *Index[K]) Upsert(id K, e Embedding) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if cur, ok := ix.docs[id]; ok {
		ix.unpost(id, cur.embedding)
		cur.embedding = e
	} else {
		ix.seq++
		ix.docs[id] = &indexEntry{seq: ix.seq, embedding: e}
	}
	for t, w := range e {
		if w == 0 {
			continue
		}
		p := ix.postings[t]
		if p == nil {
			p = make(map[K]float64)
			ix.postings[t] = p
		}
		p[id] = w
	}
}

// Remove deletes id and reports whether it was present.
func (ix *Index[K]) Remove(id K) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	cur, ok := ix.docs[id]
	if !ok {
		return false
	}
	ix.unpost(id, cur.embedding)
	delete(ix.docs, id)
	return true
}

func (ix *Index[K]) unpost(id K, e Embedding) {
	for t := range e {
		p, ok := ix.postings[t]
		if !ok {
			continue
		}
		delete(p, id)
		if len(p) == 0 {
			delete(ix.postings, t)
		}
	}
}

// Len returns the number of stored documents.
func (ix *Index[K]) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Terms returns the number of distinct terms with at least one posting.
func (ix *Index[K]) Terms() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.postings)
}

// Get returns a copy of the embedding stored for id.
func (ix *Index[K]) Get(id K) (Embedding, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	cur, ok := ix.docs[id]
	if !ok {
		return nil, false
	}
	return cur.embedding.Clone(), true
}

// Match ranks every stored document against q. Only documents with a
// nonzero score are returned, ordered by descending score and then by
// insertion order. Callers truncate.
func (ix *Index[K]) Match(q Embedding) []ScoredDocument[K] {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	n := len(ix.docs)
	if n == 0 || len(q) == 0 {
		return []ScoredDocument[K]{}
	}

	// Fixed term order keeps floating-point accumulation reproducible.
	terms := make([]string, 0, len(q))
	for t, w := range q {
		if w != 0 {
			terms = append(terms, t)
		}
	}
	sort.Strings(terms)

	acc := make(map[K]float64)
	for _, t := range terms {
		p := ix.postings[t]
		if len(p) == 0 {
			continue
		}
		w := idf(n, len(p))
		for id, dw := range p {
			acc[id] += w * dw
		}
	}

	type ranked struct {
		doc ScoredDocument[K]
		seq uint64
	}
	hits := make([]ranked, 0, len(acc))
	for id, s := range acc {
		score := float32(s)
		if score == 0 {
			continue
		}
		hits = append(hits, ranked{doc: ScoredDocument[K]{ID: id, Score: score}, seq: ix.docs[id].seq})
	}
	slices.SortFunc(hits, func(a, b ranked) int {
		if c := cmp.Compare(b.doc.Score, a.doc.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	out := make([]ScoredDocument[K], len(hits))
	for i, h := range hits {
		out[i] = h.doc
	}
	return out
}
