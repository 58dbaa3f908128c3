// Package bm25 implements the term-weighting and ranking engine.
//
// An [Analyzer] turns raw text into normalized terms. [Fit] computes corpus
// statistics over a snapshot of documents and freezes them in an [Embedder],
// which converts any text into a sparse [Embedding] of saturated,
// length-normalized term frequencies. An [Index] stores one embedding per
// document identifier and ranks every stored document against a query
// embedding with the Okapi BM25 formula:
//
//	score(q, d) = Σ idf(t) · tf(t,d)·(k1+1) / (tf(t,d) + k1·(1 − b + b·|d|/avgdl))
//
// where idf(t) = ln(1 + (N − df(t) + 0.5) / (df(t) + 0.5)).
//
// Embeddings are only comparable when produced by the same Embedder. An
// Embedder is immutable once fitted and safe for concurrent use; an Index is
// safe for concurrent use through its own lock.
package bm25
