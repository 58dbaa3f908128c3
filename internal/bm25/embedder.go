package bm25

import "math"

// Default BM25 free parameters.
const (
	DefaultK1 = 1.2
	DefaultB  = 0.75
)

// Embedding is a sparse term-to-weight vector. Only terms seen when the
// producing Embedder was fitted carry weight.
type Embedding map[string]float64

// Clone returns an independent copy of e.
func (e Embedding) Clone() Embedding {
	out := make(Embedding, len(e))
	for t, w := range e {
		out[t] = w
	}
	return out
}

// Option configures Fit.
type Option func(*embedderConfig)

type embedderConfig struct {
	analyzer AnalyzerOptions
	k1       float64
	b        float64
}

// WithAnalyzer sets the tokenization policy.
func WithAnalyzer(opts AnalyzerOptions) Option {
	return func(c *embedderConfig) { c.analyzer = opts }
}

// WithK1 sets the term-frequency saturation parameter. Negative values are ignored.
func WithK1(k1 float64) Option {
	return func(c *embedderConfig) {
		if k1 >= 0 {
			c.k1 = k1
		}
	}
}

// WithB sets the length-normalization strength, clamped to [0, 1].
func WithB(b float64) Option {
	return func(c *embedderConfig) {
		c.b = math.Min(1, math.Max(0, b))
	}
}

// Embedder maps text to embeddings using statistics frozen at fit time.
type Embedder struct {
	analyzer *Analyzer
	stats    Stats
	k1       float64
	b        float64
}

// Fit computes corpus statistics over texts and returns the Embedder bound
// to them. An empty corpus is valid; its Embedder produces empty embeddings.
func Fit(texts []string, opts ...Option) *Embedder {
	e, _ := fit(texts, false, opts)
	return e
}

// FitEmbed is Fit followed by embedding every text of the corpus, without
// tokenizing the corpus twice. The i-th embedding belongs to texts[i].
func FitEmbed(texts []string, opts ...Option) (*Embedder, []Embedding) {
	return fit(texts, true, opts)
}

func fit(texts []string, embed bool, opts []Option) (*Embedder, []Embedding) {
	cfg := embedderConfig{analyzer: DefaultAnalyzerOptions(), k1: DefaultK1, b: DefaultB}
	for _, opt := range opts {
		opt(&cfg)
	}

	a := NewAnalyzer(cfg.analyzer)
	terms := make([][]string, len(texts))
	for i, text := range texts {
		terms[i] = a.Tokens(text)
	}
	e := &Embedder{analyzer: a, stats: ComputeStats(terms), k1: cfg.k1, b: cfg.b}
	if !embed {
		return e, nil
	}
	out := make([]Embedding, len(terms))
	for i, t := range terms {
		out[i] = e.weigh(t)
	}
	return e, out
}

// Embed converts text into an Embedding comparable with every other
// embedding produced by e.
func (e *Embedder) Embed(text string) Embedding {
	if e.stats.Documents == 0 || e.stats.AvgDocLength == 0 {
		return Embedding{}
	}
	return e.weigh(e.analyzer.Tokens(text))
}

func (e *Embedder) weigh(terms []string) Embedding {
	out := Embedding{}
	if len(terms) == 0 || e.stats.Documents == 0 || e.stats.AvgDocLength == 0 {
		return out
	}
	tf := make(map[string]int, len(terms))
	for _, t := range terms {
		if e.stats.DocFreq[t] == 0 {
			continue
		}
		tf[t]++
	}
	norm := e.k1 * (1 - e.b + e.b*float64(len(terms))/e.stats.AvgDocLength)
	for t, n := range tf {
		f := float64(n)
		out[t] = f * (e.k1 + 1) / (f + norm)
	}
	return out
}

// IDF returns the inverse document frequency of term in the fitted corpus,
// or zero if the term was never seen.
func (e *Embedder) IDF(term string) float64 {
	return idf(e.stats.Documents, e.stats.DocFreq[term])
}

// Stats returns a copy of the fitted statistics.
func (e *Embedder) Stats() Stats { return e.stats.clone() }

// AvgDocLength returns the mean document length of the fitted corpus.
func (e *Embedder) AvgDocLength() float64 { return e.stats.AvgDocLength }

// Analyzer returns the tokenization pipeline the Embedder was fitted with.
func (e *Embedder) Analyzer() *Analyzer { return e.analyzer }

func idf(n, df int) float64 {
	if n == 0 || df == 0 {
		return 0
	}
	return math.Log(1 + (float64(n)-float64(df)+0.5)/(float64(df)+0.5))
}
