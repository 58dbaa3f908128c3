// Package ranking is the scoring service: it validates requests, queries
// the per-kind models and orchestrates index rebuilds from the store.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/efebarandurmaz/ranker/internal/bm25"
	"github.com/efebarandurmaz/ranker/internal/config"
	"github.com/efebarandurmaz/ranker/internal/corpus"
	"github.com/efebarandurmaz/ranker/internal/model"
	"github.com/efebarandurmaz/ranker/internal/observability"
)

// MaxResults is the hard ceiling on results per score request.
const MaxResults uint32 = 100_000

// Config wires a Service. Zero values select defaults.
type Config struct {
	// MaxResults lowers the result ceiling; it never raises it above MaxResults.
	MaxResults uint32
	// PopulateInterval is the minimum spacing between rebuilds of one kind.
	PopulateInterval time.Duration
	// Index configures every embedder the service fits.
	Index []bm25.Option

	Metrics *observability.RankerMetrics
	Audit   *observability.AuditLogger
	Logger  *slog.Logger
}

// Service owns the paper and dataset models.
type Service struct {
	Papers   *model.Manager[corpus.PaperKey]
	Datasets *model.Manager[corpus.DatasetID]

	loader     corpus.Loader
	maxResults uint32
	limiters   map[corpus.Kind]*rate.Limiter
	metrics    *observability.RankerMetrics
	audit      *observability.AuditLogger
	logger     *slog.Logger
}

// New builds a Service with empty indexes.
func New(loader corpus.Loader, cfg Config) *Service {
	s := &Service{
		Papers:     model.New[corpus.PaperKey](corpus.KindPaper, cfg.Index...),
		Datasets:   model.New[corpus.DatasetID](corpus.KindDataset, cfg.Index...),
		loader:     loader,
		maxResults: MaxResults,
		limiters:   make(map[corpus.Kind]*rate.Limiter),
		metrics:    cfg.Metrics,
		audit:      cfg.Audit,
		logger:     cfg.Logger,
	}
	if cfg.MaxResults > 0 && cfg.MaxResults < MaxResults {
		s.maxResults = cfg.MaxResults
	}
	if s.metrics == nil {
		s.metrics = observability.NewRankerMetrics()
	}
	if s.audit == nil {
		s.audit = observability.DisabledAuditLogger()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	for _, k := range []corpus.Kind{corpus.KindPaper, corpus.KindDataset} {
		limit := rate.Inf
		if cfg.PopulateInterval > 0 {
			limit = rate.Every(cfg.PopulateInterval)
		}
		s.limiters[k] = rate.NewLimiter(limit, 1)
	}
	return s
}

// IndexOptions translates index configuration into embedder options.
func IndexOptions(cfg config.IndexConfig) ([]bm25.Option, error) {
	lang, err := bm25.ParseLanguage(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	return []bm25.Option{
		bm25.WithAnalyzer(bm25.AnalyzerOptions{Language: lang, Stem: cfg.Stem, Stopwords: cfg.Stopwords}),
		bm25.WithK1(cfg.K1),
		bm25.WithB(cfg.B),
	}, nil
}

// Metrics returns the metrics the service records into.
func (s *Service) Metrics() *observability.RankerMetrics { return s.metrics }

// MaxResults returns the effective result ceiling.
func (s *Service) MaxResults() uint32 { return s.maxResults }

// ScoreDatasets ranks datasets against query and keeps the best numResults.
func (s *Service) ScoreDatasets(ctx context.Context, query string, numResults uint32) ([]bm25.ScoredDocument[corpus.DatasetID], error) {
	return score(ctx, s, s.Datasets, query, numResults)
}

// ScorePapers ranks papers against query and keeps the best numResults.
func (s *Service) ScorePapers(ctx context.Context, query string, numResults uint32) ([]bm25.ScoredDocument[corpus.PaperKey], error) {
	return score(ctx, s, s.Papers, query, numResults)
}

func (s *Service) validate(numResults uint32) error {
	if numResults > s.maxResults {
		return fmt.Errorf("%w: num_results %d exceeds the maximum of %d", corpus.ErrInvalidArgument, numResults, s.maxResults)
	}
	return nil
}

func score[K comparable](ctx context.Context, s *Service, m *model.Manager[K], query string, numResults uint32) ([]bm25.ScoredDocument[K], error) {
	kind := m.Kind().String()
	start := time.Now()
	ctx, span := observability.StartScoreSpan(ctx, kind, numResults)
	defer span.End()

	if err := s.validate(numResults); err != nil {
		observability.RecordError(span, err)
		s.metrics.RecordScore(kind, time.Since(start), err)
		s.audit.LogScoreRejected(ctx, kind, numResults, err)
		return nil, err
	}

	results, err := m.Query(ctx, query)
	if err != nil {
		observability.RecordError(span, err)
		s.metrics.RecordScore(kind, time.Since(start), err)
		return nil, err
	}

	matched := len(results)
	if uint32(matched) > numResults {
		results = results[:numResults]
	}
	observability.RecordScoreResult(span, matched, len(results))
	s.metrics.RecordScore(kind, time.Since(start), nil)
	s.logger.Debug("Scored query", "kind", kind, "matched", matched, "returned", len(results), "duration", time.Since(start))
	return results, nil
}

// Populate rebuilds the index of kind from the store and installs it.
func (s *Service) Populate(ctx context.Context, kind corpus.Kind) (model.Stats, error) {
	switch kind {
	case corpus.KindPaper:
		return populate(ctx, s, s.Papers, s.loader.Papers)
	case corpus.KindDataset:
		return populate(ctx, s, s.Datasets, s.loader.Datasets)
	default:
		return model.Stats{}, fmt.Errorf("%w: unknown corpus kind %d", corpus.ErrInvalidArgument, int(kind))
	}
}

func populate[K comparable](ctx context.Context, s *Service, m *model.Manager[K], load func(context.Context) ([]corpus.Document[K], error)) (model.Stats, error) {
	kind := m.Kind().String()
	start := time.Now()
	ctx, span := observability.StartPopulateSpan(ctx, kind)
	defer span.End()

	s.audit.LogPopulateStart(ctx, kind)
	s.logger.Info("Populate started", "kind", kind)

	stats, err := rebuild(ctx, s, m, load)
	duration := time.Since(start)
	if err != nil {
		observability.RecordError(span, err)
		s.metrics.RecordPopulate(kind, duration, 0, err)
		s.audit.LogPopulateError(ctx, kind, duration, err)
		s.logger.Error("Populate failed", "kind", kind, "duration", duration, "error", err)
		return model.Stats{}, err
	}

	observability.RecordPopulateResult(span, stats.Documents, stats.Terms, stats.Generation)
	s.metrics.RecordPopulate(kind, duration, stats.Documents, nil)
	s.audit.LogPopulateComplete(ctx, kind, stats.Generation, stats.Documents, stats.Terms, duration)
	s.logger.Info("Populate complete",
		"kind", kind,
		"generation", stats.Generation,
		"documents", stats.Documents,
		"terms", stats.Terms,
		"duration", duration,
	)
	return stats, nil
}

func rebuild[K comparable](ctx context.Context, s *Service, m *model.Manager[K], load func(context.Context) ([]corpus.Document[K], error)) (model.Stats, error) {
	if err := s.limiters[m.Kind()].Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.Stats{}, ctxErr
		}
		return model.Stats{}, fmt.Errorf("%w: populate %s throttled: %w", corpus.ErrConcurrency, m.Kind(), err)
	}

	loadCtx, span := observability.StartLoadSpan(ctx, m.Kind().String())
	docs, err := load(loadCtx)
	if err != nil {
		observability.RecordError(span, err)
		span.End()
		if !errors.Is(err, corpus.ErrStorage) {
			err = fmt.Errorf("%w: %w", corpus.ErrStorage, err)
		}
		return model.Stats{}, fmt.Errorf("load %s corpus: %w", m.Kind(), err)
	}
	span.End()
	s.logger.Debug("Loaded corpus", "kind", m.Kind().String(), "documents", len(docs))

	return m.Populate(ctx, docs)
}

// PopulateAll rebuilds both indexes concurrently. A failure of one kind does
// not stop the other; all failures are returned joined.
func (s *Service) PopulateAll(ctx context.Context) error {
	var (
		g    errgroup.Group
		errs [2]error
	)
	for i, kind := range []corpus.Kind{corpus.KindPaper, corpus.KindDataset} {
		g.Go(func() error {
			_, errs[i] = s.Populate(ctx, kind)
			return nil
		})
	}
	g.Wait()
	return errors.Join(errs[:]...)
}

// Status reports the installed index of each kind.
func (s *Service) Status() []model.Stats {
	return []model.Stats{s.Papers.Stats(), s.Datasets.Stats()}
}
