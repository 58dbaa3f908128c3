// Package store reads the paper and dataset corpora from the relational
// database. It is read-only.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/cenkalti/backoff/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"github.com/efebarandurmaz/ranker/internal/config"
	"github.com/efebarandurmaz/ranker/internal/corpus"
)

const (
	datasetQuery = `SELECT dataset_id, source_description FROM dataset
		WHERE source_description IS NOT NULL
		ORDER BY dataset_id`

	paperQuery = `SELECT dp.paper_id, dp.dataset_id, p.abstract
		FROM dataset_paper dp JOIN paper p ON dp.paper_id = p.paper_id
		WHERE p.abstract IS NOT NULL
		ORDER BY dp.dataset_id, dp.paper_id`
)

// Store is a corpus.Loader backed by database/sql.
type Store struct {
	db *sql.DB
}

var _ corpus.Loader = (*Store)(nil)

// Open connects to the database described by cfg and waits until it
// answers a ping, retrying with exponential backoff.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	driver := cfg.Driver
	if driver == "" || driver == "postgres" {
		driver = "pgx"
	}
	dsn, err := cfg.ConnString()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", corpus.ErrStorage, err)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: connect to database: %w", corpus.ErrStorage, err)
	}

	attempts := cfg.ConnectAttempts
	if attempts == 0 {
		attempts = 1
	}
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		if err := db.PingContext(ctx); err != nil {
			slog.Warn("database not reachable", "driver", driver, "error", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(attempts))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %w", corpus.ErrStorage, err)
	}

	return &Store{db: db}, nil
}

// New wraps an existing connection pool.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping database: %w", corpus.ErrStorage, err)
	}
	return nil
}

// Datasets returns every dataset with a description, ordered by id.
func (s *Store) Datasets(ctx context.Context) ([]corpus.Document[corpus.DatasetID], error) {
	rows, err := s.db.QueryContext(ctx, datasetQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: query datasets: %w", corpus.ErrStorage, err)
	}
	defer rows.Close()

	var docs []corpus.Document[corpus.DatasetID]
	for rows.Next() {
		var d corpus.Document[corpus.DatasetID]
		if err := rows.Scan(&d.ID, &d.Text); err != nil {
			return nil, fmt.Errorf("%w: scan dataset: %w", corpus.ErrStorage, err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate datasets: %w", corpus.ErrStorage, err)
	}
	return docs, nil
}

// Papers returns every (paper, dataset) link whose paper has an abstract,
// ordered by dataset id then paper id.
func (s *Store) Papers(ctx context.Context) ([]corpus.Document[corpus.PaperKey], error) {
	rows, err := s.db.QueryContext(ctx, paperQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: query papers: %w", corpus.ErrStorage, err)
	}
	defer rows.Close()

	var docs []corpus.Document[corpus.PaperKey]
	for rows.Next() {
		var (
			paperID   []byte
			datasetID int32
			abstract  string
		)
		if err := rows.Scan(&paperID, &datasetID, &abstract); err != nil {
			return nil, fmt.Errorf("%w: scan paper: %w", corpus.ErrStorage, err)
		}
		docs = append(docs, corpus.Document[corpus.PaperKey]{
			ID:   corpus.NewPaperKey(paperID, datasetID),
			Text: abstract,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate papers: %w", corpus.ErrStorage, err)
	}
	return docs, nil
}
