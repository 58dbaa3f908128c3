package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efebarandurmaz/ranker/internal/config"
	"github.com/efebarandurmaz/ranker/internal/corpus"
)

const schema = `
CREATE TABLE dataset (
	dataset_id INTEGER PRIMARY KEY,
	source_description TEXT
);
CREATE TABLE paper (
	paper_id BLOB PRIMARY KEY,
	abstract TEXT
);
CREATE TABLE dataset_paper (
	paper_id BLOB NOT NULL,
	dataset_id INTEGER NOT NULL
);
`

func openTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.db")

	s, err := Open(context.Background(), config.DatabaseConfig{Driver: "sqlite", DSN: path, ConnectAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.db.Exec(schema)
	require.NoError(t, err)
	return s, s.db
}

func TestDatasets(t *testing.T) {
	s, db := openTestStore(t)
	_, err := db.Exec(`INSERT INTO dataset (dataset_id, source_description) VALUES
		(3, 'cats and dogs'),
		(1, 'the cat sat'),
		(2, NULL),
		(4, 'the dog ran fast')`)
	require.NoError(t, err)

	docs, err := s.Datasets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []corpus.Document[corpus.DatasetID]{
		{ID: 1, Text: "the cat sat"},
		{ID: 3, Text: "cats and dogs"},
		{ID: 4, Text: "the dog ran fast"},
	}, docs)
}

func TestDatasetsEmpty(t *testing.T) {
	s, _ := openTestStore(t)

	docs, err := s.Datasets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestPapers(t *testing.T) {
	s, db := openTestStore(t)
	_, err := db.Exec(`INSERT INTO paper (paper_id, abstract) VALUES
		(X'0102', 'graph neural networks'),
		(X'0A', 'dense retrieval'),
		(X'FF', NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO dataset_paper (paper_id, dataset_id) VALUES
		(X'0102', 7),
		(X'0102', 2),
		(X'0A', 2),
		(X'FF', 2)`)
	require.NoError(t, err)

	docs, err := s.Papers(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, corpus.NewPaperKey([]byte{0x01, 0x02}, 2), docs[0].ID)
	assert.Equal(t, corpus.NewPaperKey([]byte{0x0A}, 2), docs[1].ID)
	assert.Equal(t, corpus.NewPaperKey([]byte{0x01, 0x02}, 7), docs[2].ID)
	assert.Equal(t, "graph neural networks", docs[2].Text)
	assert.Equal(t, []byte{0x01, 0x02}, docs[0].ID.PaperIDBytes())
}

func TestQueryFailureIsStorageError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	s, err := Open(context.Background(), config.DatabaseConfig{Driver: "sqlite", DSN: path})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Datasets(context.Background())
	assert.ErrorIs(t, err, corpus.ErrStorage)
	_, err = s.Papers(context.Background())
	assert.ErrorIs(t, err, corpus.ErrStorage)
}

func TestPingClosed(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, s.Ping(context.Background()))

	s.Close()
	assert.ErrorIs(t, s.Ping(context.Background()), corpus.ErrStorage)
}

func TestOpenRejectsBadConfig(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "sqlite"})
	assert.ErrorIs(t, err, corpus.ErrStorage)

	_, err = Open(context.Background(), config.DatabaseConfig{Driver: "nosuchdriver", DSN: "x"})
	assert.ErrorIs(t, err, corpus.ErrStorage)
}
