// Package corpus defines the document kinds the ranker indexes, their
// identifier types and the port used to fetch them from the relational store.
package corpus

import (
	"context"
	"fmt"
	"strings"
)

// Kind selects one of the independently rebuildable indexes.
type Kind int

const (
	KindPaper Kind = iota
	KindDataset
)

func (k Kind) String() string {
	switch k {
	case KindPaper:
		return "paper"
	case KindDataset:
		return "dataset"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts "paper"/"papers" and "dataset"/"datasets", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paper", "papers":
		return KindPaper, nil
	case "dataset", "datasets":
		return KindDataset, nil
	}
	return 0, fmt.Errorf("%w: unknown corpus kind %q", ErrInvalidArgument, s)
}

// DatasetID identifies a row of the dataset relation.
type DatasetID = int32

// PaperKey identifies a paper within the dataset it belongs to. PaperID holds
// the raw byte identifier as an immutable string so the key stays comparable.
type PaperKey struct {
	PaperID   string
	DatasetID int32
}

// NewPaperKey copies the raw paper identifier into a key.
func NewPaperKey(paperID []byte, datasetID int32) PaperKey {
	return PaperKey{PaperID: string(paperID), DatasetID: datasetID}
}

// PaperIDBytes returns the raw paper identifier.
func (k PaperKey) PaperIDBytes() []byte {
	return []byte(k.PaperID)
}

// Document is one (identifier, text) row of a corpus.
type Document[K comparable] struct {
	ID   K
	Text string
}

// Texts returns the document texts in corpus order.
func Texts[K comparable](docs []Document[K]) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Text
	}
	return out
}

// Loader fetches the complete current corpus of each kind.
type Loader interface {
	// Datasets returns every dataset with a non-null description.
	Datasets(ctx context.Context) ([]Document[DatasetID], error)
	// Papers returns every paper abstract joined to its owning dataset.
	Papers(ctx context.Context) ([]Document[PaperKey], error)
}
