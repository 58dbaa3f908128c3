package bm25

// Stats are the corpus-wide statistics an Embedder is fitted on.
type Stats struct {
	// Documents is the number of documents in the corpus.
	Documents int
	// AvgDocLength is the mean number of terms per document.
	AvgDocLength float64
	// DocFreq counts, per term, the documents containing it at least once.
	DocFreq map[string]int
}

// ComputeStats derives Stats from already tokenized documents. An empty
// corpus yields zero documents and a zero average length.
func ComputeStats(docs [][]string) Stats {
	s := Stats{Documents: len(docs), DocFreq: make(map[string]int)}
	if len(docs) == 0 {
		return s
	}
	total := 0
	for _, terms := range docs {
		total += len(terms)
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			s.DocFreq[t]++
		}
	}
	s.AvgDocLength = float64(total) / float64(len(docs))
	return s
}

// Terms returns the vocabulary size.
func (s Stats) Terms() int { return len(s.DocFreq) }

func (s Stats) clone() Stats {
	df := make(map[string]int, len(s.DocFreq))
	for t, n := range s.DocFreq {
		df[t] = n
	}
	s.DocFreq = df
	return s
}
