package bm25

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/english"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Language selects the stopword list and stemmer of an Analyzer.
type Language int

const (
	// LanguageNone splits and folds text but removes nothing and stems nothing.
	LanguageNone Language = iota
	LanguageEnglish
)

func (l Language) String() string {
	switch l {
	case LanguageNone:
		return "none"
	case LanguageEnglish:
		return "english"
	default:
		return fmt.Sprintf("language(%d)", int(l))
	}
}

// ParseLanguage maps a configuration value to a Language.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "english", "en":
		return LanguageEnglish, nil
	case "none", "raw":
		return LanguageNone, nil
	}
	return 0, fmt.Errorf("unsupported language %q", s)
}

// AnalyzerOptions fix the tokenization policy of one Embedder.
type AnalyzerOptions struct {
	Language  Language
	Stem      bool
	Stopwords bool
}

// DefaultAnalyzerOptions returns English with stemming and stopword removal.
func DefaultAnalyzerOptions() AnalyzerOptions {
	return AnalyzerOptions{Language: LanguageEnglish, Stem: true, Stopwords: true}
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`)

// Analyzer is a deterministic text-to-terms pipeline: NFKC normalization,
// case folding, word extraction, stopword removal and stemming.
type Analyzer struct {
	opts      AnalyzerOptions
	stopwords map[string]struct{}
}

// NewAnalyzer builds an Analyzer. Stopword removal and stemming only apply
// when a Language other than LanguageNone is selected.
func NewAnalyzer(opts AnalyzerOptions) *Analyzer {
	a := &Analyzer{opts: opts}
	if opts.Stopwords && opts.Language == LanguageEnglish {
		a.stopwords = englishStopwords
	}
	return a
}

// Options returns the policy the Analyzer was built with.
func (a *Analyzer) Options() AnalyzerOptions { return a.opts }

// Tokens returns the terms of text in order of appearance.
func (a *Analyzer) Tokens(text string) []string {
	if text == "" {
		return nil
	}
	// Caser carries state and must not be shared between goroutines.
	folded := cases.Fold().String(norm.NFKC.String(text))
	words := wordPattern.FindAllString(folded, -1)
	if len(words) == 0 {
		return nil
	}
	out := words[:0]
	for _, w := range words {
		w = strings.ReplaceAll(w, "’", "'")
		if _, stop := a.stopwords[w]; stop {
			continue
		}
		if a.opts.Stem && a.opts.Language == LanguageEnglish {
			w = stemEnglish(w)
		}
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}

func stemEnglish(word string) string {
	env := snowballstem.NewEnv(word)
	english.Stem(env)
	return env.Current()
}

var englishStopwords = func() map[string]struct{} {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "am", "an", "and", "any", "are",
		"as", "at", "be", "because", "been", "before", "being", "below", "between", "both", "but",
		"by", "can", "did", "do", "does", "doing", "don", "down", "during", "each", "few", "for",
		"from", "further", "had", "has", "have", "having", "he", "her", "here", "hers", "herself",
		"him", "himself", "his", "how", "i", "if", "in", "into", "is", "it", "its", "itself", "just",
		"me", "more", "most", "my", "myself", "no", "nor", "not", "now", "of", "off", "on", "once",
		"only", "or", "other", "our", "ours", "ourselves", "out", "over", "own", "s", "same", "she",
		"should", "so", "some", "such", "t", "than", "that", "the", "their", "theirs", "them",
		"themselves", "then", "there", "these", "they", "this", "those", "through", "to", "too",
		"under", "until", "up", "very", "was", "we", "were", "what", "when", "where", "which",
		"while", "who", "whom", "why", "will", "with", "you", "your", "yours", "yourself",
		"yourselves",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
