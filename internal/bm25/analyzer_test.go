package bm25

import (
	"reflect"
	"testing"
)

func TestAnalyzerTokens(t *testing.T) {
	tests := []struct {
		name string
		opts AnalyzerOptions
		text string
		want []string
	}{
		{
			name: "raw keeps stopwords",
			opts: AnalyzerOptions{Language: LanguageNone},
			text: "The Cat sat",
			want: []string{"the", "cat", "sat"},
		},
		{
			name: "english removes stopwords",
			opts: AnalyzerOptions{Language: LanguageEnglish, Stopwords: true},
			text: "the dog ran fast",
			want: []string{"dog", "ran", "fast"},
		},
		{
			name: "english stems",
			opts: DefaultAnalyzerOptions(),
			text: "Cats and dogs running",
			want: []string{"cat", "dog", "run"},
		},
		{
			name: "stemming ignored without language",
			opts: AnalyzerOptions{Language: LanguageNone, Stem: true},
			text: "dogs",
			want: []string{"dogs"},
		},
		{
			name: "punctuation splits",
			opts: AnalyzerOptions{Language: LanguageNone},
			text: "graph-based, (deep) learning!",
			want: []string{"graph", "based", "deep", "learning"},
		},
		{
			name: "compatibility forms fold",
			opts: AnalyzerOptions{Language: LanguageNone},
			text: "ＤＡＴＡ Straße",
			want: []string{"data", "strasse"},
		},
		{
			name: "digits kept",
			opts: AnalyzerOptions{Language: LanguageNone},
			text: "COVID-19 in 2020",
			want: []string{"covid", "19", "in", "2020"},
		},
		{
			name: "empty",
			opts: DefaultAnalyzerOptions(),
			text: "",
			want: nil,
		},
		{
			name: "only stopwords",
			opts: DefaultAnalyzerOptions(),
			text: "the and of",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAnalyzer(tt.opts).Tokens(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnalyzerDeterministic(t *testing.T) {
	a := NewAnalyzer(DefaultAnalyzerOptions())
	text := "Benchmarking retrieval models on heterogeneous datasets"
	first := a.Tokens(text)
	for i := 0; i < 10; i++ {
		if got := a.Tokens(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: got %q, want %q", i, got, first)
		}
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"english", LanguageEnglish, false},
		{"EN", LanguageEnglish, false},
		{"", LanguageEnglish, false},
		{"none", LanguageNone, false},
		{"klingon", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLanguage(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLanguage(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
