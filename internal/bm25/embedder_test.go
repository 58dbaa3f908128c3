package bm25

import (
	"math"
	"testing"
)

var raw = WithAnalyzer(AnalyzerOptions{Language: LanguageNone})

func TestEmbedderWeights(t *testing.T) {
	e := Fit([]string{"a b", "a a c d"}, raw)

	got := e.Embed("a a b")
	// avgdl = 3, |q| = 3, so the length term is 1.
	wantA := 2 * (DefaultK1 + 1) / (2 + DefaultK1)
	wantB := 1 * (DefaultK1 + 1) / (1 + DefaultK1)
	if math.Abs(got["a"]-wantA) > 1e-12 {
		t.Errorf("weight(a) = %v, want %v", got["a"], wantA)
	}
	if math.Abs(got["b"]-wantB) > 1e-12 {
		t.Errorf("weight(b) = %v, want %v", got["b"], wantB)
	}
}

func TestEmbedderDropsUnseenTerms(t *testing.T) {
	e := Fit([]string{"alpha beta"}, raw)
	got := e.Embed("alpha gamma")
	if _, ok := got["gamma"]; ok {
		t.Error("unseen term carried weight")
	}
	if got["alpha"] <= 0 {
		t.Errorf("weight(alpha) = %v, want > 0", got["alpha"])
	}
}

func TestEmbedderEmptyCorpus(t *testing.T) {
	e := Fit(nil)
	if got := e.Embed("anything at all"); len(got) != 0 {
		t.Errorf("Embed on empty corpus = %v, want empty", got)
	}
	if got := e.IDF("anything"); got != 0 {
		t.Errorf("IDF on empty corpus = %v, want 0", got)
	}
}

func TestEmbedderIDF(t *testing.T) {
	e := Fit([]string{"x y", "x", "z"}, raw)
	want := math.Log(1 + (3-2+0.5)/(2+0.5))
	if got := e.IDF("x"); math.Abs(got-want) > 1e-12 {
		t.Errorf("IDF(x) = %v, want %v", got, want)
	}
	if e.IDF("y") <= e.IDF("x") {
		t.Error("rarer term should have higher IDF")
	}
	if got := e.IDF("missing"); got != 0 {
		t.Errorf("IDF(missing) = %v, want 0", got)
	}
}

func TestEmbedderStatsIsCopy(t *testing.T) {
	e := Fit([]string{"x"}, raw)
	s := e.Stats()
	s.DocFreq["x"] = 99
	if e.Stats().DocFreq["x"] != 1 {
		t.Error("Stats() exposed internal state")
	}
}

func TestFitEmbedMatchesEmbed(t *testing.T) {
	texts := []string{"graph neural networks", "neural machine translation", "graph databases"}
	e, embs := FitEmbed(texts)
	if len(embs) != len(texts) {
		t.Fatalf("got %d embeddings, want %d", len(embs), len(texts))
	}
	for i, text := range texts {
		want := e.Embed(text)
		if len(want) != len(embs[i]) {
			t.Fatalf("doc %d: got %v, want %v", i, embs[i], want)
		}
		for term, w := range want {
			if embs[i][term] != w {
				t.Errorf("doc %d term %q: got %v, want %v", i, term, embs[i][term], w)
			}
		}
	}
}

func TestParameterOptions(t *testing.T) {
	e := Fit([]string{"a", "a a a a"}, raw, WithK1(0))
	// k1 = 0 disables saturation: every present term weighs 1.
	if got := e.Embed("a a a"); got["a"] != 1 {
		t.Errorf("weight with k1=0 = %v, want 1", got["a"])
	}

	short := Fit([]string{"a", "a b c d e f g"}, raw, WithB(0)).Embed("a")
	long := Fit([]string{"a", "a b c d e f g"}, raw, WithB(0)).Embed("a b c d e f g h i j")
	if short["a"] != long["a"] {
		t.Errorf("b=0 should ignore length: %v vs %v", short["a"], long["a"])
	}
}
