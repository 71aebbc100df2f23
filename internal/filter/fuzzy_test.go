package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{a: "chanel", b: "chanel", want: 1},
		{a: "", b: "", want: 1},
		{a: "", b: "dior", want: 0},
		{a: "blue", b: "bleu", want: 0.5},
		{a: "sauvage", b: "savage", want: 1 - 1.0/7},
		{a: "nữ", b: "nu", want: 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilaritySymmetricAndReflexive(t *testing.T) {
	words := []string{"chanel", "bleu", "blue", "gucci", "guilty", "hương", "huong", "x"}
	for _, a := range words {
		assert.Equal(t, 1.0, Similarity(a, a))
		for _, b := range words {
			assert.Equal(t, Similarity(a, b), Similarity(b, a), "%s vs %s", a, b)
		}
	}
}

func TestMatchesName(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		search    string
		want      bool
	}{
		{name: "direct containment", candidate: "Bleu de Chanel EDP", search: "bleu de", want: true},
		{name: "half of two words", candidate: "Chanel Bleu de Chanel", search: "chanel blue", want: true},
		{name: "typo within threshold", candidate: "Dior Sauvage", search: "savage", want: true},
		{name: "one of three words", candidate: "Dior Sauvage", search: "dior aqua gio", want: false},
		{name: "two of three words", candidate: "Acqua di Gio", search: "aqua di gioo", want: true},
		{name: "no overlap", candidate: "Gucci Bloom", search: "versace eros", want: false},
		{name: "containment ignores length gap", candidate: "Eros", search: "erosion", want: true},
		{name: "blank search", candidate: "Anything", search: "  ", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesName(tt.candidate, tt.search))
		})
	}
}

func TestWordsMatchRespectsLengthGap(t *testing.T) {
	assert.False(t, wordsMatch("abcdefgh", "abcdxy"))
	assert.True(t, wordsMatch("bloom", "blom"))
}
