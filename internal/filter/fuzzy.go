package filter

import (
	"strings"
	"unicode/utf8"
)

const (
	wordSimilarityThreshold = 0.6
	wordMaxLengthGap        = 2
)

// Similarity returns 1 - editDistance/max(len(a), len(b)) over runes.
// Equal strings score 1 and an empty side scores 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	return 1 - float64(levenshtein([]rune(a), []rune(b)))/float64(longest)
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// matchesName reports whether candidate satisfies the search term, either by
// containment or because at least half of the search words match a word of
// the candidate.
func matchesName(candidate, search string) bool {
	candidate = strings.ToLower(candidate)
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	if strings.Contains(candidate, search) {
		return true
	}
	searchWords := strings.Fields(search)
	candidateWords := strings.Fields(candidate)
	matched := 0
	for _, sw := range searchWords {
		for _, cw := range candidateWords {
			if wordsMatch(sw, cw) {
				matched++
				break
			}
		}
	}
	return matched*2 >= len(searchWords)
}

func wordsMatch(a, b string) bool {
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	gap := utf8.RuneCountInString(a) - utf8.RuneCountInString(b)
	if gap < 0 {
		gap = -gap
	}
	return gap <= wordMaxLengthGap && Similarity(a, b) >= wordSimilarityThreshold
}
