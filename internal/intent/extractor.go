package intent

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/odyssey-erp/odyssey-advisor/internal/catalog"
)

// Extract parses query into a Record. It never fails; fields that cannot be
// read are left unset.
func Extract(query string) Record {
	text := normalize(query)
	rec := Record{
		IsPriceQuery:     rePriceQuery.MatchString(text),
		IsRecommendation: reRecommendation.MatchString(text),
		IsBestSelling:    reBestSelling.MatchString(text),
		IsHotTrend:       reHotTrend.MatchString(text),
		IsNewProducts:    reNewProducts.MatchString(text),
		IsTopRated:       reTopRated.MatchString(text),
		IsCheapQuery:     reCheapQuery.MatchString(text),
		IsExpensiveQuery: reExpensiveQuery.MatchString(text),
		IsComparison:     reComparison.MatchString(text),
		IsAvailability:   reAvailability.MatchString(text),
	}
	rec.Gender = extractGender(text)
	rec.MinPrice, rec.MaxPrice = extractPriceBounds(text)
	rec.Brand = extractBrand(text)
	rec.Volume = extractVolume(text)
	rec.ProductName = extractProductName(text)
	return rec
}

// normalize composes decomposed diacritics and lower-cases with Vietnamese rules.
func normalize(query string) string {
	composed := norm.NFC.String(query)
	return cases.Lower(language.Vietnamese).String(composed)
}

func extractGender(text string) *catalog.Gender {
	for _, rule := range genderRules {
		for _, needle := range rule.needles {
			if strings.Contains(text, needle) {
				g := catalog.Gender(rule.gender)
				return &g
			}
		}
	}
	return nil
}

// extractPriceBounds reads "dưới"/"trên" bounds. The value is every digit in
// the whole query concatenated, so "dưới 500k chai 100ml" yields 500100.
func extractPriceBounds(text string) (minPrice, maxPrice *float64) {
	digits := allDigits(text)
	if digits == "" {
		return nil, nil
	}
	hasMax := strings.Contains(text, keywordMaxPrice)
	hasMin := strings.Contains(text, keywordMinPrice)
	if !hasMax && !hasMin {
		return nil, nil
	}
	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, nil
	}
	if hasMax {
		v := float64(value)
		maxPrice = &v
	}
	if hasMin {
		v := float64(value)
		minPrice = &v
	}
	return minPrice, maxPrice
}

func allDigits(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func extractBrand(text string) *string {
	for _, brand := range brands {
		if strings.Contains(text, brand.needle) {
			name := brand.name
			return &name
		}
	}
	return nil
}

func extractVolume(text string) *catalog.Volume {
	m := reVolume.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, ok := catalog.ParseVolume(m[1] + "ML")
	if !ok {
		return nil
	}
	return &v
}

func extractProductName(text string) *string {
	if m := reQuotedName.FindStringSubmatch(text); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return &name
		}
	}
	m := reNameAfterCue.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	words := strings.FieldsFunc(m[1], unicode.IsSpace)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := nameStopWords[w]; stop || startsWithDigit(w) {
			break
		}
		if _, generic := genericNameWords[w]; generic {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return nil
	}
	name := strings.Join(kept, " ")
	return &name
}

func startsWithDigit(word string) bool {
	return word != "" && word[0] >= '0' && word[0] <= '9'
}
