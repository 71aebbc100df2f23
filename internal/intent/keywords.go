package intent

import (
	"regexp"
	"strings"
)

// wordSet compiles alternatives that must stand alone, using letter-aware
// boundaries so Vietnamese diacritics do not split words.
func wordSet(alternatives ...string) *regexp.Regexp {
	quoted := make([]string, len(alternatives))
	for i, alt := range alternatives {
		quoted[i] = regexp.QuoteMeta(alt)
	}
	return regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(?:` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}\p{N}])`)
}

var (
	rePriceQuery     = wordSet("giá", "bao nhiêu", "bao nhiêu tiền", "mấy tiền", "price", "cost")
	reRecommendation = wordSet("gợi ý", "tư vấn", "nên mua", "nên dùng", "phù hợp", "giới thiệu", "recommend", "suggest")
	reBestSelling    = wordSet("bán chạy", "bán chạy nhất", "mua nhiều", "phổ biến", "best seller", "bestseller", "best selling")
	reHotTrend       = wordSet("hot", "hot trend", "trend", "xu hướng", "thịnh hành", "trending")
	reNewProducts    = wordSet("mới", "mới nhất", "mới về", "new", "latest")
	reTopRated       = wordSet("đánh giá cao", "đánh giá tốt", "được yêu thích", "rating", "top rated", "review tốt")
	reCheapQuery     = wordSet("rẻ", "giá rẻ", "rẻ nhất", "bình dân", "tiết kiệm", "giá thấp", "cheap")
	reExpensiveQuery = wordSet("đắt", "đắt nhất", "cao cấp", "sang trọng", "xa xỉ", "expensive", "luxury")
	reComparison     = wordSet("so sánh", "khác nhau", "khác gì", "hay là", "compare", "vs")
	reAvailability   = wordSet("còn hàng", "có sẵn", "hết hàng", "tồn kho", "available", "in stock")
)

const (
	keywordMaxPrice = "dưới"
	keywordMinPrice = "trên"
)

// genderRules are checked in order; the first substring hit wins.
var genderRules = []struct {
	needles []string
	gender  string
}{
	{needles: []string{"nam"}, gender: "NAM"},
	{needles: []string{"nữ", "phụ nữ"}, gender: "NU"},
	{needles: []string{"unisex"}, gender: "UNISEX"},
}

// brands lists the recognised brands in match priority order.
var brands = []struct {
	needle string
	name   string
}{
	{needle: "chanel", name: "Chanel"},
	{needle: "dior", name: "Dior"},
	{needle: "gucci", name: "Gucci"},
	{needle: "versace", name: "Versace"},
	{needle: "tom ford", name: "Tom Ford"},
	{needle: "creed", name: "Creed"},
	{needle: "ysl", name: "YSL"},
	{needle: "calvin klein", name: "Calvin Klein"},
	{needle: "hermes", name: "Hermes"},
	{needle: "armani", name: "Armani"},
	{needle: "jo malone", name: "Jo Malone"},
	{needle: "lancome", name: "Lancome"},
}

var (
	reVolume       = regexp.MustCompile(`(\d+)\s*ml`)
	reQuotedName   = regexp.MustCompile(`["“]([^"”]+)["”]`)
	reNameAfterCue = regexp.MustCompile(`(?:mẫu|sản phẩm|chai)\s+([^,.?!;]+)`)
)

// nameStopWords end a product name hint taken after a cue word.
var nameStopWords = map[string]struct{}{
	"giá": {}, "còn": {}, "có": {}, "không": {}, "dưới": {}, "trên": {},
	"cho": {}, "bao": {}, "thế": {}, "như": {}, "loại": {}, "với": {}, "hay": {},
	"nào": {}, "bán": {}, "mới": {}, "hot": {}, "rẻ": {}, "đắt": {}, "đánh": {},
	"tốt": {}, "được": {}, "nam": {}, "nữ": {}, "unisex": {},
}

// genericNameWords name the product category rather than a product. They are
// skipped inside a hint, so "mẫu nước hoa nữ" carries no name.
var genericNameWords = map[string]struct{}{
	"nước": {}, "hoa": {}, "dầu": {}, "thơm": {}, "perfume": {}, "parfum": {},
	"này": {}, "đó": {}, "kia": {}, "một": {},
}
