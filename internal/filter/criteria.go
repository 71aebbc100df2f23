package filter

import (
	"github.com/odyssey-erp/odyssey-advisor/internal/catalog"
	"github.com/odyssey-erp/odyssey-advisor/internal/intent"
)

// SortBy names a result ordering.
type SortBy string

const (
	SortPriceAsc  SortBy = "price_asc"
	SortPriceDesc SortBy = "price_desc"
	SortRating    SortBy = "rating"
	SortPopular   SortBy = "popular"
	SortNewest    SortBy = "newest"
)

// DefaultLimit caps results when no intent asks for a different size.
const DefaultLimit = 10

// Criteria is an explicit filter request. Nil fields do not constrain.
type Criteria struct {
	ProductName  *string         `json:"product_name,omitempty"`
	Keyword      *string         `json:"keyword,omitempty"`
	Category     *string         `json:"category,omitempty"`
	Gender       *catalog.Gender `json:"gender,omitempty"`
	Volume       *catalog.Volume `json:"volume,omitempty"`
	MinPrice     *float64        `json:"min_price,omitempty"`
	MaxPrice     *float64        `json:"max_price,omitempty"`
	MinRating    *float64        `json:"min_rating,omitempty"`
	InStockOnly  bool            `json:"in_stock_only"`
	HotTrendOnly bool            `json:"hot_trend_only"`
	SortBy       SortBy          `json:"sort_by,omitempty"`
	Limit        int             `json:"limit,omitempty"`
}

// FromIntent builds criteria from an intent record. Sort and limit are always
// resolved; when several flags are set the later rule below wins.
func FromIntent(rec intent.Record) Criteria {
	c := Criteria{
		ProductName: rec.ProductName,
		Category:    rec.Brand,
		Gender:      rec.Gender,
		Volume:      rec.Volume,
		MinPrice:    rec.MinPrice,
		MaxPrice:    rec.MaxPrice,
		InStockOnly: true,
		SortBy:      SortPopular,
		Limit:       DefaultLimit,
	}
	if rec.IsRecommendation {
		c.SortBy, c.Limit = SortRating, 5
	}
	if rec.IsPriceQuery {
		c.SortBy, c.Limit = SortPriceAsc, DefaultLimit
	}
	if rec.IsHotTrend {
		c.HotTrendOnly = true
		c.SortBy, c.Limit = SortPopular, DefaultLimit
	}
	if rec.IsNewProducts {
		c.SortBy, c.Limit = SortNewest, DefaultLimit
	}
	if rec.IsTopRated {
		c.SortBy, c.Limit = SortRating, DefaultLimit
	}
	if rec.IsBestSelling {
		c.SortBy, c.Limit = SortPopular, DefaultLimit
	}
	if rec.IsCheapQuery {
		c.SortBy, c.Limit = SortPriceAsc, 5
	}
	if rec.IsExpensiveQuery {
		c.SortBy, c.Limit = SortPriceDesc, 5
	}
	return c
}
