// Package intent turns free-text shopping questions into structured intent
// records using keyword matching. It is best-effort text matching, not NLP.
package intent

import (
	"github.com/odyssey-erp/odyssey-advisor/internal/catalog"
)

// Record is the structured reading of a single query. Nil pointer fields are
// unset; unset is never an error.
type Record struct {
	IsPriceQuery     bool `json:"is_price_query"`
	IsRecommendation bool `json:"is_recommendation"`
	IsBestSelling    bool `json:"is_best_selling"`
	IsHotTrend       bool `json:"is_hot_trend"`
	IsNewProducts    bool `json:"is_new_products"`
	IsTopRated       bool `json:"is_top_rated"`
	IsCheapQuery     bool `json:"is_cheap_query"`
	IsExpensiveQuery bool `json:"is_expensive_query"`
	IsComparison     bool `json:"is_comparison"`
	IsAvailability   bool `json:"is_availability"`

	Gender      *catalog.Gender `json:"gender,omitempty"`
	MinPrice    *float64        `json:"min_price,omitempty"`
	MaxPrice    *float64        `json:"max_price,omitempty"`
	Brand       *string         `json:"brand,omitempty"`
	ProductName *string         `json:"product_name,omitempty"`
	Volume      *catalog.Volume `json:"volume,omitempty"`
}

// Flags lists the names of the boolean flags that are set, in declaration order.
func (r Record) Flags() []string {
	flags := make([]string, 0, 4)
	add := func(set bool, name string) {
		if set {
			flags = append(flags, name)
		}
	}
	add(r.IsPriceQuery, "price_query")
	add(r.IsRecommendation, "recommendation")
	add(r.IsBestSelling, "best_selling")
	add(r.IsHotTrend, "hot_trend")
	add(r.IsNewProducts, "new_products")
	add(r.IsTopRated, "top_rated")
	add(r.IsCheapQuery, "cheap_query")
	add(r.IsExpensiveQuery, "expensive_query")
	add(r.IsComparison, "comparison")
	add(r.IsAvailability, "availability")
	return flags
}
