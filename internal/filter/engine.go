// Package filter narrows the catalog with explicit criteria, including fuzzy
// product-name matching, then sorts and limits the survivors.
package filter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/odyssey-erp/odyssey-advisor/internal/catalog"
)

// Engine applies Criteria to an in-memory product list.
type Engine struct {
	logger *slog.Logger
}

// NewEngine constructs an Engine. A nil logger discards stage traces.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{logger: logger}
}

type stage struct {
	name   string
	active bool
	keep   func(catalog.Product) bool
}

// Filter runs the narrowing pipeline over products. It never fails and always
// returns a non-nil slice.
func (e *Engine) Filter(products []catalog.Product, c Criteria) []catalog.Product {
	result := make([]catalog.Product, len(products))
	copy(result, products)

	for _, st := range e.stages(c) {
		if !st.active {
			continue
		}
		result = keepIf(result, st.keep)
		e.logger.Debug("filter stage", slog.String("stage", st.name), slog.Int("remaining", len(result)))
	}

	sortProducts(result, c.SortBy)
	if c.Limit > 0 && len(result) > c.Limit {
		result = result[:c.Limit]
	}
	return result
}

func (e *Engine) stages(c Criteria) []stage {
	return []stage{
		{name: "name", active: c.ProductName != nil && strings.TrimSpace(*c.ProductName) != "", keep: func(p catalog.Product) bool {
			return matchesName(p.Name, *c.ProductName)
		}},
		{name: "keyword", active: c.Keyword != nil && *c.Keyword != "", keep: func(p catalog.Product) bool {
			kw := strings.ToLower(*c.Keyword)
			return strings.Contains(strings.ToLower(p.Name), kw) || strings.Contains(strings.ToLower(p.BrandName), kw)
		}},
		{name: "category", active: c.Category != nil && *c.Category != "", keep: func(p catalog.Product) bool {
			return strings.EqualFold(p.BrandName, *c.Category)
		}},
		{name: "gender", active: c.Gender != nil, keep: func(p catalog.Product) bool {
			return p.Gender == *c.Gender
		}},
		{name: "volume", active: c.Volume != nil, keep: func(p catalog.Product) bool {
			return p.Volume == *c.Volume
		}},
		{name: "price", active: c.MinPrice != nil || c.MaxPrice != nil, keep: func(p catalog.Product) bool {
			if c.MinPrice != nil && p.Price < *c.MinPrice {
				return false
			}
			return c.MaxPrice == nil || p.Price <= *c.MaxPrice
		}},
		{name: "rating", active: c.MinRating != nil, keep: func(p catalog.Product) bool {
			return p.AverageRating != nil && *p.AverageRating >= *c.MinRating
		}},
		{name: "in_stock", active: c.InStockOnly, keep: func(p catalog.Product) bool {
			return p.InStock
		}},
		{name: "hot_trend", active: c.HotTrendOnly, keep: func(p catalog.Product) bool {
			return p.IsHotTrend()
		}},
	}
}

func keepIf(products []catalog.Product, keep func(catalog.Product) bool) []catalog.Product {
	out := products[:0]
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func sortProducts(products []catalog.Product, by SortBy) {
	var less func(a, b catalog.Product) bool
	switch by {
	case SortPriceAsc:
		less = func(a, b catalog.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b catalog.Product) bool { return a.Price > b.Price }
	case SortRating:
		less = func(a, b catalog.Product) bool { return a.Rating() > b.Rating() }
	case SortPopular:
		less = func(a, b catalog.Product) bool { return a.Reviews() > b.Reviews() }
	case SortNewest:
		less = func(a, b catalog.Product) bool { return a.ID > b.ID }
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

// Service filters a fresh catalog snapshot per call.
type Service struct {
	provider catalog.Provider
	engine   *Engine
}

// NewService wires a catalog provider with an Engine.
func NewService(provider catalog.Provider, engine *Engine) *Service {
	if engine == nil {
		engine = NewEngine(nil)
	}
	return &Service{provider: provider, engine: engine}
}

// FilterProducts loads the catalog and applies c.
func (s *Service) FilterProducts(ctx context.Context, c Criteria) ([]catalog.Product, error) {
	products, err := s.provider.ListAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("filter: load catalog: %w", err)
	}
	return s.engine.Filter(products, c), nil
}
