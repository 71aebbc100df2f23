// Package stats ranks the catalog and sales ledger (best-selling, cheapest,
// most expensive, top-rated, newest, hot-trend) and renders the ranked views
// as a text report for prompt assembly.
package stats

import (
	"sort"
	"sync"

	"github.com/odyssey-erp/odyssey-advisor/internal/catalog"
)

// ProductStats aggregates the sales of one product.
type ProductStats struct {
	Product   catalog.Product `json:"product"`
	TotalSold int             `json:"total_sold"`
	Revenue   float64         `json:"revenue"`
}

// Engine computes ranked views over one catalog snapshot. Sales aggregation
// is computed at most once per Engine, so an Engine must not outlive the
// snapshot it was built from.
type Engine struct {
	products []catalog.Product
	lines    []catalog.OrderLine

	salesOnce sync.Once
	sales     []ProductStats
}

// NewEngine builds an Engine over the given snapshot.
func NewEngine(products []catalog.Product, lines []catalog.OrderLine) *Engine {
	return &Engine{products: products, lines: lines}
}

// NewEngineFromSnapshot is a convenience wrapper around NewEngine.
func NewEngineFromSnapshot(snap catalog.Snapshot) *Engine {
	return NewEngine(snap.Products, snap.Lines)
}

// Products returns the snapshot's products.
func (e *Engine) Products() []catalog.Product {
	return e.products
}

// BestSelling returns the n products with the most units sold. Ties are
// broken by product id ascending. Lines referencing unknown products are
// skipped.
func (e *Engine) BestSelling(n int) []ProductStats {
	e.salesOnce.Do(e.aggregateSales)
	if n <= 0 || len(e.sales) == 0 {
		return []ProductStats{}
	}
	if n > len(e.sales) {
		n = len(e.sales)
	}
	out := make([]ProductStats, n)
	copy(out, e.sales[:n])
	return out
}

func (e *Engine) aggregateSales() {
	byID := make(map[int64]catalog.Product, len(e.products))
	for _, p := range e.products {
		byID[p.ID] = p
	}
	totals := make(map[int64]*ProductStats)
	for _, line := range e.lines {
		p, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		entry := totals[line.ProductID]
		if entry == nil {
			entry = &ProductStats{Product: p}
			totals[line.ProductID] = entry
		}
		entry.TotalSold += line.Quantity
		entry.Revenue += line.UnitPrice * float64(line.Quantity)
	}
	sales := make([]ProductStats, 0, len(totals))
	for _, entry := range totals {
		sales = append(sales, *entry)
	}
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].TotalSold != sales[j].TotalSold {
			return sales[i].TotalSold > sales[j].TotalSold
		}
		return sales[i].Product.ID < sales[j].Product.ID
	})
	e.sales = sales
}

// Cheapest returns in-stock products by ascending price.
func (e *Engine) Cheapest(n int) []catalog.Product {
	return e.ranked(n, inStock, func(a, b catalog.Product) bool {
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		return a.ID < b.ID
	})
}

// MostExpensive returns in-stock products by descending price.
func (e *Engine) MostExpensive(n int) []catalog.Product {
	return e.ranked(n, inStock, func(a, b catalog.Product) bool {
		if a.Price != b.Price {
			return a.Price > b.Price
		}
		return a.ID < b.ID
	})
}

// TopRated returns rated products by rating, then rating count.
func (e *Engine) TopRated(n int) []catalog.Product {
	rated := func(p catalog.Product) bool {
		return p.AverageRating != nil && *p.AverageRating > 0
	}
	return e.ranked(n, rated, func(a, b catalog.Product) bool {
		if a.Rating() != b.Rating() {
			return a.Rating() > b.Rating()
		}
		if a.Reviews() != b.Reviews() {
			return a.Reviews() > b.Reviews()
		}
		return a.ID < b.ID
	})
}

// Newest returns in-stock products, highest id first.
func (e *Engine) Newest(n int) []catalog.Product {
	return e.ranked(n, inStock, func(a, b catalog.Product) bool {
		return a.ID > b.ID
	})
}

// HotTrend returns in-stock hot-trend products in catalog order.
func (e *Engine) HotTrend(n int) []catalog.Product {
	hot := func(p catalog.Product) bool {
		return p.IsHotTrend() && p.InStock
	}
	return e.ranked(n, hot, nil)
}

func inStock(p catalog.Product) bool {
	return p.InStock
}

func (e *Engine) ranked(n int, keep func(catalog.Product) bool, less func(a, b catalog.Product) bool) []catalog.Product {
	if n <= 0 {
		return []catalog.Product{}
	}
	out := make([]catalog.Product, 0, len(e.products))
	for _, p := range e.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}
