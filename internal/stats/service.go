package stats

import (
	"context"
	"fmt"

	"github.com/odyssey-erp/odyssey-advisor/internal/catalog"
)

// View names one ranked view of the catalog.
type View string

const (
	ViewBestSelling   View = "best-selling"
	ViewCheapest      View = "cheapest"
	ViewMostExpensive View = "most-expensive"
	ViewTopRated      View = "top-rated"
	ViewNewest        View = "newest"
	ViewHotTrend      View = "hot-trend"
)

// ParseView validates a view name.
func ParseView(raw string) (View, bool) {
	switch v := View(raw); v {
	case ViewBestSelling, ViewCheapest, ViewMostExpensive, ViewTopRated, ViewNewest, ViewHotTrend:
		return v, true
	}
	return "", false
}

// Ranking is one row of a ranked view. Sales fields are only set for the
// best-selling view.
type Ranking struct {
	Rank      int             `json:"rank"`
	Product   catalog.Product `json:"product"`
	TotalSold *int            `json:"total_sold,omitempty"`
	Revenue   *float64        `json:"revenue,omitempty"`
}

// Service serves ranked views over a fresh snapshot per call and caches the
// rendered report until explicitly invalidated.
type Service struct {
	provider catalog.Provider
	cache    *Cache
}

// NewService wires a catalog provider with an optional report cache.
func NewService(provider catalog.Provider, cache *Cache) *Service {
	return &Service{provider: provider, cache: cache}
}

// Engine loads a fresh snapshot and returns an Engine over it.
func (s *Service) Engine(ctx context.Context) (*Engine, error) {
	snap, err := catalog.LoadSnapshot(ctx, s.provider)
	if err != nil {
		return nil, fmt.Errorf("stats: load snapshot: %w", err)
	}
	return NewEngineFromSnapshot(snap), nil
}

// Rank returns the top n rows of view.
func (s *Service) Rank(ctx context.Context, view View, n int) ([]Ranking, error) {
	engine, err := s.Engine(ctx)
	if err != nil {
		return nil, err
	}
	return RankView(engine, view, n), nil
}

// RankView evaluates view on engine. Unknown views yield no rows.
func RankView(engine *Engine, view View, n int) []Ranking {
	if view == ViewBestSelling {
		best := engine.BestSelling(n)
		rows := make([]Ranking, 0, len(best))
		for i, s := range best {
			sold, revenue := s.TotalSold, s.Revenue
			rows = append(rows, Ranking{Rank: i + 1, Product: s.Product, TotalSold: &sold, Revenue: &revenue})
		}
		return rows
	}
	var products []catalog.Product
	switch view {
	case ViewCheapest:
		products = engine.Cheapest(n)
	case ViewMostExpensive:
		products = engine.MostExpensive(n)
	case ViewTopRated:
		products = engine.TopRated(n)
	case ViewNewest:
		products = engine.Newest(n)
	case ViewHotTrend:
		products = engine.HotTrend(n)
	}
	rows := make([]Ranking, 0, len(products))
	for i, p := range products {
		rows = append(rows, Ranking{Rank: i + 1, Product: p})
	}
	return rows
}

// Report returns the enhanced statistics report, served from cache when a
// current entry exists.
func (s *Service) Report(ctx context.Context) (string, error) {
	key, err := s.cache.BuildKey(ctx, keyReport())
	if err != nil {
		return "", fmt.Errorf("stats: cache key: %w", err)
	}
	return s.cache.FetchText(ctx, key, s.buildReport)
}

// WarmReport rebuilds the report and stores it under the current version.
func (s *Service) WarmReport(ctx context.Context) (string, error) {
	report, err := s.buildReport(ctx)
	if err != nil {
		return "", err
	}
	key, err := s.cache.BuildKey(ctx, keyReport())
	if err != nil {
		return "", fmt.Errorf("stats: cache key: %w", err)
	}
	if err := s.cache.Store(ctx, key, report); err != nil {
		return "", fmt.Errorf("stats: store report: %w", err)
	}
	return report, nil
}

// Invalidate drops every cached report and returns the new version.
func (s *Service) Invalidate(ctx context.Context) (int64, error) {
	ver, err := s.cache.Bump(ctx)
	if err != nil {
		return 0, fmt.Errorf("stats: bump cache: %w", err)
	}
	return ver, nil
}

func (s *Service) buildReport(ctx context.Context) (string, error) {
	engine, err := s.Engine(ctx)
	if err != nil {
		return "", err
	}
	return engine.Report(), nil
}
