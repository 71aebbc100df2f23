package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-advisor/internal/catalog"
)

func ptr[T any](v T) *T { return &v }

func fixtureProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Dior Sauvage", Price: 2900000, InStock: true, AverageRating: ptr(4.7), RatingCount: ptr(200), HotTrend: ptr(true)},
		{ID: 2, Name: "Chanel Coco Mademoiselle", Price: 3900000, InStock: true, AverageRating: ptr(4.9), RatingCount: ptr(80)},
		{ID: 3, Name: "Gucci Bloom", Price: 2500000, InStock: false, AverageRating: ptr(4.9), RatingCount: ptr(150), HotTrend: ptr(true)},
		{ID: 4, Name: "Versace Eros", Price: 1800000, InStock: true, AverageRating: ptr(0.0)},
		{ID: 5, Name: "Le Labo Santal 33", Price: 5200000, InStock: true, HotTrend: ptr(true)},
		{ID: 6, Name: "Creed Aventus", Price: 7500000, InStock: true, HotTrend: ptr(true), AverageRating: ptr(4.7), RatingCount: ptr(200)},
	}
}

func productIDs(products []catalog.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestCheapestScenario(t *testing.T) {
	engine := NewEngine([]catalog.Product{
		{ID: 1, Name: "A", Price: 100000, InStock: true},
		{ID: 2, Name: "B", Price: 50000, InStock: true},
		{ID: 3, Name: "C", Price: 200000, InStock: false},
	}, nil)

	got := engine.Cheapest(2)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, "A", got[1].Name)
}

func TestCheapestProperties(t *testing.T) {
	engine := NewEngine(fixtureProducts(), nil)
	for n := 0; n <= 8; n++ {
		got := engine.Cheapest(n)
		assert.LessOrEqual(t, len(got), n)
		for i, p := range got {
			assert.True(t, p.InStock)
			if i > 0 {
				assert.LessOrEqual(t, got[i-1].Price, p.Price)
			}
		}
	}
}

func TestRankedViews(t *testing.T) {
	engine := NewEngine(fixtureProducts(), nil)

	assert.Equal(t, []int64{6, 5, 2}, productIDs(engine.MostExpensive(3)))
	assert.Equal(t, []int64{4, 1, 2, 5, 6}, productIDs(engine.Cheapest(10)))
	assert.Equal(t, []int64{3, 2, 1, 6}, productIDs(engine.TopRated(10)))
	assert.Equal(t, []int64{6, 5, 4}, productIDs(engine.Newest(3)))
	assert.Equal(t, []int64{1, 5, 6}, productIDs(engine.HotTrend(10)))
	assert.Equal(t, []int64{1, 5}, productIDs(engine.HotTrend(2)))
}

func TestNonPositiveLimitAndEmptyInput(t *testing.T) {
	engine := NewEngine(fixtureProducts(), []catalog.OrderLine{{ProductID: 1, Quantity: 1}})
	assert.Empty(t, engine.Cheapest(0))
	assert.Empty(t, engine.TopRated(-1))
	assert.Empty(t, engine.BestSelling(0))

	empty := NewEngine(nil, nil)
	assert.NotNil(t, empty.Newest(5))
	assert.Empty(t, empty.Newest(5))
	assert.NotNil(t, empty.BestSelling(5))
	assert.Empty(t, empty.BestSelling(5))
	assert.Equal(t, "", empty.Report())
}

func TestBestSellingAggregates(t *testing.T) {
	lines := []catalog.OrderLine{
		{OrderID: 1, ProductID: 2, Quantity: 3, UnitPrice: 3900000},
		{OrderID: 2, ProductID: 2, Quantity: 5, UnitPrice: 3500000},
		{OrderID: 2, ProductID: 1, Quantity: 8, UnitPrice: 2900000},
		{OrderID: 3, ProductID: 4, Quantity: 1, UnitPrice: 1800000},
		{OrderID: 3, ProductID: 99, Quantity: 50, UnitPrice: 100},
	}
	engine := NewEngine(fixtureProducts(), lines)

	best := engine.BestSelling(10)
	require.Len(t, best, 3)

	assert.Equal(t, int64(1), best[0].Product.ID)
	assert.Equal(t, int64(2), best[1].Product.ID)
	assert.Equal(t, 8, best[1].TotalSold)
	assert.InDelta(t, 3*3900000.0+5*3500000.0, best[1].Revenue, 0.001)
	assert.Equal(t, int64(4), best[2].Product.ID)

	total := 0
	for _, s := range best {
		total += s.TotalSold
	}
	assert.LessOrEqual(t, total, 3+5+8+1)

	top := engine.BestSelling(1)
	require.Len(t, top, 1)
	top[0].TotalSold = 0
	assert.Equal(t, 8, engine.BestSelling(1)[0].TotalSold)
}

func TestReportSections(t *testing.T) {
	lines := []catalog.OrderLine{{ProductID: 1, Quantity: 2, UnitPrice: 2900000}}
	report := NewEngine(fixtureProducts(), lines).Report()

	assert.Contains(t, report, "SẢN PHẨM BÁN CHẠY NHẤT:\n1. Dior Sauvage - đã bán 2 sản phẩm, doanh thu "+FormatPrice(5800000))
	assert.Contains(t, report, "SẢN PHẨM ĐƯỢC ĐÁNH GIÁ CAO NHẤT:\n1. Gucci Bloom - 4.9/5 (150 đánh giá)")
	assert.Contains(t, report, "SẢN PHẨM HOT TREND:\n1. Dior Sauvage")
	assert.Equal(t, 3, strings.Count(report, "\n\n")+1)
}

func TestReportOmitsEmptySections(t *testing.T) {
	products := []catalog.Product{{ID: 1, Name: "Plain", Price: 100, InStock: true}}
	assert.Equal(t, "", NewEngine(products, nil).Report())

	products[0].HotTrend = ptr(true)
	report := NewEngine(products, nil).Report()
	assert.True(t, strings.HasPrefix(report, "SẢN PHẨM HOT TREND:"))
	assert.NotContains(t, report, "BÁN CHẠY")
	assert.NotContains(t, report, "ĐÁNH GIÁ")
}

func TestFormatPrice(t *testing.T) {
	got := FormatPrice(3500000)
	assert.True(t, strings.HasSuffix(got, "đ"))
	assert.Equal(t, "3500000", strings.NewReplacer(".", "", ",", "", "\u00a0", "", " ", "", "đ", "").Replace(got))
}
