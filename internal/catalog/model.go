package catalog

import "strings"

// Gender tags a product's target audience.
type Gender string

const (
	GenderMale   Gender = "NAM"
	GenderFemale Gender = "NU"
	GenderUnisex Gender = "UNISEX"
)

// Label returns the customer-facing Vietnamese label.
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Nam"
	case GenderFemale:
		return "Nữ"
	case GenderUnisex:
		return "Unisex"
	default:
		return "Không rõ"
	}
}

// ParseGender maps a stored tag to a Gender. Unknown values report false.
func ParseGender(raw string) (Gender, bool) {
	switch Gender(strings.ToUpper(strings.TrimSpace(raw))) {
	case GenderMale:
		return GenderMale, true
	case GenderFemale:
		return GenderFemale, true
	case GenderUnisex:
		return GenderUnisex, true
	}
	return "", false
}

// Volume tags a bottle size, e.g. "100ML".
type Volume string

var knownVolumes = map[Volume]struct{}{
	"10ML": {}, "30ML": {}, "50ML": {}, "75ML": {}, "90ML": {},
	"100ML": {}, "125ML": {}, "150ML": {}, "200ML": {},
}

// ParseVolume normalises raw into a known Volume tag.
func ParseVolume(raw string) (Volume, bool) {
	v := Volume(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", "")))
	if _, ok := knownVolumes[v]; !ok {
		return "", false
	}
	return v, true
}

// Product is the read-only catalog view consumed by the advisor.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	StockQuantity int      `json:"stock_quantity"`
	InStock       bool     `json:"in_stock"`
	BrandID       int64    `json:"brand_id"`
	BrandName     string   `json:"brand_name"`
	Gender        Gender   `json:"gender,omitempty"`
	Volume        Volume   `json:"volume,omitempty"`
	AverageRating *float64 `json:"average_rating,omitempty"`
	RatingCount   *int     `json:"rating_count,omitempty"`
	HotTrend      *bool    `json:"hot_trend,omitempty"`
}

// Rating returns the average rating, zero when unrated.
func (p Product) Rating() float64 {
	if p.AverageRating == nil {
		return 0
	}
	return *p.AverageRating
}

// Reviews returns the rating count, zero when unknown.
func (p Product) Reviews() int {
	if p.RatingCount == nil {
		return 0
	}
	return *p.RatingCount
}

// IsHotTrend reports whether the product carries the hot-trend flag.
func (p Product) IsHotTrend() bool {
	return p.HotTrend != nil && *p.HotTrend
}

// OrderLine is one immutable historical sale.
type OrderLine struct {
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
