package stats

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	reportBestSellers = 5
	reportTopRated    = 5
	reportHotTrend    = 3
)

// FormatPrice renders an amount in Vietnamese dong, e.g. "3.500.000đ".
func FormatPrice(v float64) string {
	p := message.NewPrinter(language.Vietnamese)
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(0))) + "đ"
}

// Report renders best-sellers, top-rated and hot-trend products as one text
// block. Empty sections are omitted; an empty snapshot yields "".
func (e *Engine) Report() string {
	sections := make([]string, 0, 3)

	if best := e.BestSelling(reportBestSellers); len(best) > 0 {
		var b strings.Builder
		b.WriteString("SẢN PHẨM BÁN CHẠY NHẤT:")
		for i, s := range best {
			fmt.Fprintf(&b, "\n%d. %s - đã bán %d sản phẩm, doanh thu %s", i+1, s.Product.Name, s.TotalSold, FormatPrice(s.Revenue))
		}
		sections = append(sections, b.String())
	}

	if top := e.TopRated(reportTopRated); len(top) > 0 {
		var b strings.Builder
		b.WriteString("SẢN PHẨM ĐƯỢC ĐÁNH GIÁ CAO NHẤT:")
		for i, p := range top {
			fmt.Fprintf(&b, "\n%d. %s - %.1f/5 (%d đánh giá)", i+1, p.Name, p.Rating(), p.Reviews())
		}
		sections = append(sections, b.String())
	}

	if hot := e.HotTrend(reportHotTrend); len(hot) > 0 {
		var b strings.Builder
		b.WriteString("SẢN PHẨM HOT TREND:")
		for i, p := range hot {
			fmt.Fprintf(&b, "\n%d. %s - %s", i+1, p.Name, FormatPrice(p.Price))
		}
		sections = append(sections, b.String())
	}

	return strings.Join(sections, "\n\n")
}
