package consult

import (
	"fmt"
	"strings"

	"github.com/odyssey-erp/odyssey-advisor/internal/catalog"
	"github.com/odyssey-erp/odyssey-advisor/internal/stats"
)

// MaxContextProducts caps how many products are rendered into a context.
const MaxContextProducts = 10

const (
	contextHeader   = "DANH SÁCH SẢN PHẨM:"
	contextEmpty    = "Không tìm thấy sản phẩm phù hợp trong cửa hàng."
	statsHeader     = "THỐNG KÊ CỬA HÀNG:"
	labelUnknown    = "Không rõ"
	labelNoRating   = "Chưa có đánh giá"
	labelInStock    = "Còn hàng (%d sản phẩm)"
	labelOutOfStock = "Hết hàng"
)

// BuildContext renders products as a numbered block for the generator. Only
// the first MaxContextProducts entries are rendered.
func BuildContext(products []catalog.Product) string {
	if len(products) == 0 {
		return contextHeader + "\n" + contextEmpty
	}
	if len(products) > MaxContextProducts {
		products = products[:MaxContextProducts]
	}

	var b strings.Builder
	b.WriteString(contextHeader)
	for i, p := range products {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, p.Name)
		fmt.Fprintf(&b, "   - Giá: %s\n", stats.FormatPrice(p.Price))
		fmt.Fprintf(&b, "   - Thương hiệu: %s\n", orUnknown(p.BrandName))
		fmt.Fprintf(&b, "   - Dung tích: %s\n", orUnknown(string(p.Volume)))
		fmt.Fprintf(&b, "   - Giới tính: %s\n", p.Gender.Label())
		fmt.Fprintf(&b, "   - Đánh giá: %s\n", ratingLabel(p))
		fmt.Fprintf(&b, "   - Tình trạng: %s", stockLabel(p))
	}
	return b.String()
}

// withReport appends the store statistics block when it is not empty.
func withReport(context, report string) string {
	if strings.TrimSpace(report) == "" {
		return context
	}
	return context + "\n\n" + statsHeader + "\n" + report
}

func orUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return labelUnknown
	}
	return v
}

func ratingLabel(p catalog.Product) string {
	if p.AverageRating == nil || *p.AverageRating <= 0 {
		return labelNoRating
	}
	return fmt.Sprintf("%.1f/5 (%d đánh giá)", p.Rating(), p.Reviews())
}

func stockLabel(p catalog.Product) string {
	if !p.InStock || p.StockQuantity <= 0 {
		return labelOutOfStock
	}
	return fmt.Sprintf(labelInStock, p.StockQuantity)
}
