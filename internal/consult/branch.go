package consult

import "github.com/odyssey-erp/odyssey-advisor/internal/intent"

// Branch names the retrieval path a consultation took.
type Branch string

const (
	BranchBestSelling Branch = "best-selling"
	BranchHotTrend    Branch = "hot-trend"
	BranchNewProducts Branch = "new-products"
	BranchTopRated    Branch = "top-rated"
	BranchCheap       Branch = "cheap"
	BranchExpensive   Branch = "expensive"
	BranchGeneral     Branch = "general"
)

// statsLimit is the number of products a statistics branch asks for.
const statsLimit = 10

// selectBranch returns the first matching special branch, or BranchGeneral.
func selectBranch(rec intent.Record) Branch {
	switch {
	case rec.IsBestSelling:
		return BranchBestSelling
	case rec.IsHotTrend:
		return BranchHotTrend
	case rec.IsNewProducts:
		return BranchNewProducts
	case rec.IsTopRated:
		return BranchTopRated
	case rec.IsCheapQuery:
		return BranchCheap
	case rec.IsExpensiveQuery:
		return BranchExpensive
	default:
		return BranchGeneral
	}
}
