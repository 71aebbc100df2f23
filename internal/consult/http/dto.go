package consulthttp

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/odyssey-advisor/internal/catalog"
	"github.com/odyssey-erp/odyssey-advisor/internal/consult"
	"github.com/odyssey-erp/odyssey-advisor/internal/filter"
	"github.com/odyssey-erp/odyssey-advisor/internal/intent"
	"github.com/odyssey-erp/odyssey-advisor/internal/stats"
)

type consultRequest struct {
	Query string `json:"query" validate:"required,max=500"`
}

type consultResponse struct {
	ID       string            `json:"id"`
	Answer   string            `json:"answer"`
	Branch   consult.Branch    `json:"branch"`
	Fallback bool              `json:"fallback"`
	Intent   intent.Record     `json:"intent"`
	Products []catalog.Product `json:"products"`
}

func newConsultResponse(res consult.Result) consultResponse {
	products := res.Products
	if products == nil {
		products = []catalog.Product{}
	}
	return consultResponse{
		ID:       res.ID,
		Answer:   res.Answer,
		Branch:   res.Branch,
		Fallback: res.Fallback,
		Intent:   res.Intent,
		Products: products,
	}
}

type intentResponse struct {
	Query    string          `json:"query"`
	Intent   intent.Record   `json:"intent"`
	Flags    []string        `json:"flags"`
	Criteria filter.Criteria `json:"criteria"`
}

type filterRequest struct {
	ProductName  *string  `json:"product_name" validate:"omitempty,max=200"`
	Keyword      *string  `json:"keyword" validate:"omitempty,max=200"`
	Category     *string  `json:"category" validate:"omitempty,max=100"`
	Gender       *string  `json:"gender" validate:"omitempty,gender"`
	Volume       *string  `json:"volume" validate:"omitempty,volume"`
	MinPrice     *float64 `json:"min_price" validate:"omitempty,gte=0"`
	MaxPrice     *float64 `json:"max_price" validate:"omitempty,gte=0"`
	MinRating    *float64 `json:"min_rating" validate:"omitempty,gte=0,lte=5"`
	InStockOnly  bool     `json:"in_stock_only"`
	HotTrendOnly bool     `json:"hot_trend_only"`
	SortBy       string   `json:"sort_by" validate:"omitempty,oneof=price_asc price_desc rating popular newest"`
	Limit        int      `json:"limit" validate:"gte=0,lte=100"`
}

func (r filterRequest) criteria() filter.Criteria {
	c := filter.Criteria{
		ProductName:  r.ProductName,
		Keyword:      r.Keyword,
		Category:     r.Category,
		MinPrice:     r.MinPrice,
		MaxPrice:     r.MaxPrice,
		MinRating:    r.MinRating,
		InStockOnly:  r.InStockOnly,
		HotTrendOnly: r.HotTrendOnly,
		SortBy:       filter.SortBy(r.SortBy),
		Limit:        r.Limit,
	}
	if r.Gender != nil {
		if g, ok := catalog.ParseGender(*r.Gender); ok {
			c.Gender = &g
		}
	}
	if r.Volume != nil {
		if v, ok := catalog.ParseVolume(*r.Volume); ok {
			c.Volume = &v
		}
	}
	return c
}

type productsResponse struct {
	Count    int               `json:"count"`
	Products []catalog.Product `json:"products"`
}

type rankResponse struct {
	View  stats.View      `json:"view"`
	Items []stats.Ranking `json:"items"`
}

type reportResponse struct {
	Report string `json:"report"`
}

type invalidateResponse struct {
	Version int64 `json:"version"`
}

// newValidator reports json field names and knows the catalog tag formats.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		_, ok := catalog.ParseGender(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("volume", func(fl validator.FieldLevel) bool {
		_, ok := catalog.ParseVolume(fl.Field().String())
		return ok
	})
	return v
}
