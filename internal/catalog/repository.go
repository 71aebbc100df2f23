package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Provider exposes full-scan reads of the catalog and sales ledger.
type Provider interface {
	ListAllProducts(ctx context.Context) ([]Product, error)
	ListAllOrderLines(ctx context.Context) ([]OrderLine, error)
}

// Repository reads catalog data from PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

var _ Provider = (*Repository)(nil)

// NewRepository constructs a Postgres-backed catalog provider.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const listProductsSQL = `SELECT p.id, p.name, p.price, p.stock_quantity, p.in_stock,
	p.category_id, COALESCE(c.name, ''), COALESCE(p.gender, ''), COALESCE(p.volume, ''),
	p.average_rating, p.rating_count, p.hot_trend
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
ORDER BY p.id`

// ListAllProducts returns every product ordered by id.
func (r *Repository) ListAllProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p              Product
		brandID        *int64
		gender, volume string
		ratingCount    *int32
	)
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.StockQuantity, &p.InStock,
		&brandID, &p.BrandName, &gender, &volume,
		&p.AverageRating, &ratingCount, &p.HotTrend)
	if err != nil {
		return Product{}, err
	}
	if brandID != nil {
		p.BrandID = *brandID
	}
	if g, ok := ParseGender(gender); ok {
		p.Gender = g
	}
	if v, ok := ParseVolume(volume); ok {
		p.Volume = v
	}
	if ratingCount != nil {
		count := int(*ratingCount)
		p.RatingCount = &count
	}
	return p, nil
}

const listOrderLinesSQL = `SELECT order_id, product_id, quantity, unit_price
FROM order_details
ORDER BY id`

// ListAllOrderLines returns the complete sales ledger.
func (r *Repository) ListAllOrderLines(ctx context.Context) ([]OrderLine, error) {
	rows, err := r.pool.Query(ctx, listOrderLinesSQL)
	if err != nil {
		return nil, fmt.Errorf("catalog: list order lines: %w", err)
	}
	defer rows.Close()

	lines := make([]OrderLine, 0)
	for rows.Next() {
		var l OrderLine
		if err := rows.Scan(&l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("catalog: scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
