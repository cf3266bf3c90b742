package reporting

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository interface {
	CompletedTotals(ctx context.Context, start, end string) (income float64, count int64, err error)
	CancelledTotals(ctx context.Context, start, end string) (amount float64, count int64, err error)
	TopProducts(ctx context.Context, start, end string, limit int) ([]TopProduct, error)
	BucketTotals(ctx context.Context, g Granularity, start, end string) (map[string]float64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CompletedTotals(ctx context.Context, start, end string) (float64, int64, error) {
	query := `SELECT COALESCE(SUM(total_amount), 0), COUNT(*) FROM sales
		WHERE created_at >= ? AND created_at <= ? AND status = 'completed'`
	var income float64
	var count int64
	if err := r.db.QueryRowContext(ctx, query, start, end).Scan(&income, &count); err != nil {
		return 0, 0, fmt.Errorf("reporting: completed totals: %w", err)
	}
	return income, count, nil
}

func (r *repository) CancelledTotals(ctx context.Context, start, end string) (float64, int64, error) {
	query := `SELECT COALESCE(SUM(total_amount), 0), COUNT(*) FROM sales
		WHERE created_at >= ? AND created_at <= ? AND status = 'cancelled'`
	var amount float64
	var count int64
	if err := r.db.QueryRowContext(ctx, query, start, end).Scan(&amount, &count); err != nil {
		return 0, 0, fmt.Errorf("reporting: cancelled totals: %w", err)
	}
	return amount, count, nil
}

func (r *repository) TopProducts(ctx context.Context, start, end string, limit int) ([]TopProduct, error) {
	query := `SELECT product_name, SUM(quantity) AS sold, SUM(subtotal) AS revenue
		FROM sale_items
		JOIN sales ON sales.id = sale_items.sale_id
		WHERE sales.status = 'completed'
		AND sales.created_at >= ? AND sales.created_at <= ?
		GROUP BY product_id
		ORDER BY sold DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("reporting: top products: %w", err)
	}
	defer rows.Close()

	var result []TopProduct
	for rows.Next() {
		var tp TopProduct
		if err := rows.Scan(&tp.Name, &tp.Sold, &tp.Revenue); err != nil {
			return nil, fmt.Errorf("reporting: scan top product: %w", err)
		}
		result = append(result, tp)
	}
	return result, rows.Err()
}

// BucketTotals returns the sparse bucket-key → summed-total mapping for
// completed sales. Gap filling happens in the service.
func (r *repository) BucketTotals(ctx context.Context, g Granularity, start, end string) (map[string]float64, error) {
	query := `SELECT strftime(?, created_at) AS bucket, SUM(total_amount)
		FROM sales
		WHERE status = 'completed'
		AND created_at >= ? AND created_at <= ?
		GROUP BY bucket
		ORDER BY bucket ASC`
	rows, err := r.db.QueryContext(ctx, query, g.SQLiteFormat(), start, end)
	if err != nil {
		return nil, fmt.Errorf("reporting: bucket totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var bucket string
		var total float64
		if err := rows.Scan(&bucket, &total); err != nil {
			return nil, fmt.Errorf("reporting: scan bucket: %w", err)
		}
		totals[bucket] = total
	}
	return totals, rows.Err()
}
