package sales

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Adriel-M-A/desktop-sales-control/internal/platform/db"
	"github.com/Adriel-M-A/desktop-sales-control/internal/platform/httpx"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	InsertSale(ctx context.Context, totalAmount float64, paymentMethod string) (int64, error)
	InsertItem(ctx context.Context, item SaleItem) (int64, error)
	Get(ctx context.Context, id int64) (Sale, error)
	List(ctx context.Context, req HistoryRequest) ([]Sale, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type repository struct {
	db   dbtx
	conn *sql.DB
}

func NewRepository(conn *sql.DB) Repository {
	return &repository{db: conn, conn: conn}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.conn, func(tx *sql.Tx) error {
		repoTx := &repository{db: tx, conn: r.conn}
		return fn(ctx, repoTx)
	})
}

func (r *repository) InsertSale(ctx context.Context, totalAmount float64, paymentMethod string) (int64, error) {
	query := `INSERT INTO sales (total_amount, payment_method, status, created_at)
		VALUES (?, ?, ?, datetime('now','localtime'))`
	result, err := r.db.ExecContext(ctx, query, totalAmount, paymentMethod, StatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("sales: insert sale: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sales: insert sale id: %w", err)
	}
	return id, nil
}

func (r *repository) InsertItem(ctx context.Context, item SaleItem) (int64, error) {
	query := `INSERT INTO sale_items (sale_id, product_id, product_name, quantity, unit_price, subtotal)
		VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		item.SaleID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.Subtotal)
	if err != nil {
		return 0, fmt.Errorf("sales: insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sales: insert item id: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (Sale, error) {
	query := `SELECT id, total_amount, payment_method, status, created_at FROM sales WHERE id = ?`
	var s Sale
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.TotalAmount, &s.PaymentMethod, &s.Status, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Sale{}, fmt.Errorf("sales: sale %d: %w", id, httpx.ErrNotFound)
	}
	if err != nil {
		return Sale{}, fmt.Errorf("sales: get sale: %w", err)
	}
	items, err := r.itemsBySale(ctx, s.ID)
	if err != nil {
		return Sale{}, err
	}
	s.Items = items
	return s, nil
}

func (r *repository) List(ctx context.Context, req HistoryRequest) ([]Sale, error) {
	query := `SELECT id, total_amount, payment_method, status, created_at FROM sales`
	var conditions []string
	var args []interface{}

	if req.StartDate != "" && req.EndDate != "" {
		conditions = append(conditions, `created_at >= ? AND created_at <= ?`)
		args = append(args, req.StartDate+" 00:00:00", req.EndDate+" 23:59:59")
	}
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales: list sales: %w", err)
	}
	defer rows.Close()

	var result []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.TotalAmount, &s.PaymentMethod, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("sales: scan sale: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.itemsBySale(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *repository) itemsBySale(ctx context.Context, saleID int64) ([]SaleItem, error) {
	query := `SELECT id, sale_id, product_id, product_name, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("sales: items for sale %d: %w", saleID, err)
	}
	defer rows.Close()

	var items []SaleItem
	for rows.Next() {
		var it SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("sales: scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus flips the sale status only. Totals and item rows are never
// rewritten, so repeating a flip is a no-op for the data.
func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE sales SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("sales: update status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sales: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("sales: sale %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}
