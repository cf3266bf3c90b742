package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Adriel-M-A/desktop-sales-control/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, search string, includeInactive bool) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, req CreateProductRequest) (Product, error)
	Update(ctx context.Context, id int64, req UpdateProductRequest) error
	SetActive(ctx context.Context, id int64, active bool) error
	FindByCode(ctx context.Context, code string) (Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, code, name, price, is_active, created_at`

func (r *repository) List(ctx context.Context, search string, includeInactive bool) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var conditions []string
	var args []interface{}

	if search != "" {
		conditions = append(conditions, `(name LIKE ? OR code LIKE ?)`)
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	if !includeInactive {
		conditions = append(conditions, `is_active = 1`)
	}
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Price, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("catalog: scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	var p Product
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Code, &p.Name, &p.Price, &p.IsActive, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, fmt.Errorf("catalog: product %d: %w", id, httpx.ErrNotFound)
	}
	if err != nil {
		return Product{}, fmt.Errorf("catalog: get product: %w", err)
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	query := `INSERT INTO products (code, name, price, created_at)
		VALUES (?, ?, ?, datetime('now','localtime'))`
	result, err := r.db.ExecContext(ctx, query, req.Code, req.Name, req.Price)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, fmt.Errorf("catalog: code %q already exists: %w", req.Code, httpx.ErrDuplicate)
		}
		return Product{}, fmt.Errorf("catalog: create product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Product{}, fmt.Errorf("catalog: create product id: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *repository) Update(ctx context.Context, id int64, req UpdateProductRequest) error {
	query := `UPDATE products SET name = ?, price = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, req.Name, req.Price, id)
	if err != nil {
		return fmt.Errorf("catalog: update product: %w", err)
	}
	return checkAffected(result, id)
}

func (r *repository) SetActive(ctx context.Context, id int64, active bool) error {
	status := 0
	if active {
		status = 1
	}
	result, err := r.db.ExecContext(ctx, `UPDATE products SET is_active = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("catalog: set product status: %w", err)
	}
	return checkAffected(result, id)
}

func (r *repository) FindByCode(ctx context.Context, code string) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = ? AND is_active = 1`
	var p Product
	err := r.db.QueryRowContext(ctx, query, code).
		Scan(&p.ID, &p.Code, &p.Name, &p.Price, &p.IsActive, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, fmt.Errorf("catalog: code %q: %w", code, httpx.ErrNotFound)
	}
	if err != nil {
		return Product{}, fmt.Errorf("catalog: find by code: %w", err)
	}
	return p, nil
}

func checkAffected(result sql.Result, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("catalog: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("catalog: product %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
