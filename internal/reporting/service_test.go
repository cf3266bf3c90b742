package reporting

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adriel-M-A/desktop-sales-control/internal/platform/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Init(ctx, conn))
	return conn
}

func insertSale(t *testing.T, conn *sql.DB, total float64, status, createdAt string) int64 {
	t.Helper()
	result, err := conn.Exec(
		`INSERT INTO sales (total_amount, payment_method, status, created_at) VALUES (?, 'Efectivo', ?, ?)`,
		total, status, createdAt)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

func insertItem(t *testing.T, conn *sql.DB, saleID, productID int64, name string, qty int64, price float64) {
	t.Helper()
	_, err := conn.Exec(
		`INSERT INTO sale_items (sale_id, product_id, product_name, quantity, unit_price, subtotal)
		VALUES (?, ?, ?, ?, ?, ?)`,
		saleID, productID, name, qty, price, price*float64(qty))
	require.NoError(t, err)
}

func insertProduct(t *testing.T, conn *sql.DB, code, name string, price float64) int64 {
	t.Helper()
	result, err := conn.Exec(
		`INSERT INTO products (code, name, price) VALUES (?, ?, ?)`, code, name, price)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestDashboardAggregates(t *testing.T) {
	conn := newTestDB(t)
	svc := NewService(NewRepository(conn))
	ctx := context.Background()

	insertSale(t, conn, 1000, "completed", "2025-06-10 09:15:00")
	insertSale(t, conn, 3000, "completed", "2025-06-12 18:40:00")
	insertSale(t, conn, 500, "cancelled", "2025-06-11 12:00:00")
	// Outside the window on both sides.
	insertSale(t, conn, 9999, "completed", "2025-05-31 23:59:59")
	insertSale(t, conn, 9999, "completed", "2025-07-01 00:00:00")

	stats, err := svc.Dashboard(ctx, "2025-06-01", "2025-06-30")
	require.NoError(t, err)

	assert.Equal(t, 4000.0, stats.TotalIncome)
	assert.Equal(t, int64(2), stats.TotalSales)
	assert.Equal(t, 2000.0, stats.AverageTicket)
	assert.Equal(t, int64(1), stats.CancelledCount)
	assert.Equal(t, 500.0, stats.CancelledAmount)
}

func TestDashboardEmptyWindow(t *testing.T) {
	conn := newTestDB(t)
	svc := NewService(NewRepository(conn))

	stats, err := svc.Dashboard(context.Background(), "2025-06-01", "2025-06-30")
	require.NoError(t, err)

	assert.Zero(t, stats.TotalIncome)
	assert.Zero(t, stats.TotalSales)
	assert.Zero(t, stats.AverageTicket)
	assert.Zero(t, stats.CancelledCount)
	assert.Zero(t, stats.CancelledAmount)
}

func TestDashboardRejectsBadDates(t *testing.T) {
	conn := newTestDB(t)
	svc := NewService(NewRepository(conn))

	_, err := svc.Dashboard(context.Background(), "junk", "2025-06-30")
	assert.Error(t, err)
}

func TestTopProductsRanksByQuantity(t *testing.T) {
	conn := newTestDB(t)
	svc := NewService(NewRepository(conn))
	ctx := context.Background()

	coffee := insertProduct(t, conn, "P1", "Café Espresso", 1500)
	water := insertProduct(t, conn, "P2", "Agua Mineral", 1200)

	s1 := insertSale(t, conn, 5700, "completed", "2025-06-10 09:00:00")
	insertItem(t, conn, s1, coffee, "Café Espresso", 3, 1500)
	insertItem(t, conn, s1, water, "Agua Mineral", 1, 1200)

	s2 := insertSale(t, conn, 2400, "completed", "2025-06-11 10:00:00")
	insertItem(t, conn, s2, water, "Agua Mineral", 2, 1200)

	// Cancelled sales never count.
	s3 := insertSale(t, conn, 15000, "cancelled", "2025-06-12 11:00:00")
	insertItem(t, conn, s3, coffee, "Café Espresso", 10, 1500)

	top, err := svc.TopProducts(ctx, "2025-06-01", "2025-06-30", 0)
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, "Café Espresso", top[0].Name)
	assert.Equal(t, int64(3), top[0].Sold)
	assert.Equal(t, 4500.0, top[0].Revenue)
	assert.Equal(t, "Agua Mineral", top[1].Name)
	assert.Equal(t, int64(3), top[1].Sold)
	assert.Equal(t, 3600.0, top[1].Revenue)
}

func TestTopProductsHonorsLimit(t *testing.T) {
	conn := newTestDB(t)
	svc := NewService(NewRepository(conn))
	ctx := context.Background()

	for i, name := range []string{"A", "B", "C"} {
		id := insertProduct(t, conn, name, name, 100)
		s := insertSale(t, conn, 100, "completed", "2025-06-10 09:00:00")
		insertItem(t, conn, s, id, name, int64(3-i), 100)
	}

	top, err := svc.TopProducts(ctx, "2025-06-01", "2025-06-30", 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].Name)
}

func TestChartPlacesTotalsInBuckets(t *testing.T) {
	conn := newTestDB(t)
	svc := NewService(NewRepository(conn))
	ctx := context.Background()

	insertSale(t, conn, 1500, "completed", "2025-06-15 09:10:00")
	insertSale(t, conn, 2500, "completed", "2025-06-15 09:45:00")
	insertSale(t, conn, 800, "completed", "2025-06-15 18:05:00")
	insertSale(t, conn, 700, "cancelled", "2025-06-15 12:00:00")

	points, err := svc.Chart(ctx, "2025-06-15", "2025-06-15")
	require.NoError(t, err)

	require.Len(t, points, 24)
	assert.Equal(t, 4000.0, points[9].Total)
	assert.Equal(t, 800.0, points[18].Total)
	assert.Zero(t, points[12].Total)
}

func TestChartDailyWindowFiltersEdges(t *testing.T) {
	conn := newTestDB(t)
	svc := NewService(NewRepository(conn))
	ctx := context.Background()

	insertSale(t, conn, 100, "completed", "2025-01-01 00:00:00")
	insertSale(t, conn, 200, "completed", "2025-03-31 23:59:59")
	insertSale(t, conn, 999, "completed", "2025-04-01 00:00:00")

	points, err := svc.Chart(ctx, "2025-01-01", "2025-03-31")
	require.NoError(t, err)

	require.Len(t, points, 90)
	assert.Equal(t, 100.0, points[0].Total)
	assert.Equal(t, 200.0, points[89].Total)

	var sum float64
	for _, p := range points {
		sum += p.Total
	}
	assert.Equal(t, 300.0, sum)
}
